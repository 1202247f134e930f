package phonenumber

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidE164(t *testing.T) {
	valid := []string{"+15550001111", "+905551234567", "+4420712345678"}
	for _, number := range valid {
		assert.True(t, IsValidE164(number), number)
	}

	invalid := []string{"", "+", "15550001111", "+1 555 000 1111", "+1555-0001", "0555 123 45 67", "+15550001111x"}
	for _, number := range invalid {
		assert.False(t, IsValidE164(number), number)
	}
}
