package queryparams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidate(t *testing.T) {
	params := ListParams{Page: -1, PerPage: 0, OrderBy: "rastgele"}
	params.Validate()

	assert.Equal(t, DefaultPage, params.Page)
	assert.Equal(t, DefaultPerPage, params.PerPage)
	assert.Equal(t, DefaultOrderBy, params.OrderBy)

	params = ListParams{Page: 2, PerPage: 500, OrderBy: "asc"}
	params.Validate()
	assert.Equal(t, MaxPerPage, params.PerPage)
	assert.Equal(t, "asc", params.OrderBy)
}

func TestCalculateOffset(t *testing.T) {
	assert.Equal(t, 0, ListParams{Page: 1, PerPage: 20}.CalculateOffset())
	assert.Equal(t, 40, ListParams{Page: 3, PerPage: 20}.CalculateOffset())
}

func TestCalculateTotalPages(t *testing.T) {
	assert.Equal(t, 0, CalculateTotalPages(0, 20))
	assert.Equal(t, 1, CalculateTotalPages(20, 20))
	assert.Equal(t, 2, CalculateTotalPages(21, 20))
	assert.Equal(t, 0, CalculateTotalPages(10, 0))
}
