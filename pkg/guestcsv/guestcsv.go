// pkg/guestcsv/guestcsv.go
package guestcsv

import (
	"encoding/csv"
	"io"
	"os"
	"strings"
)

// Guest CSV'den okunan tek bir davetli satırı.
type Guest struct {
	Name  string
	Phone string
}

// Başlık adlarının tolere edilen varyantları (küçük harf, boşluksuz).
var (
	nameHeaders  = map[string]bool{"guestname": true, "name": true, "fullname": true}
	phoneHeaders = map[string]bool{"phonenumber": true, "phone": true, "contactnumber": true, "mobilenumber": true}
)

// Parse davetli CSV dosyasını okur. Sözleşme bilinçli olarak toleranslıdır:
// dosya yoksa, başlıklar tanınmıyorsa veya hiç geçerli satır yoksa boş liste
// döner; eksik alanlı satırlar atlanır, dosyanın geri kalanı işlenmeye devam eder.
func Parse(path string) []Guest {
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()
	return ParseReader(f)
}

// ParseReader Parse ile aynı kurallarla bir io.Reader'dan okur.
func ParseReader(r io.Reader) []Guest {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1 // satır uzunlukları değişebilir
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil
	}

	nameCol, phoneCol := -1, -1
	for i, field := range header {
		key := normalizeHeader(field)
		switch {
		case nameHeaders[key]:
			nameCol = i
		case phoneHeaders[key]:
			phoneCol = i
		}
	}
	if nameCol < 0 || phoneCol < 0 {
		return nil
	}

	var guests []Guest
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Bozuk satır dosyanın tamamını geçersiz kılmaz.
			continue
		}
		name := fieldAt(row, nameCol)
		phone := fieldAt(row, phoneCol)
		if name == "" || phone == "" {
			continue
		}
		guests = append(guests, Guest{Name: name, Phone: phone})
	}
	return guests
}

func normalizeHeader(field string) string {
	field = strings.TrimPrefix(field, "\uFEFF") // BOM
	field = strings.ToLower(strings.TrimSpace(field))
	return strings.ReplaceAll(field, " ", "")
}

func fieldAt(row []string, i int) string {
	if i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
