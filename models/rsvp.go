package models

// RSVPResponse davetlinin davete verdiği yanıtı tanımlar.
type RSVPResponse string

const (
	RSVPYes        RSVPResponse = "Yes"
	RSVPNo         RSVPResponse = "No"
	RSVPMaybe      RSVPResponse = "Maybe"
	RSVPNoResponse RSVPResponse = "No Response"
	RSVPCallFailed RSVPResponse = "Call Failed"
)

// RSVP bir arama sonucunda oluşturulan yanıt kaydı.
// Kayıtlar append-only tutulur: aynı davetli tekrar aranırsa yeni satır eklenir,
// mevcut satır güncellenmez.
type RSVP struct {
	BaseModel
	GuestID         uint         `gorm:"not null;index"`
	EventID         uint         `gorm:"not null;index"` // davetlinin event_id'siyle eşleşmesi sözleşmedir
	Response        RSVPResponse `gorm:"type:varchar(50)"`
	Summary         string       `gorm:"type:text"`
	SpecialRequest  string       `gorm:"type:text"`
	ReminderRequest string       `gorm:"type:varchar(100)"`
}
