package models

import "time"

// EventStatus etkinliğin iş akışındaki durumunu tanımlar.
type EventStatus string

const (
	EventStatusDraft      EventStatus = "draft"
	EventStatusProcessing EventStatus = "processing"

	// Terminal durumlar. Değerler webhook/rapor tarafında olduğu gibi
	// okunur metin olarak saklanır.
	EventStatusCallsInitiated  EventStatus = "Calls Initiated"
	EventStatusNoGuests        EventStatus = "Processed - No Guests"
	EventStatusNoGuestsFromCSV EventStatus = "Pending - No Guests from CSV"
	EventStatusCSVImportIssue  EventStatus = "Pending - CSV Guest Import Issue"
	EventStatusGuestCreateFail EventStatus = "Failed - Guest Creation Issue"
	EventStatusScriptFail      EventStatus = "Failed - Script Generation"
)

// VoiceChoice kullanıcının ses seçimini tanımlar (kapalı küme).
const (
	VoiceChoiceMale   = "male"
	VoiceChoiceFemale = "female"
	VoiceChoiceCustom = "custom"
	VoiceChoiceTest   = "test"
)

// Event sesli davet iş akışındaki bir etkinliği temsil eder.
// Kayıtlar iş akışı ilerledikçe güncellenir, kapsam içinde hiç silinmez.
type Event struct {
	BaseModel
	HostName              string      `gorm:"type:varchar(150)"`
	EventType             string      `gorm:"type:varchar(100)"`
	EventDate             time.Time   `gorm:"type:date"`
	EventTime             string      `gorm:"type:varchar(8)"` // "15:04" veya "15:04:05"
	Duration              string      `gorm:"type:varchar(50)"`
	Location              string      `gorm:"type:varchar(200)"`
	CulturalPreferences   string      `gorm:"type:text"`
	SpecialInstructions   string      `gorm:"type:text"`
	RSVPDeadline          *time.Time  `gorm:"type:date"`
	UserEmail             string      `gorm:"type:varchar(120);index"`
	VoiceChoice           string      `gorm:"type:varchar(20)"`
	VoiceSampleID         string      `gorm:"type:varchar(100)"`
	Status                EventStatus `gorm:"type:varchar(50);default:'draft';index"`
	GuestListCSVPath      string      `gorm:"type:varchar(255)"`
	BackgroundMusicURL    string      `gorm:"type:varchar(512)"`
	FinalInvitationScript string      `gorm:"type:text"`

	Guests []Guest `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
	RSVPs  []RSVP  `gorm:"foreignKey:EventID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
