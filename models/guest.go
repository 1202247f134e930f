package models

// CallStatus bir davetliye yapılan dış arama girişiminin yaşam döngüsünü izler.
// RSVP içeriğinden bağımsız tutulur.
type CallStatus string

const (
	CallStatusNotCalled      CallStatus = "Not Called"
	CallStatusInitiated      CallStatus = "Called - Initiated"
	CallStatusRSVPReceived   CallStatus = "Called - RSVP Received"
	CallStatusNoResponse     CallStatus = "Called - No Response"
	CallStatusAPIError       CallStatus = "Failed - API Error"
	CallStatusProviderFailed CallStatus = "Failed - VAPI Status Update"
)

// Guest bir etkinliğe davet edilen kişiyi temsil eder.
// Her davetli tam olarak bir etkinliğe aittir; etkinlikle birlikte silinir.
type Guest struct {
	BaseModel
	EventID     uint       `gorm:"not null;index"`
	GuestName   string     `gorm:"type:varchar(150);not null"`
	PhoneNumber string     `gorm:"type:varchar(20);not null"` // E.164
	CallStatus  CallStatus `gorm:"type:varchar(50);default:'Not Called';index"`

	RSVPs []RSVP `gorm:"foreignKey:GuestID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}
