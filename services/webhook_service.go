package services

import (
	"context"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"seslidavet.link/configs/configslog"
	"seslidavet.link/models"
	"seslidavet.link/repositories"
)

// WebhookServiceError webhook servisi hataları.
type WebhookServiceError string

func (e WebhookServiceError) Error() string { return string(e) }

const (
	// ErrBadCorrelation korelasyon verisi (guestId/eventId) eksik veya
	// sayıya çevrilemez olduğunda döner; handler bunu 400'e çevirir.
	ErrBadCorrelation WebhookServiceError = "webhook korelasyon verisi geçersiz"
)

// CorrelationMeta sağlayıcının aynen geri gönderdiği korelasyon bloğu.
type CorrelationMeta struct {
	GuestID string `json:"guestId"`
	EventID string `json:"eventId"`
}

// CallbackPayload basit geri arama gövdesi (POST /vapi/callback).
type CallbackPayload struct {
	Status        string          `json:"status"`
	Metadata      CorrelationMeta `json:"metadata"`
	Transcription string          `json:"transcription"`
	Summary       string          `json:"summary"`
	ErrorMessage  string          `json:"error_message"`
}

// WebhookEnvelope sağlayıcının zengin webhook zarfı (POST /webhook).
type WebhookEnvelope struct {
	Message *WebhookMessage `json:"message"`
}

// WebhookMessage zarfın içindeki olay.
type WebhookMessage struct {
	Type     string           `json:"type"`
	Status   string           `json:"status"`
	Call     *WebhookCall     `json:"call"`
	Analysis *WebhookAnalysis `json:"analysis"`
}

// WebhookCall olayın ait olduğu arama.
type WebhookCall struct {
	Metadata CorrelationMeta `json:"metadata"`
}

// WebhookAnalysis arama sonrası analiz bloğu.
type WebhookAnalysis struct {
	Summary        string          `json:"summary"`
	StructuredData *StructuredData `json:"structuredData"`
}

// StructuredData asistanın aramadan çıkardığı yapılandırılmış veriler.
type StructuredData struct {
	RSVPResponse        string `json:"rsvp_response"`
	SpecialRequest      string `json:"special_request"`
	ReminderCallDetails string `json:"reminder_call_details"`
}

// IWebhookService sağlayıcı geri aramalarını işleme servisi.
type IWebhookService interface {
	ProcessCallback(ctx context.Context, payload *CallbackPayload) error
	ProcessEnvelope(ctx context.Context, message *WebhookMessage) error
}

// WebhookService IWebhookService arayüzünü uygular.
// RSVP kayıtları append-only'dir; aynı arama için mükerrer webhook
// mükerrer satır oluşturur, tekilleştirme yapılmaz.
type WebhookService struct {
	guestRepo repositories.IGuestRepository
	rsvpRepo  repositories.IRSVPRepository
}

// NewWebhookService yeni bir WebhookService örneği oluşturur.
func NewWebhookService(guestRepo repositories.IGuestRepository, rsvpRepo repositories.IRSVPRepository) IWebhookService {
	return &WebhookService{guestRepo: guestRepo, rsvpRepo: rsvpRepo}
}

// ProcessCallback basit geri arama gövdesini işler.
// Biten aramalarda transkripsiyon metni anahtar kelimeyle sınıflandırılır;
// başarısız aramalar "Call Failed" RSVP satırı üretir.
func (s *WebhookService) ProcessCallback(ctx context.Context, payload *CallbackPayload) error {
	guestID, eventID, err := parseCorrelation(payload.Metadata)
	if err != nil {
		return err
	}

	switch strings.ToLower(strings.TrimSpace(payload.Status)) {
	case "ended", "success":
		return s.recordEndedCall(ctx, guestID, eventID, payload)
	case "failed":
		reason := payload.ErrorMessage
		if reason == "" {
			reason = "Call failed without a reported reason."
		}
		if err := s.rsvpRepo.Create(ctx, &models.RSVP{
			GuestID:  guestID,
			EventID:  eventID,
			Response: models.RSVPCallFailed,
			Summary:  reason,
		}); err != nil {
			return err
		}
		return s.guestRepo.UpdateCallStatus(ctx, guestID, models.CallStatusAPIError)
	default:
		configslog.Log.Info("WebhookService.ProcessCallback: bilinmeyen durum yok sayıldı",
			zap.String("status", payload.Status), zap.Uint("guestID", guestID))
		return nil
	}
}

func (s *WebhookService) recordEndedCall(ctx context.Context, guestID, eventID uint, payload *CallbackPayload) error {
	text := strings.TrimSpace(payload.Transcription)
	if text == "" {
		if err := s.rsvpRepo.Create(ctx, &models.RSVP{
			GuestID:  guestID,
			EventID:  eventID,
			Response: models.RSVPNoResponse,
			Summary:  "Call ended, no transcription received.",
		}); err != nil {
			return err
		}
		return s.guestRepo.UpdateCallStatus(ctx, guestID, models.CallStatusNoResponse)
	}

	if err := s.rsvpRepo.Create(ctx, &models.RSVP{
		GuestID:  guestID,
		EventID:  eventID,
		Response: classifyTranscription(text),
		Summary:  payload.Summary,
	}); err != nil {
		return err
	}
	return s.guestRepo.UpdateCallStatus(ctx, guestID, models.CallStatusRSVPReceived)
}

// ProcessEnvelope zengin webhook olaylarını işler.
// status-update yalnızca başarısızlık bildirirse davranır; end-of-call-report
// yapılandırılmış RSVP verisini kaydeder. Diğer olay türleri yok sayılır.
func (s *WebhookService) ProcessEnvelope(ctx context.Context, message *WebhookMessage) error {
	if message == nil {
		return nil
	}

	switch message.Type {
	case "status-update":
		return s.processStatusUpdate(ctx, message)
	case "end-of-call-report":
		return s.processEndOfCallReport(ctx, message)
	default:
		configslog.Log.Debug("WebhookService.ProcessEnvelope: olay türü yok sayıldı",
			zap.String("type", message.Type))
		return nil
	}
}

func (s *WebhookService) processStatusUpdate(ctx context.Context, message *WebhookMessage) error {
	if strings.ToLower(strings.TrimSpace(message.Status)) != "failed" {
		return nil
	}
	if message.Call == nil {
		return ErrBadCorrelation
	}
	guestID, _, err := parseCorrelation(message.Call.Metadata)
	if err != nil {
		return err
	}

	guest, err := s.guestRepo.FindByID(ctx, guestID)
	if err != nil {
		// Silinmiş veya hiç var olmamış davetli için gelen geç bildirim
		// akışı bozmaz.
		configslog.Log.Warn("WebhookService.processStatusUpdate: davetli bulunamadı",
			zap.Uint("guestID", guestID), zap.Error(err))
		return nil
	}

	// RSVP alınmış bir davetli sonradan gelen başarısızlık bildirimiyle
	// geri düşürülmez.
	if guest.CallStatus == models.CallStatusRSVPReceived {
		return nil
	}
	return s.guestRepo.UpdateCallStatus(ctx, guestID, models.CallStatusProviderFailed)
}

func (s *WebhookService) processEndOfCallReport(ctx context.Context, message *WebhookMessage) error {
	if message.Call == nil {
		return ErrBadCorrelation
	}
	guestID, eventID, err := parseCorrelation(message.Call.Metadata)
	if err != nil {
		return err
	}

	rsvp := &models.RSVP{
		GuestID:  guestID,
		EventID:  eventID,
		Response: models.RSVPNoResponse,
	}
	if message.Analysis != nil {
		rsvp.Summary = message.Analysis.Summary
		if data := message.Analysis.StructuredData; data != nil {
			rsvp.Response = normalizeResponse(data.RSVPResponse)
			rsvp.SpecialRequest = data.SpecialRequest
			rsvp.ReminderRequest = data.ReminderCallDetails
		}
	}

	if err := s.rsvpRepo.Create(ctx, rsvp); err != nil {
		return err
	}
	return s.guestRepo.UpdateCallStatus(ctx, guestID, models.CallStatusRSVPReceived)
}

// parseCorrelation opak string ID'leri sayıya çevirir.
func parseCorrelation(meta CorrelationMeta) (guestID, eventID uint, err error) {
	g, gErr := strconv.ParseUint(strings.TrimSpace(meta.GuestID), 10, 32)
	e, eErr := strconv.ParseUint(strings.TrimSpace(meta.EventID), 10, 32)
	if gErr != nil || eErr != nil || g == 0 || e == 0 {
		return 0, 0, ErrBadCorrelation
	}
	return uint(g), uint(e), nil
}

// classifyTranscription serbest metni anahtar kelime önceliğiyle sınıflandırır.
// Sıra önemlidir: "yes" > "no" > "maybe"; hiçbiri geçmiyorsa "No Response".
func classifyTranscription(text string) models.RSVPResponse {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "yes"):
		return models.RSVPYes
	case strings.Contains(lower, "no"):
		return models.RSVPNo
	case strings.Contains(lower, "maybe"), strings.Contains(lower, "not sure"):
		return models.RSVPMaybe
	default:
		return models.RSVPNoResponse
	}
}

// normalizeResponse yapılandırılmış RSVP yanıtını kanonik değere indirger.
// Boş veya tanınmayan değerler "No Response" olur.
func normalizeResponse(raw string) models.RSVPResponse {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "yes":
		return models.RSVPYes
	case "no":
		return models.RSVPNo
	case "maybe":
		return models.RSVPMaybe
	default:
		return models.RSVPNoResponse
	}
}

var _ IWebhookService = (*WebhookService)(nil)
