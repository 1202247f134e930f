package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"seslidavet.link/configs/configslog"
	"seslidavet.link/models"
	"seslidavet.link/pkg/guestcsv"
	"seslidavet.link/pkg/phonenumber"
	"seslidavet.link/pkg/queryparams"
	"seslidavet.link/repositories"
)

// EventServiceError etkinlik servisi hataları.
type EventServiceError string

func (e EventServiceError) Error() string { return string(e) }

const (
	ErrEventNotFound       EventServiceError = "etkinlik bulunamadı"
	ErrEventInvalidInput   EventServiceError = "geçersiz etkinlik verisi"
	ErrGuestInvalidInput   EventServiceError = "geçersiz davetli verisi"
	ErrGuestInvalidPhone   EventServiceError = "telefon numarası E.164 biçiminde olmalı"
	ErrEventCreationFailed EventServiceError = "etkinlik oluşturulamadı"
)

// EventInput web formundan gelen etkinlik oluşturma verisi.
// Tarih "2006-01-02", saat "15:04" veya "15:04:05" biçimindedir.
type EventInput struct {
	HostName            string
	EventType           string
	EventDate           string
	EventTime           string
	Duration            string
	Location            string
	CulturalPreferences string
	SpecialInstructions string
	RSVPDeadline        string
	UserEmail           string
	BackgroundMusicURL  string
}

// GuestEntry elle girilen tek bir davetli.
type GuestEntry struct {
	Name  string
	Phone string
}

// RSVPSummary etkinliğin toplu RSVP görünümü.
type RSVPSummary struct {
	Yes     int64 `json:"yes"`
	No      int64 `json:"no"`
	Maybe   int64 `json:"maybe"`
	Pending int64 `json:"pending"`
}

// IEventService etkinlik iş akışı servisi.
type IEventService interface {
	CreateEvent(ctx context.Context, input EventInput) (*models.Event, error)
	GetEventByID(ctx context.Context, id uint) (*models.Event, error)
	UpdateEventStatus(ctx context.Context, id uint, status models.EventStatus) error
	SetVoice(ctx context.Context, id uint, choice, voiceSampleID string) error
	SaveFinalScript(ctx context.Context, id uint, script string) error
	GenerateScriptPreview(ctx context.Context, id uint) (string, error)
	AddGuestsManual(ctx context.Context, eventID uint, entries []GuestEntry) ([]models.Guest, error)
	AddGuestsFromCSV(ctx context.Context, eventID uint, csvPath string) ([]models.Guest, error)
	InitiateCalls(ctx context.Context, eventID uint, batched bool) (int, error)
	GetEventsForUser(ctx context.Context, email string, params queryparams.ListParams) (*queryparams.PaginatedResult, error)
	GetRSVPSummary(ctx context.Context, eventID uint) (*RSVPSummary, error)
}

// EventService IEventService arayüzünü uygular.
type EventService struct {
	eventRepo     repositories.IEventRepository
	guestRepo     repositories.IGuestRepository
	rsvpRepo      repositories.IRSVPRepository
	scriptService IScriptService
	callService   ICallService
}

// NewEventService yeni bir EventService örneği oluşturur.
func NewEventService(
	eventRepo repositories.IEventRepository,
	guestRepo repositories.IGuestRepository,
	rsvpRepo repositories.IRSVPRepository,
	scriptService IScriptService,
	callService ICallService,
) IEventService {
	return &EventService{
		eventRepo:     eventRepo,
		guestRepo:     guestRepo,
		rsvpRepo:      rsvpRepo,
		scriptService: scriptService,
		callService:   callService,
	}
}

// CreateEvent formu doğrular ve etkinliği taslak durumunda kaydeder.
func (s *EventService) CreateEvent(ctx context.Context, input EventInput) (*models.Event, error) {
	if strings.TrimSpace(input.HostName) == "" || strings.TrimSpace(input.EventType) == "" {
		return nil, ErrEventInvalidInput
	}
	if strings.TrimSpace(input.UserEmail) == "" {
		return nil, ErrEventInvalidInput
	}

	event := &models.Event{
		HostName:            strings.TrimSpace(input.HostName),
		EventType:           strings.TrimSpace(input.EventType),
		Duration:            strings.TrimSpace(input.Duration),
		Location:            strings.TrimSpace(input.Location),
		CulturalPreferences: input.CulturalPreferences,
		SpecialInstructions: input.SpecialInstructions,
		UserEmail:           strings.ToLower(strings.TrimSpace(input.UserEmail)),
		BackgroundMusicURL:  strings.TrimSpace(input.BackgroundMusicURL),
		Status:              models.EventStatusDraft,
	}

	if input.EventDate != "" {
		d, err := time.Parse("2006-01-02", input.EventDate)
		if err != nil {
			return nil, ErrEventInvalidInput
		}
		event.EventDate = d
	}
	if input.EventTime != "" {
		if _, ok := parseClock(input.EventTime); !ok {
			return nil, ErrEventInvalidInput
		}
		event.EventTime = strings.TrimSpace(input.EventTime)
	}
	if input.RSVPDeadline != "" {
		d, err := time.Parse("2006-01-02", input.RSVPDeadline)
		if err != nil {
			return nil, ErrEventInvalidInput
		}
		event.RSVPDeadline = &d
	}

	if err := s.eventRepo.Create(ctx, event); err != nil {
		configslog.Log.Error("EventService.CreateEvent: kayıt başarısız", zap.Error(err))
		return nil, ErrEventCreationFailed
	}
	configslog.SLog.Infof("Etkinlik oluşturuldu: ID %d (%s)", event.ID, event.EventType)
	return event, nil
}

// GetEventByID etkinliği döndürür.
func (s *EventService) GetEventByID(ctx context.Context, id uint) (*models.Event, error) {
	event, err := s.eventRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, err
	}
	return event, nil
}

// UpdateEventStatus etkinlik durumunu günceller.
func (s *EventService) UpdateEventStatus(ctx context.Context, id uint, status models.EventStatus) error {
	err := s.eventRepo.UpdateStatus(ctx, id, status)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}

// SetVoice ses seçimini ve varsa klon ID'sini kaydeder.
// Tanınmayan seçim kadın önayar sese indirgenir.
func (s *EventService) SetVoice(ctx context.Context, id uint, choice, voiceSampleID string) error {
	switch choice {
	case models.VoiceChoiceMale, models.VoiceChoiceFemale, models.VoiceChoiceCustom, models.VoiceChoiceTest:
	default:
		configslog.SLog.Warnf("Bilinmeyen ses seçimi %q, %q kullanılacak", choice, models.VoiceChoiceFemale)
		choice = models.VoiceChoiceFemale
	}

	fields := map[string]interface{}{"voice_choice": choice}
	if voiceSampleID != "" {
		fields["voice_sample_id"] = voiceSampleID
	}
	err := s.eventRepo.UpdateFields(ctx, id, fields)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}

// SaveFinalScript kullanıcının onayladığı (muhtemelen düzenlediği) senaryoyu saklar.
func (s *EventService) SaveFinalScript(ctx context.Context, id uint, script string) error {
	err := s.eventRepo.UpdateFields(ctx, id, map[string]interface{}{"final_invitation_script": script})
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrEventNotFound
	}
	return err
}

// GenerateScriptPreview şablondan önizleme senaryosu üretir; kaydetmez.
func (s *EventService) GenerateScriptPreview(ctx context.Context, id uint) (string, error) {
	event, err := s.GetEventByID(ctx, id)
	if err != nil {
		return "", err
	}
	script, err := s.scriptService.GenerateEventScript(event)
	if err != nil {
		configslog.Log.Error("EventService.GenerateScriptPreview: şablon hatası",
			zap.Uint("eventID", id), zap.Error(err))
		return "", err
	}
	return script, nil
}

// AddGuestsManual elle girilen davetlileri doğrular ve ekler.
// Tek bir geçersiz numara tüm partiyi reddeder; kısmi ekleme yapılmaz.
func (s *EventService) AddGuestsManual(ctx context.Context, eventID uint, entries []GuestEntry) ([]models.Guest, error) {
	if _, err := s.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}

	guests := make([]models.Guest, 0, len(entries))
	for _, entry := range entries {
		name := strings.TrimSpace(entry.Name)
		phone := strings.TrimSpace(entry.Phone)
		if name == "" || phone == "" {
			return nil, ErrGuestInvalidInput
		}
		if !phonenumber.IsValidE164(phone) {
			configslog.SLog.Warnf("Geçersiz telefon numarası reddedildi: %q (%s)", phone, name)
			return nil, ErrGuestInvalidPhone
		}
		guests = append(guests, models.Guest{GuestName: name, PhoneNumber: phone})
	}
	if len(guests) == 0 {
		return []models.Guest{}, nil
	}

	created, err := s.guestRepo.AddBatch(ctx, eventID, guests)
	if err != nil {
		_ = s.eventRepo.UpdateStatus(ctx, eventID, models.EventStatusGuestCreateFail)
		return nil, err
	}
	return created, nil
}

// AddGuestsFromCSV yüklenen CSV dosyasındaki davetlileri ekler.
// Dosya boşsa veya hiç geçerli satır içermiyorsa etkinlik bekleme durumuna alınır.
func (s *EventService) AddGuestsFromCSV(ctx context.Context, eventID uint, csvPath string) ([]models.Guest, error) {
	if _, err := s.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}

	rows := guestcsv.Parse(csvPath)
	if len(rows) == 0 {
		configslog.SLog.Warnf("CSV'den davetli okunamadı: %s (etkinlik %d)", csvPath, eventID)
		_ = s.eventRepo.UpdateStatus(ctx, eventID, models.EventStatusNoGuestsFromCSV)
		return []models.Guest{}, nil
	}

	guests := make([]models.Guest, 0, len(rows))
	skipped := 0
	for _, row := range rows {
		if !phonenumber.IsValidE164(row.Phone) {
			skipped++
			continue
		}
		guests = append(guests, models.Guest{GuestName: row.Name, PhoneNumber: row.Phone})
	}
	if skipped > 0 {
		configslog.SLog.Warnf("CSV'de %d satır geçersiz numara nedeniyle atlandı (etkinlik %d)", skipped, eventID)
	}
	if len(guests) == 0 {
		_ = s.eventRepo.UpdateStatus(ctx, eventID, models.EventStatusCSVImportIssue)
		return []models.Guest{}, nil
	}

	created, err := s.guestRepo.AddBatch(ctx, eventID, guests)
	if err != nil {
		_ = s.eventRepo.UpdateStatus(ctx, eventID, models.EventStatusGuestCreateFail)
		return nil, err
	}

	if err := s.eventRepo.UpdateFields(ctx, eventID, map[string]interface{}{"guest_list_csv_path": csvPath}); err != nil {
		configslog.Log.Warn("EventService.AddGuestsFromCSV: CSV yolu kaydedilemedi",
			zap.Uint("eventID", eventID), zap.Error(err))
	}
	return created, nil
}

// InitiateCalls etkinliğin tüm davetlilerine arama başlatır.
// Davetli yoksa etkinlik "Processed - No Guests" olur ve sağlayıcıya gidilmez.
// Senaryo üretilemezse "Failed - Script Generation" olur.
func (s *EventService) InitiateCalls(ctx context.Context, eventID uint, batched bool) (int, error) {
	event, err := s.eventRepo.FindByIDWithGuests(ctx, eventID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return 0, ErrEventNotFound
		}
		return 0, err
	}

	if len(event.Guests) == 0 {
		if err := s.eventRepo.UpdateStatus(ctx, eventID, models.EventStatusNoGuests); err != nil {
			return 0, err
		}
		return 0, nil
	}

	script := event.FinalInvitationScript
	if strings.TrimSpace(script) == "" {
		script, err = s.scriptService.GenerateEventScript(event)
		if err != nil {
			configslog.Log.Error("EventService.InitiateCalls: senaryo üretilemedi",
				zap.Uint("eventID", eventID), zap.Error(err))
			_ = s.eventRepo.UpdateStatus(ctx, eventID, models.EventStatusScriptFail)
			return 0, err
		}
	}

	if err := s.eventRepo.UpdateStatus(ctx, eventID, models.EventStatusProcessing); err != nil {
		return 0, err
	}

	var initiated int
	if batched {
		initiated, err = s.callService.DispatchCallsBatched(ctx, event, event.Guests, script)
	} else {
		initiated, err = s.callService.DispatchCalls(ctx, event, event.Guests, script)
	}
	if err != nil {
		return initiated, err
	}

	if err := s.eventRepo.UpdateStatus(ctx, eventID, models.EventStatusCallsInitiated); err != nil {
		return initiated, err
	}
	configslog.SLog.Infof("Etkinlik %d: %d/%d arama başlatıldı", eventID, initiated, len(event.Guests))
	return initiated, nil
}

// GetEventsForUser kullanıcının etkinliklerini sayfalayarak döndürür.
func (s *EventService) GetEventsForUser(ctx context.Context, email string, params queryparams.ListParams) (*queryparams.PaginatedResult, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrEventInvalidInput
	}
	params.Validate()

	events, total, err := s.eventRepo.FindAllByEmailPaginated(ctx, email, params)
	if err != nil {
		return nil, err
	}
	return &queryparams.PaginatedResult{
		Data: events,
		Meta: queryparams.PaginationMeta{
			CurrentPage: params.Page,
			PerPage:     params.PerPage,
			TotalItems:  total,
			TotalPages:  queryparams.CalculateTotalPages(total, params.PerPage),
		},
	}, nil
}

// GetRSVPSummary etkinliğin RSVP dökümünü döndürür.
// Pending = davetli sayısı - (Yes + No + Maybe); "No Response" ve "Call Failed"
// satırları yanıt sayılmaz, davetli beklemede kalır. Negatife düşmez.
func (s *EventService) GetRSVPSummary(ctx context.Context, eventID uint) (*RSVPSummary, error) {
	if _, err := s.GetEventByID(ctx, eventID); err != nil {
		return nil, err
	}

	counts, err := s.rsvpRepo.CountsByResponse(ctx, eventID)
	if err != nil {
		return nil, err
	}
	guestCount, err := s.guestRepo.CountByEventID(ctx, eventID)
	if err != nil {
		return nil, err
	}

	summary := &RSVPSummary{
		Yes:   counts[models.RSVPYes],
		No:    counts[models.RSVPNo],
		Maybe: counts[models.RSVPMaybe],
	}
	responded := summary.Yes + summary.No + summary.Maybe
	if pending := guestCount - responded; pending > 0 {
		summary.Pending = pending
	}
	return summary, nil
}

var _ IEventService = (*EventService)(nil)
