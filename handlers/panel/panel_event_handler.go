package handlers

import (
	"errors"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"seslidavet.link/configs"
	"seslidavet.link/configs/configslog"
	"seslidavet.link/models"
	"seslidavet.link/pkg/queryparams"
	"seslidavet.link/services"
)

// EventHandler etkinlik iş akışının panel uçları.
type EventHandler struct {
	eventService services.IEventService
	voiceService services.IVoiceService
	cfg          *configs.Config
}

// NewEventHandler yeni bir EventHandler örneği oluşturur.
func NewEventHandler(eventService services.IEventService, voiceService services.IVoiceService, cfg *configs.Config) *EventHandler {
	return &EventHandler{
		eventService: eventService,
		voiceService: voiceService,
		cfg:          cfg,
	}
}

// ShowCreateEvent etkinlik oluşturma formunu gösterir.
func (h *EventHandler) ShowCreateEvent(c *fiber.Ctx) error {
	return c.Render("panel/event_create", fiber.Map{
		"Title": "Yeni Etkinlik",
	}, "layouts/main")
}

// CreateEvent formu işler ve etkinliği taslak olarak kaydeder.
func (h *EventHandler) CreateEvent(c *fiber.Ctx) error {
	input := services.EventInput{
		HostName:            c.FormValue("host_name"),
		EventType:           c.FormValue("event_type"),
		EventDate:           c.FormValue("event_date"),
		EventTime:           c.FormValue("event_time"),
		Duration:            c.FormValue("duration"),
		Location:            c.FormValue("location"),
		CulturalPreferences: c.FormValue("cultural_preferences"),
		SpecialInstructions: c.FormValue("special_instructions"),
		RSVPDeadline:        c.FormValue("rsvp_deadline"),
		UserEmail:           c.FormValue("user_email"),
		BackgroundMusicURL:  c.FormValue("background_music_url"),
	}

	event, err := h.eventService.CreateEvent(c.UserContext(), input)
	if err != nil {
		if errors.Is(err, services.ErrEventInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("Panel - CreateEvent hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Etkinlik oluşturulamadı."})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"event_id": event.ID,
		"status":   event.Status,
	})
}

// SetVoice ses seçimini kaydeder; custom seçiminde yüklenen örneği klonlar.
// Klonlama başarısız olursa kadın önayar sese düşülür, istek reddedilmez.
func (h *EventHandler) SetVoice(c *fiber.Ctx) error {
	eventID, ok := h.eventID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz etkinlik ID."})
	}

	choice := c.FormValue("voice_choice")
	voiceSampleID := ""

	if choice == models.VoiceChoiceCustom {
		file, err := c.FormFile("voice_sample")
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Ses örneği dosyası gerekli."})
		}

		savedPath := filepath.Join(h.cfg.UploadDir, uuid.NewString()+"_"+filepath.Base(file.Filename))
		if err := c.SaveFile(file, savedPath); err != nil {
			configslog.Log.Error("Panel - SetVoice: dosya kaydedilemedi", zap.Uint("eventID", eventID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Dosya kaydedilemedi."})
		}

		event, err := h.eventService.GetEventByID(c.UserContext(), eventID)
		if err != nil {
			return h.eventError(c, err)
		}

		voiceSampleID, err = h.voiceService.CloneVoice(c.UserContext(), savedPath, event.HostName)
		if err != nil {
			configslog.Log.Warn("Panel - SetVoice: klonlama başarısız, önayar sese düşülüyor",
				zap.Uint("eventID", eventID), zap.Error(err))
			choice = models.VoiceChoiceFemale
		}
	}

	if err := h.eventService.SetVoice(c.UserContext(), eventID, choice, voiceSampleID); err != nil {
		return h.eventError(c, err)
	}

	return c.JSON(fiber.Map{
		"event_id":        eventID,
		"voice_choice":    choice,
		"voice_sample_id": voiceSampleID,
	})
}

// AddGuests davetlileri ekler. CSV dosyası yüklenmişse dosyadan, yoksa
// form alanlarından (guest_name / phone_number dizileri) okunur.
func (h *EventHandler) AddGuests(c *fiber.Ctx) error {
	eventID, ok := h.eventID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz etkinlik ID."})
	}

	if file, err := c.FormFile("guest_list_csv"); err == nil {
		if !strings.EqualFold(filepath.Ext(file.Filename), ".csv") {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Davetli listesi .csv uzantılı olmalı."})
		}

		savedPath := filepath.Join(h.cfg.UploadDir, uuid.NewString()+"_"+filepath.Base(file.Filename))
		if err := c.SaveFile(file, savedPath); err != nil {
			configslog.Log.Error("Panel - AddGuests: CSV kaydedilemedi", zap.Uint("eventID", eventID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Dosya kaydedilemedi."})
		}

		guests, err := h.eventService.AddGuestsFromCSV(c.UserContext(), eventID, savedPath)
		if err != nil {
			return h.eventError(c, err)
		}
		return c.JSON(fiber.Map{"event_id": eventID, "guest_count": len(guests)})
	}

	form, err := c.MultipartForm()
	var entries []services.GuestEntry
	if err == nil && form != nil {
		names := form.Value["guest_name"]
		phones := form.Value["phone_number"]
		for i := range names {
			entry := services.GuestEntry{Name: names[i]}
			if i < len(phones) {
				entry.Phone = phones[i]
			}
			entries = append(entries, entry)
		}
	} else {
		// Tek davetlilik basit form gönderimi.
		if name := c.FormValue("guest_name"); name != "" {
			entries = append(entries, services.GuestEntry{Name: name, Phone: c.FormValue("phone_number")})
		}
	}
	if len(entries) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Davetli bilgisi verilmedi."})
	}

	guests, err := h.eventService.AddGuestsManual(c.UserContext(), eventID, entries)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrGuestInvalidPhone), errors.Is(err, services.ErrGuestInvalidInput):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		default:
			return h.eventError(c, err)
		}
	}
	return c.JSON(fiber.Map{"event_id": eventID, "guest_count": len(guests)})
}

// ShowScript şablondan üretilen senaryo önizlemesini döndürür.
func (h *EventHandler) ShowScript(c *fiber.Ctx) error {
	eventID, ok := h.eventID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz etkinlik ID."})
	}

	script, err := h.eventService.GenerateScriptPreview(c.UserContext(), eventID)
	if err != nil {
		if errors.Is(err, services.ErrTemplateUnavailable) {
			configslog.Log.Error("Panel - ShowScript: şablon hatası", zap.Uint("eventID", eventID), zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Davet senaryosu üretilemedi."})
		}
		return h.eventError(c, err)
	}
	return c.JSON(fiber.Map{"event_id": eventID, "script": script})
}

// SaveScript kullanıcının onayladığı senaryoyu kaydeder.
func (h *EventHandler) SaveScript(c *fiber.Ctx) error {
	eventID, ok := h.eventID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz etkinlik ID."})
	}

	script := c.FormValue("script")
	if strings.TrimSpace(script) == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Senaryo boş olamaz."})
	}

	if err := h.eventService.SaveFinalScript(c.UserContext(), eventID, script); err != nil {
		return h.eventError(c, err)
	}
	return c.JSON(fiber.Map{"event_id": eventID, "status": "Script saved"})
}

// InitiateCalls davetlilere aramaları başlatır. ?batched=true tüm davetlileri
// tek sağlayıcı isteğinde gönderir.
func (h *EventHandler) InitiateCalls(c *fiber.Ctx) error {
	eventID, ok := h.eventID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz etkinlik ID."})
	}

	batched := c.Query("batched") == "true"
	initiated, err := h.eventService.InitiateCalls(c.UserContext(), eventID, batched)
	if err != nil {
		if errors.Is(err, services.ErrTemplateUnavailable) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Davet senaryosu üretilemedi."})
		}
		return h.eventError(c, err)
	}

	event, err := h.eventService.GetEventByID(c.UserContext(), eventID)
	if err != nil {
		return h.eventError(c, err)
	}
	return c.JSON(fiber.Map{
		"event_id":  eventID,
		"status":    event.Status,
		"initiated": initiated,
	})
}

// ListEvents kullanıcının etkinliklerini e-posta ile listeler.
func (h *EventHandler) ListEvents(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "email parametresi gerekli."})
	}

	var params queryparams.ListParams
	if err := c.QueryParser(&params); err != nil {
		params = queryparams.DefaultListParams("created_at")
	}
	params.Validate()

	result, err := h.eventService.GetEventsForUser(c.UserContext(), email, params)
	if err != nil {
		if errors.Is(err, services.ErrEventInvalidInput) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		}
		configslog.Log.Error("Panel - ListEvents hatası", zap.String("email", email), zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Etkinlikler listelenemedi."})
	}
	return c.JSON(result)
}

// ShowSummary etkinliğin RSVP dökümünü döndürür.
func (h *EventHandler) ShowSummary(c *fiber.Ctx) error {
	eventID, ok := h.eventID(c)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz etkinlik ID."})
	}

	summary, err := h.eventService.GetRSVPSummary(c.UserContext(), eventID)
	if err != nil {
		return h.eventError(c, err)
	}
	return c.JSON(fiber.Map{"event_id": eventID, "summary": summary})
}

func (h *EventHandler) eventID(c *fiber.Ctx) (uint, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return uint(id), true
}

func (h *EventHandler) eventError(c *fiber.Ctx, err error) error {
	if errors.Is(err, services.ErrEventNotFound) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": services.ErrEventNotFound.Error()})
	}
	configslog.Log.Error("Panel - etkinlik işlemi hatası", zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "İşlem tamamlanamadı."})
}
