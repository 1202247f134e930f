package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"seslidavet.link/configs"
	"seslidavet.link/configs/configslog"
	"seslidavet.link/models"
	"seslidavet.link/pkg/vapi"
	"seslidavet.link/repositories"
)

const (
	llmProvider = "google"
	llmModel    = "gemini-2.5-flash-preview-04-17"
)

var errEmptyCallResult = errors.New("sağlayıcı arama ID'si döndürmedi")

// ICallClient dış arama sağlayıcısının soyutlaması; pkg/vapi.Client bunu karşılar.
type ICallClient interface {
	CreateCall(ctx context.Context, req *vapi.CallRequest) (*vapi.CallResponse, error)
}

// ICallService davetlilere dış arama başlatma servisi.
// Her iki yöntem de başarıyla başlatılan arama sayısını döndürür;
// davetli bazlı hatalar loglanır, yukarı taşınmaz.
type ICallService interface {
	DispatchCalls(ctx context.Context, event *models.Event, guests []models.Guest, script string) (int, error)
	DispatchCallsBatched(ctx context.Context, event *models.Event, guests []models.Guest, script string) (int, error)
}

// IVoiceStrategy etkinliğin ses seçimini sağlayıcı ses yapılandırmasına çevirir.
type IVoiceStrategy interface {
	VoiceFor(event *models.Event) *vapi.Voice
}

type elevenLabsVoice struct {
	voiceID string
}

func (v *elevenLabsVoice) VoiceFor(_ *models.Event) *vapi.Voice {
	return &vapi.Voice{Provider: "11labs", VoiceID: v.voiceID}
}

// clonedVoice ev sahibinin klonlanmış sesini kullanır. Klon ID'si yoksa
// (klonlama başarısız olmuş veya atlanmış) kadın önayar sese düşer.
type clonedVoice struct {
	fallbackID string
}

func (v *clonedVoice) VoiceFor(event *models.Event) *vapi.Voice {
	if event.VoiceSampleID == "" {
		return &vapi.Voice{Provider: "11labs", VoiceID: v.fallbackID}
	}
	return &vapi.Voice{Provider: "lmnt", VoiceID: event.VoiceSampleID}
}

// CallService ICallService arayüzünü uygular.
type CallService struct {
	client        ICallClient
	guestRepo     repositories.IGuestRepository
	scriptService IScriptService
	assistantID   string
	phoneNumberID string
	strategies    map[string]IVoiceStrategy
	defaultVoice  IVoiceStrategy
}

// NewCallService yeni bir CallService örneği oluşturur.
func NewCallService(client ICallClient, guestRepo repositories.IGuestRepository, scriptService IScriptService, cfg *configs.Config) ICallService {
	female := &elevenLabsVoice{voiceID: cfg.VoiceIDFemale}
	return &CallService{
		client:        client,
		guestRepo:     guestRepo,
		scriptService: scriptService,
		assistantID:   cfg.VapiAssistantID,
		phoneNumberID: cfg.VapiPhoneNumberID,
		strategies: map[string]IVoiceStrategy{
			models.VoiceChoiceMale:   &elevenLabsVoice{voiceID: cfg.VoiceIDMale},
			models.VoiceChoiceFemale: female,
			models.VoiceChoiceCustom: &clonedVoice{fallbackID: cfg.VoiceIDFemale},
			models.VoiceChoiceTest:   &elevenLabsVoice{voiceID: cfg.VoiceIDTest},
		},
		defaultVoice: female,
	}
}

func (s *CallService) strategyFor(choice string) IVoiceStrategy {
	if strategy, ok := s.strategies[choice]; ok {
		return strategy
	}
	return s.defaultVoice
}

// DispatchCalls davetlileri sırayla tek tek arar. Her davetli için tam olarak
// bir durum geçişi yapılır: Not Called -> Called - Initiated veya Failed - API Error.
func (s *CallService) DispatchCalls(ctx context.Context, event *models.Event, guests []models.Guest, script string) (int, error) {
	initiated := 0
	var combined error
	for i := range guests {
		if err := s.dispatchOne(ctx, event, &guests[i], script); err != nil {
			combined = multierr.Append(combined, err)
			continue
		}
		initiated++
	}
	if combined != nil {
		configslog.Log.Warn("CallService.DispatchCalls: bazı aramalar başlatılamadı",
			zap.Uint("eventID", event.ID), zap.Int("initiated", initiated),
			zap.Int("total", len(guests)), zap.Error(combined))
	}
	return initiated, nil
}

func (s *CallService) dispatchOne(ctx context.Context, event *models.Event, guest *models.Guest, script string) error {
	req := &vapi.CallRequest{
		Name:          guest.GuestName + " Invitation call",
		AssistantID:   s.assistantID,
		PhoneNumberID: s.phoneNumberID,
		Customers: []vapi.Customer{{
			Number:                 guest.PhoneNumber,
			Name:                   guest.GuestName,
			NumberE164CheckEnabled: true,
		}},
		AssistantOverrides: s.buildOverrides(event, script, guest.GuestName),
		Metadata:           s.buildMetadata(event, guest),
	}

	resp, err := s.client.CreateCall(ctx, req)
	if err != nil || len(resp.Results) == 0 || resp.Results[0].ID == "" {
		if err == nil {
			configslog.Log.Error("CallService.dispatchOne: sağlayıcı arama ID'si döndürmedi",
				zap.Uint("guestID", guest.ID))
		} else {
			configslog.Log.Error("CallService.dispatchOne: arama başlatılamadı",
				zap.Uint("guestID", guest.ID), zap.Error(err))
		}
		s.markGuest(ctx, guest.ID, models.CallStatusAPIError)
		if err == nil {
			err = errEmptyCallResult
		}
		return fmt.Errorf("davetli %d: %w", guest.ID, err)
	}

	configslog.Log.Info("CallService.dispatchOne: arama başlatıldı",
		zap.Uint("guestID", guest.ID), zap.String("callID", resp.Results[0].ID))
	s.markGuest(ctx, guest.ID, models.CallStatusInitiated)
	return nil
}

// DispatchCallsBatched tüm davetlileri tek bir sağlayıcı isteğinde arar.
// Senaryo ve korelasyon verisi müşteri kaydı üzerinde davetli başına taşınır.
// Sonuçlar istek sırasıyla eşleştirilir; eksik sonuç o davetli için başarısızlıktır.
func (s *CallService) DispatchCallsBatched(ctx context.Context, event *models.Event, guests []models.Guest, script string) (int, error) {
	if len(guests) == 0 {
		return 0, nil
	}

	customers := make([]vapi.Customer, 0, len(guests))
	for i := range guests {
		guest := &guests[i]
		customers = append(customers, vapi.Customer{
			Number:                 guest.PhoneNumber,
			Name:                   guest.GuestName,
			NumberE164CheckEnabled: true,
			AssistantOverrides:     s.buildOverrides(event, script, guest.GuestName),
			Metadata:               s.buildMetadata(event, guest),
		})
	}

	req := &vapi.CallRequest{
		AssistantID:   s.assistantID,
		PhoneNumberID: s.phoneNumberID,
		Customers:     customers,
	}

	resp, err := s.client.CreateCall(ctx, req)
	if err != nil {
		configslog.Log.Error("CallService.DispatchCallsBatched: toplu istek başarısız",
			zap.Uint("eventID", event.ID), zap.Int("guests", len(guests)), zap.Error(err))
		for i := range guests {
			s.markGuest(ctx, guests[i].ID, models.CallStatusAPIError)
		}
		return 0, nil
	}

	initiated := 0
	for i := range guests {
		if i < len(resp.Results) && resp.Results[i].ID != "" {
			s.markGuest(ctx, guests[i].ID, models.CallStatusInitiated)
			initiated++
			continue
		}
		s.markGuest(ctx, guests[i].ID, models.CallStatusAPIError)
	}

	configslog.Log.Info("CallService.DispatchCallsBatched: toplu arama tamamlandı",
		zap.Uint("eventID", event.ID), zap.Int("initiated", initiated), zap.Int("total", len(guests)))
	return initiated, nil
}

// buildOverrides davetliye özel asistan yapılandırmasını üretir. Senaryo ve
// açılış/kapanış mesajlarındaki davetli adı token'ı burada çözülür.
func (s *CallService) buildOverrides(event *models.Event, script, guestName string) *vapi.AssistantOverrides {
	return &vapi.AssistantOverrides{
		FirstMessage:   s.scriptService.PersonalizeForGuest(s.scriptService.FirstMessage(event), guestName),
		EndCallMessage: s.scriptService.PersonalizeForGuest(s.scriptService.EndCallMessage(event), guestName),
		Model: &vapi.Model{
			Provider: llmProvider,
			Model:    llmModel,
			Messages: []vapi.ModelMessage{{Role: "system", Content: s.scriptService.PersonalizeForGuest(script, guestName)}},
		},
		Voice:           s.strategyFor(event.VoiceChoice).VoiceFor(event),
		BackgroundSound: event.BackgroundMusicURL,
	}
}

func (s *CallService) buildMetadata(event *models.Event, guest *models.Guest) *vapi.CallMetadata {
	return &vapi.CallMetadata{
		GuestID:       strconv.FormatUint(uint64(guest.ID), 10),
		EventID:       strconv.FormatUint(uint64(event.ID), 10),
		VoiceSampleID: event.VoiceSampleID,
	}
}

// markGuest durum güncelleme hatasını loglar ama akışı durdurmaz;
// webhook tarafı durumu daha sonra yine düzeltebilir.
func (s *CallService) markGuest(ctx context.Context, guestID uint, status models.CallStatus) {
	if err := s.guestRepo.UpdateCallStatus(ctx, guestID, status); err != nil {
		configslog.Log.Error("CallService: davetli durumu güncellenemedi",
			zap.Uint("guestID", guestID), zap.String("status", string(status)), zap.Error(err))
	}
}

var _ ICallService = (*CallService)(nil)
