package services

import (
	"context"
	"strings"

	"go.uber.org/zap"

	"seslidavet.link/configs"
	"seslidavet.link/configs/configslog"
	"seslidavet.link/models"
)

// VoiceServiceError ses servisi hataları.
type VoiceServiceError string

func (e VoiceServiceError) Error() string { return string(e) }

const (
	ErrVoiceSampleMissing VoiceServiceError = "ses örneği dosyası belirtilmedi"
	ErrVoiceCloneFailed   VoiceServiceError = "ses klonlama başarısız"
)

// IVoiceCloner ses klonlama sağlayıcısının soyutlaması; pkg/lmnt.Client bunu karşılar.
type IVoiceCloner interface {
	CreateCustomVoice(ctx context.Context, filePath, hostName string) (string, error)
}

// IVoiceService ses seçimi ve klonlama servisi.
type IVoiceService interface {
	CloneVoice(ctx context.Context, audioPath, hostName string) (string, error)
	PresetVoiceID(choice string) string
}

// VoiceService IVoiceService arayüzünü uygular.
type VoiceService struct {
	cloner IVoiceCloner
	cfg    *configs.Config
}

// NewVoiceService yeni bir VoiceService örneği oluşturur.
func NewVoiceService(cloner IVoiceCloner, cfg *configs.Config) IVoiceService {
	return &VoiceService{cloner: cloner, cfg: cfg}
}

// CloneVoice yüklenen ses örneğinden klon oluşturur ve klon ID'sini döndürür.
// Klonlama başarısızlığı iş akışını durdurmaz; çağıran önayar sese düşer.
func (s *VoiceService) CloneVoice(ctx context.Context, audioPath, hostName string) (string, error) {
	if strings.TrimSpace(audioPath) == "" {
		return "", ErrVoiceSampleMissing
	}

	voiceID, err := s.cloner.CreateCustomVoice(ctx, audioPath, hostName)
	if err != nil {
		configslog.Log.Error("VoiceService.CloneVoice: klonlama başarısız",
			zap.String("host", hostName), zap.Error(err))
		return "", ErrVoiceCloneFailed
	}
	configslog.SLog.Infof("Ses klonu oluşturuldu: %s (%s)", voiceID, hostName)
	return voiceID, nil
}

// PresetVoiceID ses seçimine karşılık gelen önayar ses ID'sini döndürür.
// Tanınmayan seçimler kadın sese indirgenir.
func (s *VoiceService) PresetVoiceID(choice string) string {
	switch choice {
	case models.VoiceChoiceMale:
		return s.cfg.VoiceIDMale
	case models.VoiceChoiceTest:
		return s.cfg.VoiceIDTest
	default:
		return s.cfg.VoiceIDFemale
	}
}

var _ IVoiceService = (*VoiceService)(nil)
