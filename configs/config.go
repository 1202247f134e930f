package configs

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"

	"seslidavet.link/configs/configslog"
)

// Config uygulamanın tüm ortam değişkeni tabanlı ayarlarını tutar.
// Asistan ve telefon numarası ID'leri sağlayıcı tarafındaki kaynaklardır;
// mantık değil konfigürasyon olarak ele alınır.
type Config struct {
	Port      string `env:"PORT" envDefault:"3000"`
	AppEnv    string `env:"APP_ENV" envDefault:"development"`
	UploadDir string `env:"UPLOAD_DIR" envDefault:"data"`

	DatabaseURL string `env:"DATABASE_URL"`

	PromptTemplatePath string `env:"PROMPT_TEMPLATE_PATH" envDefault:"assets/invitation_prompt.txt"`

	VapiAPIKey        string `env:"VAPI_API_KEY"`
	VapiBaseURL       string `env:"VAPI_BASE_URL" envDefault:"https://api.vapi.ai"`
	VapiAssistantID   string `env:"VAPI_ASSISTANT_ID"`
	VapiPhoneNumberID string `env:"VAPI_PHONE_NUMBER_ID" envDefault:"bbb6faa5-8983-4411-b7a1-cd4f159fc4ae"`

	LmntAPIKey  string `env:"LMNT_API_KEY"`
	LmntBaseURL string `env:"LMNT_BASE_URL" envDefault:"https://api.lmnt.com"`

	// 11labs önayarlı ses ID'leri. Varsayılanlar herkese açık
	// kütüphane sesleridir (Rachel / Antoni).
	VoiceIDFemale string `env:"VOICE_ID_FEMALE" envDefault:"21m00Tcm4TlvDq8ikWAM"`
	VoiceIDMale   string `env:"VOICE_ID_MALE" envDefault:"ErXwobaYiN019PkySvjV"`
	VoiceIDTest   string `env:"VOICE_ID_TEST" envDefault:"21m00Tcm4TlvDq8ikWAM"`
}

// Load .env dosyasını (varsa) okur ve Config'i doldurur.
// Sağlayıcı anahtarlarının eksik olması başlatmayı durdurmaz, sadece uyarı loglanır.
func Load() (*Config, error) {
	// .env opsiyoneldir; production ortamında değişkenler dışarıdan gelir.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("ortam değişkenleri okunamadı: %w", err)
	}

	if cfg.VapiAPIKey == "" {
		configslog.SLog.Warn("VAPI_API_KEY tanımlı değil; dış arama entegrasyonu çalışmayacak.")
	}
	if cfg.LmntAPIKey == "" {
		configslog.SLog.Warn("LMNT_API_KEY tanımlı değil; ses klonlama entegrasyonu çalışmayacak.")
	}
	if cfg.VapiAssistantID == "" {
		configslog.SLog.Warn("VAPI_ASSISTANT_ID tanımlı değil; aramalar başlatılamaz.")
	}

	return cfg, nil
}
