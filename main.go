package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"

	"seslidavet.link/configs"
	"seslidavet.link/configs/configsdatabase"
	"seslidavet.link/configs/configslog"
	"seslidavet.link/database"
	panel_handlers "seslidavet.link/handlers/panel"
	webhook_handlers "seslidavet.link/handlers/webhook"
	"seslidavet.link/pkg/lmnt"
	"seslidavet.link/pkg/vapi"
	"seslidavet.link/repositories"
	"seslidavet.link/routes"
	"seslidavet.link/services"
)

func main() {
	configslog.InitLogger()
	defer configslog.SyncLogger()

	cfg, err := configs.Load()
	if err != nil {
		configslog.Log.Fatal("Konfigürasyon yüklenemedi", zap.Error(err))
	}

	configsdatabase.InitDB(cfg.DatabaseURL)
	defer configsdatabase.CloseDB()
	db := configsdatabase.GetDB()

	database.Initialize(db, true)

	if err := os.MkdirAll(cfg.UploadDir, 0o755); err != nil {
		configslog.Log.Fatal("Yükleme dizini oluşturulamadı", zap.String("dir", cfg.UploadDir), zap.Error(err))
	}

	// Repository ve servis katmanları
	eventRepo := repositories.NewEventRepository(db)
	guestRepo := repositories.NewGuestRepository(db)
	rsvpRepo := repositories.NewRSVPRepository(db)

	vapiClient := vapi.NewClient(cfg.VapiBaseURL, cfg.VapiAPIKey)
	lmntClient := lmnt.NewClient(cfg.LmntBaseURL, cfg.LmntAPIKey)

	scriptService := services.NewScriptService(cfg.PromptTemplatePath)
	callService := services.NewCallService(vapiClient, guestRepo, scriptService, cfg)
	voiceService := services.NewVoiceService(lmntClient, cfg)
	eventService := services.NewEventService(eventRepo, guestRepo, rsvpRepo, scriptService, callService)
	webhookService := services.NewWebhookService(guestRepo, rsvpRepo)

	engine := html.New("./views", ".html")
	app := fiber.New(fiber.Config{
		Views:     engine,
		BodyLimit: 25 * 1024 * 1024, // ses örneği yüklemeleri için
	})

	routes.SetupRoutes(app, routes.Handlers{
		Event:   panel_handlers.NewEventHandler(eventService, voiceService, cfg),
		Webhook: webhook_handlers.NewWebhookHandler(webhookService),
	})

	// Graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		configslog.SLog.Info("Kapatma sinyali alındı, sunucu durduruluyor...")
		if err := app.Shutdown(); err != nil {
			configslog.Log.Error("Sunucu kapatılırken hata oluştu", zap.Error(err))
		}
	}()

	configslog.SLog.Infof("Sunucu %s portunda dinliyor", cfg.Port)
	if err := app.Listen(":" + cfg.Port); err != nil {
		configslog.Log.Fatal("Sunucu başlatılamadı", zap.Error(err))
	}

	configslog.SLog.Info("Sunucu durdu.")
}
