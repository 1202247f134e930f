package routes

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverMiddleware "github.com/gofiber/fiber/v2/middleware/recover"

	panel_handlers "seslidavet.link/handlers/panel"
	webhook_handlers "seslidavet.link/handlers/webhook"
)

// Handlers rota kaydı için gereken handler örnekleri.
// Bağımlılıklar main.go'da kurulup buraya enjekte edilir.
type Handlers struct {
	Event   *panel_handlers.EventHandler
	Webhook *webhook_handlers.WebhookHandler
}

// SetupRoutes tüm uygulama rotalarını ve genel middleware'leri ayarlar.
func SetupRoutes(app *fiber.App, h Handlers) {
	app.Use(recoverMiddleware.New()) // Panic yakalama
	app.Use(logger.New())            // İstek loglama

	registerPanelRoutes(app, h.Event)
	registerWebhookRoutes(app, h.Webhook)

	// Kök URL etkinlik oluşturma formuna yönlendirir.
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/panel/events/create", fiber.StatusFound)
	})

	// En sonda, eşleşmeyen tüm rotaları yakalar.
	app.Use(notFoundHandler)
}

func notFoundHandler(c *fiber.Ctx) error {
	accepts := c.Accepts("application/json", "text/html")
	switch accepts {
	case "application/json":
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Kaynak bulunamadı"})
	default:
		return c.Status(fiber.StatusNotFound).Render("errors/404", fiber.Map{"Title": "Sayfa Bulunamadı"}, "layouts/main")
	}
}
