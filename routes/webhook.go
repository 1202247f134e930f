package routes

import (
	"github.com/gofiber/fiber/v2"

	webhook_handlers "seslidavet.link/handlers/webhook"
)

// registerWebhookRoutes dış arama sağlayıcısının geri arama rotalarını tanımlar.
// Bu uçlar kimlik doğrulaması olmadan, sağlayıcı tarafından çağrılır.
func registerWebhookRoutes(app *fiber.App, webhookHandler *webhook_handlers.WebhookHandler) {
	app.Post("/vapi/callback", webhookHandler.HandleCallback) // basit geri arama gövdesi
	app.Post("/webhook", webhookHandler.HandleEvent)          // zengin webhook zarfı
}
