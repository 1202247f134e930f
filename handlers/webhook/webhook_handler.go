package handlers

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"seslidavet.link/configs/configslog"
	"seslidavet.link/services"
)

// WebhookHandler dış arama sağlayıcısının geri arama uçları.
type WebhookHandler struct {
	service services.IWebhookService
}

// NewWebhookHandler yeni bir WebhookHandler örneği oluşturur.
func NewWebhookHandler(service services.IWebhookService) *WebhookHandler {
	return &WebhookHandler{service: service}
}

// HandleCallback basit geri arama gövdesini işler (POST /vapi/callback).
func (h *WebhookHandler) HandleCallback(c *fiber.Ctx) error {
	var payload services.CallbackPayload
	if err := json.Unmarshal(c.Body(), &payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi."})
	}

	if err := h.service.ProcessCallback(c.UserContext(), &payload); err != nil {
		if errors.Is(err, services.ErrBadCorrelation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": services.ErrBadCorrelation.Error()})
		}
		configslog.Log.Error("Webhook - HandleCallback hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Geri arama işlenemedi."})
	}

	return c.JSON(fiber.Map{"status": "Callback processed"})
}

// HandleEvent zengin webhook zarfını işler (POST /webhook).
// Zarfsız (doğrudan mesaj gövdeli) gönderimler de kabul edilir.
func (h *WebhookHandler) HandleEvent(c *fiber.Ctx) error {
	var envelope services.WebhookEnvelope
	if err := json.Unmarshal(c.Body(), &envelope); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Geçersiz istek gövdesi."})
	}

	message := envelope.Message
	if message == nil {
		var direct services.WebhookMessage
		if err := json.Unmarshal(c.Body(), &direct); err == nil && direct.Type != "" {
			message = &direct
		}
	}

	if err := h.service.ProcessEnvelope(c.UserContext(), message); err != nil {
		if errors.Is(err, services.ErrBadCorrelation) {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": services.ErrBadCorrelation.Error()})
		}
		configslog.Log.Error("Webhook - HandleEvent hatası", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Webhook olayı işlenemedi."})
	}

	return c.JSON(fiber.Map{"status": "Event received"})
}
