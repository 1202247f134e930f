package handlers

import (
	"context"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"seslidavet.link/configs/configslog"
	"seslidavet.link/services"
)

func TestMain(m *testing.M) {
	configslog.InitLogger()
	code := m.Run()
	configslog.SyncLogger()
	os.Exit(code)
}

// stubWebhookService aldığı çağrıları kaydeder, sonucu sabit döndürür.
type stubWebhookService struct {
	callbacks []*services.CallbackPayload
	messages  []*services.WebhookMessage
	err       error
}

func (s *stubWebhookService) ProcessCallback(_ context.Context, payload *services.CallbackPayload) error {
	s.callbacks = append(s.callbacks, payload)
	return s.err
}

func (s *stubWebhookService) ProcessEnvelope(_ context.Context, message *services.WebhookMessage) error {
	s.messages = append(s.messages, message)
	return s.err
}

func newTestApp(stub *stubWebhookService) *fiber.App {
	app := fiber.New()
	handler := NewWebhookHandler(stub)
	app.Post("/vapi/callback", handler.HandleCallback)
	app.Post("/webhook", handler.HandleEvent)
	return app
}

func postJSON(t *testing.T, app *fiber.App, path, body string) int {
	t.Helper()
	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

func TestHandleCallback(t *testing.T) {
	stub := &stubWebhookService{}
	app := newTestApp(stub)

	body := `{"status":"ended","metadata":{"guestId":"3","eventId":"7"},"transcription":"yes I will come"}`
	status := postJSON(t, app, "/vapi/callback", body)

	assert.Equal(t, fiber.StatusOK, status)
	require.Len(t, stub.callbacks, 1)
	assert.Equal(t, "ended", stub.callbacks[0].Status)
	assert.Equal(t, "3", stub.callbacks[0].Metadata.GuestID)
}

func TestHandleCallback_MalformedBody(t *testing.T) {
	stub := &stubWebhookService{}
	app := newTestApp(stub)

	status := postJSON(t, app, "/vapi/callback", "bu json degil")

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Empty(t, stub.callbacks, "geçersiz gövde servise ulaşmamalı")
}

func TestHandleCallback_BadCorrelation(t *testing.T) {
	stub := &stubWebhookService{err: services.ErrBadCorrelation}
	app := newTestApp(stub)

	status := postJSON(t, app, "/vapi/callback", `{"status":"ended","metadata":{"guestId":"abc","eventId":"7"}}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHandleEvent_Envelope(t *testing.T) {
	stub := &stubWebhookService{}
	app := newTestApp(stub)

	body := `{"message":{"type":"end-of-call-report","call":{"metadata":{"guestId":"3","eventId":"7"}},"analysis":{"structuredData":{"rsvp_response":"yes"}}}}`
	status := postJSON(t, app, "/webhook", body)

	assert.Equal(t, fiber.StatusOK, status)
	require.Len(t, stub.messages, 1)
	require.NotNil(t, stub.messages[0])
	assert.Equal(t, "end-of-call-report", stub.messages[0].Type)
	assert.Equal(t, "yes", stub.messages[0].Analysis.StructuredData.RSVPResponse)
}

func TestHandleEvent_DirectMessage(t *testing.T) {
	stub := &stubWebhookService{}
	app := newTestApp(stub)

	// Zarfsız gönderim de kabul edilmeli.
	body := `{"type":"status-update","status":"failed","call":{"metadata":{"guestId":"3","eventId":"7"}}}`
	status := postJSON(t, app, "/webhook", body)

	assert.Equal(t, fiber.StatusOK, status)
	require.Len(t, stub.messages, 1)
	require.NotNil(t, stub.messages[0])
	assert.Equal(t, "status-update", stub.messages[0].Type)
}

func TestHandleEvent_MalformedBody(t *testing.T) {
	stub := &stubWebhookService{}
	app := newTestApp(stub)

	status := postJSON(t, app, "/webhook", "{kirik json")
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Empty(t, stub.messages)
}

func TestHandleEvent_BadCorrelation(t *testing.T) {
	stub := &stubWebhookService{err: services.ErrBadCorrelation}
	app := newTestApp(stub)

	body := `{"message":{"type":"end-of-call-report","call":{"metadata":{"guestId":"","eventId":""}}}}`
	status := postJSON(t, app, "/webhook", body)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

var _ services.IWebhookService = (*stubWebhookService)(nil)
