package routes

import (
	"github.com/gofiber/fiber/v2"

	panel_handlers "seslidavet.link/handlers/panel"
)

// registerPanelRoutes /panel altındaki etkinlik iş akışı rotalarını tanımlar.
func registerPanelRoutes(app *fiber.App, eventHandler *panel_handlers.EventHandler) {
	panelGroup := app.Group("/panel")

	panelGroup.Get("/events", eventHandler.ListEvents)               // GET /panel/events?email=...
	panelGroup.Get("/events/create", eventHandler.ShowCreateEvent)   // GET /panel/events/create
	panelGroup.Post("/events/create", eventHandler.CreateEvent)      // POST /panel/events/create
	panelGroup.Post("/events/:id/voice", eventHandler.SetVoice)      // POST /panel/events/{id}/voice
	panelGroup.Post("/events/:id/guests", eventHandler.AddGuests)    // POST /panel/events/{id}/guests
	panelGroup.Get("/events/:id/script", eventHandler.ShowScript)    // GET /panel/events/{id}/script
	panelGroup.Post("/events/:id/script", eventHandler.SaveScript)   // POST /panel/events/{id}/script
	panelGroup.Post("/events/:id/calls", eventHandler.InitiateCalls) // POST /panel/events/{id}/calls
	panelGroup.Get("/events/:id/summary", eventHandler.ShowSummary)  // GET /panel/events/{id}/summary
}
