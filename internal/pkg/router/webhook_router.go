package router

import (
	"github.com/gofiber/fiber/v2"
)

type WebhookRouter struct {
	ctl Controllers
}

// Webhooks live outside /api so the payment processor endpoint is easy
// to exempt from any future API-wide middleware.
func (h WebhookRouter) InstallRouter(app *fiber.App) {
	app.Post("/webhooks/stripe", h.ctl.Webhooks.HandleStripe)
}

func NewWebhookRouter(ctl Controllers) *WebhookRouter {
	return &WebhookRouter{ctl: ctl}
}
