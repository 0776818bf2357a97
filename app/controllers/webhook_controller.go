package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mbellard/capstore/internal/pkg/webhook"
)

type WebhookController struct {
	dispatcher *webhook.Dispatcher
}

func NewWebhookController(dispatcher *webhook.Dispatcher) *WebhookController {
	return &WebhookController{dispatcher: dispatcher}
}

// HandleStripe receives processor callbacks. The raw body goes to the
// dispatcher untouched; a 200 acknowledges the event so the processor
// stops retrying.
func (ct *WebhookController) HandleStripe(c *fiber.Ctx) error {
	if err := ct.dispatcher.Handle(c.Context(), c.Body()); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"received": true})
}
