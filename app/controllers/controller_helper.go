// Package controllers maps HTTP requests to the shop, subscription and
// payment method services and translates service errors into status codes.
package controllers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"github.com/mbellard/capstore/internal/pkg/apperr"
)

var validate = validator.New()

// parseBody decodes and validates a JSON request body. A false return
// means the response has already been written.
func parseBody(c *fiber.Ctx, out interface{}) bool {
	if err := c.BodyParser(out); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
		return false
	}
	if err := validate.Struct(out); err != nil {
		c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
		return false
	}
	return true
}

// respondError maps an error to its HTTP status and a JSON error body.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch apperr.KindOf(err) {
	case apperr.NotFound:
		status = fiber.StatusNotFound
	case apperr.InvalidInput, apperr.EmptyCart, apperr.InsufficientStock,
		apperr.InvalidState, apperr.WindowExpired, apperr.MalformedPayload:
		status = fiber.StatusBadRequest
	case apperr.Forbidden:
		status = fiber.StatusForbidden
	case apperr.Processor:
		status = fiber.StatusInternalServerError
	}

	if status == fiber.StatusInternalServerError {
		log.Errorf("request failed: %v", err)
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
