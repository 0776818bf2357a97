package controllers

import "github.com/gofiber/fiber/v2"

// HandleIndex identifies the service.
func HandleIndex(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"service": "capstore", "status": "ok"})
}

// HandleHealth is the liveness probe.
func HandleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"status": "healthy"})
}
