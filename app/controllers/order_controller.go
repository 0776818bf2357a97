package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mbellard/capstore/app/models"
	"github.com/mbellard/capstore/internal/pkg/shop"
)

type OrderController struct {
	shop *shop.Service
}

func NewOrderController(shop *shop.Service) *OrderController {
	return &OrderController{shop: shop}
}

func (ct *OrderController) HandleGet(c *fiber.Ctx) error {
	order, err := ct.shop.GetOrder(c.Context(), c.Params("order_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}

func (ct *OrderController) HandleList(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id missing"})
	}
	return c.JSON(fiber.Map{"orders": ct.shop.ListOrders(c.Context(), userID)})
}

// HandleCancel cancels an order inside the cancellation window and
// returns a receipt with the order's age in hours.
func (ct *OrderController) HandleCancel(c *fiber.Ctx) error {
	receipt, err := ct.shop.CancelOrder(c.Context(), c.Params("order_id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(receipt)
}

type UpdateOrderRequest struct {
	Items []models.CartItem `json:"items" validate:"required,min=1,dive"`
}

// HandleUpdate replaces the items of an order inside the modification
// window. The order is repriced strictly and goes back to pending.
func (ct *OrderController) HandleUpdate(c *fiber.Ctx) error {
	var req UpdateOrderRequest
	if !parseBody(c, &req) {
		return nil
	}

	order, err := ct.shop.ModifyOrder(c.Context(), c.Params("order_id"), req.Items)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(order)
}
