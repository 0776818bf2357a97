package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mbellard/capstore/internal/pkg/shop"
)

type CartController struct {
	shop *shop.Service
}

func NewCartController(shop *shop.Service) *CartController {
	return &CartController{shop: shop}
}

type AddToCartRequest struct {
	UserID    string `json:"user_id" validate:"required"`
	ProductID string `json:"product_id" validate:"required"`
	Quantity  int    `json:"quantity" validate:"required,gt=0"`
}

// HandleAdd puts a quantity of one product into the user's cart,
// creating the cart on first use.
func (ct *CartController) HandleAdd(c *fiber.Ctx) error {
	var req AddToCartRequest
	if !parseBody(c, &req) {
		return nil
	}

	cart, err := ct.shop.AddToCart(c.Context(), req.UserID, req.ProductID, req.Quantity)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(cart)
}

// HandleView prices the cart leniently and returns line items, total and
// any stock warnings.
func (ct *CartController) HandleView(c *fiber.Ctx) error {
	userID := c.Query("user_id")
	if userID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "user_id missing"})
	}

	view, err := ct.shop.ViewCart(c.Context(), userID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(view)
}

type CheckoutRequest struct {
	UserID string `json:"user_id" validate:"required"`
}

// HandleCheckout turns the cart into an order and opens a payment intent.
func (ct *CartController) HandleCheckout(c *fiber.Ctx) error {
	var req CheckoutRequest
	if !parseBody(c, &req) {
		return nil
	}

	conf, err := ct.shop.Checkout(c.Context(), req.UserID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(conf)
}
