package shop

import (
	"context"

	"github.com/gofiber/fiber/v2/log"

	"github.com/mbellard/capstore/app/models"
	"github.com/mbellard/capstore/internal/pkg/apperr"
	"github.com/mbellard/capstore/internal/pkg/pricing"
)

// AddToCart puts quantity units of a product into the user's cart, creating
// the cart if needed. The product must exist and currently have enough
// stock, but nothing is reserved: stock is only decremented at confirmed
// payment, so two carts can hold the same units.
func (s *Service) AddToCart(ctx context.Context, userID, productID string, quantity int) (*models.Cart, error) {
	_ = ctx
	if quantity <= 0 {
		return nil, apperr.New(apperr.InvalidInput, "quantity must be positive")
	}

	product, err := s.catalog.GetByID(productID)
	if err != nil {
		return nil, apperr.Wrap(apperr.NotFound, err, "product %s not found", productID)
	}
	if product.Stock < quantity {
		return nil, apperr.New(apperr.InsufficientStock,
			"insufficient stock for %s: available %d", product.Name, product.Stock)
	}

	cart := s.carts.AddItem(userID, models.CartItem{ProductID: productID, Quantity: quantity})
	log.Infof("cart updated for user %s: %s x%d", userID, productID, quantity)
	return cart, nil
}

// ViewCart prices the user's cart leniently: stock shortfalls come back as
// warnings, and the total reflects the requested quantities.
func (s *Service) ViewCart(ctx context.Context, userID string) (*CartView, error) {
	_ = ctx
	cart, err := s.carts.GetByUser(userID)
	if err != nil {
		return nil, apperr.Wrap(apperr.NotFound, err, "no cart for user %s", userID)
	}

	quote, err := pricing.Price(cart.Items, s.catalog, false)
	if err != nil {
		return nil, err
	}

	view := &CartView{
		UserID:        cart.UserID,
		Items:         make([]CartLine, 0, len(quote.Items)),
		Total:         quote.Total,
		CreatedAt:     cart.CreatedAt,
		StockWarnings: quote.StockWarnings,
	}
	for _, item := range quote.Items {
		view.Items = append(view.Items, CartLine{
			ProductID: item.ProductID,
			Name:      item.ProductName,
			Price:     item.Price,
			Quantity:  item.Quantity,
			Subtotal:  item.Subtotal(),
		})
	}
	return view, nil
}
