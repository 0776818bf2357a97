// Package shop drives the cart and order lifecycle: cart mutation, priced
// views, checkout against the payment processor, and the time-windowed
// cancellation/modification of orders.
package shop

import (
	"time"

	"github.com/mbellard/capstore/app/repository"
	"github.com/mbellard/capstore/internal/pkg/payment"
)

// CancellationWindowHours is how long after creation an order may still be
// cancelled or modified.
const CancellationWindowHours = 24

// Service owns the cart and order flows. All stores and the processor are
// injected; there is no package-level state.
type Service struct {
	catalog   repository.CatalogRepository
	carts     repository.CartRepository
	orders    repository.OrderRepository
	processor payment.Processor
	baseURL   string

	now func() time.Time
}

// NewService creates the shop service.
func NewService(
	catalog repository.CatalogRepository,
	carts repository.CartRepository,
	orders repository.OrderRepository,
	processor payment.Processor,
	baseURL string,
) *Service {
	return &Service{
		catalog:   catalog,
		carts:     carts,
		orders:    orders,
		processor: processor,
		baseURL:   baseURL,
		now:       time.Now,
	}
}

// CartLine is one priced row of a cart view.
type CartLine struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Price     int64  `json:"price"`
	Quantity  int    `json:"quantity"`
	Subtotal  int64  `json:"subtotal"`
}

// CartView is the lenient-mode priced rendering of a user's cart.
type CartView struct {
	UserID        string     `json:"user_id"`
	Items         []CartLine `json:"items"`
	Total         int64      `json:"total"`
	CreatedAt     time.Time  `json:"created_at"`
	StockWarnings []string   `json:"stock_warnings"`
}

// CheckoutConfirmation is returned when an order was created and its payment
// authorized. ClientSecret completes the payment client-side.
type CheckoutConfirmation struct {
	OrderID      string `json:"order_id"`
	CheckoutURL  string `json:"checkout_url"`
	ClientSecret string `json:"client_secret"`
}

// CancelReceipt reports a successful order cancellation.
type CancelReceipt struct {
	OrderID         string    `json:"order_id"`
	CancelledAt     time.Time `json:"cancelled_at"`
	HoursSinceOrder int64     `json:"hours_since_order"`
}
