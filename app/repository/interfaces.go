package repository

import (
	"errors"

	"github.com/mbellard/capstore/app/models"
)

// Sentinel errors returned by the stores. The service layer translates them
// into the user-facing error taxonomy.
var (
	ErrProductNotFound       = errors.New("product not found")
	ErrCartNotFound          = errors.New("cart not found")
	ErrOrderNotFound         = errors.New("order not found")
	ErrPlanNotFound          = errors.New("subscription plan not found")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrPaymentMethodNotFound = errors.New("payment method not found")
)

// CatalogRepository defines the interface for product catalog operations.
// The catalog is read-mostly: writes happen only at seeding time and via
// the payment-success webhook stock decrement.
type CatalogRepository interface {
	Create(product *models.Product) error
	GetByID(id string) (*models.Product, error)
	List() []models.Product
	// AdjustStock adds delta to the product's stock under the store lock.
	// There is intentionally no floor check: concurrent oversells may drive
	// stock negative.
	AdjustStock(id string, delta int) error
}

// CartRepository defines the interface for per-user cart storage. Keys are
// user ids; one cart per user.
type CartRepository interface {
	// AddItem creates the cart if absent, then increments the line for the
	// product or appends a new one, atomically. Returns a snapshot of the
	// resulting cart.
	AddItem(userID string, item models.CartItem) *models.Cart
	GetByUser(userID string) (*models.Cart, error)
	Delete(userID string)
}

// OrderRepository defines the interface for order storage.
type OrderRepository interface {
	Create(order *models.Order) error
	GetByID(id string) (*models.Order, error)
	// ListByUser scans all orders and returns the ones owned by userID.
	ListByUser(userID string) []models.Order
	// Mutate runs fn on the stored order under the per-store write lock,
	// giving webhook handlers and request handlers single-writer semantics
	// for the same order id. If fn returns an error the order is left
	// unchanged.
	Mutate(id string, fn func(*models.Order) error) (*models.Order, error)
}

// PlanRepository defines the interface for the static subscription-plan
// catalog. Read-only after boot.
type PlanRepository interface {
	Create(plan *models.SubscriptionPlan) error
	GetByID(id string) (*models.SubscriptionPlan, error)
	List() []models.SubscriptionPlan
}

// SubscriptionRepository defines the interface for user subscriptions.
type SubscriptionRepository interface {
	Create(sub *models.UserSubscription) error
	GetByID(id string) (*models.UserSubscription, error)
	Mutate(id string, fn func(*models.UserSubscription) error) (*models.UserSubscription, error)
	// MutateByStripeID applies fn to the first subscription whose external
	// reference matches, reporting whether a match was found.
	MutateByStripeID(stripeID string, fn func(*models.UserSubscription) error) (bool, error)
}

// PaymentMethodRepository defines the interface for saved payment methods.
type PaymentMethodRepository interface {
	Create(pm *models.SavedPaymentMethod) error
	GetByID(id string) (*models.SavedPaymentMethod, error)
	ListByUser(userID string) []models.SavedPaymentMethod
	CountByUser(userID string) int
	Delete(id string) error
}

// Repositories bundles every store behind one injectable application-state
// object. No package-level store state exists; tests build their own.
type Repositories struct {
	Catalog        CatalogRepository
	Carts          CartRepository
	Orders         OrderRepository
	Plans          PlanRepository
	Subscriptions  SubscriptionRepository
	PaymentMethods PaymentMethodRepository
}

// NewRepositories creates the full set of in-memory stores.
func NewRepositories() *Repositories {
	return &Repositories{
		Catalog:        NewCatalogRepository(),
		Carts:          NewCartRepository(),
		Orders:         NewOrderRepository(),
		Plans:          NewPlanRepository(),
		Subscriptions:  NewSubscriptionRepository(),
		PaymentMethods: NewPaymentMethodRepository(),
	}
}
