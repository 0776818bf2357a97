package shop

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbellard/capstore/app/models"
	"github.com/mbellard/capstore/app/repository"
	"github.com/mbellard/capstore/internal/pkg/apperr"
	"github.com/mbellard/capstore/internal/pkg/payment"
)

type capturedPayment struct {
	amount   int64
	currency string
	metadata map[string]string
}

// fakeProcessor records CreatePayment calls; the embedded nil Processor
// panics on anything the shop service must never touch.
type fakeProcessor struct {
	payment.Processor
	err      error
	payments []capturedPayment
}

func (f *fakeProcessor) CreatePayment(ctx context.Context, amount int64, currency string, metadata map[string]string) (*payment.Intent, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.payments = append(f.payments, capturedPayment{amount: amount, currency: currency, metadata: metadata})
	return &payment.Intent{ID: "pi_test_123", ClientSecret: "pi_test_123_secret"}, nil
}

type fixture struct {
	svc   *Service
	repos *repository.Repositories
	proc  *fakeProcessor
	clock time.Time
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	repos := repository.NewRepositories()
	require.NoError(t, repos.Catalog.Create(&models.Product{ID: "cap_001", Name: "Classic Red Cap", Price: 2500, Stock: 50}))
	require.NoError(t, repos.Catalog.Create(&models.Product{ID: "cap_002", Name: "Sport Black Cap", Price: 3000, Stock: 3}))

	proc := &fakeProcessor{}
	svc := NewService(repos.Catalog, repos.Carts, repos.Orders, proc, "http://localhost:3000")

	f := &fixture{svc: svc, repos: repos, proc: proc, clock: time.Now().UTC()}
	svc.now = func() time.Time { return f.clock }
	return f
}

func TestAddToCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	cart, err := f.svc.AddToCart(ctx, "u1", "cap_001", 2)
	require.NoError(t, err)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 2, cart.Items[0].Quantity)

	cart, err = f.svc.AddToCart(ctx, "u1", "cap_001", 3)
	require.NoError(t, err)
	assert.Equal(t, 5, cart.Items[0].Quantity)

	_, err = f.svc.AddToCart(ctx, "u1", "ghost", 1)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, err = f.svc.AddToCart(ctx, "u1", "cap_002", 4)
	assert.Equal(t, apperr.InsufficientStock, apperr.KindOf(err))

	_, err = f.svc.AddToCart(ctx, "u1", "cap_001", 0)
	assert.Equal(t, apperr.InvalidInput, apperr.KindOf(err))
}

func TestViewCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.ViewCart(ctx, "u1")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	_, err = f.svc.AddToCart(ctx, "u1", "cap_001", 2)
	require.NoError(t, err)

	view, err := f.svc.ViewCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	assert.Equal(t, int64(5000), view.Total)
	assert.Equal(t, int64(5000), view.Items[0].Subtotal)
	assert.Empty(t, view.StockWarnings)
}

func TestViewCart_WarnsWhenStockDroppedBelowCart(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// Two valid adds can outgrow stock combined; view stays lenient.
	_, err := f.svc.AddToCart(ctx, "u1", "cap_002", 2)
	require.NoError(t, err)
	_, err = f.svc.AddToCart(ctx, "u1", "cap_002", 2)
	require.NoError(t, err)

	view, err := f.svc.ViewCart(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, view.StockWarnings, 1)
	assert.Equal(t, "Sport Black Cap: requested 4, available 3", view.StockWarnings[0])
	// Total still prices the requested quantity.
	assert.Equal(t, int64(12000), view.Total)
}

func TestCheckout(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddToCart(ctx, "u1", "cap_001", 2)
	require.NoError(t, err)

	conf, err := f.svc.Checkout(ctx, "u1")
	require.NoError(t, err)
	assert.NotEmpty(t, conf.OrderID)
	assert.Equal(t, "http://localhost:3000/checkout/"+conf.OrderID, conf.CheckoutURL)
	assert.Equal(t, "pi_test_123_secret", conf.ClientSecret)

	// Authorization was requested for the exact total, tagged with the order id.
	require.Len(t, f.proc.payments, 1)
	assert.Equal(t, int64(5000), f.proc.payments[0].amount)
	assert.Equal(t, "eur", f.proc.payments[0].currency)
	assert.Equal(t, conf.OrderID, f.proc.payments[0].metadata["order_id"])

	order, err := f.svc.GetOrder(ctx, conf.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusProcessing, order.Status)
	assert.Equal(t, "pi_test_123", order.PaymentIntentID)
	assert.Equal(t, int64(5000), order.Total)

	// The cart is only cleared by the payment webhook, never by checkout.
	_, err = f.repos.Carts.GetByUser("u1")
	assert.NoError(t, err)
}

func TestCheckout_NoCart(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.Checkout(context.Background(), "nobody")
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
}

func TestCheckout_InsufficientStockCreatesNoOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	// 2 + 2 passes each add individually but exceeds the stock of 3.
	_, err := f.svc.AddToCart(ctx, "u1", "cap_002", 2)
	require.NoError(t, err)
	_, err = f.svc.AddToCart(ctx, "u1", "cap_002", 2)
	require.NoError(t, err)

	_, err = f.svc.Checkout(ctx, "u1")
	assert.Equal(t, apperr.InsufficientStock, apperr.KindOf(err))

	assert.Empty(t, f.svc.ListOrders(ctx, "u1"))
	assert.Empty(t, f.proc.payments)
}

func TestCheckout_ProcessorFailureCreatesNoOrder(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	f.proc.err = errors.New("card network unreachable")

	_, err := f.svc.AddToCart(ctx, "u1", "cap_001", 1)
	require.NoError(t, err)

	_, err = f.svc.Checkout(ctx, "u1")
	require.Error(t, err)
	assert.Equal(t, apperr.Processor, apperr.KindOf(err))
	assert.Contains(t, err.Error(), "card network unreachable")

	// No orphaned half-created order.
	assert.Empty(t, f.svc.ListOrders(ctx, "u1"))
}

func TestListOrders(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.svc.AddToCart(ctx, "u1", "cap_001", 1)
	require.NoError(t, err)
	_, err = f.svc.Checkout(ctx, "u1")
	require.NoError(t, err)

	assert.Len(t, f.svc.ListOrders(ctx, "u1"), 1)
	assert.Empty(t, f.svc.ListOrders(ctx, "u2"))
}
