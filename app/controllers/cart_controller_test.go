package controllers

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbellard/capstore/app/models"
	"github.com/mbellard/capstore/app/repository"
	"github.com/mbellard/capstore/internal/pkg/payment"
	"github.com/mbellard/capstore/internal/pkg/shop"
)

type stubProcessor struct {
	payment.Processor
}

func (stubProcessor) CreatePayment(ctx context.Context, amount int64, currency string, metadata map[string]string) (*payment.Intent, error) {
	return &payment.Intent{ID: "pi_ctl", ClientSecret: "pi_ctl_secret", Status: "requires_payment_method"}, nil
}

func newTestApp(t *testing.T) (*fiber.App, *repository.Repositories) {
	t.Helper()
	repos := repository.NewRepositories()
	require.NoError(t, repos.Catalog.Create(&models.Product{ID: "cap_001", Name: "Classic Red Cap", Price: 2500, Stock: 50}))

	svc := shop.NewService(repos.Catalog, repos.Carts, repos.Orders, stubProcessor{}, "http://localhost:3000")
	cart := NewCartController(svc)

	app := fiber.New()
	app.Post("/api/cart/add", cart.HandleAdd)
	app.Get("/api/cart/view", cart.HandleView)
	app.Post("/api/cart/checkout", cart.HandleCheckout)
	return app, repos
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]json.RawMessage) {
	t.Helper()
	req := httptest.NewRequest(fiber.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var decoded map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestHandleAdd(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := postJSON(t, app, "/api/cart/add", `{"user_id": "u1", "product_id": "cap_001", "quantity": 2}`)
	assert.Equal(t, fiber.StatusOK, status)
	assert.Contains(t, body, "items")
}

func TestHandleAdd_ValidationFailure(t *testing.T) {
	app, _ := newTestApp(t)

	status, body := postJSON(t, app, "/api/cart/add", `{"user_id": "u1", "product_id": "cap_001", "quantity": 0}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Contains(t, body, "error")
}

func TestHandleAdd_UnknownProductIs404(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := postJSON(t, app, "/api/cart/add", `{"user_id": "u1", "product_id": "ghost", "quantity": 1}`)
	assert.Equal(t, fiber.StatusNotFound, status)
}

func TestHandleAdd_InsufficientStockIs400(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := postJSON(t, app, "/api/cart/add", `{"user_id": "u1", "product_id": "cap_001", "quantity": 51}`)
	assert.Equal(t, fiber.StatusBadRequest, status)
}

func TestHandleView(t *testing.T) {
	app, _ := newTestApp(t)
	_, _ = postJSON(t, app, "/api/cart/add", `{"user_id": "u1", "product_id": "cap_001", "quantity": 2}`)

	req := httptest.NewRequest(fiber.MethodGet, "/api/cart/view?user_id=u1", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	var view shop.CartView
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&view))
	assert.Equal(t, int64(5000), view.Total)
}

func TestHandleView_MissingUserParam(t *testing.T) {
	app, _ := newTestApp(t)

	req := httptest.NewRequest(fiber.MethodGet, "/api/cart/view", nil)
	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleCheckout(t *testing.T) {
	app, repos := newTestApp(t)
	_, _ = postJSON(t, app, "/api/cart/add", `{"user_id": "u1", "product_id": "cap_001", "quantity": 2}`)

	status, body := postJSON(t, app, "/api/cart/checkout", `{"user_id": "u1"}`)
	assert.Equal(t, fiber.StatusCreated, status)
	assert.Contains(t, body, "order_id")
	assert.Contains(t, body, "checkout_url")
	assert.Contains(t, body, "client_secret")

	var orderID string
	require.NoError(t, json.Unmarshal(body["order_id"], &orderID))
	orders := repos.Orders.ListByUser("u1")
	require.Len(t, orders, 1)
	assert.Equal(t, orderID, orders[0].ID)
}

func TestHandleCheckout_NoCartIs404(t *testing.T) {
	app, _ := newTestApp(t)

	status, _ := postJSON(t, app, "/api/cart/checkout", `{"user_id": "nobody"}`)
	assert.Equal(t, fiber.StatusNotFound, status)
}
