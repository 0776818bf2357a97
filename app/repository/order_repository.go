package repository

import (
	"sync"

	"github.com/mbellard/capstore/app/models"
)

// orderRepository implements OrderRepository with in-memory storage
type orderRepository struct {
	mu     sync.RWMutex
	orders map[string]*models.Order
}

// NewOrderRepository creates a new in-memory order store
func NewOrderRepository() OrderRepository {
	return &orderRepository{
		orders: make(map[string]*models.Order),
	}
}

func (r *orderRepository) Create(order *models.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders[order.ID] = order.Clone()
	return nil
}

func (r *orderRepository) GetByID(id string) (*models.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}
	return order.Clone(), nil
}

func (r *orderRepository) ListByUser(userID string) []models.Order {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.Order, 0)
	for _, order := range r.orders {
		if order.UserID == userID {
			result = append(result, *order.Clone())
		}
	}
	return result
}

// Mutate holds the write lock for the duration of fn, so concurrent request
// handlers and webhook deliveries touching the same order cannot interleave.
// fn works on a copy; the stored record is swapped only when fn succeeds.
func (r *orderRepository) Mutate(id string, fn func(*models.Order) error) (*models.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	order, exists := r.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}

	updated := order.Clone()
	if err := fn(updated); err != nil {
		return nil, err
	}
	r.orders[id] = updated
	return updated.Clone(), nil
}
