package repository

import (
	"sync"

	"github.com/mbellard/capstore/app/models"
)

// paymentMethodRepository implements PaymentMethodRepository with in-memory
// storage
type paymentMethodRepository struct {
	mu      sync.RWMutex
	methods map[string]*models.SavedPaymentMethod
}

// NewPaymentMethodRepository creates a new in-memory payment-method store
func NewPaymentMethodRepository() PaymentMethodRepository {
	return &paymentMethodRepository{
		methods: make(map[string]*models.SavedPaymentMethod),
	}
}

func (r *paymentMethodRepository) Create(pm *models.SavedPaymentMethod) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	m := *pm
	r.methods[m.ID] = &m
	return nil
}

func (r *paymentMethodRepository) GetByID(id string) (*models.SavedPaymentMethod, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	pm, exists := r.methods[id]
	if !exists {
		return nil, ErrPaymentMethodNotFound
	}
	copy := *pm
	return &copy, nil
}

func (r *paymentMethodRepository) ListByUser(userID string) []models.SavedPaymentMethod {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.SavedPaymentMethod, 0)
	for _, pm := range r.methods {
		if pm.UserID == userID {
			result = append(result, *pm)
		}
	}
	return result
}

func (r *paymentMethodRepository) CountByUser(userID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, pm := range r.methods {
		if pm.UserID == userID {
			count++
		}
	}
	return count
}

func (r *paymentMethodRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.methods[id]; !exists {
		return ErrPaymentMethodNotFound
	}
	delete(r.methods, id)
	return nil
}
