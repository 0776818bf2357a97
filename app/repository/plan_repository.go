package repository

import (
	"sync"

	"github.com/mbellard/capstore/app/models"
)

// planRepository implements PlanRepository with in-memory storage
type planRepository struct {
	mu    sync.RWMutex
	plans map[string]*models.SubscriptionPlan
}

// NewPlanRepository creates a new in-memory subscription-plan catalog
func NewPlanRepository() PlanRepository {
	return &planRepository{
		plans: make(map[string]*models.SubscriptionPlan),
	}
}

func (r *planRepository) Create(plan *models.SubscriptionPlan) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p := *plan
	r.plans[p.ID] = &p
	return nil
}

func (r *planRepository) GetByID(id string) (*models.SubscriptionPlan, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plan, exists := r.plans[id]
	if !exists {
		return nil, ErrPlanNotFound
	}
	copy := *plan
	return &copy, nil
}

func (r *planRepository) List() []models.SubscriptionPlan {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]models.SubscriptionPlan, 0, len(r.plans))
	for _, p := range r.plans {
		result = append(result, *p)
	}
	return result
}
