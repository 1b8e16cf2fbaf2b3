package repositories

import (
	"fmt"
	"sync"

	"topup/internal/models"

	"github.com/google/uuid"
)

// MockOptionRepository is an in-memory implementation of OptionRepository.
// Like the real store it rejects a second option with the same key on one
// product, so provisioning stays idempotent against it.
type MockOptionRepository struct {
	byProduct map[string][]models.OptionRecord // insertion order per product
	mu        sync.RWMutex
}

// NewMockOptionRepository creates a new instance of MockOptionRepository.
func NewMockOptionRepository() *MockOptionRepository {
	return &MockOptionRepository{
		byProduct: make(map[string][]models.OptionRecord),
	}
}

// ListByProduct returns a product's options in sort order, ties in
// insertion order.
func (r *MockOptionRepository) ListByProduct(productID string) ([]models.OptionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	records := make([]models.OptionRecord, len(r.byProduct[productID]))
	copy(records, r.byProduct[productID])
	models.SortOptionRecords(records)
	return records, nil
}

// GetByID returns an option by its ID.
func (r *MockOptionRepository) GetByID(id string) (*models.OptionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, records := range r.byProduct {
		for _, rec := range records {
			if rec.ID == id {
				found := rec
				return &found, nil
			}
		}
	}
	return nil, fmt.Errorf("option with ID %s not found", id)
}

// Create adds a new option, rejecting a duplicate key on the same product.
func (r *MockOptionRepository) Create(option *models.OptionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.byProduct[option.ProductID] {
		if rec.Key == option.Key {
			return fmt.Errorf("option %q on product %s: %w", option.Key, option.ProductID, ErrDuplicateOptionKey)
		}
	}
	if option.ID == "" {
		option.ID = uuid.New().String()
	}
	r.byProduct[option.ProductID] = append(r.byProduct[option.ProductID], *option)
	return nil
}

// Update modifies an existing option in place.
func (r *MockOptionRepository) Update(option *models.OptionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	records := r.byProduct[option.ProductID]
	for i, rec := range records {
		if rec.ID == option.ID {
			records[i] = *option
			return nil
		}
	}
	return fmt.Errorf("option with ID %s not found for update", option.ID)
}

// Deactivate clears the active flag on an option. The record is retained
// for historical order reconstruction.
func (r *MockOptionRepository) Deactivate(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for productID, records := range r.byProduct {
		for i, rec := range records {
			if rec.ID == id {
				records[i].IsActive = false
				r.byProduct[productID] = records
				return nil
			}
		}
	}
	return fmt.Errorf("option with ID %s not found for deactivation", id)
}
