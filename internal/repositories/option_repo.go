package repositories

import (
	"errors"

	"topup/internal/models"
)

// ErrDuplicateOptionKey is returned when an insert would violate the
// per-product uniqueness of option keys. The provisioner relies on this
// rejection as its idempotence guard under concurrent runs.
var ErrDuplicateOptionKey = errors.New("option key already exists for product")

// OptionRepository defines the interface for product option data access.
// ListByProduct returns records in sort order with ties kept in insertion
// order, the authoritative rendering and evaluation order.
type OptionRepository interface {
	ListByProduct(productID string) ([]models.OptionRecord, error)
	GetByID(id string) (*models.OptionRecord, error)
	Create(option *models.OptionRecord) error
	Update(option *models.OptionRecord) error
	Deactivate(id string) error
}
