package repositories

import (
	"topup/internal/models"
)

// OrderRepository defines the interface for order data access. Orders are
// immutable snapshots apart from their status; there is deliberately no
// update or delete of lines.
type OrderRepository interface {
	GetAll() ([]models.Order, error)
	GetByID(id string) (*models.Order, error)
	GetByCustomer(customerID string) ([]models.Order, error)
	Create(order *models.Order) error
	UpdateStatus(id string, status string) error
}
