package repositories

import (
	"topup/internal/models"
)

// ProductRepository defines the interface for product data access.
// Implementations return products with their option records loaded;
// GetActive mirrors the storefront's isActive=true listing filter.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetActive() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
	Update(product *models.Product) error
	Deactivate(id string) error
}
