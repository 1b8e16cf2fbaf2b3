package services

import (
	"topup/internal/models"
	"topup/internal/repositories"
)

// ProductService handles business logic related to catalog products.
type ProductService struct {
	repo repositories.ProductRepository
}

// NewProductService creates a new ProductService.
func NewProductService(repo repositories.ProductRepository) *ProductService {
	return &ProductService{
		repo: repo,
	}
}

// GetAllProducts retrieves every product, active or not. Used by catalog
// administration.
func (s *ProductService) GetAllProducts() ([]models.Product, error) {
	return s.repo.GetAll()
}

// GetActiveProducts retrieves the storefront catalog: active products with
// their options in rendering order.
func (s *ProductService) GetActiveProducts() ([]models.Product, error) {
	return s.repo.GetActive()
}

// GetProductByID retrieves a single product with its options.
func (s *ProductService) GetProductByID(id string) (*models.Product, error) {
	return s.repo.GetByID(id)
}

// CreateProduct creates a new product. New products enter the catalog
// active; options are attached separately through the option service or
// the provisioner.
func (s *ProductService) CreateProduct(product *models.Product) error {
	product.IsActive = true
	product.Options = nil
	return s.repo.Create(product)
}

// UpdateProduct updates an existing product's own fields. Option changes
// go through the option service so definition validation applies.
func (s *ProductService) UpdateProduct(product *models.Product) error {
	return s.repo.Update(product)
}

// DeactivateProduct removes a product from the storefront without deleting
// it, preserving historical orders.
func (s *ProductService) DeactivateProduct(id string) error {
	return s.repo.Deactivate(id)
}
