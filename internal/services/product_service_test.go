package services_test

import (
	"fmt"
	"testing"

	"topup/internal/models"
	"topup/internal/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestProductService_GetActiveProducts(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProducts := []models.Product{
		{ID: "1", Name: "Gem Pack", BasePrice: 475, IsActive: true},
		{ID: "2", Name: "Coin Pack", BasePrice: 20, IsActive: true},
	}

	mockRepo.On("GetActive").Return(expectedProducts, nil).Once()

	products, err := service.GetActiveProducts()

	assert.NoError(t, err)
	assert.Len(t, products, 2)
	assert.Equal(t, expectedProducts, products)
	mockRepo.AssertExpectations(t)
}

func TestProductService_GetProductByID(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	expectedProduct := &models.Product{ID: "1", Name: "Gem Pack", BasePrice: 475, IsActive: true}

	// Test successful retrieval
	mockRepo.On("GetByID", "1").Return(expectedProduct, nil).Once()
	product, err := service.GetProductByID("1")
	assert.NoError(t, err)
	assert.Equal(t, expectedProduct, product)
	mockRepo.AssertExpectations(t)

	// Test product not found
	mockRepo.On("GetByID", "99").Return(nil, fmt.Errorf("product with ID 99 not found")).Once()
	product, err = service.GetProductByID("99")
	assert.Error(t, err)
	assert.Nil(t, product)
	assert.Contains(t, err.Error(), "not found")
	mockRepo.AssertExpectations(t)
}

func TestProductService_CreateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	newProduct := &models.Product{Name: "New Pack", BasePrice: 50}

	// New products always enter the catalog active, with no options yet.
	mockRepo.On("Create", mock.MatchedBy(func(p *models.Product) bool {
		return p.IsActive && p.Options == nil
	})).Return(nil).Once()
	err := service.CreateProduct(newProduct)
	assert.NoError(t, err)
	assert.True(t, newProduct.IsActive)
	mockRepo.AssertExpectations(t)

	// Test creation failure (e.g., database error)
	failing := &models.Product{Name: "Broken Pack", BasePrice: 10}
	mockRepo.On("Create", mock.AnythingOfType("*models.Product")).Return(fmt.Errorf("database error")).Once()
	err = service.CreateProduct(failing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "database error")
	mockRepo.AssertExpectations(t)
}

func TestProductService_UpdateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	updatedProduct := &models.Product{ID: "1", Name: "Gem Pack XL", BasePrice: 500, IsActive: true}

	// Test successful update
	mockRepo.On("Update", updatedProduct).Return(nil).Once()
	err := service.UpdateProduct(updatedProduct)
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test update failure (e.g., product not found in repo)
	missing := &models.Product{ID: "99", Name: "Nonexistent", BasePrice: 1}
	mockRepo.On("Update", missing).Return(fmt.Errorf("product with ID 99 not found for update")).Once()
	err = service.UpdateProduct(missing)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found for update")
	mockRepo.AssertExpectations(t)
}

func TestProductService_DeactivateProduct(t *testing.T) {
	mockRepo := new(MockProductRepository)
	service := services.NewProductService(mockRepo)

	// Test successful deactivation
	mockRepo.On("Deactivate", "1").Return(nil).Once()
	err := service.DeactivateProduct("1")
	assert.NoError(t, err)
	mockRepo.AssertExpectations(t)

	// Test deactivation failure (e.g., product not found)
	mockRepo.On("Deactivate", "99").Return(fmt.Errorf("product with ID 99 not found for deactivation")).Once()
	err = service.DeactivateProduct("99")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found for deactivation")
	mockRepo.AssertExpectations(t)
}
