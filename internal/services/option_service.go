package services

import (
	"errors"
	"fmt"

	"topup/internal/models"
	"topup/internal/repositories"
)

// OptionService handles authoring of product options. Every create and
// update passes definition validation, so malformed options (a select with
// no choices, duplicate keys or choice values) never reach the store.
type OptionService struct {
	productRepo repositories.ProductRepository
	optionRepo  repositories.OptionRepository
}

// NewOptionService creates a new OptionService.
func NewOptionService(productRepo repositories.ProductRepository, optionRepo repositories.OptionRepository) *OptionService {
	return &OptionService{
		productRepo: productRepo,
		optionRepo:  optionRepo,
	}
}

// ListOptions returns a product's options in rendering order.
func (s *OptionService) ListOptions(productID string) ([]models.OptionRecord, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	return s.optionRepo.ListByProduct(productID)
}

// CreateOption validates and stores a new option on a product. Definition
// violations are returned as values for the caller to present together;
// the error return is reserved for repository failures.
func (s *OptionService) CreateOption(productID string, option *models.OptionRecord) ([]models.DefinitionError, error) {
	if _, err := s.productRepo.GetByID(productID); err != nil {
		return nil, err
	}
	option.ProductID = productID

	siblings, err := s.optionRepo.ListByProduct(productID)
	if err != nil {
		return nil, err
	}
	if defErrs := models.ValidateDefinition(*option, siblings); len(defErrs) > 0 {
		return defErrs, nil
	}

	if err := s.optionRepo.Create(option); err != nil {
		// A concurrent insert can still hit the store's uniqueness guard
		// after the sibling check passed; report it the same way.
		if errors.Is(err, repositories.ErrDuplicateOptionKey) {
			return []models.DefinitionError{{Code: models.DefinitionDuplicateKey, Key: option.Key}}, nil
		}
		return nil, fmt.Errorf("failed to create option %q: %w", option.Key, err)
	}
	return nil, nil
}

// UpdateOption validates and stores changes to an existing option.
func (s *OptionService) UpdateOption(option *models.OptionRecord) ([]models.DefinitionError, error) {
	existing, err := s.optionRepo.GetByID(option.ID)
	if err != nil {
		return nil, err
	}
	option.ProductID = existing.ProductID

	siblings, err := s.optionRepo.ListByProduct(option.ProductID)
	if err != nil {
		return nil, err
	}
	if defErrs := models.ValidateDefinition(*option, siblings); len(defErrs) > 0 {
		return defErrs, nil
	}

	if err := s.optionRepo.Update(option); err != nil {
		return nil, fmt.Errorf("failed to update option %q: %w", option.Key, err)
	}
	return nil, nil
}

// DeactivateOption removes an option from rendering and price composition
// without deleting it.
func (s *OptionService) DeactivateOption(id string) error {
	return s.optionRepo.Deactivate(id)
}
