package repositories

import (
	"errors"
	"fmt"

	"topup/internal/models"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GORMOptionRepository is a GORM implementation of OptionRepository. The
// unique index on (product_id, key) in the option model makes duplicate
// inserts fail at the database, which is the real idempotence guard for
// provisioning; this repository translates that failure into
// ErrDuplicateOptionKey.
type GORMOptionRepository struct {
	db *gorm.DB
}

// NewGORMOptionRepository creates a new instance of GORMOptionRepository.
// The gorm.DB must be opened with TranslateError so unique violations
// surface as gorm.ErrDuplicatedKey.
func NewGORMOptionRepository(db *gorm.DB) *GORMOptionRepository {
	return &GORMOptionRepository{
		db: db,
	}
}

// ListByProduct retrieves a product's options in sort order, ties broken
// by insertion order.
func (r *GORMOptionRepository) ListByProduct(productID string) ([]models.OptionRecord, error) {
	var records []models.OptionRecord
	err := r.db.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).Where("product_id = ?", productID).
		Order("sort_order, created_at").
		Find(&records).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list options for product %s: %w", productID, err)
	}
	return records, nil
}

// GetByID retrieves a single option by its ID.
func (r *GORMOptionRepository) GetByID(id string) (*models.OptionRecord, error) {
	var record models.OptionRecord
	err := r.db.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).First(&record, "id = ?", id).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("option with ID %s not found", id)
		}
		return nil, fmt.Errorf("failed to get option by ID %s: %w", id, err)
	}
	return &record, nil
}

// Create inserts a new option. A key collision on the same product is
// reported as ErrDuplicateOptionKey.
func (r *GORMOptionRepository) Create(option *models.OptionRecord) error {
	if option.ID == "" {
		option.ID = uuid.New().String()
	}
	if err := r.db.Create(option).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("option %q on product %s: %w", option.Key, option.ProductID, ErrDuplicateOptionKey)
		}
		return fmt.Errorf("failed to create option: %w", err)
	}
	return nil
}

// Update updates an existing option and replaces its choices.
func (r *GORMOptionRepository) Update(option *models.OptionRecord) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Omit("Choices").Save(option)
		if res.Error != nil {
			return fmt.Errorf("failed to update option: %w", res.Error)
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("option with ID %s not found for update", option.ID)
		}
		if err := tx.Where("option_id = ?", option.ID).Delete(&models.Choice{}).Error; err != nil {
			return fmt.Errorf("failed to clear choices for option %s: %w", option.ID, err)
		}
		for i := range option.Choices {
			option.Choices[i].ID = 0
			option.Choices[i].OptionID = option.ID
		}
		if len(option.Choices) > 0 {
			if err := tx.Create(&option.Choices).Error; err != nil {
				return fmt.Errorf("failed to recreate choices for option %s: %w", option.ID, err)
			}
		}
		return nil
	})
}

// Deactivate clears the active flag on an option, keeping the record.
func (r *GORMOptionRepository) Deactivate(id string) error {
	res := r.db.Model(&models.OptionRecord{}).Where("id = ?", id).Update("is_active", false)
	if res.Error != nil {
		return fmt.Errorf("failed to deactivate option: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return fmt.Errorf("option with ID %s not found for deactivation", id)
	}
	return nil
}
