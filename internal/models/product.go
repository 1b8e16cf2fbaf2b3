package models

import "gorm.io/gorm"

// Product represents a configurable digital good in the catalog, e.g. a
// top-up currency package. Prices are stored in minor units.
// Products are deactivated rather than deleted so historical orders stay
// reconstructable.
type Product struct {
	ID          string         `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	Name        string         `json:"name" validate:"required,min=3,max=100"`
	Description string         `json:"description" validate:"omitempty,max=500"`
	BasePrice   int64          `json:"basePrice" validate:"gte=0"`
	IsActive    bool           `json:"isActive"`
	Options     []OptionRecord `json:"options" gorm:"foreignKey:ProductID"`
	gorm.Model  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// ActiveOptions decodes the product's active option records into their
// typed variants, in sort order. Inactive options are excluded from
// rendering and price composition but remain persisted for historical
// order reconstruction.
func (p *Product) ActiveOptions() ([]Option, error) {
	records := make([]OptionRecord, 0, len(p.Options))
	for _, rec := range p.Options {
		if rec.IsActive {
			records = append(records, rec)
		}
	}
	SortOptionRecords(records)
	return DecodeOptions(records)
}
