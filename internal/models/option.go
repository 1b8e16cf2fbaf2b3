package models

import (
	"fmt"
	"sort"

	"gorm.io/gorm"
)

// OptionType enumerates the supported option kinds.
type OptionType string

const (
	OptionTypeSelect   OptionType = "select"
	OptionTypeInput    OptionType = "input"
	OptionTypeCheckbox OptionType = "checkbox"
)

// Choice is one selectable value of a select option. PriceModifier is a
// signed amount in minor units, added to the product base price when the
// choice is selected. It may be negative.
type Choice struct {
	ID            uint   `json:"-" gorm:"primaryKey"`
	OptionID      string `json:"-" gorm:"type:varchar(36);index"`
	Label         string `json:"label" validate:"required"`
	Value         string `json:"value" validate:"required"`
	PriceModifier int64  `json:"priceModifier"`
	Description   string `json:"description"`
}

// OptionRecord is the persisted and transmitted shape of a product option.
// The unique index on (product_id, key) is the idempotence guard for
// provisioning: a concurrent duplicate insert is rejected by the store
// instead of producing a second baseline option set.
type OptionRecord struct {
	ID          string     `json:"id" gorm:"primaryKey;type:varchar(36)" validate:"omitempty,uuid"`
	ProductID   string     `json:"productId" gorm:"type:varchar(36);uniqueIndex:idx_product_option_key"`
	Type        OptionType `json:"type" validate:"required,oneof=select input checkbox"`
	Name        string     `json:"name" validate:"required,min=1,max=100"`
	Key         string     `json:"key" gorm:"type:varchar(100);uniqueIndex:idx_product_option_key" validate:"required,min=1,max=100"`
	Required    bool       `json:"required"`
	Placeholder string     `json:"placeholder"`
	Choices     []Choice   `json:"options" gorm:"foreignKey:OptionID"`
	SortOrder   int        `json:"sortOrder"`
	IsActive    bool       `json:"isActive"`
	gorm.Model  // Embed gorm.Model for CreatedAt, UpdatedAt, DeletedAt
}

// SortOptionRecords orders records by SortOrder; ties keep their insertion
// order. This is the authoritative rendering and evaluation order.
func SortOptionRecords(records []OptionRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].SortOrder < records[j].SortOrder
	})
}

// OptionMeta carries the fields common to every option variant.
type OptionMeta struct {
	Key       string
	Name      string
	Required  bool
	SortOrder int
}

// Meta returns the common option fields.
func (m OptionMeta) Meta() OptionMeta { return m }

// Option is the closed set of option variants. Only SelectOption,
// InputOption and CheckboxOption implement it; each variant carries only
// the fields it uses.
type Option interface {
	Meta() OptionMeta
	isOption()
}

// SelectOption offers a fixed choice list and is the only variant that can
// affect the composed price.
type SelectOption struct {
	OptionMeta
	Choices []Choice
}

// InputOption holds free text entered by the customer; an empty string
// means unset.
type InputOption struct {
	OptionMeta
	Placeholder string
}

// CheckboxOption holds the string form of a boolean.
type CheckboxOption struct {
	OptionMeta
	Placeholder string
}

func (SelectOption) isOption()   {}
func (InputOption) isOption()    {}
func (CheckboxOption) isOption() {}

// FindChoice returns the choice with the given stored value, if any.
func (o SelectOption) FindChoice(value string) (Choice, bool) {
	for _, c := range o.Choices {
		if c.Value == value {
			return c, true
		}
	}
	return Choice{}, false
}

// DecodeOption converts a persisted record into its typed variant. Records
// whose shape contradicts their type (a select with no choices, a non-select
// carrying choices, an unknown type) are rejected here so malformed data
// never reaches selection validation or price composition.
func DecodeOption(rec OptionRecord) (Option, error) {
	meta := OptionMeta{
		Key:       rec.Key,
		Name:      rec.Name,
		Required:  rec.Required,
		SortOrder: rec.SortOrder,
	}
	switch rec.Type {
	case OptionTypeSelect:
		if len(rec.Choices) == 0 {
			return nil, fmt.Errorf("option %q: select option has no choices", rec.Key)
		}
		choices := make([]Choice, len(rec.Choices))
		copy(choices, rec.Choices)
		return SelectOption{OptionMeta: meta, Choices: choices}, nil
	case OptionTypeInput:
		if len(rec.Choices) > 0 {
			return nil, fmt.Errorf("option %q: input option carries choices", rec.Key)
		}
		return InputOption{OptionMeta: meta, Placeholder: rec.Placeholder}, nil
	case OptionTypeCheckbox:
		if len(rec.Choices) > 0 {
			return nil, fmt.Errorf("option %q: checkbox option carries choices", rec.Key)
		}
		return CheckboxOption{OptionMeta: meta, Placeholder: rec.Placeholder}, nil
	default:
		return nil, fmt.Errorf("option %q: unknown option type %q", rec.Key, rec.Type)
	}
}

// DecodeOptions converts a slice of records, preserving their order.
func DecodeOptions(records []OptionRecord) ([]Option, error) {
	options := make([]Option, 0, len(records))
	for _, rec := range records {
		opt, err := DecodeOption(rec)
		if err != nil {
			return nil, err
		}
		options = append(options, opt)
	}
	return options, nil
}
