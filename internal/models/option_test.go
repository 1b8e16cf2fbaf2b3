package models_test

import (
	"testing"

	"topup/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestDecodeOption_Variants(t *testing.T) {
	selectRec := models.OptionRecord{
		Type:     models.OptionTypeSelect,
		Name:     "Amount",
		Key:      "amount",
		Required: true,
		Choices: []models.Choice{
			{Label: "475 Gems", Value: "475", PriceModifier: 0},
			{Label: "950 Gems", Value: "950", PriceModifier: 5},
		},
	}
	opt, err := models.DecodeOption(selectRec)
	assert.NoError(t, err)
	so, ok := opt.(models.SelectOption)
	assert.True(t, ok)
	assert.Equal(t, "amount", so.Key)
	assert.True(t, so.Required)
	assert.Len(t, so.Choices, 2)

	inputRec := models.OptionRecord{
		Type:        models.OptionTypeInput,
		Name:        "Account Tag",
		Key:         "account_tag",
		Placeholder: "Your player tag",
	}
	opt, err = models.DecodeOption(inputRec)
	assert.NoError(t, err)
	io, ok := opt.(models.InputOption)
	assert.True(t, ok)
	assert.Equal(t, "Your player tag", io.Placeholder)

	checkboxRec := models.OptionRecord{
		Type: models.OptionTypeCheckbox,
		Name: "Gift wrap",
		Key:  "gift",
	}
	opt, err = models.DecodeOption(checkboxRec)
	assert.NoError(t, err)
	_, ok = opt.(models.CheckboxOption)
	assert.True(t, ok)
}

func TestDecodeOption_RejectsMalformedShapes(t *testing.T) {
	// A select without choices cannot be rendered or priced.
	_, err := models.DecodeOption(models.OptionRecord{
		Type: models.OptionTypeSelect,
		Key:  "amount",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no choices")

	// Non-select types must not smuggle choices in.
	_, err = models.DecodeOption(models.OptionRecord{
		Type:    models.OptionTypeInput,
		Key:     "account_tag",
		Choices: []models.Choice{{Label: "x", Value: "x"}},
	})
	assert.Error(t, err)

	_, err = models.DecodeOption(models.OptionRecord{
		Type: "color_picker",
		Key:  "color",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown option type")
}

func TestSortOptionRecords_TiesKeepInsertionOrder(t *testing.T) {
	records := []models.OptionRecord{
		{Key: "c", SortOrder: 1},
		{Key: "a", SortOrder: 0},
		{Key: "b", SortOrder: 1},
		{Key: "d", SortOrder: 0},
	}
	models.SortOptionRecords(records)

	keys := make([]string, 0, len(records))
	for _, rec := range records {
		keys = append(keys, rec.Key)
	}
	assert.Equal(t, []string{"a", "d", "c", "b"}, keys)
}

func TestProductActiveOptions_FiltersAndOrders(t *testing.T) {
	product := models.Product{
		ID: "prod-1",
		Options: []models.OptionRecord{
			{Type: models.OptionTypeInput, Key: "note", SortOrder: 2, IsActive: true},
			{Type: models.OptionTypeInput, Key: "legacy", SortOrder: 0, IsActive: false},
			{
				Type:      models.OptionTypeSelect,
				Key:       "amount",
				SortOrder: 1,
				IsActive:  true,
				Choices:   []models.Choice{{Label: "Standard", Value: "standard"}},
			},
		},
	}

	options, err := product.ActiveOptions()
	assert.NoError(t, err)
	assert.Len(t, options, 2)
	assert.Equal(t, "amount", options[0].Meta().Key)
	assert.Equal(t, "note", options[1].Meta().Key)
}
