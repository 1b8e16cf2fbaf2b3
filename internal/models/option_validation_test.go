package models_test

import (
	"testing"

	"topup/internal/models"

	"github.com/stretchr/testify/assert"
)

func selectWithChoices(key string, values ...string) models.OptionRecord {
	choices := make([]models.Choice, 0, len(values))
	for _, v := range values {
		choices = append(choices, models.Choice{Label: v, Value: v})
	}
	return models.OptionRecord{
		Type:    models.OptionTypeSelect,
		Name:    key,
		Key:     key,
		Choices: choices,
	}
}

func TestValidateDefinition_SelectRequiresChoices(t *testing.T) {
	errs := models.ValidateDefinition(selectWithChoices("amount", "475", "950"), nil)
	assert.Empty(t, errs)

	errs = models.ValidateDefinition(selectWithChoices("amount"), nil)
	assert.Len(t, errs, 1)
	assert.Equal(t, models.DefinitionEmptyChoicesForSelect, errs[0].Code)
	assert.Equal(t, "amount", errs[0].Key)
}

func TestValidateDefinition_NonSelectForbidsChoices(t *testing.T) {
	for _, typ := range []models.OptionType{models.OptionTypeInput, models.OptionTypeCheckbox} {
		valid := models.OptionRecord{Type: typ, Name: "tag", Key: "tag"}
		assert.Empty(t, models.ValidateDefinition(valid, nil))

		invalid := models.OptionRecord{
			Type:    typ,
			Name:    "tag",
			Key:     "tag",
			Choices: []models.Choice{{Label: "x", Value: "x"}},
		}
		errs := models.ValidateDefinition(invalid, nil)
		assert.Len(t, errs, 1)
		assert.Equal(t, models.DefinitionNonEmptyChoicesForNonSelect, errs[0].Code)
	}
}

func TestValidateDefinition_DuplicateKey(t *testing.T) {
	siblings := []models.OptionRecord{
		{ID: "opt-1", Type: models.OptionTypeInput, Key: "account_tag"},
	}

	errs := models.ValidateDefinition(models.OptionRecord{
		ID:   "opt-2",
		Type: models.OptionTypeInput,
		Key:  "account_tag",
	}, siblings)
	assert.Len(t, errs, 1)
	assert.Equal(t, models.DefinitionDuplicateKey, errs[0].Code)

	// Key match is exact and case-sensitive.
	errs = models.ValidateDefinition(models.OptionRecord{
		ID:   "opt-2",
		Type: models.OptionTypeInput,
		Key:  "Account_Tag",
	}, siblings)
	assert.Empty(t, errs)

	// Updating an option against itself is not a duplicate.
	errs = models.ValidateDefinition(models.OptionRecord{
		ID:   "opt-1",
		Type: models.OptionTypeInput,
		Key:  "account_tag",
	}, siblings)
	assert.Empty(t, errs)
}

func TestValidateDefinition_DuplicateChoiceValue(t *testing.T) {
	errs := models.ValidateDefinition(selectWithChoices("amount", "475", "950", "475"), nil)
	assert.Len(t, errs, 1)
	assert.Equal(t, models.DefinitionDuplicateChoiceValue, errs[0].Code)
	assert.Equal(t, "475", errs[0].Value)
}

func testOptions(t *testing.T) []models.Option {
	t.Helper()
	options, err := models.DecodeOptions([]models.OptionRecord{
		{
			Type:     models.OptionTypeSelect,
			Key:      "amount",
			Required: true,
			IsActive: true,
			Choices: []models.Choice{
				{Label: "475 Gems", Value: "475"},
				{Label: "950 Gems", Value: "950", PriceModifier: 5},
			},
		},
		{Type: models.OptionTypeInput, Key: "account_tag", Required: true, IsActive: true},
		{Type: models.OptionTypeCheckbox, Key: "gift", IsActive: true},
	})
	assert.NoError(t, err)
	return options
}

func TestValidateSelection_Valid(t *testing.T) {
	sel := models.Selection{"amount": "950", "account_tag": "PLAYER-1", "gift": "true"}
	assert.Empty(t, models.ValidateSelection(testOptions(t), sel))
}

func TestValidateSelection_CollectsEveryMissingRequired(t *testing.T) {
	// Both required options are absent: two errors, not one.
	errs := models.ValidateSelection(testOptions(t), models.Selection{})
	assert.Len(t, errs, 2)
	assert.Equal(t, models.SelectionMissingRequired, errs[0].Code)
	assert.Equal(t, "amount", errs[0].Key)
	assert.Equal(t, models.SelectionMissingRequired, errs[1].Code)
	assert.Equal(t, "account_tag", errs[1].Key)

	// An empty string counts as unset for a required option.
	errs = models.ValidateSelection(testOptions(t), models.Selection{"amount": "475", "account_tag": ""})
	assert.Len(t, errs, 1)
	assert.Equal(t, "account_tag", errs[0].Key)
}

func TestValidateSelection_UnknownChoice(t *testing.T) {
	sel := models.Selection{"amount": "9999", "account_tag": "PLAYER-1"}
	errs := models.ValidateSelection(testOptions(t), sel)
	assert.Len(t, errs, 1)
	assert.Equal(t, models.SelectionUnknownChoice, errs[0].Code)
	assert.Equal(t, "amount", errs[0].Key)
	assert.Equal(t, "9999", errs[0].Value)
}

func TestValidateSelection_UnknownKeys(t *testing.T) {
	sel := models.Selection{
		"amount":      "475",
		"account_tag": "PLAYER-1",
		"zz_bogus":    "1",
		"aa_bogus":    "2",
	}
	errs := models.ValidateSelection(testOptions(t), sel)
	assert.Len(t, errs, 2)
	// Unknown keys are reported in sorted order for determinism.
	assert.Equal(t, models.SelectionUnknownKey, errs[0].Code)
	assert.Equal(t, "aa_bogus", errs[0].Key)
	assert.Equal(t, "zz_bogus", errs[1].Key)
}

func TestValidateSelection_MixedViolationsInOnePass(t *testing.T) {
	sel := models.Selection{"amount": "9999", "bogus": "x"}
	errs := models.ValidateSelection(testOptions(t), sel)
	assert.Len(t, errs, 3)
	assert.Equal(t, models.SelectionUnknownChoice, errs[0].Code)
	assert.Equal(t, models.SelectionMissingRequired, errs[1].Code)
	assert.Equal(t, models.SelectionUnknownKey, errs[2].Code)
}
