package models

import (
	"fmt"
	"sort"
)

// DefinitionErrorCode classifies a malformed option definition.
type DefinitionErrorCode string

const (
	DefinitionDuplicateKey                DefinitionErrorCode = "duplicate_key"
	DefinitionEmptyChoicesForSelect       DefinitionErrorCode = "empty_choices_for_select"
	DefinitionNonEmptyChoicesForNonSelect DefinitionErrorCode = "non_empty_choices_for_non_select"
	DefinitionDuplicateChoiceValue        DefinitionErrorCode = "duplicate_choice_value"
)

// DefinitionError reports one violation found while validating an option
// definition. Always recoverable by the author correcting input.
type DefinitionError struct {
	Code  DefinitionErrorCode `json:"code"`
	Key   string              `json:"key"`
	Value string              `json:"value,omitempty"` // offending choice value, if any
}

func (e DefinitionError) Error() string {
	switch e.Code {
	case DefinitionDuplicateKey:
		return fmt.Sprintf("option key %q already exists on this product", e.Key)
	case DefinitionEmptyChoicesForSelect:
		return fmt.Sprintf("select option %q must have at least one choice", e.Key)
	case DefinitionNonEmptyChoicesForNonSelect:
		return fmt.Sprintf("option %q of this type must not carry choices", e.Key)
	case DefinitionDuplicateChoiceValue:
		return fmt.Sprintf("option %q has duplicate choice value %q", e.Key, e.Value)
	}
	return fmt.Sprintf("invalid option definition for %q", e.Key)
}

// ValidateDefinition checks a proposed option against the schema invariants
// and against its sibling options on the same product. All violations are
// collected; an empty result means the definition is valid. The type
// determines the shape: selects require choices, input/checkbox forbid them.
func ValidateDefinition(opt OptionRecord, siblings []OptionRecord) []DefinitionError {
	var errs []DefinitionError

	for _, sib := range siblings {
		if sib.ID != opt.ID && sib.Key == opt.Key {
			errs = append(errs, DefinitionError{Code: DefinitionDuplicateKey, Key: opt.Key})
			break
		}
	}

	switch opt.Type {
	case OptionTypeSelect:
		if len(opt.Choices) == 0 {
			errs = append(errs, DefinitionError{Code: DefinitionEmptyChoicesForSelect, Key: opt.Key})
			break
		}
		seen := make(map[string]bool, len(opt.Choices))
		for _, c := range opt.Choices {
			if seen[c.Value] {
				errs = append(errs, DefinitionError{
					Code:  DefinitionDuplicateChoiceValue,
					Key:   opt.Key,
					Value: c.Value,
				})
				continue
			}
			seen[c.Value] = true
		}
	default:
		if len(opt.Choices) > 0 {
			errs = append(errs, DefinitionError{Code: DefinitionNonEmptyChoicesForNonSelect, Key: opt.Key})
		}
	}

	return errs
}

// SelectionErrorCode classifies a rejected customer selection entry.
type SelectionErrorCode string

const (
	SelectionMissingRequired SelectionErrorCode = "missing_required"
	SelectionUnknownChoice   SelectionErrorCode = "unknown_choice"
	SelectionUnknownKey      SelectionErrorCode = "unknown_key"
)

// SelectionError reports one violation in a submitted selection, surfaced
// to the customer as a field-level message next to the offending option.
type SelectionError struct {
	Code  SelectionErrorCode `json:"code"`
	Key   string             `json:"key"`
	Value string             `json:"value,omitempty"`
}

func (e SelectionError) Error() string {
	switch e.Code {
	case SelectionMissingRequired:
		return fmt.Sprintf("option %q is required", e.Key)
	case SelectionUnknownChoice:
		return fmt.Sprintf("option %q has no choice %q", e.Key, e.Value)
	case SelectionUnknownKey:
		return fmt.Sprintf("unknown option key %q", e.Key)
	}
	return fmt.Sprintf("invalid selection for %q", e.Key)
}

// ValidateSelection checks a submitted selection against a product's active
// options (as returned by Product.ActiveOptions, i.e. already in sort
// order). It is exhaustive: every violation found in one pass is reported,
// not just the first, so the storefront can show all field errors together.
// Unknown keys are appended after the per-option errors, sorted so output
// is deterministic.
func ValidateSelection(options []Option, sel Selection) []SelectionError {
	var errs []SelectionError
	known := make(map[string]bool, len(options))

	for _, opt := range options {
		meta := opt.Meta()
		known[meta.Key] = true
		value, present := sel[meta.Key]
		if meta.Required && (!present || value == "") {
			errs = append(errs, SelectionError{Code: SelectionMissingRequired, Key: meta.Key})
			continue
		}
		so, ok := opt.(SelectOption)
		if !ok || !present || value == "" {
			continue
		}
		if _, found := so.FindChoice(value); !found {
			errs = append(errs, SelectionError{Code: SelectionUnknownChoice, Key: meta.Key, Value: value})
		}
	}

	unknown := make([]string, 0)
	for key := range sel {
		if !known[key] {
			unknown = append(unknown, key)
		}
	}
	sort.Strings(unknown)
	for _, key := range unknown {
		errs = append(errs, SelectionError{Code: SelectionUnknownKey, Key: key, Value: sel[key]})
	}

	return errs
}
