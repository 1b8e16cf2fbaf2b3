package models

// ComposeUnitPrice computes the effective unit price of a product in minor
// units: the base price plus the price modifier of every selected choice,
// iterating the given options in order. Input and checkbox options never
// affect the price. The selection is assumed to have passed
// ValidateSelection; unknown or absent entries simply contribute nothing.
//
// The result is not clamped: a negative total is a defect in the catalog
// data, not something this function corrects. With an empty selection the
// result equals basePrice.
func ComposeUnitPrice(basePrice int64, options []Option, sel Selection) int64 {
	price := basePrice
	for _, opt := range options {
		so, ok := opt.(SelectOption)
		if !ok {
			continue
		}
		value, present := sel[so.Key]
		if !present || value == "" {
			continue
		}
		if choice, found := so.FindChoice(value); found {
			price += choice.PriceModifier
		}
	}
	return price
}
