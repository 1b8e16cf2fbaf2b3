package models

// Selection maps an option key to the customer's chosen value for one
// product instance. For select options the value must equal a choice value;
// for input options it is free text (empty string means unset); for
// checkbox options it is the string form of a boolean.
type Selection map[string]string

// Value returns the entry for key and whether it is present.
func (s Selection) Value(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// Clone returns an independent copy, so snapshots taken at add-to-cart or
// checkout time cannot be mutated through the original map.
func (s Selection) Clone() Selection {
	out := make(Selection, len(s))
	for k, v := range s {
		out[k] = v
	}
	return out
}
