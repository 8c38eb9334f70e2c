package invoice

import "regexp"

// LineItem is one extracted invoice line. All three numeric fields come from
// an upstream AI extraction and are trusted to be well-formed numbers but not
// to be arithmetically consistent with each other.
type LineItem struct {
	Description string  `json:"description"`
	Type        string  `json:"type"`
	Quantity    float64 `json:"quantity"`
	Unit        string  `json:"unit"`
	UnitPrice   float64 `json:"unit_price"`
	TotalPrice  float64 `json:"total_price"`
}

// quantityPrefix matches a redundant leading multiplier like "2x ", "3 × "
// or "1.5X" that OCR frequently carries over from the printed line.
var quantityPrefix = regexp.MustCompile(`(?i)^(\d+\.?\d*)\s*[x×]\s*`)

// StripQuantityPrefix removes a leading quantity-multiplier token from a
// description. Only the description changes; the quantity field is always
// taken from its own column, never from this token.
func StripQuantityPrefix(description string) string {
	return quantityPrefix.ReplaceAllString(description, "")
}
