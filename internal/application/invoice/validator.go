package invoice

import (
	"context"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// TolerancePercent is the relative tolerance on the stated total: a line is
// consistent when |quantity*unit_price - total_price| <= 2% of total_price.
// The tolerance scales with the line size on purpose, a fixed absolute value
// would flag every large line over rounding noise.
var TolerancePercent = decimal.NewFromFloat(0.02)

// Correction records one quantity fix applied by the validator.
type Correction struct {
	Description       string  `json:"description"`
	OriginalQuantity  float64 `json:"original_quantity"`
	CorrectedQuantity float64 `json:"corrected_quantity"`
}

// Result is the validated line set plus a report of what was corrected.
type Result struct {
	Items       []LineItem   `json:"items"`
	Corrections []Correction `json:"corrections"`
}

// Extractor produces structured line items from a scanned invoice image.
// Implemented by the vision model client in the infrastructure layer.
type Extractor interface {
	ExtractLineItems(ctx context.Context, image []byte, mimeType string) ([]LineItem, error)
}

// Validator reconciles extracted invoice lines against the arithmetic
// invariant quantity × unit_price ≈ total_price. Unit price and total are
// assumed more reliable than the quantity (they are printed explicitly and
// column-aligned), so the quantity is always the corrected variable.
type Validator struct {
	logger *zap.Logger
}

// NewValidator creates a new Validator.
func NewValidator(logger *zap.Logger) *Validator {
	return &Validator{logger: logger}
}

// Validate processes each line independently: a line that cannot be
// validated passes through unmodified, it never aborts the batch.
func (v *Validator) Validate(items []LineItem) Result {
	out := Result{
		Items:       make([]LineItem, 0, len(items)),
		Corrections: []Correction{},
	}
	for _, item := range items {
		item.Description = StripQuantityPrefix(item.Description)

		corrected, changed := v.reconcile(item)
		if changed {
			out.Corrections = append(out.Corrections, Correction{
				Description:       item.Description,
				OriginalQuantity:  item.Quantity,
				CorrectedQuantity: corrected.Quantity,
			})
			v.logger.Info("invoice quantity corrected",
				zap.String("description", item.Description),
				zap.Float64("original", item.Quantity),
				zap.Float64("corrected", corrected.Quantity))
		}
		out.Items = append(out.Items, corrected)
	}
	return out
}

// reconcile checks one line and returns it, with the quantity replaced when
// the stated total disagrees with quantity × unit price beyond tolerance.
func (v *Validator) reconcile(item LineItem) (LineItem, bool) {
	// A zero anywhere means the line cannot be validated: division by a
	// zero unit price is undefined and a zero total has a zero tolerance.
	if item.Quantity == 0 || item.UnitPrice == 0 || item.TotalPrice == 0 {
		return item, false
	}

	qty := decimal.NewFromFloat(item.Quantity)
	unit := decimal.NewFromFloat(item.UnitPrice)
	total := decimal.NewFromFloat(item.TotalPrice)

	expected := qty.Mul(unit).Round(2)
	tolerance := total.Mul(TolerancePercent).Abs()
	if expected.Sub(total).Abs().LessThanOrEqual(tolerance) {
		return item, false
	}

	correctedQty, _ := total.Div(unit).Round(2).Float64()
	if correctedQty == item.Quantity {
		return item, false
	}
	item.Quantity = correctedQty
	return item, true
}
