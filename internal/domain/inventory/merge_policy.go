package inventory

import (
	"math"
	"time"

	"github.com/chefcode/backend/internal/domain/shared"
)

// PriceTolerance is the fixed absolute threshold under which two prices are
// considered "the same priced item". It is intentionally absolute, not
// relative: 10.001 and 10.005 merge, 10.00 and 10.02 do not, regardless of
// magnitude.
const PriceTolerance = 0.01

// Decision is the outcome of the merge policy for one incoming record.
type Decision int

const (
	// DecisionInsert creates a fresh row (no merge target exists, or prices differ).
	DecisionInsert Decision = iota
	// DecisionIncrement adds the incoming quantity to the existing row.
	DecisionIncrement
	// DecisionInsertSibling creates a second row under the same name because
	// the lot/expiry pair differs: a distinct traceable lot.
	DecisionInsertSibling
)

// SamePrice reports whether two prices fall within the merge tolerance.
func SamePrice(a, b float64) bool {
	return math.Abs(a-b) < PriceTolerance
}

// Decide applies the full HACCP-aware merge policy used by the add-inventory
// action and the assistant/chat paths.
//
// Prices beyond tolerance never merge. Within tolerance, the (lot_number,
// expiry_date) pair decides: equal pair increments in place, a differing pair
// creates a sibling row so the new lot stays separately traceable.
func Decide(existing *Item, price float64, lotNumber *string, expiryDate *time.Time) Decision {
	if existing == nil {
		return DecisionInsert
	}
	if !SamePrice(existing.Price, price) {
		return DecisionInsert
	}
	incomingLot := ""
	if lotNumber != nil {
		incomingLot = *lotNumber
	}
	if existing.Lot() == incomingLot && shared.SameDate(existing.ExpiryDate, expiryDate) {
		return DecisionIncrement
	}
	return DecisionInsertSibling
}

// DecideByPrice applies the reduced policy of the direct single-item create
// endpoint, which merges on price match alone and ignores the HACCP
// discriminant. The divergence from Decide is inherited behavior, kept on
// purpose until the product owner rules on it; do not unify the two paths.
func DecideByPrice(existing *Item, price float64) Decision {
	if existing == nil {
		return DecisionInsert
	}
	if SamePrice(existing.Price, price) {
		return DecisionIncrement
	}
	return DecisionInsert
}
