package inventory

import (
	"time"

	"github.com/chefcode/backend/internal/domain/shared"
)

// Defaults applied when the client omits optional fields.
const (
	DefaultUnit     = "pz"
	DefaultCategory = "Other"
)

// Item represents a stocked ingredient or product. The name acts as the
// natural key for merge decisions, but the schema deliberately allows several
// rows to share a name: rows that differ in price, or in their (lot_number,
// expiry_date) pair, are kept separate for HACCP traceability.
type Item struct {
	shared.BaseEntity
	shared.Versioned
	Name       string     `gorm:"index;not null" json:"name"`
	Unit       string     `gorm:"default:pz" json:"unit"`
	Quantity   float64    `gorm:"default:0" json:"quantity"`
	Category   string     `gorm:"default:Other" json:"category"`
	Price      float64    `gorm:"default:0" json:"price"`
	LotNumber  *string    `json:"lot_number"`
	ExpiryDate *time.Time `gorm:"type:date" json:"expiry_date"`
}

// TableName returns the table name for GORM
func (Item) TableName() string {
	return "inventory_items"
}

// NewItem creates an inventory item, applying defaults for omitted fields.
func NewItem(name, unit string, quantity float64, category string, price float64, lotNumber *string, expiryDate *time.Time) (*Item, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Missing required field: name")
	}
	if unit == "" {
		unit = DefaultUnit
	}
	if category == "" {
		category = DefaultCategory
	}
	return &Item{
		Versioned:  shared.Versioned{Version: 1},
		Name:       name,
		Unit:       unit,
		Quantity:   quantity,
		Category:   category,
		Price:      price,
		LotNumber:  lotNumber,
		ExpiryDate: expiryDate,
	}, nil
}

// AddQuantity increments the stored quantity. Merges are strictly additive:
// nothing in the merge path ever decrements or overwrites a quantity.
func (i *Item) AddQuantity(quantity float64) {
	i.Quantity += quantity
}

// Lot returns the lot number normalized to the empty string when absent,
// the form used by the HACCP discriminant.
func (i *Item) Lot() string {
	if i.LotNumber == nil {
		return ""
	}
	return *i.LotNumber
}

// Overwrite replaces all mutable attributes in place. Used by the full-sync
// reconciler, which treats the incoming record as the authoritative snapshot
// for this name (unlike the additive merge paths).
func (i *Item) Overwrite(unit string, quantity float64, category string, price float64, lotNumber *string, expiryDate *time.Time) {
	if unit == "" {
		unit = DefaultUnit
	}
	if category == "" {
		category = DefaultCategory
	}
	i.Unit = unit
	i.Quantity = quantity
	i.Category = category
	i.Price = price
	i.LotNumber = lotNumber
	i.ExpiryDate = expiryDate
}
