package recipe

import (
	"encoding/json"

	"github.com/chefcode/backend/internal/domain/shared"
)

// Ingredient is one line of a recipe's ingredient list. The name is a soft
// reference to an inventory item by string equality; it is never validated
// against the inventory table.
type Ingredient struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
}

// Yield describes how much a recipe produces.
type Yield struct {
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
}

// Recipe is a named preparation with an ordered ingredient list. Names are
// schema-unique; full sync treats the incoming recipe set as authoritative
// for recipe existence.
//
// Ingredient and yield data are stored as serialized JSON text, as are the
// web-import blobs, which the core never interprets.
type Recipe struct {
	shared.BaseEntity
	shared.Versioned
	Name         string  `gorm:"uniqueIndex;not null" json:"name"`
	Items        string  `gorm:"type:text" json:"-"`
	Instructions string  `gorm:"type:text" json:"instructions"`
	YieldData    *string `gorm:"type:text" json:"-"`

	// Web recipe metadata: opaque to the core, carried for the client.
	SourceURL         *string `json:"source_url,omitempty"`
	ImageURL          *string `json:"image_url,omitempty"`
	Cuisine           *string `json:"cuisine,omitempty"`
	IngredientsRaw    *string `gorm:"type:text" json:"-"`
	IngredientsMapped *string `gorm:"type:text" json:"-"`
}

// TableName returns the table name for GORM
func (Recipe) TableName() string {
	return "recipes"
}

// New creates a recipe with the given ingredient list.
func New(name string, items []Ingredient, instructions string) (*Recipe, error) {
	if name == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Missing required field: name")
	}
	r := &Recipe{
		Versioned:    shared.Versioned{Version: 1},
		Name:         name,
		Instructions: instructions,
	}
	if err := r.SetIngredients(items); err != nil {
		return nil, err
	}
	return r, nil
}

// Ingredients deserializes the stored ingredient list. An empty or missing
// blob yields an empty list, not an error.
func (r *Recipe) Ingredients() ([]Ingredient, error) {
	if r.Items == "" {
		return []Ingredient{}, nil
	}
	var items []Ingredient
	if err := json.Unmarshal([]byte(r.Items), &items); err != nil {
		return nil, err
	}
	if items == nil {
		items = []Ingredient{}
	}
	return items, nil
}

// SetIngredients serializes and stores the ingredient list. A nil list is
// stored as an empty JSON array.
func (r *Recipe) SetIngredients(items []Ingredient) error {
	if items == nil {
		items = []Ingredient{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return err
	}
	r.Items = string(data)
	return nil
}

// Yield deserializes the stored yield, or nil when none was recorded.
// "No yield" is a SQL NULL, never the literal string "null".
func (r *Recipe) Yield() (*Yield, error) {
	if r.YieldData == nil || *r.YieldData == "" {
		return nil, nil
	}
	var y Yield
	if err := json.Unmarshal([]byte(*r.YieldData), &y); err != nil {
		return nil, err
	}
	return &y, nil
}

// SetYield serializes and stores the yield. A nil yield clears the column.
func (r *Recipe) SetYield(y *Yield) error {
	if y == nil {
		r.YieldData = nil
		return nil
	}
	data, err := json.Marshal(y)
	if err != nil {
		return err
	}
	s := string(data)
	r.YieldData = &s
	return nil
}
