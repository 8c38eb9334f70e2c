package sync

// The request types use pointer fields for everything the client may omit:
// the reconciler's skip rules ("no name", "no recipe") distinguish an absent
// field from an empty one.

// InventoryRecord is one inventory row in a full-sync payload.
type InventoryRecord struct {
	Name       *string  `json:"name"`
	Unit       *string  `json:"unit"`
	Quantity   *float64 `json:"quantity"`
	Category   *string  `json:"category"`
	Price      *float64 `json:"price"`
	LotNumber  *string  `json:"lot_number"`
	ExpiryDate *string  `json:"expiry_date"`
}

// IngredientRecord is one ingredient line inside a synced recipe.
type IngredientRecord struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
}

// YieldRecord is the yield of a synced recipe.
type YieldRecord struct {
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
}

// RecipeRecord is the value side of the name-keyed recipe mapping. A nil
// Items slice defaults to an empty ingredient list.
type RecipeRecord struct {
	Items        []IngredientRecord `json:"items"`
	Instructions *string            `json:"instructions"`
	Yield        *YieldRecord       `json:"yield"`
}

// TaskRecord is one task row in a full-sync payload. A present ID that
// matches a stored task selects it for overwrite; an unknown ID is discarded
// and the record inserted fresh.
type TaskRecord struct {
	ID         *uint   `json:"id"`
	Recipe     *string `json:"recipe"`
	Quantity   *int    `json:"quantity"`
	AssignedTo *string `json:"assignedTo"`
	Status     *string `json:"status"`
}

// Request is the client's complete view of its state: inventory rows, a
// name-keyed recipe mapping, and tasks.
type Request struct {
	Inventory []InventoryRecord       `json:"inventory"`
	Recipes   map[string]RecipeRecord `json:"recipes"`
	Tasks     []TaskRecord            `json:"tasks"`
}

// Result reports what the reconciler changed.
type Result struct {
	InventorySynced int `json:"inventory_synced"`
	RecipesSynced   int `json:"recipes_synced"`
	RecipesDeleted  int `json:"recipes_deleted"`
	TasksSynced     int `json:"tasks_synced"`
}
