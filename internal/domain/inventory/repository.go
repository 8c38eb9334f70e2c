package inventory

import "context"

// Repository defines persistence operations for inventory items.
//
// FindByNames exists so that batch operations (full sync) resolve identity
// with a single bulk query instead of one lookup per record.
type Repository interface {
	// FindByID finds an item by its ID. Returns shared.ErrNotFound if absent.
	FindByID(ctx context.Context, id uint) (*Item, error)
	// FindFirstByName finds the first row with an exactly matching name
	// (case-sensitive). Returns shared.ErrNotFound if absent.
	FindFirstByName(ctx context.Context, name string) (*Item, error)
	// FindByNames finds all rows whose name is in the given set.
	FindByNames(ctx context.Context, names []string) ([]Item, error)
	// FindAll returns every inventory row.
	FindAll(ctx context.Context) ([]Item, error)
	// Create inserts a new row and backfills the generated ID.
	Create(ctx context.Context, item *Item) error
	// Update persists changes to an existing row with an optimistic version
	// check. Returns shared.ErrConcurrencyConflict if the row changed underneath.
	Update(ctx context.Context, item *Item) error
	// Delete removes a row by ID. Returns shared.ErrNotFound if absent.
	Delete(ctx context.Context, id uint) error
}
