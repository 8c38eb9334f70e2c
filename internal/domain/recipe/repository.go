package recipe

import "context"

// Repository defines persistence operations for recipes. Names are
// schema-unique, so name lookups resolve to at most one row.
type Repository interface {
	// FindByID finds a recipe by ID. Returns shared.ErrNotFound if absent.
	FindByID(ctx context.Context, id uint) (*Recipe, error)
	// FindByName finds a recipe by exact name. Returns shared.ErrNotFound if absent.
	FindByName(ctx context.Context, name string) (*Recipe, error)
	// FindAll returns every recipe. Used by the reconciler, which needs the
	// full stored set to compute delete-on-absence.
	FindAll(ctx context.Context) ([]Recipe, error)
	// List returns a page of recipes.
	List(ctx context.Context, offset, limit int) ([]Recipe, error)
	// Create inserts a new recipe and backfills the generated ID.
	Create(ctx context.Context, r *Recipe) error
	// Update persists changes with an optimistic version check.
	Update(ctx context.Context, r *Recipe) error
	// Delete removes a recipe by ID. Returns shared.ErrNotFound if absent.
	Delete(ctx context.Context, id uint) error
}
