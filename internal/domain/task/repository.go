package task

import "context"

// Repository defines persistence operations for prep tasks.
//
// FindByIDs exists so that batch operations (full sync) resolve identity with
// a single bulk query instead of one lookup per record.
type Repository interface {
	// FindByID finds a task by ID. Returns shared.ErrNotFound if absent.
	FindByID(ctx context.Context, id uint) (*Task, error)
	// FindByIDs finds all tasks whose ID is in the given set.
	FindByIDs(ctx context.Context, ids []uint) ([]Task, error)
	// FindAll returns every task.
	FindAll(ctx context.Context) ([]Task, error)
	// Create inserts a new task and backfills the generated ID.
	Create(ctx context.Context, t *Task) error
	// Update persists changes with an optimistic version check.
	Update(ctx context.Context, t *Task) error
	// Delete removes a task by ID. Returns shared.ErrNotFound if absent.
	Delete(ctx context.Context, id uint) error
}
