package sync

import (
	"context"

	"github.com/chefcode/backend/internal/domain/inventory"
	"github.com/chefcode/backend/internal/domain/recipe"
	"github.com/chefcode/backend/internal/domain/syncdata"
	"github.com/chefcode/backend/internal/domain/task"
)

// TransactionScope provides transactional access to the repositories the
// full-sync reconciler touches. When a function is executed within a
// transaction scope, all repository operations are part of the same database
// transaction and commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	// If the function succeeds, the transaction is committed.
	Execute(ctx context.Context, fn func(repos TransactionalRepositories) error) error
}

// TransactionalRepositories provides access to the reconciler's repositories
// within a transaction. All repositories returned share the same underlying
// database transaction.
type TransactionalRepositories interface {
	// InventoryRepo returns the inventory repository scoped to the current transaction
	InventoryRepo() inventory.Repository
	// RecipeRepo returns the recipe repository scoped to the current transaction
	RecipeRepo() recipe.Repository
	// TaskRepo returns the task repository scoped to the current transaction
	TaskRepo() task.Repository
	// SnapshotRepo returns the sync snapshot repository scoped to the current transaction
	SnapshotRepo() syncdata.Repository
}

// NoOpTransactionScope is a transaction scope that doesn't actually use
// transactions. Useful for testing the reconciler against mocks.
type NoOpTransactionScope struct {
	inventoryRepo inventory.Repository
	recipeRepo    recipe.Repository
	taskRepo      task.Repository
	snapshotRepo  syncdata.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope with the given repositories.
func NewNoOpTransactionScope(
	inventoryRepo inventory.Repository,
	recipeRepo recipe.Repository,
	taskRepo task.Repository,
	snapshotRepo syncdata.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		inventoryRepo: inventoryRepo,
		recipeRepo:    recipeRepo,
		taskRepo:      taskRepo,
		snapshotRepo:  snapshotRepo,
	}
}

// Execute runs the function without a real transaction.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos TransactionalRepositories) error) error {
	return fn(s)
}

// InventoryRepo returns the inventory repository.
func (s *NoOpTransactionScope) InventoryRepo() inventory.Repository { return s.inventoryRepo }

// RecipeRepo returns the recipe repository.
func (s *NoOpTransactionScope) RecipeRepo() recipe.Repository { return s.recipeRepo }

// TaskRepo returns the task repository.
func (s *NoOpTransactionScope) TaskRepo() task.Repository { return s.taskRepo }

// SnapshotRepo returns the sync snapshot repository.
func (s *NoOpTransactionScope) SnapshotRepo() syncdata.Repository { return s.snapshotRepo }
