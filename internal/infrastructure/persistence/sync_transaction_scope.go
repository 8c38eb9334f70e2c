package persistence

import (
	"context"

	"gorm.io/gorm"

	syncapp "github.com/chefcode/backend/internal/application/sync"
	"github.com/chefcode/backend/internal/domain/inventory"
	"github.com/chefcode/backend/internal/domain/recipe"
	"github.com/chefcode/backend/internal/domain/syncdata"
	"github.com/chefcode/backend/internal/domain/task"
)

// GormSyncTransactionScope implements sync.TransactionScope using GORM
// transactions. Each Execute call opens one transaction and hands the
// reconciler repositories bound to it, so the whole full sync commits or
// rolls back as a unit.
type GormSyncTransactionScope struct {
	db *gorm.DB
}

// NewGormSyncTransactionScope creates a new GormSyncTransactionScope
func NewGormSyncTransactionScope(db *gorm.DB) *GormSyncTransactionScope {
	return &GormSyncTransactionScope{db: db}
}

// Execute runs fn inside a database transaction
func (s *GormSyncTransactionScope) Execute(ctx context.Context, fn func(repos syncapp.TransactionalRepositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&transactionalRepositories{tx: tx})
	})
}

// transactionalRepositories provides repositories bound to one transaction
type transactionalRepositories struct {
	tx *gorm.DB
}

func (r *transactionalRepositories) InventoryRepo() inventory.Repository {
	return NewGormInventoryRepository(r.tx)
}

func (r *transactionalRepositories) RecipeRepo() recipe.Repository {
	return NewGormRecipeRepository(r.tx)
}

func (r *transactionalRepositories) TaskRepo() task.Repository {
	return NewGormTaskRepository(r.tx)
}

func (r *transactionalRepositories) SnapshotRepo() syncdata.Repository {
	return NewGormSnapshotRepository(r.tx)
}
