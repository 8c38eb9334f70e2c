package persistence

import (
	"context"

	"gorm.io/gorm"

	"github.com/chefcode/backend/internal/domain/syncdata"
)

// GormSnapshotRepository implements syncdata.Repository using GORM. The
// table is append-only; nothing here reads or deletes.
type GormSnapshotRepository struct {
	db *gorm.DB
}

// NewGormSnapshotRepository creates a new GormSnapshotRepository
func NewGormSnapshotRepository(db *gorm.DB) *GormSnapshotRepository {
	return &GormSnapshotRepository{db: db}
}

// Append inserts a new snapshot row
func (r *GormSnapshotRepository) Append(ctx context.Context, s *syncdata.Snapshot) error {
	return r.db.WithContext(ctx).Create(s).Error
}
