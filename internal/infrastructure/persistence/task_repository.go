package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chefcode/backend/internal/domain/shared"
	"github.com/chefcode/backend/internal/domain/task"
)

// GormTaskRepository implements task.Repository using GORM
type GormTaskRepository struct {
	db *gorm.DB
}

// NewGormTaskRepository creates a new GormTaskRepository
func NewGormTaskRepository(db *gorm.DB) *GormTaskRepository {
	return &GormTaskRepository{db: db}
}

// FindByID finds a task by ID
func (r *GormTaskRepository) FindByID(ctx context.Context, id uint) (*task.Task, error) {
	var t task.Task
	if err := r.db.WithContext(ctx).First(&t, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

// FindByIDs finds all tasks whose ID is in the given set
func (r *GormTaskRepository) FindByIDs(ctx context.Context, ids []uint) ([]task.Task, error) {
	tasks := []task.Task{}
	if len(ids) == 0 {
		return tasks, nil
	}
	if err := r.db.WithContext(ctx).
		Where("id IN ?", ids).
		Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// FindAll returns every task
func (r *GormTaskRepository) FindAll(ctx context.Context) ([]task.Task, error) {
	tasks := []task.Task{}
	if err := r.db.WithContext(ctx).Order("id asc").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// Create inserts a new task and backfills the generated ID
func (r *GormTaskRepository) Create(ctx context.Context, t *task.Task) error {
	return r.db.WithContext(ctx).Create(t).Error
}

// Update persists changes with an optimistic version check
func (r *GormTaskRepository) Update(ctx context.Context, t *task.Task) error {
	currentVersion := t.Version
	t.IncrementVersion()

	result := r.db.WithContext(ctx).
		Model(t).
		Where("id = ? AND version = ?", t.ID, currentVersion).
		Updates(map[string]interface{}{
			"recipe":      t.Recipe,
			"quantity":    t.Quantity,
			"assigned_to": t.AssignedTo,
			"status":      t.Status,
			"version":     t.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a task by ID
func (r *GormTaskRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&task.Task{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
