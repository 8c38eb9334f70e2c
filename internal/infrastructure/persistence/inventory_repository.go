package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/chefcode/backend/internal/domain/inventory"
	"github.com/chefcode/backend/internal/domain/shared"
)

// GormInventoryRepository implements inventory.Repository using GORM
type GormInventoryRepository struct {
	db *gorm.DB
}

// NewGormInventoryRepository creates a new GormInventoryRepository
func NewGormInventoryRepository(db *gorm.DB) *GormInventoryRepository {
	return &GormInventoryRepository{db: db}
}

// FindByID finds an inventory item by its ID
func (r *GormInventoryRepository) FindByID(ctx context.Context, id uint) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindFirstByName finds the oldest row with an exactly matching name. The
// order matters: it makes the merge target deterministic when duplicate-name
// rows exist.
func (r *GormInventoryRepository) FindFirstByName(ctx context.Context, name string) (*inventory.Item, error) {
	var item inventory.Item
	if err := r.db.WithContext(ctx).
		Where("name = ?", name).
		Order("id asc").
		First(&item).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &item, nil
}

// FindByNames finds all rows whose name is in the given set
func (r *GormInventoryRepository) FindByNames(ctx context.Context, names []string) ([]inventory.Item, error) {
	items := []inventory.Item{}
	if len(names) == 0 {
		return items, nil
	}
	if err := r.db.WithContext(ctx).
		Where("name IN ?", names).
		Order("id asc").
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// FindAll returns every inventory row
func (r *GormInventoryRepository) FindAll(ctx context.Context) ([]inventory.Item, error) {
	items := []inventory.Item{}
	if err := r.db.WithContext(ctx).Order("id asc").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// Create inserts a new row and backfills the generated ID
func (r *GormInventoryRepository) Create(ctx context.Context, item *inventory.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// Update persists changes with an optimistic version check: the row is only
// written if nobody bumped the version since it was read.
func (r *GormInventoryRepository) Update(ctx context.Context, item *inventory.Item) error {
	currentVersion := item.Version
	item.IncrementVersion()

	result := r.db.WithContext(ctx).
		Model(item).
		Where("id = ? AND version = ?", item.ID, currentVersion).
		Updates(map[string]interface{}{
			"name":        item.Name,
			"unit":        item.Unit,
			"quantity":    item.Quantity,
			"category":    item.Category,
			"price":       item.Price,
			"lot_number":  item.LotNumber,
			"expiry_date": item.ExpiryDate,
			"version":     item.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a row by ID
func (r *GormInventoryRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&inventory.Item{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}
