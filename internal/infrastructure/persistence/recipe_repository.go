package persistence

import (
	"context"
	"errors"
	"strings"

	"gorm.io/gorm"

	"github.com/chefcode/backend/internal/domain/recipe"
	"github.com/chefcode/backend/internal/domain/shared"
)

// GormRecipeRepository implements recipe.Repository using GORM
type GormRecipeRepository struct {
	db *gorm.DB
}

// NewGormRecipeRepository creates a new GormRecipeRepository
func NewGormRecipeRepository(db *gorm.DB) *GormRecipeRepository {
	return &GormRecipeRepository{db: db}
}

// FindByID finds a recipe by ID
func (r *GormRecipeRepository) FindByID(ctx context.Context, id uint) (*recipe.Recipe, error) {
	var rec recipe.Recipe
	if err := r.db.WithContext(ctx).First(&rec, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindByName finds a recipe by exact name
func (r *GormRecipeRepository) FindByName(ctx context.Context, name string) (*recipe.Recipe, error) {
	var rec recipe.Recipe
	if err := r.db.WithContext(ctx).First(&rec, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &rec, nil
}

// FindAll returns every recipe
func (r *GormRecipeRepository) FindAll(ctx context.Context) ([]recipe.Recipe, error) {
	recipes := []recipe.Recipe{}
	if err := r.db.WithContext(ctx).Order("id asc").Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// List returns a page of recipes
func (r *GormRecipeRepository) List(ctx context.Context, offset, limit int) ([]recipe.Recipe, error) {
	recipes := []recipe.Recipe{}
	if err := r.db.WithContext(ctx).
		Order("id asc").
		Offset(offset).
		Limit(limit).
		Find(&recipes).Error; err != nil {
		return nil, err
	}
	return recipes, nil
}

// Create inserts a new recipe. A unique-constraint violation on the name
// maps to the domain's already-exists error so callers need not know the
// database's duplicate-key message.
func (r *GormRecipeRepository) Create(ctx context.Context, rec *recipe.Recipe) error {
	if err := r.db.WithContext(ctx).Create(rec).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || isUniqueViolation(err) {
			return shared.ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Update persists changes with an optimistic version check
func (r *GormRecipeRepository) Update(ctx context.Context, rec *recipe.Recipe) error {
	currentVersion := rec.Version
	rec.IncrementVersion()

	result := r.db.WithContext(ctx).
		Model(rec).
		Where("id = ? AND version = ?", rec.ID, currentVersion).
		Updates(map[string]interface{}{
			"name":               rec.Name,
			"items":              rec.Items,
			"instructions":       rec.Instructions,
			"yield_data":         rec.YieldData,
			"source_url":         rec.SourceURL,
			"image_url":          rec.ImageURL,
			"cuisine":            rec.Cuisine,
			"ingredients_raw":    rec.IngredientsRaw,
			"ingredients_mapped": rec.IngredientsMapped,
			"version":            rec.Version,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Delete removes a recipe by ID
func (r *GormRecipeRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&recipe.Recipe{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// isUniqueViolation catches duplicate-key errors from drivers that don't
// surface gorm.ErrDuplicatedKey (sqlite in tests, older postgres drivers).
func isUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "unique constraint") || strings.Contains(msg, "duplicate key")
}
