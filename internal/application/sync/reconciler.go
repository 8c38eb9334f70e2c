package sync

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/chefcode/backend/internal/domain/inventory"
	"github.com/chefcode/backend/internal/domain/recipe"
	"github.com/chefcode/backend/internal/domain/shared"
	"github.com/chefcode/backend/internal/domain/syncdata"
	"github.com/chefcode/backend/internal/domain/task"
)

// Reconciler makes server state match a client's full-sync payload inside a
// single transaction. Entity policies differ on purpose:
//
//   - inventory: per-name authoritative overwrite, absent names survive
//   - recipes: upsert plus delete-on-absence (the payload is authoritative
//     for recipe existence)
//   - tasks: id-keyed overwrite, unknown ids insert fresh, absent ids survive
//
// Any failure rolls back the whole transaction; the caller only ever sees a
// generic sync failure while the cause goes to the log.
type Reconciler struct {
	scope  TransactionScope
	logger *zap.Logger
}

// NewReconciler creates a new Reconciler.
func NewReconciler(scope TransactionScope, logger *zap.Logger) *Reconciler {
	return &Reconciler{scope: scope, logger: logger}
}

// Reconcile applies a full-sync request. The raw payload is persisted as an
// audit snapshot in the same transaction before any reconciliation runs.
func (r *Reconciler) Reconcile(ctx context.Context, req Request) (*Result, error) {
	var result Result

	err := r.scope.Execute(ctx, func(repos TransactionalRepositories) error {
		raw, err := json.Marshal(req)
		if err != nil {
			return err
		}
		if err := repos.SnapshotRepo().Append(ctx, syncdata.NewSnapshot(syncdata.DataTypeFullSync, string(raw))); err != nil {
			return err
		}

		if err := r.reconcileInventory(ctx, repos.InventoryRepo(), req.Inventory, &result); err != nil {
			return err
		}
		if err := r.reconcileRecipes(ctx, repos.RecipeRepo(), req.Recipes, &result); err != nil {
			return err
		}
		return r.reconcileTasks(ctx, repos.TaskRepo(), req.Tasks, &result)
	})
	if err != nil {
		r.logger.Error("full sync failed, transaction rolled back", zap.Error(err))
		return nil, shared.ErrSyncFailed
	}

	r.logger.Info("full sync completed",
		zap.Int("inventory_synced", result.InventorySynced),
		zap.Int("recipes_synced", result.RecipesSynced),
		zap.Int("recipes_deleted", result.RecipesDeleted),
		zap.Int("tasks_synced", result.TasksSynced))
	return &result, nil
}

// reconcileInventory overwrites or inserts each named record. Identity is
// resolved with one bulk query; records without a name are skipped silently.
func (r *Reconciler) reconcileInventory(ctx context.Context, repo inventory.Repository, records []InventoryRecord, result *Result) error {
	names := make([]string, 0, len(records))
	for _, rec := range records {
		if rec.Name != nil && *rec.Name != "" {
			names = append(names, *rec.Name)
		}
	}
	if len(names) == 0 {
		return nil
	}

	existing, err := repo.FindByNames(ctx, names)
	if err != nil {
		return err
	}
	// First stored row per name is the sync target, matching the single-row
	// lookup order of the merge paths.
	byName := make(map[string]*inventory.Item, len(existing))
	for i := range existing {
		if _, ok := byName[existing[i].Name]; !ok {
			byName[existing[i].Name] = &existing[i]
		}
	}

	for _, rec := range records {
		if rec.Name == nil || *rec.Name == "" {
			continue
		}
		name := *rec.Name
		unit := derefStr(rec.Unit)
		category := derefStr(rec.Category)
		quantity := derefFloat(rec.Quantity)
		price := derefFloat(rec.Price)
		expiry := shared.ParseDate(derefStr(rec.ExpiryDate))

		if target, ok := byName[name]; ok {
			target.Overwrite(unit, quantity, category, price, rec.LotNumber, expiry)
			if err := repo.Update(ctx, target); err != nil {
				return err
			}
		} else {
			item, err := inventory.NewItem(name, unit, quantity, category, price, rec.LotNumber, expiry)
			if err != nil {
				return err
			}
			if err := repo.Create(ctx, item); err != nil {
				return err
			}
			// A later duplicate of the same name in this batch overwrites
			// the row we just created instead of inserting again.
			byName[name] = item
		}
		result.InventorySynced++
	}
	return nil
}

// reconcileRecipes deletes stored recipes absent from the incoming mapping,
// then upserts every incoming pair. The delete set is computed from the
// stored names as they were before any upsert ran.
func (r *Reconciler) reconcileRecipes(ctx context.Context, repo recipe.Repository, incoming map[string]RecipeRecord, result *Result) error {
	stored, err := repo.FindAll(ctx)
	if err != nil {
		return err
	}

	byName := make(map[string]*recipe.Recipe, len(stored))
	for i := range stored {
		byName[stored[i].Name] = &stored[i]
	}

	for i := range stored {
		if _, keep := incoming[stored[i].Name]; !keep {
			if err := repo.Delete(ctx, stored[i].ID); err != nil {
				return err
			}
			result.RecipesDeleted++
		}
	}

	for name, rec := range incoming {
		items := make([]recipe.Ingredient, 0, len(rec.Items))
		for _, ing := range rec.Items {
			items = append(items, recipe.Ingredient{Name: ing.Name, Qty: ing.Qty, Unit: ing.Unit})
		}
		var yield *recipe.Yield
		if rec.Yield != nil {
			yield = &recipe.Yield{Qty: rec.Yield.Qty, Unit: rec.Yield.Unit}
		}

		if target, ok := byName[name]; ok {
			if err := target.SetIngredients(items); err != nil {
				return err
			}
			if err := target.SetYield(yield); err != nil {
				return err
			}
			if rec.Instructions != nil {
				target.Instructions = *rec.Instructions
			}
			if err := repo.Update(ctx, target); err != nil {
				return err
			}
		} else {
			rcp, err := recipe.New(name, items, derefStr(rec.Instructions))
			if err != nil {
				return err
			}
			if err := rcp.SetYield(yield); err != nil {
				return err
			}
			if err := repo.Create(ctx, rcp); err != nil {
				return err
			}
		}
		result.RecipesSynced++
	}
	return nil
}

// reconcileTasks overwrites tasks whose id matches a stored row and inserts
// the rest. Records without a recipe are skipped silently; a supplied id
// that matches nothing is discarded and the store generates a new one.
func (r *Reconciler) reconcileTasks(ctx context.Context, repo task.Repository, records []TaskRecord, result *Result) error {
	ids := make([]uint, 0, len(records))
	for _, rec := range records {
		if rec.ID != nil {
			ids = append(ids, *rec.ID)
		}
	}

	byID := make(map[uint]*task.Task)
	if len(ids) > 0 {
		existing, err := repo.FindByIDs(ctx, ids)
		if err != nil {
			return err
		}
		for i := range existing {
			byID[existing[i].ID] = &existing[i]
		}
	}

	for _, rec := range records {
		if rec.Recipe == nil || *rec.Recipe == "" {
			continue
		}
		quantity := 1
		if rec.Quantity != nil && *rec.Quantity >= 1 {
			quantity = *rec.Quantity
		}
		status := task.StatusTodo
		if rec.Status != nil && task.Status(*rec.Status).Valid() {
			status = task.Status(*rec.Status)
		}

		var target *task.Task
		if rec.ID != nil {
			target = byID[*rec.ID]
		}
		if target != nil {
			target.Recipe = *rec.Recipe
			target.Quantity = quantity
			target.AssignedTo = derefStr(rec.AssignedTo)
			target.Status = status
			if err := repo.Update(ctx, target); err != nil {
				return err
			}
		} else {
			t, err := task.New(*rec.Recipe, quantity, derefStr(rec.AssignedTo), status)
			if err != nil {
				return err
			}
			if err := repo.Create(ctx, t); err != nil {
				return err
			}
		}
		result.TasksSynced++
	}
	return nil
}

func derefStr(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func derefFloat(f *float64) float64 {
	if f == nil {
		return 0
	}
	return *f
}
