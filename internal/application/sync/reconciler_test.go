package sync

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chefcode/backend/internal/domain/inventory"
	"github.com/chefcode/backend/internal/domain/recipe"
	"github.com/chefcode/backend/internal/domain/shared"
	"github.com/chefcode/backend/internal/domain/syncdata"
	"github.com/chefcode/backend/internal/domain/task"
)

// ============================================================================
// Mocks
// ============================================================================

type MockInventoryRepo struct{ mock.Mock }

func (m *MockInventoryRepo) FindByID(ctx context.Context, id uint) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockInventoryRepo) FindFirstByName(ctx context.Context, name string) (*inventory.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockInventoryRepo) FindByNames(ctx context.Context, names []string) ([]inventory.Item, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockInventoryRepo) FindAll(ctx context.Context) ([]inventory.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockInventoryRepo) Create(ctx context.Context, item *inventory.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepo) Update(ctx context.Context, item *inventory.Item) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockInventoryRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockRecipeRepo struct{ mock.Mock }

func (m *MockRecipeRepo) FindByID(ctx context.Context, id uint) (*recipe.Recipe, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepo) FindByName(ctx context.Context, name string) (*recipe.Recipe, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepo) FindAll(ctx context.Context) ([]recipe.Recipe, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepo) List(ctx context.Context, offset, limit int) ([]recipe.Recipe, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]recipe.Recipe), args.Error(1)
}

func (m *MockRecipeRepo) Create(ctx context.Context, r *recipe.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecipeRepo) Update(ctx context.Context, r *recipe.Recipe) error {
	return m.Called(ctx, r).Error(0)
}

func (m *MockRecipeRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockTaskRepo struct{ mock.Mock }

func (m *MockTaskRepo) FindByID(ctx context.Context, id uint) (*task.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskRepo) FindByIDs(ctx context.Context, ids []uint) ([]task.Task, error) {
	args := m.Called(ctx, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.Task), args.Error(1)
}

func (m *MockTaskRepo) FindAll(ctx context.Context) ([]task.Task, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]task.Task), args.Error(1)
}

func (m *MockTaskRepo) Create(ctx context.Context, t *task.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepo) Update(ctx context.Context, t *task.Task) error {
	return m.Called(ctx, t).Error(0)
}

func (m *MockTaskRepo) Delete(ctx context.Context, id uint) error {
	return m.Called(ctx, id).Error(0)
}

type MockSnapshotRepo struct{ mock.Mock }

func (m *MockSnapshotRepo) Append(ctx context.Context, s *syncdata.Snapshot) error {
	return m.Called(ctx, s).Error(0)
}

type fixture struct {
	inv  *MockInventoryRepo
	rcp  *MockRecipeRepo
	tsk  *MockTaskRepo
	snap *MockSnapshotRepo
	rec  *Reconciler
}

func newFixture() *fixture {
	f := &fixture{
		inv:  new(MockInventoryRepo),
		rcp:  new(MockRecipeRepo),
		tsk:  new(MockTaskRepo),
		snap: new(MockSnapshotRepo),
	}
	scope := NewNoOpTransactionScope(f.inv, f.rcp, f.tsk, f.snap)
	f.rec = NewReconciler(scope, zap.NewNop())
	return f
}

func (f *fixture) expectSnapshot() {
	f.snap.On("Append", mock.Anything, mock.MatchedBy(func(s *syncdata.Snapshot) bool {
		return s.DataType == syncdata.DataTypeFullSync && s.DataContent != ""
	})).Return(nil)
}

func strPtr(s string) *string    { return &s }
func floatPtr(f float64) *float64 { return &f }
func intPtr(i int) *int          { return &i }
func uintPtr(u uint) *uint       { return &u }

// ============================================================================
// Tests
// ============================================================================

func TestReconcile_WritesSnapshot(t *testing.T) {
	f := newFixture()
	f.expectSnapshot()
	f.rcp.On("FindAll", mock.Anything).Return([]recipe.Recipe{}, nil)

	res, err := f.rec.Reconcile(context.Background(), Request{})

	require.NoError(t, err)
	assert.Equal(t, 0, res.InventorySynced)
	f.snap.AssertExpectations(t)
}

func TestReconcile_InventoryOverwriteAndInsert(t *testing.T) {
	f := newFixture()
	f.expectSnapshot()
	f.rcp.On("FindAll", mock.Anything).Return([]recipe.Recipe{}, nil)

	stored, _ := inventory.NewItem("Flour", "kg", 5, "Dry", 1.20, strPtr("L-1"), nil)
	stored.ID = 1
	f.inv.On("FindByNames", mock.Anything, []string{"Flour", "Basil"}).
		Return([]inventory.Item{*stored}, nil)
	f.inv.On("Update", mock.Anything, mock.MatchedBy(func(i *inventory.Item) bool {
		// Authoritative overwrite: quantity replaced, not added; lot cleared.
		return i.ID == 1 && i.Quantity == 2 && i.Price == 1.50 && i.LotNumber == nil
	})).Return(nil)
	f.inv.On("Create", mock.Anything, mock.MatchedBy(func(i *inventory.Item) bool {
		return i.Name == "Basil" && i.Unit == "pz" && i.Category == "Other"
	})).Return(nil)

	res, err := f.rec.Reconcile(context.Background(), Request{
		Inventory: []InventoryRecord{
			{Name: strPtr("Flour"), Quantity: floatPtr(2), Price: floatPtr(1.50)},
			{Quantity: floatPtr(9)}, // nameless, skipped silently
			{Name: strPtr("Basil"), Quantity: floatPtr(1)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, res.InventorySynced)
	f.inv.AssertExpectations(t)
	// Inventory is never deleted by sync absence.
	f.inv.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReconcile_RecipeDeleteOnAbsenceAndUpsert(t *testing.T) {
	f := newFixture()
	f.expectSnapshot()

	a, _ := recipe.New("A", []recipe.Ingredient{{Name: "x", Qty: 1, Unit: "pz"}}, "")
	a.ID = 1
	b, _ := recipe.New("B", nil, "")
	b.ID = 2
	f.rcp.On("FindAll", mock.Anything).Return([]recipe.Recipe{*a, *b}, nil)
	f.rcp.On("Delete", mock.Anything, uint(2)).Return(nil)
	f.rcp.On("Update", mock.Anything, mock.MatchedBy(func(r *recipe.Recipe) bool {
		if r.ID != 1 {
			return false
		}
		ings, _ := r.Ingredients()
		return len(ings) == 1 && ings[0].Name == "y"
	})).Return(nil)
	f.rcp.On("Create", mock.Anything, mock.MatchedBy(func(r *recipe.Recipe) bool {
		y, _ := r.Yield()
		return r.Name == "C" && y != nil && y.Qty == 4
	})).Return(nil)

	res, err := f.rec.Reconcile(context.Background(), Request{
		Recipes: map[string]RecipeRecord{
			"A": {Items: []IngredientRecord{{Name: "y", Qty: 2, Unit: "kg"}}},
			"C": {Yield: &YieldRecord{Qty: 4, Unit: "portions"}},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, res.RecipesSynced)
	assert.Equal(t, 1, res.RecipesDeleted)
	f.rcp.AssertExpectations(t)
}

func TestReconcile_RecipeYieldAbsentStoredAsNull(t *testing.T) {
	f := newFixture()
	f.expectSnapshot()

	a, _ := recipe.New("A", nil, "")
	a.ID = 1
	require.NoError(t, a.SetYield(&recipe.Yield{Qty: 2, Unit: "l"}))
	f.rcp.On("FindAll", mock.Anything).Return([]recipe.Recipe{*a}, nil)
	f.rcp.On("Update", mock.Anything, mock.MatchedBy(func(r *recipe.Recipe) bool {
		// No yield in the payload clears the column, it never stores "null".
		return r.YieldData == nil
	})).Return(nil)

	_, err := f.rec.Reconcile(context.Background(), Request{
		Recipes: map[string]RecipeRecord{"A": {}},
	})
	require.NoError(t, err)
	f.rcp.AssertExpectations(t)
}

func TestReconcile_TaskOverwriteInsertAndSkip(t *testing.T) {
	f := newFixture()
	f.expectSnapshot()
	f.rcp.On("FindAll", mock.Anything).Return([]recipe.Recipe{}, nil)

	stored, _ := task.New("Carbonara", 1, "", task.StatusTodo)
	stored.ID = 7
	f.tsk.On("FindByIDs", mock.Anything, []uint{7, 99}).Return([]task.Task{*stored}, nil)
	f.tsk.On("Update", mock.Anything, mock.MatchedBy(func(tk *task.Task) bool {
		return tk.ID == 7 && tk.Status == task.StatusCompleted && tk.Quantity == 3
	})).Return(nil)
	// Unknown id 99 is discarded: inserted as a fresh row.
	f.tsk.On("Create", mock.Anything, mock.MatchedBy(func(tk *task.Task) bool {
		return tk.ID == 0 && tk.Recipe == "Tiramisu"
	})).Return(nil)

	res, err := f.rec.Reconcile(context.Background(), Request{
		Tasks: []TaskRecord{
			{ID: uintPtr(7), Recipe: strPtr("Carbonara"), Quantity: intPtr(3), Status: strPtr("completed")},
			{ID: uintPtr(99), Recipe: strPtr("Tiramisu")},
			{Quantity: intPtr(5)}, // no recipe, skipped silently
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, res.TasksSynced)
	f.tsk.AssertExpectations(t)
	f.tsk.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestReconcile_FailureReturnsGenericSyncError(t *testing.T) {
	f := newFixture()
	f.expectSnapshot()

	stored, _ := inventory.NewItem("Flour", "kg", 5, "Dry", 1.20, nil, nil)
	stored.ID = 1
	f.inv.On("FindByNames", mock.Anything, []string{"Flour"}).
		Return([]inventory.Item{*stored}, nil)
	f.inv.On("Update", mock.Anything, mock.Anything).Return(shared.ErrConcurrencyConflict)

	_, err := f.rec.Reconcile(context.Background(), Request{
		Inventory: []InventoryRecord{{Name: strPtr("Flour"), Quantity: floatPtr(1)}},
	})

	// The caller sees only the generic failure, never the internal cause.
	require.ErrorIs(t, err, shared.ErrSyncFailed)
	assert.NotErrorIs(t, err, shared.ErrConcurrencyConflict)
}

func TestReconcile_DuplicateNameInBatchUpdatesFreshRow(t *testing.T) {
	f := newFixture()
	f.expectSnapshot()
	f.rcp.On("FindAll", mock.Anything).Return([]recipe.Recipe{}, nil)

	f.inv.On("FindByNames", mock.Anything, []string{"Basil", "Basil"}).
		Return([]inventory.Item{}, nil)
	f.inv.On("Create", mock.Anything, mock.MatchedBy(func(i *inventory.Item) bool {
		return i.Name == "Basil"
	})).Return(nil).Once()
	f.inv.On("Update", mock.Anything, mock.MatchedBy(func(i *inventory.Item) bool {
		return i.Name == "Basil" && i.Quantity == 2
	})).Return(nil).Once()

	res, err := f.rec.Reconcile(context.Background(), Request{
		Inventory: []InventoryRecord{
			{Name: strPtr("Basil"), Quantity: floatPtr(1)},
			{Name: strPtr("Basil"), Quantity: floatPtr(2)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, 2, res.InventorySynced)
	f.inv.AssertExpectations(t)
}
