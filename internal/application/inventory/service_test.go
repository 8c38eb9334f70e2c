package inventory

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/chefcode/backend/internal/domain/inventory"
	"github.com/chefcode/backend/internal/domain/shared"
)

// MockRepository is a mock implementation of inventory.Repository
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) FindByID(ctx context.Context, id uint) (*inventory.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockRepository) FindFirstByName(ctx context.Context, name string) (*inventory.Item, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*inventory.Item), args.Error(1)
}

func (m *MockRepository) FindByNames(ctx context.Context, names []string) ([]inventory.Item, error) {
	args := m.Called(ctx, names)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockRepository) FindAll(ctx context.Context) ([]inventory.Item, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]inventory.Item), args.Error(1)
}

func (m *MockRepository) Create(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) Update(ctx context.Context, item *inventory.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func newTestService(repo *MockRepository) *Service {
	return NewService(repo, zap.NewNop())
}

func existingItem(name string, qty, price float64, lot *string) *inventory.Item {
	item, _ := inventory.NewItem(name, "kg", qty, "Other", price, lot, nil)
	item.ID = 1
	return item
}

func strPtr(s string) *string { return &s }

func TestCreate_MergesOnPriceAlone(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	// Existing row carries a lot number; the direct create path must still
	// merge because only the price is consulted.
	existing := existingItem("Flour", 5, 1.20, strPtr("L-1"))
	repo.On("FindFirstByName", mock.Anything, "Flour").Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	res, err := svc.Create(context.Background(), CreateRequest{
		Name: "Flour", Quantity: 3, Price: 1.205, LotNumber: strPtr("L-2"),
	})

	require.NoError(t, err)
	assert.True(t, res.Merged)
	assert.False(t, res.Created)
	assert.Equal(t, 8.0, res.Item.Quantity)
	repo.AssertExpectations(t)
}

func TestCreate_InsertsWhenPriceDiffers(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	existing := existingItem("Flour", 5, 1.20, nil)
	repo.On("FindFirstByName", mock.Anything, "Flour").Return(existing, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*inventory.Item")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*inventory.Item).ID = 2
		}).Return(nil)

	res, err := svc.Create(context.Background(), CreateRequest{
		Name: "Flour", Quantity: 3, Price: 1.30,
	})

	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, uint(2), res.Item.ID)
	repo.AssertExpectations(t)
}

func TestCreate_InsertsWhenNoExistingRow(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("FindFirstByName", mock.Anything, "Basil").Return(nil, shared.ErrNotFound)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*inventory.Item")).Return(nil)

	res, err := svc.Create(context.Background(), CreateRequest{Name: "Basil", Quantity: 1})

	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "pz", res.Item.Unit)
	assert.Equal(t, "Other", res.Item.Category)
	repo.AssertExpectations(t)
}

func TestAdd_IncrementsWhenLotAndExpiryMatch(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	existing := existingItem("Milk", 10, 0.99, strPtr("L-7"))
	existing.ExpiryDate = shared.ParseDate("2026-09-01")
	repo.On("FindFirstByName", mock.Anything, "Milk").Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	res, err := svc.Add(context.Background(), CreateRequest{
		Name: "Milk", Quantity: 2, Price: 0.995,
		LotNumber: strPtr("L-7"), ExpiryDate: strPtr("2026-09-01"),
	})

	require.NoError(t, err)
	assert.True(t, res.Merged)
	assert.Equal(t, 12.0, res.Item.Quantity)
	repo.AssertExpectations(t)
}

func TestAdd_InsertsSiblingWhenLotDiffers(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	existing := existingItem("Milk", 10, 0.99, strPtr("L-7"))
	repo.On("FindFirstByName", mock.Anything, "Milk").Return(existing, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*inventory.Item")).Return(nil)

	res, err := svc.Add(context.Background(), CreateRequest{
		Name: "Milk", Quantity: 2, Price: 0.99, LotNumber: strPtr("L-8"),
	})

	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "New lot added for existing item", res.Message)
	// The existing row keeps its quantity untouched.
	assert.Equal(t, 10.0, existing.Quantity)
	repo.AssertExpectations(t)
}

func TestAdd_InsertsWhenPriceDiffersEvenWithMatchingLot(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	existing := existingItem("Milk", 10, 0.99, strPtr("L-7"))
	repo.On("FindFirstByName", mock.Anything, "Milk").Return(existing, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*inventory.Item")).Return(nil)

	res, err := svc.Add(context.Background(), CreateRequest{
		Name: "Milk", Quantity: 2, Price: 1.10, LotNumber: strPtr("L-7"),
	})

	require.NoError(t, err)
	assert.True(t, res.Created)
	assert.Equal(t, "Item added", res.Message)
	repo.AssertExpectations(t)
}

func TestAdd_MalformedExpiryDegradesToNoExpiry(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	existing := existingItem("Milk", 10, 0.99, nil)
	repo.On("FindFirstByName", mock.Anything, "Milk").Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	// "not-a-date" parses to nil, which matches the existing nil expiry.
	res, err := svc.Add(context.Background(), CreateRequest{
		Name: "Milk", Quantity: 1, Price: 0.99, ExpiryDate: strPtr("not-a-date"),
	})

	require.NoError(t, err)
	assert.True(t, res.Merged)
	repo.AssertExpectations(t)
}

func TestUpdate_AppliesOnlyProvidedFields(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	existing := existingItem("Milk", 10, 0.99, strPtr("L-7"))
	repo.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)
	repo.On("Update", mock.Anything, existing).Return(nil)

	qty := 4.5
	res, err := svc.Update(context.Background(), 1, UpdateRequest{Quantity: &qty})

	require.NoError(t, err)
	assert.Equal(t, 4.5, res.Quantity)
	assert.Equal(t, "Milk", res.Name)
	assert.Equal(t, 0.99, res.Price)
	repo.AssertExpectations(t)
}

func TestUpdate_RejectsEmptyName(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	existing := existingItem("Milk", 10, 0.99, nil)
	repo.On("FindByID", mock.Anything, uint(1)).Return(existing, nil)

	empty := ""
	_, err := svc.Update(context.Background(), 1, UpdateRequest{Name: &empty})

	assert.Error(t, err)
	repo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestUpdate_NotFound(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("FindByID", mock.Anything, uint(99)).Return(nil, shared.ErrNotFound)

	_, err := svc.Update(context.Background(), 99, UpdateRequest{})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestDelete(t *testing.T) {
	repo := new(MockRepository)
	svc := newTestService(repo)

	repo.On("Delete", mock.Anything, uint(3)).Return(nil)
	assert.NoError(t, svc.Delete(context.Background(), 3))
	repo.AssertExpectations(t)
}
