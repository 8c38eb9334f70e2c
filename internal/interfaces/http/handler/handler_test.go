package handler

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	inventoryapp "github.com/chefcode/backend/internal/application/inventory"
	recipeapp "github.com/chefcode/backend/internal/application/recipe"
	syncapp "github.com/chefcode/backend/internal/application/sync"
	taskapp "github.com/chefcode/backend/internal/application/task"
	"github.com/chefcode/backend/internal/domain/inventory"
	"github.com/chefcode/backend/internal/domain/recipe"
	"github.com/chefcode/backend/internal/domain/syncdata"
	"github.com/chefcode/backend/internal/domain/task"
	"github.com/chefcode/backend/internal/infrastructure/persistence"
	"github.com/chefcode/backend/internal/interfaces/http/dto"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// testServices bundles real services over an in-memory database, which keeps
// handler tests honest about binding, status codes and response shapes.
type testServices struct {
	db        *gorm.DB
	inventory *inventoryapp.Service
	recipes   *recipeapp.Service
	tasks     *taskapp.Service
	sync      *syncapp.Reconciler
}

func newTestServices(t *testing.T) *testServices {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&inventory.Item{}, &recipe.Recipe{}, &task.Task{}, &syncdata.Snapshot{}))

	log := zap.NewNop()
	return &testServices{
		db:        db,
		inventory: inventoryapp.NewService(persistence.NewGormInventoryRepository(db), log),
		recipes:   recipeapp.NewService(persistence.NewGormRecipeRepository(db), log),
		tasks:     taskapp.NewService(persistence.NewGormTaskRepository(db), log),
		sync:      syncapp.NewReconciler(persistence.NewGormSyncTransactionScope(db), log),
	}
}

// addFlour is a minimal valid inventory add used where the test only needs
// a row to exist.
func addFlour() inventoryapp.CreateRequest {
	return inventoryapp.CreateRequest{Name: "Flour", Unit: "kg", Quantity: 5, Category: "Dry", Price: 1.20}
}

// noAuth stands in for the API key middleware in tests that are not about
// authentication.
func noAuth(c *gin.Context) { c.Next() }

func newEngine(registrars ...interface {
	RegisterRoutes(rg *gin.RouterGroup)
}) *gin.Engine {
	engine := gin.New()
	api := engine.Group("/api")
	for _, r := range registrars {
		r.RegisterRoutes(api)
	}
	return engine
}

func doJSON(t *testing.T, engine *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func decodeResponse(t *testing.T, w *httptest.ResponseRecorder) dto.Response {
	t.Helper()
	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

// decodeData re-marshals the envelope's data into a typed value.
func decodeData(t *testing.T, resp dto.Response, out any) {
	t.Helper()
	raw, err := json.Marshal(resp.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, out))
}

func requireError(t *testing.T, w *httptest.ResponseRecorder, status int, code string) {
	t.Helper()
	require.Equal(t, status, w.Code)
	resp := decodeResponse(t, w)
	require.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	require.Equal(t, code, resp.Error.Code)
}
