package handler

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recipeapp "github.com/chefcode/backend/internal/application/recipe"
	"github.com/chefcode/backend/internal/interfaces/http/dto"
)

func TestRecipeHandler(t *testing.T) {
	t.Run("create get update delete round trip", func(t *testing.T) {
		svc := newTestServices(t)
		engine := newEngine(NewRecipeHandler(svc.recipes, noAuth))

		w := doJSON(t, engine, http.MethodPost, "/api/recipes", map[string]any{
			"name":         "Carbonara",
			"items":        []map[string]any{{"name": "Eggs", "qty": 4, "unit": "pcs"}},
			"instructions": "Whisk and combine.",
			"yield":        map[string]any{"qty": 4, "unit": "portions"},
		})
		require.Equal(t, http.StatusCreated, w.Code)
		var created recipeapp.RecipeResponse
		decodeData(t, decodeResponse(t, w), &created)
		require.NotZero(t, created.ID)

		w = doJSON(t, engine, http.MethodGet, "/api/recipes/1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got recipeapp.RecipeResponse
		decodeData(t, decodeResponse(t, w), &got)
		assert.Equal(t, "Carbonara", got.Name)
		require.Len(t, got.Items, 1)

		w = doJSON(t, engine, http.MethodPut, "/api/recipes/1", map[string]any{
			"instructions": "Whisk, combine, serve immediately.",
		})
		require.Equal(t, http.StatusOK, w.Code)
		var updated recipeapp.RecipeResponse
		decodeData(t, decodeResponse(t, w), &updated)
		assert.Equal(t, "Whisk, combine, serve immediately.", updated.Instructions)

		w = doJSON(t, engine, http.MethodDelete, "/api/recipes/1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, engine, http.MethodGet, "/api/recipes/1", nil)
		requireError(t, w, http.StatusNotFound, dto.ErrCodeNotFound)
	})

	t.Run("duplicate name is a conflict", func(t *testing.T) {
		svc := newTestServices(t)
		engine := newEngine(NewRecipeHandler(svc.recipes, noAuth))

		doJSON(t, engine, http.MethodPost, "/api/recipes", map[string]any{"name": "Pizza"})
		w := doJSON(t, engine, http.MethodPost, "/api/recipes", map[string]any{"name": "Pizza"})
		requireError(t, w, http.StatusConflict, dto.ErrCodeAlreadyExists)
	})

	t.Run("list honors skip and limit", func(t *testing.T) {
		svc := newTestServices(t)
		engine := newEngine(NewRecipeHandler(svc.recipes, noAuth))

		for _, name := range []string{"A", "B", "C"} {
			doJSON(t, engine, http.MethodPost, "/api/recipes", map[string]any{"name": name})
		}

		w := doJSON(t, engine, http.MethodGet, "/api/recipes?skip=1&limit=1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var recipes []recipeapp.RecipeResponse
		decodeData(t, decodeResponse(t, w), &recipes)
		require.Len(t, recipes, 1)
	})
}

func TestTaskHandler(t *testing.T) {
	t.Run("create update status and delete", func(t *testing.T) {
		svc := newTestServices(t)
		engine := newEngine(NewTaskHandler(svc.tasks, noAuth))

		w := doJSON(t, engine, http.MethodPost, "/api/tasks", map[string]any{
			"recipe": "Carbonara", "quantity": 2, "assignedTo": "Anna",
		})
		require.Equal(t, http.StatusCreated, w.Code)

		w = doJSON(t, engine, http.MethodPut, "/api/tasks/1/status", map[string]any{"status": "inprogress"})
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, engine, http.MethodGet, "/api/tasks/1", nil)
		require.Equal(t, http.StatusOK, w.Code)
		var got struct {
			Status string `json:"status"`
		}
		decodeData(t, decodeResponse(t, w), &got)
		assert.Equal(t, "inprogress", got.Status)

		w = doJSON(t, engine, http.MethodDelete, "/api/tasks/1", nil)
		require.Equal(t, http.StatusOK, w.Code)

		w = doJSON(t, engine, http.MethodGet, "/api/tasks", nil)
		var tasks []any
		decodeData(t, decodeResponse(t, w), &tasks)
		assert.Empty(t, tasks)
	})

	t.Run("invalid status is rejected", func(t *testing.T) {
		svc := newTestServices(t)
		engine := newEngine(NewTaskHandler(svc.tasks, noAuth))

		doJSON(t, engine, http.MethodPost, "/api/tasks", map[string]any{"recipe": "Pizza"})
		w := doJSON(t, engine, http.MethodPut, "/api/tasks/1/status", map[string]any{"status": "paused"})
		requireError(t, w, http.StatusBadRequest, dto.ErrCodeValidation)
	})

	t.Run("missing recipe is a bad request", func(t *testing.T) {
		svc := newTestServices(t)
		engine := newEngine(NewTaskHandler(svc.tasks, noAuth))

		w := doJSON(t, engine, http.MethodPost, "/api/tasks", map[string]any{"quantity": 1})
		requireError(t, w, http.StatusBadRequest, dto.ErrCodeBadRequest)
	})
}
