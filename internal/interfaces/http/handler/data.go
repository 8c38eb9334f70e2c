package handler

import (
	"github.com/gin-gonic/gin"

	inventoryapp "github.com/chefcode/backend/internal/application/inventory"
	recipeapp "github.com/chefcode/backend/internal/application/recipe"
	taskapp "github.com/chefcode/backend/internal/application/task"
)

// recipeData is the value side of the name-keyed recipe mapping the client
// consumes: ingredient lines plus the optional yield.
type recipeData struct {
	Items []recipeapp.IngredientDTO `json:"items"`
	Yield *recipeapp.YieldDTO       `json:"yield"`
}

// aggregateData is the client's complete working set in one payload.
type aggregateData struct {
	Inventory []inventoryapp.ItemResponse `json:"inventory"`
	Recipes   map[string]recipeData       `json:"recipes"`
	Tasks     []taskapp.TaskResponse      `json:"tasks"`
}

// DataHandler serves the aggregate read the client bootstraps from.
type DataHandler struct {
	BaseHandler
	inventory *inventoryapp.Service
	recipes   *recipeapp.Service
	tasks     *taskapp.Service
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(inventory *inventoryapp.Service, recipes *recipeapp.Service, tasks *taskapp.Service) *DataHandler {
	return &DataHandler{inventory: inventory, recipes: recipes, tasks: tasks}
}

// RegisterRoutes registers the data routes.
func (h *DataHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/data", h.GetAll)
}

// GetAll returns inventory, recipes and tasks in a single response. Recipes
// come back keyed by name, which is how the client addresses them.
func (h *DataHandler) GetAll(c *gin.Context) {
	ctx := c.Request.Context()

	items, err := h.inventory.List(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	recipes, err := h.recipes.List(ctx, 0, allRecipesLimit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	tasks, err := h.tasks.List(ctx)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	recipeMap := make(map[string]recipeData, len(recipes))
	for _, r := range recipes {
		recipeMap[r.Name] = recipeData{Items: r.Items, Yield: r.Yield}
	}

	h.Success(c, aggregateData{
		Inventory: items,
		Recipes:   recipeMap,
		Tasks:     tasks,
	})
}

// allRecipesLimit bounds the aggregate read. A single kitchen's recipe book
// stays far below this.
const allRecipesLimit = 10000
