package handler

import (
	"encoding/json"

	"github.com/gin-gonic/gin"

	inventoryapp "github.com/chefcode/backend/internal/application/inventory"
	recipeapp "github.com/chefcode/backend/internal/application/recipe"
	taskapp "github.com/chefcode/backend/internal/application/task"
)

// Actions the dispatch endpoint accepts.
const (
	ActionAddInventory = "add-inventory"
	ActionSaveRecipe   = "save-recipe"
	ActionAddTask      = "add-task"
)

// actionRequest is the dispatch envelope: an action name plus its payload,
// decoded per action.
type actionRequest struct {
	Action string          `json:"action" binding:"required"`
	Data   json.RawMessage `json:"data"`
}

// ActionsHandler serves the single dispatch endpoint older clients post
// every mutation through.
type ActionsHandler struct {
	BaseHandler
	inventory *inventoryapp.Service
	recipes   *recipeapp.Service
	tasks     *taskapp.Service
	auth      gin.HandlerFunc
}

// NewActionsHandler creates a new ActionsHandler.
func NewActionsHandler(inventory *inventoryapp.Service, recipes *recipeapp.Service, tasks *taskapp.Service, auth gin.HandlerFunc) *ActionsHandler {
	return &ActionsHandler{inventory: inventory, recipes: recipes, tasks: tasks, auth: auth}
}

// RegisterRoutes registers the action routes.
func (h *ActionsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/action", h.auth, h.Handle)
}

// Handle dispatches one action to its service.
func (h *ActionsHandler) Handle(c *gin.Context) {
	var req actionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	switch req.Action {
	case ActionAddInventory:
		h.addInventory(c, req.Data)
	case ActionSaveRecipe:
		h.saveRecipe(c, req.Data)
	case ActionAddTask:
		h.addTask(c, req.Data)
	default:
		h.BadRequest(c, "Unknown action: "+req.Action)
	}
}

// addInventory runs the full HACCP-aware merge: identical lot and expiry
// merge into the existing row, a differing pair inserts a sibling row.
func (h *ActionsHandler) addInventory(c *gin.Context, data json.RawMessage) {
	var req inventoryapp.CreateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.BadRequest(c, "Invalid action data: "+err.Error())
		return
	}
	if req.Name == "" {
		h.BadRequest(c, "Missing required field: name")
		return
	}
	if err := validateExpiryDate(req.ExpiryDate); err != nil {
		h.HandleError(c, err)
		return
	}

	result, err := h.inventory.Add(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}

// saveRecipe upserts a recipe by name.
func (h *ActionsHandler) saveRecipe(c *gin.Context, data json.RawMessage) {
	var req recipeapp.CreateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.BadRequest(c, "Invalid action data: "+err.Error())
		return
	}
	if req.Name == "" {
		h.BadRequest(c, "Missing required field: name")
		return
	}

	rec, created, err := h.recipes.Save(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	message := "Recipe updated successfully"
	if created {
		message = "Recipe saved successfully"
	}
	h.Success(c, gin.H{"message": message, "recipe": rec})
}

// addTask stores a new prep task.
func (h *ActionsHandler) addTask(c *gin.Context, data json.RawMessage) {
	var req taskapp.CreateRequest
	if err := json.Unmarshal(data, &req); err != nil {
		h.BadRequest(c, "Invalid action data: "+err.Error())
		return
	}
	if req.Recipe == "" {
		h.BadRequest(c, "Missing required field: recipe")
		return
	}

	t, err := h.tasks.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Task added successfully", "task": t})
}
