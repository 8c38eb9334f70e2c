package handler

import (
	"github.com/gin-gonic/gin"

	recipeapp "github.com/chefcode/backend/internal/application/recipe"
	"github.com/chefcode/backend/internal/interfaces/http/dto"
)

// RecipeHandler serves the recipe CRUD routes.
type RecipeHandler struct {
	BaseHandler
	service *recipeapp.Service
	auth    gin.HandlerFunc
}

// NewRecipeHandler creates a new RecipeHandler.
func NewRecipeHandler(service *recipeapp.Service, auth gin.HandlerFunc) *RecipeHandler {
	return &RecipeHandler{service: service, auth: auth}
}

// RegisterRoutes registers the recipe routes.
func (h *RecipeHandler) RegisterRoutes(rg *gin.RouterGroup) {
	g := rg.Group("/recipes")
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.POST("", h.auth, h.Create)
	g.PUT("/:id", h.auth, h.Update)
	g.DELETE("/:id", h.auth, h.Delete)
}

// List returns recipes with skip/limit pagination.
func (h *RecipeHandler) List(c *gin.Context) {
	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid pagination parameters: "+err.Error())
		return
	}
	recipes, err := h.service.List(c.Request.Context(), req.Skip, req.Limit)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, recipes)
}

// Get returns a single recipe by ID.
func (h *RecipeHandler) Get(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}
	rec, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// Create stores a new recipe. A duplicate name is a conflict, not an upsert;
// the bulk action endpoint is the upsert path.
func (h *RecipeHandler) Create(c *gin.Context) {
	var req recipeapp.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	rec, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, rec)
}

// Update applies a partial update to a recipe.
func (h *RecipeHandler) Update(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}
	var req recipeapp.UpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}
	rec, err := h.service.Update(c.Request.Context(), id, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rec)
}

// Delete removes a recipe by ID.
func (h *RecipeHandler) Delete(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid recipe ID")
		return
	}
	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Recipe deleted successfully"})
}
