package recipe

import (
	"github.com/chefcode/backend/internal/domain/recipe"
)

// IngredientDTO mirrors one line of a recipe's ingredient list on the wire.
type IngredientDTO struct {
	Name string  `json:"name"`
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
}

// YieldDTO mirrors the recipe yield on the wire.
type YieldDTO struct {
	Qty  float64 `json:"qty"`
	Unit string  `json:"unit"`
}

// CreateRequest carries a new recipe.
type CreateRequest struct {
	Name         string          `json:"name" binding:"required"`
	Items        []IngredientDTO `json:"items"`
	Instructions string          `json:"instructions"`
	Yield        *YieldDTO       `json:"yield"`
	SourceURL    *string         `json:"source_url"`
	ImageURL     *string         `json:"image_url"`
	Cuisine      *string         `json:"cuisine"`
}

// UpdateRequest carries a partial recipe update; nil fields are untouched.
type UpdateRequest struct {
	Name         *string          `json:"name"`
	Items        *[]IngredientDTO `json:"items"`
	Instructions *string          `json:"instructions"`
	Yield        *YieldDTO        `json:"yield"`
	SourceURL    *string          `json:"source_url"`
	ImageURL     *string          `json:"image_url"`
	Cuisine      *string          `json:"cuisine"`
}

// RecipeResponse is the client-facing shape of a recipe.
type RecipeResponse struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	Items        []IngredientDTO `json:"items"`
	Instructions string          `json:"instructions"`
	Yield        *YieldDTO       `json:"yield,omitempty"`
	SourceURL    *string         `json:"source_url,omitempty"`
	ImageURL     *string         `json:"image_url,omitempty"`
	Cuisine      *string         `json:"cuisine,omitempty"`
}

func toIngredients(items []IngredientDTO) []recipe.Ingredient {
	out := make([]recipe.Ingredient, 0, len(items))
	for _, it := range items {
		out = append(out, recipe.Ingredient{Name: it.Name, Qty: it.Qty, Unit: it.Unit})
	}
	return out
}

// ToRecipeResponse converts a domain recipe, tolerating a corrupt ingredient
// blob by degrading to an empty list.
func ToRecipeResponse(r *recipe.Recipe) RecipeResponse {
	ings, err := r.Ingredients()
	if err != nil {
		ings = []recipe.Ingredient{}
	}
	items := make([]IngredientDTO, 0, len(ings))
	for _, ing := range ings {
		items = append(items, IngredientDTO{Name: ing.Name, Qty: ing.Qty, Unit: ing.Unit})
	}
	resp := RecipeResponse{
		ID:           r.ID,
		Name:         r.Name,
		Items:        items,
		Instructions: r.Instructions,
		SourceURL:    r.SourceURL,
		ImageURL:     r.ImageURL,
		Cuisine:      r.Cuisine,
	}
	if y, err := r.Yield(); err == nil && y != nil {
		resp.Yield = &YieldDTO{Qty: y.Qty, Unit: y.Unit}
	}
	return resp
}
