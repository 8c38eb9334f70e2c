package assistant

import (
	"context"
	"strconv"
)

// Intents the dispatcher understands. The detector may return anything; an
// unrecognized intent falls through to the conversational fallback.
const (
	IntentAddInventory    = "add_inventory"
	IntentUpdateInventory = "update_inventory"
	IntentDeleteInventory = "delete_inventory"
	IntentQueryInventory  = "query_inventory"
	IntentAddRecipe       = "add_recipe"
	IntentEditRecipe      = "edit_recipe"
	IntentDeleteRecipe    = "delete_recipe"
	IntentShowRecipe      = "show_recipe"
	IntentShowCatalogue   = "show_catalogue"
	IntentGeneralQuery    = "general_query"
	IntentUnknown         = "unknown"
)

// IntentResult is the structured output of intent detection. Entities is a
// free-form bag whose keys depend on the intent; the handlers pull what they
// need and validate it.
type IntentResult struct {
	Intent               string         `json:"intent"`
	Confidence           float64        `json:"confidence"`
	Entities             map[string]any `json:"entities"`
	RequiresConfirmation bool           `json:"requires_confirmation"`
	ResponseMessage      string         `json:"response_message"`
}

// ParsedIngredient is one ingredient extracted from a natural-language
// recipe command. Quantity and unit may be absent.
type ParsedIngredient struct {
	Name     string   `json:"name"`
	Quantity *float64 `json:"quantity"`
	Unit     *string  `json:"unit"`
}

// ParsedRecipe is a recipe extracted from a natural-language command.
type ParsedRecipe struct {
	RecipeName   string             `json:"recipe_name"`
	Ingredients  []ParsedIngredient `json:"ingredients"`
	YieldQty     *float64           `json:"yield_qty"`
	YieldUnit    *string            `json:"yield_unit"`
	Instructions string             `json:"instructions"`
}

// IntentDetector turns a natural-language command into a structured intent.
// Implemented by the language model client in the infrastructure layer.
type IntentDetector interface {
	DetectIntent(ctx context.Context, command string, context map[string]any) (*IntentResult, error)
	ParseRecipe(ctx context.Context, command string) (*ParsedRecipe, error)
}

// Entity accessors. The detector emits JSON, so numbers may arrive as
// float64 or as strings; both forms are accepted.

func entityString(entities map[string]any, key string) string {
	if v, ok := entities[key]; ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}

func entityFloat(entities map[string]any, key string) (float64, bool) {
	switch v := entities[key].(type) {
	case float64:
		return v, true
	case int:
		return float64(v), true
	case uint:
		return float64(v), true
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}

func entityUint(entities map[string]any, key string) (uint, bool) {
	f, ok := entityFloat(entities, key)
	if !ok || f < 0 {
		return 0, false
	}
	return uint(f), true
}
