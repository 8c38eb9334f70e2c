package ai

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/chefcode/backend/internal/application/assistant"
)

const intentDetectionPrompt = `You are ChefCode's intelligent assistant. Analyze user commands and detect their intent.

SUPPORTED INTENTS:

INVENTORY:
- add_inventory: Add items to inventory
  Example: "Add 5 kg of rice at 2.50 euros"
  Entities: {"item_name": "rice", "quantity": 5, "unit": "kg", "price": 2.50, "category": "Grains"}
  IMPORTANT:
  - Always extract price if mentioned (at, for, cost, price, euro, dollar, etc.)
  - ALWAYS infer the category from the item name using these categories:
    * "Meat" - beef, chicken, pork, lamb, fish, seafood, etc.
    * "Vegetables" - tomatoes, onions, lettuce, carrots, peppers, etc.
    * "Fruits" - apples, oranges, bananas, berries, etc.
    * "Dairy" - milk, cheese, butter, yogurt, cream, etc.
    * "Grains" - rice, pasta, flour, bread, cereals, etc.
    * "Beverages" - water, juice, soda, wine, beer, etc.
    * "Spices" - salt, pepper, herbs, seasonings, etc.
    * "Oils" - olive oil, vegetable oil, cooking oil, etc.
    * "Other" - only if item doesn't fit any category above

- update_inventory: Update quantities
  Example: "Update flour to 10 kg"
  Entities: {"item_name": "flour", "quantity": 10, "unit": "kg"}

- delete_inventory: Remove items
  Example: "Remove tomatoes from inventory"
  Entities: {"item_name": "tomatoes"}

- query_inventory: Check stock
  Example: "How much rice do we have?"
  Entities: {"item_name": "rice"}

RECIPE MANAGEMENT:
- add_recipe: Create new recipe manually
  Example: "Add a recipe called Pizza with flour 100 kg and cheese 50 kg"
  Entities: {"recipe_name": "Pizza", "raw_text": "...full input..."}

- edit_recipe: Modify existing recipe (add/remove/change ingredient)
  Example: "Edit recipe Pizza by adding 2 grams of salt"
  Entities: {"recipe_name": "Pizza", "action": "adding", "ingredient_name": "salt", "quantity": "2", "unit": "grams"}

  Example: "Remove flour from Pizza recipe"
  Entities: {"recipe_name": "Pizza", "action": "remove", "ingredient_name": "flour"}

  Example: "Change tomatoes in Pizza to 500 grams"
  Entities: {"recipe_name": "Pizza", "action": "change", "ingredient_name": "tomatoes", "quantity": "500", "unit": "grams"}

- delete_recipe: Remove recipe
  Example: "Delete the recipe Pasta"
  Entities: {"recipe_name": "Pasta"}

- show_recipe: Display specific recipe
  Example: "Show me the Pizza recipe"
  Entities: {"recipe_name": "Pizza"}

CATALOGUE:
- show_catalogue: Show all recipes
  Example: "Show all recipes" or "Open recipe catalogue"
  Entities: {}

OTHER:
- general_query: General questions
- unknown: Cannot determine

RULES:
1. Set requires_confirmation=true for destructive actions (add, update, delete)
2. Extract ALL relevant entities from the input
3. Be conversational in response_message
4. If ambiguous, ask clarifying questions
5. For numbers, always extract both quantity and unit
6. For recipe commands, capture the full raw text for later parsing

Return JSON only, no markdown.`

const recipeParserSystemPrompt = "You are a precise recipe data extractor. Always return valid JSON."

// DetectIntent implements assistant.IntentDetector. A failed call or an
// unparseable reply degrades to the unknown intent rather than an error, so
// the assistant can always answer something.
func (c *Client) DetectIntent(ctx context.Context, command string, conversation map[string]any) (*assistant.IntentResult, error) {
	if !c.Available() {
		return nil, ErrNotConfigured
	}

	contextInfo := ""
	if len(conversation) > 0 {
		raw, err := json.Marshal(conversation)
		if err == nil {
			contextInfo = "\n\nConversation context: " + string(raw)
		}
	}

	userPrompt := fmt.Sprintf(`Analyze this user command and return a structured JSON response:

User Input: %q%s

Return JSON with this structure:
{
    "intent": "intent_name",
    "confidence": 0.95,
    "entities": {},
    "requires_confirmation": true/false,
    "response_message": "Conversational response to user"
}

IMPORTANT: Return ONLY the JSON, no markdown formatting.`, command, contextInfo)

	reply, err := c.chat(ctx, []message{
		{Role: "system", Content: intentDetectionPrompt},
		{Role: "user", Content: userPrompt},
	}, 0.3, 1000)
	if err != nil {
		c.logger.Error("intent detection failed", zap.Error(err))
		return unknownIntent(), nil
	}

	var result assistant.IntentResult
	if err := json.Unmarshal([]byte(extractJSONObject(reply)), &result); err != nil {
		c.logger.Error("intent detection returned invalid JSON", zap.Error(err))
		return unknownIntent(), nil
	}
	if result.Entities == nil {
		result.Entities = map[string]any{}
	}
	return &result, nil
}

func unknownIntent() *assistant.IntentResult {
	return &assistant.IntentResult{
		Intent:          assistant.IntentUnknown,
		Confidence:      0,
		Entities:        map[string]any{},
		ResponseMessage: "I'm not sure what you mean. Could you rephrase that?",
	}
}

// ParseRecipe implements assistant.IntentDetector.
func (c *Client) ParseRecipe(ctx context.Context, command string) (*assistant.ParsedRecipe, error) {
	prompt := fmt.Sprintf(`You are a recipe parsing expert. Extract ALL ingredient information from this command.

User Input: %q

CRITICAL RULES:
1. Extract the recipe name
2. For EACH ingredient, extract:
   - name (ingredient name)
   - quantity (numeric value, if missing use null)
   - unit (measurement unit like kg, g, ml, liters, pieces, etc. If missing use null)
3. Extract yield if mentioned (default: null)

Return ONLY valid JSON, no markdown, no explanation:
{
    "recipe_name": "string",
    "ingredients": [
        {"name": "string", "quantity": number or null, "unit": "string or null"}
    ],
    "yield_qty": number or null,
    "yield_unit": "string or null",
    "instructions": "string or empty"
}`, command)

	reply, err := c.chat(ctx, []message{
		{Role: "system", Content: recipeParserSystemPrompt},
		{Role: "user", Content: prompt},
	}, 0.1, 1000)
	if err != nil {
		return nil, err
	}

	var parsed assistant.ParsedRecipe
	if err := json.Unmarshal([]byte(extractJSONObject(reply)), &parsed); err != nil {
		return nil, fmt.Errorf("could not parse recipe: %w", err)
	}
	return &parsed, nil
}
