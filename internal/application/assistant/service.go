package assistant

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	inventoryapp "github.com/chefcode/backend/internal/application/inventory"
	recipeapp "github.com/chefcode/backend/internal/application/recipe"
	"github.com/chefcode/backend/internal/domain/shared"
)

// InventoryActions is the slice of the inventory service the assistant
// drives. Satisfied by *inventory.Service from the application layer.
type InventoryActions interface {
	List(ctx context.Context) ([]inventoryapp.ItemResponse, error)
	Add(ctx context.Context, req inventoryapp.CreateRequest) (*inventoryapp.AddResult, error)
	Update(ctx context.Context, id uint, req inventoryapp.UpdateRequest) (*inventoryapp.ItemResponse, error)
	Delete(ctx context.Context, id uint) error
}

// RecipeActions is the slice of the recipe service the assistant drives.
// Satisfied by *recipe.Service from the application layer.
type RecipeActions interface {
	List(ctx context.Context, offset, limit int) ([]recipeapp.RecipeResponse, error)
	GetByName(ctx context.Context, name string) (*recipeapp.RecipeResponse, error)
	Create(ctx context.Context, req recipeapp.CreateRequest) (*recipeapp.RecipeResponse, error)
	Update(ctx context.Context, id uint, req recipeapp.UpdateRequest) (*recipeapp.RecipeResponse, error)
	Delete(ctx context.Context, id uint) error
}

// CommandResponse is the assistant's reply to a natural-language command.
// When RequiresConfirmation is set, the client must echo ConfirmationID back
// on the confirm endpoint; the pending mutation itself stays server-side.
type CommandResponse struct {
	Intent               string  `json:"intent"`
	Confidence           float64 `json:"confidence"`
	Message              string  `json:"message"`
	RequiresConfirmation bool    `json:"requires_confirmation"`
	ConfirmationID       string  `json:"confirmation_id,omitempty"`
	Data                 any     `json:"data,omitempty"`
}

// ConfirmResponse is the outcome of a confirmed or cancelled action.
type ConfirmResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// Service routes detected intents to their handlers. Read-only intents
// execute immediately; every mutation goes through the confirmation store
// first.
type Service struct {
	detector      IntentDetector
	inventory     InventoryActions
	recipes       RecipeActions
	confirmations *ConfirmationStore
	logger        *zap.Logger
}

// NewService creates a new assistant Service.
func NewService(detector IntentDetector, inventory InventoryActions, recipes RecipeActions, logger *zap.Logger) *Service {
	return &Service{
		detector:      detector,
		inventory:     inventory,
		recipes:       recipes,
		confirmations: NewConfirmationStore(DefaultConfirmationTTL),
		logger:        logger,
	}
}

// SetConfirmationTTL replaces the confirmation store with one using the
// given TTL. Pending confirmations are discarded.
func (s *Service) SetConfirmationTTL(ttl time.Duration) {
	s.confirmations = NewConfirmationStore(ttl)
}

// Command processes one natural-language command.
func (s *Service) Command(ctx context.Context, command string, convContext map[string]any) (*CommandResponse, error) {
	intent, err := s.detector.DetectIntent(ctx, command, convContext)
	if err != nil {
		return nil, err
	}
	s.logger.Info("intent detected",
		zap.String("intent", intent.Intent),
		zap.Float64("confidence", intent.Confidence))

	switch intent.Intent {
	case IntentAddInventory:
		return s.handleAddInventory(intent)
	case IntentUpdateInventory:
		return s.handleUpdateInventory(ctx, intent)
	case IntentDeleteInventory:
		return s.handleDeleteInventory(ctx, intent)
	case IntentQueryInventory:
		return s.handleQueryInventory(ctx, intent)
	case IntentAddRecipe:
		return s.handleAddRecipe(ctx, intent, command)
	case IntentEditRecipe:
		return s.handleEditRecipe(ctx, intent)
	case IntentDeleteRecipe:
		return s.handleDeleteRecipe(ctx, intent)
	case IntentShowRecipe:
		return s.handleShowRecipe(ctx, intent)
	case IntentShowCatalogue:
		return s.handleShowCatalogue(ctx, intent)
	default:
		message := intent.ResponseMessage
		if message == "" {
			message = "I'm not sure how to help with that. Try rephrasing?"
		}
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    message,
		}, nil
	}
}

// Confirm executes or cancels a pending action.
func (s *Service) Confirm(ctx context.Context, confirmationID string, confirmed bool) (*ConfirmResponse, error) {
	action, ok := s.confirmations.Take(confirmationID)
	if !ok {
		return nil, shared.NewDomainError("NOT_FOUND", "Confirmation expired or unknown. Please repeat the command.")
	}
	if !confirmed {
		return &ConfirmResponse{Success: false, Message: "Action cancelled."}, nil
	}

	switch action.Intent {
	case IntentAddInventory:
		return s.executeAddInventory(ctx, action.Entities)
	case IntentUpdateInventory:
		return s.executeUpdateInventory(ctx, action.Entities)
	case IntentDeleteInventory:
		return s.executeDeleteInventory(ctx, action.Entities)
	case IntentAddRecipe:
		return s.executeAddRecipe(ctx, action.Entities)
	case IntentEditRecipe:
		return s.executeEditRecipe(ctx, action.Entities)
	case IntentDeleteRecipe:
		return s.executeDeleteRecipe(ctx, action.Entities)
	default:
		return &ConfirmResponse{Success: false, Message: "Unknown action"}, nil
	}
}

// ---------------------------------------------------------------------------
// Command handlers: validate entities and stage a confirmation.
// ---------------------------------------------------------------------------

func (s *Service) handleAddInventory(intent *IntentResult) (*CommandResponse, error) {
	name := entityString(intent.Entities, "item_name")
	quantity, hasQty := entityFloat(intent.Entities, "quantity")
	if name == "" || !hasQty {
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    "I need at least an item name and a quantity. What should I add?",
		}, nil
	}

	unit := entityString(intent.Entities, "unit")
	if unit == "" {
		unit = "pz"
	}
	message := fmt.Sprintf("Add %g %s of %s", quantity, unit, name)
	if price, ok := entityFloat(intent.Entities, "price"); ok {
		message += fmt.Sprintf(" at %.2f", price)
	}
	message += "?"

	id := s.confirmations.Put(PendingAction{Intent: IntentAddInventory, Entities: intent.Entities})
	return &CommandResponse{
		Intent:               intent.Intent,
		Confidence:           intent.Confidence,
		Message:              message,
		RequiresConfirmation: true,
		ConfirmationID:       id,
	}, nil
}

func (s *Service) handleUpdateInventory(ctx context.Context, intent *IntentResult) (*CommandResponse, error) {
	name := entityString(intent.Entities, "item_name")
	quantity, hasQty := entityFloat(intent.Entities, "quantity")
	if name == "" || !hasQty {
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    "Which item should I update, and to what quantity?",
		}, nil
	}

	item, err := s.findInventoryItem(ctx, name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    fmt.Sprintf("I couldn't find '%s' in the inventory.", name),
		}, nil
	}

	entities := map[string]any{
		"item_id":   item.ID,
		"item_name": item.Name,
		"quantity":  quantity,
		"unit":      entityString(intent.Entities, "unit"),
	}
	id := s.confirmations.Put(PendingAction{Intent: IntentUpdateInventory, Entities: entities})
	return &CommandResponse{
		Intent:               intent.Intent,
		Confidence:           intent.Confidence,
		Message:              fmt.Sprintf("Update %s from %g to %g?", item.Name, item.Quantity, quantity),
		RequiresConfirmation: true,
		ConfirmationID:       id,
	}, nil
}

func (s *Service) handleDeleteInventory(ctx context.Context, intent *IntentResult) (*CommandResponse, error) {
	name := entityString(intent.Entities, "item_name")
	if name == "" {
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    "Which item should I remove?",
		}, nil
	}

	item, err := s.findInventoryItem(ctx, name)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    fmt.Sprintf("I couldn't find '%s' in the inventory.", name),
		}, nil
	}

	id := s.confirmations.Put(PendingAction{
		Intent:   IntentDeleteInventory,
		Entities: map[string]any{"item_id": item.ID, "item_name": item.Name},
	})
	return &CommandResponse{
		Intent:               intent.Intent,
		Confidence:           intent.Confidence,
		Message:              fmt.Sprintf("Remove %s (%g %s) from the inventory?", item.Name, item.Quantity, item.Unit),
		RequiresConfirmation: true,
		ConfirmationID:       id,
	}, nil
}

func (s *Service) handleQueryInventory(ctx context.Context, intent *IntentResult) (*CommandResponse, error) {
	name := entityString(intent.Entities, "item_name")
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}

	var matches []inventoryapp.ItemResponse
	for _, item := range items {
		if name == "" || strings.Contains(strings.ToLower(item.Name), strings.ToLower(name)) {
			matches = append(matches, item)
		}
	}
	if len(matches) == 0 {
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    fmt.Sprintf("No stock found for '%s'.", name),
		}, nil
	}

	lines := make([]string, 0, len(matches))
	for _, m := range matches {
		lines = append(lines, fmt.Sprintf("%s: %g %s", m.Name, m.Quantity, m.Unit))
	}
	return &CommandResponse{
		Intent:     intent.Intent,
		Confidence: intent.Confidence,
		Message:    strings.Join(lines, "\n"),
		Data:       matches,
	}, nil
}

func (s *Service) handleAddRecipe(ctx context.Context, intent *IntentResult, command string) (*CommandResponse, error) {
	parsed, err := s.detector.ParseRecipe(ctx, command)
	if err != nil {
		s.logger.Warn("recipe parsing failed", zap.Error(err))
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    "I couldn't parse that recipe. Try: \"Add a recipe called Pizza with flour 500 grams\".",
		}, nil
	}
	if parsed.RecipeName == "" || len(parsed.Ingredients) == 0 {
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    "A recipe needs a name and at least one ingredient.",
		}, nil
	}

	if _, err := s.recipes.GetByName(ctx, parsed.RecipeName); err == nil {
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    fmt.Sprintf("A recipe named '%s' already exists.", parsed.RecipeName),
		}, nil
	}

	lines := make([]string, 0, len(parsed.Ingredients))
	for _, ing := range parsed.Ingredients {
		qty := 1.0
		if ing.Quantity != nil {
			qty = *ing.Quantity
		}
		unit := "piece"
		if ing.Unit != nil {
			unit = *ing.Unit
		}
		lines = append(lines, fmt.Sprintf("  - %s: %g %s", ing.Name, qty, unit))
	}

	id := s.confirmations.Put(PendingAction{
		Intent:   IntentAddRecipe,
		Entities: map[string]any{"recipe": parsed},
	})
	return &CommandResponse{
		Intent:               intent.Intent,
		Confidence:           intent.Confidence,
		Message:              fmt.Sprintf("Save recipe '%s' with:\n%s", parsed.RecipeName, strings.Join(lines, "\n")),
		RequiresConfirmation: true,
		ConfirmationID:       id,
	}, nil
}

func (s *Service) handleEditRecipe(ctx context.Context, intent *IntentResult) (*CommandResponse, error) {
	name := entityString(intent.Entities, "recipe_name")
	action := entityString(intent.Entities, "action")
	ingredient := entityString(intent.Entities, "ingredient_name")
	if name == "" || action == "" || ingredient == "" {
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    "Tell me the recipe, the ingredient, and what to do with it.",
		}, nil
	}

	r, err := s.recipes.GetByName(ctx, name)
	if err != nil {
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    fmt.Sprintf("I couldn't find a recipe named '%s'.", name),
		}, nil
	}

	entities := map[string]any{
		"recipe_id":       r.ID,
		"recipe_name":     r.Name,
		"action":          action,
		"ingredient_name": ingredient,
		"unit":            entityString(intent.Entities, "unit"),
	}
	if qty, ok := entityFloat(intent.Entities, "quantity"); ok {
		entities["quantity"] = qty
	}
	id := s.confirmations.Put(PendingAction{Intent: IntentEditRecipe, Entities: entities})
	return &CommandResponse{
		Intent:               intent.Intent,
		Confidence:           intent.Confidence,
		Message:              fmt.Sprintf("Apply '%s %s' to recipe '%s'?", action, ingredient, r.Name),
		RequiresConfirmation: true,
		ConfirmationID:       id,
	}, nil
}

func (s *Service) handleDeleteRecipe(ctx context.Context, intent *IntentResult) (*CommandResponse, error) {
	name := entityString(intent.Entities, "recipe_name")
	if name == "" {
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    "Which recipe should I delete?",
		}, nil
	}

	r, err := s.recipes.GetByName(ctx, name)
	if err != nil {
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    fmt.Sprintf("I couldn't find a recipe named '%s'.", name),
		}, nil
	}

	id := s.confirmations.Put(PendingAction{
		Intent:   IntentDeleteRecipe,
		Entities: map[string]any{"recipe_id": r.ID, "recipe_name": r.Name},
	})
	return &CommandResponse{
		Intent:               intent.Intent,
		Confidence:           intent.Confidence,
		Message:              fmt.Sprintf("Delete recipe '%s'? This cannot be undone.", r.Name),
		RequiresConfirmation: true,
		ConfirmationID:       id,
	}, nil
}

func (s *Service) handleShowRecipe(ctx context.Context, intent *IntentResult) (*CommandResponse, error) {
	name := entityString(intent.Entities, "recipe_name")
	r, err := s.recipes.GetByName(ctx, name)
	if err != nil {
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    fmt.Sprintf("I couldn't find a recipe named '%s'.", name),
		}, nil
	}

	lines := make([]string, 0, len(r.Items))
	for _, ing := range r.Items {
		lines = append(lines, fmt.Sprintf("  - %s: %g %s", ing.Name, ing.Qty, ing.Unit))
	}
	return &CommandResponse{
		Intent:     intent.Intent,
		Confidence: intent.Confidence,
		Message:    fmt.Sprintf("%s:\n%s", r.Name, strings.Join(lines, "\n")),
		Data:       r,
	}, nil
}

func (s *Service) handleShowCatalogue(ctx context.Context, intent *IntentResult) (*CommandResponse, error) {
	recipes, err := s.recipes.List(ctx, 0, 0)
	if err != nil {
		return nil, err
	}
	if len(recipes) == 0 {
		return &CommandResponse{
			Intent:     intent.Intent,
			Confidence: intent.Confidence,
			Message:    "The recipe catalogue is empty.",
		}, nil
	}
	names := make([]string, 0, len(recipes))
	for _, r := range recipes {
		names = append(names, "  - "+r.Name)
	}
	return &CommandResponse{
		Intent:     intent.Intent,
		Confidence: intent.Confidence,
		Message:    fmt.Sprintf("Recipes (%d):\n%s", len(recipes), strings.Join(names, "\n")),
		Data:       recipes,
	}, nil
}

// ---------------------------------------------------------------------------
// Execution: run a confirmed mutation.
// ---------------------------------------------------------------------------

func (s *Service) executeAddInventory(ctx context.Context, entities map[string]any) (*ConfirmResponse, error) {
	quantity, _ := entityFloat(entities, "quantity")
	price, _ := entityFloat(entities, "price")
	req := inventoryapp.CreateRequest{
		Name:     entityString(entities, "item_name"),
		Unit:     entityString(entities, "unit"),
		Quantity: quantity,
		Category: entityString(entities, "category"),
		Price:    price,
	}
	if lot := entityString(entities, "lot_number"); lot != "" {
		req.LotNumber = &lot
	}
	if expiry := entityString(entities, "expiry_date"); expiry != "" {
		req.ExpiryDate = &expiry
	}

	res, err := s.inventory.Add(ctx, req)
	if err != nil {
		s.logger.Error("confirmed inventory add failed", zap.Error(err))
		return &ConfirmResponse{Success: false, Message: "Failed to add the item. Please try again."}, nil
	}
	if res.Merged {
		return &ConfirmResponse{
			Success: true,
			Message: fmt.Sprintf("Updated %s: %g %s", res.Item.Name, res.Item.Quantity, res.Item.Unit),
		}, nil
	}
	return &ConfirmResponse{
		Success: true,
		Message: fmt.Sprintf("Added %g %s of %s", res.Item.Quantity, res.Item.Unit, res.Item.Name),
	}, nil
}

func (s *Service) executeUpdateInventory(ctx context.Context, entities map[string]any) (*ConfirmResponse, error) {
	id, ok := entityUint(entities, "item_id")
	if !ok {
		return &ConfirmResponse{Success: false, Message: "Item not found"}, nil
	}
	quantity, _ := entityFloat(entities, "quantity")
	req := inventoryapp.UpdateRequest{Quantity: &quantity}
	if unit := entityString(entities, "unit"); unit != "" {
		req.Unit = &unit
	}

	item, err := s.inventory.Update(ctx, id, req)
	if err != nil {
		s.logger.Error("confirmed inventory update failed", zap.Error(err))
		return &ConfirmResponse{Success: false, Message: "Failed to update the item. Please try again."}, nil
	}
	return &ConfirmResponse{
		Success: true,
		Message: fmt.Sprintf("Updated %s to %g %s", item.Name, item.Quantity, item.Unit),
	}, nil
}

func (s *Service) executeDeleteInventory(ctx context.Context, entities map[string]any) (*ConfirmResponse, error) {
	id, ok := entityUint(entities, "item_id")
	if !ok {
		return &ConfirmResponse{Success: false, Message: "Item not found"}, nil
	}
	if err := s.inventory.Delete(ctx, id); err != nil {
		s.logger.Error("confirmed inventory delete failed", zap.Error(err))
		return &ConfirmResponse{Success: false, Message: "Failed to remove the item. Please try again."}, nil
	}
	return &ConfirmResponse{
		Success: true,
		Message: fmt.Sprintf("Removed %s from inventory", entityString(entities, "item_name")),
	}, nil
}

func (s *Service) executeAddRecipe(ctx context.Context, entities map[string]any) (*ConfirmResponse, error) {
	parsed, ok := entities["recipe"].(*ParsedRecipe)
	if !ok {
		return &ConfirmResponse{Success: false, Message: "Unknown action"}, nil
	}

	items := make([]recipeapp.IngredientDTO, 0, len(parsed.Ingredients))
	for _, ing := range parsed.Ingredients {
		qty := 1.0
		if ing.Quantity != nil {
			qty = *ing.Quantity
		}
		unit := "piece"
		if ing.Unit != nil {
			unit = *ing.Unit
		}
		items = append(items, recipeapp.IngredientDTO{Name: ing.Name, Qty: qty, Unit: unit})
	}
	yield := &recipeapp.YieldDTO{Qty: 1, Unit: "serving"}
	if parsed.YieldQty != nil && parsed.YieldUnit != nil {
		yield = &recipeapp.YieldDTO{Qty: *parsed.YieldQty, Unit: *parsed.YieldUnit}
	}

	if _, err := s.recipes.Create(ctx, recipeapp.CreateRequest{
		Name:         parsed.RecipeName,
		Items:        items,
		Instructions: parsed.Instructions,
		Yield:        yield,
	}); err != nil {
		s.logger.Error("confirmed recipe add failed", zap.Error(err))
		return &ConfirmResponse{Success: false, Message: "Failed to add the recipe. Please try again."}, nil
	}
	return &ConfirmResponse{
		Success: true,
		Message: fmt.Sprintf("Recipe '%s' added", parsed.RecipeName),
	}, nil
}

func (s *Service) executeEditRecipe(ctx context.Context, entities map[string]any) (*ConfirmResponse, error) {
	name := entityString(entities, "recipe_name")
	r, err := s.recipes.GetByName(ctx, name)
	if err != nil {
		return &ConfirmResponse{Success: false, Message: "Recipe not found"}, nil
	}

	action := entityString(entities, "action")
	ingredient := entityString(entities, "ingredient_name")
	unit := entityString(entities, "unit")
	quantity, hasQty := entityFloat(entities, "quantity")

	items := append([]recipeapp.IngredientDTO(nil), r.Items...)
	existing := -1
	for i, item := range items {
		if strings.EqualFold(item.Name, ingredient) {
			existing = i
			break
		}
	}

	var message string
	switch action {
	case "add", "adding":
		if existing >= 0 {
			if hasQty {
				items[existing].Qty = quantity
			}
			if unit != "" {
				items[existing].Unit = unit
			}
			message = fmt.Sprintf("Updated %s in '%s'", ingredient, r.Name)
		} else {
			qty := 1.0
			if hasQty {
				qty = quantity
			}
			items = append(items, recipeapp.IngredientDTO{Name: ingredient, Qty: qty, Unit: unit})
			message = fmt.Sprintf("Added %s to '%s'", ingredient, r.Name)
		}
	case "remove", "removing", "delete":
		if existing < 0 {
			return &ConfirmResponse{Success: false, Message: fmt.Sprintf("%s not found in recipe", ingredient)}, nil
		}
		items = append(items[:existing], items[existing+1:]...)
		message = fmt.Sprintf("Removed %s from '%s'", ingredient, r.Name)
	case "change", "update", "modify":
		if existing < 0 {
			return &ConfirmResponse{Success: false, Message: fmt.Sprintf("%s not found in recipe", ingredient)}, nil
		}
		if hasQty {
			items[existing].Qty = quantity
		}
		if unit != "" {
			items[existing].Unit = unit
		}
		message = fmt.Sprintf("Updated %s in '%s'", ingredient, r.Name)
	default:
		return &ConfirmResponse{Success: false, Message: "Unknown action"}, nil
	}

	if _, err := s.recipes.Update(ctx, r.ID, recipeapp.UpdateRequest{Items: &items}); err != nil {
		s.logger.Error("confirmed recipe edit failed", zap.Error(err))
		return &ConfirmResponse{Success: false, Message: "Failed to edit the recipe. Please try again."}, nil
	}
	return &ConfirmResponse{Success: true, Message: message}, nil
}

func (s *Service) executeDeleteRecipe(ctx context.Context, entities map[string]any) (*ConfirmResponse, error) {
	id, ok := entityUint(entities, "recipe_id")
	if !ok {
		return &ConfirmResponse{Success: false, Message: "Recipe not found"}, nil
	}
	if err := s.recipes.Delete(ctx, id); err != nil {
		s.logger.Error("confirmed recipe delete failed", zap.Error(err))
		return &ConfirmResponse{Success: false, Message: "Failed to delete the recipe. Please try again."}, nil
	}
	return &ConfirmResponse{
		Success: true,
		Message: fmt.Sprintf("Recipe '%s' deleted", entityString(entities, "recipe_name")),
	}, nil
}

// findInventoryItem resolves a spoken item name to a stored row with a
// case-insensitive substring match, the loosest resolution in the system:
// conversational names rarely match the stored spelling exactly.
func (s *Service) findInventoryItem(ctx context.Context, name string) (*inventoryapp.ItemResponse, error) {
	items, err := s.inventory.List(ctx)
	if err != nil {
		return nil, err
	}
	lower := strings.ToLower(name)
	for i := range items {
		if strings.Contains(strings.ToLower(items[i].Name), lower) {
			return &items[i], nil
		}
	}
	return nil, nil
}
