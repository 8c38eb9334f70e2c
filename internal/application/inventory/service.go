package inventory

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/chefcode/backend/internal/domain/inventory"
	"github.com/chefcode/backend/internal/domain/shared"
)

// Service handles inventory use cases: listing, the two add/merge paths,
// partial updates and deletes.
type Service struct {
	repo   inventory.Repository
	logger *zap.Logger
}

// NewService creates a new inventory Service.
func NewService(repo inventory.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns all inventory rows.
func (s *Service) List(ctx context.Context) ([]ItemResponse, error) {
	items, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]ItemResponse, 0, len(items))
	for i := range items {
		out = append(out, ToItemResponse(&items[i]))
	}
	return out, nil
}

// Get returns a single item by ID.
func (s *Service) Get(ctx context.Context, id uint) (*ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// Create handles the direct single-item endpoint. It merges on price match
// alone: if a row with the same name exists and its price is within
// tolerance, the quantity is added to that row; otherwise a new row is
// inserted. Lot and expiry play no part in this decision.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*AddResult, error) {
	existing, err := s.findMergeTarget(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	if inventory.DecideByPrice(existing, req.Price) == inventory.DecisionIncrement {
		existing.AddQuantity(req.Quantity)
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.logger.Info("inventory item merged",
			zap.String("name", existing.Name),
			zap.Float64("added_quantity", req.Quantity))
		return &AddResult{
			Item:    ToItemResponse(existing),
			Merged:  true,
			Message: "Quantity updated for existing item",
		}, nil
	}

	item, err := inventory.NewItem(req.Name, req.Unit, req.Quantity, req.Category, req.Price,
		req.LotNumber, shared.ParseDate(derefString(req.ExpiryDate)))
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	s.logger.Info("inventory item created", zap.String("name", item.Name), zap.Uint("id", item.ID))
	return &AddResult{
		Item:    ToItemResponse(item),
		Created: true,
		Message: "Item added",
	}, nil
}

// Add handles the action/assistant add path with the full HACCP-aware merge:
// same name and price merge only when the (lot, expiry) pair also matches;
// a differing pair inserts a sibling row so the lot stays traceable.
func (s *Service) Add(ctx context.Context, req CreateRequest) (*AddResult, error) {
	existing, err := s.findMergeTarget(ctx, req.Name)
	if err != nil {
		return nil, err
	}

	expiry := shared.ParseDate(derefString(req.ExpiryDate))
	switch inventory.Decide(existing, req.Price, req.LotNumber, expiry) {
	case inventory.DecisionIncrement:
		existing.AddQuantity(req.Quantity)
		if err := s.repo.Update(ctx, existing); err != nil {
			return nil, err
		}
		s.logger.Info("inventory item merged",
			zap.String("name", existing.Name),
			zap.Float64("added_quantity", req.Quantity))
		return &AddResult{
			Item:    ToItemResponse(existing),
			Merged:  true,
			Message: "Quantity updated for existing item",
		}, nil
	case inventory.DecisionInsertSibling:
		item, err := inventory.NewItem(req.Name, req.Unit, req.Quantity, req.Category, req.Price,
			req.LotNumber, expiry)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Create(ctx, item); err != nil {
			return nil, err
		}
		s.logger.Info("inventory lot added",
			zap.String("name", item.Name),
			zap.String("lot_number", item.Lot()))
		return &AddResult{
			Item:    ToItemResponse(item),
			Created: true,
			Message: "New lot added for existing item",
		}, nil
	default:
		item, err := inventory.NewItem(req.Name, req.Unit, req.Quantity, req.Category, req.Price,
			req.LotNumber, expiry)
		if err != nil {
			return nil, err
		}
		if err := s.repo.Create(ctx, item); err != nil {
			return nil, err
		}
		s.logger.Info("inventory item created", zap.String("name", item.Name), zap.Uint("id", item.ID))
		return &AddResult{
			Item:    ToItemResponse(item),
			Created: true,
			Message: "Item added",
		}, nil
	}
}

// Update applies a partial update. Nil fields are untouched; an explicit
// empty string on unit or category falls back to the default.
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (*ItemResponse, error) {
	item, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Missing required field: name")
		}
		item.Name = *req.Name
	}
	if req.Unit != nil {
		item.Unit = *req.Unit
		if item.Unit == "" {
			item.Unit = inventory.DefaultUnit
		}
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Category != nil {
		item.Category = *req.Category
		if item.Category == "" {
			item.Category = inventory.DefaultCategory
		}
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.LotNumber != nil {
		item.LotNumber = req.LotNumber
	}
	if req.ExpiryDate != nil {
		item.ExpiryDate = shared.ParseDate(*req.ExpiryDate)
	}
	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}
	resp := ToItemResponse(item)
	return &resp, nil
}

// Delete removes an item by ID.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}

// findMergeTarget looks up the first row sharing the name, treating a missing
// row as "no merge target" rather than an error.
func (s *Service) findMergeTarget(ctx context.Context, name string) (*inventory.Item, error) {
	existing, err := s.repo.FindFirstByName(ctx, name)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return existing, nil
}

func derefString(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
