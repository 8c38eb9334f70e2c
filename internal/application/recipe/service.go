package recipe

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"github.com/chefcode/backend/internal/domain/recipe"
	"github.com/chefcode/backend/internal/domain/shared"
)

// Service handles recipe use cases.
type Service struct {
	repo   recipe.Repository
	logger *zap.Logger
}

// NewService creates a new recipe Service.
func NewService(repo recipe.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns a page of recipes. A non-positive limit means "no paging".
func (s *Service) List(ctx context.Context, offset, limit int) ([]RecipeResponse, error) {
	var (
		recipes []recipe.Recipe
		err     error
	)
	if limit > 0 {
		recipes, err = s.repo.List(ctx, offset, limit)
	} else {
		recipes, err = s.repo.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}
	out := make([]RecipeResponse, 0, len(recipes))
	for i := range recipes {
		out = append(out, ToRecipeResponse(&recipes[i]))
	}
	return out, nil
}

// Get returns a single recipe by ID.
func (s *Service) Get(ctx context.Context, id uint) (*RecipeResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToRecipeResponse(r)
	return &resp, nil
}

// GetByName returns a single recipe by exact name.
func (s *Service) GetByName(ctx context.Context, name string) (*RecipeResponse, error) {
	r, err := s.repo.FindByName(ctx, name)
	if err != nil {
		return nil, err
	}
	resp := ToRecipeResponse(r)
	return &resp, nil
}

// Create inserts a new recipe. Names are unique; a duplicate is rejected
// rather than silently merged.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*RecipeResponse, error) {
	if _, err := s.repo.FindByName(ctx, req.Name); err == nil {
		return nil, shared.NewDomainError("ALREADY_EXISTS", "Recipe with this name already exists")
	} else if !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	r, err := recipe.New(req.Name, toIngredients(req.Items), req.Instructions)
	if err != nil {
		return nil, err
	}
	if req.Yield != nil {
		if err := r.SetYield(&recipe.Yield{Qty: req.Yield.Qty, Unit: req.Yield.Unit}); err != nil {
			return nil, err
		}
	}
	r.SourceURL = req.SourceURL
	r.ImageURL = req.ImageURL
	r.Cuisine = req.Cuisine

	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	s.logger.Info("recipe created", zap.String("name", r.Name), zap.Uint("id", r.ID))
	resp := ToRecipeResponse(r)
	return &resp, nil
}

// Save upserts a recipe by name: an existing recipe is overwritten, a new
// name is inserted. Used by the chat and assistant flows, which cannot
// surface a duplicate-name error to a conversational client.
func (s *Service) Save(ctx context.Context, req CreateRequest) (*RecipeResponse, bool, error) {
	existing, err := s.repo.FindByName(ctx, req.Name)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, false, err
		}
		resp, createErr := s.Create(ctx, req)
		return resp, true, createErr
	}

	if err := existing.SetIngredients(toIngredients(req.Items)); err != nil {
		return nil, false, err
	}
	existing.Instructions = req.Instructions
	var y *recipe.Yield
	if req.Yield != nil {
		y = &recipe.Yield{Qty: req.Yield.Qty, Unit: req.Yield.Unit}
	}
	if err := existing.SetYield(y); err != nil {
		return nil, false, err
	}
	if err := s.repo.Update(ctx, existing); err != nil {
		return nil, false, err
	}
	s.logger.Info("recipe overwritten", zap.String("name", existing.Name))
	resp := ToRecipeResponse(existing)
	return &resp, false, nil
}

// Update applies a partial update. Nil fields are untouched. A yield in the
// request replaces the stored yield; the update endpoint has no way to clear
// a yield, which matches the client's behavior.
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (*RecipeResponse, error) {
	r, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Missing required field: name")
		}
		if *req.Name != r.Name {
			if _, err := s.repo.FindByName(ctx, *req.Name); err == nil {
				return nil, shared.NewDomainError("ALREADY_EXISTS", "Recipe with this name already exists")
			} else if !errors.Is(err, shared.ErrNotFound) {
				return nil, err
			}
			r.Name = *req.Name
		}
	}
	if req.Items != nil {
		if err := r.SetIngredients(toIngredients(*req.Items)); err != nil {
			return nil, err
		}
	}
	if req.Instructions != nil {
		r.Instructions = *req.Instructions
	}
	if req.Yield != nil {
		if err := r.SetYield(&recipe.Yield{Qty: req.Yield.Qty, Unit: req.Yield.Unit}); err != nil {
			return nil, err
		}
	}
	if req.SourceURL != nil {
		r.SourceURL = req.SourceURL
	}
	if req.ImageURL != nil {
		r.ImageURL = req.ImageURL
	}
	if req.Cuisine != nil {
		r.Cuisine = req.Cuisine
	}
	if err := s.repo.Update(ctx, r); err != nil {
		return nil, err
	}
	resp := ToRecipeResponse(r)
	return &resp, nil
}

// Delete removes a recipe by ID. Tasks referencing the recipe by name are
// left in place.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
