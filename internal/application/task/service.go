package task

import (
	"context"

	"go.uber.org/zap"

	"github.com/chefcode/backend/internal/domain/shared"
	"github.com/chefcode/backend/internal/domain/task"
)

// CreateRequest carries a new prep task.
type CreateRequest struct {
	Recipe     string `json:"recipe" binding:"required"`
	Quantity   int    `json:"quantity"`
	AssignedTo string `json:"assignedTo"`
	Status     string `json:"status"`
}

// UpdateRequest carries a partial task update; nil fields are untouched.
type UpdateRequest struct {
	Recipe     *string `json:"recipe"`
	Quantity   *int    `json:"quantity"`
	AssignedTo *string `json:"assignedTo"`
	Status     *string `json:"status"`
}

// TaskResponse is the client-facing shape of a task.
type TaskResponse struct {
	ID         uint   `json:"id"`
	Recipe     string `json:"recipe"`
	Quantity   int    `json:"quantity"`
	AssignedTo string `json:"assignedTo"`
	Status     string `json:"status"`
}

// ToTaskResponse converts a domain task to its response shape.
func ToTaskResponse(t *task.Task) TaskResponse {
	return TaskResponse{
		ID:         t.ID,
		Recipe:     t.Recipe,
		Quantity:   t.Quantity,
		AssignedTo: t.AssignedTo,
		Status:     string(t.Status),
	}
}

// Service handles prep task use cases.
type Service struct {
	repo   task.Repository
	logger *zap.Logger
}

// NewService creates a new task Service.
func NewService(repo task.Repository, logger *zap.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// List returns all tasks.
func (s *Service) List(ctx context.Context) ([]TaskResponse, error) {
	tasks, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]TaskResponse, 0, len(tasks))
	for i := range tasks {
		out = append(out, ToTaskResponse(&tasks[i]))
	}
	return out, nil
}

// Get returns a single task by ID.
func (s *Service) Get(ctx context.Context, id uint) (*TaskResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := ToTaskResponse(t)
	return &resp, nil
}

// Create inserts a new task. The recipe reference is not validated against
// the recipes table: tasks for off-menu preparations are allowed.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*TaskResponse, error) {
	t, err := task.New(req.Recipe, req.Quantity, req.AssignedTo, task.Status(req.Status))
	if err != nil {
		return nil, err
	}
	if err := s.repo.Create(ctx, t); err != nil {
		return nil, err
	}
	s.logger.Info("task created", zap.String("recipe", t.Recipe), zap.Uint("id", t.ID))
	resp := ToTaskResponse(t)
	return &resp, nil
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id uint, req UpdateRequest) (*TaskResponse, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if req.Recipe != nil {
		if *req.Recipe == "" {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Missing required field: recipe")
		}
		t.Recipe = *req.Recipe
	}
	if req.Quantity != nil {
		t.Quantity = *req.Quantity
		if t.Quantity < 1 {
			t.Quantity = 1
		}
	}
	if req.AssignedTo != nil {
		t.AssignedTo = *req.AssignedTo
	}
	if req.Status != nil {
		status := task.Status(*req.Status)
		if !status.Valid() {
			return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid status")
		}
		t.Status = status
	}
	if err := s.repo.Update(ctx, t); err != nil {
		return nil, err
	}
	resp := ToTaskResponse(t)
	return &resp, nil
}

// UpdateStatus moves a task to a new lifecycle state.
func (s *Service) UpdateStatus(ctx context.Context, id uint, status string) (*TaskResponse, error) {
	st := status
	return s.Update(ctx, id, UpdateRequest{Status: &st})
}

// Delete removes a task by ID.
func (s *Service) Delete(ctx context.Context, id uint) error {
	return s.repo.Delete(ctx, id)
}
