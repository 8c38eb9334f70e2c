package task

import "github.com/chefcode/backend/internal/domain/shared"

// Status is the lifecycle state of a prep task.
type Status string

const (
	StatusTodo       Status = "todo"
	StatusInProgress Status = "inprogress"
	StatusCompleted  Status = "completed"
)

// Valid reports whether the status is one of the allowed values.
func (s Status) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusCompleted:
		return true
	}
	return false
}

// Task is a prep assignment referencing a recipe by name. The reference is a
// soft string match, never a foreign key: deleting the recipe leaves the task
// dangling on purpose.
type Task struct {
	shared.BaseEntity
	shared.Versioned
	Recipe     string `gorm:"not null" json:"recipe"`
	Quantity   int    `gorm:"default:1" json:"quantity"`
	AssignedTo string `gorm:"default:''" json:"assignedTo"`
	Status     Status `gorm:"default:todo" json:"status"`
}

// TableName returns the table name for GORM
func (Task) TableName() string {
	return "tasks"
}

// New creates a task, applying defaults for omitted fields.
func New(recipe string, quantity int, assignedTo string, status Status) (*Task, error) {
	if recipe == "" {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Missing required field: recipe")
	}
	if quantity < 1 {
		quantity = 1
	}
	if status == "" {
		status = StatusTodo
	}
	if !status.Valid() {
		return nil, shared.NewDomainError("VALIDATION_ERROR", "Invalid status")
	}
	return &Task{
		Versioned:  shared.Versioned{Version: 1},
		Recipe:     recipe,
		Quantity:   quantity,
		AssignedTo: assignedTo,
		Status:     status,
	}, nil
}
