package ports

import (
	"context"
	"time"

	"github.com/kanbanhq/taskboard/internal/core/domain"
)

// CreateTaskInput carries the data needed to create a task. Status is the raw
// client value; the service validates or coerces it according to its
// configured status mode.
type CreateTaskInput struct {
	ProjectID   string
	UserID      string
	Title       string
	Description string
	Status      string
	AssignedTo  string
	DueDate     *time.Time
}

// UpdateTaskInput carries a partial task update. Nil fields are left
// untouched. Status, when present, is the raw client value.
type UpdateTaskInput struct {
	ProjectID   string
	TaskID      string
	UserID      string
	Title       *string
	Description *string
	Status      *string
	AssignedTo  *string
	DueDate     *time.Time
}

// TaskService defines use-case operations for tasks. All operations require
// the caller to be a member of the parent project.
type TaskService interface {
	List(ctx context.Context, projectID, userID string) ([]*domain.Task, error)
	Create(ctx context.Context, input CreateTaskInput) (*domain.Task, error)
	Update(ctx context.Context, input UpdateTaskInput) (*domain.Task, error)
	Delete(ctx context.Context, projectID, taskID, userID string) error
}
