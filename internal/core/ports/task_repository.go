package ports

import (
	"context"
	"time"

	"github.com/kanbanhq/taskboard/internal/core/domain"
)

// TaskUpdate carries the fields of a partial task update. Nil fields are left
// untouched; updated_at is always bumped by the repository.
type TaskUpdate struct {
	Title       *string
	Description *string
	Status      *domain.TaskStatus
	AssignedTo  *string
	DueDate     *time.Time
}

// TaskRepository defines persistence operations for tasks. All lookups are
// scoped by project id so a task can never be reached through a different
// project's routes.
type TaskRepository interface {
	Insert(ctx context.Context, t *domain.Task) error
	FindByID(ctx context.Context, projectID, taskID string) (*domain.Task, error)
	ListByProject(ctx context.Context, projectID string) ([]*domain.Task, error)
	// Update applies the non-nil fields and returns the updated document.
	Update(ctx context.Context, projectID, taskID string, update TaskUpdate) (*domain.Task, error)
	Delete(ctx context.Context, projectID, taskID string) error
	// DeleteByProject removes every task of a project (cascade delete).
	DeleteByProject(ctx context.Context, projectID string) error
}
