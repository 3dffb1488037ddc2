package ports

import (
	"context"

	"github.com/kanbanhq/taskboard/internal/core/domain"
)

// RecordActivityInput carries the data for one activity log entry.
type RecordActivityInput struct {
	ProjectID string
	TaskID    string
	UserID    string
	Action    string
	Details   string
}

// ActivityService defines operations over the project activity log.
type ActivityService interface {
	// List returns the newest entries first. Requires project membership.
	List(ctx context.Context, projectID, userID string) ([]*domain.Activity, error)
	// Create records a caller-supplied entry. Requires project membership.
	Create(ctx context.Context, input RecordActivityInput) (*domain.Activity, error)
	// Record appends an entry on behalf of another service. The caller has
	// already authorized the mutation, so no membership check is performed.
	Record(ctx context.Context, input RecordActivityInput) error
	// DeleteByProject removes every entry of a project. Only the project
	// delete cascade may call this.
	DeleteByProject(ctx context.Context, projectID string) error
}
