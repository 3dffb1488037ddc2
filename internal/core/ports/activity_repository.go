package ports

import (
	"context"

	"github.com/kanbanhq/taskboard/internal/core/domain"
)

// ActivityRepository defines persistence operations for the append-only
// activity log.
type ActivityRepository interface {
	Insert(ctx context.Context, a *domain.Activity) error
	// ListByProject returns up to limit entries, newest first.
	ListByProject(ctx context.Context, projectID string, limit int) ([]*domain.Activity, error)
	// DeleteByProject removes every entry of a project (cascade delete).
	DeleteByProject(ctx context.Context, projectID string) error
}
