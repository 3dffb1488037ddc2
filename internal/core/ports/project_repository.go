package ports

import (
	"context"

	"github.com/kanbanhq/taskboard/internal/core/domain"
)

// ProjectUpdate carries the fields of a partial project update. Nil fields
// are left untouched.
type ProjectUpdate struct {
	Name        *string
	Description *string
}

// ProjectRepository defines persistence operations for projects.
type ProjectRepository interface {
	Insert(ctx context.Context, p *domain.Project) error
	FindByID(ctx context.Context, id string) (*domain.Project, error)
	// ListByMember returns every project whose membership list contains userID.
	ListByMember(ctx context.Context, userID string) ([]*domain.Project, error)
	// Update applies the non-nil fields and returns the updated document.
	Update(ctx context.Context, id string, update ProjectUpdate) (*domain.Project, error)
	// AddMember appends userID to the membership list if not already present.
	AddMember(ctx context.Context, id, userID string) (*domain.Project, error)
	Delete(ctx context.Context, id string) error
}
