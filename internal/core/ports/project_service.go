package ports

import (
	"context"

	"github.com/kanbanhq/taskboard/internal/core/domain"
)

// CreateProjectInput carries the data needed to create a project. The creator
// becomes the sole initial member.
type CreateProjectInput struct {
	UserID      string
	Name        string
	Description string
}

// UpdateProjectInput carries a partial project update. Nil fields are left
// untouched.
type UpdateProjectInput struct {
	ProjectID   string
	UserID      string
	Name        *string
	Description *string
}

// ProjectService defines use-case operations for projects. Every operation
// that names a project id returns domain.ErrProjectNotFound when the project
// does not exist or the caller is not a member.
type ProjectService interface {
	List(ctx context.Context, userID string) ([]*domain.Project, error)
	Create(ctx context.Context, input CreateProjectInput) (*domain.Project, error)
	Get(ctx context.Context, projectID, userID string) (*domain.Project, error)
	Update(ctx context.Context, input UpdateProjectInput) (*domain.Project, error)
	// AddMember adds the user identified by memberEmail to the project.
	AddMember(ctx context.Context, projectID, userID, memberEmail string) (*domain.Project, error)
	// Delete removes the project and cascades to its tasks and activities.
	// The cascade is not atomic; see the repository documentation.
	Delete(ctx context.Context, projectID, userID string) error
}
