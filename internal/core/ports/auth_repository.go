package ports

import (
	"context"

	"github.com/kanbanhq/taskboard/internal/core/domain"
)

// AuthRepository defines the interface for user persistence. Email uniqueness
// is enforced by the storage layer; Create returns domain.ErrUserExists on a
// duplicate.
type AuthRepository interface {
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	FindByID(ctx context.Context, id string) (*domain.User, error)
}
