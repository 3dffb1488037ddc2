package ports

import (
	"context"

	"github.com/kanbanhq/taskboard/internal/core/domain"
)

// SignupInput carries the fields required to create an account.
type SignupInput struct {
	Email    string
	Name     string
	Password string
}

// AuthResult is returned after a successful signup or login.
type AuthResult struct {
	Token string
	User  *domain.User
}

type AuthService interface {
	Signup(ctx context.Context, input SignupInput) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	// Me resolves the user behind a verified token subject.
	Me(ctx context.Context, userID string) (*domain.User, error)
}
