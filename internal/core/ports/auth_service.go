package ports

import (
	"context"

	"github.com/inkpost/blog-bff/internal/core/domain"
)

// AuthService issues and revokes sessions. Login is the only flow that
// creates a session; every other operation merely resolves one.
type AuthService interface {
	Login(ctx context.Context, login, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
}
