package ports

import (
	"context"

	"github.com/inkpost/blog-bff/internal/core/domain"
)

// SessionStore owns session lifetime. Implementations must publish a newly
// created session atomically (a concurrent Lookup never observes a partially
// populated record) and treat malformed tokens as simply not found.
type SessionStore interface {
	// Create issues an unguessable token for the given identity and stores
	// the session record under it.
	Create(ctx context.Context, userID string, role domain.Role) (string, error)

	// Lookup resolves a token. Unknown, malformed and expired tokens all
	// return domain.ErrSessionNotFound; expired records are evicted lazily.
	Lookup(ctx context.Context, token string) (*domain.Session, error)

	// Destroy removes a session. Destroying an unknown token is a no-op.
	Destroy(ctx context.Context, token string) error
}
