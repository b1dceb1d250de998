// Package guard is the single authorization choke-point. Every orchestrated
// operation resolves its caller through Guard.Authorize before any upstream
// call is issued.
package guard

import (
	"context"
	"errors"

	"github.com/inkpost/blog-bff/internal/core/domain"
	"github.com/inkpost/blog-bff/internal/core/ports"
)

type Guard struct {
	sessions ports.SessionStore
}

func New(sessions ports.SessionStore) *Guard {
	return &Guard{sessions: sessions}
}

// Authorize resolves the token against the session store and evaluates the
// operation's allowed-role set. An absent, unknown or expired token is
// admitted as an anonymous guest when — and only when — the set explicitly
// lists RoleGuest; listing RoleGuest therefore makes an operation reachable
// without a token. A store error other than not-found denies outright, guest
// operations included: a token that cannot be verified is not downgraded to
// guest. Anonymous callers never touch the store. Read-only; never mutates
// the store.
func (g *Guard) Authorize(ctx context.Context, token string, allowed domain.RoleSet) domain.AccessDecision {
	if token == "" {
		return anonymous(allowed)
	}

	sess, err := g.sessions.Lookup(ctx, token)
	if err != nil {
		if errors.Is(err, domain.ErrSessionNotFound) {
			return anonymous(allowed)
		}
		// Store failure: fail closed rather than guess.
		return domain.AccessDecision{Reason: domain.DenyNoSession}
	}

	if !allowed.Allows(sess.Role) {
		return domain.AccessDecision{Reason: domain.DenyRoleNotAllowed}
	}

	return domain.AccessDecision{Granted: true, Session: sess}
}

func anonymous(allowed domain.RoleSet) domain.AccessDecision {
	if allowed.Allows(domain.RoleGuest) {
		return domain.AccessDecision{Granted: true}
	}
	return domain.AccessDecision{Reason: domain.DenyNoSession}
}
