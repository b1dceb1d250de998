package guard

import (
	"context"
	"errors"
	"testing"

	"github.com/inkpost/blog-bff/internal/core/domain"
)

type stubSessionStore struct {
	sessions map[string]domain.Session
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]domain.Session)}
}

func (s *stubSessionStore) Create(_ context.Context, userID string, role domain.Role) (string, error) {
	token := "tok-" + userID
	s.sessions[token] = domain.Session{Token: token, UserID: userID, Role: role}
	return token, nil
}

func (s *stubSessionStore) Lookup(_ context.Context, token string) (*domain.Session, error) {
	sess, ok := s.sessions[token]
	if !ok {
		return nil, domain.ErrSessionNotFound
	}
	clone := sess
	return &clone, nil
}

func (s *stubSessionStore) Destroy(_ context.Context, token string) error {
	delete(s.sessions, token)
	return nil
}

func TestAuthorize_NoSession(t *testing.T) {
	g := New(newStubSessionStore())

	decision := g.Authorize(context.Background(), "missing", domain.RoleSet{domain.RoleAdmin})
	if decision.Granted {
		t.Fatalf("expected denial for unknown token")
	}
	if decision.Reason != domain.DenyNoSession {
		t.Fatalf("expected NO_SESSION, got %s", decision.Reason)
	}
}

func TestAuthorize_GuestFallback(t *testing.T) {
	g := New(newStubSessionStore())

	// An absent session is admitted as an anonymous guest when — and only
	// when — the allowed set explicitly lists the guest role.
	decision := g.Authorize(context.Background(), "", domain.RoleSet{domain.RoleGuest, domain.RoleReader})
	if !decision.Granted {
		t.Fatalf("expected guest fallback grant, got denial (%s)", decision.Reason)
	}
	if decision.Session != nil {
		t.Fatalf("anonymous guest must carry no session")
	}
}

func TestAuthorize_RoleNotAllowed(t *testing.T) {
	store := newStubSessionStore()
	token, _ := store.Create(context.Background(), "u1", domain.RoleReader)
	g := New(store)

	decision := g.Authorize(context.Background(), token, domain.RoleSet{domain.RoleAdmin})
	if decision.Granted {
		t.Fatalf("reader must not pass an admin-only set")
	}
	if decision.Reason != domain.DenyRoleNotAllowed {
		t.Fatalf("expected ROLE_NOT_ALLOWED, got %s", decision.Reason)
	}
}

func TestAuthorize_Granted(t *testing.T) {
	store := newStubSessionStore()
	token, _ := store.Create(context.Background(), "u1", domain.RoleModerator)
	g := New(store)

	decision := g.Authorize(context.Background(), token, domain.RoleSet{domain.RoleAdmin, domain.RoleModerator})
	if !decision.Granted {
		t.Fatalf("expected grant, got denial (%s)", decision.Reason)
	}
	if decision.Session == nil || decision.Session.UserID != "u1" {
		t.Fatalf("expected resolved session for u1, got %+v", decision.Session)
	}
}

func TestAuthorize_EmptySetDeniesAuthenticatedAdmin(t *testing.T) {
	store := newStubSessionStore()
	token, _ := store.Create(context.Background(), "root", domain.RoleAdmin)
	g := New(store)

	decision := g.Authorize(context.Background(), token, domain.RoleSet{})
	if decision.Granted {
		t.Fatalf("empty allowed set must deny everyone, admin included")
	}
	if decision.Reason != domain.DenyRoleNotAllowed {
		t.Fatalf("expected ROLE_NOT_ALLOWED, got %s", decision.Reason)
	}
}

// failingSessionStore simulates a store backend outage.
type failingSessionStore struct {
	err error
}

func (s *failingSessionStore) Create(context.Context, string, domain.Role) (string, error) {
	return "", s.err
}

func (s *failingSessionStore) Lookup(context.Context, string) (*domain.Session, error) {
	return nil, s.err
}

func (s *failingSessionStore) Destroy(context.Context, string) error {
	return s.err
}

func TestAuthorize_StoreErrorFailsClosed(t *testing.T) {
	g := New(&failingSessionStore{err: errors.New("connection refused")})

	// A token that cannot be verified is denied even on guest-readable
	// operations; only a definite not-found degrades to guest.
	decision := g.Authorize(context.Background(), "some-token", domain.RoleSet{domain.RoleGuest, domain.RoleReader})
	if decision.Granted {
		t.Fatalf("store failure must deny, not downgrade to guest")
	}
	if decision.Reason != domain.DenyNoSession {
		t.Fatalf("expected NO_SESSION, got %s", decision.Reason)
	}
}

func TestAuthorize_AnonymousSkipsStore(t *testing.T) {
	// The failing store proves the lookup is skipped: an empty token with a
	// guest-listed set is granted even when the backend is down.
	g := New(&failingSessionStore{err: errors.New("connection refused")})

	decision := g.Authorize(context.Background(), "", domain.RoleSet{domain.RoleGuest})
	if !decision.Granted {
		t.Fatalf("anonymous guest must not depend on the store, got denial (%s)", decision.Reason)
	}

	decision = g.Authorize(context.Background(), "", domain.RoleSet{domain.RoleAdmin})
	if decision.Granted || decision.Reason != domain.DenyNoSession {
		t.Fatalf("expected NO_SESSION denial, got %+v", decision)
	}
}

func TestAuthorize_GuestNotImplicitForLoggedInUser(t *testing.T) {
	store := newStubSessionStore()
	token, _ := store.Create(context.Background(), "u1", domain.RoleReader)
	g := New(store)

	// A guest-only operation is for anonymous callers; an authenticated
	// reader does not match it.
	decision := g.Authorize(context.Background(), token, domain.RoleSet{domain.RoleGuest})
	if decision.Granted {
		t.Fatalf("authenticated reader must not pass a guest-only set")
	}
}
