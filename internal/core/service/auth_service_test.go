package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkpost/blog-bff/internal/core/domain"
)

func seedUser(t *testing.T, api *stubDataAPI, login, password string, role domain.Role) domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	u := domain.User{ID: "id-" + login, Login: login, PasswordHash: string(hash), Role: role}
	api.users[u.ID] = u
	return u
}

func TestLogin_Success(t *testing.T) {
	api := newStubDataAPI()
	seedUser(t, api, "alice", "secret1", domain.RoleModerator)
	sessions := newStubSessions()
	svc := NewAuthService(api, sessions, zerolog.Nop())

	token, user, err := svc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if token == "" {
		t.Fatalf("expected a session token")
	}
	if user.Login != "alice" {
		t.Fatalf("unexpected user %+v", user)
	}

	sess, err := sessions.Lookup(context.Background(), token)
	if err != nil {
		t.Fatalf("issued token must resolve: %v", err)
	}
	if sess.UserID != "id-alice" || sess.Role != domain.RoleModerator {
		t.Fatalf("session must carry the user's role, got %+v", sess)
	}
}

func TestLogin_WrongPassword(t *testing.T) {
	api := newStubDataAPI()
	seedUser(t, api, "alice", "secret1", domain.RoleReader)
	svc := NewAuthService(api, newStubSessions(), zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "alice", "not-it"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLogin_UnknownUser(t *testing.T) {
	svc := NewAuthService(newStubDataAPI(), newStubSessions(), zerolog.Nop())

	if _, _, err := svc.Login(context.Background(), "ghost", "whatever"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestLogin_EmptyCredentials(t *testing.T) {
	api := newStubDataAPI()
	svc := NewAuthService(api, newStubSessions(), zerolog.Nop())

	for _, tc := range [][2]string{{"", "secret1"}, {"alice", ""}, {"", ""}} {
		if _, _, err := svc.Login(context.Background(), tc[0], tc[1]); !errors.Is(err, domain.ErrInvalidCredentials) {
			t.Fatalf("login %q/%q: expected ErrInvalidCredentials, got %v", tc[0], tc[1], err)
		}
	}
	if len(api.calls) != 0 {
		t.Fatalf("empty credentials must never hit the data API, calls: %v", api.calls)
	}
}

func TestLogout_Idempotent(t *testing.T) {
	api := newStubDataAPI()
	seedUser(t, api, "alice", "secret1", domain.RoleReader)
	sessions := newStubSessions()
	svc := NewAuthService(api, sessions, zerolog.Nop())

	token, _, err := svc.Login(context.Background(), "alice", "secret1")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	if err := svc.Logout(context.Background(), token); err != nil {
		t.Fatalf("second logout must be a no-op, got %v", err)
	}
	if _, err := sessions.Lookup(context.Background(), token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected destroyed session, got %v", err)
	}
}
