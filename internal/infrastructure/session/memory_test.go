package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/inkpost/blog-bff/internal/core/domain"
)

func TestMemoryStore_CreateLookup(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, "u1", domain.RoleReader)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	sess, err := store.Lookup(ctx, token)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if sess.UserID != "u1" || sess.Role != domain.RoleReader {
		t.Fatalf("unexpected session: %+v", sess)
	}
	if sess.CreatedAt.IsZero() {
		t.Fatalf("expected creation timestamp")
	}
}

func TestMemoryStore_TokensAreUnique(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	seen := make(map[string]bool)
	for range 100 {
		token, err := store.Create(ctx, "u1", domain.RoleReader)
		if err != nil {
			t.Fatalf("create: %v", err)
		}
		if seen[token] {
			t.Fatalf("duplicate token issued: %s", token)
		}
		seen[token] = true
	}
}

func TestMemoryStore_UnknownToken(t *testing.T) {
	store := NewMemoryStore(time.Hour)

	for _, token := range []string{"", "nope", "definitely\x00not a token"} {
		if _, err := store.Lookup(context.Background(), token); !errors.Is(err, domain.ErrSessionNotFound) {
			t.Fatalf("token %q: expected ErrSessionNotFound, got %v", token, err)
		}
	}
}

func TestMemoryStore_ExpiryEvictsLazily(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	token, _ := store.Create(ctx, "u1", domain.RoleReader)

	// Within TTL: still there.
	now = now.Add(59 * time.Second)
	if _, err := store.Lookup(ctx, token); err != nil {
		t.Fatalf("lookup within ttl: %v", err)
	}

	// Past TTL: not found, and the record is evicted.
	now = now.Add(2 * time.Second)
	if _, err := store.Lookup(ctx, token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after expiry, got %v", err)
	}
	if store.Len() != 0 {
		t.Fatalf("expected expired record to be evicted, store has %d", store.Len())
	}
}

func TestMemoryStore_DestroyIdempotent(t *testing.T) {
	store := NewMemoryStore(time.Hour)
	ctx := context.Background()

	token, _ := store.Create(ctx, "u1", domain.RoleReader)

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("second destroy must be a no-op, got %v", err)
	}
	if err := store.Destroy(ctx, "never-existed"); err != nil {
		t.Fatalf("destroying unknown token must be a no-op, got %v", err)
	}

	if _, err := store.Lookup(ctx, token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected destroyed session to be gone, got %v", err)
	}
}

func TestMemoryStore_Sweep(t *testing.T) {
	store := NewMemoryStore(time.Minute)
	ctx := context.Background()

	now := time.Now()
	store.now = func() time.Time { return now }

	_, _ = store.Create(ctx, "old", domain.RoleReader)
	now = now.Add(2 * time.Minute)
	fresh, _ := store.Create(ctx, "fresh", domain.RoleAdmin)

	if removed := store.Sweep(now); removed != 1 {
		t.Fatalf("expected 1 swept session, got %d", removed)
	}
	if _, err := store.Lookup(ctx, fresh); err != nil {
		t.Fatalf("fresh session must survive the sweep: %v", err)
	}
}
