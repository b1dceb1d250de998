package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/inkpost/blog-bff/internal/core/domain"
)

func newTestRedisStore(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisStore(client, ttl), mr
}

func TestRedisStore_CreateLookup(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	token, err := store.Create(ctx, "u1", domain.RoleModerator)
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	sess, err := store.Lookup(ctx, token)
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if sess.UserID != "u1" || sess.Role != domain.RoleModerator || sess.Token != token {
		t.Fatalf("unexpected session: %+v", sess)
	}
}

func TestRedisStore_UnknownToken(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)

	if _, err := store.Lookup(context.Background(), "missing"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestRedisStore_Expiry(t *testing.T) {
	store, mr := newTestRedisStore(t, time.Minute)
	ctx := context.Background()

	token, _ := store.Create(ctx, "u1", domain.RoleReader)

	mr.FastForward(59 * time.Second)
	if _, err := store.Lookup(ctx, token); err != nil {
		t.Fatalf("lookup within ttl: %v", err)
	}

	mr.FastForward(2 * time.Second)
	if _, err := store.Lookup(ctx, token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound after expiry, got %v", err)
	}
}

func TestRedisStore_DestroyIdempotent(t *testing.T) {
	store, _ := newTestRedisStore(t, time.Hour)
	ctx := context.Background()

	token, _ := store.Create(ctx, "u1", domain.RoleReader)

	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if err := store.Destroy(ctx, token); err != nil {
		t.Fatalf("second destroy must be a no-op, got %v", err)
	}
	if _, err := store.Lookup(ctx, token); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("expected destroyed session to be gone, got %v", err)
	}
}
