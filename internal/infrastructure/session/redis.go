package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/inkpost/blog-bff/internal/core/domain"
)

const keyPrefix = "session:"

// RedisStore keeps sessions in Redis under session:<token> keys. Expiry is
// delegated to the key TTL, which gives the same observable semantics as the
// memory store's lazy eviction.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	now    func() time.Time
}

func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &RedisStore{client: client, ttl: ttl, now: time.Now}
}

type sessionRecord struct {
	UserID    string      `json:"user_id"`
	Role      domain.Role `json:"role"`
	CreatedAt time.Time   `json:"created_at"`
}

func (s *RedisStore) Create(ctx context.Context, userID string, role domain.Role) (string, error) {
	token := uuid.NewString()
	payload, err := json.Marshal(sessionRecord{
		UserID:    userID,
		Role:      role,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return "", fmt.Errorf("marshal session: %w", err)
	}

	if err := s.client.Set(ctx, keyPrefix+token, payload, s.ttl).Err(); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

func (s *RedisStore) Lookup(ctx context.Context, token string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, keyPrefix+token).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("lookup session: %w", err)
	}

	var rec sessionRecord
	if err := json.Unmarshal(payload, &rec); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}

	return &domain.Session{
		Token:     token,
		UserID:    rec.UserID,
		Role:      rec.Role,
		CreatedAt: rec.CreatedAt,
	}, nil
}

func (s *RedisStore) Destroy(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, keyPrefix+token).Err(); err != nil {
		return fmt.Errorf("destroy session: %w", err)
	}
	return nil
}
