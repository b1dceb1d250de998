// Package session provides the two session store backends: an in-process map
// (the default) and a Redis-backed variant for deployments that already run
// Redis for metrics scraping targets or caching.
package session

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/inkpost/blog-bff/internal/core/domain"
)

const defaultTTL = 24 * time.Hour

// MemoryStore keeps sessions in a process-wide map. Records are fully
// populated before they are published under the lock, so a concurrent Lookup
// never sees a half-built session. Expired records are evicted lazily on
// Lookup; StartSweeper adds a periodic sweep on top without changing
// observable behaviour.
type MemoryStore struct {
	ttl time.Duration
	now func() time.Time

	mu      sync.RWMutex
	byToken map[string]domain.Session
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &MemoryStore{
		ttl:     ttl,
		now:     time.Now,
		byToken: make(map[string]domain.Session),
	}
}

func (s *MemoryStore) Create(_ context.Context, userID string, role domain.Role) (string, error) {
	token := uuid.NewString()
	sess := domain.Session{
		Token:     token,
		UserID:    userID,
		Role:      role,
		CreatedAt: s.now().UTC(),
	}

	s.mu.Lock()
	s.byToken[token] = sess
	s.mu.Unlock()

	return token, nil
}

func (s *MemoryStore) Lookup(_ context.Context, token string) (*domain.Session, error) {
	s.mu.RLock()
	sess, ok := s.byToken[token]
	s.mu.RUnlock()

	if !ok {
		return nil, domain.ErrSessionNotFound
	}

	if s.expired(sess, s.now()) {
		s.mu.Lock()
		delete(s.byToken, token)
		s.mu.Unlock()
		return nil, domain.ErrSessionNotFound
	}

	clone := sess
	return &clone, nil
}

func (s *MemoryStore) Destroy(_ context.Context, token string) error {
	s.mu.Lock()
	delete(s.byToken, token)
	s.mu.Unlock()
	return nil
}

// Len reports the number of stored sessions, expired ones included.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byToken)
}

// Sweep evicts every session expired as of now and returns how many were
// removed.
func (s *MemoryStore) Sweep(now time.Time) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for token, sess := range s.byToken {
		if s.expired(sess, now) {
			delete(s.byToken, token)
			removed++
		}
	}
	return removed
}

// StartSweeper launches a goroutine that sweeps expired sessions every
// interval until ctx is cancelled.
func (s *MemoryStore) StartSweeper(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				s.Sweep(s.now())
			}
		}
	}()
}

func (s *MemoryStore) expired(sess domain.Session, now time.Time) bool {
	return now.Sub(sess.CreatedAt) > s.ttl
}
