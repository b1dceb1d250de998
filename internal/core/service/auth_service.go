package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/inkpost/blog-bff/internal/api/metrics"
	"github.com/inkpost/blog-bff/internal/core/domain"
	"github.com/inkpost/blog-bff/internal/core/ports"
)

// AuthService implements session issuance and revocation. Login is the
// adjacent flow the orchestrated operations depend on but do not contain.
type AuthService struct {
	api      ports.DataAPI
	sessions ports.SessionStore
	log      zerolog.Logger
}

func NewAuthService(api ports.DataAPI, sessions ports.SessionStore, log zerolog.Logger) *AuthService {
	return &AuthService{api: api, sessions: sessions, log: log}
}

// Login verifies the credential against the upstream user record and issues
// a session carrying a copy of the user's role at this moment.
func (s *AuthService) Login(ctx context.Context, login, password string) (string, *domain.User, error) {
	if login == "" || password == "" {
		return "", nil, domain.ErrInvalidCredentials
	}

	user, err := s.api.UserByLogin(ctx, login)
	if err != nil {
		return "", nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", nil, domain.ErrInvalidCredentials
	}

	token, err := s.sessions.Create(ctx, user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("create session: %w", err)
	}

	metrics.SessionsCreatedTotal.Inc()
	s.log.Info().Str("user_id", user.ID).Int("role", int(user.Role)).Msg("session issued")
	return token, user, nil
}

// Logout destroys the session. Destroying an unknown or already destroyed
// token is a no-op.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Destroy(ctx, token)
}
