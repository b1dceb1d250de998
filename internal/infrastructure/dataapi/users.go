package dataapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/inkpost/blog-bff/internal/core/domain"
)

// userDoc is the wire representation of a user row upstream.
type userDoc struct {
	ID           string `json:"id,omitempty"`
	Login        string `json:"login,omitempty"`
	Password     string `json:"password,omitempty"`
	RegisteredAt string `json:"registered_at,omitempty"`
	RoleID       *int   `json:"role_id,omitempty"`
}

type roleDoc struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func (c *Client) CreateUser(ctx context.Context, login, passwordHash string, registeredAt time.Time, role domain.Role) (*domain.User, error) {
	rid := int(role)
	body := userDoc{
		Login:        login,
		Password:     passwordHash,
		RegisteredAt: registeredAt.UTC().Format(time.RFC3339),
		RoleID:       &rid,
	}

	var created userDoc
	if err := c.do(ctx, http.MethodPost, "/users", nil, body, &created); err != nil {
		return nil, err
	}
	return toUser(created)
}

func (c *Client) Users(ctx context.Context) ([]domain.User, error) {
	var docs []userDoc
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &docs); err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(docs))
	for _, doc := range docs {
		u, err := toUser(doc)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func (c *Client) UserByID(ctx context.Context, id string) (*domain.User, error) {
	var doc userDoc
	if err := c.do(ctx, http.MethodGet, "/users/"+url.PathEscape(id), nil, nil, &doc); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toUser(doc)
}

// UserByLogin resolves a user by unique login. The upstream service answers
// field-equality queries with an array; an empty array means not found.
func (c *Client) UserByLogin(ctx context.Context, login string) (*domain.User, error) {
	query := url.Values{"login": {login}}
	var docs []userDoc
	if err := c.do(ctx, http.MethodGet, "/users", query, nil, &docs); err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, domain.ErrUserNotFound
	}
	return toUser(docs[0])
}

func (c *Client) UpdateUserRole(ctx context.Context, id string, role domain.Role) (*domain.User, error) {
	body := struct {
		RoleID int `json:"role_id"`
	}{RoleID: int(role)}

	var doc userDoc
	if err := c.do(ctx, http.MethodPatch, "/users/"+url.PathEscape(id), nil, body, &doc); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, domain.ErrUserNotFound
		}
		return nil, err
	}
	return toUser(doc)
}

func (c *Client) RemoveUser(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/users/"+url.PathEscape(id), nil, nil, nil); err != nil {
		if errors.Is(err, errNotFound) {
			return domain.ErrUserNotFound
		}
		return err
	}
	return nil
}

func (c *Client) Roles(ctx context.Context) ([]domain.RoleRecord, error) {
	var docs []roleDoc
	if err := c.do(ctx, http.MethodGet, "/roles", nil, nil, &docs); err != nil {
		return nil, err
	}

	records := make([]domain.RoleRecord, 0, len(docs))
	for _, doc := range docs {
		records = append(records, domain.RoleRecord{ID: domain.Role(doc.ID), Name: doc.Name})
	}
	return records, nil
}

func toUser(doc userDoc) (*domain.User, error) {
	registeredAt, err := parseTime(doc.RegisteredAt)
	if err != nil {
		return nil, fmt.Errorf("user %s: %w", doc.ID, err)
	}

	role := domain.RoleGuest
	if doc.RoleID != nil {
		role = domain.Role(*doc.RoleID)
	}

	return &domain.User{
		ID:           doc.ID,
		Login:        doc.Login,
		PasswordHash: doc.Password,
		RegisteredAt: registeredAt,
		Role:         role,
	}, nil
}
