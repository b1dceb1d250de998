package ports

import (
	"context"
	"time"

	"github.com/inkpost/blog-bff/internal/core/domain"
)

// DataAPI is the thin contract over the external CRUD service that owns
// users, posts, comments and roles. Implementations must report transport
// failures and unexpected statuses as errors — never as empty successes —
// and map 404s to the matching domain sentinel.
type DataAPI interface {
	CreateUser(ctx context.Context, login, passwordHash string, registeredAt time.Time, role domain.Role) (*domain.User, error)
	Users(ctx context.Context) ([]domain.User, error)
	UserByID(ctx context.Context, id string) (*domain.User, error)
	UserByLogin(ctx context.Context, login string) (*domain.User, error)
	UpdateUserRole(ctx context.Context, id string, role domain.Role) (*domain.User, error)
	RemoveUser(ctx context.Context, id string) error
	Roles(ctx context.Context) ([]domain.RoleRecord, error)

	Post(ctx context.Context, id string) (*domain.Post, error)
	Posts(ctx context.Context, search string, page, limit int) ([]domain.Post, int, error)
	CreatePost(ctx context.Context, title, imageURL, content string) (*domain.Post, error)
	UpdatePost(ctx context.Context, id, title, imageURL, content string) (*domain.Post, error)
	RemovePost(ctx context.Context, id string) error

	AddComment(ctx context.Context, authorID, postID, content string) (*domain.Comment, error)
	CommentsByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	RemoveComment(ctx context.Context, id string) error
}
