package ports

import (
	"context"
	"encoding/json"

	"github.com/inkpost/blog-bff/internal/core/domain"
)

// Envelope is the uniform result shape of every orchestrated operation.
// Exactly one of Error and Result is populated; callers must check Error
// before touching Result.
type Envelope struct {
	Error  *string `json:"error"`
	Result any     `json:"result"`
}

// OK wraps a successful result.
func OK(result any) Envelope {
	return Envelope{Result: result}
}

// Fail wraps a user-facing error message.
func Fail(msg string) Envelope {
	return Envelope{Error: &msg}
}

// Orchestrator resolves a named operation, authorizes the caller and runs the
// operation's call plan. It always returns a well-formed envelope: denials,
// validation failures, upstream failures and unknown operation names all
// surface through Envelope.Error, never as a raised fault.
type Orchestrator interface {
	Execute(ctx context.Context, token, operation string, args json.RawMessage) Envelope
}

// --- Operation arguments ---
//
// Each operation decodes its own argument payload. Registration deliberately
// has no role or timestamp field: both are always computed server-side.

type FetchPostArgs struct {
	PostID string `json:"postId" validate:"required"`
}

type FetchPostsArgs struct {
	Search string `json:"search"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

type SavePostArgs struct {
	PostID   string `json:"postId"`
	Title    string `json:"title" validate:"required"`
	ImageURL string `json:"imageUrl"`
	Content  string `json:"content" validate:"required"`
}

type RemovePostArgs struct {
	PostID string `json:"postId" validate:"required"`
}

type AddPostCommentArgs struct {
	PostID  string `json:"postId" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type RemovePostCommentArgs struct {
	PostID    string `json:"postId" validate:"required"`
	CommentID string `json:"commentId" validate:"required"`
}

type RemoveUserArgs struct {
	UserID string `json:"userId" validate:"required"`
}

// UpdateUserRoleArgs carries the target role as a pointer: the admin role id
// is 0, so an omitted roleId must be distinguishable from an explicit one.
type UpdateUserRoleArgs struct {
	UserID string       `json:"userId" validate:"required"`
	RoleID *domain.Role `json:"roleId"`
}

type RegisterArgs struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// --- Composed results ---

// PostWithComments merges a post with its freshly fetched, author-enriched
// comments.
type PostWithComments struct {
	domain.Post
	Comments []domain.Comment `json:"comments"`
}

// PostsPage is one page of the post catalog.
type PostsPage struct {
	Posts    []domain.Post `json:"posts"`
	LastPage int           `json:"lastPage"`
}

// UsersWithRoles carries both lists the user administration view needs.
// Either list failing to load voids the whole response.
type UsersWithRoles struct {
	Users []domain.User       `json:"users"`
	Roles []domain.RoleRecord `json:"roles"`
}
