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

type commentDoc struct {
	ID          string `json:"id,omitempty"`
	AuthorID    string `json:"author_id,omitempty"`
	PostID      string `json:"post_id,omitempty"`
	Content     string `json:"content,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

// AddComment writes a comment. The publication timestamp is stamped here,
// never taken from the caller.
func (c *Client) AddComment(ctx context.Context, authorID, postID, content string) (*domain.Comment, error) {
	body := commentDoc{
		AuthorID:    authorID,
		PostID:      postID,
		Content:     content,
		PublishedAt: c.now().UTC().Format(time.RFC3339),
	}

	var created commentDoc
	if err := c.do(ctx, http.MethodPost, "/comments", nil, body, &created); err != nil {
		return nil, err
	}
	return toComment(created)
}

func (c *Client) CommentsByPost(ctx context.Context, postID string) ([]domain.Comment, error) {
	query := url.Values{"post_id": {postID}}
	var docs []commentDoc
	if err := c.do(ctx, http.MethodGet, "/comments", query, nil, &docs); err != nil {
		return nil, err
	}

	comments := make([]domain.Comment, 0, len(docs))
	for _, doc := range docs {
		cm, err := toComment(doc)
		if err != nil {
			return nil, err
		}
		comments = append(comments, *cm)
	}
	return comments, nil
}

func (c *Client) RemoveComment(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/comments/"+url.PathEscape(id), nil, nil, nil); err != nil {
		if errors.Is(err, errNotFound) {
			return domain.ErrCommentNotFound
		}
		return err
	}
	return nil
}

func toComment(doc commentDoc) (*domain.Comment, error) {
	publishedAt, err := parseTime(doc.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("comment %s: %w", doc.ID, err)
	}

	return &domain.Comment{
		ID:          doc.ID,
		PostID:      doc.PostID,
		AuthorID:    doc.AuthorID,
		Content:     doc.Content,
		PublishedAt: publishedAt,
	}, nil
}
