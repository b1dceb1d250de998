package dataapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/inkpost/blog-bff/internal/core/domain"
)

type postDoc struct {
	ID          string `json:"id,omitempty"`
	Title       string `json:"title,omitempty"`
	ImageURL    string `json:"image_url,omitempty"`
	Content     string `json:"content,omitempty"`
	PublishedAt string `json:"published_at,omitempty"`
}

func (c *Client) Post(ctx context.Context, id string) (*domain.Post, error) {
	var doc postDoc
	if err := c.do(ctx, http.MethodGet, "/posts/"+url.PathEscape(id), nil, nil, &doc); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return toPost(doc)
}

// Posts fetches one page of the catalog. The upstream service reports the
// total match count in the X-Total-Count header, from which the last page
// number is derived.
func (c *Client) Posts(ctx context.Context, search string, page, limit int) ([]domain.Post, int, error) {
	query := url.Values{
		"_page":  {strconv.Itoa(page)},
		"_limit": {strconv.Itoa(limit)},
	}
	if search != "" {
		query.Set("q", search)
	}

	resp, err := c.request(ctx, http.MethodGet, "/posts", query, nil)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var docs []postDoc
	if err := decodeBody(resp, &docs); err != nil {
		return nil, 0, fmt.Errorf("GET /posts: %w", err)
	}

	lastPage := 1
	if total, err := strconv.Atoi(resp.Header.Get("X-Total-Count")); err == nil && total > 0 {
		lastPage = (total + limit - 1) / limit
	}

	posts := make([]domain.Post, 0, len(docs))
	for _, doc := range docs {
		p, err := toPost(doc)
		if err != nil {
			return nil, 0, err
		}
		posts = append(posts, *p)
	}
	return posts, lastPage, nil
}

func (c *Client) CreatePost(ctx context.Context, title, imageURL, content string) (*domain.Post, error) {
	body := postDoc{
		Title:       title,
		ImageURL:    imageURL,
		Content:     content,
		PublishedAt: c.now().UTC().Format(time.RFC3339),
	}

	var created postDoc
	if err := c.do(ctx, http.MethodPost, "/posts", nil, body, &created); err != nil {
		return nil, err
	}
	return toPost(created)
}

func (c *Client) UpdatePost(ctx context.Context, id, title, imageURL, content string) (*domain.Post, error) {
	body := postDoc{
		Title:    title,
		ImageURL: imageURL,
		Content:  content,
	}

	var updated postDoc
	if err := c.do(ctx, http.MethodPatch, "/posts/"+url.PathEscape(id), nil, body, &updated); err != nil {
		if errors.Is(err, errNotFound) {
			return nil, domain.ErrPostNotFound
		}
		return nil, err
	}
	return toPost(updated)
}

func (c *Client) RemovePost(ctx context.Context, id string) error {
	if err := c.do(ctx, http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil, nil); err != nil {
		if errors.Is(err, errNotFound) {
			return domain.ErrPostNotFound
		}
		return err
	}
	return nil
}

func toPost(doc postDoc) (*domain.Post, error) {
	publishedAt, err := parseTime(doc.PublishedAt)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", doc.ID, err)
	}

	return &domain.Post{
		ID:          doc.ID,
		Title:       doc.Title,
		ImageURL:    doc.ImageURL,
		Content:     doc.Content,
		PublishedAt: publishedAt,
	}, nil
}
