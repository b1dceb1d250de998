package service

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/inkpost/blog-bff/internal/core/domain"
	"github.com/inkpost/blog-bff/internal/core/ports"
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

func (o *Orchestrator) postOperations() []Operation {
	everyone := domain.RoleSet{domain.RoleAdmin, domain.RoleModerator, domain.RoleReader, domain.RoleGuest}

	return []Operation{
		{Name: "fetchPost", Roles: everyone, Run: o.fetchPost},
		{Name: "fetchPosts", Roles: everyone, Run: o.fetchPosts},
		{Name: "savePost", Roles: domain.RoleSet{domain.RoleAdmin}, Run: o.savePost},
		{Name: "removePost", Roles: domain.RoleSet{domain.RoleAdmin}, Run: o.removePost},
		{
			Name:  "addPostComment",
			Roles: domain.RoleSet{domain.RoleAdmin, domain.RoleModerator, domain.RoleReader},
			Run:   o.addPostComment,
		},
		{
			Name:  "removePostComment",
			Roles: domain.RoleSet{domain.RoleAdmin, domain.RoleModerator},
			Run:   o.removePostComment,
		},
	}
}

// fetchPost composes a post with its author-enriched comments. Both reads are
// independent and run concurrently; either failing voids the response.
func (o *Orchestrator) fetchPost(ctx context.Context, _ *domain.Session, raw json.RawMessage) (any, error) {
	var args ports.FetchPostArgs
	if err := decodeArgs(o.validate, raw, &args); err != nil {
		return nil, err
	}

	var (
		post     *domain.Post
		comments []domain.Comment
	)
	plan := Plan{
		{
			{Name: "read post", Run: func(ctx context.Context) error {
				var err error
				post, err = o.api.Post(ctx, args.PostID)
				return err
			}},
			{Name: "read comments", Run: func(ctx context.Context) error {
				var err error
				comments, err = o.api.CommentsByPost(ctx, args.PostID)
				return err
			}},
		},
		{
			{Name: "resolve comment authors", Run: func(ctx context.Context) error {
				return o.resolveAuthors(ctx, comments)
			}},
		},
	}
	if err := plan.Execute(ctx); err != nil {
		return nil, err
	}

	return ports.PostWithComments{Post: *post, Comments: comments}, nil
}

func (o *Orchestrator) fetchPosts(ctx context.Context, _ *domain.Session, raw json.RawMessage) (any, error) {
	var args ports.FetchPostsArgs
	if err := decodeArgs(o.validate, raw, &args); err != nil {
		return nil, err
	}
	if args.Page < 1 {
		args.Page = 1
	}
	if args.Limit < 1 {
		args.Limit = defaultPageLimit
	}
	if args.Limit > maxPageLimit {
		args.Limit = maxPageLimit
	}

	posts, lastPage, err := o.api.Posts(ctx, args.Search, args.Page, args.Limit)
	if err != nil {
		return nil, err
	}
	return ports.PostsPage{Posts: posts, LastPage: lastPage}, nil
}

// savePost creates a post when no id is supplied and updates it otherwise,
// then re-reads the stored record so the client renders what the upstream
// actually persisted. The publication timestamp is always computed
// server-side.
func (o *Orchestrator) savePost(ctx context.Context, _ *domain.Session, raw json.RawMessage) (any, error) {
	var args ports.SavePostArgs
	if err := decodeArgs(o.validate, raw, &args); err != nil {
		return nil, err
	}

	var (
		postID = args.PostID
		post   *domain.Post
	)
	plan := Plan{
		{
			{Name: "write post", Run: func(ctx context.Context) error {
				if args.PostID == "" {
					created, err := o.api.CreatePost(ctx, args.Title, args.ImageURL, args.Content)
					if err != nil {
						return err
					}
					postID = created.ID
					return nil
				}
				_, err := o.api.UpdatePost(ctx, args.PostID, args.Title, args.ImageURL, args.Content)
				return err
			}},
		},
		{
			{Name: "read post", Run: func(ctx context.Context) error {
				var err error
				post, err = o.api.Post(ctx, postID)
				return err
			}},
		},
	}
	if err := plan.Execute(ctx); err != nil {
		return nil, err
	}

	return post, nil
}

func (o *Orchestrator) removePost(ctx context.Context, _ *domain.Session, raw json.RawMessage) (any, error) {
	var args ports.RemovePostArgs
	if err := decodeArgs(o.validate, raw, &args); err != nil {
		return nil, err
	}

	if err := o.api.RemovePost(ctx, args.PostID); err != nil {
		return nil, err
	}
	return true, nil
}

// addPostComment is the reference write-then-read saga: the comment is
// written first (author and timestamp are server-side, never taken from the
// payload), then the post and its comments are re-read concurrently to build
// the confirmation view. A write failure aborts before any read; a read
// failure after a successful write still surfaces an error so the client
// re-fetches, but the write is not discarded.
func (o *Orchestrator) addPostComment(ctx context.Context, actor *domain.Session, raw json.RawMessage) (any, error) {
	var args ports.AddPostCommentArgs
	if err := decodeArgs(o.validate, raw, &args); err != nil {
		return nil, err
	}

	var (
		wrote    bool
		post     *domain.Post
		comments []domain.Comment
	)
	plan := Plan{
		{
			{Name: "write comment", Run: func(ctx context.Context) error {
				if _, err := o.api.AddComment(ctx, actor.UserID, args.PostID, args.Content); err != nil {
					return err
				}
				wrote = true
				return nil
			}},
		},
		{
			{Name: "read post", Run: func(ctx context.Context) error {
				var err error
				post, err = o.api.Post(ctx, args.PostID)
				return err
			}},
			{Name: "read comments", Run: func(ctx context.Context) error {
				var err error
				comments, err = o.api.CommentsByPost(ctx, args.PostID)
				return err
			}},
		},
		{
			{Name: "resolve comment authors", Run: func(ctx context.Context) error {
				return o.resolveAuthors(ctx, comments)
			}},
		},
	}
	if err := plan.Execute(ctx); err != nil {
		if wrote {
			o.log.Warn().
				Str("post_id", args.PostID).
				Str("author_id", actor.UserID).
				Msg("comment written but confirmation read failed")
		}
		return nil, err
	}

	return ports.PostWithComments{Post: *post, Comments: comments}, nil
}

func (o *Orchestrator) removePostComment(ctx context.Context, _ *domain.Session, raw json.RawMessage) (any, error) {
	var args ports.RemovePostCommentArgs
	if err := decodeArgs(o.validate, raw, &args); err != nil {
		return nil, err
	}

	if err := o.api.RemoveComment(ctx, args.CommentID); err != nil {
		return nil, err
	}
	return true, nil
}

// resolveAuthors fills each comment's Author with its author's login,
// fetching distinct authors concurrently. Goroutines write disjoint comment
// indexes, so no extra locking is needed.
func (o *Orchestrator) resolveAuthors(ctx context.Context, comments []domain.Comment) error {
	byAuthor := make(map[string][]int)
	for i, c := range comments {
		byAuthor[c.AuthorID] = append(byAuthor[c.AuthorID], i)
	}

	g, gctx := errgroup.WithContext(ctx)
	for authorID, idxs := range byAuthor {
		g.Go(func() error {
			user, err := o.api.UserByID(gctx, authorID)
			if err != nil {
				return fmt.Errorf("author %s: %w", authorID, err)
			}
			for _, i := range idxs {
				comments[i].Author = user.Login
			}
			return nil
		})
	}
	return g.Wait()
}
