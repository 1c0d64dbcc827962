// Copyright (c) 2026 Inkwell Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/inkwell/inkwell-go/internal/store"
)

// PostDateFormat is the human-readable publish date stored on each post.
const PostDateFormat = "January 02, 2006"

// Post field limits.
const (
	MaxTitleLength    = 250
	MaxSubtitleLength = 250
)

// PostInput carries the user-supplied fields of a post.
type PostInput struct {
	Title    string
	Subtitle string
	Body     string
	ImgURL   string
}

// PostService manages blog posts. Every mutating operation checks the
// authorization policy before touching storage.
type PostService struct {
	queries  *store.Queries
	sanitize *bluemonday.Policy
}

// NewPostService creates a new PostService.
func NewPostService(db *sql.DB) *PostService {
	return &PostService{
		queries:  store.New(db),
		sanitize: bluemonday.UGCPolicy(),
	}
}

// List returns all posts with author names in stable id order.
func (s *PostService) List(ctx context.Context) ([]store.ListPostsRow, error) {
	return s.queries.ListPosts(ctx)
}

// Get returns a post and its comments. Returns ErrPostNotFound if the post
// does not exist.
func (s *PostService) Get(ctx context.Context, id int64) (store.Post, []store.ListCommentsForPostRow, error) {
	post, err := s.queries.GetPostByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.Post{}, nil, ErrPostNotFound
		}
		return store.Post{}, nil, fmt.Errorf("loading post: %w", err)
	}

	comments, err := s.queries.ListCommentsForPost(ctx, id)
	if err != nil {
		return store.Post{}, nil, fmt.Errorf("loading comments: %w", err)
	}

	return post, comments, nil
}

// Create persists a new post authored by the actor. Only the administrator
// may create posts; everyone else gets ErrForbidden with no state change.
func (s *PostService) Create(ctx context.Context, actor *store.User, input PostInput) (store.Post, error) {
	if !CanMutatePosts(actor) {
		return store.Post{}, ErrForbidden
	}

	input.Title = strings.TrimSpace(input.Title)
	if err := validatePost(input); err != nil {
		return store.Post{}, err
	}

	now := time.Now()
	post, err := s.queries.CreatePost(ctx, store.CreatePostParams{
		AuthorID:  actor.ID,
		Title:     input.Title,
		Subtitle:  strings.TrimSpace(input.Subtitle),
		Date:      now.Format(PostDateFormat),
		Body:      s.sanitize.Sanitize(input.Body),
		ImgURL:    strings.TrimSpace(input.ImgURL),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		if store.IsUniqueViolation(err, "posts.title") {
			return store.Post{}, ErrDuplicateTitle
		}
		return store.Post{}, fmt.Errorf("creating post: %w", err)
	}

	slog.Info("post created", "post_id", post.ID, "title", post.Title, "user_id", actor.ID)
	return post, nil
}

// Update edits an existing post. The publish date and author are preserved.
func (s *PostService) Update(ctx context.Context, actor *store.User, id int64, input PostInput) (store.Post, error) {
	if !CanMutatePosts(actor) {
		return store.Post{}, ErrForbidden
	}

	input.Title = strings.TrimSpace(input.Title)
	if err := validatePost(input); err != nil {
		return store.Post{}, err
	}

	post, err := s.queries.UpdatePost(ctx, store.UpdatePostParams{
		ID:        id,
		Title:     input.Title,
		Subtitle:  strings.TrimSpace(input.Subtitle),
		Body:      s.sanitize.Sanitize(input.Body),
		ImgURL:    strings.TrimSpace(input.ImgURL),
		UpdatedAt: time.Now(),
	})
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return store.Post{}, ErrPostNotFound
		case store.IsUniqueViolation(err, "posts.title"):
			return store.Post{}, ErrDuplicateTitle
		default:
			return store.Post{}, fmt.Errorf("updating post: %w", err)
		}
	}

	slog.Info("post updated", "post_id", post.ID, "user_id", actor.ID)
	return post, nil
}

// Delete removes a post permanently. Its comments are removed in the same
// statement via the storage-layer cascade, so the deletion is atomic.
func (s *PostService) Delete(ctx context.Context, actor *store.User, id int64) error {
	if !CanMutatePosts(actor) {
		return ErrForbidden
	}

	if err := s.queries.DeletePost(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrPostNotFound
		}
		return fmt.Errorf("deleting post: %w", err)
	}

	slog.Info("post deleted", "post_id", id, "user_id", actor.ID)
	return nil
}

func validatePost(input PostInput) error {
	if input.Title == "" {
		return &ValidationError{Field: "title", Message: "title is required"}
	}
	if len(input.Title) > MaxTitleLength {
		return &ValidationError{Field: "title", Message: "title is too long"}
	}
	if len(input.Subtitle) > MaxSubtitleLength {
		return &ValidationError{Field: "subtitle", Message: "subtitle is too long"}
	}
	if strings.TrimSpace(input.Body) == "" {
		return &ValidationError{Field: "body", Message: "body is required"}
	}
	return nil
}
