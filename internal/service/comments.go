// Copyright (c) 2026 Inkwell Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/inkwell/inkwell-go/internal/store"
)

// MaxCommentLength bounds the stored comment text.
const MaxCommentLength = 1000

// CommentService manages comments on posts.
type CommentService struct {
	queries  *store.Queries
	sanitize *bluemonday.Policy
}

// NewCommentService creates a new CommentService.
func NewCommentService(db *sql.DB) *CommentService {
	return &CommentService{
		queries:  store.New(db),
		sanitize: bluemonday.UGCPolicy(),
	}
}

// Add creates a comment by the actor on the given post. Any authenticated
// user may comment; anonymous actors get ErrForbidden. A missing post
// surfaces as ErrPostNotFound via the foreign-key constraint.
func (s *CommentService) Add(ctx context.Context, actor *store.User, postID int64, text string) (store.Comment, error) {
	if !CanComment(actor) {
		return store.Comment{}, ErrForbidden
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return store.Comment{}, &ValidationError{Field: "text", Message: "comment text is required"}
	}
	if len(text) > MaxCommentLength {
		return store.Comment{}, &ValidationError{
			Field:   "text",
			Message: fmt.Sprintf("comment must be at most %d characters", MaxCommentLength),
		}
	}

	comment, err := s.queries.CreateComment(ctx, store.CreateCommentParams{
		AuthorID:  actor.ID,
		PostID:    postID,
		Text:      s.sanitize.Sanitize(text),
		CreatedAt: time.Now(),
	})
	if err != nil {
		if store.IsForeignKeyViolation(err) {
			return store.Comment{}, ErrPostNotFound
		}
		return store.Comment{}, fmt.Errorf("creating comment: %w", err)
	}

	slog.Info("comment added", "comment_id", comment.ID, "post_id", postID, "user_id", actor.ID)
	return comment, nil
}

// ListForPost returns all comments on a post with author details.
func (s *CommentService) ListForPost(ctx context.Context, postID int64) ([]store.ListCommentsForPostRow, error) {
	return s.queries.ListCommentsForPost(ctx, postID)
}
