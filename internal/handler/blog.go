// Copyright (c) 2026 Inkwell Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/inkwell/inkwell-go/internal/middleware"
	"github.com/inkwell/inkwell-go/internal/model"
	"github.com/inkwell/inkwell-go/internal/render"
	"github.com/inkwell/inkwell-go/internal/service"
	"github.com/inkwell/inkwell-go/internal/store"
)

// BlogHandler serves the public reading surface: the post index, post
// detail pages with comments, and the about page.
type BlogHandler struct {
	posts        *service.PostService
	comments     *service.CommentService
	renderer     *render.Renderer
	eventService *service.EventService
}

// NewBlogHandler creates a new BlogHandler.
func NewBlogHandler(db *sql.DB, renderer *render.Renderer) *BlogHandler {
	return &BlogHandler{
		posts:        service.NewPostService(db),
		comments:     service.NewCommentService(db),
		renderer:     renderer,
		eventService: service.NewEventService(db),
	}
}

type homeData struct {
	Posts []store.ListPostsRow
}

type postData struct {
	Post     store.Post
	Comments []store.ListCommentsForPostRow
}

// Home renders the post index in publication order.
func (h *BlogHandler) Home(w http.ResponseWriter, r *http.Request) {
	posts, err := h.posts.List(r.Context())
	if err != nil {
		logAndInternalError(w, "failed to list posts", "error", err)
		return
	}

	if err := h.renderer.Render(w, r, "home", render.TemplateData{
		Title: "Home",
		Data:  homeData{Posts: posts},
	}); err != nil {
		logAndInternalError(w, "render home page", "error", err)
	}
}

// ShowPost renders a single post with its comments.
func (h *BlogHandler) ShowPost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	post, comments, err := h.posts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			http.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to load post", "error", err, "post_id", id)
		return
	}

	if err := h.renderer.Render(w, r, "post", render.TemplateData{
		Title: post.Title,
		Data:  postData{Post: post, Comments: comments},
	}); err != nil {
		logAndInternalError(w, "render post page", "error", err)
	}
}

// AddComment handles the comment form on a post page. Only logged-in
// users may comment; anonymous submissions are sent to the login page.
func (h *BlogHandler) AddComment(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}
	postURL := fmt.Sprintf(redirectPostID, id)

	if !parseFormOrRedirect(w, r, h.renderer, postURL) {
		return
	}

	actor := middleware.GetUser(r)
	comment, err := h.comments.Add(r.Context(), actor, id, r.FormValue("text"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			flashError(w, r, h.renderer, redirectLogin, "You need to log in to comment")
		case errors.Is(err, service.ErrPostNotFound):
			http.NotFound(w, r)
		case service.IsValidation(err):
			flashError(w, r, h.renderer, postURL, err.Error())
		default:
			logAndInternalError(w, "failed to add comment", "error", err, "post_id", id)
		}
		return
	}

	slog.Info("comment added", "comment_id", comment.ID, "post_id", id, "user_id", actor.ID)
	_ = h.eventService.LogEvent(r.Context(), model.EventLevelInfo, model.EventCategoryComment, "Comment added", &actor.ID, map[string]any{"post_id": id})

	flashSuccess(w, r, h.renderer, postURL, "Comment posted")
}

// About renders the static about page.
func (h *BlogHandler) About(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "about", render.TemplateData{
		Title: "About",
	}); err != nil {
		logAndInternalError(w, "render about page", "error", err)
	}
}
