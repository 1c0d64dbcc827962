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

// PostAdminHandler handles post creation, editing and deletion. Routes
// using it sit behind the admin middleware, and the post service checks
// the actor again before any write.
type PostAdminHandler struct {
	posts        *service.PostService
	renderer     *render.Renderer
	eventService *service.EventService
}

// NewPostAdminHandler creates a new PostAdminHandler.
func NewPostAdminHandler(db *sql.DB, renderer *render.Renderer) *PostAdminHandler {
	return &PostAdminHandler{
		posts:        service.NewPostService(db),
		renderer:     renderer,
		eventService: service.NewEventService(db),
	}
}

type postFormData struct {
	Heading string
	Action  string
	Error   string
	Post    store.Post
}

// NewPostForm renders the empty post creation form.
func (h *PostAdminHandler) NewPostForm(w http.ResponseWriter, r *http.Request) {
	if err := h.renderer.Render(w, r, "post_form", render.TemplateData{
		Title: "New Post",
		Data: postFormData{
			Heading: "New Post",
			Action:  RouteAdminPostsNew,
		},
	}); err != nil {
		logAndInternalError(w, "render post form", "error", err)
	}
}

// CreatePost handles the post creation form submission.
func (h *PostAdminHandler) CreatePost(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteAdminPostsNew) {
		return
	}

	actor := middleware.GetUser(r)
	input := postInputFromForm(r)

	post, err := h.posts.Create(r.Context(), actor, input)
	if err != nil {
		if message, ok := postErrorMessage(err); ok {
			h.renderPostFormError(w, r, "New Post", RouteAdminPostsNew, message, input)
			return
		}
		if errors.Is(err, service.ErrForbidden) {
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
			return
		}
		logAndInternalError(w, "failed to create post", "error", err)
		return
	}

	slog.Info("post created", "post_id", post.ID, "title", post.Title, "user_id", actor.ID)
	_ = h.eventService.LogPostEvent(r.Context(), model.EventLevelInfo, "Post created", &actor.ID, map[string]any{"post_id": post.ID, "title": post.Title})

	flashSuccess(w, r, h.renderer, fmt.Sprintf(redirectPostID, post.ID), "Post created")
}

// EditPostForm renders the edit form pre-filled with the stored post.
func (h *PostAdminHandler) EditPostForm(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	post, _, err := h.posts.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, service.ErrPostNotFound) {
			http.NotFound(w, r)
			return
		}
		logAndInternalError(w, "failed to load post", "error", err, "post_id", id)
		return
	}

	if err := h.renderer.Render(w, r, "post_form", render.TemplateData{
		Title: "Edit Post",
		Data: postFormData{
			Heading: "Edit Post",
			Action:  fmt.Sprintf("/admin/posts/%d/edit", id),
			Post:    post,
		},
	}); err != nil {
		logAndInternalError(w, "render post form", "error", err)
	}
}

// UpdatePost handles the edit form submission. The post keeps its
// original date and author.
func (h *PostAdminHandler) UpdatePost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}
	action := fmt.Sprintf("/admin/posts/%d/edit", id)

	if !parseFormOrRedirect(w, r, h.renderer, action) {
		return
	}

	actor := middleware.GetUser(r)
	input := postInputFromForm(r)

	post, err := h.posts.Update(r.Context(), actor, id, input)
	if err != nil {
		if message, ok := postErrorMessage(err); ok {
			h.renderPostFormError(w, r, "Edit Post", action, message, input)
			return
		}
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			http.NotFound(w, r)
		case errors.Is(err, service.ErrForbidden):
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		default:
			logAndInternalError(w, "failed to update post", "error", err, "post_id", id)
		}
		return
	}

	slog.Info("post updated", "post_id", post.ID, "user_id", actor.ID)
	_ = h.eventService.LogPostEvent(r.Context(), model.EventLevelInfo, "Post updated", &actor.ID, map[string]any{"post_id": post.ID, "title": post.Title})

	flashSuccess(w, r, h.renderer, fmt.Sprintf(redirectPostID, post.ID), "Post updated")
}

// DeletePost removes a post and its comments.
func (h *PostAdminHandler) DeletePost(w http.ResponseWriter, r *http.Request) {
	id, ok := urlParamID(w, r)
	if !ok {
		return
	}

	actor := middleware.GetUser(r)
	if err := h.posts.Delete(r.Context(), actor, id); err != nil {
		switch {
		case errors.Is(err, service.ErrPostNotFound):
			http.NotFound(w, r)
		case errors.Is(err, service.ErrForbidden):
			http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
		default:
			logAndInternalError(w, "failed to delete post", "error", err, "post_id", id)
		}
		return
	}

	slog.Info("post deleted", "post_id", id, "user_id", actor.ID)
	_ = h.eventService.LogPostEvent(r.Context(), model.EventLevelInfo, "Post deleted", &actor.ID, map[string]any{"post_id": id})

	flashSuccess(w, r, h.renderer, redirectRoot, "Post deleted")
}

// postInputFromForm builds a PostInput from the submitted form values.
func postInputFromForm(r *http.Request) service.PostInput {
	return service.PostInput{
		Title:    r.FormValue("title"),
		Subtitle: r.FormValue("subtitle"),
		Body:     r.FormValue("body"),
		ImgURL:   r.FormValue("img_url"),
	}
}

// postErrorMessage maps user-correctable post errors to a form message.
func postErrorMessage(err error) (string, bool) {
	switch {
	case errors.Is(err, service.ErrDuplicateTitle):
		return "A post with that title already exists", true
	case service.IsValidation(err):
		return err.Error(), true
	}
	return "", false
}

// renderPostFormError re-renders the post form with the entered values
// and an error message.
func (h *PostAdminHandler) renderPostFormError(w http.ResponseWriter, r *http.Request, heading, action, message string, input service.PostInput) {
	if err := h.renderer.Render(w, r, "post_form", render.TemplateData{
		Title: heading,
		Data: postFormData{
			Heading: heading,
			Action:  action,
			Error:   message,
			Post: store.Post{
				Title:    input.Title,
				Subtitle: input.Subtitle,
				Body:     input.Body,
				ImgURL:   input.ImgURL,
			},
		},
	}); err != nil {
		logAndInternalError(w, "render post form", "error", err)
	}
}
