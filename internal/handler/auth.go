// Copyright (c) 2026 Inkwell Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/alexedwards/scs/v2"

	"github.com/inkwell/inkwell-go/internal/middleware"
	"github.com/inkwell/inkwell-go/internal/model"
	"github.com/inkwell/inkwell-go/internal/render"
	"github.com/inkwell/inkwell-go/internal/service"
)

// msgInvalidCredentials is shown for both unknown accounts and wrong
// passwords so the login form does not reveal which one failed.
const msgInvalidCredentials = "Invalid email or password"

// AuthHandler handles login, logout and registration.
type AuthHandler struct {
	accounts        *service.AccountService
	renderer        *render.Renderer
	sessionManager  *scs.SessionManager
	eventService    *service.EventService
	loginProtection *middleware.LoginProtection
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(db *sql.DB, renderer *render.Renderer, sm *scs.SessionManager, lp *middleware.LoginProtection) *AuthHandler {
	return &AuthHandler{
		accounts:        service.NewAccountService(db),
		renderer:        renderer,
		sessionManager:  sm,
		eventService:    service.NewEventService(db),
		loginProtection: lp,
	}
}

type loginFormData struct {
	Email string
}

type registerFormData struct {
	Name  string
	Email string
	Error string
}

// LoginForm renders the login page. Already-authenticated users are
// sent back to the homepage.
func (h *AuthHandler) LoginForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID); userID > 0 {
		http.Redirect(w, r, redirectRoot, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "login", render.TemplateData{
		Title: "Log In",
		Data:  loginFormData{},
	}); err != nil {
		logAndInternalError(w, "render login page", "error", err)
	}
}

// Login handles the login form submission.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectLogin) {
		return
	}

	email := r.FormValue("email")
	password := r.FormValue("password")

	if email == "" || password == "" {
		flashError(w, r, h.renderer, redirectLogin, "Email and password are required")
		return
	}

	if h.loginProtection != nil {
		if locked, remaining := h.loginProtection.IsAccountLocked(email); locked {
			_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Login attempt on locked account", nil, map[string]any{"email": email})
			flashError(w, r, h.renderer, redirectLogin, "Too many failed attempts. Try again in "+formatDuration(remaining))
			return
		}
	}

	user, err := h.accounts.Authenticate(r.Context(), email, password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSuchAccount):
			slog.Debug("login attempt for non-existent account", "email", email)
			_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Login failed: account not found", nil, map[string]any{"email": email})
		case errors.Is(err, service.ErrBadPassword):
			slog.Debug("invalid password attempt", "email", email)
			_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Login failed: invalid password", nil, map[string]any{"email": email})
		default:
			slog.Error("database error during login", "error", err)
		}

		// Record failed attempts even for non-existent accounts to
		// prevent enumeration through lockout behavior.
		if h.loginProtection != nil {
			if locked, lockDuration := h.loginProtection.RecordFailedAttempt(email); locked {
				_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelWarning, "Account locked due to failed attempts", nil, map[string]any{"email": email, "duration": lockDuration.String()})
				flashError(w, r, h.renderer, redirectLogin, "Too many failed attempts. Try again in "+formatDuration(lockDuration))
				return
			}
		}

		flashError(w, r, h.renderer, redirectLogin, msgInvalidCredentials)
		return
	}

	if h.loginProtection != nil {
		h.loginProtection.RecordSuccessfulLogin(email)
	}

	// Regenerate session ID to prevent session fixation.
	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("user logged in", "user_id", user.ID, "email", user.Email)
	_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelInfo, "User logged in", &user.ID, map[string]any{"email": user.Email})

	flashSuccess(w, r, h.renderer, redirectRoot, "Welcome back, "+user.Name)
}

// Logout handles user logout.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID)

	if userID > 0 {
		_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelInfo, "User logged out", &userID, nil)
	}

	if err := h.sessionManager.Destroy(r.Context()); err != nil {
		slog.Error("session destroy error", "error", err)
	}

	slog.Info("user logged out", "user_id", userID)

	flashAndRedirect(w, r, h.renderer, redirectRoot, "You have been logged out", "info")
}

// RegisterForm renders the registration page.
func (h *AuthHandler) RegisterForm(w http.ResponseWriter, r *http.Request) {
	if userID := h.sessionManager.GetInt64(r.Context(), middleware.SessionKeyUserID); userID > 0 {
		http.Redirect(w, r, redirectRoot, http.StatusSeeOther)
		return
	}

	if err := h.renderer.Render(w, r, "register", render.TemplateData{
		Title: "Register",
		Data:  registerFormData{},
	}); err != nil {
		logAndInternalError(w, "render register page", "error", err)
	}
}

// Register handles the registration form submission. A new account is
// logged in immediately.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, RouteRegister) {
		return
	}

	name := r.FormValue("name")
	email := r.FormValue("email")
	password := r.FormValue("password")

	user, err := h.accounts.Register(r.Context(), email, password, name)
	if err != nil {
		var message string
		switch {
		case errors.Is(err, service.ErrDuplicateEmail):
			message = "An account with that email already exists. Log in instead."
		case errors.Is(err, service.ErrDuplicateName):
			message = "That name is already taken"
		case service.IsValidation(err):
			message = err.Error()
		default:
			logAndInternalError(w, "registration failed", "error", err)
			return
		}

		// Re-render the form with the entered values so the visitor
		// does not have to retype everything.
		if err := h.renderer.Render(w, r, "register", render.TemplateData{
			Title: "Register",
			Data:  registerFormData{Name: name, Email: email, Error: message},
		}); err != nil {
			logAndInternalError(w, "render register page", "error", err)
		}
		return
	}

	if err := h.sessionManager.RenewToken(r.Context()); err != nil {
		logAndInternalError(w, "session renewal error", "error", err)
		return
	}

	h.sessionManager.Put(r.Context(), middleware.SessionKeyUserID, user.ID)

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	_ = h.eventService.LogAuthEvent(r.Context(), model.EventLevelInfo, "User registered", &user.ID, map[string]any{"email": user.Email})

	flashSuccess(w, r, h.renderer, redirectRoot, "Welcome, "+user.Name)
}

// formatDuration formats a duration into a human-readable string.
func formatDuration(d time.Duration) string {
	if d < time.Minute {
		return fmt.Sprintf("%d seconds", int(d.Seconds()))
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		if mins == 1 {
			return "1 minute"
		}
		return fmt.Sprintf("%d minutes", mins)
	}
	hours := int(d.Hours())
	if hours == 1 {
		return "1 hour"
	}
	return fmt.Sprintf("%d hours", hours)
}
