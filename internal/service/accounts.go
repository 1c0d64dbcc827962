// Copyright (c) 2026 Inkwell Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/inkwell/inkwell-go/internal/auth"
	"github.com/inkwell/inkwell-go/internal/store"
)

// Registration input limits.
const (
	MinPasswordLength = 8
	MinNameLength     = 3
	MaxEmailLength    = 254
	MaxNameLength     = 100
)

// AccountService registers accounts and authenticates credentials.
type AccountService struct {
	queries *store.Queries
}

// NewAccountService creates a new AccountService.
func NewAccountService(db *sql.DB) *AccountService {
	return &AccountService{
		queries: store.New(db),
	}
}

// Register validates the input, hashes the password, and persists a new
// account. Uniqueness of email and name is enforced by the storage layer,
// so two concurrent registrations can never both succeed with the same
// email; the loser gets ErrDuplicateEmail or ErrDuplicateName.
func (s *AccountService) Register(ctx context.Context, email, password, name string) (store.User, error) {
	email = strings.TrimSpace(email)
	name = strings.TrimSpace(name)

	if err := validateRegistration(email, password, name); err != nil {
		return store.User{}, err
	}

	passwordHash, err := auth.HashPassword(password)
	if err != nil {
		return store.User{}, fmt.Errorf("hashing password: %w", err)
	}

	now := time.Now()
	user, err := s.queries.CreateUser(ctx, store.CreateUserParams{
		Email:        email,
		PasswordHash: passwordHash,
		Name:         name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		switch {
		case store.IsUniqueViolation(err, "users.email"):
			return store.User{}, ErrDuplicateEmail
		case store.IsUniqueViolation(err, "users.name"):
			return store.User{}, ErrDuplicateName
		default:
			return store.User{}, fmt.Errorf("creating user: %w", err)
		}
	}

	slog.Info("user registered", "user_id", user.ID, "email", user.Email)
	return user, nil
}

// Authenticate checks the credentials and returns the matching account.
// It returns ErrNoSuchAccount or ErrBadPassword; callers presenting the
// result to a client must collapse both into one generic message.
func (s *AccountService) Authenticate(ctx context.Context, email, password string) (store.User, error) {
	email = strings.TrimSpace(email)

	user, err := s.queries.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return store.User{}, ErrNoSuchAccount
		}
		return store.User{}, fmt.Errorf("looking up user: %w", err)
	}

	valid, err := auth.CheckPassword(password, user.PasswordHash)
	if err != nil {
		return store.User{}, fmt.Errorf("verifying password: %w", err)
	}
	if !valid {
		return store.User{}, ErrBadPassword
	}

	// Upgrade hashes created with older parameters on successful login.
	if auth.NeedsRehash(user.PasswordHash) {
		if newHash, err := auth.HashPassword(password); err == nil {
			err = s.queries.UpdateUserPassword(ctx, store.UpdateUserPasswordParams{
				PasswordHash: newHash,
				UpdatedAt:    time.Now(),
				ID:           user.ID,
			})
			if err != nil {
				slog.Warn("failed to rehash password", "user_id", user.ID, "error", err)
			}
		}
	}

	err = s.queries.UpdateUserLastLogin(ctx, store.UpdateUserLastLoginParams{
		LastLoginAt: sql.NullTime{Time: time.Now(), Valid: true},
		ID:          user.ID,
	})
	if err != nil {
		slog.Warn("failed to update last login", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// GetByID returns the account with the given id, or sql.ErrNoRows.
func (s *AccountService) GetByID(ctx context.Context, id int64) (store.User, error) {
	return s.queries.GetUserByID(ctx, id)
}

func validateRegistration(email, password, name string) error {
	if email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if len(email) > MaxEmailLength {
		return &ValidationError{Field: "email", Message: "email is too long"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return &ValidationError{Field: "email", Message: "invalid email address"}
	}
	if len(password) < MinPasswordLength {
		return &ValidationError{
			Field:   "password",
			Message: fmt.Sprintf("password must be at least %d characters", MinPasswordLength),
		}
	}
	if len(name) < MinNameLength {
		return &ValidationError{
			Field:   "name",
			Message: fmt.Sprintf("name must be at least %d characters", MinNameLength),
		}
	}
	if len(name) > MaxNameLength {
		return &ValidationError{Field: "name", Message: "name is too long"}
	}
	return nil
}
