// Copyright (c) 2026 Inkwell Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides the business logic for accounts, posts, comments,
// and contact submissions, including the access-control rules that gate them.
package service

import (
	"errors"
	"fmt"
)

// Sentinel errors surfaced to the handler layer. Handlers map these to
// user-visible messages; authentication failures are reported generically
// there so the distinction never leaks to the client.
var (
	ErrDuplicateEmail = errors.New("email already registered")
	ErrDuplicateName  = errors.New("name already taken")
	ErrDuplicateTitle = errors.New("post title already exists")
	ErrNoSuchAccount  = errors.New("no account with that email")
	ErrBadPassword    = errors.New("password does not match")
	ErrForbidden      = errors.New("forbidden")
	ErrPostNotFound   = errors.New("post not found")
	ErrDeliveryFailed = errors.New("message delivery failed")
)

// ValidationError reports malformed or missing input for a single field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
