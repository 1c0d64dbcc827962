// Copyright (c) 2026 Inkwell Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/inkwell/inkwell-go/internal/mailer"
	"github.com/inkwell/inkwell-go/internal/store"
)

// MaxContactMessageLength bounds the stored contact message text.
const MaxContactMessageLength = 5000

// ContactInput carries a contact-form submission.
type ContactInput struct {
	Name    string
	Email   string
	Phone   string
	Message string
}

// ContactService persists contact-form submissions and notifies the site
// owner by email.
type ContactService struct {
	queries      *store.Queries
	sender       mailer.Sender
	ownerAddress string
}

// NewContactService creates a new ContactService. A nil sender disables
// outbound mail; submissions are still persisted.
func NewContactService(db *sql.DB, sender mailer.Sender, ownerAddress string) *ContactService {
	return &ContactService{
		queries:      store.New(db),
		sender:       sender,
		ownerAddress: ownerAddress,
	}
}

// Submit stores the submission and emails the site owner. Only
// authenticated users may submit. The notification is sent after the row
// is committed so no storage lock is held during the transport call; a
// transport failure surfaces as ErrDeliveryFailed with the row retained.
func (s *ContactService) Submit(ctx context.Context, actor *store.User, input ContactInput) (store.ContactMessage, error) {
	if !CanSubmitContact(actor) {
		return store.ContactMessage{}, ErrForbidden
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)
	input.Phone = strings.TrimSpace(input.Phone)
	input.Message = strings.TrimSpace(input.Message)

	if err := validateContact(input); err != nil {
		return store.ContactMessage{}, err
	}

	msg, err := s.queries.CreateContactMessage(ctx, store.CreateContactMessageParams{
		Reference: uuid.NewString(),
		UserID:    actor.ID,
		Name:      input.Name,
		Email:     input.Email,
		Phone:     input.Phone,
		Message:   input.Message,
		CreatedAt: time.Now(),
	})
	if err != nil {
		return store.ContactMessage{}, fmt.Errorf("storing contact message: %w", err)
	}

	if s.sender == nil {
		slog.Warn("contact mail disabled, submission stored only", "reference", msg.Reference)
		return msg, nil
	}

	err = s.sender.Send(ctx, mailer.Message{
		To:      s.ownerAddress,
		Subject: "New contact message from " + input.Name,
		Body: fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\n\n%s\n\nReference: %s\n",
			input.Name, input.Email, input.Phone, input.Message, msg.Reference),
	})
	if err != nil {
		slog.Error("contact mail delivery failed", "reference", msg.Reference, "error", err)
		return msg, fmt.Errorf("%w: %v", ErrDeliveryFailed, err)
	}

	slog.Info("contact message delivered", "reference", msg.Reference, "user_id", actor.ID)
	return msg, nil
}

func validateContact(input ContactInput) error {
	if len(input.Name) < MinNameLength {
		return &ValidationError{Field: "name", Message: fmt.Sprintf("name must be at least %d characters", MinNameLength)}
	}
	if input.Email == "" {
		return &ValidationError{Field: "email", Message: "email is required"}
	}
	if _, err := mail.ParseAddress(input.Email); err != nil {
		return &ValidationError{Field: "email", Message: "invalid email address"}
	}
	if input.Message == "" {
		return &ValidationError{Field: "message", Message: "message is required"}
	}
	if len(input.Message) > MaxContactMessageLength {
		return &ValidationError{Field: "message", Message: "message is too long"}
	}
	return nil
}
