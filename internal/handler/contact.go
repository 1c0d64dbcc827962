// Copyright (c) 2026 Inkwell Contributors
// SPDX-License-Identifier: GPL-3.0-or-later

package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/inkwell/inkwell-go/internal/middleware"
	"github.com/inkwell/inkwell-go/internal/render"
	"github.com/inkwell/inkwell-go/internal/service"
)

// ContactHandler serves the contact form and mails submissions to the
// site owner.
type ContactHandler struct {
	contact  *service.ContactService
	renderer *render.Renderer
}

// NewContactHandler creates a new ContactHandler. The contact service is
// passed in because its mail transport is configured at startup.
func NewContactHandler(contact *service.ContactService, renderer *render.Renderer) *ContactHandler {
	return &ContactHandler{
		contact:  contact,
		renderer: renderer,
	}
}

type contactFormData struct {
	Name    string
	Email   string
	Phone   string
	Message string
	Error   string
}

// ContactForm renders the contact page. The form is pre-filled with the
// logged-in user's details.
func (h *ContactHandler) ContactForm(w http.ResponseWriter, r *http.Request) {
	data := contactFormData{}
	if user := middleware.GetUser(r); user != nil {
		data.Name = user.Name
		data.Email = user.Email
	}

	if err := h.renderer.Render(w, r, "contact", render.TemplateData{
		Title: "Contact",
		Data:  data,
	}); err != nil {
		logAndInternalError(w, "render contact page", "error", err)
	}
}

// SubmitContact handles the contact form submission. Only logged-in
// users may write to the site owner.
func (h *ContactHandler) SubmitContact(w http.ResponseWriter, r *http.Request) {
	if !parseFormOrRedirect(w, r, h.renderer, redirectContact) {
		return
	}

	actor := middleware.GetUser(r)
	input := service.ContactInput{
		Name:    r.FormValue("name"),
		Email:   r.FormValue("email"),
		Phone:   r.FormValue("phone"),
		Message: r.FormValue("message"),
	}

	msg, err := h.contact.Submit(r.Context(), actor, input)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrForbidden):
			flashError(w, r, h.renderer, redirectLogin, "You need to log in to send a message")
		case errors.Is(err, service.ErrDeliveryFailed):
			// The message is stored even when the mail could not go
			// out, so do not ask the visitor to resend it.
			flashAndRedirect(w, r, h.renderer, redirectContact,
				"Your message was received, but email delivery is delayed. Reference: "+msg.Reference, "info")
		case service.IsValidation(err):
			h.renderContactError(w, r, input, err.Error())
		default:
			logAndInternalError(w, "failed to submit contact message", "error", err)
		}
		return
	}

	slog.Info("contact message sent", "reference", msg.Reference, "user_id", actor.ID)

	flashSuccess(w, r, h.renderer, redirectContact, "Message sent. Reference: "+msg.Reference)
}

// renderContactError re-renders the contact form with the entered
// values and an error message.
func (h *ContactHandler) renderContactError(w http.ResponseWriter, r *http.Request, input service.ContactInput, message string) {
	if err := h.renderer.Render(w, r, "contact", render.TemplateData{
		Title: "Contact",
		Data: contactFormData{
			Name:    input.Name,
			Email:   input.Email,
			Phone:   input.Phone,
			Message: input.Message,
			Error:   message,
		},
	}); err != nil {
		logAndInternalError(w, "render contact page", "error", err)
	}
}
