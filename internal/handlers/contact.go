// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"flawless/internal/fallback"
	"flawless/internal/mail"
	"flawless/internal/metrics"
)

// maxContactBody bounds the contact payload.
const maxContactBody = 64 << 10

// Contact form responses.
const (
	msgNotConfigured = "Email service is not configured."
	msgInvalidBody   = "Invalid request body."
	msgMissingFields = "Name, phone, email, and service are required."
	msgSendFailed    = "Failed to send message. Please try again later."
	msgRateLimited   = "Too many requests. Please try again later."
)

// Contact handles POST /api/contact: it validates an inquiry and emails it
// to the address in the site settings.
type Contact struct {
	mailer   mail.Sender // nil when email is not configured
	settings SettingsSource
	from     string
}

// NewContact creates the contact handler. mailer may be nil, in which case
// every submission is answered with a configuration error.
func NewContact(mailer mail.Sender, settings SettingsSource, from string) *Contact {
	return &Contact{mailer: mailer, settings: settings, from: from}
}

// ServeHTTP validates the submission and sends it.
func (h *Contact) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if h.mailer == nil {
		slog.ErrorContext(ctx, "contact submission rejected: email is not configured")
		metrics.ContactSubmissions.WithLabelValues("not_configured").Inc()
		writeError(w, http.StatusInternalServerError, msgNotConfigured)
		return
	}

	var req contactRequest
	body, err := io.ReadAll(io.LimitReader(r.Body, maxContactBody))
	if err != nil || json.Unmarshal(body, &req) != nil {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, msgInvalidBody)
		return
	}

	req.normalize()
	if req.missingRequired() {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, msgMissingFields)
		return
	}
	if msg := validateContact(req); msg != "" {
		metrics.ContactSubmissions.WithLabelValues("invalid").Inc()
		writeError(w, http.StatusBadRequest, msg)
		return
	}

	to := fallback.ContactEmail
	if s := h.settings.Settings(ctx); s != nil && s.Email != "" {
		to = s.Email
	}

	err = h.mailer.Send(ctx, mail.Message{
		From:    h.from,
		To:      []string{to},
		Subject: "New service inquiry from " + req.Name,
		ReplyTo: req.Email,
		Text:    inquiryText(req),
	})
	if err != nil {
		slog.ErrorContext(ctx, "contact email failed", "to", to, "error", err)
		metrics.ContactSubmissions.WithLabelValues("send_failed").Inc()
		writeError(w, http.StatusInternalServerError, msgSendFailed)
		return
	}

	slog.InfoContext(ctx, "contact inquiry sent", "to", to, "service", req.Service)
	metrics.ContactSubmissions.WithLabelValues("sent").Inc()
	writeJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// RateLimited answers a throttled submission in the form's JSON shape.
func (h *Contact) RateLimited(w http.ResponseWriter, r *http.Request) {
	metrics.ContactSubmissions.WithLabelValues("rate_limited").Inc()
	writeError(w, http.StatusTooManyRequests, msgRateLimited)
}

// inquiryText is the plain-text email body.
func inquiryText(c contactRequest) string {
	message := c.Message
	if message == "" {
		message = "n/a"
	}
	return fmt.Sprintf("Name: %s\nEmail: %s\nPhone: %s\nService need: %s\nMessage: %s\n",
		c.Name, c.Email, c.Phone, c.Service, message)
}
