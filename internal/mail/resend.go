// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package mail delivers transactional email through Resend.
package mail

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/resend/resend-go/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Message is a single plain-text email.
type Message struct {
	From    string
	To      []string
	Subject string
	ReplyTo string
	Text    string
}

// Sender delivers a message. Implementations must be safe for concurrent use.
type Sender interface {
	Send(ctx context.Context, msg Message) error
}

// resendSender implements Sender with the Resend SDK.
type resendSender struct {
	client *resend.Client
}

// NewResend creates a Resend sender. It returns nil when apiKey is empty so
// callers can detect an unconfigured mailer before accepting input. An empty
// baseURL targets the public API.
func NewResend(apiKey, baseURL string) Sender {
	if apiKey == "" {
		return nil
	}
	client := resend.NewCustomClient(&http.Client{
		Timeout:   15 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}, apiKey)

	if baseURL != "" {
		u, err := url.Parse(strings.TrimSuffix(baseURL, "/") + "/")
		if err != nil {
			slog.Warn("invalid resend base URL, using default", "url", baseURL, "error", err)
		} else {
			client.BaseURL = u
		}
	}
	return &resendSender{client: client}
}

// Send delivers the message. Any non-2xx answer from Resend is an error.
func (s *resendSender) Send(ctx context.Context, msg Message) error {
	resp, err := s.client.Emails.SendWithContext(ctx, &resend.SendEmailRequest{
		From:    msg.From,
		To:      msg.To,
		Subject: msg.Subject,
		ReplyTo: msg.ReplyTo,
		Text:    msg.Text,
	})
	if err != nil {
		return fmt.Errorf("resend send: %w", err)
	}
	slog.DebugContext(ctx, "email sent", "id", resp.Id, "to", msg.To)
	return nil
}
