// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package content queries the Sanity content store over its HTTP query API.
// A Client carries two read configurations: a CDN-cached published view for
// public rendering and an uncached draft view for preview tooling.
package content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// Mode selects which read configuration a query uses.
type Mode int

const (
	// Published reads through the API CDN. Eventually consistent.
	Published Mode = iota
	// Draft bypasses the CDN and includes unpublished drafts.
	Draft
)

// String returns the mode name used in logs and metrics.
func (m Mode) String() string {
	switch m {
	case Published:
		return "published"
	case Draft:
		return "draft"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// DefaultTimeout bounds a single query round trip.
const DefaultTimeout = 10 * time.Second

// Querier runs a GROQ query and returns the raw "result" member.
type Querier interface {
	Query(ctx context.Context, mode Mode, query string, params map[string]any) (json.RawMessage, error)
}

// Config describes the content store project.
type Config struct {
	ProjectID  string
	Dataset    string
	APIVersion string // "2024-05-01"; a leading "v" is optional
	Token      string // read token for draft queries

	// BaseURL overrides the host for both modes. Used by tests and proxies.
	BaseURL    string
	HTTPClient *http.Client
}

// endpoint is one named read configuration.
type endpoint struct {
	baseURL     string
	perspective string
	token       string
}

// Client queries the content store. It is safe for concurrent use.
type Client struct {
	published  endpoint
	draft      endpoint
	dataset    string
	apiVersion string
	http       *http.Client
}

// New builds a Client with the published and draft configurations.
func New(cfg Config) (*Client, error) {
	if cfg.ProjectID == "" || cfg.Dataset == "" {
		return nil, errors.New("content: project id and dataset are required")
	}

	version := strings.TrimPrefix(cfg.APIVersion, "v")
	if version == "" {
		version = "2024-05-01"
	}

	cdnURL := fmt.Sprintf("https://%s.apicdn.sanity.io", cfg.ProjectID)
	apiURL := fmt.Sprintf("https://%s.api.sanity.io", cfg.ProjectID)
	if cfg.BaseURL != "" {
		cdnURL = strings.TrimRight(cfg.BaseURL, "/")
		apiURL = cdnURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout:   DefaultTimeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		}
	}

	return &Client{
		published:  endpoint{baseURL: cdnURL, perspective: "published"},
		draft:      endpoint{baseURL: apiURL, perspective: "previewDrafts", token: cfg.Token},
		dataset:    cfg.Dataset,
		apiVersion: version,
		http:       httpClient,
	}, nil
}

// Query runs query against the store in the given mode. Parameters are
// passed as GROQ $params. Transport failures, non-2xx responses and
// malformed envelopes are returned as errors; nothing is retried.
func (c *Client) Query(ctx context.Context, mode Mode, query string, params map[string]any) (json.RawMessage, error) {
	ep := c.published
	if mode == Draft {
		ep = c.draft
	}

	u, err := c.queryURL(ep, query, params)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("content request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if ep.token != "" {
		req.Header.Set("Authorization", "Bearer "+ep.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("content http: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("content read body: %w", err)
	}

	var env queryResponse
	if err := json.Unmarshal(body, &env); err != nil {
		if resp.StatusCode != http.StatusOK {
			return nil, &APIError{Status: resp.StatusCode, Message: truncate(string(body), 200)}
		}
		return nil, fmt.Errorf("content decode envelope: %w", err)
	}

	if resp.StatusCode != http.StatusOK || env.Error != nil {
		apiErr := &APIError{Status: resp.StatusCode}
		if env.Error != nil {
			apiErr.Message = env.Error.Description
		}
		return nil, apiErr
	}

	if env.Result == nil {
		return json.RawMessage("null"), nil
	}
	return env.Result, nil
}

func (c *Client) queryURL(ep endpoint, query string, params map[string]any) (string, error) {
	q := url.Values{}
	q.Set("query", query)
	q.Set("perspective", ep.perspective)
	for name, v := range params {
		b, err := json.Marshal(v)
		if err != nil {
			return "", fmt.Errorf("content param %s: %w", name, err)
		}
		q.Set("$"+name, string(b))
	}
	return fmt.Sprintf("%s/v%s/data/query/%s?%s", ep.baseURL, c.apiVersion, url.PathEscape(c.dataset), q.Encode()), nil
}

// APIError is returned when the store answers with an error status.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("content API error (status %d)", e.Status)
	}
	return fmt.Sprintf("content API error (status %d): %s", e.Status, e.Message)
}

// --- Sanity query API types ---

type queryResponse struct {
	Result json.RawMessage `json:"result"`
	Error  *queryError     `json:"error,omitempty"`
}

type queryError struct {
	Description string `json:"description"`
	Type        string `json:"type"`
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
