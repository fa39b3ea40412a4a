// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"flawless/internal/metrics"
	"flawless/internal/middleware"
	"flawless/internal/revalidate"
	"flawless/internal/store"
)

// maxWebhookBody bounds the webhook payload. Only _type is read.
const maxWebhookBody = 1 << 20

// auditTimeout bounds the best-effort audit write.
const auditTimeout = 2 * time.Second

// History page size.
const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
)

// Revalidate handles POST /api/revalidate?secret=<s> from the content
// store's mutation webhook.
type Revalidate struct {
	cache  PageCache
	secret string
	audit  AuditLog // optional
}

// NewRevalidate creates the webhook handler. audit may be nil.
func NewRevalidate(pc PageCache, secret string, audit AuditLog) *Revalidate {
	return &Revalidate{cache: pc, secret: secret, audit: audit}
}

// webhookPayload is the part of the mutation payload the handler reads.
type webhookPayload struct {
	Type string `json:"_type"`
}

// ServeHTTP authorizes the call, discards the cached renders the mutated
// type affects, and reports the outcome. Unknown types discard nothing and
// still succeed.
func (h *Revalidate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if !revalidate.Authorize(r.URL.Query().Get("secret"), h.secret) {
		slog.WarnContext(ctx, "revalidation rejected: invalid secret",
			"request_id", middleware.RequestIDFromCtx(ctx))
		metrics.Revalidations.WithLabelValues("", "unauthorized").Inc()
		unauthorized(w)
		return
	}

	docType := readDocType(r)
	set := revalidate.Plan(docType)
	label := docType
	if !revalidate.IsPublicType(docType) {
		label = "other"
	}

	entry := store.RevalidationEntry{
		DocType:   docType,
		Routes:    set.Routes,
		Layout:    set.Layout,
		Outcome:   store.OutcomeRevalidated,
		RequestID: middleware.RequestIDFromCtx(ctx),
	}
	if set.Empty() {
		entry.Outcome = store.OutcomeNoop
	}

	if err := apply(ctx, h.cache, set); err != nil {
		slog.ErrorContext(ctx, "revalidation failed",
			"doc_type", docType,
			"routes", set.Routes,
			"layout", set.Layout,
			"error", err,
		)
		metrics.Revalidations.WithLabelValues(label, "error").Inc()
		entry.Outcome = store.OutcomeFailed
		entry.Error = err.Error()
		h.record(ctx, entry)

		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusInternalServerError)
		io.WriteString(w, "Error revalidating: "+err.Error())
		return
	}

	slog.InfoContext(ctx, "revalidated",
		"doc_type", docType,
		"routes", set.Routes,
		"layout", set.Layout,
	)
	metrics.Revalidations.WithLabelValues(label, entry.Outcome).Inc()
	h.record(ctx, entry)

	writeJSON(w, http.StatusOK, map[string]bool{"revalidated": true})
}

// apply discards the set from the cache. Layout invalidation already
// discards every page.
func apply(ctx context.Context, pc PageCache, set revalidate.Set) error {
	if set.Layout {
		return pc.InvalidateLayout(ctx)
	}
	if len(set.Routes) > 0 {
		return pc.Invalidate(ctx, set.Routes...)
	}
	return nil
}

// History handles GET /api/revalidate/log?secret=<s>&limit=<n>, listing the
// most recent webhook calls. It answers 404 when no audit log is configured.
func (h *Revalidate) History(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	if !revalidate.Authorize(q.Get("secret"), h.secret) {
		slog.WarnContext(ctx, "revalidation log rejected: invalid secret",
			"request_id", middleware.RequestIDFromCtx(ctx))
		unauthorized(w)
		return
	}

	hist, ok := h.audit.(AuditHistory)
	if !ok {
		writeError(w, http.StatusNotFound, "Revalidation log is not enabled.")
		return
	}

	limit := defaultHistoryLimit
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxHistoryLimit)
	}

	entries, err := hist.RecentEntries(ctx, limit)
	if err != nil {
		slog.ErrorContext(ctx, "read revalidation log", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to read revalidation log.")
		return
	}
	if entries == nil {
		entries = []store.RevalidationEntry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusUnauthorized)
	io.WriteString(w, "Unauthorized")
}

func (h *Revalidate) record(ctx context.Context, e store.RevalidationEntry) {
	if h.audit == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), auditTimeout)
	defer cancel()
	h.audit.Log(ctx, e)
}

// readDocType reads _type from the body. A missing or malformed body yields
// no type, which revalidates nothing.
func readDocType(r *http.Request) string {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBody))
	if err != nil || len(body) == 0 {
		return ""
	}
	var p webhookPayload
	if err := json.Unmarshal(body, &p); err != nil {
		slog.DebugContext(r.Context(), "webhook body is not JSON", "error", err)
		return ""
	}
	return p.Type
}
