// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package handlers implements the HTTP handlers for the public pages and the
// two API routes (contact intake and the revalidation webhook).
package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"flawless/internal/models"
	"flawless/internal/store"
)

// PageCache is the render cache the handlers read through and invalidate.
// Implemented by cache.PageCache and cache.MemoryCache.
//
// Generation is read before a render loads content; Set drops the render when
// the route was invalidated after that read.
type PageCache interface {
	Get(ctx context.Context, route string) ([]byte, bool)
	Generation(ctx context.Context, route string) int64
	Set(ctx context.Context, route string, html []byte, ttl time.Duration, gen int64)
	Invalidate(ctx context.Context, routes ...string) error
	InvalidateLayout(ctx context.Context) error
}

// SettingsSource resolves the current site settings.
type SettingsSource interface {
	Settings(ctx context.Context) *models.SiteSettings
}

// AuditLog records revalidation webhook calls.
type AuditLog interface {
	Log(ctx context.Context, e store.RevalidationEntry)
}

// AuditHistory lists recorded webhook calls, newest first. An AuditLog that
// also implements it is exposed through Revalidate.History.
type AuditHistory interface {
	RecentEntries(ctx context.Context, limit int) ([]store.RevalidationEntry, error)
}

// writeJSON writes data as JSON with the given status code.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes {"error": msg}.
func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// Health reports that the process is serving.
func Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
