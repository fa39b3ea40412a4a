// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// revalidation_log.go records revalidation webhook calls for audit and
// debugging. Each entry captures which document type triggered it, what was
// discarded from the render cache, and whether that succeeded.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// Revalidation outcomes.
const (
	OutcomeRevalidated = "revalidated"
	OutcomeNoop        = "noop"
	OutcomeFailed      = "failed"
)

// RevalidationEntry is a single webhook call.
type RevalidationEntry struct {
	ID            uuid.UUID `json:"id"`
	DocType       string    `json:"docType"`
	Routes        []string  `json:"routes"`
	Layout        bool      `json:"layout"`
	Outcome       string    `json:"outcome"`
	Error         string    `json:"error,omitempty"`
	RequestID     string    `json:"requestId,omitempty"`
	RevalidatedAt time.Time `json:"revalidatedAt"`
}

// RevalidationLog handles revalidation audit rows.
type RevalidationLog struct {
	db    *sql.DB
	types *pgtype.Map
}

// NewRevalidationLog creates a new RevalidationLog.
func NewRevalidationLog(db *sql.DB) *RevalidationLog {
	return &RevalidationLog{db: db, types: pgtype.NewMap()}
}

// Log records a webhook call. It is best-effort: failures are logged and
// never returned, so auditing cannot fail a revalidation.
func (s *RevalidationLog) Log(ctx context.Context, e RevalidationEntry) {
	if e.ID == uuid.Nil {
		e.ID = uuid.New()
	}
	if e.Routes == nil {
		e.Routes = []string{}
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO revalidation_log (id, doc_type, routes, layout, outcome, error, request_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, e.ID, e.DocType, e.Routes, e.Layout, e.Outcome, e.Error, e.RequestID)
	if err != nil {
		slog.WarnContext(ctx, "failed to log revalidation",
			"doc_type", e.DocType,
			"outcome", e.Outcome,
			"error", err,
		)
		return
	}
	slog.DebugContext(ctx, "revalidation logged", "id", e.ID, "doc_type", e.DocType)
}

// RecentEntries returns the most recent webhook calls, newest first.
func (s *RevalidationLog) RecentEntries(ctx context.Context, limit int) ([]RevalidationEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, doc_type, routes, layout, outcome, error, request_id, revalidated_at
		FROM revalidation_log
		ORDER BY revalidated_at DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query revalidation log: %w", err)
	}
	defer rows.Close()

	var entries []RevalidationEntry
	for rows.Next() {
		var e RevalidationEntry
		if err := rows.Scan(
			&e.ID, &e.DocType, s.types.SQLScanner(&e.Routes), &e.Layout,
			&e.Outcome, &e.Error, &e.RequestID, &e.RevalidatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan revalidation log: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
