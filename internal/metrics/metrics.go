// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package metrics holds the Prometheus collectors shared across the site.
// Collectors are package-level so any layer can record without wiring; they
// are only exposed once Register is called.
package metrics

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Content fetch outcomes as seen by the fallback resolver.
const (
	OutcomeOK    = "ok"
	OutcomeEmpty = "empty"
	OutcomeError = "error"
)

var (
	// ContentResolutions counts resolved content by kind and outcome.
	ContentResolutions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flawless_content_resolutions_total",
			Help: "Content lookups by kind and outcome (ok, empty, error).",
		},
		[]string{"kind", "outcome"},
	)

	// PageCacheLookups counts render cache lookups by route and result.
	PageCacheLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flawless_page_cache_lookups_total",
			Help: "Render cache lookups by route and result (hit, miss).",
		},
		[]string{"route", "result"},
	)

	// Revalidations counts webhook calls by document type and result.
	Revalidations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flawless_revalidations_total",
			Help: "Revalidation webhook calls by document type and result.",
		},
		[]string{"doc_type", "result"},
	)

	// ContactSubmissions counts contact form submissions by result.
	ContactSubmissions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flawless_contact_submissions_total",
			Help: "Contact form submissions by result.",
		},
		[]string{"result"},
	)
)

// Register adds every collector to reg. Collectors already registered with
// reg are accepted so Register can be called more than once.
func Register(reg prometheus.Registerer) error {
	for _, c := range []prometheus.Collector{
		ContentResolutions,
		PageCacheLookups,
		Revalidations,
		ContactSubmissions,
	} {
		if err := reg.Register(c); err != nil {
			var are prometheus.AlreadyRegisteredError
			if errors.As(err, &are) {
				continue
			}
			return err
		}
	}
	return nil
}
