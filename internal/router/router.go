// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package router sets up all HTTP routes and middleware chains for the
// marketing site: the three public pages, the static assets, the contact
// intake and the revalidation webhook.
package router

import (
	"io/fs"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"flawless/internal/handlers"
	"flawless/internal/middleware"
	"flawless/web"
)

// Deps are the handlers and shared middleware the router mounts.
type Deps struct {
	Public     *handlers.Public
	Contact    *handlers.Contact
	Revalidate *handlers.Revalidate

	// ContactLimiter throttles contact submissions per client IP. Optional.
	ContactLimiter *middleware.RateLimiter

	// Metrics instruments every request; Gatherer backs /metrics. Both optional.
	Metrics  *middleware.Metrics
	Gatherer prometheus.Gatherer

	// HSTS enables Strict-Transport-Security.
	HSTS bool
}

// New creates and returns the configured Chi router.
func New(d Deps) (chi.Router, error) {
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.SecureHeaders(d.HSTS))
	if d.Metrics != nil {
		r.Use(d.Metrics.Handler)
	}

	r.Get("/health", handlers.Health)
	if d.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{}))
	}

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServerFS(static)))

	// Public pages, rendered through the page cache.
	r.Get("/", d.Public.Home)
	r.Get("/gallery", d.Public.Gallery)
	r.Get("/blog", d.Public.Blog)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodPost, "/revalidate", d.Revalidate)
		r.Get("/revalidate/log", d.Revalidate.History)

		r.Group(func(r chi.Router) {
			if d.ContactLimiter != nil {
				d.ContactLimiter.OnLimit = d.Contact.RateLimited
				r.Use(d.ContactLimiter.Middleware)
			}
			r.Method(http.MethodPost, "/contact", d.Contact)
		})
	})

	return r, nil
}
