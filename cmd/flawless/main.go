// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package main is the entry point for the Flawless Carpet Cleaning site.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	"flawless/internal/cache"
	"flawless/internal/config"
	"flawless/internal/content"
	"flawless/internal/database"
	"flawless/internal/handlers"
	"flawless/internal/mail"
	"flawless/internal/metrics"
	"flawless/internal/middleware"
	"flawless/internal/render"
	"flawless/internal/router"
	"flawless/internal/site"
	"flawless/internal/store"
	"flawless/internal/tracing"
)

// contactWindow is the rate limit window for contact submissions.
const contactWindow = 10 * time.Minute

// renderCache is what the public pages and the webhook share.
type renderCache interface {
	handlers.PageCache
	site.LayoutCache
}

func main() {
	config.LoadDotenv(".env.local", ".env")

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Structured logger: debug in development, info elsewhere.
	level := slog.LevelInfo
	if cfg.IsDev() {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: level})))

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"sanity_project", cfg.SanityProjectID,
		"sanity_dataset", cfg.SanityDataset,
		"upload_widget", cfg.UploadWidgetConfigured(),
	)

	ctx := context.Background()

	shutdownTracing, err := tracing.Init(ctx, "flawless")
	if err != nil {
		slog.Error("failed to initialize tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Warn("tracing shutdown", "error", err)
		}
	}()

	// Render cache: Valkey when reachable, otherwise in-process.
	var pageCache renderCache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
	if err != nil {
		slog.Warn("valkey unavailable, using in-process render cache", "error", err)
		pageCache = cache.NewMemoryCache()
	} else {
		defer valkeyClient.Close()
		pageCache = cache.NewPageCache(valkeyClient)
	}

	contentClient, err := content.New(content.Config{
		ProjectID:  cfg.SanityProjectID,
		Dataset:    cfg.SanityDataset,
		APIVersion: cfg.SanityAPIVersion,
		Token:      cfg.SanityReadToken,
	})
	if err != nil {
		slog.Error("failed to initialize content client", "error", err)
		os.Exit(1)
	}

	mailer := mail.NewResend(cfg.ResendAPIKey, "")
	if mailer == nil {
		slog.Warn("RESEND_API_KEY not set, contact submissions will be rejected")
	}

	// Revalidation audit log (optional).
	var audit handlers.AuditLog
	if cfg.AuditLogEnabled() {
		db, err := database.Connect(ctx, cfg.DSN())
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		if err := database.Migrate(ctx, db); err != nil {
			slog.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		audit = store.NewRevalidationLog(db)
	} else {
		slog.Info("POSTGRES_HOST not set, revalidation audit log disabled")
	}

	if cfg.RevalidateSecret == "" {
		slog.Warn("SANITY_REVALIDATE_SECRET not set, every revalidation call will be rejected")
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	if err := metrics.Register(reg); err != nil {
		slog.Error("failed to register metrics", "error", err)
		os.Exit(1)
	}
	httpMetrics, err := middleware.NewMetrics(reg)
	if err != nil {
		slog.Error("failed to register http metrics", "error", err)
		os.Exit(1)
	}

	renderer, err := render.New()
	if err != nil {
		slog.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	images := content.ImageBuilder{ProjectID: cfg.SanityProjectID, Dataset: cfg.SanityDataset}
	loader := site.NewLoader(contentClient, pageCache, images)

	contactLimiter := middleware.NewRateLimiter(cfg.ContactRateLimit, contactWindow)
	contactLimiter.TrustProxy = cfg.TrustProxy
	defer contactLimiter.Stop()

	r, err := router.New(router.Deps{
		Public:         handlers.NewPublic(loader, renderer, pageCache),
		Contact:        handlers.NewContact(mailer, loader, cfg.ResendFromEmail),
		Revalidate:     handlers.NewRevalidate(pageCache, cfg.RevalidateSecret, audit),
		ContactLimiter: contactLimiter,
		Metrics:        httpMetrics,
		Gatherer:       reg,
		HSTS:           !cfg.IsDev(),
	})
	if err != nil {
		slog.Error("failed to build router", "error", err)
		os.Exit(1)
	}

	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      otelhttp.NewHandler(r, "flawless"),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start the server in a goroutine so we can listen for shutdown signals.
	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
