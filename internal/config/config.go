// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package config handles application configuration loading from environment
// variables. It provides a centralized Config struct used across the application.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Defaults for optional settings.
const (
	DefaultSanityAPIVersion = "2024-05-01"
	DefaultFromEmail        = "Flawless Carpet Cleaning <hello@flawlesscarpet.com>"
	DefaultContactRateLimit = 5
)

// ErrMissingContentStore is returned when the Sanity project or dataset
// cannot be resolved from the environment.
var ErrMissingContentStore = errors.New("missing Sanity project configuration: set NEXT_PUBLIC_SANITY_PROJECT_ID and NEXT_PUBLIC_SANITY_DATASET")

// Config holds all application configuration values loaded from the environment.
type Config struct {
	// Server settings
	Host string
	Port string
	Env  string // "development", "production", "testing"

	// Sanity content store
	SanityProjectID  string
	SanityDataset    string
	SanityAPIVersion string
	SanityReadToken  string // only used by the draft client

	// Outbound email (Resend)
	ResendAPIKey    string
	ResendFromEmail string

	// Shared secret for the revalidation webhook. Empty rejects every call.
	RevalidateSecret string

	// Valkey (Redis-compatible render cache)
	ValkeyHost     string
	ValkeyPort     string
	ValkeyPassword string

	// PostgreSQL for the revalidation audit log. Empty DBHost disables it.
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	// ContactRateLimit is the number of contact submissions allowed per
	// client IP in a ten minute window.
	ContactRateLimit int

	// TrustProxy makes the rate limiter read the client IP from the
	// forwarding headers set by a reverse proxy in front of the server.
	TrustProxy bool

	// Cloudinary upload widget used by the content editors. Optional; the
	// server only reports whether it is set.
	CloudinaryCloudName    string
	CloudinaryUploadPreset string
}

// LoadDotenv reads .env style files into the process environment. Missing
// files are not an error; variables already set are never overridden.
func LoadDotenv(paths ...string) {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			slog.Warn("failed to read env file", "path", p, "error", err)
			continue
		}
		slog.Debug("env file loaded", "path", p)
	}
}

// Load reads configuration from environment variables, applying defaults
// where appropriate. The content store identifiers are required: without
// them the site cannot render anything meaningful, so Load fails.
func Load() (*Config, error) {
	cfg := &Config{
		Host: envOrDefault("APP_HOST", "0.0.0.0"),
		Port: envOrDefault("APP_PORT", "8080"),
		Env:  envOrDefault("APP_ENV", "development"),

		SanityProjectID:  firstEnv("NEXT_PUBLIC_SANITY_PROJECT_ID", "SANITY_STUDIO_PROJECT_ID", "SANITY_PROJECT_ID"),
		SanityDataset:    firstEnv("NEXT_PUBLIC_SANITY_DATASET", "SANITY_STUDIO_DATASET", "SANITY_DATASET"),
		SanityAPIVersion: envOrDefault("SANITY_API_VERSION", DefaultSanityAPIVersion),
		SanityReadToken:  os.Getenv("SANITY_READ_TOKEN"),

		ResendAPIKey:    os.Getenv("RESEND_API_KEY"),
		ResendFromEmail: envOrDefault("RESEND_FROM_EMAIL", DefaultFromEmail),

		RevalidateSecret: os.Getenv("SANITY_REVALIDATE_SECRET"),

		ValkeyHost:     envOrDefault("VALKEY_HOST", "localhost"),
		ValkeyPort:     envOrDefault("VALKEY_PORT", "6379"),
		ValkeyPassword: os.Getenv("VALKEY_PASSWORD"),

		DBHost:     os.Getenv("POSTGRES_HOST"),
		DBPort:     envOrDefault("POSTGRES_PORT", "5432"),
		DBUser:     envOrDefault("POSTGRES_USER", "flawless"),
		DBPassword: envOrDefault("POSTGRES_PASSWORD", "changeme"),
		DBName:     envOrDefault("POSTGRES_DB", "flawless"),

		CloudinaryCloudName:    firstEnv("NEXT_PUBLIC_CLOUDINARY_CLOUD_NAME", "SANITY_STUDIO_CLOUDINARY_CLOUD_NAME"),
		CloudinaryUploadPreset: firstEnv("NEXT_PUBLIC_CLOUDINARY_UPLOAD_PRESET", "SANITY_STUDIO_CLOUDINARY_UPLOAD_PRESET"),
	}

	limit, err := intOrDefault("CONTACT_RATE_LIMIT", DefaultContactRateLimit)
	if err != nil {
		return nil, err
	}
	cfg.ContactRateLimit = limit

	trust, err := boolOrDefault("TRUST_PROXY", false)
	if err != nil {
		return nil, err
	}
	cfg.TrustProxy = trust

	if cfg.SanityProjectID == "" || cfg.SanityDataset == "" {
		return nil, ErrMissingContentStore
	}

	if cfg.Env == "production" && cfg.AuditLogEnabled() {
		if cfg.DBPassword == "changeme" {
			return nil, fmt.Errorf("POSTGRES_PASSWORD must be set in production")
		}
	}

	return cfg, nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Host, c.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// UploadWidgetConfigured reports whether both upload widget settings are set.
func (c *Config) UploadWidgetConfigured() bool {
	return c.CloudinaryCloudName != "" && c.CloudinaryUploadPreset != ""
}

// AuditLogEnabled reports whether a PostgreSQL host was configured for the
// revalidation audit log.
func (c *Config) AuditLogEnabled() bool {
	return c.DBHost != ""
}

// envOrDefault reads an environment variable, returning a fallback if unset or empty.
func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// firstEnv returns the first non-empty value among the given variables.
func firstEnv(keys ...string) string {
	for _, k := range keys {
		if v := os.Getenv(k); v != "" {
			return v
		}
	}
	return ""
}

func intOrDefault(key string, fallback int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("%s must be a positive integer, got %q", key, v)
	}
	return n, nil
}

func boolOrDefault(key string, fallback bool) (bool, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean, got %q", key, v)
	}
	return b, nil
}
