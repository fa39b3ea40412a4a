// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
)

// testValkeyClient returns a Redis client for tests.
// Skips if Valkey is unavailable.
func testValkeyClient(t *testing.T) *redis.Client {
	t.Helper()

	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")
	password := os.Getenv("VALKEY_PASSWORD")

	client := redis.NewClient(&redis.Options{
		Addr:     host + ":" + port,
		Password: password,
		DB:       15, // Use DB 15 for tests.
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("skipping integration test: Valkey not reachable: %v", err)
	}

	t.Cleanup(func() {
		for _, pattern := range []string{"page:*", layoutKey, genKeyPrefix + "*"} {
			keys, _ := client.Keys(ctx, pattern).Result()
			if len(keys) > 0 {
				client.Del(ctx, keys...)
			}
		}
		client.Close()
	})

	return client
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func TestConnectValkey(t *testing.T) {
	host := envOr("VALKEY_HOST", "localhost")
	port := envOr("VALKEY_PORT", "6379")

	client, err := ConnectValkey(host, port, os.Getenv("VALKEY_PASSWORD"))
	if err != nil {
		t.Skipf("skipping: Valkey not available: %v", err)
	}
	defer client.Close()

	pong, err := client.Ping(context.Background()).Result()
	if err != nil {
		t.Fatalf("Ping: %v", err)
	}
	if pong != "PONG" {
		t.Errorf("expected PONG, got %q", pong)
	}
}

func TestPageCacheSetAndGet(t *testing.T) {
	pc := NewPageCache(testValkeyClient(t))
	ctx := context.Background()

	if _, ok := pc.Get(ctx, "/gallery"); ok {
		t.Error("expected cache miss")
	}

	html := []byte("<html><body>Gallery</body></html>")
	pc.Set(ctx, "/gallery", html, time.Minute, pc.Generation(ctx, "/gallery"))

	data, ok := pc.Get(ctx, "/gallery")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if string(data) != string(html) {
		t.Errorf("data mismatch: got %q, want %q", data, html)
	}
}

func TestPageCacheInvalidateIdempotent(t *testing.T) {
	pc := NewPageCache(testValkeyClient(t))
	ctx := context.Background()

	pc.Set(ctx, "/", []byte("home"), time.Minute, pc.Generation(ctx, "/"))
	pc.Set(ctx, "/blog", []byte("blog"), time.Minute, pc.Generation(ctx, "/blog"))

	for i := 0; i < 2; i++ {
		if err := pc.Invalidate(ctx, "/", "/blog", "/gallery"); err != nil {
			t.Fatalf("Invalidate #%d: %v", i+1, err)
		}
	}

	for _, route := range []string{"/", "/blog", "/gallery"} {
		if _, ok := pc.Get(ctx, route); ok {
			t.Errorf("expected miss for %q after invalidation", route)
		}
	}
}

func TestPageCacheInvalidateLayout(t *testing.T) {
	pc := NewPageCache(testValkeyClient(t))
	ctx := context.Background()

	pc.SetLayout(ctx, []byte(`{"title":"x"}`), time.Minute, pc.LayoutGeneration(ctx))
	pc.Set(ctx, "/", []byte("home"), time.Minute, pc.Generation(ctx, "/"))
	pc.Set(ctx, "/privacy", []byte("privacy"), time.Minute, pc.Generation(ctx, "/privacy"))

	if err := pc.InvalidateLayout(ctx); err != nil {
		t.Fatalf("InvalidateLayout: %v", err)
	}

	if _, ok := pc.GetLayout(ctx); ok {
		t.Error("expected layout miss")
	}
	for _, route := range []string{"/", "/privacy"} {
		if _, ok := pc.Get(ctx, route); ok {
			t.Errorf("expected miss for %q after layout invalidation", route)
		}
	}
}

func TestPageCacheInvalidateUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	pc := NewPageCache(client)
	ctx := context.Background()

	if err := pc.Invalidate(ctx, "/"); err == nil {
		t.Error("expected error when Valkey is unreachable")
	}
	if err := pc.InvalidateLayout(ctx); err == nil {
		t.Error("expected layout error when Valkey is unreachable")
	}
	// Reads degrade to a miss.
	if _, ok := pc.Get(ctx, "/"); ok {
		t.Error("expected miss when Valkey is unreachable")
	}
}

func TestPageCacheSetAfterInvalidateDropped(t *testing.T) {
	pc := NewPageCache(testValkeyClient(t))
	ctx := context.Background()

	gen := pc.Generation(ctx, "/blog")
	if err := pc.Invalidate(ctx, "/blog"); err != nil {
		t.Fatalf("Invalidate: %v", err)
	}
	pc.Set(ctx, "/blog", []byte("stale"), time.Minute, gen)
	if _, ok := pc.Get(ctx, "/blog"); ok {
		t.Error("render started before invalidation was cached")
	}

	pc.Set(ctx, "/blog", []byte("fresh"), time.Minute, pc.Generation(ctx, "/blog"))
	if data, ok := pc.Get(ctx, "/blog"); !ok || string(data) != "fresh" {
		t.Errorf("Get = %q, %v; want fresh render cached", data, ok)
	}
}

func TestPageCacheSetAfterLayoutInvalidateDropped(t *testing.T) {
	pc := NewPageCache(testValkeyClient(t))
	ctx := context.Background()

	pageGen := pc.Generation(ctx, "/")
	layoutGen := pc.LayoutGeneration(ctx)
	if err := pc.InvalidateLayout(ctx); err != nil {
		t.Fatalf("InvalidateLayout: %v", err)
	}
	pc.Set(ctx, "/", []byte("stale"), time.Minute, pageGen)
	pc.SetLayout(ctx, []byte(`{"title":"stale"}`), time.Minute, layoutGen)

	if _, ok := pc.Get(ctx, "/"); ok {
		t.Error("page render started before layout invalidation was cached")
	}
	if _, ok := pc.GetLayout(ctx); ok {
		t.Error("layout loaded before invalidation was cached")
	}
}

func TestPageCacheGenerationUnreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	pc := NewPageCache(client)

	if gen := pc.Generation(context.Background(), "/"); gen != -1 {
		t.Errorf("Generation = %d, want -1", gen)
	}
}

func TestPageKey(t *testing.T) {
	if PageKey("/gallery") != "page:/gallery" {
		t.Errorf("PageKey = %q", PageKey("/gallery"))
	}
}
