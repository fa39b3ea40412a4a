// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package cache

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
)

// memoryEntry is one cached value with its expiry.
type memoryEntry struct {
	data    []byte
	expires time.Time
}

// MemoryCache is an in-process render cache with the same semantics as
// PageCache. It serves single-instance deployments without Valkey.
type MemoryCache struct {
	mu        sync.RWMutex
	entries   map[string]memoryEntry
	gens      map[string]int64 // per page key
	layoutGen int64
	now       func() time.Time
}

// NewMemoryCache creates an empty in-process cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		gens:    make(map[string]int64),
		now:     time.Now,
	}
}

// Get retrieves cached HTML for a route.
func (mc *MemoryCache) Get(_ context.Context, route string) ([]byte, bool) {
	return mc.get(PageKey(route))
}

// Generation returns the invalidation generation of route.
func (mc *MemoryCache) Generation(_ context.Context, route string) int64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.gens[PageKey(route)] + mc.layoutGen
}

// Set stores rendered HTML for a route for ttl, unless route was invalidated
// since gen was read.
func (mc *MemoryCache) Set(_ context.Context, route string, html []byte, ttl time.Duration, gen int64) {
	key := PageKey(route)
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.gens[key]+mc.layoutGen != gen {
		slog.Debug("memory cache set skipped, invalidated during render", "key", key)
		return
	}
	mc.setLocked(key, html, ttl)
}

// GetLayout retrieves the cached layout payload.
func (mc *MemoryCache) GetLayout(_ context.Context) ([]byte, bool) {
	return mc.get(layoutKey)
}

// LayoutGeneration returns the invalidation generation of the layout entry.
func (mc *MemoryCache) LayoutGeneration(_ context.Context) int64 {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	return mc.layoutGen
}

// SetLayout stores the layout payload for ttl, unless the layout was
// invalidated since gen was read.
func (mc *MemoryCache) SetLayout(_ context.Context, data []byte, ttl time.Duration, gen int64) {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	if mc.layoutGen != gen {
		slog.Debug("memory cache layout set skipped, invalidated during load")
		return
	}
	mc.setLocked(layoutKey, data, ttl)
}

// Invalidate removes the given routes. Absent routes are ignored.
func (mc *MemoryCache) Invalidate(_ context.Context, routes ...string) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	for _, r := range routes {
		key := PageKey(r)
		mc.gens[key]++
		delete(mc.entries, key)
	}
	slog.Debug("memory cache invalidated", "routes", routes)
	return nil
}

// InvalidateLayout removes the layout entry and every page.
func (mc *MemoryCache) InvalidateLayout(_ context.Context) error {
	mc.mu.Lock()
	defer mc.mu.Unlock()
	mc.layoutGen++
	delete(mc.entries, layoutKey)
	for k := range mc.entries {
		if strings.HasPrefix(k, pageKeyPrefix) {
			delete(mc.entries, k)
		}
	}
	slog.Debug("memory cache layout cleared")
	return nil
}

// Keys returns the keys of live entries. Used by tests and diagnostics.
func (mc *MemoryCache) Keys() []string {
	mc.mu.RLock()
	defer mc.mu.RUnlock()
	now := mc.now()
	var keys []string
	for k, e := range mc.entries {
		if now.Before(e.expires) {
			keys = append(keys, k)
		}
	}
	return keys
}

func (mc *MemoryCache) get(key string) ([]byte, bool) {
	mc.mu.RLock()
	e, ok := mc.entries[key]
	mc.mu.RUnlock()
	if !ok || !mc.now().Before(e.expires) {
		return nil, false
	}
	return e.data, true
}

func (mc *MemoryCache) setLocked(key string, data []byte, ttl time.Duration) {
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	mc.entries[key] = memoryEntry{data: data, expires: mc.now().Add(ttl)}
}
