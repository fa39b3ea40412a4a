// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides the Valkey-backed render cache. A rendered page is stored
// under its route with the route's revalidation budget as TTL, so it stays
// fresh until the budget elapses or the revalidation webhook deletes it.
package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// pageKeyPrefix is the Valkey key prefix for cached pages.
	pageKeyPrefix = "page:"

	// layoutKey holds the resolved site settings shared by every page.
	layoutKey = "layout:settings"

	// genKeyPrefix prefixes the invalidation counter of a cached key.
	genKeyPrefix = "gen:"

	// DefaultPageTTL is used when a caller passes no budget.
	DefaultPageTTL = 30 * time.Minute
)

// setIfCurrent writes KEYS[1] only when the counters in KEYS[2..] still sum
// to ARGV[1]. ARGV[2] is the value and ARGV[3] the TTL in milliseconds.
var setIfCurrent = redis.NewScript(`
local have = 0
for i = 2, #KEYS do
  have = have + tonumber(redis.call('GET', KEYS[i]) or '0')
end
if have ~= tonumber(ARGV[1]) then
  return 0
end
redis.call('SET', KEYS[1], ARGV[2], 'PX', ARGV[3])
return 1
`)

// PageCache manages rendered page and layout entries in Valkey.
//
// Every route and the layout carry an invalidation counter. A render reads
// the counter before loading content and its write is dropped when an
// invalidation bumped the counter in between, so a slow render can never
// put back what the webhook just discarded.
type PageCache struct {
	client *redis.Client
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client) *PageCache {
	return &PageCache{client: client}
}

// Get retrieves cached HTML for a route. Read errors count as a miss.
func (pc *PageCache) Get(ctx context.Context, route string) ([]byte, bool) {
	return pc.get(ctx, PageKey(route))
}

// Generation returns the invalidation generation of route, covering both the
// route and the layout. It returns -1 when Valkey cannot be read, which makes
// the following Set a no-op.
func (pc *PageCache) Generation(ctx context.Context, route string) int64 {
	return pc.generation(ctx, genKey(PageKey(route)), genKey(layoutKey))
}

// Set stores rendered HTML for a route for ttl, unless route was invalidated
// since gen was read. Write errors are logged and dropped; the next request
// simply renders again.
func (pc *PageCache) Set(ctx context.Context, route string, html []byte, ttl time.Duration, gen int64) {
	key := PageKey(route)
	pc.set(ctx, []string{key, genKey(key), genKey(layoutKey)}, html, ttl, gen)
}

// GetLayout retrieves the cached layout payload.
func (pc *PageCache) GetLayout(ctx context.Context) ([]byte, bool) {
	return pc.get(ctx, layoutKey)
}

// LayoutGeneration returns the invalidation generation of the layout entry.
func (pc *PageCache) LayoutGeneration(ctx context.Context) int64 {
	return pc.generation(ctx, genKey(layoutKey))
}

// SetLayout stores the layout payload for ttl, unless the layout was
// invalidated since gen was read.
func (pc *PageCache) SetLayout(ctx context.Context, data []byte, ttl time.Duration, gen int64) {
	pc.set(ctx, []string{layoutKey, genKey(layoutKey)}, data, ttl, gen)
}

// Invalidate discards the cached renders of routes and bumps their counters
// in one transaction. Deleting an absent key is a no-op, so repeated or
// concurrent calls for the same routes leave the same cached state. Unlike
// reads, errors are returned: the caller must know when invalidation did not
// happen.
func (pc *PageCache) Invalidate(ctx context.Context, routes ...string) error {
	if len(routes) == 0 {
		return nil
	}
	keys := make([]string, len(routes))
	for i, r := range routes {
		keys[i] = PageKey(r)
	}
	var del *redis.IntCmd
	_, err := pc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, k := range keys {
			pipe.Incr(ctx, genKey(k))
		}
		del = pipe.Del(ctx, keys...)
		return nil
	})
	if err != nil {
		return fmt.Errorf("page cache invalidate: %w", err)
	}
	slog.Debug("page cache invalidated", "routes", routes, "deleted", del.Val())
	return nil
}

// InvalidateLayout discards the layout entry and every cached page, since
// every page embeds the layout. The layout counter is bumped first, so page
// renders in flight are dropped as well.
func (pc *PageCache) InvalidateLayout(ctx context.Context) error {
	_, err := pc.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Incr(ctx, genKey(layoutKey))
		pipe.Del(ctx, layoutKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("layout cache invalidate: %w", err)
	}

	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, pageKeyPrefix+"*", 100).Result()
		if err != nil {
			return fmt.Errorf("page cache scan: %w", err)
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("page cache bulk delete: %w", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	slog.Info("layout cache cleared", "pages_deleted", deleted)
	return nil
}

func (pc *PageCache) get(ctx context.Context, key string) ([]byte, bool) {
	val, err := pc.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

func (pc *PageCache) generation(ctx context.Context, keys ...string) int64 {
	vals, err := pc.client.MGet(ctx, keys...).Result()
	if err != nil {
		slog.Warn("page cache generation error", "keys", keys, "error", err)
		return -1
	}
	var gen int64
	for _, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue // never invalidated
		}
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return -1
		}
		gen += n
	}
	return gen
}

// set writes keys[0] through setIfCurrent; keys[1:] are its counters.
func (pc *PageCache) set(ctx context.Context, keys []string, data []byte, ttl time.Duration, gen int64) {
	if gen < 0 {
		return
	}
	if ttl <= 0 {
		ttl = DefaultPageTTL
	}
	written, err := setIfCurrent.Run(ctx, pc.client, keys, gen, data, ttl.Milliseconds()).Int()
	if err != nil {
		slog.Warn("page cache set error", "key", keys[0], "error", err)
		return
	}
	if written == 0 {
		slog.Debug("page cache set skipped, invalidated during render", "key", keys[0])
	}
}

// PageKey returns the Valkey key for a route.
func PageKey(route string) string {
	return pageKeyPrefix + route
}

func genKey(key string) string {
	return genKeyPrefix + key
}
