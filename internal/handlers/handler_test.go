// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler tests.
// Handlers run against an in-memory content store, the in-process render
// cache and a recording mailer, so no external services are needed.
package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"slices"
	"strings"
	"sync"
	"testing"

	"flawless/internal/cache"
	"flawless/internal/content"
	"flawless/internal/content/contenttest"
	"flawless/internal/mail"
	"flawless/internal/render"
	"flawless/internal/site"
	"flawless/internal/store"
)

const testSecret = "s3cret"

// recordingMailer captures sent messages and optionally fails.
type recordingMailer struct {
	mu   sync.Mutex
	sent []mail.Message
	err  error
}

func (m *recordingMailer) Send(_ context.Context, msg mail.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, msg)
	return nil
}

func (m *recordingMailer) messages() []mail.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.sent)
}

// recordingAudit captures audit entries and lists them back.
type recordingAudit struct {
	mu      sync.Mutex
	entries []store.RevalidationEntry
	readErr error
}

func (a *recordingAudit) RecentEntries(_ context.Context, limit int) ([]store.RevalidationEntry, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.readErr != nil {
		return nil, a.readErr
	}
	var out []store.RevalidationEntry
	for i := len(a.entries) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, a.entries[i])
	}
	return out, nil
}

func (a *recordingAudit) Log(_ context.Context, e store.RevalidationEntry) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.entries = append(a.entries, e)
}

func (a *recordingAudit) last(t *testing.T) store.RevalidationEntry {
	t.Helper()
	a.mu.Lock()
	defer a.mu.Unlock()
	if len(a.entries) == 0 {
		t.Fatal("no audit entry recorded")
	}
	return a.entries[len(a.entries)-1]
}

// brokenCache serves reads from an in-process cache but fails every
// invalidation, like a Valkey that dropped mid-request.
type brokenCache struct {
	*cache.MemoryCache
}

var errCacheDown = errors.New("dial tcp 127.0.0.1:6379: connect: connection refused")

func (brokenCache) Invalidate(context.Context, ...string) error { return errCacheDown }
func (brokenCache) InvalidateLayout(context.Context) error      { return errCacheDown }

// testEnv wires the handlers the way the router does.
type testEnv struct {
	store   *contenttest.Store
	cache   *cache.MemoryCache
	loader  *site.Loader
	public  *Public
	mailer  *recordingMailer
	contact *Contact
	audit   *recordingAudit
	reval   *Revalidate
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	rs, err := render.New()
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}

	env := &testEnv{
		store:  contenttest.New(),
		cache:  cache.NewMemoryCache(),
		mailer: &recordingMailer{},
		audit:  &recordingAudit{},
	}
	env.loader = site.NewLoader(env.store, env.cache, content.ImageBuilder{ProjectID: "p1", Dataset: "production"})
	env.public = NewPublic(env.loader, rs, env.cache)
	env.contact = NewContact(env.mailer, env.loader, "Flawless Carpet Cleaning <hello@flawlesscarpet.com>")
	env.reval = NewRevalidate(env.cache, testSecret, env.audit)
	return env
}

// get runs a GET against a public handler.
func get(h http.HandlerFunc, path string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h(rr, httptest.NewRequest(http.MethodGet, path, nil))
	return rr
}

// post sends body to h.
func post(h http.Handler, target, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

// warm renders every public route so each is cached.
func (env *testEnv) warm(t *testing.T) {
	t.Helper()
	for path, h := range map[string]http.HandlerFunc{
		"/":        env.public.Home,
		"/gallery": env.public.Gallery,
		"/blog":    env.public.Blog,
	} {
		if rr := get(h, path); rr.Code != http.StatusOK {
			t.Fatalf("GET %s: %d", path, rr.Code)
		}
	}
	if _, ok := env.cache.GetLayout(context.Background()); !ok {
		t.Fatal("layout not cached after warm-up")
	}
}

// cachedKeys returns the live cache keys, sorted.
func (env *testEnv) cachedKeys() []string {
	keys := env.cache.Keys()
	slices.Sort(keys)
	return keys
}

var allKeys = []string{"layout:settings", "page:/", "page:/blog", "page:/gallery"}
