// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package handlers

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"flawless/internal/metrics"
	"flawless/internal/render"
	"flawless/internal/site"
)

// Public serves the rendered pages. It checks the render cache first and
// stores the rendered page for the route's budget on a miss, unless the route
// was revalidated while the page rendered. Content
// problems never surface here: the loader has already substituted fallbacks.
type Public struct {
	loader *site.Loader
	site   *render.Site
	cache  PageCache
}

// NewPublic creates the public page handlers.
func NewPublic(loader *site.Loader, rs *render.Site, pc PageCache) *Public {
	return &Public{loader: loader, site: rs, cache: pc}
}

// Home renders "/".
func (p *Public) Home(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "/", render.PageHome, func(ctx context.Context) any {
		return p.loader.LoadHome(ctx)
	})
}

// Gallery renders "/gallery".
func (p *Public) Gallery(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "/gallery", render.PageGallery, func(ctx context.Context) any {
		return p.loader.LoadGallery(ctx)
	})
}

// Blog renders "/blog".
func (p *Public) Blog(w http.ResponseWriter, r *http.Request) {
	p.serve(w, r, "/blog", render.PageBlog, func(ctx context.Context) any {
		return p.loader.LoadBlog(ctx)
	})
}

func (p *Public) serve(w http.ResponseWriter, r *http.Request, route, page string, load func(context.Context) any) {
	ctx := r.Context()
	budget := site.Budget(route)

	if cached, ok := p.cache.Get(ctx, route); ok {
		metrics.PageCacheLookups.WithLabelValues(route, "hit").Inc()
		writeHTML(w, cached, "HIT", budget.Seconds())
		return
	}
	metrics.PageCacheLookups.WithLabelValues(route, "miss").Inc()

	gen := p.cache.Generation(ctx, route)
	html, err := p.site.Bytes(page, load(ctx))
	if err != nil {
		slog.ErrorContext(ctx, "render page failed", "route", route, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	p.cache.Set(ctx, route, html, budget, gen)
	writeHTML(w, html, "MISS", budget.Seconds())
}

func writeHTML(w http.ResponseWriter, html []byte, cacheState string, maxAge float64) {
	h := w.Header()
	h.Set("Content-Type", "text/html; charset=utf-8")
	h.Set("Cache-Control", fmt.Sprintf("public, s-maxage=%d, stale-while-revalidate", int(maxAge)))
	h.Set("X-Cache", cacheState)
	w.Write(html)
}
