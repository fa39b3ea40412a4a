// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package site assembles the data each public page renders. Every piece of
// content is fetched from the published view and resolved through the
// fallback policy, so loading a page never fails.
package site

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"flawless/internal/content"
	"flawless/internal/fallback"
	"flawless/internal/models"
	"flawless/internal/slug"
)

// Revalidate is the freshness budget of every public route.
const Revalidate = 30 * time.Minute

// homePreview is how many gallery entries and posts the home page shows.
const homePreview = 3

// Routes maps each rendered route to its revalidation budget.
var Routes = map[string]time.Duration{
	"/":        Revalidate,
	"/gallery": Revalidate,
	"/blog":    Revalidate,
}

// Budget returns the revalidation budget for route.
func Budget(route string) time.Duration {
	if d, ok := Routes[route]; ok {
		return d
	}
	return Revalidate
}

// NavLink is one header navigation entry.
type NavLink struct {
	Label string
	Href  string
}

// Nav is the header navigation shared by every page.
var Nav = []NavLink{
	{Label: "Home", Href: "/"},
	{Label: "Gallery", Href: "/gallery"},
	{Label: "Blog", Href: "/blog"},
	{Label: "Contact", Href: "/#contact"},
}

// Layout is the data the shared header and footer render.
type Layout struct {
	Settings *models.SiteSettings
	Nav      []NavLink
	Path     string // route being rendered, for the active nav entry
}

// PostCard is a blog post prepared for a listing.
type PostCard struct {
	models.BlogPost
	Href     string // "/blog/<slug>"
	ImageURL string // featured image, empty when the post has none
}

// HomePage is everything "/" renders.
type HomePage struct {
	Layout
	Hero         *models.HomeHero
	Services     []models.Service
	Steps        []models.ProcessStep
	Testimonials []models.Testimonial
	Reviews      []models.GoogleReview
	Gallery      []models.GalleryEntry
	Posts        []PostCard
}

// GalleryPage is everything "/gallery" renders.
type GalleryPage struct {
	Layout
	Entries []models.GalleryEntry
}

// BlogPage is everything "/blog" renders.
type BlogPage struct {
	Layout
	Posts []PostCard
}

// LayoutCache stores the resolved site settings between renders.
// SetLayout drops the write when the layout was invalidated after gen was
// read.
type LayoutCache interface {
	GetLayout(ctx context.Context) ([]byte, bool)
	LayoutGeneration(ctx context.Context) int64
	SetLayout(ctx context.Context, data []byte, ttl time.Duration, gen int64)
}

// Loader loads page data from the content store.
type Loader struct {
	q      content.Querier
	cache  LayoutCache // optional
	images content.ImageBuilder
}

// NewLoader creates a loader. layout may be nil to disable layout caching.
func NewLoader(q content.Querier, layout LayoutCache, images content.ImageBuilder) *Loader {
	return &Loader{q: q, cache: layout, images: images}
}

// LoadLayout returns the resolved site settings. Settings read successfully
// from the store are cached for the layout budget; fallback settings are not,
// so a recovered store is picked up by the next render.
func (l *Loader) LoadLayout(ctx context.Context, path string) Layout {
	return Layout{Settings: l.settings(ctx), Nav: Nav, Path: path}
}

// Settings returns the resolved site settings.
func (l *Loader) Settings(ctx context.Context) *models.SiteSettings {
	return l.settings(ctx)
}

func (l *Loader) settings(ctx context.Context) *models.SiteSettings {
	var gen int64
	if l.cache != nil {
		if data, ok := l.cache.GetLayout(ctx); ok {
			var s models.SiteSettings
			err := json.Unmarshal(data, &s)
			if err == nil {
				return &s
			}
			slog.WarnContext(ctx, "layout cache entry unreadable", "error", err)
		}
		gen = l.cache.LayoutGeneration(ctx)
	}

	o := content.SiteSettings(ctx, l.q, content.Published)
	resolved := fallback.Resolve(ctx, models.TypeSiteSettings, o, fallback.Settings())

	if l.cache != nil && !o.Failed() {
		if data, err := json.Marshal(resolved); err == nil {
			l.cache.SetLayout(ctx, data, Revalidate, gen)
		}
	}
	return resolved
}

// LoadHome fetches every home page section concurrently and waits for all of
// them. A failed section falls back on its own without affecting the others.
func (l *Loader) LoadHome(ctx context.Context) *HomePage {
	var (
		g            errgroup.Group
		settings     *models.SiteSettings
		hero         content.Outcome[*models.HomeHero]
		services     content.Outcome[[]models.Service]
		steps        content.Outcome[[]models.ProcessStep]
		testimonials content.Outcome[[]models.Testimonial]
		reviews      content.Outcome[[]models.GoogleReview]
		gallery      content.Outcome[[]models.GalleryEntry]
		posts        content.Outcome[[]models.BlogPost]
	)

	// Goroutines never return an error so one failure cannot cancel the rest.
	g.Go(func() error { settings = l.settings(ctx); return nil })
	g.Go(func() error { hero = content.HomeHero(ctx, l.q, content.Published); return nil })
	g.Go(func() error { services = content.Services(ctx, l.q, content.Published); return nil })
	g.Go(func() error { steps = content.ProcessSteps(ctx, l.q, content.Published); return nil })
	g.Go(func() error { testimonials = content.Testimonials(ctx, l.q, content.Published); return nil })
	g.Go(func() error { reviews = content.GoogleReviews(ctx, l.q, content.Published); return nil })
	g.Go(func() error { gallery = content.GalleryEntries(ctx, l.q, content.Published); return nil })
	g.Go(func() error { posts = content.BlogPosts(ctx, l.q, content.Published); return nil })
	_ = g.Wait()

	return &HomePage{
		Layout:       Layout{Settings: settings, Nav: Nav, Path: "/"},
		Hero:         fallback.Resolve(ctx, models.TypeHomeHero, hero, fallback.Hero()),
		Services:     fallback.Resolve(ctx, models.TypeService, services, fallback.Services()),
		Steps:        fallback.Resolve(ctx, models.TypeProcessStep, steps, fallback.Steps()),
		Testimonials: withServiceTitles(fallback.Resolve(ctx, models.TypeTestimonial, testimonials, fallback.Testimonials())),
		Reviews:      fallback.Resolve(ctx, models.TypeGoogleReview, reviews, fallback.Reviews()),
		Gallery:      first(withImages(fallback.Resolve(ctx, models.TypeGalleryEntry, gallery, fallback.Gallery())), homePreview),
		Posts:        first(l.postCards(fallback.Resolve(ctx, models.TypeBlogPost, posts, fallback.Posts())), homePreview),
	}
}

// LoadGallery loads every gallery entry, newest first.
func (l *Loader) LoadGallery(ctx context.Context) *GalleryPage {
	var (
		g        errgroup.Group
		settings *models.SiteSettings
		entries  content.Outcome[[]models.GalleryEntry]
	)
	g.Go(func() error { settings = l.settings(ctx); return nil })
	g.Go(func() error { entries = content.GalleryEntries(ctx, l.q, content.Published); return nil })
	_ = g.Wait()

	return &GalleryPage{
		Layout:  Layout{Settings: settings, Nav: Nav, Path: "/gallery"},
		Entries: withImages(fallback.Resolve(ctx, models.TypeGalleryEntry, entries, fallback.Gallery())),
	}
}

// LoadBlog loads every blog post, most recently published first.
func (l *Loader) LoadBlog(ctx context.Context) *BlogPage {
	var (
		g        errgroup.Group
		settings *models.SiteSettings
		posts    content.Outcome[[]models.BlogPost]
	)
	g.Go(func() error { settings = l.settings(ctx); return nil })
	g.Go(func() error { posts = content.BlogPosts(ctx, l.q, content.Published); return nil })
	_ = g.Wait()

	return &BlogPage{
		Layout: Layout{Settings: settings, Nav: Nav, Path: "/blog"},
		Posts:  l.postCards(fallback.Resolve(ctx, models.TypeBlogPost, posts, fallback.Posts())),
	}
}

func (l *Loader) postCards(posts []models.BlogPost) []PostCard {
	cards := make([]PostCard, len(posts))
	for i, p := range posts {
		cards[i] = PostCard{
			BlogPost: p,
			Href:     "/blog/" + slug.Or(p.SlugValue(), p.Title),
			ImageURL: l.images.URL(p.FeaturedImage),
		}
	}
	return cards
}

// withImages gives entries without an after photo the default one.
func withImages(entries []models.GalleryEntry) []models.GalleryEntry {
	for i := range entries {
		if entries[i].AfterImageURL == "" {
			entries[i].AfterImageURL = fallback.FeaturedImageURL
		}
	}
	return entries
}

// withServiceTitles labels testimonials whose service reference dangles.
func withServiceTitles(ts []models.Testimonial) []models.Testimonial {
	for i := range ts {
		if ts[i].ServiceTitle == "" {
			ts[i].ServiceTitle = fallback.TestimonialServiceTitle
		}
	}
	return ts
}

func first[T any](items []T, n int) []T {
	if len(items) > n {
		return items[:n]
	}
	return items
}
