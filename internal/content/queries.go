// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"context"
	"time"

	"flawless/internal/models"
)

// GROQ projections for every content type rendered by the site.
const (
	SiteSettingsQuery = `*[_type == "siteSettings"][0]`

	HomeHeroQuery = `*[_type == "homeHero"][0]`

	ServicesQuery = `*[_type == "service"] | order(order asc, _id asc) {
  _id,
  title,
  summary,
  highlights,
  icon,
  order
}`

	ProcessStepsQuery = `*[_type == "processStep"] | order(order asc, _id asc) {
  _id,
  title,
  description,
  order
}`

	TestimonialsQuery = `*[_type == "testimonial"] | order(order asc, _id asc) {
  _id,
  quote,
  customerName,
  location,
  order,
  "serviceTitle": service->title
}`

	GoogleReviewsQuery = `*[_type == "googleReview"] | order(order asc, _id asc) {
  _id,
  reviewerName,
  rating,
  reviewText,
  reviewDate,
  profileImage,
  order
}`

	GalleryEntriesQuery = `*[_type == "galleryEntry"] | order(_createdAt desc, _id asc) {
  _id,
  _createdAt,
  title,
  location,
  notes,
  "serviceTitle": service->title,
  beforeImageUrl,
  afterImageUrl
}`

	BlogPostsQuery = `*[_type == "blogPost"] | order(publishedAt desc, _id asc) {
  _id,
  title,
  slug,
  excerpt,
  category,
  readingTime,
  publishedAt,
  featuredImage
}`
)

// AllQueries lists every query the site runs.
func AllQueries() []string {
	return []string{
		SiteSettingsQuery,
		HomeHeroQuery,
		ServicesQuery,
		ProcessStepsQuery,
		TestimonialsQuery,
		GoogleReviewsQuery,
		GalleryEntriesQuery,
		BlogPostsQuery,
	}
}

// SiteSettings fetches the singleton settings document.
func SiteSettings(ctx context.Context, q Querier, mode Mode) Outcome[*models.SiteSettings] {
	return Fetch[*models.SiteSettings](ctx, q, mode, SiteSettingsQuery, nil)
}

// HomeHero fetches the singleton homepage hero.
func HomeHero(ctx context.Context, q Querier, mode Mode) Outcome[*models.HomeHero] {
	return Fetch[*models.HomeHero](ctx, q, mode, HomeHeroQuery, nil)
}

// Services fetches services ordered by display order.
func Services(ctx context.Context, q Querier, mode Mode) Outcome[[]models.Service] {
	o := Fetch[[]models.Service](ctx, q, mode, ServicesQuery, nil)
	SortByOrder(o.Value,
		func(s models.Service) *float64 { return s.Order },
		func(s models.Service) string { return s.ID })
	return o
}

// ProcessSteps fetches process steps ordered by display order.
func ProcessSteps(ctx context.Context, q Querier, mode Mode) Outcome[[]models.ProcessStep] {
	o := Fetch[[]models.ProcessStep](ctx, q, mode, ProcessStepsQuery, nil)
	SortByOrder(o.Value,
		func(s models.ProcessStep) *float64 { return s.Order },
		func(s models.ProcessStep) string { return s.ID })
	return o
}

// Testimonials fetches testimonials ordered by display order.
func Testimonials(ctx context.Context, q Querier, mode Mode) Outcome[[]models.Testimonial] {
	o := Fetch[[]models.Testimonial](ctx, q, mode, TestimonialsQuery, nil)
	SortByOrder(o.Value,
		func(t models.Testimonial) *float64 { return t.Order },
		func(t models.Testimonial) string { return t.ID })
	return o
}

// GoogleReviews fetches reviews ordered by display order.
func GoogleReviews(ctx context.Context, q Querier, mode Mode) Outcome[[]models.GoogleReview] {
	o := Fetch[[]models.GoogleReview](ctx, q, mode, GoogleReviewsQuery, nil)
	SortByOrder(o.Value,
		func(r models.GoogleReview) *float64 { return r.Order },
		func(r models.GoogleReview) string { return r.ID })
	return o
}

// GalleryEntries fetches gallery entries, newest first.
func GalleryEntries(ctx context.Context, q Querier, mode Mode) Outcome[[]models.GalleryEntry] {
	o := Fetch[[]models.GalleryEntry](ctx, q, mode, GalleryEntriesQuery, nil)
	SortByNewest(o.Value,
		func(g models.GalleryEntry) time.Time { return models.ParseTime(g.CreatedAt) },
		func(g models.GalleryEntry) string { return g.ID })
	return o
}

// BlogPosts fetches blog posts, most recently published first.
func BlogPosts(ctx context.Context, q Querier, mode Mode) Outcome[[]models.BlogPost] {
	o := Fetch[[]models.BlogPost](ctx, q, mode, BlogPostsQuery, nil)
	SortByNewest(o.Value,
		func(p models.BlogPost) time.Time { return p.Published() },
		func(p models.BlogPost) string { return p.ID })
	return o
}
