// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package revalidate decides which cached renders a content mutation makes
// stale. The decision is a plain value (a Set) so applying it is a single
// idempotent cache operation.
package revalidate

import (
	"crypto/subtle"
	"slices"

	"flawless/internal/models"
)

// Routes rendered from the content store.
const (
	RouteHome    = "/"
	RouteGallery = "/gallery"
	RouteBlog    = "/blog"
)

// PublicRoutes are invalidated by any mutation of a public content type.
var PublicRoutes = []string{RouteHome, RouteGallery, RouteBlog}

// publicTypes affect the rendered pages.
var publicTypes = map[string]bool{
	models.TypeSiteSettings: true,
	models.TypeHomeHero:     true,
	models.TypeService:      true,
	models.TypeProcessStep:  true,
	models.TypeTestimonial:  true,
	models.TypeGoogleReview: true,
	models.TypeGalleryEntry: true,
	models.TypeBlogPost:     true,
}

// Set is what to discard from the render cache. Routes is sorted and free of
// duplicates. Layout means the shared header/footer data is stale too.
type Set struct {
	Routes []string
	Layout bool
}

// Empty reports whether the set discards nothing.
func (s Set) Empty() bool {
	return len(s.Routes) == 0 && !s.Layout
}

// Union merges two sets.
func (s Set) Union(o Set) Set {
	routes := append(slices.Clone(s.Routes), o.Routes...)
	slices.Sort(routes)
	return Set{
		Routes: slices.Compact(routes),
		Layout: s.Layout || o.Layout,
	}
}

// Plan classifies a mutated document type. Unknown or empty types yield an
// empty set; they are not an error.
func Plan(docType string) Set {
	if !publicTypes[docType] {
		return Set{}
	}
	s := Set{}.Union(Set{Routes: PublicRoutes})
	if docType == models.TypeSiteSettings {
		s.Layout = true
	}
	return s
}

// IsPublicType reports whether mutations of docType affect rendered pages.
func IsPublicType(docType string) bool {
	return publicTypes[docType]
}

// Authorize compares the supplied webhook secret with the configured one.
// An unconfigured secret authorizes nothing.
func Authorize(supplied, configured string) bool {
	if configured == "" || supplied == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(supplied), []byte(configured)) == 1
}
