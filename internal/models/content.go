// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package models defines the content documents read from the Sanity content
// store. Field names follow the store's JSON projections.
package models

import (
	"strings"
	"time"
)

// Document types that exist in the content store.
const (
	TypeSiteSettings = "siteSettings"
	TypeHomeHero     = "homeHero"
	TypeService      = "service"
	TypeProcessStep  = "processStep"
	TypeTestimonial  = "testimonial"
	TypeGoogleReview = "googleReview"
	TypeGalleryEntry = "galleryEntry"
	TypeBlogPost     = "blogPost"
)

// HomeHero is the singleton homepage hero.
type HomeHero struct {
	Title             string   `json:"title,omitempty"`
	Subtitle          string   `json:"subtitle,omitempty"`
	ServiceAreas      []string `json:"serviceAreas,omitempty"` // at most 4, shown as a badge
	PrimaryCtaLabel   string   `json:"primaryCtaLabel,omitempty"`
	PrimaryCtaHref    string   `json:"primaryCtaHref,omitempty"`
	SecondaryCtaLabel string   `json:"secondaryCtaLabel,omitempty"`
	SecondaryCtaHref  string   `json:"secondaryCtaHref,omitempty"`
}

// WithDefaults fills missing fields from fb.
func (h *HomeHero) WithDefaults(fb *HomeHero) *HomeHero {
	if h == nil {
		return fb
	}
	if fb == nil {
		return h
	}
	out := *h
	out.Title = orString(h.Title, fb.Title)
	out.Subtitle = orString(h.Subtitle, fb.Subtitle)
	if len(h.ServiceAreas) == 0 {
		out.ServiceAreas = fb.ServiceAreas
	}
	out.PrimaryCtaLabel = orString(h.PrimaryCtaLabel, fb.PrimaryCtaLabel)
	out.PrimaryCtaHref = orString(h.PrimaryCtaHref, fb.PrimaryCtaHref)
	out.SecondaryCtaLabel = orString(h.SecondaryCtaLabel, fb.SecondaryCtaLabel)
	out.SecondaryCtaHref = orString(h.SecondaryCtaHref, fb.SecondaryCtaHref)
	return &out
}

// Badge joins the service areas for the badge above the headline.
func (h *HomeHero) Badge() string {
	if h == nil {
		return ""
	}
	return strings.Join(h.ServiceAreas, " · ")
}

// Service is an offered cleaning service.
type Service struct {
	ID         string   `json:"_id"`
	Title      string   `json:"title"`
	Summary    string   `json:"summary,omitempty"`
	Highlights []string `json:"highlights,omitempty"`
	Icon       string   `json:"icon,omitempty"` // icon slug, e.g. "sparkles"
	Order      *float64 `json:"order,omitempty"`
}

// ProcessStep is one step of the booking-to-aftercare process.
type ProcessStep struct {
	ID          string   `json:"_id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Order       *float64 `json:"order,omitempty"`
}

// Testimonial is a customer quote. ServiceTitle is dereferenced from the
// service reference and is empty when the reference dangles.
type Testimonial struct {
	ID           string   `json:"_id"`
	Quote        string   `json:"quote"`
	CustomerName string   `json:"customerName"`
	Location     string   `json:"location,omitempty"`
	ServiceTitle string   `json:"serviceTitle,omitempty"`
	Order        *float64 `json:"order,omitempty"`
}

// GoogleReview is a review copied from the Google Business profile.
// Rating is expected in [1,5] but is rendered as received.
type GoogleReview struct {
	ID           string   `json:"_id"`
	ReviewerName string   `json:"reviewerName"`
	Rating       float64  `json:"rating"`
	ReviewText   string   `json:"reviewText"`
	ReviewDate   string   `json:"reviewDate,omitempty"` // YYYY-MM-DD
	ProfileImage string   `json:"profileImage,omitempty"`
	Order        *float64 `json:"order,omitempty"`
}

// GalleryEntry is a before/after project.
type GalleryEntry struct {
	ID             string   `json:"_id"`
	Title          string   `json:"title"`
	Location       string   `json:"location,omitempty"`
	Notes          []string `json:"notes,omitempty"`
	ServiceTitle   string   `json:"serviceTitle,omitempty"`
	BeforeImageURL string   `json:"beforeImageUrl,omitempty"`
	AfterImageURL  string   `json:"afterImageUrl,omitempty"`
	CreatedAt      string   `json:"_createdAt,omitempty"`
}

// Slug is the store's slug object.
type Slug struct {
	Current string `json:"current"`
}

// BlogPost is a blog article summary.
type BlogPost struct {
	ID            string       `json:"_id"`
	Title         string       `json:"title"`
	Slug          *Slug        `json:"slug,omitempty"`
	Excerpt       string       `json:"excerpt,omitempty"`
	Category      string       `json:"category,omitempty"`
	ReadingTime   *float64     `json:"readingTime,omitempty"` // minutes
	PublishedAt   string       `json:"publishedAt,omitempty"`
	FeaturedImage *SanityImage `json:"featuredImage,omitempty"`
}

// SlugValue returns the stored slug or "" when it is missing.
func (p BlogPost) SlugValue() string {
	if p.Slug == nil {
		return ""
	}
	return p.Slug.Current
}

// Published parses PublishedAt. The zero time is returned when it is missing
// or malformed.
func (p BlogPost) Published() time.Time {
	return ParseTime(p.PublishedAt)
}

// SanityImage is an image field stored as an asset reference.
type SanityImage struct {
	Asset *AssetRef `json:"asset,omitempty"`
	Alt   string    `json:"alt,omitempty"`
}

// AssetRef points at an uploaded asset document.
type AssetRef struct {
	Ref string `json:"_ref"`
}

// ParseTime accepts the store's datetime (RFC 3339) and date (YYYY-MM-DD)
// formats.
func ParseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t
	}
	return time.Time{}
}
