// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package fallback

import "flawless/internal/models"

// ContactEmail receives contact form submissions when site settings carry no
// email address.
const ContactEmail = "hello@flawlesscarpet.com"

// TestimonialServiceTitle labels a testimonial whose service reference is
// missing or dangling.
const TestimonialServiceTitle = "Carpet Refresh"

// FeaturedImageURL is shown when a gallery entry has no after image.
const FeaturedImageURL = "https://res.cloudinary.com/djzvgtp09/image/upload/v1764061913/flawless/gallery/pzmumvwfwznja8kuf1m4.jpg"

// Each function below returns a fresh copy so callers may modify the result.

// Settings is the default site settings document.
func Settings() *models.SiteSettings {
	show := true
	return &models.SiteSettings{
		Title:   "Flawless Carpet Cleaning",
		Tagline: "Family operated · Est. 2016",
		Phone:   "(512) 555-0130",
		Email:   ContactEmail,
		Address: "Austin & surrounding suburbs",
		Hours:   "Monday–Saturday · 7a–7p",
		ServiceAreas: []string{
			"Central Austin",
			"Round Rock",
			"Cedar Park",
			"Westlake",
			"Buda & Kyle",
			"Georgetown",
		},
		ShowSocials: &show,
		SocialLinks: []models.SocialLink{
			{Label: "Facebook", Platform: "facebook", URL: "https://facebook.com/flawlesscarpetcleaning"},
			{Label: "Instagram", Platform: "instagram", URL: "https://instagram.com/flawlesscarpetcleaning"},
			{Label: "Twitter", Platform: "twitter", URL: "https://twitter.com/flawlesscarpet"},
		},
	}
}

// Hero is the default homepage hero.
func Hero() *models.HomeHero {
	return &models.HomeHero{
		Title:             "Austin's freshest carpet cleaning experience.",
		Subtitle:          "Eco-friendly chemistry, gallery-worthy results, and real humans who care for every fiber in your home.",
		ServiceAreas:      []string{"Austin", "Round Rock", "Cedar Park"},
		PrimaryCtaLabel:   "Book a visit",
		PrimaryCtaHref:    "#contact",
		SecondaryCtaLabel: "View gallery",
		SecondaryCtaHref:  "/gallery",
	}
}

// Services is the default service list.
func Services() []models.Service {
	return []models.Service{{
		ID:         "fallback-service",
		Title:      "Whole-home steam cleaning",
		Summary:    "Deep extraction cleaning with pH-balanced rinse for living rooms, bedrooms, and hallways.",
		Highlights: []string{"Traffic lane removal", "Fabric protectant", "Fast dry"},
		Icon:       "sparkles",
	}}
}

// Steps is the default process step list.
func Steps() []models.ProcessStep {
	return []models.ProcessStep{{
		ID:          "step-1",
		Title:       "Request a quote",
		Description: "Share square footage, fiber type, and any pet notes.",
	}}
}

// Testimonials is the default testimonial list.
func Testimonials() []models.Testimonial {
	return []models.Testimonial{{
		ID:           "testimonial-1",
		Quote:        "They removed three-year-old pet stains and left our home smelling neutral, not perfumey.",
		CustomerName: "Vanessa Ortiz",
		Location:     "South Austin",
		ServiceTitle: "Pet treatment + carpet refresh",
	}}
}

// Gallery is the default gallery: a single featured project.
func Gallery() []models.GalleryEntry {
	return []models.GalleryEntry{{
		ID:            "gallery-1",
		Title:         "Modern living room",
		Location:      "Austin",
		AfterImageURL: FeaturedImageURL,
		Notes:         []string{"Removed staining and restored bright neutrals."},
	}}
}

// Posts is the default blog post list.
func Posts() []models.BlogPost {
	minutes := 5.0
	return []models.BlogPost{{
		ID:          "post-1",
		Title:       "How to prep your carpets before the crew arrives",
		Excerpt:     "A 15-minute checklist to help us clean faster and protect your belongings.",
		Category:    "Maintenance",
		ReadingTime: &minutes,
	}}
}

// Reviews is empty: the reviews section is hidden rather than showing
// invented reviews.
func Reviews() []models.GoogleReview {
	return []models.GoogleReview{}
}
