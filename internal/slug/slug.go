// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package slug turns titles into URL and anchor fragments.
package slug

import (
	"regexp"
	"strings"
)

var (
	// disallowed matches anything that isn't a lowercase letter, digit, space or hyphen.
	disallowed = regexp.MustCompile(`[^a-z0-9\s-]`)
	// separators collapses runs of whitespace and hyphens into one hyphen.
	separators = regexp.MustCompile(`[\s-]+`)
)

// Generate creates a URL-friendly slug from s.
// Example: "Pet Stain Removal 101" → "pet-stain-removal-101"
func Generate(s string) string {
	out := strings.ToLower(strings.TrimSpace(s))
	out = disallowed.ReplaceAllString(out, "")
	out = separators.ReplaceAllString(out, "-")
	return strings.Trim(out, "-")
}

// Or returns stored when it is set and otherwise derives a slug from title.
// Blog posts may reach the site before an editor generates their slug.
func Or(stored, title string) string {
	if s := strings.TrimSpace(stored); s != "" {
		return s
	}
	return Generate(title)
}
