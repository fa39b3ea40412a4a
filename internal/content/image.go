// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package content

import (
	"fmt"
	"strings"

	"flawless/internal/models"
)

// ImageBuilder turns image asset references into CDN URLs.
type ImageBuilder struct {
	ProjectID string
	Dataset   string
}

// URL returns the CDN URL for img with automatic format and max fit, or ""
// when the reference is missing or not an image asset. Asset references look
// like "image-<id>-<width>x<height>-<ext>".
func (b ImageBuilder) URL(img *models.SanityImage) string {
	if img == nil || img.Asset == nil {
		return ""
	}
	ref := img.Asset.Ref
	if !strings.HasPrefix(ref, "image-") {
		return ""
	}
	rest := strings.TrimPrefix(ref, "image-")
	i := strings.LastIndexByte(rest, '-')
	if i <= 0 || i == len(rest)-1 {
		return ""
	}
	name, ext := rest[:i], rest[i+1:]
	return fmt.Sprintf("https://cdn.sanity.io/images/%s/%s/%s.%s?auto=format&fit=max",
		b.ProjectID, b.Dataset, name, ext)
}
