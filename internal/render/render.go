// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// Package render executes the public page templates. Each page template is
// paired with the shared layout and rendered into a buffer, so a template
// error never produces a half-written response.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"math"
	"strings"
	"time"

	"flawless/internal/markdown"
	"flawless/internal/models"
	"flawless/internal/slug"
)

//go:embed templates/*.html
var templateFS embed.FS

// Page names.
const (
	PageHome    = "home"
	PageGallery = "gallery"
	PageBlog    = "blog"
)

var pages = []string{PageHome, PageGallery, PageBlog}

// Site renders the public pages.
type Site struct {
	templates map[string]*template.Template
}

// New parses every page template with the layout.
func New() (*Site, error) {
	s := &Site{templates: make(map[string]*template.Template)}

	for _, name := range pages {
		tmpl, err := template.New("layout.html").Funcs(funcMap).ParseFS(
			templateFS, "templates/layout.html", "templates/"+name+".html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", name, err)
		}
		s.templates[name] = tmpl
	}

	return s, nil
}

// Render executes the named page into w. Nothing is written when execution
// fails.
func (s *Site) Render(w io.Writer, page string, data any) error {
	html, err := s.Bytes(page, data)
	if err != nil {
		return err
	}
	_, err = w.Write(html)
	return err
}

// Bytes executes the named page and returns the document.
func (s *Site) Bytes(page string, data any) ([]byte, error) {
	tmpl, ok := s.templates[page]
	if !ok {
		return nil, fmt.Errorf("template %q not found", page)
	}
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout.html", data); err != nil {
		return nil, fmt.Errorf("execute template %s: %w", page, err)
	}
	return buf.Bytes(), nil
}

var funcMap = template.FuncMap{
	"markdown": markdown.Safe,
	"slug":     slug.Generate,
	"stars":    stars,
	"join":     strings.Join,
	"year":     func() int { return time.Now().Year() },
	"date":     formatDate,
	"minutes":  minutes,
	"tel":      tel,
}

// stars renders a rating as filled stars. The rating is shown as received,
// rounded to a whole star; negative ratings show none.
func stars(rating float64) string {
	n := int(math.Round(rating))
	if n <= 0 {
		return ""
	}
	return strings.Repeat("★", n)
}

// tel returns the settings phone link. tel: is not on html/template's list
// of safe URL schemes, so the built link is marked trusted here.
func tel(s *models.SiteSettings) template.URL {
	return template.URL(s.TelHref())
}

// formatDate renders a store date as "January 2, 2006", or "" when the value
// is missing or malformed.
func formatDate(s string) string {
	t := models.ParseTime(s)
	if t.IsZero() {
		return ""
	}
	return t.Format("January 2, 2006")
}

// minutes renders an optional reading time.
func minutes(m *float64) string {
	if m == nil || *m <= 0 {
		return ""
	}
	return fmt.Sprintf("%d min read", int(math.Ceil(*m)))
}
