// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package markdown

import (
	"strings"
	"testing"
)

func TestToHTML(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		contains string
	}{
		{"paragraph", "Fast dry", "<p>Fast dry</p>"},
		{"emphasis", "**pH-balanced** rinse", "<strong>pH-balanced</strong>"},
		{"strikethrough", "~~sticky~~", "<del>sticky</del>"},
		{"link", "[Book](#contact)", `<a href="#contact">Book</a>`},
		{"autolink", "see https://example.com", `<a href="https://example.com">`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToHTML(tt.input)
			if err != nil {
				t.Fatalf("ToHTML: %v", err)
			}
			if !strings.Contains(got, tt.contains) {
				t.Errorf("ToHTML(%q) = %q, want it to contain %q", tt.input, got, tt.contains)
			}
		})
	}
}

func TestToHTMLDropsRawHTML(t *testing.T) {
	got, err := ToHTML(`<script>alert(1)</script>`)
	if err != nil {
		t.Fatalf("ToHTML: %v", err)
	}
	if strings.Contains(got, "<script>") {
		t.Errorf("raw HTML passed through: %q", got)
	}
}

func TestSafe(t *testing.T) {
	if got := string(Safe("*clean*")); !strings.Contains(got, "<em>clean</em>") {
		t.Errorf("Safe = %q", got)
	}
}
