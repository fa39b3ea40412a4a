package models

import (
	"encoding/json"
	"testing"
)

func TestBlogPostSlugValue(t *testing.T) {
	var p BlogPost
	if err := json.Unmarshal([]byte(`{"_id":"p1","title":"Pet odor","slug":{"current":"pet-odor"}}`), &p); err != nil {
		t.Fatal(err)
	}
	if p.SlugValue() != "pet-odor" {
		t.Errorf("SlugValue = %q", p.SlugValue())
	}
	if (BlogPost{Title: "x"}).SlugValue() != "" {
		t.Error("missing slug should be empty")
	}
}

func TestBlogPostPublished(t *testing.T) {
	p := BlogPost{PublishedAt: "2026-02-10T09:00:00Z"}
	if got := p.Published(); got.Year() != 2026 || got.Day() != 10 {
		t.Errorf("Published = %v", got)
	}
	if !(BlogPost{PublishedAt: "soon"}).Published().IsZero() {
		t.Error("malformed date should be zero")
	}
}

func TestGoogleReviewRatingAsReceived(t *testing.T) {
	var r GoogleReview
	if err := json.Unmarshal([]byte(`{"_id":"r1","rating":4.5}`), &r); err != nil {
		t.Fatal(err)
	}
	if r.Rating != 4.5 {
		t.Errorf("Rating = %v", r.Rating)
	}
}
