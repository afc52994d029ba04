package paper

import (
	"reflect"
	"strings"
	"testing"
	"time"
)

var testNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func TestSlug(t *testing.T) {
	cases := []struct {
		filename string
		want     string
	}{
		{"alpha.md", "alpha"},
		{"papers/nested/beta.md", "beta"},
		{`windows\style\gamma.md`, "gamma"},
		{"no-extension", "no-extension"},
	}
	for _, c := range cases {
		if got := Slug(c.filename); got != c.want {
			t.Errorf("Slug(%q) = %q, want %q", c.filename, got, c.want)
		}
	}
}

func TestNormalize_FullMetadataRoundTrip(t *testing.T) {
	meta := Metadata{
		Title:       "Vector Compression",
		Status:      "Working",
		Tags:        []string{"Storage", "ML"},
		Authors:     []Author{{Name: "R. Chen", Affiliation: "Example Lab"}},
		LastUpdated: "2025-03-10",
		GitHub:      "https://github.com/example/vc",
		PDF:         "#",
	}
	body := "## Summary\n\nShort summary.\n\n## Abstract\n\nThe abstract.\n\n## Table of Contents\n\n1. **Intro**\n2. **Results**\n"

	doc, warnings := Normalize("papers/vector-compression.md", meta, body, testNow)

	if len(warnings) != 0 {
		t.Fatalf("unexpected warnings: %#v", warnings)
	}
	if doc.Slug != "vector-compression" {
		t.Errorf("Slug = %q", doc.Slug)
	}
	if doc.Title != "Vector Compression" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.Status != StatusWorking {
		t.Errorf("Status = %q, want %q", doc.Status, StatusWorking)
	}
	if doc.Summary != "Short summary." {
		t.Errorf("Summary = %q", doc.Summary)
	}
	if doc.Abstract != "The abstract." {
		t.Errorf("Abstract = %q", doc.Abstract)
	}
	if want := []string{"Intro", "Results"}; !reflect.DeepEqual(doc.TOC, want) {
		t.Errorf("TOC = %#v, want %#v", doc.TOC, want)
	}
	if doc.LastUpdated != "2025-03-10" {
		t.Errorf("LastUpdated = %q", doc.LastUpdated)
	}
	if doc.GitHub != "https://github.com/example/vc" {
		t.Errorf("GitHub = %q", doc.GitHub)
	}
	if doc.PDF != "" {
		t.Errorf("placeholder PDF link survived: %q", doc.PDF)
	}
	if doc.Content != body {
		t.Errorf("Content was altered")
	}
}

func TestNormalize_EmptyMetadataDefaults(t *testing.T) {
	doc, warnings := Normalize("bare.md", Metadata{}, "just a body\n", testNow)

	if doc.Title != "bare" {
		t.Errorf("Title = %q, want slug fallback", doc.Title)
	}
	if doc.Status != StatusUnknown {
		t.Errorf("Status = %q, want %q", doc.Status, StatusUnknown)
	}
	if doc.Tags == nil || len(doc.Tags) != 0 {
		t.Errorf("Tags = %#v, want empty non-nil slice", doc.Tags)
	}
	if doc.Authors == nil || len(doc.Authors) != 0 {
		t.Errorf("Authors = %#v, want empty non-nil slice", doc.Authors)
	}
	if doc.TOC == nil || len(doc.TOC) != 0 {
		t.Errorf("TOC = %#v, want empty non-nil slice", doc.TOC)
	}
	if doc.Summary != NoSummary {
		t.Errorf("Summary = %q, want %q", doc.Summary, NoSummary)
	}
	if doc.LastUpdated != testNow.Format(time.RFC3339) {
		t.Errorf("LastUpdated = %q, want build time", doc.LastUpdated)
	}

	// title, status, tags
	if len(warnings) != 3 {
		t.Fatalf("warnings = %#v, want 3", warnings)
	}
}

func TestNormalize_UnrecognizedStatus(t *testing.T) {
	doc, warnings := Normalize("w.md", Metadata{Title: "W", Status: "shipped", Tags: []string{}}, "", testNow)

	if doc.Status != StatusUnknown {
		t.Fatalf("Status = %q, want %q", doc.Status, StatusUnknown)
	}
	found := false
	for _, w := range warnings {
		if strings.Contains(w, "unrecognized status") {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected unrecognized status warning, got %#v", warnings)
	}
}

func TestNormalize_StatusIsCaseInsensitive(t *testing.T) {
	doc, _ := Normalize("c.md", Metadata{Title: "C", Status: "COMPLETED", Tags: []string{}}, "", testNow)
	if doc.Status != StatusCompleted {
		t.Fatalf("Status = %q, want %q", doc.Status, StatusCompleted)
	}
}

func TestNormalize_MetadataTOCFallback(t *testing.T) {
	meta := Metadata{Title: "T", Status: "idea", Tags: []string{}, TOC: []string{"From Meta"}}
	doc, _ := Normalize("t.md", meta, "no toc section here\n", testNow)
	if !reflect.DeepEqual(doc.TOC, []string{"From Meta"}) {
		t.Fatalf("TOC = %#v, want metadata fallback", doc.TOC)
	}
}

func TestUpdatedAt_AcceptedLayouts(t *testing.T) {
	cases := []struct {
		value string
		zero  bool
	}{
		{"2025-03-10T08:30:00Z", false},
		{"2025-03-10 08:30", false},
		{"2025-03-10", false},
		{"March 10, 2025", true},
		{"", true},
	}
	for _, c := range cases {
		d := Document{LastUpdated: c.value}
		if got := d.UpdatedAt().IsZero(); got != c.zero {
			t.Errorf("UpdatedAt(%q).IsZero() = %v, want %v", c.value, got, c.zero)
		}
	}
}
