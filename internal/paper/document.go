// Package paper parses markdown paper sources and normalizes them into
// canonical Document records.
package paper

import (
	"strings"
	"time"
)

// Paper status values. Anything else in frontmatter normalizes to
// StatusUnknown with a warning; documents are never rejected over status.
const (
	StatusWorking   = "working"
	StatusIdea      = "idea"
	StatusCompleted = "completed"
	StatusUnknown   = "unknown"
)

// NoSummary is the sentinel stored when a paper has no "## Summary" section.
const NoSummary = "No summary available"

// Author is one paper author as declared in frontmatter.
type Author struct {
	Name        string `yaml:"name" json:"name"`
	Affiliation string `yaml:"affiliation" json:"affiliation,omitempty"`
}

// Metadata holds the parsed frontmatter fields of a paper source file.
type Metadata struct {
	Title       string   `yaml:"title"`
	Status      string   `yaml:"status"`
	Tags        []string `yaml:"tags"`
	Authors     []Author `yaml:"authors"`
	TOC         []string `yaml:"toc"`
	LastUpdated string   `yaml:"lastUpdated"`
	GitHub      string   `yaml:"github"`
	PDF         string   `yaml:"pdf"`
	Purchase    string   `yaml:"purchase"`
}

// Document is one fully normalized paper. Every field is always present:
// consumers rely on empty-value sentinels instead of checking for missing
// keys. Documents are never mutated after normalization.
type Document struct {
	Slug        string   `json:"slug"`
	Filename    string   `json:"filename"`
	Title       string   `json:"title"`
	Status      string   `json:"status"`
	Tags        []string `json:"tags"`
	Authors     []Author `json:"authors"`
	Summary     string   `json:"summary"`
	Abstract    string   `json:"abstract"`
	TOC         []string `json:"toc"`
	Content     string   `json:"content"`
	HTML        string   `json:"html"`
	LastUpdated string   `json:"lastUpdated"`
	GitHub      string   `json:"github,omitempty"`
	PDF         string   `json:"pdf,omitempty"`
	Purchase    string   `json:"purchase,omitempty"`
}

// updatedFormats are the accepted lastUpdated layouts, tried in order.
var updatedFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04",
	"2006-01-02",
}

// UpdatedAt parses the LastUpdated field. A missing or unparseable value
// yields the zero time, which sorts as older than any real timestamp.
func (d Document) UpdatedAt() time.Time {
	s := strings.TrimSpace(d.LastUpdated)
	if s == "" {
		return time.Time{}
	}
	for _, layout := range updatedFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// HasStatus reports whether s is one of the recognized paper statuses.
func HasStatus(s string) bool {
	switch s {
	case StatusWorking, StatusIdea, StatusCompleted:
		return true
	}
	return false
}

// linkPlaceholders are frontmatter values authors use to mean "no link yet".
// They are suppressed during normalization so no consumer renders them as URLs.
var linkPlaceholders = map[string]bool{
	"#":           true,
	"n/a":         true,
	"tbd":         true,
	"placeholder": true,
}

// realLink returns v unless it is empty or a known placeholder.
func realLink(v string) string {
	v = strings.TrimSpace(v)
	if linkPlaceholders[strings.ToLower(v)] {
		return ""
	}
	return v
}
