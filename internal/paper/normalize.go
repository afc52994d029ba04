package paper

import (
	"path"
	"strconv"
	"strings"
	"time"
)

// Slug derives a document's unique identifier from its source filename:
// the base name with the extension stripped.
func Slug(filename string) string {
	base := path.Base(strings.ReplaceAll(filename, "\\", "/"))
	return strings.TrimSuffix(base, path.Ext(base))
}

// Normalize merges frontmatter metadata and the markdown body into one
// canonical Document. Missing fields resolve through a fixed precedence
// chain (explicit metadata > derived section > computed default) and are
// never fatal; advisory gaps come back as warnings.
func Normalize(filename string, meta Metadata, body string, now time.Time) (Document, []string) {
	var warnings []string

	slug := Slug(filename)
	sections := ExtractSections(body)

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = slug
		warnings = append(warnings, "missing title in frontmatter")
	}

	status := strings.ToLower(strings.TrimSpace(meta.Status))
	switch {
	case status == "":
		status = StatusUnknown
		warnings = append(warnings, "missing status in frontmatter")
	case !HasStatus(status):
		warnings = append(warnings, "unrecognized status "+strconv.Quote(status))
		status = StatusUnknown
	}

	tags := meta.Tags
	if tags == nil {
		tags = []string{}
		warnings = append(warnings, "missing tags in frontmatter")
	}

	summary, ok := sections["summary"]
	if !ok || summary == "" {
		summary = NoSummary
	}

	toc := ExtractTOC(sections)
	if len(toc) == 0 {
		toc = meta.TOC
	}
	if toc == nil {
		toc = []string{}
	}

	lastUpdated := strings.TrimSpace(meta.LastUpdated)
	if lastUpdated == "" {
		lastUpdated = now.UTC().Format(time.RFC3339)
	}

	authors := meta.Authors
	if authors == nil {
		authors = []Author{}
	}

	return Document{
		Slug:        slug,
		Filename:    filename,
		Title:       title,
		Status:      status,
		Tags:        tags,
		Authors:     authors,
		Summary:     summary,
		Abstract:    sections["abstract"],
		TOC:         toc,
		Content:     body,
		LastUpdated: lastUpdated,
		GitHub:      realLink(meta.GitHub),
		PDF:         realLink(meta.PDF),
		Purchase:    realLink(meta.Purchase),
	}, warnings
}
