// Package site writes the JSON artifacts the browser UI consumes.
package site

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/open-pages/openpages/internal/corpus"
	"github.com/open-pages/openpages/internal/paper"
)

// Writer emits the generated site data for one built corpus:
//
//	papers.json        full records
//	papers-list.json   light records for the index view
//	categories.json    the derived category set
//	papers/<slug>.json one detail record per paper
//	build-stats.json   ingestion stats and per-document errors
type Writer struct {
	OutDir string
}

// ListEntry is the light per-paper record in papers-list.json.
type ListEntry struct {
	Title       string         `json:"title"`
	Slug        string         `json:"slug"`
	Status      string         `json:"status"`
	Tags        []string       `json:"tags"`
	Summary     string         `json:"summary"`
	LastUpdated string         `json:"lastUpdated"`
	Authors     []paper.Author `json:"authors"`
}

type buildReport struct {
	Stats  corpus.Stats `json:"stats"`
	Errors []errorJSON  `json:"errors"`
}

type errorJSON struct {
	Filename string `json:"filename"`
	Message  string `json:"message"`
}

// Write emits all artifacts. The output directory is created if needed;
// existing files are overwritten in place.
func (w *Writer) Write(res *corpus.Result) error {
	if err := os.MkdirAll(filepath.Join(w.OutDir, "papers"), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	docs := res.Corpus.ListAll()

	if err := w.writeJSON("papers.json", docs); err != nil {
		return err
	}
	if err := w.writeJSON("papers-list.json", listEntries(docs)); err != nil {
		return err
	}
	if err := w.writeJSON("categories.json", res.Corpus.Categories()); err != nil {
		return err
	}
	for _, d := range docs {
		if err := w.writeJSON(filepath.Join("papers", d.Slug+".json"), d); err != nil {
			return err
		}
	}

	report := buildReport{Stats: res.Stats, Errors: make([]errorJSON, 0, len(res.Errors))}
	for _, e := range res.Errors {
		report.Errors = append(report.Errors, errorJSON{Filename: e.Filename, Message: e.Err.Error()})
	}
	return w.writeJSON("build-stats.json", report)
}

func listEntries(docs []paper.Document) []ListEntry {
	out := make([]ListEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, ListEntry{
			Title:       d.Title,
			Slug:        d.Slug,
			Status:      d.Status,
			Tags:        d.Tags,
			Summary:     d.Summary,
			LastUpdated: d.LastUpdated,
			Authors:     d.Authors,
		})
	}
	return out
}

func (w *Writer) writeJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", name, err)
	}
	data = append(data, '\n')
	path := filepath.Join(w.OutDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}
