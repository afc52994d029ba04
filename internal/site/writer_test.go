package site

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/open-pages/openpages/internal/corpus"
	"github.com/open-pages/openpages/internal/source"
)

type memSource struct {
	files []source.File
}

func (m *memSource) Files() ([]source.File, error) { return m.files, nil }

func buildResult(t *testing.T) *corpus.Result {
	t.Helper()

	b := &corpus.Builder{
		Quiet: true,
		Now:   func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
	src := &memSource{files: []source.File{
		{Name: "alpha.md", Data: []byte("---\ntitle: Alpha\nstatus: working\ntags:\n  - X\n---\n\n## Summary\n\nAlpha summary.\n")},
		{Name: "broken.md", Data: []byte("---\ntitle: Broken\nno closing fence\n")},
	}}
	res, err := b.Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return res
}

func readJSON(t *testing.T, path string, v any) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read %s: %v", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		t.Fatalf("unmarshal %s: %v", path, err)
	}
}

func TestWriter_EmitsAllArtifacts(t *testing.T) {
	out := t.TempDir()
	res := buildResult(t)

	w := &Writer{OutDir: out}
	if err := w.Write(res); err != nil {
		t.Fatalf("Write: %v", err)
	}

	var papers []map[string]any
	readJSON(t, filepath.Join(out, "papers.json"), &papers)
	if len(papers) != 1 {
		t.Fatalf("papers.json = %d entries, want 1", len(papers))
	}
	if papers[0]["slug"] != "alpha" {
		t.Errorf("papers.json slug = %v", papers[0]["slug"])
	}

	var list []ListEntry
	readJSON(t, filepath.Join(out, "papers-list.json"), &list)
	if len(list) != 1 || list[0].Title != "Alpha" {
		t.Fatalf("papers-list.json = %#v", list)
	}

	var cats []string
	readJSON(t, filepath.Join(out, "categories.json"), &cats)
	if len(cats) != 1 || cats[0] != "X" {
		t.Fatalf("categories.json = %#v", cats)
	}

	var detail map[string]any
	readJSON(t, filepath.Join(out, "papers", "alpha.json"), &detail)
	if detail["title"] != "Alpha" {
		t.Fatalf("papers/alpha.json = %#v", detail)
	}

	var report struct {
		Stats  corpus.Stats `json:"stats"`
		Errors []struct {
			Filename string `json:"filename"`
			Message  string `json:"message"`
		} `json:"errors"`
	}
	readJSON(t, filepath.Join(out, "build-stats.json"), &report)
	if report.Stats.Ingested != 1 || report.Stats.Failed != 1 {
		t.Fatalf("build-stats.json stats = %+v", report.Stats)
	}
	if len(report.Errors) != 1 || report.Errors[0].Filename != "broken.md" {
		t.Fatalf("build-stats.json errors = %#v", report.Errors)
	}
}

func TestWriter_OverwritesPreviousBuild(t *testing.T) {
	out := t.TempDir()
	res := buildResult(t)

	w := &Writer{OutDir: out}
	if err := w.Write(res); err != nil {
		t.Fatalf("first Write: %v", err)
	}
	if err := w.Write(res); err != nil {
		t.Fatalf("second Write: %v", err)
	}
}
