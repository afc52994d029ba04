package corpus

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/open-pages/openpages/internal/paper"
	"github.com/open-pages/openpages/internal/source"
)

// memSource delivers a fixed file set, for tests.
type memSource struct {
	files []source.File
	err   error
}

func (m *memSource) Files() ([]source.File, error) {
	return m.files, m.err
}

func mdFile(name, data string) source.File {
	return source.File{Name: name, Data: []byte(data)}
}

func quietBuilder() *Builder {
	return &Builder{
		Quiet: true,
		Now:   func() time.Time { return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC) },
	}
}

const alphaDoc = `---
title: Alpha
status: working
tags:
  - X
---

## Summary

Alpha summary.
`

func TestBuild_MalformedDocExcludedBatchContinues(t *testing.T) {
	src := &memSource{files: []source.File{
		mdFile("alpha.md", alphaDoc),
		mdFile("broken.md", "---\ntitle: Broken\nno closing fence\n"),
	}}

	res, err := quietBuilder().Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	if res.Corpus.Len() != 1 {
		t.Fatalf("corpus size = %d, want 1", res.Corpus.Len())
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %#v, want 1", res.Errors)
	}
	if res.Errors[0].Filename != "broken.md" {
		t.Errorf("error filename = %q", res.Errors[0].Filename)
	}
	if !errors.Is(res.Errors[0], paper.ErrMalformedFrontmatter) {
		t.Errorf("error = %v, want ErrMalformedFrontmatter", res.Errors[0])
	}
	if want := []string{"X"}; !reflect.DeepEqual(res.Corpus.Categories(), want) {
		t.Errorf("categories = %#v, want %#v", res.Corpus.Categories(), want)
	}

	stats := res.Stats
	if stats.TotalFiles != 2 || stats.Ingested != 1 || stats.Failed != 1 {
		t.Errorf("stats = %+v", stats)
	}
}

func TestBuild_SourceFileErrorWrapped(t *testing.T) {
	src := &memSource{files: []source.File{
		{Name: "locked.md", Err: errors.New("permission denied")},
		mdFile("alpha.md", alphaDoc),
	}}

	res, err := quietBuilder().Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %#v, want 1", res.Errors)
	}
	if !errors.Is(res.Errors[0], paper.ErrSourceUnavailable) {
		t.Fatalf("error = %v, want ErrSourceUnavailable", res.Errors[0])
	}
	if res.Corpus.Len() != 1 {
		t.Fatalf("corpus size = %d, want 1", res.Corpus.Len())
	}
}

func TestBuild_SourceFailureIsFatal(t *testing.T) {
	src := &memSource{err: errors.New("no such directory")}
	if _, err := quietBuilder().Build(src); err == nil {
		t.Fatalf("expected error for unavailable source")
	}
}

func TestBuild_SlugCollision(t *testing.T) {
	src := &memSource{files: []source.File{
		mdFile("a/dup.md", "---\ntitle: First\nstatus: idea\ntags: []\n---\nbody\n"),
		mdFile("b/dup.md", "---\ntitle: Second\nstatus: idea\ntags: []\n---\nbody\n"),
	}}

	res, err := quietBuilder().Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Corpus.Len() != 1 {
		t.Fatalf("corpus size = %d, want 1", res.Corpus.Len())
	}
	if len(res.Errors) != 1 || !errors.Is(res.Errors[0], ErrSlugCollision) {
		t.Fatalf("errors = %#v, want one ErrSlugCollision", res.Errors)
	}

	// First file wins.
	doc, ok := res.Corpus.BySlug("dup")
	if !ok || doc.Title != "First" {
		t.Fatalf("BySlug(dup) = %+v, %v", doc, ok)
	}
}

func TestBuild_CategoriesAreByteSortedCaseSensitive(t *testing.T) {
	src := &memSource{files: []source.File{
		mdFile("one.md", "---\ntitle: One\nstatus: idea\ntags:\n  - b\n  - A\n---\n"),
		mdFile("two.md", "---\ntitle: Two\nstatus: idea\ntags:\n  - C\n  - A\n---\n"),
	}}

	res, err := quietBuilder().Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	want := []string{"A", "C", "b"}
	if got := res.Corpus.Categories(); !reflect.DeepEqual(got, want) {
		t.Fatalf("categories = %#v, want %#v", got, want)
	}
}

func TestBuild_DocumentsSortedByTitle(t *testing.T) {
	src := &memSource{files: []source.File{
		mdFile("z.md", "---\ntitle: Zeta\nstatus: idea\ntags: []\n---\n"),
		mdFile("a.md", "---\ntitle: alpha\nstatus: idea\ntags: []\n---\n"),
		mdFile("m.md", "---\ntitle: Mid\nstatus: idea\ntags: []\n---\n"),
	}}

	res, err := quietBuilder().Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	var titles []string
	for _, d := range res.Corpus.ListAll() {
		titles = append(titles, d.Title)
	}
	// Collation is case-insensitive for ordering purposes.
	want := []string{"alpha", "Mid", "Zeta"}
	if !reflect.DeepEqual(titles, want) {
		t.Fatalf("titles = %#v, want %#v", titles, want)
	}
}

type failRenderer struct{}

func (failRenderer) Render(string) (string, error) { return "", errors.New("render boom") }

func TestBuild_RenderFailureExcludesDocument(t *testing.T) {
	b := quietBuilder()
	b.Renderer = failRenderer{}

	src := &memSource{files: []source.File{mdFile("alpha.md", alphaDoc)}}
	res, err := b.Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Corpus.Len() != 0 {
		t.Fatalf("corpus size = %d, want 0", res.Corpus.Len())
	}
	if len(res.Errors) != 1 {
		t.Fatalf("errors = %#v, want 1", res.Errors)
	}
}

func TestBuild_NoFrontmatterStillIngested(t *testing.T) {
	src := &memSource{files: []source.File{
		mdFile("plain.md", "# Plain\n\njust markdown\n"),
	}}

	res, err := quietBuilder().Build(src)
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if res.Corpus.Len() != 1 {
		t.Fatalf("corpus size = %d, want 1", res.Corpus.Len())
	}
	doc, _ := res.Corpus.BySlug("plain")
	if doc.Status != paper.StatusUnknown {
		t.Errorf("Status = %q, want unknown", doc.Status)
	}
	if doc.Summary != paper.NoSummary {
		t.Errorf("Summary = %q, want sentinel", doc.Summary)
	}
	if res.Stats.Warnings == 0 {
		t.Errorf("expected warnings for missing frontmatter fields")
	}
}
