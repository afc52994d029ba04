package corpus

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/open-pages/openpages/internal/paper"
	"github.com/open-pages/openpages/internal/render"
	"github.com/open-pages/openpages/internal/source"
)

// ErrSlugCollision means two source filenames reduce to the same slug. The
// first document keeps the slug; later ones are excluded with this error
// instead of silently overwriting.
var ErrSlugCollision = errors.New("slug collision")

// IngestError is one document that could not be ingested. The batch always
// continues past it.
type IngestError struct {
	Filename string
	Err      error
}

func (e *IngestError) Error() string { return e.Filename + ": " + e.Err.Error() }
func (e *IngestError) Unwrap() error { return e.Err }

// Stats summarizes one ingestion pass.
type Stats struct {
	TotalFiles int    `json:"total_files"`
	Ingested   int    `json:"ingested"`
	Failed     int    `json:"failed"`
	Warnings   int    `json:"warnings"`
	Categories int    `json:"categories"`
	Timestamp  string `json:"timestamp"`
}

// Result is the outcome of one ingestion pass: the corpus that was built
// plus every per-document error encountered along the way.
type Result struct {
	Corpus *Corpus
	Errors []*IngestError
	Stats  Stats
}

// Builder runs the full ingestion pipeline: split frontmatter, extract
// sections, normalize, render, then assemble the sorted corpus.
type Builder struct {
	Renderer render.Renderer  // nil leaves Document.HTML empty
	Now      func() time.Time // defaults to time.Now
	Quiet    bool             // suppress per-document stderr warnings
}

// Build ingests every file the source delivers. One malformed document
// never fails the batch: hard failures are collected into Result.Errors and
// the rest of the corpus builds normally.
func (b *Builder) Build(src source.Source) (*Result, error) {
	now := time.Now
	if b.Now != nil {
		now = b.Now
	}

	files, err := src.Files()
	if err != nil {
		return nil, fmt.Errorf("list papers: %w", err)
	}

	var docs []paper.Document
	var ingestErrs []*IngestError
	warningCount := 0
	slugOwner := make(map[string]string)

	for _, f := range files {
		if f.Err != nil {
			ingestErrs = append(ingestErrs, &IngestError{
				Filename: f.Name,
				Err:      fmt.Errorf("%w: %v", paper.ErrSourceUnavailable, f.Err),
			})
			continue
		}

		meta, body, hasMeta, err := paper.Split(string(f.Data))
		if err != nil {
			ingestErrs = append(ingestErrs, &IngestError{Filename: f.Name, Err: err})
			continue
		}
		if !hasMeta {
			b.warnf(f.Name, "no frontmatter found; treating entire file as body")
			warningCount++
		}

		doc, warnings := paper.Normalize(f.Name, meta, body, now())
		for _, w := range warnings {
			b.warnf(f.Name, w)
		}
		warningCount += len(warnings)

		if owner, taken := slugOwner[doc.Slug]; taken {
			ingestErrs = append(ingestErrs, &IngestError{
				Filename: f.Name,
				Err:      fmt.Errorf("%w: slug %q already taken by %s", ErrSlugCollision, doc.Slug, owner),
			})
			continue
		}
		slugOwner[doc.Slug] = f.Name

		if b.Renderer != nil {
			html, err := b.Renderer.Render(doc.Content)
			if err != nil {
				ingestErrs = append(ingestErrs, &IngestError{
					Filename: f.Name,
					Err:      fmt.Errorf("render html: %w", err),
				})
				delete(slugOwner, doc.Slug)
				continue
			}
			doc.HTML = html
		}

		docs = append(docs, doc)
	}

	c := assemble(docs)
	return &Result{
		Corpus: c,
		Errors: ingestErrs,
		Stats: Stats{
			TotalFiles: len(files),
			Ingested:   c.Len(),
			Failed:     len(ingestErrs),
			Warnings:   warningCount,
			Categories: len(c.categories),
			Timestamp:  now().UTC().Format(time.RFC3339),
		},
	}, nil
}

func (b *Builder) warnf(filename, msg string) {
	if b.Quiet {
		return
	}
	fmt.Fprintf(os.Stderr, "  [WARN] %s: %s\n", filename, msg)
}

// assemble sorts documents by title and derives the category set. The title
// sort is locale-aware and stable, so papers with identical titles keep
// their encounter order. Categories stay case-sensitive and byte-sorted.
func assemble(docs []paper.Document) *Corpus {
	coll := collate.New(language.Und)
	sort.SliceStable(docs, func(i, j int) bool {
		return coll.CompareString(docs[i].Title, docs[j].Title) < 0
	})

	bySlug := make(map[string]int, len(docs))
	tagSet := make(map[string]bool)
	for i, d := range docs {
		bySlug[d.Slug] = i
		for _, t := range d.Tags {
			tagSet[t] = true
		}
	}

	categories := make([]string, 0, len(tagSet))
	for t := range tagSet {
		categories = append(categories, t)
	}
	sort.Strings(categories)

	return &Corpus{docs: docs, bySlug: bySlug, categories: categories}
}
