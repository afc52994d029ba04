// Package corpus builds the immutable paper corpus and answers filter,
// sort, and search queries over it.
package corpus

import (
	"github.com/open-pages/openpages/internal/paper"
)

// Corpus is the complete set of normalized papers from one ingestion pass,
// title-sorted, plus the derived category set. It is immutable after
// construction: rebuilds produce a new Corpus and publish it atomically.
type Corpus struct {
	docs       []paper.Document
	bySlug     map[string]int
	categories []string
}

// Empty returns a corpus with no documents. Queries over it are valid and
// yield empty results.
func Empty() *Corpus {
	return &Corpus{bySlug: map[string]int{}}
}

// Len returns the number of documents.
func (c *Corpus) Len() int {
	return len(c.docs)
}

// ListAll returns every document in title order.
func (c *Corpus) ListAll() []paper.Document {
	out := make([]paper.Document, len(c.docs))
	copy(out, c.docs)
	return out
}

// Categories returns the derived category set: the union of all document
// tags, deduplicated and byte-sorted. Tags differing only in case are
// distinct categories.
func (c *Corpus) Categories() []string {
	out := make([]string, len(c.categories))
	copy(out, c.categories)
	return out
}

// BySlug looks up one document by its slug.
func (c *Corpus) BySlug(slug string) (paper.Document, bool) {
	i, ok := c.bySlug[slug]
	if !ok {
		return paper.Document{}, false
	}
	return c.docs[i], true
}

// ByCategory returns the documents whose tags contain the exact category
// string, in title order.
func (c *Corpus) ByCategory(category string) []paper.Document {
	var out []paper.Document
	for _, d := range c.docs {
		if hasTag(d.Tags, category) {
			out = append(out, d)
		}
	}
	return out
}

func hasTag(tags []string, want string) bool {
	for _, t := range tags {
		if t == want {
			return true
		}
	}
	return false
}
