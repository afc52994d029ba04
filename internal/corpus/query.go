package corpus

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/open-pages/openpages/internal/paper"
)

// SortKey selects the ordering of query results.
type SortKey string

// Supported sort keys. An empty or unrecognized key falls back to
// SortTitleAsc.
const (
	SortTitleAsc  SortKey = "title-asc"
	SortTitleDesc SortKey = "title-desc"
	SortDateDesc  SortKey = "date-desc"
	SortDateAsc   SortKey = "date-asc"
)

// ParseSortKey maps a user-supplied string to a SortKey, defaulting to
// title-ascending.
func ParseSortKey(s string) SortKey {
	switch SortKey(s) {
	case SortTitleDesc, SortDateDesc, SortDateAsc:
		return SortKey(s)
	}
	return SortTitleAsc
}

// FilterSpec is one transient query: all active predicates must hold
// (logical AND). It is reconstructed from UI state on every evaluation and
// never persisted.
type FilterSpec struct {
	Search   string  `json:"search"`
	Category string  `json:"category"`
	Status   string  `json:"status"`
	Sort     SortKey `json:"sort"`
}

// Query evaluates the spec against the full corpus and returns the matching
// documents in the requested order. It is pure and deterministic: the same
// corpus and spec always produce the same ordered result.
func (c *Corpus) Query(spec FilterSpec) []paper.Document {
	var out []paper.Document
	for _, d := range c.docs {
		if matches(d, spec) {
			out = append(out, d)
		}
	}
	sortDocs(out, spec.Sort)
	return out
}

func matches(d paper.Document, spec FilterSpec) bool {
	if spec.Category != "" && !hasTag(d.Tags, spec.Category) {
		return false
	}
	if spec.Status != "" && d.Status != spec.Status {
		return false
	}
	if spec.Search != "" && !matchesSearch(d, spec.Search) {
		return false
	}
	return true
}

// matchesSearch does a case-insensitive substring match against title,
// summary, tags, author names, and author affiliations.
func matchesSearch(d paper.Document, term string) bool {
	term = strings.ToLower(term)
	if strings.Contains(strings.ToLower(d.Title), term) {
		return true
	}
	if strings.Contains(strings.ToLower(d.Summary), term) {
		return true
	}
	for _, t := range d.Tags {
		if strings.Contains(strings.ToLower(t), term) {
			return true
		}
	}
	for _, a := range d.Authors {
		if strings.Contains(strings.ToLower(a.Name), term) {
			return true
		}
		if strings.Contains(strings.ToLower(a.Affiliation), term) {
			return true
		}
	}
	return false
}

// sortDocs orders results in place. Sorts are stable, so documents that
// compare equal keep their corpus (title) order. Documents without a
// parseable lastUpdated carry the zero time and therefore sort as the
// oldest possible value under both date directions.
func sortDocs(docs []paper.Document, key SortKey) {
	switch key {
	case SortTitleDesc:
		coll := collate.New(language.Und)
		sort.SliceStable(docs, func(i, j int) bool {
			return coll.CompareString(docs[j].Title, docs[i].Title) < 0
		})
	case SortDateDesc:
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[j].UpdatedAt().Before(docs[i].UpdatedAt())
		})
	case SortDateAsc:
		sort.SliceStable(docs, func(i, j int) bool {
			return docs[i].UpdatedAt().Before(docs[j].UpdatedAt())
		})
	default:
		coll := collate.New(language.Und)
		sort.SliceStable(docs, func(i, j int) bool {
			return coll.CompareString(docs[i].Title, docs[j].Title) < 0
		})
	}
}
