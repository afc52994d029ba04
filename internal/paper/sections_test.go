package paper

import (
	"reflect"
	"testing"
)

func TestExtractSections_NamesAreLowercased(t *testing.T) {
	body := `Intro text before any section.

## Summary

First summary line.
Second summary line.

## Abstract

The abstract.
`
	got := ExtractSections(body)

	if got["summary"] != "First summary line.\nSecond summary line." {
		t.Errorf("summary = %q", got["summary"])
	}
	if got["abstract"] != "The abstract." {
		t.Errorf("abstract = %q", got["abstract"])
	}
	if _, ok := got["Summary"]; ok {
		t.Errorf("section names should be lowercased")
	}
}

func TestExtractSections_IgnoresHeadingsInCodeFences(t *testing.T) {
	body := "## Summary\n\nReal summary.\n\n```\n## Not A Section\nfenced content\n```\n\nstill summary\n"
	got := ExtractSections(body)

	if _, ok := got["not a section"]; ok {
		t.Fatalf("fenced heading split a section: %#v", got)
	}
	if got["summary"] == "" {
		t.Fatalf("summary missing: %#v", got)
	}
}

func TestExtractSections_H3DoesNotSplit(t *testing.T) {
	body := "## Summary\n\ntext\n\n### Subheading\n\nmore text\n"
	got := ExtractSections(body)

	if len(got) != 1 {
		t.Fatalf("expected 1 section, got %d: %#v", len(got), got)
	}
	if got["summary"] != "text\n\n### Subheading\n\nmore text" {
		t.Errorf("summary = %q", got["summary"])
	}
}

func TestExtractTOC_TopLevelEntriesOnly(t *testing.T) {
	body := `## Table of Contents

1. **Introduction**
2. **Methods** and more
   1. **Nested Entry**
3. Plain entry without bold
10. **Conclusion**
`
	sections := ExtractSections(body)
	got := ExtractTOC(sections)

	want := []string{"Introduction", "Methods", "Conclusion"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("ExtractTOC = %#v, want %#v", got, want)
	}
}

func TestExtractTOC_MissingSectionYieldsNil(t *testing.T) {
	sections := ExtractSections("## Summary\n\ntext\n")
	if got := ExtractTOC(sections); got != nil {
		t.Fatalf("ExtractTOC = %#v, want nil", got)
	}
}
