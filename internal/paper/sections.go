package paper

import (
	"regexp"
	"strings"
)

// Sections maps lowercased H2 heading names to their trimmed body text.
type Sections map[string]string

// tocSection is the heading whose content holds table-of-contents entries.
const tocSection = "table of contents"

// ExtractSections scans the body line by line for "## " headings. Each
// heading opens a named section that collects every line until the next H2
// heading or end of body. The scanner is a two-state machine (outside a
// section / inside a named section) and ignores headings inside fenced code
// blocks so example markdown in a paper cannot split its own sections.
func ExtractSections(body string) Sections {
	sections := make(Sections)

	var name string
	var content []string
	inFence := false

	flush := func() {
		if name != "" {
			sections[name] = strings.TrimSpace(strings.Join(content, "\n"))
		}
	}

	for _, line := range strings.Split(body, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
		}
		if !inFence && strings.HasPrefix(line, "## ") {
			flush()
			name = strings.ToLower(strings.TrimSpace(line[3:]))
			content = nil
			continue
		}
		if name != "" {
			content = append(content, line)
		}
	}
	flush()

	return sections
}

// tocEntry matches a top-level numbered, bold-emphasized TOC line, e.g.
// "1. **Introduction**". Indented sub-bullets never match because the
// numeral must start the line.
var tocEntry = regexp.MustCompile(`^\d+\.\s+\*\*(.+?)\*\*`)

// ExtractTOC returns the ordered bold titles of the numbered entries in the
// "Table of Contents" section. A missing section yields nil, not an error.
func ExtractTOC(sections Sections) []string {
	text, ok := sections[tocSection]
	if !ok {
		return nil
	}

	var entries []string
	for _, line := range strings.Split(text, "\n") {
		if m := tocEntry.FindStringSubmatch(line); m != nil {
			entries = append(entries, m[1])
		}
	}
	return entries
}
