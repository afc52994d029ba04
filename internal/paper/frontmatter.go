package paper

import (
	"errors"
	"fmt"
	"strings"

	"github.com/adrg/frontmatter"
)

// Ingestion errors. Both exclude the affected document from the corpus;
// the batch always continues.
var (
	// ErrMalformedFrontmatter means an opening delimiter was found but no
	// closing delimiter followed.
	ErrMalformedFrontmatter = errors.New("frontmatter: missing closing delimiter")

	// ErrDecode means the delimited block is not a valid YAML mapping.
	ErrDecode = errors.New("frontmatter: invalid metadata block")

	// ErrSourceUnavailable means the raw-document collaborator failed to
	// deliver the file's bytes.
	ErrSourceUnavailable = errors.New("source unavailable")
)

const delimiter = "---"

// Split separates a raw paper into frontmatter metadata and markdown body.
//
// A document without an opening delimiter is not an error: the metadata is
// empty and the whole input is the body (hasMeta is false so callers can
// warn). An opening delimiter without a closing one is a hard error
// (ErrMalformedFrontmatter), as is an undecodable metadata block (ErrDecode).
func Split(raw string) (meta Metadata, body string, hasMeta bool, err error) {
	content := strings.TrimPrefix(raw, "\ufeff")

	if !isDelimiter(firstLine(content)) {
		return Metadata{}, content, false, nil
	}
	if !hasClosingDelimiter(content) {
		return Metadata{}, "", true, ErrMalformedFrontmatter
	}

	rest, err := frontmatter.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return Metadata{}, "", true, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	return meta, string(rest), true, nil
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func isDelimiter(line string) bool {
	return strings.TrimRight(line, " \t\r") == delimiter
}

// hasClosingDelimiter scans the lines after the opening delimiter for a
// matching closing line.
func hasClosingDelimiter(content string) bool {
	lines := strings.Split(content, "\n")
	for _, line := range lines[1:] {
		if isDelimiter(line) {
			return true
		}
	}
	return false
}
