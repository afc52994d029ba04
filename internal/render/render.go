// Package render converts paper markdown bodies to HTML.
package render

import (
	"bytes"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer converts markdown text to HTML. The corpus builder stores the
// result on each Document but never inspects it.
type Renderer interface {
	Render(markdown string) (string, error)
}

// Goldmark renders with the same feature set the site's pages were built
// against: GFM tables, strikethrough, footnotes, task lists, and heading IDs
// for in-page anchors.
type Goldmark struct {
	md goldmark.Markdown
}

// NewGoldmark returns a ready-to-use renderer.
func NewGoldmark() *Goldmark {
	return &Goldmark{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.Table,
				extension.Strikethrough,
				extension.Footnote,
				extension.TaskList,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
}

// Render converts markdown to HTML.
func (g *Goldmark) Render(markdown string) (string, error) {
	var buf bytes.Buffer
	if err := g.md.Convert([]byte(markdown), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
