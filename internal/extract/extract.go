// Package extract turns submitted documents into the plain text that gets analyzed.
package extract

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

const (
	// FormatText is plain text, analyzed as-is.
	FormatText = "text"
	// FormatMarkdown is CommonMark/GFM, reduced to its readable text before analysis.
	FormatMarkdown = "markdown"
)

// ErrUnsupportedFormat is returned for formats other than FormatText and FormatMarkdown.
var ErrUnsupportedFormat = errors.New("unsupported format")

// Extractor converts documents to plain text.
type Extractor struct {
	md goldmark.Markdown
}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM),
		),
	}
}

// NormalizeFormat lower-cases and trims format; an empty format means FormatText.
func NormalizeFormat(format string) string {
	format = strings.ToLower(strings.TrimSpace(format))
	if format == "" {
		return FormatText
	}
	return format
}

// Supported reports whether format can be extracted.
func Supported(format string) bool {
	switch NormalizeFormat(format) {
	case FormatText, FormatMarkdown:
		return true
	}
	return false
}

// PlainText returns the analyzable text of content in the given format.
func (e *Extractor) PlainText(format, content string) (string, error) {
	switch NormalizeFormat(format) {
	case FormatText:
		return content, nil
	case FormatMarkdown:
		return e.markdownText([]byte(content)), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// markdownText walks the markdown AST and keeps text content only: markup,
// link targets and raw HTML are dropped, code is kept verbatim.
func (e *Extractor) markdownText(src []byte) string {
	if len(src) == 0 {
		return ""
	}

	doc := e.md.Parser().Parse(text.NewReader(src))

	var b strings.Builder
	b.Grow(len(src))
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			if n.Type() == ast.TypeBlock {
				b.WriteByte('\n')
			}
			return ast.WalkContinue, nil
		}

		switch v := n.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(src))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte('\n')
			}
		case *ast.String:
			b.Write(v.Value)
		case *ast.AutoLink:
			b.Write(v.Label(src))
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			lines := n.Lines()
			for i := 0; i < lines.Len(); i++ {
				seg := lines.At(i)
				b.Write(seg.Value(src))
			}
		case *ast.HTMLBlock, *ast.RawHTML:
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}
