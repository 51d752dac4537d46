package parser

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// Heading is one markdown heading found in a document body.
type Heading struct {
	Level int
	Text  string
	Line  int // 1-indexed
}

// ExtractHeadings parses markdown with goldmark and returns its headings.
// startLine is added to every reported line so callers can pass a body
// that began partway into a file.
func ExtractHeadings(content string, startLine int) []Heading {
	source := []byte(content)
	doc := goldmark.New().Parser().Parse(text.NewReader(source))

	var headings []Heading
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}

		headingText := strings.TrimSpace(nodeText(heading, source))
		if headingText == "" {
			return ast.WalkContinue, nil
		}

		line := startLine
		if heading.Lines().Len() > 0 {
			offset := heading.Lines().At(0).Start
			line = startLine + strings.Count(content[:offset], "\n")
		}

		headings = append(headings, Heading{
			Level: heading.Level,
			Text:  headingText,
			Line:  line,
		})
		return ast.WalkContinue, nil
	})

	return headings
}

// nodeText collects the raw text under a node, descending through inline
// markup such as emphasis and code spans.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	for child := n.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			b.Write(t.Segment.Value(source))
			continue
		}
		b.WriteString(nodeText(child, source))
	}
	return b.String()
}
