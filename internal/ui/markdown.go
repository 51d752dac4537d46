package ui

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/ansi"
)

// RenderMarkdown renders markdown content for terminal display at the
// given width using the NovelKit glamour style.
func RenderMarkdown(content string, width int) (string, error) {
	renderer, err := glamour.NewTermRenderer(
		glamour.WithStyles(markdownStyle()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}

// markdownStyle builds a minimal glamour style: mostly default text with
// the configured accent on headings and links, muted block quotes, and no
// background fills.
func markdownStyle() ansi.StyleConfig {
	accent, hasAccent := AccentColor()

	heading := ansi.StylePrimitive{Bold: mdBoolPtr(true)}
	link := ansi.StylePrimitive{Underline: mdBoolPtr(true)}
	if hasAccent {
		heading.Color = mdStringPtr(accent)
		link.Color = mdStringPtr(accent)
	}

	return ansi.StyleConfig{
		Document: ansi.StyleBlock{
			Margin: mdUintPtr(1),
		},
		BlockQuote: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: mdStringPtr("#6C7086"), Italic: mdBoolPtr(true)},
			Indent:         mdUintPtr(1),
		},
		Heading: ansi.StyleBlock{
			StylePrimitive: heading,
		},
		H1: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Prefix: "# ", Bold: mdBoolPtr(true)},
		},
		H2: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Prefix: "## "},
		},
		H3: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Prefix: "### "},
		},
		Emph: ansi.StylePrimitive{
			Italic: mdBoolPtr(true),
		},
		Strong: ansi.StylePrimitive{
			Bold: mdBoolPtr(true),
		},
		HorizontalRule: ansi.StylePrimitive{
			Format: "\n--------\n",
		},
		Item: ansi.StylePrimitive{
			BlockPrefix: "• ",
		},
		Enumeration: ansi.StylePrimitive{
			BlockPrefix: ". ",
		},
		Link:     link,
		LinkText: ansi.StylePrimitive{Bold: mdBoolPtr(true)},
		Code: ansi.StyleBlock{
			StylePrimitive: ansi.StylePrimitive{Color: mdStringPtr("#D19A66")},
		},
		CodeBlock: ansi.StyleCodeBlock{
			StyleBlock: ansi.StyleBlock{
				Margin: mdUintPtr(2),
			},
			Theme: "monokai",
		},
	}
}

func mdBoolPtr(b bool) *bool       { return &b }
func mdStringPtr(s string) *string { return &s }
func mdUintPtr(u uint) *uint       { return &u }
