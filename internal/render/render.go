// Package render performs the placeholder substitutions and per-format
// serialization that turn a source command document into a distributable
// one.
package render

import (
	"strings"

	"github.com/t59688/novel-kit/internal/profiles"
)

// Placeholder tokens recognized in command document bodies.
const (
	ScriptPlaceholder = "{SCRIPT}"
	argPlaceholder    = "$ARGUMENTS"
	argPlaceholderAlt = "{ARGS}"
)

// Substitute bakes the platform script and the profile argument token into
// a document body. The script goes in first, so placeholder text inside
// the script itself is subject to the argument passes. Both argument
// spellings are honored.
func Substitute(body, script, argToken string) string {
	body = strings.ReplaceAll(body, ScriptPlaceholder, script)
	body = strings.ReplaceAll(body, argPlaceholder, argToken)
	body = strings.ReplaceAll(body, argPlaceholderAlt, argToken)
	return body
}

// Render serializes a description/body pair for the target format.
//
// Markdown-family formats emit the body verbatim. TOML emits a description
// line and the body inside a triple-quoted prompt block. Neither string is
// escaped on the way in: a description containing a double quote, or a
// body containing the """ sequence, produces invalid TOML. Bodies are
// authored markdown and descriptions one-line summaries, so both stay
// clear of that in practice.
func Render(format profiles.Format, description, body string) string {
	switch format {
	case profiles.FormatTOML:
		return "description = \"" + description + "\"\n\nprompt = \"\"\"\n" + body + "\n\"\"\""
	default:
		return body
	}
}
