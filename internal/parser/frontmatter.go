// Package parser implements the command-document front-matter dialect.
//
// The dialect is a narrow, line-based subset of YAML-looking syntax: a
// delimited header of key: value lines with exactly one nested block
// (scripts). There is no deeper nesting, no lists, and no multi-line
// scalars, so the scanner below is the full grammar.
package parser

import "strings"

// Frontmatter holds the parsed header block of a command document.
type Frontmatter struct {
	// Fields are the top-level key/value entries. Duplicate keys keep the
	// last occurrence.
	Fields map[string]string

	// Scripts is the nested scripts block (keys sh and ps by convention,
	// but any nested key is kept). Nil when the document declares none.
	Scripts map[string]string
}

const delimiter = "---"

// ParseFrontmatter splits a command document into front matter and body.
//
// Documents that do not start with the delimiter, or whose header block is
// unterminated, yield empty front matter and the unmodified input as body.
// The body is the text after the closing delimiter, returned verbatim.
func ParseFrontmatter(content string) (Frontmatter, string) {
	if !strings.HasPrefix(content, delimiter) {
		return Frontmatter{}, content
	}

	parts := strings.SplitN(content, delimiter, 3)
	if len(parts) < 3 {
		return Frontmatter{}, content
	}

	fm := Frontmatter{Fields: make(map[string]string)}
	scripts := make(map[string]string)
	inScripts := false

	for _, line := range strings.Split(strings.TrimSpace(parts[1]), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if trimmed == "scripts:" {
			inScripts = true
			continue
		}

		indented := strings.HasPrefix(line, " ") || strings.HasPrefix(line, "\t")

		// An unindented key: value line ends the nested block and is
		// stored as a top-level entry in the same pass. An unindented
		// line without a colon neither stores nor ends the block.
		if inScripts && !indented && strings.Contains(trimmed, ":") {
			inScripts = false
		}

		if inScripts {
			if indented && strings.Contains(trimmed, ":") {
				key, value, _ := strings.Cut(trimmed, ":")
				scripts[trimQuotes(strings.TrimSpace(key))] = trimQuotes(strings.TrimSpace(value))
			}
			continue
		}

		if key, value, ok := strings.Cut(trimmed, ":"); ok {
			fm.Fields[trimQuotes(strings.TrimSpace(key))] = trimQuotes(strings.TrimSpace(value))
		}
	}

	if len(scripts) > 0 {
		fm.Scripts = scripts
	}

	return fm, parts[2]
}

// trimQuotes removes one matching pair of surrounding quote characters.
// Mixed or unbalanced quotes are left alone.
func trimQuotes(s string) string {
	if len(s) < 2 {
		return s
	}
	if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
		return s[1 : len(s)-1]
	}
	return s
}
