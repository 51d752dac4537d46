package parser

import (
	"fmt"
	"regexp"
	"strings"
)

// scriptsBlockPattern recognizes a bare scripts: line followed by an
// indented run of key: value lines, anywhere in a document. The first line
// that breaks the indented run ends the block.
var scriptsBlockPattern = regexp.MustCompile(`(?m)^scripts:[ \t]*\n((?:[ \t]+[a-z]+:.*\n?)+)`)

// ExtractScripts scans raw document content for a scripts block.
//
// It is the fallback used when front-matter parsing yielded no scripts,
// e.g. when the block sits below the header or the header is unterminated.
// Returns an empty map when no block is found.
func ExtractScripts(content string) map[string]string {
	scripts := make(map[string]string)

	m := scriptsBlockPattern.FindStringSubmatch(content)
	if m == nil {
		return scripts
	}

	for _, line := range strings.Split(m[1], "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if key, value, ok := strings.Cut(trimmed, ":"); ok {
			scripts[trimQuotes(strings.TrimSpace(key))] = trimQuotes(strings.TrimSpace(value))
		}
	}

	return scripts
}

// SelectScript picks the script for a platform script key.
//
// When the key is absent or empty it returns a visible stub so the
// rendered document stays structurally complete; ok reports whether a real
// script was found.
func SelectScript(scripts map[string]string, key string) (script string, ok bool) {
	if s := scripts[key]; s != "" {
		return s, true
	}
	return fmt.Sprintf("(Missing %s script)", key), false
}
