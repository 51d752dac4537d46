package parser

import "strings"

// CommandName converts a source document file stem into the canonical
// dotted command name:
//
//	writer-new          -> novel.writer.new
//	novel-setup         -> novel.setup
//	constitution-create -> novel.constitution.create
//
// A trailing .md extension and a leading novel- prefix are dropped first,
// both case-insensitively. The function is total: when nothing usable
// remains it returns the input unchanged.
func CommandName(stem string) string {
	base := stem
	if strings.HasSuffix(strings.ToLower(base), ".md") {
		base = base[:len(base)-len(".md")]
	}
	if strings.HasPrefix(strings.ToLower(base), "novel-") {
		base = base[len("novel-"):]
	}

	var parts []string
	for _, p := range strings.Split(base, "-") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) == 0 {
		return stem
	}

	return "novel." + strings.Join(parts, ".")
}
