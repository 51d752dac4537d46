// Package check lints source command documents before they are built into
// distribution packages.
package check

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/t59688/novel-kit/internal/parser"
	"github.com/t59688/novel-kit/internal/render"
)

// IssueLevel indicates the severity of an issue.
type IssueLevel int

const (
	LevelError IssueLevel = iota
	LevelWarning
)

func (l IssueLevel) String() string {
	switch l {
	case LevelError:
		return "error"
	case LevelWarning:
		return "warning"
	default:
		return "unknown"
	}
}

// Issue is one finding in a command document.
type Issue struct {
	Level   IssueLevel
	File    string
	Message string
}

// scriptKeys are the variants every document should declare so builds for
// both platforms get a real script.
var scriptKeys = []string{"sh", "ps"}

// File lints one command document. name is the document file name as it
// should appear in reports.
func File(name, content string) []Issue {
	var issues []Issue
	add := func(level IssueLevel, format string, args ...interface{}) {
		issues = append(issues, Issue{Level: level, File: name, Message: fmt.Sprintf(format, args...)})
	}

	if strings.HasPrefix(content, "---") && len(strings.SplitN(content, "---", 3)) < 3 {
		add(LevelError, "unterminated front matter block")
	}

	fm, body := parser.ParseFrontmatter(content)

	if strings.TrimSpace(fm.Fields["description"]) == "" {
		add(LevelError, "missing description")
	}

	scripts := fm.Scripts
	if len(scripts) == 0 {
		scripts = parser.ExtractScripts(content)
	}

	usesScript := strings.Contains(body, render.ScriptPlaceholder)
	switch {
	case usesScript && len(scripts) == 0:
		add(LevelError, "body references %s but no scripts are declared", render.ScriptPlaceholder)
	case !usesScript && len(scripts) > 0:
		add(LevelWarning, "scripts declared but body never references %s", render.ScriptPlaceholder)
	}

	if len(scripts) > 0 {
		for _, key := range scriptKeys {
			if strings.TrimSpace(scripts[key]) == "" {
				add(LevelWarning, "no %s script variant, builds for that platform get a stub", key)
			}
		}
	}

	if len(parser.ExtractHeadings(body, 1)) == 0 {
		add(LevelWarning, "body has no heading")
	}

	return issues
}

// Dir lints every command document under commandsDir in name order.
func Dir(commandsDir string) ([]Issue, error) {
	entries, err := os.ReadDir(commandsDir)
	if err != nil {
		return nil, fmt.Errorf("read commands directory: %w", err)
	}

	var issues []Issue
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(commandsDir, entry.Name()))
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", entry.Name(), err)
		}
		issues = append(issues, File(entry.Name(), string(data))...)
	}
	return issues, nil
}

// Counts tallies issues by level.
func Counts(issues []Issue) (errors, warnings int) {
	for _, issue := range issues {
		if issue.Level == LevelError {
			errors++
		} else {
			warnings++
		}
	}
	return errors, warnings
}
