// Package testutil provides reusable test utilities for NovelKit
// integration tests.
package testutil

import (
	"os"
	"path/filepath"
	"testing"
)

// SourceTree builds a temporary NovelKit source tree for tests.
type SourceTree struct {
	Path  string
	t     *testing.T
	files map[string]string
	dirs  []string
}

// NewSourceTree creates a source tree builder. Call Build() to create the
// actual directory.
func NewSourceTree(t *testing.T) *SourceTree {
	t.Helper()
	return &SourceTree{
		t:     t,
		files: make(map[string]string),
	}
}

// WithCommand adds a command document under commands/. name should carry
// its .md extension.
func (s *SourceTree) WithCommand(name, content string) *SourceTree {
	s.files[filepath.Join("commands", name)] = content
	return s
}

// WithFile adds a file at a path relative to the tree root.
func (s *SourceTree) WithFile(path, content string) *SourceTree {
	s.files[path] = content
	return s
}

// WithDir adds an empty directory.
func (s *SourceTree) WithDir(path string) *SourceTree {
	s.dirs = append(s.dirs, path)
	return s
}

// WithMemoryConfig adds memory/config.json.
func (s *SourceTree) WithMemoryConfig(content string) *SourceTree {
	s.files[filepath.Join("memory", "config.json")] = content
	return s
}

// Build creates the tree directory and all configured files.
func (s *SourceTree) Build() *SourceTree {
	s.t.Helper()

	s.Path = s.t.TempDir()

	for _, dir := range s.dirs {
		if err := os.MkdirAll(filepath.Join(s.Path, dir), 0o755); err != nil {
			s.t.Fatalf("failed to create directory %s: %v", dir, err)
		}
	}
	for path, content := range s.files {
		s.writeFile(path, content)
	}

	return s
}

func (s *SourceTree) writeFile(relPath, content string) {
	s.t.Helper()
	fullPath := filepath.Join(s.Path, relPath)

	if err := os.MkdirAll(filepath.Dir(fullPath), 0o755); err != nil {
		s.t.Fatalf("failed to create directory for %s: %v", relPath, err)
	}
	if err := os.WriteFile(fullPath, []byte(content), 0o644); err != nil {
		s.t.Fatalf("failed to write file %s: %v", fullPath, err)
	}
}

// ReadFile reads a file relative to the tree root.
func (s *SourceTree) ReadFile(relPath string) string {
	s.t.Helper()
	content, err := os.ReadFile(filepath.Join(s.Path, relPath))
	if err != nil {
		s.t.Fatalf("failed to read file %s: %v", relPath, err)
	}
	return string(content)
}

// FileExists reports whether a file exists relative to the tree root.
func (s *SourceTree) FileExists(relPath string) bool {
	s.t.Helper()
	_, err := os.Stat(filepath.Join(s.Path, relPath))
	return err == nil
}

// WriterNewDoc is a minimal command document exercising the front-matter
// dialect end to end: a quoted description, both script variants, and both
// placeholder spellings in the body.
func WriterNewDoc() string {
	return `---
description: "Create a writer"
scripts:
  sh: "scripts/bash/writer-new.sh"
  ps: "scripts/powershell/writer-new.ps1"
---

# Writer New

Run {SCRIPT} with $ARGUMENTS.

Also accepts {ARGS}.
`
}
