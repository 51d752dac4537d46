package testutil

import (
	"os"
	"path/filepath"
	"strings"
)

// AssertFileExists fails the test if the file does not exist.
func (s *SourceTree) AssertFileExists(relPath string) {
	s.t.Helper()
	if _, err := os.Stat(filepath.Join(s.Path, relPath)); os.IsNotExist(err) {
		s.t.Errorf("expected file to exist: %s", relPath)
	}
}

// AssertFileNotExists fails the test if the file exists.
func (s *SourceTree) AssertFileNotExists(relPath string) {
	s.t.Helper()
	if _, err := os.Stat(filepath.Join(s.Path, relPath)); err == nil {
		s.t.Errorf("expected file to not exist: %s", relPath)
	}
}

// AssertFileContains fails the test if the file does not contain the substring.
func (s *SourceTree) AssertFileContains(relPath, substr string) {
	s.t.Helper()
	content := s.ReadFile(relPath)
	if !strings.Contains(content, substr) {
		s.t.Errorf("expected file %s to contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileNotContains fails the test if the file contains the substring.
func (s *SourceTree) AssertFileNotContains(relPath, substr string) {
	s.t.Helper()
	content := s.ReadFile(relPath)
	if strings.Contains(content, substr) {
		s.t.Errorf("expected file %s to not contain %q, got:\n%s", relPath, substr, content)
	}
}

// AssertFileEquals fails the test unless the file content matches exactly.
func (s *SourceTree) AssertFileEquals(relPath, want string) {
	s.t.Helper()
	content := s.ReadFile(relPath)
	if content != want {
		s.t.Errorf("file %s = %q, want %q", relPath, content, want)
	}
}

// AssertDirExists fails the test if the directory does not exist.
func (s *SourceTree) AssertDirExists(relPath string) {
	s.t.Helper()
	info, err := os.Stat(filepath.Join(s.Path, relPath))
	if os.IsNotExist(err) {
		s.t.Errorf("expected directory to exist: %s", relPath)
		return
	}
	if !info.IsDir() {
		s.t.Errorf("expected %s to be a directory, but it's a file", relPath)
	}
}

// AssertDirNotExists fails the test if the path exists.
func (s *SourceTree) AssertDirNotExists(relPath string) {
	s.t.Helper()
	if _, err := os.Stat(filepath.Join(s.Path, relPath)); err == nil {
		s.t.Errorf("expected directory to not exist: %s", relPath)
	}
}
