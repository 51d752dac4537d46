package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestSaveToRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.toml")

	cfg := &Config{
		SourceRoot: "/srv/novel-kit",
		DefaultAI:  "claude",
	}
	cfg.GitHub.Owner = "someone"
	cfg.UI.Accent = "#89B4FA"

	if err := SaveTo(path, cfg); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	loaded, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if loaded.SourceRoot != cfg.SourceRoot {
		t.Errorf("SourceRoot = %q, want %q", loaded.SourceRoot, cfg.SourceRoot)
	}
	if loaded.DefaultAI != cfg.DefaultAI {
		t.Errorf("DefaultAI = %q, want %q", loaded.DefaultAI, cfg.DefaultAI)
	}
	if loaded.GitHub.Owner != "someone" {
		t.Errorf("GitHub.Owner = %q", loaded.GitHub.Owner)
	}
	if loaded.UI.Accent != "#89B4FA" {
		t.Errorf("UI.Accent = %q", loaded.UI.Accent)
	}
}

func TestSaveToOmitsEmptyFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := SaveTo(path, &Config{DefaultAI: "cursor"}); err != nil {
		t.Fatalf("SaveTo() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read config: %v", err)
	}
	content := string(data)
	if !strings.Contains(content, "default_ai") {
		t.Errorf("default_ai missing from %q", content)
	}
	for _, field := range []string{"source_root", "dist_dir", "github", "ui"} {
		if strings.Contains(content, field) {
			t.Errorf("empty field %s should be omitted, got %q", field, content)
		}
	}
}

func TestSaveToRequiresPath(t *testing.T) {
	if err := SaveTo("", &Config{}); err == nil {
		t.Error("expected error for empty path")
	}
}
