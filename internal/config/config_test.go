package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadFrom(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `source_root = "/srv/novel-kit"
dist_dir = "/srv/out"
default_ai = "claude"

[github]
owner = "someone"
repo = "novel-kit-fork"

[ui]
accent = "39"
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}

	if cfg.SourceRoot != "/srv/novel-kit" {
		t.Errorf("SourceRoot = %q", cfg.SourceRoot)
	}
	if cfg.DistDir != "/srv/out" {
		t.Errorf("DistDir = %q", cfg.DistDir)
	}
	if cfg.DefaultAI != "claude" {
		t.Errorf("DefaultAI = %q", cfg.DefaultAI)
	}
	if cfg.GitHub.Owner != "someone" || cfg.GitHub.Repo != "novel-kit-fork" {
		t.Errorf("GitHub = %+v", cfg.GitHub)
	}
	if cfg.UI.Accent != "39" {
		t.Errorf("UI.Accent = %q", cfg.UI.Accent)
	}
}

func TestLoadFromPartial(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("default_ai = \"gemini\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadFrom(path)
	if err != nil {
		t.Fatalf("LoadFrom() error: %v", err)
	}
	if cfg.DefaultAI != "gemini" {
		t.Errorf("DefaultAI = %q", cfg.DefaultAI)
	}
	if cfg.SourceRoot != "" || cfg.UI.Accent != "" {
		t.Errorf("unset fields should stay zero: %+v", cfg)
	}
}

func TestLoadFromInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("source_root = [broken\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, err := LoadFrom(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestLoadFromMissingFile(t *testing.T) {
	if _, err := LoadFrom(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing explicit config path")
	}
}
