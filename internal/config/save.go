package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/t59688/novel-kit/internal/atomicfile"
)

type persistedConfig struct {
	SourceRoot *string              `toml:"source_root,omitempty"`
	DistDir    *string              `toml:"dist_dir,omitempty"`
	DefaultAI  *string              `toml:"default_ai,omitempty"`
	GitHub     *persistedGitHub     `toml:"github,omitempty"`
	UI         *persistedUISettings `toml:"ui,omitempty"`
}

type persistedGitHub struct {
	Owner *string `toml:"owner,omitempty"`
	Repo  *string `toml:"repo,omitempty"`
}

type persistedUISettings struct {
	Accent *string `toml:"accent,omitempty"`
}

func nonEmptyPtr(value string) *string {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// Save writes the global config to the default config path.
func Save(cfg *Config) error {
	return SaveTo(DefaultPath(), cfg)
}

// SaveTo writes the global config to a specific path atomically. Empty
// fields are omitted so the file stays minimal.
func SaveTo(path string, cfg *Config) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("config path is required")
	}
	if cfg == nil {
		cfg = &Config{}
	}

	out := persistedConfig{
		SourceRoot: nonEmptyPtr(cfg.SourceRoot),
		DistDir:    nonEmptyPtr(cfg.DistDir),
		DefaultAI:  nonEmptyPtr(cfg.DefaultAI),
	}

	owner := nonEmptyPtr(cfg.GitHub.Owner)
	repo := nonEmptyPtr(cfg.GitHub.Repo)
	if owner != nil || repo != nil {
		out.GitHub = &persistedGitHub{Owner: owner, Repo: repo}
	}

	if accent := nonEmptyPtr(cfg.UI.Accent); accent != nil {
		out.UI = &persistedUISettings{Accent: accent}
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(out); err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := atomicfile.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write config %s: %w", path, err)
	}

	return nil
}
