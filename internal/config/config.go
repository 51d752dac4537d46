// Package config handles global NovelKit CLI configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Config represents the global NovelKit configuration.
type Config struct {
	// SourceRoot is the NovelKit source tree builds read from. Empty
	// means the working directory.
	SourceRoot string `toml:"source_root"`

	// DistDir overrides where built packages are staged (defaults to
	// <source_root>/dist).
	DistDir string `toml:"dist_dir"`

	// DefaultAI is the environment preselected by init and build when
	// none is given on the command line.
	DefaultAI string `toml:"default_ai"`

	// GitHub points release downloads at a fork.
	GitHub GitHubConfig `toml:"github"`

	// UI controls optional CLI theming preferences.
	UI UIConfig `toml:"ui"`
}

// GitHubConfig selects the repository init downloads packages from.
type GitHubConfig struct {
	Owner string `toml:"owner"`
	Repo  string `toml:"repo"`
}

// UIConfig represents optional CLI theming preferences.
type UIConfig struct {
	// Accent is an optional accent color for CLI output and markdown
	// rendering. Supported values are ANSI color codes ("0" to "255")
	// or hex colors ("#RRGGBB").
	Accent string `toml:"accent"`
}

// Load loads the configuration from the default location.
// Returns a default config if the file doesn't exist.
func Load() (*Config, error) {
	configPath := DefaultPath()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return &Config{}, nil
	}

	return LoadFrom(configPath)
}

// LoadFrom loads the configuration from a specific path.
func LoadFrom(path string) (*Config, error) {
	var config Config
	if _, err := toml.DecodeFile(path, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &config, nil
}

// DefaultPath returns the default config file path.
// Checks ~/.config/novelkit/config.toml first (XDG style),
// then falls back to the OS-specific location.
func DefaultPath() string {
	if home, err := os.UserHomeDir(); err == nil {
		xdgPath := filepath.Join(home, ".config", "novelkit", "config.toml")
		if _, err := os.Stat(xdgPath); err == nil {
			return xdgPath
		}
	}

	if configDir, err := os.UserConfigDir(); err == nil {
		return filepath.Join(configDir, "novelkit", "config.toml")
	}

	return filepath.Join(".", "config.toml")
}

// CreateDefault creates a commented default config file at the default
// path if none exists.
func CreateDefault() (string, error) {
	return CreateDefaultAt(DefaultPath())
}

// CreateDefaultAt creates a commented default config file at path if none
// exists. The existing file is never touched.
func CreateDefaultAt(configPath string) (string, error) {
	if _, err := os.Stat(configPath); err == nil {
		return configPath, nil
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0o755); err != nil {
		return "", fmt.Errorf("failed to create config directory: %w", err)
	}

	defaultConfig := `# NovelKit Configuration
# See: https://github.com/t59688/novel-kit

# Source tree that 'novelkit build' reads when --source is not given.
# source_root = "/path/to/novel-kit"

# Where built packages are staged (defaults to <source_root>/dist).
# dist_dir = "/path/to/dist"

# AI environment preselected by 'novelkit init' and 'novelkit build'.
# Run 'novelkit envs' for the full list.
# default_ai = "cursor"

# Download packages from a fork instead of the upstream repository.
# [github]
# owner = "t59688"
# repo = "novel-kit"

# Optional UI accent color for headers/ids in terminal output.
# Supports ANSI color codes (0-255) or hex (#RRGGBB).
# [ui]
# accent = "39"
`

	if err := os.WriteFile(configPath, []byte(defaultConfig), 0o644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}

	return configPath, nil
}
