package builder

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// buildConfigFileName is looked up at the source root by LoadBuildConfig.
const buildConfigFileName = "build-config.json"

// BuildConfig narrows the registry matrix for BuildAll. It never widens
// it: ids outside the registry are skipped at build time.
type BuildConfig struct {
	AIs       []string
	Platforms []string
}

// DefaultBuildConfig is the matrix used when no build-config.json exists.
func DefaultBuildConfig() BuildConfig {
	return BuildConfig{
		AIs:       []string{"cursor"},
		Platforms: []string{"linux", "win"},
	}
}

// LoadBuildConfig reads build-config.json from the source root. A missing
// file yields the default matrix; a key absent from the file keeps its
// default, while a present-but-empty list is honored as empty.
func LoadBuildConfig(sourceRoot string) (BuildConfig, error) {
	path := filepath.Join(sourceRoot, buildConfigFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultBuildConfig(), nil
		}
		return BuildConfig{}, fmt.Errorf("read %s: %w", buildConfigFileName, err)
	}

	var raw struct {
		SupportedAIs       []string `json:"supported_ais"`
		SupportedPlatforms []string `json:"supported_platforms"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return BuildConfig{}, fmt.Errorf("parse %s: %w", buildConfigFileName, err)
	}

	cfg := DefaultBuildConfig()
	if raw.SupportedAIs != nil {
		cfg.AIs = dedupe(raw.SupportedAIs)
	}
	if raw.SupportedPlatforms != nil {
		cfg.Platforms = dedupe(raw.SupportedPlatforms)
	}
	return cfg, nil
}

// dedupe drops repeated ids, keeping first-occurrence order so the build
// matrix stays deterministic.
func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
