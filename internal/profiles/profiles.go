// Package profiles defines the registry of AI assistant environments and
// host platforms that builds can target. The registry is embedded at
// compile time, loaded once, and never mutated afterwards.
package profiles

import (
	"fmt"
	"runtime"
)

// Format selects how a rendered command document is serialized.
type Format string

const (
	FormatMarkdown      Format = "markdown"
	FormatTOML          Format = "toml"
	FormatAgentMarkdown Format = "agent-markdown"
)

// Extension returns the output filename suffix for the format.
func (f Format) Extension() string {
	switch f {
	case FormatTOML:
		return ".toml"
	case FormatAgentMarkdown:
		return ".agent.md"
	default:
		return ".md"
	}
}

func (f Format) valid() bool {
	switch f {
	case FormatMarkdown, FormatTOML, FormatAgentMarkdown:
		return true
	}
	return false
}

// Extra is an auxiliary file copied into a cell at a fixed destination
// when its source exists. Paths are slash-separated, relative to the
// source root and the cell root respectively.
type Extra struct {
	Source string `yaml:"source"`
	Dest   string `yaml:"dest"`
}

// Profile describes one AI assistant environment.
//
// An entry with Alias set inherits Folder, Format, ArgToken and Extras
// from the alias target at load time; only the identity and display
// strings stay its own.
type Profile struct {
	ID          string  `yaml:"id"`
	Name        string  `yaml:"name"`
	Description string  `yaml:"description"`
	Folder      string  `yaml:"folder"`
	Format      Format  `yaml:"format"`
	ArgToken    string  `yaml:"arg_token"`
	Alias       string  `yaml:"alias"`
	Extras      []Extra `yaml:"extras"`
}

func (p Profile) validate() error {
	if p.ID == "" {
		return fmt.Errorf("missing id")
	}
	if p.Name == "" {
		return fmt.Errorf("missing name")
	}
	if p.Alias != "" {
		return nil
	}
	if p.Folder == "" {
		return fmt.Errorf("missing folder")
	}
	if !p.Format.valid() {
		return fmt.Errorf("unknown format %q", p.Format)
	}
	if p.ArgToken == "" {
		return fmt.Errorf("missing arg_token")
	}
	return nil
}

// Platform describes one supported host platform.
type Platform struct {
	ID         string `yaml:"id"`
	ScriptKey  string `yaml:"script_key"`
	ScriptsDir string `yaml:"scripts_dir"`
}

// HostPlatform returns the platform id matching the running OS.
func HostPlatform() string {
	if runtime.GOOS == "windows" {
		return "win"
	}
	return "linux"
}
