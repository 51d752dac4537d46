// Package builder stages NovelKit distribution trees, one per AI
// environment and platform pair.
package builder

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/t59688/novel-kit/internal/atomicfile"
	"github.com/t59688/novel-kit/internal/copytree"
	"github.com/t59688/novel-kit/internal/parser"
	"github.com/t59688/novel-kit/internal/profiles"
	"github.com/t59688/novel-kit/internal/render"
)

// MetaDirName is the meta-space directory staged inside every cell.
const MetaDirName = ".novelkit"

// runtimeDirs are created empty inside the meta-space; projects fill them
// at writing time.
var runtimeDirs = []string{"writers", "chapters"}

// Builder stages distribution cells from a NovelKit source tree.
//
// Source is the tree holding commands/, memory/, templates/, scripts/ and
// agent_templates/. Dist defaults to <Source>/dist. Warnings about missing
// optional assets go to Stderr (os.Stderr when nil).
type Builder struct {
	Source   string
	Dist     string
	Registry *profiles.Registry
	Stderr   io.Writer
}

// CellResult records the outcome of one profile and platform pair.
type CellResult struct {
	Profile  string
	Platform string
	Dir      string
	Err      error
}

// DistRoot returns the directory cells are staged under.
func (b *Builder) DistRoot() string {
	if b.Dist != "" {
		return b.Dist
	}
	return filepath.Join(b.Source, "dist")
}

func (b *Builder) stderr() io.Writer {
	if b.Stderr != nil {
		return b.Stderr
	}
	return os.Stderr
}

func (b *Builder) warnf(format string, args ...interface{}) {
	fmt.Fprintf(b.stderr(), "warning: "+format+"\n", args...)
}

// BuildOne stages the cell for one profile and platform and returns its
// output directory.
//
// The destination dist/{profile}-{platform} is removed and rebuilt from
// scratch, so rebuilding is idempotent and leaves no stale files behind.
// Missing optional assets degrade to warnings; an unknown profile id is
// the only fatal input. An unknown platform id still builds: it names the
// directory, selects the ps script key, and skips the scripts subtree.
func (b *Builder) BuildOne(profileID, platformID string) (string, error) {
	profile, err := b.Registry.Get(profileID)
	if err != nil {
		return "", err
	}

	platform, knownPlatform := b.Registry.PlatformByID(platformID)
	if !knownPlatform {
		b.warnf("unknown platform %q, using it as a directory name only", platformID)
	}

	cellDir := filepath.Join(b.DistRoot(), profileID+"-"+platformID)
	if err := os.RemoveAll(cellDir); err != nil {
		return "", fmt.Errorf("clean %s: %w", cellDir, err)
	}

	metaDir := filepath.Join(cellDir, MetaDirName)
	commandsDir := filepath.Join(cellDir, filepath.FromSlash(profile.Folder))
	for _, dir := range []string{metaDir, commandsDir} {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", dir, err)
		}
	}

	if err := b.stageMetaSpace(metaDir, platform, knownPlatform); err != nil {
		return "", err
	}
	if err := b.renderCommands(commandsDir, profile, platformID); err != nil {
		return "", err
	}
	if err := b.copyExtras(cellDir, profile); err != nil {
		return "", err
	}

	return cellDir, nil
}

// BuildAll stages every cell of the ais x platforms matrix. A failing cell
// is recorded and iteration continues; profile ids missing from the
// registry are warned about and produce no cell at all.
func (b *Builder) BuildAll(ais, platforms []string) []CellResult {
	var results []CellResult
	for _, ai := range ais {
		if !b.Registry.Has(ai) {
			b.warnf("AI %q is not in the profile registry, skipping (known: %s)",
				ai, strings.Join(b.Registry.IDs(), ", "))
			continue
		}
		for _, platform := range platforms {
			dir, err := b.BuildOne(ai, platform)
			results = append(results, CellResult{Profile: ai, Platform: platform, Dir: dir, Err: err})
		}
	}
	return results
}

func (b *Builder) stageMetaSpace(metaDir string, platform profiles.Platform, knownPlatform bool) error {
	memoryDir := filepath.Join(metaDir, "memory")
	if err := os.MkdirAll(memoryDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", memoryDir, err)
	}
	srcConfig := filepath.Join(b.Source, "memory", "config.json")
	if _, err := os.Stat(srcConfig); err == nil {
		if err := copytree.CopyFile(srcConfig, filepath.Join(memoryDir, "config.json")); err != nil {
			return fmt.Errorf("copy memory config: %w", err)
		}
	} else {
		b.warnf("memory/config.json not found, it will be missing from the package")
	}

	srcTemplates := filepath.Join(b.Source, "templates")
	if _, err := os.Stat(srcTemplates); err == nil {
		if _, err := copytree.Copy(srcTemplates, filepath.Join(metaDir, "templates")); err != nil {
			return fmt.Errorf("copy templates: %w", err)
		}
	} else {
		b.warnf("templates/ not found, the package will have no templates")
	}

	scriptsDir := filepath.Join(metaDir, "scripts")
	if err := os.MkdirAll(scriptsDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", scriptsDir, err)
	}
	if knownPlatform {
		srcScripts := filepath.Join(b.Source, "scripts", platform.ScriptsDir)
		if _, err := os.Stat(srcScripts); err == nil {
			if _, err := copytree.Copy(srcScripts, filepath.Join(scriptsDir, platform.ScriptsDir)); err != nil {
				return fmt.Errorf("copy scripts: %w", err)
			}
		} else {
			b.warnf("scripts/%s not found, platform %q gets no scripts", platform.ScriptsDir, platform.ID)
		}
	} else {
		b.warnf("skipping scripts copy for unknown platform")
	}

	for _, dir := range runtimeDirs {
		if err := os.MkdirAll(filepath.Join(metaDir, dir), 0o755); err != nil {
			return fmt.Errorf("create %s: %w", dir, err)
		}
	}
	return nil
}

func (b *Builder) renderCommands(commandsDir string, profile profiles.Profile, platformID string) error {
	srcCommands := filepath.Join(b.Source, "commands")
	entries, err := os.ReadDir(srcCommands)
	if err != nil {
		if os.IsNotExist(err) {
			b.warnf("commands/ not found, no commands will be packaged")
			return nil
		}
		return fmt.Errorf("read commands directory: %w", err)
	}

	scriptKey := b.Registry.ScriptKey(platformID)

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		if err := b.renderCommand(filepath.Join(srcCommands, entry.Name()), commandsDir, profile, scriptKey); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) renderCommand(srcPath, commandsDir string, profile profiles.Profile, scriptKey string) error {
	raw, err := os.ReadFile(srcPath)
	if err != nil {
		return fmt.Errorf("read %s: %w", srcPath, err)
	}
	content := string(raw)

	fm, body := parser.ParseFrontmatter(content)

	scripts := fm.Scripts
	if len(scripts) == 0 {
		scripts = parser.ExtractScripts(content)
	}

	script, found := parser.SelectScript(scripts, scriptKey)
	if !found {
		b.warnf("no %s script found in %s", scriptKey, filepath.Base(srcPath))
	}

	body = render.Substitute(body, script, profile.ArgToken)

	stem := strings.TrimSuffix(filepath.Base(srcPath), ".md")
	outPath := filepath.Join(commandsDir, parser.CommandName(stem)+profile.Format.Extension())

	out := render.Render(profile.Format, fm.Fields["description"], body)
	if err := atomicfile.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", outPath, err)
	}
	return nil
}

func (b *Builder) copyExtras(cellDir string, profile profiles.Profile) error {
	for _, extra := range profile.Extras {
		src := filepath.Join(b.Source, filepath.FromSlash(extra.Source))
		if _, err := os.Stat(src); err != nil {
			continue
		}
		dst := filepath.Join(cellDir, filepath.FromSlash(extra.Dest))
		if err := copytree.CopyFile(src, dst); err != nil {
			return fmt.Errorf("copy extra %s: %w", extra.Source, err)
		}
	}
	return nil
}
