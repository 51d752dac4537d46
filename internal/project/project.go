// Package project materializes a built distribution package into a user
// project directory.
package project

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/t59688/novel-kit/internal/builder"
	"github.com/t59688/novel-kit/internal/copytree"
)

// Summary reports what Init copied.
type Summary struct {
	FilesCopied int
	Dirs        []string
}

// Init copies the package tree at distDir into projectPath. The meta space
// is copied first, then every other top-level dot directory. Existing files
// are overwritten, anything else already in the project is left alone.
func Init(distDir, projectPath string) (Summary, error) {
	var sum Summary

	info, err := os.Stat(distDir)
	if err != nil {
		return sum, fmt.Errorf("package directory %s: %w", distDir, err)
	}
	if !info.IsDir() {
		return sum, fmt.Errorf("package path %s is not a directory", distDir)
	}

	if err := os.MkdirAll(projectPath, 0o755); err != nil {
		return sum, err
	}

	metaSrc := filepath.Join(distDir, builder.MetaDirName)
	if _, err := os.Stat(metaSrc); err == nil {
		n, err := copytree.Copy(metaSrc, filepath.Join(projectPath, builder.MetaDirName))
		if err != nil {
			return sum, fmt.Errorf("copy %s: %w", builder.MetaDirName, err)
		}
		sum.FilesCopied += n
		sum.Dirs = append(sum.Dirs, builder.MetaDirName)
	}

	entries, err := os.ReadDir(distDir)
	if err != nil {
		return sum, err
	}
	for _, entry := range entries {
		name := entry.Name()
		if !entry.IsDir() || !strings.HasPrefix(name, ".") || name == builder.MetaDirName {
			continue
		}
		n, err := copytree.Copy(filepath.Join(distDir, name), filepath.Join(projectPath, name))
		if err != nil {
			return sum, fmt.Errorf("copy %s: %w", name, err)
		}
		sum.FilesCopied += n
		sum.Dirs = append(sum.Dirs, name)
	}

	if err := markScriptsExecutable(projectPath); err != nil {
		return sum, err
	}
	return sum, nil
}

// markScriptsExecutable restores the execute bit on bash scripts under the
// meta space. Zip extraction loses it.
func markScriptsExecutable(projectPath string) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	scriptsDir := filepath.Join(projectPath, builder.MetaDirName, "scripts", "bash")
	if _, err := os.Stat(scriptsDir); err != nil {
		return nil
	}
	return filepath.WalkDir(scriptsDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".sh") {
			return nil
		}
		return os.Chmod(path, 0o755)
	})
}
