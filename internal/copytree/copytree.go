// Package copytree implements the recursive directory copying used by
// build staging and project initialization.
package copytree

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Copy recursively copies the tree rooted at src into dst, creating
// directories as needed and overwriting files that already exist. A
// missing src is a no-op. Returns the number of files copied.
func Copy(src, dst string) (int, error) {
	info, err := os.Stat(src)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("copy %s: not a directory", src)
	}

	copied := 0
	err = filepath.WalkDir(src, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(src, path)
		if err != nil {
			return err
		}
		target := filepath.Join(dst, rel)
		if d.IsDir() {
			return os.MkdirAll(target, 0o755)
		}
		if err := CopyFile(path, target); err != nil {
			return err
		}
		copied++
		return nil
	})
	return copied, err
}

// CopyFile copies one file, creating parent directories for dst and
// carrying over the source file mode.
func CopyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	info, err := os.Stat(src)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, info.Mode().Perm()); err != nil {
		return err
	}
	// WriteFile only applies the mode on create; align pre-existing
	// destinations too.
	return os.Chmod(dst, info.Mode().Perm())
}
