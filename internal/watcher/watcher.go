// Package watcher provides file watching and automatic rebuilds for NovelKit
// source trees.
//
// It backs `novelkit build --watch`.
package watcher

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// watchedSubtrees are the source directories whose contents feed a build.
var watchedSubtrees = []string{"commands", "templates", "memory", "scripts", "agent_templates"}

// Watcher monitors a source tree and triggers a rebuild after changes settle.
type Watcher struct {
	root string

	// Configuration
	debounceDelay time.Duration
	debug         bool
	onChange      func()

	// Internal state
	fsWatcher *fsnotify.Watcher
	pending   time.Time
	mu        sync.Mutex
}

// Config holds configuration options for the Watcher.
type Config struct {
	Root          string
	DebounceDelay time.Duration // Default: 300ms
	Debug         bool
	OnChange      func()
}

// New creates a new Watcher with the given configuration.
func New(cfg Config) (*Watcher, error) {
	if cfg.Root == "" {
		return nil, fmt.Errorf("source root is required")
	}
	if cfg.OnChange == nil {
		return nil, fmt.Errorf("change callback is required")
	}

	debounce := cfg.DebounceDelay
	if debounce == 0 {
		debounce = 300 * time.Millisecond
	}

	return &Watcher{
		root:          cfg.Root,
		debounceDelay: debounce,
		debug:         cfg.Debug,
		onChange:      cfg.OnChange,
	}, nil
}

// Start begins watching the source tree for changes.
// It blocks until the context is cancelled.
func (w *Watcher) Start(ctx context.Context) error {
	var err error
	w.fsWatcher, err = fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create file watcher: %w", err)
	}
	defer w.fsWatcher.Close()

	// The root itself is watched non-recursively so subtrees created after
	// startup are picked up.
	if err := w.fsWatcher.Add(w.root); err != nil {
		return fmt.Errorf("failed to watch %s: %w", w.root, err)
	}
	for _, name := range watchedSubtrees {
		dir := filepath.Join(w.root, name)
		if info, err := os.Stat(dir); err == nil && info.IsDir() {
			w.addWatchRecursive(dir)
		}
	}

	w.logDebug("Watching source tree: %s", w.root)

	// Start debounce processor
	go w.processDebounced(ctx)

	// Event loop
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logDebug("Watcher error: %v", err)
		}
	}
}

// handleEvent processes a single filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	path := event.Name

	if w.shouldIgnore(path) {
		return
	}
	if !w.inWatchedSubtree(path) {
		return
	}

	w.logDebug("Event: %s %s", event.Op, path)

	// Watch new directories
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			w.addWatchRecursive(path)
		}
	}

	w.scheduleRebuild()
}

// scheduleRebuild records the change time so the rebuild fires once the
// tree goes quiet.
func (w *Watcher) scheduleRebuild() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.pending = time.Now()
}

// processDebounced fires pending rebuilds after the debounce delay.
func (w *Watcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending()
		}
	}
}

// processPending runs the rebuild callback once the debounce window has
// passed with no further events.
func (w *Watcher) processPending() {
	w.mu.Lock()
	ready := !w.pending.IsZero() && time.Since(w.pending) >= w.debounceDelay
	if ready {
		w.pending = time.Time{}
	}
	w.mu.Unlock()

	if ready {
		w.logDebug("Changes settled, rebuilding")
		w.onChange()
	}
}

// inWatchedSubtree reports whether path falls under one of the source
// subtrees that feed a build.
func (w *Watcher) inWatchedSubtree(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}
	first, _, _ := strings.Cut(rel, string(filepath.Separator))
	for _, name := range watchedSubtrees {
		if first == name {
			return true
		}
	}
	return false
}

// addWatchRecursive adds a directory and all subdirectories to the watcher.
func (w *Watcher) addWatchRecursive(root string) error {
	return filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if info.IsDir() {
			if w.shouldIgnoreDir(path) {
				return filepath.SkipDir
			}
			if err := w.fsWatcher.Add(path); err != nil {
				w.logDebug("Failed to watch %s: %v", path, err)
			}
		}
		return nil
	})
}

// shouldIgnore returns true if the path should be ignored.
func (w *Watcher) shouldIgnore(path string) bool {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return false
	}

	parts := strings.Split(rel, string(filepath.Separator))
	for _, part := range parts {
		if part == "dist" || part == ".git" || part == "node_modules" {
			return true
		}
	}
	return false
}

// shouldIgnoreDir returns true if the directory should not be watched.
func (w *Watcher) shouldIgnoreDir(path string) bool {
	base := filepath.Base(path)
	return base == "dist" || base == ".git" || base == "node_modules"
}

// logDebug logs a debug message if debug mode is enabled.
func (w *Watcher) logDebug(format string, args ...interface{}) {
	if w.debug {
		fmt.Fprintf(os.Stderr, "[novelkit-watch] "+format+"\n", args...)
	}
}
