package server

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"

	"github.com/inkwell-press/inkwell/internal/logfields"
)

// Watcher monitors the source trees (content, layouts, static) and feeds
// change notifications into the debouncer. Directories are watched
// recursively; new subdirectories are picked up as they appear.
type Watcher struct {
	roots     []string
	watcher   *fsnotify.Watcher
	debouncer *Debouncer
}

// NewWatcher creates a recursive watcher over the given root directories.
// Roots that do not exist yet are skipped with a warning.
func NewWatcher(roots []string, debouncer *Debouncer) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create file watcher: %w", err)
	}

	w := &Watcher{watcher: fsw, debouncer: debouncer}
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			slog.Warn("Watch root missing, skipping", logfields.Path(root))
			continue
		}
		if err := w.addTree(root); err != nil {
			fsw.Close()
			return nil, err
		}
		w.roots = append(w.roots, root)
	}
	return w, nil
}

// Run processes file system events until ctx is canceled.
func (w *Watcher) Run(ctx context.Context) {
	defer w.watcher.Close()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-w.watcher.Events:
			if !ok {
				return
			}
			w.handleEvent(event)
		case err, ok := <-w.watcher.Errors:
			if !ok {
				return
			}
			slog.Error("File watcher error", logfields.Error(err))
		}
	}
}

func (w *Watcher) handleEvent(event fsnotify.Event) {
	if ignorePath(event.Name) {
		return
	}

	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				slog.Warn("Could not watch new directory", logfields.Path(event.Name), logfields.Error(err))
			}
		}
	}

	if event.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) != 0 {
		slog.Debug("Source change detected", logfields.Path(event.Name), slog.String("op", event.Op.String()))
		w.debouncer.Notify(event.Name)
	}
}

func (w *Watcher) addTree(root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if ignorePath(path) && path != root {
			return fs.SkipDir
		}
		if err := w.watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// ignorePath filters hidden files and editor temp artifacts.
func ignorePath(path string) bool {
	base := filepath.Base(path)
	if strings.HasPrefix(base, ".") {
		return true
	}
	if strings.HasSuffix(base, "~") || strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".tmp") {
		return true
	}
	return false
}
