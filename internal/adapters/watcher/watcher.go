package watcher

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"rbxasset/internal/domain"
	"rbxasset/internal/ports"
)

// Ensure Watcher implements MappingWatcher
var _ ports.MappingWatcher = (*Watcher)(nil)

// Watcher implements ports.MappingWatcher with fsnotify. fsnotify does not
// recurse, so every directory under root is added and new directories are
// added as they appear.
type Watcher struct {
	root        string
	pattern     string
	mappingFile string
	ignore      map[string]bool
	logger      *slog.Logger
}

// Options configures a Watcher
type Options struct {
	Root        string
	Pattern     string // Glob matched against base names, e.g. *AssetMap.ts
	MappingFile string // Conventional mapping path relative to root; its base name also matches
	IgnoreDirs  []string
	Logger      *slog.Logger
}

// New creates a watcher; nothing is watched until Watch is called
func New(opts Options) *Watcher {
	ignore := make(map[string]bool, len(opts.IgnoreDirs))
	for _, d := range opts.IgnoreDirs {
		ignore[d] = true
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Watcher{
		root:        opts.Root,
		pattern:     opts.Pattern,
		mappingFile: opts.MappingFile,
		ignore:      ignore,
		logger:      logger,
	}
}

// Watch blocks until ctx is done, translating filesystem events on mapping
// files into domain events
func (w *Watcher) Watch(ctx context.Context, handle func(domain.MappingEvent)) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer fw.Close()

	if err := w.addTree(fw, w.root); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Has(fsnotify.Create) {
				if info, err := os.Lstat(ev.Name); err == nil && info.IsDir() {
					if err := w.addTree(fw, ev.Name); err != nil {
						w.logger.Debug("failed to watch new directory", "path", ev.Name, "err", err)
					}
					continue
				}
			}
			if kind, ok := w.Translate(ev); ok {
				handle(domain.MappingEvent{Kind: kind, Path: ev.Name})
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "err", err)
		}
	}
}

// Translate maps an fsnotify event to a mapping event kind. Events on files
// that do not follow the mapping naming convention, and chmod-only events,
// are dropped.
func (w *Watcher) Translate(ev fsnotify.Event) (domain.MappingEventKind, bool) {
	if !w.Matches(ev.Name) {
		return 0, false
	}
	switch {
	case ev.Has(fsnotify.Create):
		return domain.MappingCreated, true
	case ev.Has(fsnotify.Remove), ev.Has(fsnotify.Rename):
		return domain.MappingDeleted, true
	case ev.Has(fsnotify.Write):
		return domain.MappingChanged, true
	default:
		return 0, false
	}
}

// Matches reports whether a file name follows the mapping naming convention
func (w *Watcher) Matches(name string) bool {
	base := filepath.Base(name)
	if w.mappingFile != "" && base == path.Base(w.mappingFile) {
		return true
	}
	ok, _ := path.Match(w.pattern, base)
	return ok
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			if p == dir {
				return fmt.Errorf("failed to watch %s: %w", dir, err)
			}
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if p != dir && w.ignore[d.Name()] {
			return filepath.SkipDir
		}
		if err := fw.Add(p); err != nil {
			w.logger.Debug("skipping unwatchable directory", "path", p, "err", err)
		}
		return nil
	})
}
