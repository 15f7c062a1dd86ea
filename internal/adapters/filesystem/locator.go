package filesystem

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"rbxasset/internal/domain"
	"rbxasset/internal/ports"
)

// Ensure Locator implements MappingSource
var _ ports.MappingSource = (*Locator)(nil)

// Locator implements ports.MappingSource on the local filesystem
type Locator struct {
	mappingFile string
	extensions  []string
	ignore      map[string]bool
	logger      *slog.Logger
}

// Options configures a Locator
type Options struct {
	MappingFile      string   // Conventional path checked first, relative to root
	SourceExtensions []string // Candidate file extensions for the fallback scan
	IgnoreDirs       []string // Directory names never descended into
	Logger           *slog.Logger
}

// NewLocator creates a filesystem mapping locator
func NewLocator(opts Options) *Locator {
	ignore := make(map[string]bool, len(opts.IgnoreDirs))
	for _, d := range opts.IgnoreDirs {
		ignore[d] = true
	}
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Locator{
		mappingFile: opts.MappingFile,
		extensions:  opts.SourceExtensions,
		ignore:      ignore,
		logger:      logger,
	}
}

// Locate returns the conventional mapping file if it exists under root,
// otherwise the first source file found that mentions the asset scheme.
// The scan is depth-first with an explicit stack; sibling order follows
// whatever the directory listing returns and is not stable across runs.
// Unreadable nodes are skipped.
func (l *Locator) Locate(ctx context.Context, root string) (string, bool) {
	if root == "" {
		return "", false
	}

	if l.mappingFile != "" {
		conventional := filepath.Join(root, filepath.FromSlash(l.mappingFile))
		if info, err := os.Stat(conventional); err == nil && info.Mode().IsRegular() {
			return conventional, true
		}
	}

	entries, err := os.ReadDir(root)
	if err != nil {
		l.logger.Debug("mapping root unreadable", "root", root, "err", err)
		return "", false
	}

	stack := make([]string, 0, len(entries))
	stack = l.pushChildren(stack, root, entries)

	for len(stack) > 0 {
		if ctx.Err() != nil {
			return "", false
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		// Lstat so symlinked directories are never followed into cycles
		info, err := os.Lstat(current)
		if err != nil {
			l.logger.Debug("skipping node", "path", current, "err", err)
			continue
		}

		if info.IsDir() {
			children, err := os.ReadDir(current)
			if err != nil {
				l.logger.Debug("skipping directory", "path", current, "err", err)
				continue
			}
			stack = l.pushChildren(stack, current, children)
			continue
		}

		if !l.isCandidate(current) {
			continue
		}
		if l.containsScheme(current) {
			return current, true
		}
	}

	return "", false
}

// Read returns the mapping document text
func (l *Locator) Read(_ context.Context, path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read mapping: %w", err)
	}
	return string(data), nil
}

func (l *Locator) pushChildren(stack []string, dir string, entries []os.DirEntry) []string {
	for _, e := range entries {
		if e.IsDir() && l.ignore[e.Name()] {
			continue
		}
		stack = append(stack, filepath.Join(dir, e.Name()))
	}
	return stack
}

func (l *Locator) isCandidate(path string) bool {
	for _, ext := range l.extensions {
		if strings.HasSuffix(path, ext) {
			return true
		}
	}
	return false
}

func (l *Locator) containsScheme(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		l.logger.Debug("skipping unreadable candidate", "path", path, "err", err)
		return false
	}
	return strings.Contains(string(data), domain.AssetScheme)
}
