package ports

import (
	"context"

	"rbxasset/internal/domain"
)

// MappingSource finds and reads the mapping document for a project
type MappingSource interface {
	// Locate returns the absolute path of the mapping document under root.
	// ok is false when no document could be found; that is not an error.
	Locate(ctx context.Context, root string) (path string, ok bool)

	// Read returns the raw text of the mapping document at path
	Read(ctx context.Context, path string) (string, error)
}

// MappingWatcher delivers change notifications for mapping documents
type MappingWatcher interface {
	// Watch blocks, calling handle for every relevant event, until ctx is
	// done or the underlying watch fails
	Watch(ctx context.Context, handle func(domain.MappingEvent)) error
}
