package ports

import (
	"context"

	"rbxasset/internal/domain"
)

// AssetResolver is the read side of the asset index
type AssetResolver interface {
	// Resolve waits for any in-flight load, then resolves token
	Resolve(ctx context.Context, token string) (domain.Resolution, error)

	// Index waits for any in-flight load, then returns the current index
	Index(ctx context.Context) (*domain.Index, error)

	// Root is the project root asset paths are relative to
	Root() string

	// MappingPath is the document the current index was built from, or ""
	MappingPath() string
}

// Reloader lets a surface force a fresh load
type Reloader interface {
	Reload(force bool)
	Wait(ctx context.Context) error
}
