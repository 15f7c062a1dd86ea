package ports

import (
	"context"
	"time"

	"rbxasset/internal/domain"
)

// Snapshot is a point-in-time copy of a loaded index
type Snapshot struct {
	Root        string
	MappingPath string
	GeneratedAt time.Time
	Entries     []domain.AssetEntry
}

// SnapshotStore persists exported snapshots of the asset index
type SnapshotStore interface {
	WriteSnapshot(ctx context.Context, snap Snapshot) error
	Close() error
}
