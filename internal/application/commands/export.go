package commands

import (
	"context"
	"fmt"
	"time"

	"rbxasset/internal/application"
	"rbxasset/internal/ports"
)

// ExportResult summarises a snapshot export
type ExportResult struct {
	Entries     int
	MappingPath string
}

// ExportCommand writes the current index to a snapshot store
type ExportCommand struct {
	assets ports.AssetResolver
	store  ports.SnapshotStore
	now    func() time.Time
}

// NewExportCommand creates a new ExportCommand
func NewExportCommand(assets ports.AssetResolver, store ports.SnapshotStore) *ExportCommand {
	return &ExportCommand{
		assets: assets,
		store:  store,
		now:    time.Now,
	}
}

// Execute exports the index. An empty index is still exported so the
// snapshot reflects that no mapping was found.
func (c *ExportCommand) Execute(ctx context.Context) (*ExportResult, error) {
	if c.assets == nil {
		return nil, application.ErrNoCoordinator
	}
	if c.store == nil {
		return nil, &application.ValidationError{Field: "store", Message: "snapshot store is required"}
	}

	idx, err := c.assets.Index(ctx)
	if err != nil {
		return nil, err
	}

	snap := ports.Snapshot{
		Root:        c.assets.Root(),
		MappingPath: c.assets.MappingPath(),
		GeneratedAt: c.now().UTC(),
		Entries:     idx.SortedEntries(),
	}
	if err := c.store.WriteSnapshot(ctx, snap); err != nil {
		return nil, fmt.Errorf("failed to export snapshot: %w", err)
	}

	return &ExportResult{Entries: len(snap.Entries), MappingPath: snap.MappingPath}, nil
}
