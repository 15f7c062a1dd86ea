package commands

import (
	"context"
	"strings"

	"rbxasset/internal/application"
	"rbxasset/internal/domain"
	"rbxasset/internal/ports"
)

// ListCommand lists indexed assets ordered by path
type ListCommand struct {
	assets ports.AssetResolver
	Prefix string
}

// NewListCommand creates a new ListCommand; an empty prefix lists everything
func NewListCommand(assets ports.AssetResolver, prefix string) *ListCommand {
	return &ListCommand{
		assets: assets,
		Prefix: prefix,
	}
}

// Execute returns the matching entries
func (c *ListCommand) Execute(ctx context.Context) ([]domain.AssetEntry, error) {
	if c.assets == nil {
		return nil, application.ErrNoCoordinator
	}

	idx, err := c.assets.Index(ctx)
	if err != nil {
		return nil, err
	}

	entries := idx.SortedEntries()
	if c.Prefix == "" {
		return entries, nil
	}

	filtered := entries[:0]
	for _, e := range entries {
		if strings.HasPrefix(e.Path, c.Prefix) {
			filtered = append(filtered, e)
		}
	}
	return filtered, nil
}
