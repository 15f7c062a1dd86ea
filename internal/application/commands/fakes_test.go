package commands

import (
	"context"

	"rbxasset/internal/domain"
	"rbxasset/internal/ports"
)

// fakeAssets serves a fixed index
type fakeAssets struct {
	root        string
	mappingPath string
	index       *domain.Index
	err         error
}

func newFakeAssets(root, mapping string) *fakeAssets {
	return &fakeAssets{
		root:        root,
		mappingPath: root + "/assetMap.ts",
		index:       domain.BuildIndex(domain.ParseMapping(mapping)),
	}
}

func (f *fakeAssets) Resolve(_ context.Context, token string) (domain.Resolution, error) {
	if f.err != nil {
		return domain.Unresolved, f.err
	}
	return f.index.Resolve(token), nil
}

func (f *fakeAssets) Index(_ context.Context) (*domain.Index, error) {
	return f.index, f.err
}

func (f *fakeAssets) Root() string        { return f.root }
func (f *fakeAssets) MappingPath() string { return f.mappingPath }

// fakeStore records the last snapshot written
type fakeStore struct {
	last   *ports.Snapshot
	err    error
	closed bool
}

func (s *fakeStore) WriteSnapshot(_ context.Context, snap ports.Snapshot) error {
	if s.err != nil {
		return s.err
	}
	s.last = &snap
	return nil
}

func (s *fakeStore) Close() error {
	s.closed = true
	return nil
}

const testMapping = `export const assetMap = {
	"assets/icons/logo.png": "rbxassetid://111",
	"assets/other/banner.jpg": "rbxassetid://222",
	"assets/sfx/click.ogg": "rbxassetid://333",
	"assets/models/tree.rbxm": "rbxassetid://444",
	"assets/ui/button.png": "rbxassetid://555",
	"assets/menu/button.png": "rbxassetid://666",
}`
