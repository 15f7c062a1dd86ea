package commands

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbxasset/internal/application"
)

func TestResolveCommand(t *testing.T) {
	assets := newFakeAssets("/project", testMapping)

	tests := []struct {
		name     string
		token    string
		wantPath string
		wantErr  bool
	}{
		{name: "exact", token: "assets/icons/logo.png", wantPath: "assets/icons/logo.png"},
		{name: "shorthand", token: "click.ogg", wantPath: "assets/sfx/click.ogg"},
		{name: "ambiguous", token: "button.png"},
		{name: "unknown", token: "nope.png"},
		{name: "blank", token: "  ", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewResolveCommand(assets, tt.token).Execute(context.Background())
			if tt.wantErr {
				var verr *application.ValidationError
				assert.True(t, errors.As(err, &verr))
				return
			}
			require.NoError(t, err)
			if tt.wantPath == "" {
				assert.False(t, res.Resolved)
				return
			}
			require.True(t, res.Resolved)
			assert.Equal(t, tt.wantPath, res.Entry.Path)
		})
	}
}

func TestResolveCommand_NoResolver(t *testing.T) {
	_, err := NewResolveCommand(nil, "x").Execute(context.Background())
	assert.ErrorIs(t, err, application.ErrNoCoordinator)
}
