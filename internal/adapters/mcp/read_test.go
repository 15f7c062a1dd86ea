package mcp

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rbxasset/internal/adapters/filesystem"
	"rbxasset/internal/application"
	"rbxasset/internal/logging"
)

const testMapping = `export const assetMap = {
	"assets/icons/logo.png": "rbxassetid://111",
	"assets/sfx/click.ogg": "rbxassetid://333",
	"assets/ui/button.png": "rbxassetid://555",
	"assets/menu/button.png": "rbxassetid://666",
};`

func newTestCoordinator(t *testing.T) (*application.Coordinator, string) {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "assetMap.ts"), []byte(testMapping), 0644))
	require.NoError(t, os.MkdirAll(filepath.Join(root, "assets", "icons"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "icons", "logo.png"), []byte("png"), 0644))

	c := application.NewCoordinator(application.CoordinatorOptions{
		Root: root,
		Source: filesystem.NewLocator(filesystem.Options{
			MappingFile:      "assetMap.ts",
			SourceExtensions: []string{".ts"},
			Logger:           logging.Discard(),
		}),
		Logger: logging.Discard(),
	})
	require.NoError(t, c.Start(context.Background()))
	return c, root
}

func call(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args map[string]any) (string, bool) {
	t.Helper()
	req := mcp.CallToolRequest{}
	req.Params.Arguments = args

	res, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotEmpty(t, res.Content)

	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text, res.IsError
}

func TestResolveHandler(t *testing.T) {
	c, _ := newTestCoordinator(t)
	h := resolveHandler(c)

	text, isErr := call(t, h, map[string]any{"token": "logo.png"})
	assert.False(t, isErr)
	assert.Equal(t, "rbxassetid://111  assets/icons/logo.png", text)

	text, _ = call(t, h, map[string]any{"token": "button.png"})
	assert.Equal(t, "Unresolved.", text)

	_, isErr = call(t, h, map[string]any{})
	assert.True(t, isErr)
}

func TestHoverHandler(t *testing.T) {
	c, _ := newTestCoordinator(t)
	h := hoverHandler(c, "rbxAssetSync.previewAudio")

	text, isErr := call(t, h, map[string]any{"line": `playSound("click.ogg")`, "character": 12})
	assert.False(t, isErr)
	assert.Contains(t, text, "rbxassetid://333")
	assert.Contains(t, text, "Preview Audio")

	text, _ = call(t, h, map[string]any{"line": `playSound("click.ogg")`, "character": 1})
	assert.Equal(t, "No asset under cursor.", text)

	text, isErr = call(t, h, map[string]any{"line": `getAsset(" ")`, "character": 10})
	assert.False(t, isErr)
	assert.Equal(t, "No asset under cursor.", text)

	text, isErr = call(t, h, map[string]any{"line": `playSound("click.ogg")`, "character": 500})
	assert.False(t, isErr)
	assert.Equal(t, "No asset under cursor.", text)
}

func TestDefinitionHandler(t *testing.T) {
	c, root := newTestCoordinator(t)
	h := definitionHandler(c)

	text, _ := call(t, h, map[string]any{"line": `getAsset("assets/icons/logo.png")`, "character": 12})
	assert.Equal(t, filepath.Join(root, "assets", "icons", "logo.png")+":0:0", text)

	text, _ = call(t, h, map[string]any{"line": `getAsset("logo.png")`, "character": 12})
	assert.Equal(t, "No definition.", text)
}

func TestListAndSearchHandlers(t *testing.T) {
	c, _ := newTestCoordinator(t)

	text, _ := call(t, listHandler(c), map[string]any{"prefix": "assets/sfx"})
	assert.Equal(t, "rbxassetid://333  assets/sfx/click.ogg\n", text)

	text, _ = call(t, searchHandler(c), map[string]any{"query": "button", "limit": 1})
	assert.Equal(t, "rbxassetid://666  assets/menu/button.png\n", text)

	_, isErr := call(t, searchHandler(c), map[string]any{})
	assert.True(t, isErr)
}

func TestReloadHandler(t *testing.T) {
	c, root := newTestCoordinator(t)

	require.NoError(t, os.WriteFile(filepath.Join(root, "assetMap.ts"), []byte(`"a.png": "rbxassetid://1"`), 0644))
	text, isErr := call(t, reloadHandler(c, c), nil)
	assert.False(t, isErr)
	assert.Equal(t, "Loaded 1 assets from "+filepath.Join(root, "assetMap.ts"), text)
}
