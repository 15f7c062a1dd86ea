package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"rbxasset/internal/ports"
)

// RegisterControlTools adds tools that act on the index lifecycle
func RegisterControlTools(s *server.MCPServer, reloader ports.Reloader, assets ports.AssetResolver) {
	s.AddTool(mcp.NewTool("reload",
		mcp.WithDescription("Rebuild the asset index from the mapping document and report what was loaded."),
	), reloadHandler(reloader, assets))
}

func reloadHandler(reloader ports.Reloader, assets ports.AssetResolver) server.ToolHandlerFunc {
	return func(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		reloader.Reload(true)
		if err := reloader.Wait(ctx); err != nil {
			return toolError(err)
		}

		idx, err := assets.Index(ctx)
		if err != nil {
			return toolError(err)
		}

		mapping := assets.MappingPath()
		if mapping == "" {
			return mcp.NewToolResultText("No asset mapping found."), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("Loaded %d assets from %s", idx.Len(), mapping)), nil
	}
}
