package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"rbxasset/internal/application/commands"
	"rbxasset/internal/domain"
	"rbxasset/internal/ports"
)

// RegisterReadTools adds the asset lookup tools to the MCP server
func RegisterReadTools(s *server.MCPServer, assets ports.AssetResolver, previewCommand string) {
	s.AddTool(resolveTool(), resolveHandler(assets))
	s.AddTool(hoverTool(), hoverHandler(assets, previewCommand))
	s.AddTool(definitionTool(), definitionHandler(assets))
	s.AddTool(listTool(), listHandler(assets))
	s.AddTool(searchTool(), searchHandler(assets))
}

// --- resolve ---

func resolveTool() mcp.Tool {
	return mcp.NewTool("resolve",
		mcp.WithDescription("Resolve an asset path or bare filename to its rbxassetid. Bare filenames resolve only when exactly one asset has that name."),
		mcp.WithString("token",
			mcp.Description("Asset path (assets/icons/logo.png) or filename (logo.png)"),
			mcp.Required(),
		),
	)
}

func resolveHandler(assets ports.AssetResolver) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		res, err := commands.NewResolveCommand(assets, req.GetString("token", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if !res.Resolved {
			return mcp.NewToolResultText("Unresolved."), nil
		}
		return mcp.NewToolResultText(formatEntry(res.Entry)), nil
	}
}

// --- hover ---

func hoverTool() mcp.Tool {
	return mcp.NewTool("hover",
		mcp.WithDescription("Render the asset tooltip for the call argument under the cursor, e.g. getAsset(\"logo.png\")."),
		mcp.WithString("line",
			mcp.Description("Full text of the source line"),
			mcp.Required(),
		),
		mcp.WithNumber("character",
			mcp.Description("Zero-based byte offset (not UTF-16 column) of the cursor within the UTF-8 line; out-of-range values are clamped"),
			mcp.Required(),
		),
	)
}

func hoverHandler(assets ports.AssetResolver, previewCommand string) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewHoverCommand(assets, previewCommand, req.GetString("line", ""), req.GetInt("character", 0))
		h, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if h == nil {
			return mcp.NewToolResultText("No asset under cursor."), nil
		}
		return mcp.NewToolResultText(h.Markdown), nil
	}
}

// --- definition ---

func definitionTool() mcp.Tool {
	return mcp.NewTool("definition",
		mcp.WithDescription("Return the file the call argument under the cursor names literally, if it exists in the project."),
		mcp.WithString("line",
			mcp.Description("Full text of the source line"),
			mcp.Required(),
		),
		mcp.WithNumber("character",
			mcp.Description("Zero-based byte offset (not UTF-16 column) of the cursor within the UTF-8 line; out-of-range values are clamped"),
			mcp.Required(),
		),
	)
}

func definitionHandler(assets ports.AssetResolver) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		cmd := commands.NewDefinitionCommand(assets.Root(), req.GetString("line", ""), req.GetInt("character", 0))
		loc, err := cmd.Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if loc == nil {
			return mcp.NewToolResultText("No definition."), nil
		}
		return mcp.NewToolResultText(fmt.Sprintf("%s:%d:%d", loc.Path, loc.Line, loc.Column)), nil
	}
}

// --- list_assets ---

func listTool() mcp.Tool {
	return mcp.NewTool("list_assets",
		mcp.WithDescription("List indexed assets ordered by path."),
		mcp.WithString("prefix",
			mcp.Description("Only list asset paths starting with this prefix"),
		),
	)
}

func listHandler(assets ports.AssetResolver) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		entries, err := commands.NewListCommand(assets, req.GetString("prefix", "")).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		return formatEntities(entries, formatEntry)
	}
}

// --- search_assets ---

func searchTool() mcp.Tool {
	return mcp.NewTool("search_assets",
		mcp.WithDescription("Fuzzy search indexed assets by path, filename or id."),
		mcp.WithString("query",
			mcp.Description("Search query, at least two characters"),
			mcp.Required(),
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum number of results (default 20)"),
		),
	)
}

func searchHandler(assets ports.AssetResolver) server.ToolHandlerFunc {
	return func(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		query := req.GetString("query", "")
		if query == "" {
			return toolError(fmt.Errorf("query is required"))
		}

		results, err := commands.NewSearchCommand(assets, query, req.GetInt("limit", 20)).Execute(ctx)
		if err != nil {
			return toolError(err)
		}
		if len(results) == 0 {
			return mcp.NewToolResultText("No results found."), nil
		}

		var sb strings.Builder
		for _, r := range results {
			fmt.Fprintf(&sb, "%s  %s\n", r.URI(), r.Path)
		}
		return mcp.NewToolResultText(sb.String()), nil
	}
}

// --- helpers ---

func toolError(err error) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultError(err.Error()), nil
}

func formatEntities[T any](entities []T, format func(T) string) (*mcp.CallToolResult, error) {
	if len(entities) == 0 {
		return mcp.NewToolResultText("No results."), nil
	}
	var sb strings.Builder
	for _, e := range entities {
		sb.WriteString(format(e))
		sb.WriteByte('\n')
	}
	return mcp.NewToolResultText(sb.String()), nil
}

func formatEntry(e domain.AssetEntry) string {
	return fmt.Sprintf("%s  %s", e.URI(), e.Path)
}
