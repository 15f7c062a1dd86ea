package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcpadapter "rbxasset/internal/adapters/mcp"
	"rbxasset/internal/bootstrap"
	"rbxasset/internal/config"
)

func main() {
	rootFlag := flag.String("root", config.ProjectRoot(), "project root")
	flag.Parse()

	// stdout carries the protocol; everything else goes to stderr
	rt, err := bootstrap.New(*rootFlag, os.Stderr)
	if err != nil {
		log.Fatalf("rbxasset-mcp: %v", err)
	}

	mcpServer := server.NewMCPServer(
		"rbxasset-mcp",
		"0.1.0",
		server.WithToolCapabilities(true),
	)

	mcpServer.AddTool(
		mcp.NewTool("ping",
			mcp.WithDescription("Health check, returns pong"),
		),
		func(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			return mcp.NewToolResultText("pong"), nil
		},
	)

	mcpadapter.RegisterReadTools(mcpServer, rt.Coordinator, rt.Config.PreviewCommand)
	mcpadapter.RegisterControlTools(mcpServer, rt.Coordinator, rt.Coordinator)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	stdio := server.NewStdioServer(mcpServer)
	err = rt.Serve(ctx, func(ctx context.Context) error {
		return stdio.Listen(ctx, os.Stdin, os.Stdout)
	})
	if err != nil && ctx.Err() == nil {
		log.Fatalf("rbxasset-mcp: %v", err)
	}
}
