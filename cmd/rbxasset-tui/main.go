package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"rbxasset/internal/adapters/editor"
	"rbxasset/internal/adapters/preview"
	"rbxasset/internal/adapters/tui"
	"rbxasset/internal/bootstrap"
	"rbxasset/internal/config"
)

func main() {
	rootFlag := flag.String("root", config.ProjectRoot(), "project root")
	logFile := flag.String("log", "", "write logs to this file")
	flag.Parse()

	// The alternate screen owns the terminal, so logs are dropped unless
	// sent to a file
	var logOut io.Writer = io.Discard
	if *logFile != "" {
		f, err := tea.LogToFile(*logFile, "rbxasset")
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logOut = f
	}

	rt, err := bootstrap.New(*rootFlag, logOut)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Watch in the background so the browser follows mapping edits
	go func() {
		if err := rt.Serve(ctx, func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		}); err != nil {
			rt.Logger.Error("watch stopped", "err", err)
		}
	}()

	app := tui.NewApp(rt.Coordinator, rt.Coordinator, preview.NewOpener(), editor.NewOpener())

	p := tea.NewProgram(app, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
