package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"rbxasset/internal/bootstrap"
	"rbxasset/internal/config"
)

var (
	projectRoot string
	loadTimeout time.Duration
	rt          *bootstrap.Runtime
)

var rootCmd = &cobra.Command{
	Use:   "rbxasset",
	Short: "Resolve Roblox asset references against a project's asset map",
	Long: `rbxasset indexes the asset mapping document of a project
(assetMap.ts by default) and resolves asset paths and bare filenames
to rbxassetid:// identifiers.

It provides commands to locate the mapping, resolve tokens, render
hovers, jump to asset files, list, search and export the index, and
watch the mapping for changes.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip initialization for help commands
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		r, err := bootstrap.New(projectRoot, os.Stderr)
		if err != nil {
			return err
		}
		rt = r
		return nil
	},
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&projectRoot, "root", "r", config.ProjectRoot(), "project root")
	rootCmd.PersistentFlags().DurationVar(&loadTimeout, "timeout", 30*time.Second, "how long to wait for the index to load")
}

// loadedRuntime runs the first load and returns the runtime once the index
// is ready
func loadedRuntime(cmd *cobra.Command) (*bootstrap.Runtime, context.Context, context.CancelFunc, error) {
	ctx, cancel := context.WithTimeout(cmd.Context(), loadTimeout)
	if err := rt.Start(ctx); err != nil {
		cancel()
		return nil, nil, nil, err
	}
	return rt, ctx, cancel, nil
}
