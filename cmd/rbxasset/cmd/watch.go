package cmd

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Keep the index current and log every reload",
	Long: `Load the index, then watch the project for changes to the
mapping document until interrupted. Reloads are logged to stderr.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		rt.Logger.Info("watching", "root", rt.Config.Root, "pattern", rt.Config.WatchPattern)
		return rt.Serve(ctx, func(ctx context.Context) error {
			<-ctx.Done()
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
