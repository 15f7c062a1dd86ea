package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"rbxasset/internal/adapters/sqlite"
	"rbxasset/internal/application/commands"
)

var exportDB string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Write the asset index to a SQLite snapshot",
	Long: `Write the current asset index to a SQLite database, replacing
whatever snapshot it held. The mapping document is never modified.

Examples:
  rbxasset export
  rbxasset export --db /tmp/assets.db`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, ctx, cancel, err := loadedRuntime(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		path := exportDB
		if path == "" {
			path = filepath.Join(r.Config.Root, ".rbxasset", "assets.db")
		}

		store, err := sqlite.Open(path)
		if err != nil {
			return err
		}
		defer store.Close()

		res, err := commands.NewExportCommand(r.Coordinator, store).Execute(ctx)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Exported %d assets to %s\n", res.Entries, path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportDB, "db", "", "snapshot database (default <root>/.rbxasset/assets.db)")
	rootCmd.AddCommand(exportCmd)
}
