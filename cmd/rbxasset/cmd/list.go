package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rbxasset/internal/application/commands"
)

var listCmd = &cobra.Command{
	Use:   "list [path-prefix]",
	Short: "List indexed assets",
	Long: `List every indexed asset ordered by path, optionally only those
under a path prefix.

Examples:
  rbxasset list
  rbxasset list ui/`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, ctx, cancel, err := loadedRuntime(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		prefix := ""
		if len(args) == 1 {
			prefix = args[0]
		}

		entries, err := commands.NewListCommand(r.Coordinator, prefix).Execute(ctx)
		if err != nil {
			return err
		}

		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s %s\n", e.Kind(), e.ID, e.Path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
