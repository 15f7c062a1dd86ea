package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rbxasset/internal/application/commands"
)

var searchLimit int

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search the asset index",
	Long: `Search for assets by path, filename, or id.

Results are ranked by relevance using fuzzy matching.

Examples:
  rbxasset search logo
  rbxasset search 111`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, ctx, cancel, err := loadedRuntime(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		results, err := commands.NewSearchCommand(r.Coordinator, args[0], searchLimit).Execute(ctx)
		if err != nil {
			return err
		}

		if len(results) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No results found")
			return nil
		}

		for _, res := range results {
			fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s %s\n", res.Kind(), res.ID, res.Path)
		}
		return nil
	},
}

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "n", 20, "maximum results, 0 for all")
	rootCmd.AddCommand(searchCmd)
}
