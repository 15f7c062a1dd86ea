package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rbxasset/internal/application/commands"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <path-or-filename>",
	Short: "Resolve an asset token to its rbxassetid",
	Long: `Resolve a full asset path, or a bare filename that names exactly
one asset, to its rbxassetid:// identifier. Unknown and ambiguous tokens
print "Unresolved." and are not errors.

Examples:
  rbxasset resolve ui/logo.png
  rbxasset resolve logo.png`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, ctx, cancel, err := loadedRuntime(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		res, err := commands.NewResolveCommand(r.Coordinator, args[0]).Execute(ctx)
		if err != nil {
			return err
		}
		if !res.Resolved {
			fmt.Fprintln(cmd.OutOrStdout(), "Unresolved.")
			return nil
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", res.Entry.URI(), res.Entry.Path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
