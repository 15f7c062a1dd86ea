package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rbxasset/internal/application/commands"
)

var (
	definitionChar int
	definitionOpen bool
)

var definitionCmd = &cobra.Command{
	Use:   "definition <line>",
	Short: "Print the asset file referenced under a cursor",
	Long: `Print the file the asset path at --char points to, relative to
the project root. With --open the file is opened in $EDITOR.

Example:
  rbxasset definition 'getAsset("ui/logo.png")' --char 12`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		loc, err := commands.NewDefinitionCommand(rt.Config.Root, args[0], definitionChar).Execute(cmd.Context())
		if err != nil {
			return err
		}
		if loc == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No definition")
			return nil
		}

		if definitionOpen {
			return openInEditor(loc.Path, loc.Line)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s:%d:%d\n", loc.Path, loc.Line+1, loc.Column+1)
		return nil
	},
}

func init() {
	definitionCmd.Flags().IntVarP(&definitionChar, "char", "c", 0, "zero-based cursor byte offset, clamped to the line")
	definitionCmd.Flags().BoolVarP(&definitionOpen, "open", "o", false, "open the file in $EDITOR")
	rootCmd.AddCommand(definitionCmd)
}
