package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rbxasset/internal/application/commands"
)

var hoverChar int

var hoverCmd = &cobra.Command{
	Use:   "hover <line>",
	Short: "Render the hover for the asset reference under a cursor",
	Long: `Render the markdown hover for the asset reference at --char on
the given source line.

Example:
  rbxasset hover 'img.Image = getAsset("ui/logo.png")' --char 24`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		r, ctx, cancel, err := loadedRuntime(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		hover, err := commands.NewHoverCommand(r.Coordinator, r.Config.PreviewCommand, args[0], hoverChar).Execute(ctx)
		if err != nil {
			return err
		}
		if hover == nil {
			fmt.Fprintln(cmd.OutOrStdout(), "No asset reference")
			return nil
		}

		fmt.Fprint(cmd.OutOrStdout(), hover.Markdown)
		return nil
	},
}

func init() {
	hoverCmd.Flags().IntVarP(&hoverChar, "char", "c", 0, "zero-based cursor byte offset, clamped to the line")
	rootCmd.AddCommand(hoverCmd)
}
