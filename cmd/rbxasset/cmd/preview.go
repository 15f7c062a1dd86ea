package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"rbxasset/internal/adapters/preview"
)

var previewCmd = &cobra.Command{
	Use:   "preview <token>",
	Short: "Open an asset file in the system viewer or player",
	Long: `Decode a preview token, as carried by the hover's audio preview
link, and hand the file to the platform opener. Plain paths and file://
URIs are accepted as well.

Example:
  rbxasset preview file:///proj/sfx/click.mp3`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := preview.DecodeToken(args[0])
		if err != nil {
			return err
		}
		if err := preview.NewOpener().Preview(path); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Previewing %s\n", path)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(previewCmd)
}
