package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate",
	Short: "Print the mapping document the index is built from",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		r, _, cancel, err := loadedRuntime(cmd)
		if err != nil {
			return err
		}
		defer cancel()

		out := cmd.OutOrStdout()
		if r.Coordinator.MappingPath() == "" {
			fmt.Fprintln(out, "No asset mapping found")
			return nil
		}
		fmt.Fprintln(out, r.Coordinator.MappingPath())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
}
