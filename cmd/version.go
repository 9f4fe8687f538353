package cmd

import (
	"fmt"

	"github.com/itsmostafa/ossemdict/internal/version"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print build information",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "ossemdict %s\n", version.String())
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
