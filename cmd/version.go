package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// InnkeepVersion is the current version of innkeep
const InnkeepVersion = "0.2.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of innkeep",
	Long:  "Print the version number of innkeep",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "innkeep version %s\n", InnkeepVersion)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.Version = InnkeepVersion
	rootCmd.SetVersionTemplate("innkeep version {{.Version}}\n")
	rootCmd.Flags().BoolP("version", "v", false, "version for innkeep")
}
