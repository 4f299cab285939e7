package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/spigell/subject-advisor/internal/catalog"
)

// Actual version can be specified in build command.
var version = "unknown"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version and the size of the builtin catalog",
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "%s version: %s (%d combinations, %d questions)\n",
			app, version, len(catalog.Combinations), len(catalog.Questions))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
