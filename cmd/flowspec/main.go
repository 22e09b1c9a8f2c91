// Package main provides the FlowSpec CLI application
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set during build
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "flowspec",
	Short: "Declare and validate workflow graph specs",
	Long: `FlowSpec checks declarative workflow graphs before anything tries to
run them: referential integrity, conditional edge completeness, and cycles.`,
	SilenceUsage: true,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "FlowSpec %s (commit: %s, built: %s)\n", Version, Commit, BuildTime)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(vetCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(VetExitError)
	}
}
