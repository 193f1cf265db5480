// Package cli defines the spyglass command tree.
package cli

import (
	"os"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "spyglass",
	Short: "Personal ETF research toolkit",
	Long: `Spyglass collects daily market and macro data for a small ETF
universe, scores each fund on technical, fundamental, and risk criteria,
and combines the three into a weighted portfolio signal with optional
LLM-written narratives.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(setupCmd)
	rootCmd.AddCommand(collectCmd)
	rootCmd.AddCommand(backfillCmd)
	rootCmd.AddCommand(technicalCmd)
	rootCmd.AddCommand(fundamentalCmd)
	rootCmd.AddCommand(riskCmd)
	rootCmd.AddCommand(adviseCmd)
	rootCmd.AddCommand(quoteCmd)
	rootCmd.AddCommand(serveCmd)
}
