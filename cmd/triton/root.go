package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mentorly-hq/triton/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "triton",
	Short: "Triton - AI study gateway",
	Long: `Triton is an HTTP gateway that fronts AI-backed study endpoints.

It admits traffic through two tiers of per-IP rate limiting, resolves client
identity behind a single reverse-proxy hop, and funnels every handler failure
through one error boundary. AI routes:
  - POST /generate-plan      week-by-week study plans
  - POST /curate-resources   curated learning resources
  - /pdf/...                 document upload and grounded chat`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitCodeFor(err))
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.CompletionOptions.DisableDefaultCmd = false
}
