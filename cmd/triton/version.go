package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Populated through -ldflags at release time. The defaults identify a
// from-source build.
var (
	Version   = "0.1.0-dev"
	GitCommit = ""
	BuildDate = ""
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show triton version and build metadata",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("triton %s (%s, %s/%s)\n", Version, runtime.Version(), runtime.GOOS, runtime.GOARCH)
		if GitCommit != "" {
			fmt.Printf("  commit: %s\n", GitCommit)
		}
		if BuildDate != "" {
			fmt.Printf("  built:  %s\n", BuildDate)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
