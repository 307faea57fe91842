package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"mentorly-hq/triton/pkg/cli"
	"mentorly-hq/triton/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate the configuration file",
	Long: `Load and validate the configuration file without starting the gateway.

Validation covers the listen address, the proxy trust depth, the CORS origin
list, and both limiter tiers, including the requirement that the AI tier is
at least as strict as the global tier.

Examples:
  # Validate the default config file
  triton validate

  # Validate a specific file
  triton validate --config /etc/triton/config.yaml`,
	RunE: validateConfig,
}

func init() {
	rootCmd.AddCommand(validateCmd)
}

func validateConfig(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("", err.Error())
	}

	fmt.Printf("✓ Configuration valid: %s\n", cfgFile)
	fmt.Printf("  listen address:   %s\n", cfg.Server.ListenAddress)
	fmt.Printf("  global limit:     %d requests / %s\n", cfg.Limits.Global.MaxRequests, cfg.Limits.Global.Window)
	fmt.Printf("  ai limit:         %d requests / %s\n", cfg.Limits.AI.MaxRequests, cfg.Limits.AI.Window)
	fmt.Printf("  allowed origins:  %d\n", len(cfg.CORS.AllowedOrigins))
	fmt.Printf("  store path:       %s\n", cfg.Store.Path)
	return nil
}
