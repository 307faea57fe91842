package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"mentorly-hq/triton/pkg/ai"
	"mentorly-hq/triton/pkg/cli"
	"mentorly-hq/triton/pkg/config"
	"mentorly-hq/triton/pkg/docstore"
	"mentorly-hq/triton/pkg/docstore/retention"
	"mentorly-hq/triton/pkg/gateway"
	"mentorly-hq/triton/pkg/telemetry/logging"
	"mentorly-hq/triton/pkg/telemetry/metrics"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Triton gateway",
	Long: `Start the Triton gateway with the specified configuration.

The gateway listens on the configured address and admits requests through the
global and AI rate limiters before routing them to the AI-backed handlers.

Examples:
  # Start with default config
  triton run

  # Start with custom config
  triton run --config /etc/triton/config.yaml

  # Override listen address
  triton run --listen 0.0.0.0:8080

  # Validate config without starting the gateway
  triton run --dry-run`,
	RunE: runGateway,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting the gateway")
}

func runGateway(cmd *cobra.Command, args []string) error {
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Server.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}
	if verbose {
		cfg.Telemetry.Logging.Level = "debug"
	}

	if err := config.Validate(cfg); err != nil {
		return cli.NewConfigError("", err.Error())
	}

	logger, err := logging.Setup(cfg.Telemetry.Logging, os.Stdout)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	if err := os.MkdirAll(cfg.Server.ScratchDir, 0o755); err != nil {
		return cli.NewConfigError("server.scratch_dir", err.Error())
	}

	var collector *metrics.Collector
	if cfg.Telemetry.Metrics.Enabled {
		collector = metrics.NewCollector(cfg.Telemetry.Metrics)
	}

	// Shutdown signals cancel the background workers (store connect,
	// retention scheduler, config watcher) as well as the server itself.
	ctx := cli.SetupSignalHandler()

	// The store connects in the background. Its outcome is observed and
	// logged; the gateway serves traffic regardless and store-backed
	// handlers surface ErrNotConnected until it succeeds.
	store := docstore.New(cfg.Store.Path)
	defer store.Close()
	go func() {
		// Connect logs its own outcome; a failure leaves the store in the
		// Failed state without taking the gateway down.
		_ = store.Connect(ctx)
	}()

	pruner := retention.NewPruner(store, retention.Config{
		RetentionDays: cfg.Store.RetentionDays,
		PruneSchedule: cfg.Store.PruneSchedule,
	})
	scheduler := retention.NewScheduler(pruner)
	if err := scheduler.Start(ctx); err != nil {
		logger.Warn("retention scheduler not started", "error", err)
	} else {
		defer scheduler.Stop()
	}

	// Config watcher: log-level changes apply live, the rest needs a
	// restart.
	if watcher, err := config.NewWatcher(cfgFile, logger); err == nil {
		go func() {
			err := watcher.Watch(ctx, func(next *config.Config) {
				if err := logging.SetLevel(next.Telemetry.Logging.Level); err != nil {
					logger.Warn("ignoring invalid log level from config reload",
						"level", next.Telemetry.Logging.Level)
				}
			})
			if err != nil {
				logger.Warn("config watcher stopped", "error", err)
			}
		}()
		defer func() { _ = watcher.Stop() }()
	} else {
		logger.Debug("config watcher disabled", "error", err)
	}

	completer, err := ai.NewClient(cfg.AI, collector)
	if err != nil {
		return cli.NewConfigError("ai", err.Error())
	}

	printBanner(cfg)

	srv := gateway.NewServer(cfg, store, completer, collector)
	if err := srv.Start(ctx); err != nil {
		return cli.NewCommandError("run", err)
	}

	fmt.Println("✓ Gateway stopped")
	return nil
}

func printBanner(cfg *config.Config) {
	fmt.Printf("Triton v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")
	fmt.Printf("✓ Listening on %s\n", cfg.Server.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/health\n", cfg.Server.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Server.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")
}
