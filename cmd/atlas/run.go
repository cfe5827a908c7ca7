package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"launchcanvas/atlas/pkg/analysis"
	"launchcanvas/atlas/pkg/analysis/retention"
	"launchcanvas/atlas/pkg/analysis/storage"
	"launchcanvas/atlas/pkg/cli"
	"launchcanvas/atlas/pkg/config"
	"launchcanvas/atlas/pkg/journey"
	"launchcanvas/atlas/pkg/secrets"
	"launchcanvas/atlas/pkg/server"
	"launchcanvas/atlas/pkg/telemetry/logging"
	"launchcanvas/atlas/pkg/telemetry/metrics"
	"launchcanvas/atlas/pkg/upstream"
)

var runFlags struct {
	listenAddress string
	logLevel      string
	dryRun        bool
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the Atlas gateway server",
	Long: `Start the Atlas gateway server with the specified configuration.

The server forwards chat-completion requests to the upstream API using the
server-held credential, serves the connectivity probe, and persists saved
analyses with their derived user journeys.

Examples:
  # Start with default config
  atlas run

  # Start with custom config
  atlas run --config /etc/atlas/config.yaml

  # Override listen address
  atlas run --listen 0.0.0.0:8080

  # Validate config without starting server
  atlas run --dry-run`,
	RunE: runServer,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&runFlags.listenAddress, "listen", "l", "", "override listen address")
	runCmd.Flags().StringVar(&runFlags.logLevel, "log-level", "", "override log level (debug, info, warn, error)")
	runCmd.Flags().BoolVar(&runFlags.dryRun, "dry-run", false, "validate config without starting server")
}

func runServer(cmd *cobra.Command, args []string) error {
	// Load configuration
	cfg, err := config.LoadConfigWithEnvOverrides(cfgFile)
	if err != nil {
		return cli.NewConfigError("", fmt.Sprintf("failed to load config: %v", err))
	}

	// Apply flag overrides
	if runFlags.listenAddress != "" {
		cfg.Gateway.ListenAddress = runFlags.listenAddress
	}
	if runFlags.logLevel != "" {
		cfg.Telemetry.Logging.Level = runFlags.logLevel
	}

	logger, err := logging.Setup(cfg.Telemetry.Logging)
	if err != nil {
		return cli.NewConfigError("telemetry.logging", err.Error())
	}

	if runFlags.dryRun {
		fmt.Println("✓ Configuration valid")
		return nil
	}

	fmt.Printf("Atlas v%s\n", Version)
	fmt.Printf("Loading configuration from: %s\n", cfgFile)
	fmt.Println("✓ Configuration loaded")

	// Metrics registry and gateway collectors
	var gatewayMetrics *metrics.GatewayMetrics
	var metricsHandler http.Handler
	if cfg.Telemetry.Metrics.Enabled {
		registry := prometheus.NewRegistry()
		gatewayMetrics = metrics.NewGatewayMetrics(&cfg.Telemetry.Metrics, registry)
		metricsHandler = metrics.Handler(registry)
	}

	// Upstream client and credential resolver
	upstreamClient := upstream.NewClient(&cfg.Upstream)
	resolver := secrets.NewEnvResolver(cfg.Secrets.EnvPrefix)

	// Analysis storage
	logger.Info("initializing analysis storage", "backend", cfg.Analysis.Backend)
	var analysisStorage analysis.Storage
	switch cfg.Analysis.Backend {
	case "sqlite":
		analysisStorage, err = storage.NewSQLiteStorage(&cfg.Analysis.SQLite, logger)
		if err != nil {
			return fmt.Errorf("failed to create SQLite storage: %w", err)
		}
	case "memory":
		analysisStorage = storage.NewMemoryStorage()
	default:
		return fmt.Errorf("unsupported analysis backend: %s", cfg.Analysis.Backend)
	}
	defer analysisStorage.Close()
	fmt.Println("✓ Analysis store initialized")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Retention pruner (only when a schedule is configured)
	if cfg.Analysis.Retention.PruneSchedule != "" {
		pruner := retention.NewPruner(analysisStorage, &cfg.Analysis.Retention, logger)
		if err := pruner.Start(ctx); err != nil {
			logger.Warn("failed to start retention scheduler", "error", err)
		} else {
			defer pruner.Stop()
			if next := pruner.NextPruning(); next != nil {
				logger.Debug("retention scheduler started", "next_pruning", next)
			}
		}
	}

	// Limitations table, optionally loaded from file and watched for changes
	table := journey.NewDefaultTable()
	if cfg.Canvas.LimitationsPath != "" {
		if err := table.LoadFile(cfg.Canvas.LimitationsPath); err != nil {
			return cli.NewConfigError("canvas.limitations_path", err.Error())
		}
		logger.Info("loaded limitations table",
			"path", cfg.Canvas.LimitationsPath,
			"entries", table.Len(),
		)

		if cfg.Canvas.Watch {
			watcher, err := journey.NewTableWatcher(cfg.Canvas.LimitationsPath, table, logger)
			if err != nil {
				return fmt.Errorf("failed to create limitations watcher: %w", err)
			}
			go func() {
				if err := watcher.Watch(ctx); err != nil {
					logger.Error("limitations watcher stopped", "error", err)
				}
			}()
			defer watcher.Stop()
			fmt.Println("✓ Limitations hot-reload enabled")
		}
	}

	// Create HTTP server
	srv := server.NewServer(cfg, server.Dependencies{
		Upstream:       upstreamClient,
		Secrets:        resolver,
		Storage:        analysisStorage,
		Limitations:    table,
		Metrics:        gatewayMetrics,
		MetricsHandler: metricsHandler,
		Logger:         logger,
	})

	errChan := make(chan error, 1)
	go func() {
		if err := srv.Start(ctx); err != nil {
			errChan <- err
		}
	}()

	fmt.Println()
	fmt.Printf("✓ Server listening on %s\n", cfg.Gateway.ListenAddress)
	fmt.Printf("✓ Health endpoint: http://%s/healthz\n", cfg.Gateway.ListenAddress)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics endpoint: http://%s%s\n", cfg.Gateway.ListenAddress, cfg.Telemetry.Metrics.Path)
	}
	fmt.Println("\nPress Ctrl+C to stop")

	// Wait for shutdown signal or server error
	sigChan := cli.WaitForShutdown()

	select {
	case err := <-errChan:
		return cli.NewCommandError("run", err)
	case sig := <-sigChan:
		fmt.Printf("\nReceived signal %s, shutting down gracefully...\n", sig)
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.Gateway.ShutdownTimeout)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
			return cli.NewCommandError("run", err)
		}

		fmt.Println("✓ Server stopped")
		return nil
	}
}
