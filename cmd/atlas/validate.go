package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"launchcanvas/atlas/pkg/cli"
	"launchcanvas/atlas/pkg/config"
)

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate configuration",
	Long: `Load and validate the configuration file without starting the server.

The validate command checks:
  - YAML syntax and unknown-field errors
  - Listen address and timeout values
  - Storage backend selection and SQLite settings
  - Retention schedule syntax
  - Logging and metrics settings

Examples:
  # Validate the default config file
  atlas validate

  # Validate a specific config file
  atlas validate --config /etc/atlas/config.yaml`,
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

	fmt.Printf("Validating configuration: %s\n", cfgFile)
	fmt.Println()
	fmt.Printf("✓ Gateway: listen on %s\n", cfg.Gateway.ListenAddress)
	fmt.Printf("✓ Upstream: %s (probe model %s)\n", cfg.Upstream.BaseURL, cfg.Upstream.ProbeModel)
	fmt.Printf("✓ Secrets: env prefix %s, credential %q\n", cfg.Secrets.EnvPrefix, cfg.Secrets.UpstreamCredential)
	fmt.Printf("✓ Analysis: backend %s\n", cfg.Analysis.Backend)
	if cfg.Analysis.Backend == "sqlite" {
		fmt.Printf("  SQLite path: %s\n", cfg.Analysis.SQLite.Path)
	}
	if cfg.Analysis.Retention.PruneSchedule != "" {
		fmt.Printf("✓ Retention: schedule %q, keep %d days, max %d records\n",
			cfg.Analysis.Retention.PruneSchedule,
			cfg.Analysis.Retention.RetentionDays,
			cfg.Analysis.Retention.MaxRecords,
		)
	}
	if cfg.Canvas.LimitationsPath != "" {
		fmt.Printf("✓ Canvas: limitations table %s (watch: %v)\n", cfg.Canvas.LimitationsPath, cfg.Canvas.Watch)
	} else {
		fmt.Println("✓ Canvas: compiled-in limitations table")
	}
	fmt.Printf("✓ Logging: level %s, format %s\n", cfg.Telemetry.Logging.Level, cfg.Telemetry.Logging.Format)
	if cfg.Telemetry.Metrics.Enabled {
		fmt.Printf("✓ Metrics: exposed at %s\n", cfg.Telemetry.Metrics.Path)
	}
	fmt.Println()
	fmt.Println("Configuration is valid")

	return nil
}
