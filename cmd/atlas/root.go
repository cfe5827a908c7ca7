package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "atlas",
	Short: "Atlas - LLM gateway and product-strategy engine",
	Long: `Atlas is an HTTP gateway and strategy engine for product-launch planning.

It provides:
  - A proxy for chat-completion requests that keeps the upstream API
    credential server-side
  - An upstream connectivity probe
  - Derived user-journey documents computed from product-canvas form state
  - Persistent storage for saved analyses with retention pruning`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global persistent flags (available to all subcommands)
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "config.yaml", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
