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
	Use:   "behar",
	Short: "AI Behar Platform - LLM gateway with OpenWebUI integration",
	Long: `AI Behar Platform is an HTTP gateway that puts a local LLM provider,
an OpenAI-compatible chat API, and the OpenWebUI frontend behind a single
listener.

It provides:
  - OpenAI-style chat completions bridged to the native provider API
  - Graceful fallback replies when the provider is unreachable
  - The OpenWebUI frontend proxied under /ui
  - Platform status surfaces for consciousness, agents, memory, and trading
  - Prometheus metrics, audit records, and chat session tracking

For more information, visit: https://github.com/behark/ai`,
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
