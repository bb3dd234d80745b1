// Package main provides the notesctl entry point: schema migrations and
// offline summaries of transcript files.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-notes/pkg/config"
)

// Global flags
var verbose bool

var rootCmd = &cobra.Command{
	Use:   "notesctl",
	Short: "Meeting notes command line tools",
	Long: `notesctl manages the meeting notes database and summarizes transcript files
without going through the HTTP API.

Configuration is read from the environment (and .env), the same way the API server does.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log progress to stderr")

	rootCmd.AddCommand(newMigrateCmd())
	rootCmd.AddCommand(newSummarizeCmd())
	rootCmd.AddCommand(newWatchCmd())
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newLogger returns a development logger with --verbose and a no-op logger otherwise
func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to initialize logger: %v\n", err)
		return zap.NewNop()
	}
	return logger
}

// loadConfig loads the shared configuration, optionally overriding the summary provider
func loadConfig(provider string) (*config.Config, error) {
	if provider != "" {
		os.Setenv("AI_PROVIDER", provider)
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}
