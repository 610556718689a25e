package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

var (
	configDir string
	verbose   bool
)

var rootCmd = &cobra.Command{
	Use:   "resolver-cli",
	Short: "Operate the unified entity store resolution pipeline",
	Long: `resolver-cli drives the reconciliation pipeline that merges the
ALPHA and BETA source systems into the canonical Unified Entity Store: run a
resolution pass on demand, reset the run-scoped tables, or inspect the most
recent quality gate verdict.`,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "directory containing the rule YAML files (defaults to RESOLVER_CONFIG_DIR or ./config)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(gateStatusCmd)
	rootCmd.AddCommand(migrateCmd)
}

func setupLogger() {
	level := zerolog.InfoLevel
	if verbose {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
