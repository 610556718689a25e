package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenbier/ues-resolver/internal/config"
	"github.com/greenbier/ues-resolver/internal/uesstore"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Args:  cobra.NoArgs,
	Short: "Truncate all run-scoped UES tables",
	Long:  `Truncates every run-scoped table in the Unified Entity Store (lineage, reviews, metrics, anomaly and gate history, and the canonical entity tables themselves) without touching the ALPHA or BETA source databases.`,
	RunE:  resetUESStore,
}

var resetConfirmed bool

func init() {
	resetCmd.Flags().BoolVar(&resetConfirmed, "yes", false, "confirm the truncation (required; the command refuses to run without it)")
}

func resetUESStore(cmd *cobra.Command, args []string) error {
	setupLogger()

	if !resetConfirmed {
		return fmt.Errorf("this truncates every UES table; re-run with --yes to confirm")
	}

	ctx := context.Background()
	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	uesDB, err := uesstore.New(ctx, cfg.Env.UESDatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to UES database: %w", err)
	}
	defer uesDB.Close()

	if err := uesDB.Reset(ctx); err != nil {
		return fmt.Errorf("failed to reset UES store: %w", err)
	}

	fmt.Println("UES store reset complete")
	return nil
}
