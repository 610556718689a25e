package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenbier/ues-resolver/internal/config"
	"github.com/greenbier/ues-resolver/internal/uesstore"
)

var gateStatusCmd = &cobra.Command{
	Use:   "gate-status",
	Args:  cobra.NoArgs,
	Short: "Print the most recent quality gate verdict",
	Long:  `Reads and prints the PASS/FAIL verdict, failed gate names, and gate values recorded for the most recently completed resolution run.`,
	RunE:  printGateStatus,
}

func printGateStatus(cmd *cobra.Command, args []string) error {
	setupLogger()

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

	result, err := uesDB.ReadLatestQualityGateResult(ctx)
	if err != nil {
		return fmt.Errorf("failed to read latest quality gate result: %w", err)
	}

	fmt.Printf("run:    %s\n", result.RunID)
	fmt.Printf("status: %s\n", result.Status)
	for name, value := range result.GateValues {
		fmt.Printf("  %s: %.4f\n", name, value)
	}
	if len(result.FailedGates) > 0 {
		fmt.Printf("failed gates: %v\n", result.FailedGates)
	}
	return nil
}
