package main

import (
	"context"
	"fmt"
	"os"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/greenbier/ues-resolver/internal/config"
	"github.com/greenbier/ues-resolver/internal/orchestrator"
	"github.com/greenbier/ues-resolver/internal/sourcedb"
	"github.com/greenbier/ues-resolver/internal/uesstore"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Args:  cobra.NoArgs,
	Short: "Execute a single resolution run",
	Long:  `Runs the five-stage reconciliation pipeline once against the configured ALPHA, BETA, and UES databases and prints the resulting run id and gate status.`,
	RunE:  runResolutionPass,
}

func runResolutionPass(cmd *cobra.Command, args []string) error {
	setupLogger()
	ctx := context.Background()

	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	alphaDB, err := sourcedb.NewAlphaDB(ctx, cfg.Env.AlphaDatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to alpha database: %w", err)
	}
	defer alphaDB.Close()

	betaDB, err := sourcedb.NewBetaDB(ctx, cfg.Env.BetaDatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to beta database: %w", err)
	}
	defer betaDB.Close()

	uesDB, err := uesstore.New(ctx, cfg.Env.UESDatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to UES database: %w", err)
	}
	defer uesDB.Close()

	var redisClient *redis.Client
	if cfg.Env.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Env.RedisAddr})
		defer redisClient.Close()
	}

	llmAPIKey := os.Getenv(cfg.Env.LLMAPIKeyEnv)
	orch := orchestrator.New(cfg, alphaDB, betaDB, uesDB, redisClient, llmAPIKey)

	runID, err := orch.Run(ctx)
	if err != nil {
		return fmt.Errorf("resolution run failed: %w", err)
	}

	gateResult, err := uesDB.ReadQualityGateResult(ctx, runID)
	if err != nil {
		log.Warn().Err(err).Str("run_id", runID).Msg("run completed but could not read back gate result")
		fmt.Printf("run %s completed\n", runID)
		return nil
	}

	fmt.Printf("run %s completed: gate status %s\n", runID, gateResult.Status)
	if len(gateResult.FailedGates) > 0 {
		fmt.Printf("failed gates: %v\n", gateResult.FailedGates)
	}
	return nil
}
