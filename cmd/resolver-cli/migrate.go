package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenbier/ues-resolver/internal/config"
	"github.com/greenbier/ues-resolver/internal/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Args:  cobra.NoArgs,
	Short: "Apply pending UES schema migrations",
	Long:  `Applies every embedded migration that has not yet run against the configured UES database. Safe to run repeatedly.`,
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	setupLogger()

	cfg, err := config.Load(configDir)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if err := migrations.Apply(cfg.Env.UESDatabaseURL); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	fmt.Println("UES schema is up to date")
	return nil
}
