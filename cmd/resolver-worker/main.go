package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/greenbier/ues-resolver/internal/config"
	"github.com/greenbier/ues-resolver/internal/migrations"
	"github.com/greenbier/ues-resolver/internal/orchestrator"
	"github.com/greenbier/ues-resolver/internal/sourcedb"
	"github.com/greenbier/ues-resolver/internal/uesstore"
	"github.com/greenbier/ues-resolver/internal/workerscheduler"
)

func main() {
	setupLogger()

	log.Info().Msg("starting unified entity store resolver worker")

	cfg := config.MustLoad("")
	log.Info().
		Str("env", cfg.Env.AppEnv).
		Str("log_level", cfg.Env.LogLevel).
		Str("schedule", cfg.Env.WorkerCron).
		Msg("configuration loaded")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info().Msg("received shutdown signal, shutting down gracefully")
		cancel()
	}()

	alphaDB, err := sourcedb.NewAlphaDB(ctx, cfg.Env.AlphaDatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to alpha database")
	}
	defer alphaDB.Close()

	betaDB, err := sourcedb.NewBetaDB(ctx, cfg.Env.BetaDatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to beta database")
	}
	defer betaDB.Close()

	if err := migrations.Apply(cfg.Env.UESDatabaseURL); err != nil {
		log.Fatal().Err(err).Msg("failed to apply UES schema migrations")
	}

	uesDB, err := uesstore.New(ctx, cfg.Env.UESDatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to UES database")
	}
	defer uesDB.Close()

	var redisClient *redis.Client
	if cfg.Env.RedisAddr != "" {
		redisClient = redis.NewClient(&redis.Options{Addr: cfg.Env.RedisAddr})
		if err := redisClient.Ping(ctx).Err(); err != nil {
			log.Warn().Err(err).Msg("failed to connect to redis - circuit breaker will degrade to in-process window")
			redisClient = nil
		} else {
			defer redisClient.Close()
			log.Info().Msg("redis connected")
		}
	}

	llmAPIKey := os.Getenv(cfg.Env.LLMAPIKeyEnv)

	orch := orchestrator.New(cfg, alphaDB, betaDB, uesDB, redisClient, llmAPIKey)
	sched := workerscheduler.New(orch)

	go startMetricsServer(cfg.Env.MetricsPort)

	if cfg.Env.EnableScheduler {
		if err := sched.Start(ctx, cfg.Env.WorkerCron); err != nil {
			log.Fatal().Err(err).Msg("failed to start scheduler")
		}
	} else {
		log.Info().Msg("scheduler disabled, running once and exiting")
		runID, err := sched.RunNow(ctx)
		if err != nil {
			log.Error().Err(err).Msg("resolution run failed")
			os.Exit(1)
		}
		log.Info().Str("run_id", runID).Msg("resolution run complete")
		return
	}

	<-ctx.Done()

	log.Info().Msg("shutting down scheduler")
	sched.Stop()
	log.Info().Msg("worker shutdown complete")
}

func setupLogger() {
	if os.Getenv("APP_ENV") == "development" {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stdout,
			TimeFormat: time.RFC3339,
		})
	}

	level := zerolog.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if parsed, err := zerolog.ParseLevel(lvl); err == nil {
			level = parsed
		}
	}
	zerolog.SetGlobalLevel(level)
}

func startMetricsServer(port int) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(`{"status":"healthy"}`))
	})

	addr := fmt.Sprintf(":%d", port)
	log.Info().Int("port", port).Msg("starting metrics server")

	if err := http.ListenAndServe(addr, mux); err != nil {
		log.Error().Err(err).Msg("metrics server failed")
	}
}
