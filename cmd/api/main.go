package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/config"
	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/engine"
	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/handlers"
	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	var logger *zap.Logger
	if cfg.Env == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()
	sugar := logger.Sugar()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// ClickHouse
	chOpts, err := clickhouse.ParseDSN(cfg.ClickHouseURL)
	if err != nil {
		sugar.Fatalw("Invalid ClickHouse URL", "error", err)
	}
	chConn, err := clickhouse.Open(chOpts)
	if err != nil {
		sugar.Fatalw("Failed to connect to ClickHouse", "error", err)
	}
	defer chConn.Close()
	if err := chConn.Ping(ctx); err != nil {
		sugar.Warnw("ClickHouse unreachable at startup, predictions will run without history", "error", err)
	}

	// Postgres
	pgPool, err := pgxpool.New(ctx, cfg.PostgresURL)
	if err != nil {
		sugar.Fatalw("Failed to connect to Postgres", "error", err)
	}
	defer pgPool.Close()

	// Redis
	redisOpts, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		sugar.Fatalw("Invalid Redis URL", "error", err)
	}
	redisClient := redis.NewClient(redisOpts)
	defer redisClient.Close()

	// Persistence: ClickHouse behind the async batch writer
	chStore := store.NewClickHouseStore(chConn, logger)
	writer := store.NewWriter(store.WriterConfig{
		Store:         chStore,
		Logger:        logger,
		QueueSize:     cfg.WriterQueueSize,
		BatchSize:     cfg.WriterBatchSize,
		FlushInterval: cfg.WriterFlushInterval,
	})
	writer.Start(ctx)

	// Prediction engine
	eng := engine.New(engine.Config{
		Store:      writer,
		Logger:     logger,
		MaxFactors: cfg.MaxFactors,
		Seed:       cfg.PredictionSeed,
	})

	handler := handlers.New(handlers.Config{
		Engine:     eng,
		Postgres:   pgPool,
		ClickHouse: chConn,
		Redis:      redisClient,
		Logger:     logger,
		RateLimits: map[string]int{
			"free":  cfg.RateLimitFree,
			"pro":   cfg.RateLimitPro,
			"elite": cfg.RateLimitElite,
		},
		RecentFeedSize: cfg.RecentFeedSize,
	})

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      handler.Routes(cfg.AllowedOrigins),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		sugar.Infow("Prediction API listening", "port", cfg.Port, "env", cfg.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			sugar.Fatalw("Server failed", "error", err)
		}
	}()

	<-ctx.Done()
	sugar.Info("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		sugar.Errorw("Server shutdown failed", "error", err)
	}

	writer.Stop()
	sugar.Info("Shutdown complete")
}
