package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	// Server
	Port int
	Env  string

	// CORS
	AllowedOrigins []string

	// Database URLs
	ClickHouseURL string
	PostgresURL   string
	RedisURL      string

	// Prediction engine
	MaxFactors     int
	PredictionSeed int64

	// Async writer
	WriterQueueSize     int
	WriterBatchSize     int
	WriterFlushInterval time.Duration

	// Recent-predictions feed
	RecentFeedSize int

	// Per-tier rate limits (requests per minute)
	RateLimitFree  int
	RateLimitPro   int
	RateLimitElite int
}

// Load loads configuration from environment variables.
// It returns an error if critical configuration is missing.
func Load() (*Config, error) {
	cfg := &Config{
		Port: getEnvInt("PORT", 8080),
		Env:  getEnv("ENV", "development"),

		MaxFactors:     getEnvInt("MAX_FACTORS", 5),
		PredictionSeed: getEnvInt64("PREDICTION_SEED", 0),

		WriterQueueSize:     getEnvInt("WRITER_QUEUE_SIZE", 1000),
		WriterBatchSize:     getEnvInt("WRITER_BATCH_SIZE", 100),
		WriterFlushInterval: getEnvDuration("WRITER_FLUSH_INTERVAL", 1*time.Second),

		RecentFeedSize: getEnvInt("RECENT_FEED_SIZE", 50),

		RateLimitFree:  getEnvInt("RATE_LIMIT_FREE", 10),
		RateLimitPro:   getEnvInt("RATE_LIMIT_PRO", 60),
		RateLimitElite: getEnvInt("RATE_LIMIT_ELITE", 600),
	}

	// CORS
	origins := getEnv("ALLOWED_ORIGINS", "http://localhost:3000")
	rawOrigins := strings.Split(origins, ",")
	for _, o := range rawOrigins {
		if trimmed := strings.TrimSpace(o); trimmed != "" {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, trimmed)
		}
	}

	// Critical configuration - fail if missing
	var err error
	if cfg.ClickHouseURL, err = getEnvRequired("CLICKHOUSE_URL"); err != nil {
		return nil, err
	}
	if cfg.PostgresURL, err = getEnvRequired("POSTGRES_URL"); err != nil {
		return nil, err
	}
	if cfg.RedisURL, err = getEnvRequired("REDIS_URL"); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvRequired(key string) (string, error) {
	if value := os.Getenv(key); value != "" {
		return value, nil
	}
	return "", fmt.Errorf("missing required environment variable: %s", key)
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
