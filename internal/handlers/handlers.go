package handlers

import (
	"context"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/go-playground/validator/v10"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/FlowDynamics828/Sports-Analytics-sub004/internal/engine"
)

// MaxBodySize limits the size of request bodies to 1MB
const MaxBodySize = 1048576

// recentFeedKey is the Redis list holding the latest predictions.
const recentFeedKey = "predictions:recent"

// PgPool defines the interface for PostgreSQL connection pool
type PgPool interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Config struct {
	Engine     *engine.Engine
	Postgres   PgPool
	ClickHouse driver.Conn
	Redis      *redis.Client
	Logger     *zap.Logger

	// Requests per minute by subscription tier.
	RateLimits map[string]int
	// Length of the recent-predictions feed.
	RecentFeedSize int
}

type Handler struct {
	engine         *engine.Engine
	pg             PgPool
	ch             driver.Conn
	redis          *redis.Client
	logger         *zap.SugaredLogger
	validate       *validator.Validate
	rateLimits     map[string]int
	recentFeedSize int
}

func New(cfg Config) *Handler {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.RateLimits == nil {
		cfg.RateLimits = map[string]int{"free": 10, "pro": 60, "elite": 600}
	}
	if cfg.RecentFeedSize <= 0 {
		cfg.RecentFeedSize = 50
	}
	return &Handler{
		engine:         cfg.Engine,
		pg:             cfg.Postgres,
		ch:             cfg.ClickHouse,
		redis:          cfg.Redis,
		logger:         cfg.Logger.Sugar(),
		validate:       validator.New(),
		rateLimits:     cfg.RateLimits,
		recentFeedSize: cfg.RecentFeedSize,
	}
}
