package db

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"climateplanner/internal/config"
	"climateplanner/internal/core"
)

// NewPool creates a pgx connection pool from the database configuration and
// verifies connectivity with a ping before returning it.
func NewPool(ctx context.Context, cfg config.DatabaseConfig) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.URL.Unmask())
	if err != nil {
		return nil, fmt.Errorf("parsing database URL: %w", err)
	}

	poolCfg.MaxConns = int32(cfg.MaxConns)
	poolCfg.MinConns = int32(cfg.MinConns)
	poolCfg.MaxConnLifetime = cfg.MaxConnLifetime
	poolCfg.HealthCheckPeriod = cfg.HealthCheckPeriod
	poolCfg.ConnConfig.ConnectTimeout = cfg.AcquireTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("creating database pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	return pool, nil
}

// poolProbe reports pool connectivity for the health endpoint.
type poolProbe struct {
	pool *pgxpool.Pool
}

func (p poolProbe) Name() string { return "database" }

func (p poolProbe) Check(ctx context.Context) error {
	return p.pool.Ping(ctx)
}

// HealthProbe returns the health check probe for the database pool.
func HealthProbe(pool *pgxpool.Pool) core.HealthProbe {
	return poolProbe{pool: pool}
}
