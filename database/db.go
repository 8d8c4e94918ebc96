package database

import (
	"context"
	"errors"
	"fmt"
	"partnersync/metrics"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

var (
	// ErrNotFound is returned when a requested row doesn't exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidFilter is returned when a query filter can't be parsed.
	ErrInvalidFilter = errors.New("invalid filter")
)

type DB struct {
	Pool *pgxpool.Pool
	log  *zap.Logger
}

func Connect(ctx context.Context, databaseURL string, log *zap.Logger) (*DB, error) {
	config, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse database URL: %w", err)
	}

	config.MaxConns = 25
	config.MinConns = 5
	config.MaxConnLifetime = time.Hour
	config.MaxConnIdleTime = 30 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	log.Info("Database connection established")
	return &DB{Pool: pool, log: log}, nil
}

func (db *DB) Close() {
	db.Pool.Close()
	db.log.Info("Database connection closed")
}

// observe records the duration of a query in the logs and metrics.
// Use as `defer db.observe("QueryProjects", "projects", time.Now(), fields...)`.
func (db *DB) observe(operation, table string, start time.Time, fields ...zap.Field) {
	duration := time.Since(start)
	metrics.RecordDBQueryDuration(operation, table, duration)
	db.log.Debug(operation, append(fields, zap.Duration("duration", duration))...)
}
