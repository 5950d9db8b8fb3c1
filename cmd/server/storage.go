package main

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib" // registers the "pgx" database/sql driver

	"github.com/aesirglt/AdaTech/internal/config"
	"github.com/aesirglt/AdaTech/internal/domain"
	"github.com/aesirglt/AdaTech/internal/platform/memory"
	"github.com/aesirglt/AdaTech/internal/platform/postgres"
	"github.com/aesirglt/AdaTech/internal/platform/redis"
	"github.com/aesirglt/AdaTech/internal/store"
)

const pingTimeout = 5 * time.Second

// openCardTable builds the card table for the configured driver. The returned
// closer releases the underlying connection and is never nil.
func openCardTable(
	ctx context.Context,
	cfg config.DatabaseConfig,
	logger *slog.Logger,
) (store.Table[domain.Card], io.Closer, error) {
	switch cfg.Driver {
	case config.DriverMemory:
		logger.Info("using in-memory card storage")
		return memory.NewCardTable(), nopCloser{}, nil

	case config.DriverPostgres:
		db, err := setupAppDatabase(ctx, cfg.URL, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := postgres.Migrate(ctx, db, logger); err != nil {
			_ = db.Close()
			return nil, nil, err
		}
		return postgres.NewCardTable(db, logger), db, nil

	case config.DriverRedis:
		pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
		defer cancel()

		client, err := redis.Open(pingCtx, cfg.RedisAddr)
		if err != nil {
			return nil, nil, err
		}
		logger.Info("redis connection established")
		return redis.NewCardTable(client, logger), client, nil

	default:
		return nil, nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// setupAppDatabase establishes a connection to the database and configures connection pools.
func setupAppDatabase(ctx context.Context, url string, logger *slog.Logger) (*sql.DB, error) {
	db, err := sql.Open("pgx", url)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	logger.Info("database connection established")
	return db, nil
}

// runMigrations applies pending migrations for the postgres driver.
func runMigrations(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if cfg.Database.Driver != config.DriverPostgres {
		return fmt.Errorf("migrations require the %q driver, got %q", config.DriverPostgres, cfg.Database.Driver)
	}

	db, err := setupAppDatabase(ctx, cfg.Database.URL, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("error closing database connection", slog.String("error", err.Error()))
		}
	}()

	return postgres.Migrate(ctx, db, logger)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
