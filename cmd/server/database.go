package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/phrazzld/lexicon-srs/internal/config"
	"github.com/phrazzld/lexicon-srs/internal/platform/migrations"
	"github.com/phrazzld/lexicon-srs/internal/platform/postgres"
	"github.com/phrazzld/lexicon-srs/internal/platform/sqlite"
	"github.com/phrazzld/lexicon-srs/internal/store"
)

const defaultPostgresMaxOpenConns = 10

// database bundles the raw connection used for migrations with the
// transactor and stores built on top of it.
type database struct {
	sql    *sql.DB
	txr    store.Transactor
	stores store.Stores
}

// Close closes the underlying connection pool.
func (d *database) Close() error {
	return d.sql.Close()
}

// openDatabase connects with the configured driver.
func openDatabase(ctx context.Context, cfg config.DatabaseConfig, logger *slog.Logger) (*database, error) {
	switch cfg.Driver {
	case migrations.DialectSQLite:
		db, err := sqlite.Open(ctx, cfg.URL)
		if err != nil {
			return nil, err
		}
		txr := sqlite.NewTransactor(db, logger)
		logger.Info("database connection established", slog.String("driver", cfg.Driver))
		return &database{sql: db.DB, txr: txr, stores: txr.Stores()}, nil

	case migrations.DialectPostgres:
		db, err := setupPostgres(ctx, cfg)
		if err != nil {
			return nil, err
		}
		txr := postgres.NewTransactor(db, logger)
		logger.Info("database connection established", slog.String("driver", cfg.Driver))
		return &database{sql: db, txr: txr, stores: txr.Stores()}, nil

	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// setupPostgres opens a pgx-backed pool and configures its limits.
func setupPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(migrations.DialectPostgres, cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	maxOpen := cfg.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = defaultPostgresMaxOpenConns
	}
	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(max(maxOpen/2, 1))
	db.SetConnMaxLifetime(5 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}
	return db, nil
}
