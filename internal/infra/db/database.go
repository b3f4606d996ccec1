package db

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"garden-stock-api/internal/pkg/config"

	"github.com/jackc/pgx/v5/pgxpool"
	_ "modernc.org/sqlite" // SQLite driver
)

func Connect(cfg config.DBConfig) (*pgxpool.Pool, func(), error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	poolCfg, err := pgxpool.ParseConfig(cfg.BuildDSN())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to parse database config: %w", err)
	}
	poolCfg.MaxConns = 10
	poolCfg.MaxConnLifetime = time.Hour

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Test the connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, pool.Close, nil
}

// OpenSQLite opens (and creates if missing) the SQLite file at path.
// ":memory:" is accepted for tests.
func OpenSQLite(path string) (*sql.DB, func(), error) {
	if path == "" {
		return nil, nil, fmt.Errorf("sqlite path was not specified")
	}
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, nil, fmt.Errorf("failed to create sqlite directory: %w", err)
			}
		}
	}

	database, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open sqlite: %w", err)
	}
	// a single connection serializes writers and keeps ":memory:" databases alive
	database.SetMaxOpenConns(1)
	database.SetConnMaxLifetime(0)

	if path != ":memory:" {
		if _, err := database.Exec("PRAGMA journal_mode=WAL"); err != nil {
			database.Close()
			return nil, nil, fmt.Errorf("failed to enable WAL: %w", err)
		}
	}
	if err := database.Ping(); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to ping sqlite: %w", err)
	}

	cleanup := func() {
		if err := database.Close(); err != nil {
			slog.Error("failed to close sqlite", "error", err)
		}
	}
	return database, cleanup, nil
}
