package database

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"cobible/internal/config"
	"cobible/internal/logger"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx"
	"github.com/jmoiron/sqlx"
	_ "github.com/sijms/go-ora/v2" // registers "oracle"
	"go.uber.org/zap"
	_ "modernc.org/sqlite" // registers "sqlite"
)

func init() {
	sqlx.BindDriver(config.DriverSQLite, sqlx.QUESTION)
	sqlx.BindDriver(config.DriverOracle, sqlx.NAMED)
}

// Open connects to the configured store and pings it.
func Open(ctx context.Context, cfg *config.Config) (*sqlx.DB, error) {
	if !cfg.StoreEnabled() {
		return nil, fmt.Errorf("no store driver configured")
	}

	if cfg.DB.Driver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.DB.Path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sqlx.ConnectContext(ctx, cfg.DB.Driver, cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s database: %w", cfg.DB.Driver, err)
	}

	// sqlite allows a single writer.
	if cfg.DB.Driver == config.DriverSQLite {
		db.SetMaxOpenConns(1)
	}

	logger.Get().Info("Connected to database", zap.String("driver", cfg.DB.Driver))
	return db, nil
}
