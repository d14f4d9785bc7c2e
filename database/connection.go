package database

import (
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"Filmoteka/config"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// DB is the shared connection pool. Tests swap it for a mock.
var DB *sql.DB

const (
	maxOpenConns    = 25
	maxIdleConns    = 5
	connMaxLifetime = 5 * time.Minute
)

func Connect(cfg *config.Config) error {
	var err error
	DB, err = sql.Open("pgx", cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	if err = DB.Ping(); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}

	// Keep the pool bounded so PostgreSQL does not run out of client slots
	DB.SetMaxOpenConns(maxOpenConns)
	DB.SetMaxIdleConns(maxIdleConns)
	DB.SetConnMaxLifetime(connMaxLifetime)

	slog.Info("Database connected", "max_open_conns", maxOpenConns)
	return nil
}

func Close() error {
	if DB != nil {
		return DB.Close()
	}
	return nil
}
