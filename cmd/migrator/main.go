package main

import (
	"context"
	"database/sql"
	"flag"
	"os"
	"path/filepath"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	_ "modernc.org/sqlite"

	"github.com/gokatarajesh/find-the-ai/internal/config"
	"github.com/gokatarajesh/find-the-ai/internal/db"
)

func main() {
	command := flag.String("command", db.CommandUp, "Migration command: up, down, or status")
	flag.Parse()

	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()

	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load("configs/.env")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	driver, dsn, dialect := "pgx", cfg.Postgres.DSN(), "postgres"
	if cfg.Store.Driver == config.DriverSQLite {
		if err := os.MkdirAll(filepath.Dir(cfg.Store.SQLitePath), 0o755); err != nil {
			log.Fatal().Err(err).Msg("failed to create sqlite directory")
		}
		driver, dsn, dialect = "sqlite", cfg.Store.SQLitePath, "sqlite3"
	}

	conn, err := sql.Open(driver, dsn)
	if err != nil {
		log.Fatal().Err(err).Str("driver", driver).Msg("failed to open database connection")
	}
	defer conn.Close()

	if err := conn.PingContext(ctx); err != nil {
		log.Fatal().Err(err).Msg("failed to ping database")
	}

	log.Info().
		Str("driver", cfg.Store.Driver).
		Str("command", *command).
		Msg("connected to database")

	if err := db.Migrate(ctx, conn, dialect, *command, log.Logger); err != nil {
		log.Fatal().Err(err).Str("command", *command).Msg("migration failed")
	}
	log.Info().Str("command", *command).Msg("migration command finished")
}
