package db

import (
	"context"
	"database/sql"
	"embed"
	"fmt"

	"github.com/pressly/goose/v3"
	"github.com/rs/zerolog"
)

//go:embed migrations/*.sql
var migrations embed.FS

const migrationDir = "migrations"

// Migration commands.
const (
	CommandUp     = "up"
	CommandDown   = "down"
	CommandStatus = "status"
)

// Migrate runs a goose command against db using the embedded migrations.
// dialect is a goose dialect name ("postgres", "sqlite3").
func Migrate(ctx context.Context, db *sql.DB, dialect, command string, logger zerolog.Logger) error {
	goose.SetBaseFS(migrations)
	goose.SetTableName("goose_db_version")
	goose.SetLogger(gooseLogger{logger: logger.With().Str("component", "migrator").Logger()})
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set dialect: %w", err)
	}

	switch command {
	case CommandUp:
		return goose.UpContext(ctx, db, migrationDir)
	case CommandDown:
		return goose.DownContext(ctx, db, migrationDir)
	case CommandStatus:
		return goose.StatusContext(ctx, db, migrationDir)
	default:
		return fmt.Errorf("unknown migration command %q", command)
	}
}

type gooseLogger struct {
	logger zerolog.Logger
}

func (l gooseLogger) Printf(format string, v ...interface{}) {
	l.logger.Info().Msgf(format, v...)
}

func (l gooseLogger) Fatalf(format string, v ...interface{}) {
	l.logger.Fatal().Msgf(format, v...)
}
