package config

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// Store drivers.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// App holds core runtime configuration shared by the server and the seeder.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"find-the-ai"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	LogLevel                string        `env:"LOG_LEVEL" envDefault:"info"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Game     Game
	Store    Store
	Postgres Postgres
	Redis    Redis
	Quotes   Quotes
	AI       AI
}

// Game groups gameplay settings.
type Game struct {
	QuotesPerDay  int           `env:"QUOTES_PER_DAY" envDefault:"10"`
	AIAttribution string        `env:"AI_ATTRIBUTION" envDefault:"ChatGPT"`
	WarmInterval  time.Duration `env:"DAILY_WARM_INTERVAL" envDefault:"5m"`
}

// Store selects where daily sets and paraphrases are kept.
type Store struct {
	Driver     string `env:"STORE_DRIVER" envDefault:"sqlite"`
	SQLitePath string `env:"SQLITE_PATH" envDefault:"cache/findtheai.db"`
}

// Postgres captures connection info for the SQL database. Only required
// with STORE_DRIVER=postgres.
type Postgres struct {
	Host     string `env:"PG_HOST" envDefault:""`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER" envDefault:""`
	Password string `env:"PG_PASSWORD" envDefault:""`
	Database string `env:"PG_DATABASE" envDefault:""`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
	MaxConns int    `env:"PG_MAX_CONNS" envDefault:"10"`
}

// DSN returns the key/value connection string.
func (p Postgres) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode)
}

// Redis fronts the daily set store. Leave REDIS_ADDR empty to read the
// store directly.
type Redis struct {
	Addr     string        `env:"REDIS_ADDR" envDefault:""`
	DB       int           `env:"REDIS_DB" envDefault:"0"`
	PoolSize int           `env:"REDIS_POOL_SIZE" envDefault:"20"`
	PairsTTL time.Duration `env:"DAILY_CACHE_TTL" envDefault:"48h"`
}

// Quotes configures the human quote source.
type Quotes struct {
	BaseURL   string        `env:"QUOTES_API_URL" envDefault:"https://api.quotable.io"`
	MinLength int           `env:"QUOTES_MIN_LENGTH" envDefault:"0"`
	MaxLength int           `env:"QUOTES_MAX_LENGTH" envDefault:"0"`
	Tags      string        `env:"QUOTES_TAGS" envDefault:""`
	Authors   string        `env:"QUOTES_AUTHORS" envDefault:""`
	Timeout   time.Duration `env:"QUOTES_HTTP_TIMEOUT" envDefault:"5s"`
}

// AI configures the paraphrasing language model.
type AI struct {
	APIKey       string        `env:"OPENAI_API_KEY" envDefault:""`
	BaseURL      string        `env:"OPENAI_BASE_URL" envDefault:""`
	Model        string        `env:"OPENAI_MODEL" envDefault:"gpt-3.5-turbo"`
	SystemPrompt string        `env:"AI_SYSTEM_PROMPT" envDefault:"I will give you a quote. Summarize it with a witty sentence, in your own words."`
	HTTPTimeout  time.Duration `env:"AI_HTTP_TIMEOUT" envDefault:"30s"`
	MaxAttempts  int           `env:"AI_MAX_ATTEMPTS" envDefault:"4"`
	MaxBackoff   time.Duration `env:"AI_MAX_BACKOFF" envDefault:"30s"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate checks rules that span several fields.
func (c *App) Validate() error {
	var errs []error
	if c.Game.QuotesPerDay <= 0 {
		errs = append(errs, fmt.Errorf("QUOTES_PER_DAY must be positive, got %d", c.Game.QuotesPerDay))
	}
	switch c.Store.Driver {
	case DriverSQLite:
		if c.Store.SQLitePath == "" {
			errs = append(errs, errors.New("SQLITE_PATH is required for the sqlite store"))
		}
	case DriverPostgres:
		if c.Postgres.Host == "" || c.Postgres.User == "" || c.Postgres.Database == "" {
			errs = append(errs, errors.New("PG_HOST, PG_USER and PG_DATABASE are required for the postgres store"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown STORE_DRIVER %q", c.Store.Driver))
	}
	if c.AI.MaxAttempts <= 0 {
		errs = append(errs, fmt.Errorf("AI_MAX_ATTEMPTS must be positive, got %d", c.AI.MaxAttempts))
	}
	return errors.Join(errs...)
}
