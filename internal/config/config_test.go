package config

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "find-the-ai", cfg.Name)
	assert.Equal(t, 10, cfg.Game.QuotesPerDay)
	assert.Equal(t, "ChatGPT", cfg.Game.AIAttribution)
	assert.Equal(t, DriverSQLite, cfg.Store.Driver)
	assert.Equal(t, "gpt-3.5-turbo", cfg.AI.Model)
	assert.Equal(t, 4, cfg.AI.MaxAttempts)
	assert.Equal(t, 30*time.Second, cfg.AI.MaxBackoff)
	assert.Equal(t, 48*time.Hour, cfg.Redis.PairsTTL)
	assert.Empty(t, cfg.Redis.Addr)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("QUOTES_PER_DAY", "3")
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("PG_HOST", "db")
	t.Setenv("PG_USER", "quiz")
	t.Setenv("PG_DATABASE", "findtheai")
	t.Setenv("REDIS_ADDR", "localhost:6379")

	cfg, err := Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 3, cfg.Game.QuotesPerDay)
	assert.Equal(t, DriverPostgres, cfg.Store.Driver)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Contains(t, cfg.Postgres.DSN(), "host=db port=5432 user=quiz")
}

func TestLoadRejectsPostgresWithoutHost(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")

	_, err := Load(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "PG_HOST")
}

func TestValidate(t *testing.T) {
	cfg := &App{
		Game:  Game{QuotesPerDay: 0},
		Store: Store{Driver: "mongo"},
		AI:    AI{MaxAttempts: 1},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "QUOTES_PER_DAY")
	assert.Contains(t, err.Error(), "unknown STORE_DRIVER")
}
