// Package sqlite implements store.Querier on a local SQLite file, the
// default on-disk cache.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"

	"github.com/gokatarajesh/find-the-ai/internal/db"
	"github.com/gokatarajesh/find-the-ai/internal/db/store"
)

// Queries runs the cache statements against SQLite.
type Queries struct {
	conn *sql.DB
}

var _ store.Querier = (*Queries)(nil)

// Open opens (creating if needed) the database at path and applies the
// migrations.
func Open(ctx context.Context, path string, logger zerolog.Logger) (*Queries, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create sqlite dir: %w", err)
		}
	}

	conn, err := sql.Open("sqlite", path+"?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)")
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	if err := conn.PingContext(ctx); err != nil {
		conn.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	if err := db.Migrate(ctx, conn, "sqlite3", db.CommandUp, logger); err != nil {
		conn.Close()
		return nil, fmt.Errorf("migrate sqlite: %w", err)
	}
	return &Queries{conn: conn}, nil
}

const getParaphrase = `SELECT quote_id, content, model FROM paraphrase_cache WHERE quote_id = ?`

func (q *Queries) GetParaphrase(ctx context.Context, quoteID string) (store.Paraphrase, error) {
	var p store.Paraphrase
	err := q.conn.QueryRowContext(ctx, getParaphrase, quoteID).Scan(&p.QuoteID, &p.Content, &p.Model)
	if errors.Is(err, sql.ErrNoRows) {
		return store.Paraphrase{}, store.ErrNotFound
	}
	return p, err
}

const upsertParaphrase = `
INSERT INTO paraphrase_cache (quote_id, content, model)
VALUES (?, ?, ?)
ON CONFLICT (quote_id) DO UPDATE SET content = excluded.content, model = excluded.model`

func (q *Queries) UpsertParaphrase(ctx context.Context, arg store.UpsertParaphraseParams) error {
	_, err := q.conn.ExecContext(ctx, upsertParaphrase, arg.QuoteID, arg.Content, arg.Model)
	return err
}

const getDailySet = `SELECT day, pairs, pair_count FROM daily_sets WHERE day = ?`

func (q *Queries) GetDailySet(ctx context.Context, day string) (store.DailySet, error) {
	var (
		s     store.DailySet
		pairs string
	)
	err := q.conn.QueryRowContext(ctx, getDailySet, day).Scan(&s.Day, &pairs, &s.PairCount)
	if errors.Is(err, sql.ErrNoRows) {
		return store.DailySet{}, store.ErrNotFound
	}
	if err != nil {
		return store.DailySet{}, err
	}
	s.Pairs = []byte(pairs)
	return s, nil
}

const upsertDailySet = `
INSERT INTO daily_sets (day, pairs, pair_count)
VALUES (?, ?, ?)
ON CONFLICT (day) DO UPDATE SET pairs = excluded.pairs, pair_count = excluded.pair_count, updated_at = CURRENT_TIMESTAMP`

func (q *Queries) UpsertDailySet(ctx context.Context, arg store.UpsertDailySetParams) error {
	_, err := q.conn.ExecContext(ctx, upsertDailySet, arg.Day, string(arg.Pairs), arg.PairCount)
	return err
}

func (q *Queries) Ping(ctx context.Context) error {
	return q.conn.PingContext(ctx)
}

func (q *Queries) Close() error {
	return q.conn.Close()
}
