// Package postgres implements store.Querier on a pgx connection pool.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/gokatarajesh/find-the-ai/internal/db/store"
)

// DBTX is the subset of pgx used by Queries, satisfied by *pgxpool.Pool
// and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...interface{}) (pgconn.CommandTag, error)
	QueryRow(ctx context.Context, sql string, args ...interface{}) pgx.Row
}

// Queries runs the cache statements against Postgres.
type Queries struct {
	db   DBTX
	pool *pgxpool.Pool
}

var _ store.Querier = (*Queries)(nil)

// New wraps a pool.
func New(pool *pgxpool.Pool) *Queries {
	return &Queries{db: pool, pool: pool}
}

// Open connects a pool from a key/value DSN.
func Open(ctx context.Context, dsn string, maxConns int) (*Queries, error) {
	if maxConns > 0 {
		dsn = fmt.Sprintf("%s pool_max_conns=%d", dsn, maxConns)
	}
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return New(pool), nil
}

const getParaphrase = `SELECT quote_id, content, model FROM paraphrase_cache WHERE quote_id = $1`

func (q *Queries) GetParaphrase(ctx context.Context, quoteID string) (store.Paraphrase, error) {
	var p store.Paraphrase
	err := q.db.QueryRow(ctx, getParaphrase, quoteID).Scan(&p.QuoteID, &p.Content, &p.Model)
	if errors.Is(err, pgx.ErrNoRows) {
		return store.Paraphrase{}, store.ErrNotFound
	}
	return p, err
}

const upsertParaphrase = `
INSERT INTO paraphrase_cache (quote_id, content, model)
VALUES ($1, $2, $3)
ON CONFLICT (quote_id) DO UPDATE SET content = excluded.content, model = excluded.model`

func (q *Queries) UpsertParaphrase(ctx context.Context, arg store.UpsertParaphraseParams) error {
	_, err := q.db.Exec(ctx, upsertParaphrase, arg.QuoteID, arg.Content, arg.Model)
	return err
}

const getDailySet = `SELECT day, pairs, pair_count FROM daily_sets WHERE day = $1`

func (q *Queries) GetDailySet(ctx context.Context, day string) (store.DailySet, error) {
	var (
		s     store.DailySet
		pairs string
	)
	err := q.db.QueryRow(ctx, getDailySet, day).Scan(&s.Day, &pairs, &s.PairCount)
	if errors.Is(err, pgx.ErrNoRows) {
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
VALUES ($1, $2, $3)
ON CONFLICT (day) DO UPDATE SET pairs = excluded.pairs, pair_count = excluded.pair_count, updated_at = CURRENT_TIMESTAMP`

func (q *Queries) UpsertDailySet(ctx context.Context, arg store.UpsertDailySetParams) error {
	_, err := q.db.Exec(ctx, upsertDailySet, arg.Day, string(arg.Pairs), arg.PairCount)
	return err
}

func (q *Queries) Ping(ctx context.Context) error {
	if q.pool == nil {
		return nil
	}
	return q.pool.Ping(ctx)
}

func (q *Queries) Close() error {
	if q.pool != nil {
		q.pool.Close()
	}
	return nil
}
