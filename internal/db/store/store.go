// Package store holds the row types shared by the SQL backends.
package store

import (
	"context"
	"errors"
)

// ErrNotFound is returned when a row does not exist.
var ErrNotFound = errors.New("not found")

// Paraphrase is a cached language model rewrite of a human quote.
type Paraphrase struct {
	QuoteID string
	Content string
	Model   string
}

type UpsertParaphraseParams struct {
	QuoteID string
	Content string
	Model   string
}

// DailySet is the published question pairs for one UTC day, JSON encoded.
type DailySet struct {
	Day       string
	Pairs     []byte
	PairCount int32
}

type UpsertDailySetParams struct {
	Day       string
	Pairs     []byte
	PairCount int32
}

// Querier is implemented by every backend.
type Querier interface {
	GetParaphrase(ctx context.Context, quoteID string) (Paraphrase, error)
	UpsertParaphrase(ctx context.Context, arg UpsertParaphraseParams) error
	GetDailySet(ctx context.Context, day string) (DailySet, error)
	UpsertDailySet(ctx context.Context, arg UpsertDailySetParams) error
	Ping(ctx context.Context) error
	Close() error
}
