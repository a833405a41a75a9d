package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gokatarajesh/find-the-ai/internal/db/store"
	"github.com/gokatarajesh/find-the-ai/internal/game"
)

type dailySetStore interface {
	GetDailySet(ctx context.Context, day string) (store.DailySet, error)
	UpsertDailySet(ctx context.Context, arg store.UpsertDailySetParams) error
}

// DailySetRepository persists the published question pairs per UTC day.
type DailySetRepository struct {
	store dailySetStore
}

// NewDailySetRepository constructs a new daily set repository.
func NewDailySetRepository(store dailySetStore) *DailySetRepository {
	return &DailySetRepository{store: store}
}

// Get returns the pairs published for day, or nil when there are none.
func (r *DailySetRepository) Get(ctx context.Context, day string) ([]game.Pair, error) {
	row, err := r.store.GetDailySet(ctx, day)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var pairs []game.Pair
	if err := json.Unmarshal(row.Pairs, &pairs); err != nil {
		return nil, fmt.Errorf("decode daily set %s: %w", day, err)
	}
	return pairs, nil
}

// Put publishes pairs for day, replacing an earlier set.
func (r *DailySetRepository) Put(ctx context.Context, day string, pairs []game.Pair) error {
	data, err := json.Marshal(pairs)
	if err != nil {
		return fmt.Errorf("encode daily set %s: %w", day, err)
	}
	return r.store.UpsertDailySet(ctx, store.UpsertDailySetParams{
		Day:       day,
		Pairs:     data,
		PairCount: int32(len(pairs)),
	})
}
