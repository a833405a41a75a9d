package daily

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/find-the-ai/internal/game"
	"github.com/gokatarajesh/find-the-ai/internal/metrics"
)

// PairCache is the fast layer in front of the store (implemented by
// RedisCache). Get returns nil, nil on a miss.
type PairCache interface {
	Get(ctx context.Context, day string) ([]game.Pair, error)
	Set(ctx context.Context, day string, pairs []game.Pair) error
}

type setStore interface {
	Get(ctx context.Context, day string) ([]game.Pair, error)
	Put(ctx context.Context, day string, pairs []game.Pair) error
}

// Service reads and publishes daily question sets: cache first, then the
// durable store, refilling the cache on a store hit.
type Service struct {
	store    setStore
	cache    PairCache
	minPairs int
	logger   zerolog.Logger
}

// ServiceOptions tunes the read path.
type ServiceOptions struct {
	// MinPairs is the round count a day needs. A cached set shorter than
	// this is ignored in favour of the store.
	MinPairs int
}

var _ game.PairSource = (*Service)(nil)

// NewService wires the store with an optional cache.
func NewService(store setStore, cache PairCache, opts ServiceOptions, logger zerolog.Logger) *Service {
	return &Service{
		store:    store,
		cache:    cache,
		minPairs: opts.MinPairs,
		logger:   logger.With().Str("component", "daily_sets").Logger(),
	}
}

// QuestionPairs returns the set published for day, or nil when none is.
func (s *Service) QuestionPairs(ctx context.Context, day string) ([]game.Pair, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, day)
		switch {
		case err != nil:
			s.logger.Warn().Err(err).Str("day", day).Msg("daily cache read failed")
		case len(cached) > 0 && len(cached) >= s.minPairs:
			metrics.DailyLookups.WithLabelValues(metrics.SourceCache).Inc()
			return cached, nil
		case len(cached) > 0:
			s.logger.Debug().Str("day", day).Int("cached", len(cached)).Msg("cached daily set too short, reading store")
		}
	}

	pairs, err := s.store.Get(ctx, day)
	if err != nil {
		metrics.DailyLookups.WithLabelValues(metrics.SourceError).Inc()
		return nil, fmt.Errorf("read daily set: %w", err)
	}
	if len(pairs) == 0 {
		metrics.DailyLookups.WithLabelValues(metrics.SourceMiss).Inc()
		return nil, nil
	}
	metrics.DailyLookups.WithLabelValues(metrics.SourceStore).Inc()

	if s.cache != nil {
		if err := s.cache.Set(ctx, day, pairs); err != nil {
			s.logger.Warn().Err(err).Str("day", day).Msg("daily cache refill failed")
		}
	}
	return pairs, nil
}

// Publish stores pairs for day and refreshes the cache.
func (s *Service) Publish(ctx context.Context, day string, pairs []game.Pair) error {
	if len(pairs) == 0 {
		return fmt.Errorf("publish %s: empty set", day)
	}
	for i, p := range pairs {
		if p.AIIndex() < 0 {
			return fmt.Errorf("publish %s: pair %d needs exactly one ai quote", day, i)
		}
	}

	if err := s.store.Put(ctx, day, pairs); err != nil {
		return fmt.Errorf("store daily set: %w", err)
	}
	if s.cache != nil {
		if err := s.cache.Set(ctx, day, pairs); err != nil {
			s.logger.Warn().Err(err).Str("day", day).Msg("daily cache write failed")
		}
	}

	s.logger.Info().Str("day", day).Int("pairs", len(pairs)).Msg("daily set published")
	return nil
}
