package daily

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/find-the-ai/internal/game"
	"github.com/gokatarajesh/find-the-ai/internal/metrics"
)

// Warmer periodically reads today's set so the cache is filled before the
// first visitor of the day, and reports whether the seeder has run.
type Warmer struct {
	svc      *Service
	interval time.Duration
	now      func() time.Time
	logger   zerolog.Logger
}

func NewWarmer(svc *Service, interval time.Duration, logger zerolog.Logger) *Warmer {
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Warmer{
		svc:      svc,
		interval: interval,
		now:      time.Now,
		logger:   logger.With().Str("component", "daily_warmer").Logger(),
	}
}

// Run blocks until context cancellation.
func (w *Warmer) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	// run immediately
	w.tick(ctx)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			w.tick(ctx)
		}
	}
}

func (w *Warmer) tick(ctx context.Context) bool {
	day := game.DayKey(w.now())
	pairs, err := w.svc.QuestionPairs(ctx, day)
	if err != nil {
		w.logger.Warn().Err(err).Str("day", day).Msg("daily warm-up failed")
		return false
	}
	if len(pairs) == 0 {
		metrics.DailySetReady.Set(0)
		w.logger.Warn().Str("day", day).Msg("no question pairs published for today; run the seeder")
		return false
	}
	metrics.DailySetReady.Set(1)
	return true
}
