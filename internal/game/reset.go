package game

import (
	"context"
	"fmt"
	"time"
)

// DayLayout formats the UTC day that keys a daily question set.
const DayLayout = "2006-01-02"

// DayKey returns the daily set key for t.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// PairSource reads a day's question pairs. A nil slice with a nil error
// means the set has not been published yet.
type PairSource interface {
	QuestionPairs(ctx context.Context, day string) ([]Pair, error)
}

// Begin runs the daily reset check at session start. prev may be nil. A
// state created on an earlier UTC day than now is replaced by a fresh one;
// otherwise prev is returned unchanged.
func (e *Engine) Begin(ctx context.Context, prev *State, now time.Time, src PairSource) (*State, error) {
	if prev != nil && e.check(prev) != nil {
		prev = nil
	}
	if prev != nil && !isBeforeDay(prev.CreatedAt, now) {
		return prev, nil
	}

	day := DayKey(now)
	pairs, err := src.QuestionPairs(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("load question pairs for %s: %w", day, err)
	}
	if len(pairs) == 0 {
		return nil, ErrContentNotReady
	}
	if len(pairs) < e.cfg.QuotesPerDay {
		return nil, fmt.Errorf("%w: %d pairs published for %s, want %d", ErrContentNotReady, len(pairs), day, e.cfg.QuotesPerDay)
	}

	return &State{
		CreatedAt:     now.UTC(),
		Round:         0,
		Phase:         PhasePending,
		QuestionPairs: pairs[:e.cfg.QuotesPerDay],
		Results:       make([]*Result, e.cfg.QuotesPerDay),
	}, nil
}

func isBeforeDay(created, now time.Time) bool {
	cy, cm, cd := created.UTC().Date()
	ny, nm, nd := now.UTC().Date()
	return time.Date(cy, cm, cd, 0, 0, 0, 0, time.UTC).Before(time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC))
}
