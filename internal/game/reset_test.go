package game

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBeginWithoutStateLoadsToday(t *testing.T) {
	e := newTestEngine(t, 2)
	src := &fixedSource{pairs: twoRoundPairs()}

	s, err := e.Begin(context.Background(), nil, day1, src)
	require.NoError(t, err)
	assert.Equal(t, []string{"2024-03-01"}, src.days)
	assert.Equal(t, 0, s.Frame())
	assert.Equal(t, []*Result{nil, nil}, s.Results)
	assert.Equal(t, day1, s.CreatedAt)
}

func TestBeginResetsYesterdaysState(t *testing.T) {
	e := newTestEngine(t, 2)
	yesterday := freshState(t, e, twoRoundPairs(), day1.Add(-24*time.Hour))
	yesterday.Round = 1
	yesterday.Phase = PhaseResult
	yesterday.Results = []*Result{{1, true}, {0, true}}

	fresh := []Pair{{human("E", "Eve"), ai("F")}, {ai("G"), human("H", "Hal")}}
	s, err := e.Begin(context.Background(), yesterday, day1, &fixedSource{pairs: fresh})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Frame())
	assert.Equal(t, []*Result{nil, nil}, s.Results)
	assert.Equal(t, fresh, s.QuestionPairs)
}

func TestBeginKeepsSameDayState(t *testing.T) {
	e := newTestEngine(t, 2)
	morning := freshState(t, e, twoRoundPairs(), day1.Add(-9*time.Hour))
	morning.Results[0] = &Result{1, true}
	morning.Phase = PhaseResult

	src := &fixedSource{pairs: threeRoundPairs()}
	s, err := e.Begin(context.Background(), morning, day1, src)
	require.NoError(t, err)
	assert.Same(t, morning, s)
	assert.Zero(t, src.calls, "no reload for a same-day session")
}

func TestBeginKeepsFutureState(t *testing.T) {
	e := newTestEngine(t, 2)
	tomorrow := freshState(t, e, twoRoundPairs(), day1.Add(24*time.Hour))

	s, err := e.Begin(context.Background(), tomorrow, day1, &fixedSource{})
	require.NoError(t, err)
	assert.Same(t, tomorrow, s)
}

func TestBeginUsesUTCDays(t *testing.T) {
	e := newTestEngine(t, 2)
	// 23:30 UTC on Feb 29 is already Mar 1 in UTC+2; the reset must go by UTC.
	lateUTC := time.Date(2024, 2, 29, 23, 30, 0, 0, time.UTC)
	prev := freshState(t, e, twoRoundPairs(), lateUTC)

	plus2 := time.FixedZone("UTC+2", 2*60*60)
	now := time.Date(2024, 3, 1, 1, 45, 0, 0, plus2)
	s, err := e.Begin(context.Background(), prev, now, &fixedSource{pairs: twoRoundPairs()})
	require.NoError(t, err)
	assert.Same(t, prev, s)
}

func TestBeginReplacesMalformedState(t *testing.T) {
	e := newTestEngine(t, 2)
	broken := &State{CreatedAt: day1, QuestionPairs: twoRoundPairs()}

	s, err := e.Begin(context.Background(), broken, day1, &fixedSource{pairs: twoRoundPairs()})
	require.NoError(t, err)
	assert.NotSame(t, broken, s)
	assert.Len(t, s.Results, 2)
}

func TestBeginContentNotReady(t *testing.T) {
	e := newTestEngine(t, 2)

	_, err := e.Begin(context.Background(), nil, day1, &fixedSource{})
	assert.ErrorIs(t, err, ErrContentNotReady)

	_, err = e.Begin(context.Background(), nil, day1, &fixedSource{pairs: twoRoundPairs()[:1]})
	assert.ErrorIs(t, err, ErrContentNotReady)
}

func TestBeginTruncatesLargerSets(t *testing.T) {
	e := newTestEngine(t, 2)

	s, err := e.Begin(context.Background(), nil, day1, &fixedSource{pairs: threeRoundPairs()})
	require.NoError(t, err)
	assert.Len(t, s.QuestionPairs, 2)
}

func TestBeginSourceError(t *testing.T) {
	e := newTestEngine(t, 2)
	boom := errors.New("store offline")

	_, err := e.Begin(context.Background(), nil, day1, &fixedSource{err: boom})
	assert.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, ErrContentNotReady)
}

func TestDayKey(t *testing.T) {
	plus9 := time.FixedZone("UTC+9", 9*60*60)
	assert.Equal(t, "2024-02-29", DayKey(time.Date(2024, 3, 1, 8, 0, 0, 0, plus9)))
}
