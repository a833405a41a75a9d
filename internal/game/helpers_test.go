package game

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func human(content, author string) Quote {
	return Quote{Content: content, Author: author, Type: QuoteHuman}
}

func ai(content string) Quote {
	return Quote{Content: content, Type: QuoteAI}
}

// twoRoundPairs is pair 0 = (human A, ai B), pair 1 = (ai C, human D).
func twoRoundPairs() []Pair {
	return []Pair{
		{human("A", "Ann"), ai("B")},
		{ai("C"), human("D", "Dan")},
	}
}

func threeRoundPairs() []Pair {
	return []Pair{
		{ai("one"), human("uno", "Ana")},
		{human("two", "Bo"), ai("dos")},
		{ai("three"), human("tres", "Cy")},
	}
}

type fixedSource struct {
	pairs []Pair
	err   error
	calls int
	days  []string
}

func (f *fixedSource) QuestionPairs(_ context.Context, day string) ([]Pair, error) {
	f.calls++
	f.days = append(f.days, day)
	return f.pairs, f.err
}

func newTestEngine(t *testing.T, rounds int) *Engine {
	t.Helper()
	e, err := NewEngine(Config{QuotesPerDay: rounds})
	require.NoError(t, err)
	return e
}

func freshState(t *testing.T, e *Engine, pairs []Pair, now time.Time) *State {
	t.Helper()
	s, err := e.Begin(context.Background(), nil, now, &fixedSource{pairs: pairs})
	require.NoError(t, err)
	return s
}

var (
	pick0  = Selection{Option0: true}
	pick1  = Selection{Option1: true}
	noPick = Selection{}
)
