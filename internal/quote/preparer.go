package quote

import (
	"context"
	"fmt"
	"math/rand/v2"

	"github.com/rs/zerolog"

	"github.com/gokatarajesh/find-the-ai/internal/game"
	"github.com/gokatarajesh/find-the-ai/internal/quote/external"
)

type quoteSource interface {
	Random(ctx context.Context, limit int, f external.Filter) ([]external.Quote, error)
}

type paraphraser interface {
	Paraphrase(ctx context.Context, quoteID, content string) (string, error)
}

type publisher interface {
	Publish(ctx context.Context, day string, pairs []game.Pair) error
}

// Preparer builds a day's question pairs: one human quote and its AI
// paraphrase per pair, in random order.
type Preparer struct {
	quotes     quoteSource
	paraphrase paraphraser
	publish    publisher
	filter     external.Filter
	// swap decides whether a pair is shown AI first.
	swap   func() bool
	logger zerolog.Logger
}

func NewPreparer(quotes quoteSource, p paraphraser, pub publisher, filter external.Filter, logger zerolog.Logger) *Preparer {
	return &Preparer{
		quotes:     quotes,
		paraphrase: p,
		publish:    pub,
		filter:     filter,
		swap:       func() bool { return rand.IntN(2) == 1 },
		logger:     logger.With().Str("component", "quote_preparer").Logger(),
	}
}

// Build fetches count human quotes and pairs each with its paraphrase.
func (p *Preparer) Build(ctx context.Context, count int) ([]game.Pair, error) {
	humans, err := p.quotes.Random(ctx, count, p.filter)
	if err != nil {
		return nil, fmt.Errorf("fetch human quotes: %w", err)
	}
	if len(humans) < count {
		return nil, fmt.Errorf("fetch human quotes: got %d of %d", len(humans), count)
	}
	humans = humans[:count]

	pairs := make([]game.Pair, 0, count)
	for _, h := range humans {
		text, err := p.paraphrase.Paraphrase(ctx, h.ID, h.Content)
		if err != nil {
			return nil, err
		}
		human := game.Quote{ID: h.ID, Content: h.Content, Author: h.Author, Type: game.QuoteHuman}
		ai := game.Quote{Content: text, Type: game.QuoteAI}

		pair := game.Pair{human, ai}
		if p.swap() {
			pair = game.Pair{ai, human}
		}
		pairs = append(pairs, pair)
	}
	return pairs, nil
}

// Populate builds and publishes the set for day.
func (p *Preparer) Populate(ctx context.Context, day string, count int) ([]game.Pair, error) {
	pairs, err := p.Build(ctx, count)
	if err != nil {
		return nil, err
	}
	if err := p.publish.Publish(ctx, day, pairs); err != nil {
		return nil, err
	}

	aiFirst := 0
	for _, pair := range pairs {
		if pair.AIIndex() == 0 {
			aiFirst++
		}
	}
	p.logger.Info().
		Str("day", day).
		Int("pairs", len(pairs)).
		Int("ai_first", aiFirst).
		Msg("loaded question pairs")
	return pairs, nil
}
