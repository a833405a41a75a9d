package repository

import (
	"context"
	"errors"

	"github.com/gokatarajesh/find-the-ai/internal/db/store"
)

type paraphraseStore interface {
	GetParaphrase(ctx context.Context, quoteID string) (store.Paraphrase, error)
	UpsertParaphrase(ctx context.Context, arg store.UpsertParaphraseParams) error
}

// ParaphraseRepository caches language model paraphrases by quote id so a
// quote is only ever billed once.
type ParaphraseRepository struct {
	store paraphraseStore
}

func NewParaphraseRepository(store paraphraseStore) *ParaphraseRepository {
	return &ParaphraseRepository{store: store}
}

// Lookup returns the cached paraphrase for quoteID. ok is false on a miss.
func (r *ParaphraseRepository) Lookup(ctx context.Context, quoteID string) (content string, ok bool, err error) {
	row, err := r.store.GetParaphrase(ctx, quoteID)
	if errors.Is(err, store.ErrNotFound) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return row.Content, true, nil
}

// Save stores a paraphrase, replacing any previous one.
func (r *ParaphraseRepository) Save(ctx context.Context, quoteID, content, model string) error {
	return r.store.UpsertParaphrase(ctx, store.UpsertParaphraseParams{
		QuoteID: quoteID,
		Content: content,
		Model:   model,
	})
}
