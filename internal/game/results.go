package game

import "fmt"

// Summary is the end-of-day score.
type Summary struct {
	NumCorrect int    `json:"num_correct"`
	Total      int    `json:"total"`
	Percentage int    `json:"percentage"`
	Message    string `json:"message"`
}

// Aggregate scores a finished session. Every slot must hold a result; an
// empty slot is reported as ErrIncompleteResults rather than counted as a
// miss.
func Aggregate(results []*Result, quotesPerDay int) (Summary, error) {
	if quotesPerDay <= 0 {
		return Summary{}, fmt.Errorf("quotes per day must be positive, got %d", quotesPerDay)
	}
	if len(results) != quotesPerDay {
		return Summary{}, fmt.Errorf("%w: have %d slots, want %d", ErrIncompleteResults, len(results), quotesPerDay)
	}

	numCorrect := 0
	for i, r := range results {
		if r == nil {
			return Summary{}, fmt.Errorf("%w: round %d unanswered", ErrIncompleteResults, i)
		}
		if r.Correct {
			numCorrect++
		}
	}

	return Summary{
		NumCorrect: numCorrect,
		Total:      quotesPerDay,
		Percentage: 100 * numCorrect / quotesPerDay,
		Message:    fmt.Sprintf("You got %d out of %d quotes correct!", numCorrect, quotesPerDay),
	}, nil
}
