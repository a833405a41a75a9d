package game

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// legacyTimeLayout is the zone-less timestamp written by older clients; it
// is read as UTC.
const legacyTimeLayout = "2006-01-02T15:04:05.999999999"

// wireState is the blob kept in browser storage. Field names are frozen so
// sessions written by older versions keep resuming.
type wireState struct {
	CreatedAt     string    `json:"created_at"`
	CurrentFrame  *int      `json:"current_frame"`
	QuestionPairs []Pair    `json:"question_pairs"`
	Results       []*Result `json:"results"`
}

// MarshalJSON writes a result as the [choice, correct] tuple.
func (r Result) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]any{r.Choice, r.Correct})
}

// UnmarshalJSON reads the [choice, correct] tuple.
func (r *Result) UnmarshalJSON(data []byte) error {
	var raw []json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if len(raw) != 2 {
		return fmt.Errorf("result tuple has %d elements", len(raw))
	}
	if err := json.Unmarshal(raw[0], &r.Choice); err != nil {
		return fmt.Errorf("result choice: %w", err)
	}
	if err := json.Unmarshal(raw[1], &r.Correct); err != nil {
		return fmt.Errorf("result correctness: %w", err)
	}
	return nil
}

// Frame returns the legacy frame counter: twice the round, plus one while
// the round's result is shown.
func (s *State) Frame() int {
	frame := 2 * s.Round
	if s.Phase == PhaseResult {
		frame++
	}
	return frame
}

// EncodeState serializes s into the persisted blob.
func EncodeState(s *State) ([]byte, error) {
	frame := s.Frame()
	return json.Marshal(wireState{
		CreatedAt:     s.CreatedAt.UTC().Format(time.RFC3339Nano),
		CurrentFrame:  &frame,
		QuestionPairs: s.QuestionPairs,
		Results:       s.Results,
	})
}

// IsAbsent reports whether a persisted blob carries no state at all.
func IsAbsent(data []byte) bool {
	trimmed := bytes.TrimSpace(data)
	return len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) || bytes.Equal(trimmed, []byte("{}"))
}

// DecodeState parses a persisted blob for a game of quotesPerDay rounds.
// Every shape problem is reported as ErrMalformedState.
func DecodeState(data []byte, quotesPerDay int) (*State, error) {
	var w wireState
	dec := json.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&w); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}
	if w.CurrentFrame == nil {
		return nil, fmt.Errorf("%w: missing current_frame", ErrMalformedState)
	}

	created, err := parseCreatedAt(w.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedState, err)
	}

	frame := *w.CurrentFrame
	if frame < 0 || frame > 2*quotesPerDay {
		return nil, fmt.Errorf("%w: frame %d outside [0, %d]", ErrMalformedState, frame, 2*quotesPerDay)
	}
	if len(w.QuestionPairs) != quotesPerDay {
		return nil, fmt.Errorf("%w: %d pairs, want %d", ErrMalformedState, len(w.QuestionPairs), quotesPerDay)
	}

	results := w.Results
	if results == nil {
		results = make([]*Result, quotesPerDay)
	}
	if len(results) != quotesPerDay {
		return nil, fmt.Errorf("%w: %d results, want %d", ErrMalformedState, len(results), quotesPerDay)
	}

	s := &State{
		CreatedAt:     created,
		Round:         frame / 2,
		QuestionPairs: w.QuestionPairs,
		Results:       results,
	}
	switch {
	case frame == 2*quotesPerDay:
		s.Phase = PhaseFinished
		for i, r := range results {
			if r == nil {
				return nil, fmt.Errorf("%w: finished with round %d unanswered", ErrMalformedState, i)
			}
		}
	case frame%2 == 0:
		s.Phase = PhasePending
	default:
		s.Phase = PhaseResult
	}
	return s, nil
}

func parseCreatedAt(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, fmt.Errorf("missing created_at")
	}
	if t, err := time.Parse(time.RFC3339Nano, raw); err == nil {
		return t.UTC(), nil
	}
	t, err := time.ParseInLocation(legacyTimeLayout, raw, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("created_at %q: %w", raw, err)
	}
	return t, nil
}
