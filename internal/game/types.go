package game

import (
	"errors"
	"time"
)

// QuoteType tells who wrote a quote.
type QuoteType string

const (
	QuoteHuman QuoteType = "human"
	QuoteAI    QuoteType = "ai"
)

// Quote is one card in a round.
type Quote struct {
	ID      string    `json:"_id,omitempty"`
	Content string    `json:"content"`
	Author  string    `json:"author"`
	Type    QuoteType `json:"type"`
}

// Pair holds the two quotes shown in a round, already in display order.
type Pair [2]Quote

// AIIndex returns the position of the AI quote, or -1 when the pair does not
// hold exactly one.
func (p Pair) AIIndex() int {
	idx := -1
	for i, q := range p {
		if q.Type != QuoteAI {
			continue
		}
		if idx != -1 {
			return -1
		}
		idx = i
	}
	return idx
}

// Phase of the current round.
type Phase int

const (
	PhasePending Phase = iota
	PhaseResult
	PhaseFinished
)

func (p Phase) String() string {
	switch p {
	case PhasePending:
		return "pending"
	case PhaseResult:
		return "result"
	case PhaseFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Result records the visitor's answer for one round.
type Result struct {
	Choice  int
	Correct bool
}

// State is the per-visitor session. It is persisted by the browser through
// the codec in codec.go.
type State struct {
	CreatedAt     time.Time
	Round         int
	Phase         Phase
	QuestionPairs []Pair
	Results       []*Result
}

// CurrentPair returns the pair for the active round. Finished sessions have
// no current pair.
func (s *State) CurrentPair() (Pair, bool) {
	if s.Phase == PhaseFinished || s.Round < 0 || s.Round >= len(s.QuestionPairs) {
		return Pair{}, false
	}
	return s.QuestionPairs[s.Round], true
}

func (s *State) clone() *State {
	out := *s
	out.Results = make([]*Result, len(s.Results))
	for i, r := range s.Results {
		if r != nil {
			cp := *r
			out.Results[i] = &cp
		}
	}
	return &out
}

// Event is the control that triggered a transition.
type Event string

const (
	EventNone    Event = ""
	EventAdvance Event = "advance"
	EventRetry   Event = "retry"
)

var (
	ErrContentNotReady    = errors.New("daily question set not ready")
	ErrNoSelection        = errors.New("no option selected")
	ErrAmbiguousSelection = errors.New("both options selected")
	ErrInvalidTransition  = errors.New("invalid transition")
	ErrUnknownEvent       = errors.New("unknown event")
	ErrIncompleteResults  = errors.New("results incomplete")
	ErrMalformedState     = errors.New("malformed game state")
)
