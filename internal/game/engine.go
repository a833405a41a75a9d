package game

import "fmt"

const (
	HighlightSuccess = "success"
	HighlightFailure = "failure"
)

// Card is what one quote card displays.
type Card struct {
	Content   string `json:"content"`
	Cite      string `json:"cite,omitempty"`
	Highlight string `json:"highlight,omitempty"`
	Tint      string `json:"tint,omitempty"`
	Visible   bool   `json:"visible"`
}

// Panels tells which top-level panels are visible.
type Panels struct {
	Intro   bool `json:"intro"`
	Main    bool `json:"main"`
	Summary bool `json:"summary"`
}

// View is the render projection of a state.
type View struct {
	Phase    string   `json:"phase"`
	Round    int      `json:"round"`
	Rounds   int      `json:"rounds"`
	Panels   Panels   `json:"panels"`
	Cards    [2]Card  `json:"cards"`
	Progress float64  `json:"progress"`
	Finished bool     `json:"finished"`
	Summary  *Summary `json:"summary,omitempty"`
	Controls Controls `json:"controls"`
}

// Engine runs round transitions for one Config.
type Engine struct {
	cfg Config
}

// NewEngine validates cfg and returns an engine bound to it.
func NewEngine(cfg Config) (*Engine, error) {
	cfg = cfg.withDefaults()
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Step applies ev to prev and returns the next state and its projection.
// prev is never mutated; on error the caller keeps prev.
func (e *Engine) Step(prev *State, ev Event, sel Selection) (*State, View, error) {
	if err := e.check(prev); err != nil {
		return nil, View{}, err
	}

	next := prev.clone()
	switch ev {
	case EventNone:
		if next.Phase == PhaseResult {
			if _, err := e.resolve(next, sel); err != nil {
				return nil, View{}, err
			}
		}
	case EventAdvance:
		if err := e.advance(next, sel); err != nil {
			return nil, View{}, err
		}
	case EventRetry:
		if next.Phase != PhaseFinished {
			return nil, View{}, fmt.Errorf("%w: retry during %s phase", ErrInvalidTransition, next.Phase)
		}
		next.Round = 0
		next.Phase = PhasePending
		next.Results = make([]*Result, e.cfg.QuotesPerDay)
	default:
		return nil, View{}, fmt.Errorf("%w: %q", ErrUnknownEvent, ev)
	}

	view, err := e.Project(next, sel)
	if err != nil {
		return nil, View{}, err
	}
	return next, view, nil
}

func (e *Engine) advance(s *State, sel Selection) error {
	switch s.Phase {
	case PhasePending:
		if _, err := e.resolve(s, sel); err != nil {
			return err
		}
		s.Phase = PhaseResult
	case PhaseResult:
		s.Round++
		if s.Round >= e.cfg.QuotesPerDay {
			s.Round = e.cfg.QuotesPerDay
			s.Phase = PhaseFinished
		} else {
			s.Phase = PhasePending
		}
	default:
		return fmt.Errorf("%w: advance after the last round", ErrInvalidTransition)
	}
	return nil
}

// resolve returns the result of the active round, deriving it from sel and
// storing it the first time. Later calls always read the stored result.
func (e *Engine) resolve(s *State, sel Selection) (Result, error) {
	if r := s.Results[s.Round]; r != nil {
		return *r, nil
	}
	choice, err := sel.Choice()
	if err != nil {
		return Result{}, err
	}
	pair, _ := s.CurrentPair()
	r := Result{Choice: choice, Correct: pair[choice].Type == QuoteAI}
	s.Results[s.Round] = &r
	return r, nil
}

// Project renders s without changing it. sel only feeds the controls of a
// pending round.
func (e *Engine) Project(s *State, sel Selection) (View, error) {
	if err := e.check(s); err != nil {
		return View{}, err
	}

	view := View{
		Phase:    s.Phase.String(),
		Round:    s.Round,
		Rounds:   e.cfg.QuotesPerDay,
		Panels:   Panels{Main: true},
		Progress: e.progress(s.Round),
		Controls: ControlsFor(s.Phase, sel),
	}

	switch s.Phase {
	case PhaseFinished:
		summary, err := Aggregate(s.Results, e.cfg.QuotesPerDay)
		if err != nil {
			return View{}, err
		}
		view.Finished = true
		view.Summary = &summary
		view.Panels.Summary = true
	case PhasePending:
		pair, _ := s.CurrentPair()
		for i, q := range pair {
			view.Cards[i] = Card{Content: q.Content, Visible: true}
		}
	case PhaseResult:
		r := s.Results[s.Round]
		if r == nil {
			return View{}, fmt.Errorf("%w: round %d has no result", ErrNoSelection, s.Round)
		}
		pair, _ := s.CurrentPair()
		for i, q := range pair {
			view.Cards[i] = Card{Content: q.Content, Cite: e.cite(q), Visible: true}
		}
		chosen := &view.Cards[r.Choice]
		if r.Correct {
			chosen.Highlight, chosen.Tint = HighlightSuccess, e.cfg.SuccessTint
		} else {
			chosen.Highlight, chosen.Tint = HighlightFailure, e.cfg.FailureTint
		}
	}
	return view, nil
}

func (e *Engine) cite(q Quote) string {
	if q.Type == QuoteAI {
		return "- " + e.cfg.AIAttribution
	}
	return "- " + q.Author
}

// progress floors the frame to its round before scaling.
func (e *Engine) progress(round int) float64 {
	return 100 * float64(round) / float64(e.cfg.QuotesPerDay)
}

func (e *Engine) check(s *State) error {
	if s == nil {
		return fmt.Errorf("%w: no state", ErrMalformedState)
	}
	n := e.cfg.QuotesPerDay
	if len(s.QuestionPairs) == 0 {
		return ErrContentNotReady
	}
	if len(s.QuestionPairs) != n {
		return fmt.Errorf("%w: %d pairs for %d rounds", ErrMalformedState, len(s.QuestionPairs), n)
	}
	if len(s.Results) != n {
		return fmt.Errorf("%w: %d result slots for %d rounds", ErrMalformedState, len(s.Results), n)
	}
	for i, p := range s.QuestionPairs {
		if p.AIIndex() < 0 {
			return fmt.Errorf("%w: pair %d needs exactly one ai quote", ErrMalformedState, i)
		}
	}
	for i, r := range s.Results {
		if r != nil && r.Choice != 0 && r.Choice != 1 {
			return fmt.Errorf("%w: round %d choice %d", ErrMalformedState, i, r.Choice)
		}
	}
	switch s.Phase {
	case PhasePending, PhaseResult:
		if s.Round < 0 || s.Round >= n {
			return fmt.Errorf("%w: round %d out of range", ErrMalformedState, s.Round)
		}
	case PhaseFinished:
		if s.Round != n {
			return fmt.Errorf("%w: finished at round %d", ErrMalformedState, s.Round)
		}
	default:
		return fmt.Errorf("%w: unknown phase %d", ErrMalformedState, s.Phase)
	}
	return nil
}
