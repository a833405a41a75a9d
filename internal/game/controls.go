package game

const (
	LabelSubmit = "Submit"
	LabelNext   = "Next"
)

// Selection is the transient state of the two option chips.
type Selection struct {
	Option0 bool `json:"option_0"`
	Option1 bool `json:"option_1"`
}

// Choice returns the selected option index.
func (s Selection) Choice() (int, error) {
	switch {
	case s.Option0 && s.Option1:
		return -1, ErrAmbiguousSelection
	case s.Option0:
		return 0, nil
	case s.Option1:
		return 1, nil
	default:
		return -1, ErrNoSelection
	}
}

// Toggle applies a click on one option. The other option is always cleared,
// so at most one option is ever checked.
func (s Selection) Toggle(option int, checked bool) Selection {
	switch option {
	case 0:
		return Selection{Option0: checked}
	case 1:
		return Selection{Option1: checked}
	default:
		return s
	}
}

// Controls is the derived state of the action button and option chips.
type Controls struct {
	SubmitLabel    string    `json:"submit_label"`
	SubmitVisible  bool      `json:"submit_visible"`
	SubmitDisabled bool      `json:"submit_disabled"`
	OptionsVisible bool      `json:"options_visible"`
	Selection      Selection `json:"selection"`
}

// ControlsFor derives the controls for a phase and the current selection.
// It must be recomputed on every selection change and on load.
func ControlsFor(phase Phase, sel Selection) Controls {
	switch phase {
	case PhasePending:
		_, err := sel.Choice()
		return Controls{
			SubmitLabel:    LabelSubmit,
			SubmitVisible:  true,
			SubmitDisabled: err != nil,
			OptionsVisible: true,
			Selection:      sel,
		}
	case PhaseResult:
		return Controls{
			SubmitLabel:   LabelNext,
			SubmitVisible: true,
		}
	default:
		return Controls{SubmitLabel: LabelNext}
	}
}
