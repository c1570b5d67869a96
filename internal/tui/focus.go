package tui

// FocusTarget identifies which panel currently holds keyboard focus.
type FocusTarget int

const (
	FocusBindings FocusTarget = iota // Left sidebar — keybinding list
	FocusProfiles                    // Left sidebar — profile list
	FocusTerminal                    // Right top — terminal demo panel
	FocusActivity                    // Right bottom — activity panel
)

// Next returns the next focus target in forward tab order.
func (f FocusTarget) Next() FocusTarget {
	return (f + 1) % 4
}

// Prev returns the previous focus target in reverse tab order.
func (f FocusTarget) Prev() FocusTarget {
	return (f + 3) % 4
}

// String returns the human-readable name of the focus target.
func (f FocusTarget) String() string {
	switch f {
	case FocusBindings:
		return "bindings"
	case FocusProfiles:
		return "profiles"
	case FocusTerminal:
		return "terminal"
	case FocusActivity:
		return "activity"
	default:
		return "unknown"
	}
}

// ElementID returns the window element identifier for the focus target, so
// interceptors can tell which panel a key press was aimed at.
func (f FocusTarget) ElementID() string {
	return f.String() + "-panel"
}

// UIMode represents the interaction mode of the application.
type UIMode int

const (
	ModeNormal       UIMode = iota // Regular panel navigation
	ModeRecording                  // The recorder owns the next key press
	ModeConfirmClose               // The confirm-close dialog is open
)

// validModeTransitions defines the allowed UIMode transitions.
var validModeTransitions = map[UIMode][]UIMode{
	ModeNormal:       {ModeRecording, ModeConfirmClose},
	ModeRecording:    {ModeNormal},
	ModeConfirmClose: {ModeNormal},
}

// CanTransitionTo reports whether transitioning from m to next is valid.
func (m UIMode) CanTransitionTo(next UIMode) bool {
	for _, valid := range validModeTransitions[m] {
		if valid == next {
			return true
		}
	}
	return false
}

// Label returns a short uppercase label for the mode.
func (m UIMode) Label() string {
	switch m {
	case ModeNormal:
		return "READY"
	case ModeRecording:
		return "RECORDING"
	case ModeConfirmClose:
		return "CONFIRM CLOSE"
	default:
		return "UNKNOWN"
	}
}

// Symbol returns a single-character symbol representing the mode.
func (m UIMode) Symbol() string {
	switch m {
	case ModeNormal:
		return "✓"
	case ModeRecording:
		return "●"
	case ModeConfirmClose:
		return "?"
	default:
		return "?"
	}
}
