package intercept

// State is the interceptor lifecycle state.
type State int

const (
	StateInactive State = iota // no listener registered
	StateActive                // exactly one capture listener registered
)

// validTransitions defines the allowed State transitions. The Active→Active
// self-transition is the atomic listener replacement performed whenever a
// tracked input (action, keymap, callback) changes while active.
var validTransitions = map[State][]State{
	StateInactive: {StateActive},
	StateActive:   {StateInactive, StateActive},
}

// CanTransitionTo reports whether transitioning from s to next is valid.
func (s State) CanTransitionTo(next State) bool {
	for _, valid := range validTransitions[s] {
		if valid == next {
			return true
		}
	}
	return false
}

// String returns the human-readable name of the state.
func (s State) String() string {
	switch s {
	case StateInactive:
		return "inactive"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}
