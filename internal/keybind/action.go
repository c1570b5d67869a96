// Package keybind defines the keybinding model shared by the interceptor,
// the settings store, and the TUI: logical actions, physical key
// combinations, incoming key events, and the matching predicate.
package keybind

import "fmt"

// Action identifies a logical workspace action that can be bound to a key
// combination. The set is closed: configuration referring to an unknown
// action name is a validation error.
type Action int

const (
	ActionCloseTab    Action = iota // close the active workspace tab
	ActionNewTab                    // open a new workspace tab
	ActionNextTab                   // focus the next tab
	ActionPrevTab                   // focus the previous tab
	ActionClearBuffer               // clear the active tab's buffer
)

// actionNames maps each Action to its canonical configuration name.
var actionNames = map[Action]string{
	ActionCloseTab:    "close_tab",
	ActionNewTab:      "new_tab",
	ActionNextTab:     "next_tab",
	ActionPrevTab:     "prev_tab",
	ActionClearBuffer: "clear_buffer",
}

// Actions returns all known actions in display order.
func Actions() []Action {
	return []Action{ActionCloseTab, ActionNewTab, ActionNextTab, ActionPrevTab, ActionClearBuffer}
}

// String returns the canonical configuration name for the action.
func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Label returns a human-readable label for display in the TUI.
func (a Action) Label() string {
	switch a {
	case ActionCloseTab:
		return "Close tab"
	case ActionNewTab:
		return "New tab"
	case ActionNextTab:
		return "Next tab"
	case ActionPrevTab:
		return "Previous tab"
	case ActionClearBuffer:
		return "Clear buffer"
	default:
		return "Unknown"
	}
}

// ParseAction resolves a configuration name to an Action.
func ParseAction(name string) (Action, error) {
	for a, n := range actionNames {
		if n == name {
			return a, nil
		}
	}
	return 0, fmt.Errorf("keybind: unknown action %q", name)
}
