package keybind

import (
	"fmt"
	"sort"
)

// Keymap is an immutable-by-convention snapshot mapping actions to combos.
// Callers must not mutate a Keymap obtained from the settings store; use
// Clone when a modified copy is needed.
type Keymap map[Action]Combo

// DefaultKeymap returns the built-in terminal keybindings.
func DefaultKeymap() Keymap {
	return Keymap{
		ActionCloseTab:    MustParseCombo("ctrl+w"),
		ActionNewTab:      MustParseCombo("ctrl+t"),
		ActionNextTab:     MustParseCombo("ctrl+pgdown"),
		ActionPrevTab:     MustParseCombo("ctrl+pgup"),
		ActionClearBuffer: MustParseCombo("ctrl+l"),
	}
}

// Lookup returns the combo bound to the action, or nil when no binding
// exists. The nil result feeds straight into Matches, which treats an
// absent spec as "never matches".
func (k Keymap) Lookup(a Action) *Combo {
	if c, ok := k[a]; ok {
		return &c
	}
	return nil
}

// Clone returns a copy of the keymap.
func (k Keymap) Clone() Keymap {
	out := make(Keymap, len(k))
	for a, c := range k {
		out[a] = c
	}
	return out
}

// Conflict reports two actions bound to the same key combination.
type Conflict struct {
	Combo   Combo
	Actions []Action // sorted, always at least two
}

// Conflicts scans the keymap for combos bound to more than one action.
func (k Keymap) Conflicts() []Conflict {
	byCombo := make(map[string][]Action)
	for a, c := range k {
		key := c.String()
		byCombo[key] = append(byCombo[key], a)
	}

	var out []Conflict
	for _, actions := range byCombo {
		if len(actions) < 2 {
			continue
		}
		sort.Slice(actions, func(i, j int) bool { return actions[i] < actions[j] })
		out = append(out, Conflict{Combo: k[actions[0]], Actions: actions})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Combo.String() < out[j].Combo.String() })
	return out
}

// ConflictsWith returns the actions (other than the one being bound) that
// already use the given combo. Used by the recorder and the keys CLI to
// warn before committing a rebind.
func (k Keymap) ConflictsWith(action Action, combo Combo) []Action {
	var out []Action
	for a, c := range k {
		if a == action {
			continue
		}
		if c.Equal(combo) {
			out = append(out, a)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// ParseKeymap builds a Keymap from configuration name/combo string pairs.
func ParseKeymap(raw map[string]string) (Keymap, error) {
	km := make(Keymap, len(raw))
	for name, comboStr := range raw {
		action, err := ParseAction(name)
		if err != nil {
			return nil, err
		}
		combo, err := ParseCombo(comboStr)
		if err != nil {
			return nil, fmt.Errorf("keybind: action %q: %w", name, err)
		}
		km[action] = combo
	}
	return km, nil
}

// Raw converts the keymap back to configuration name/combo string pairs.
func (k Keymap) Raw() map[string]string {
	out := make(map[string]string, len(k))
	for a, c := range k {
		out[a.String()] = c.String()
	}
	return out
}
