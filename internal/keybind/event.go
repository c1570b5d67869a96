package keybind

import "strings"

// Event is an incoming key press observed by the application window.
// It carries the same physical shape as a Combo but is a distinct type:
// events arrive from the input layer, combos come from configuration.
type Event struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

// EventFromString builds an Event from a bubbletea key string such as
// "ctrl+w", "shift+tab", or "W". Unknown prefixes are treated as part of
// the base key, so parsing never fails: an unrecognized event simply never
// matches any configured combo.
func EventFromString(s string) Event {
	var ev Event
	rest := s
	for {
		idx := strings.Index(rest, "+")
		if idx <= 0 || idx == len(rest)-1 {
			break
		}
		set, ok := modifierAliases[strings.ToLower(rest[:idx])]
		if !ok {
			break
		}
		tmp := Combo{}
		set(&tmp)
		ev.Ctrl = ev.Ctrl || tmp.Ctrl
		ev.Alt = ev.Alt || tmp.Alt
		ev.Shift = ev.Shift || tmp.Shift
		ev.Meta = ev.Meta || tmp.Meta
		rest = rest[idx+1:]
	}
	ev.Key = rest
	return ev
}

// Combo converts the event into its canonical Combo form, applying the
// same shift normalization as ParseCombo. This is what the recorder stores
// when it captures a raw key press.
func (e Event) Combo() Combo {
	c := Combo{Key: e.Key, Ctrl: e.Ctrl, Alt: e.Alt, Shift: e.Shift, Meta: e.Meta}
	c.normalizeShift()
	return c
}

// String returns the canonical string form of the event.
func (e Event) String() string {
	return e.Combo().String()
}

// Matches reports whether the event matches the given combo spec.
// A nil spec never matches: a missing configuration entry means no match,
// never a fault.
func Matches(ev Event, spec *Combo) bool {
	if spec == nil {
		return false
	}
	return ev.Combo().Equal(*spec)
}
