package keybind

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

// Combo is a physical key combination: a base key plus modifier flags.
// The base key uses bubbletea key names ("w", "tab", "enter", "pgdown", ...).
type Combo struct {
	Key   string
	Ctrl  bool
	Alt   bool
	Shift bool
	Meta  bool
}

// modifierAliases maps accepted modifier spellings to canonical setters.
var modifierAliases = map[string]func(*Combo){
	"ctrl":    func(c *Combo) { c.Ctrl = true },
	"control": func(c *Combo) { c.Ctrl = true },
	"alt":     func(c *Combo) { c.Alt = true },
	"option":  func(c *Combo) { c.Alt = true },
	"opt":     func(c *Combo) { c.Alt = true },
	"shift":   func(c *Combo) { c.Shift = true },
	"meta":    func(c *Combo) { c.Meta = true },
	"cmd":     func(c *Combo) { c.Meta = true },
	"super":   func(c *Combo) { c.Meta = true },
	"win":     func(c *Combo) { c.Meta = true },
}

// namedKeys lists the non-character key names accepted as a Combo base key.
var namedKeys = map[string]bool{
	"enter": true, "tab": true, "esc": true, "escape": true, "space": true,
	"backspace": true, "delete": true, "insert": true, "home": true, "end": true,
	"pgup": true, "pgdown": true, "up": true, "down": true, "left": true, "right": true,
	"f1": true, "f2": true, "f3": true, "f4": true, "f5": true, "f6": true,
	"f7": true, "f8": true, "f9": true, "f10": true, "f11": true, "f12": true,
}

// ParseCombo parses a combo string like "ctrl+w" or "ctrl+shift+t".
// Modifiers may appear in any order and accept common aliases
// ("control", "cmd", "opt", ...). The final part is the base key: either a
// single character or a named key ("tab", "pgdown", ...).
//
// Shifted characters are normalized: "shift+w" becomes the single key "W"
// with the shift flag cleared, since shift is part of the character itself.
func ParseCombo(s string) (Combo, error) {
	if strings.TrimSpace(s) == "" {
		return Combo{}, fmt.Errorf("keybind: empty combo")
	}

	parts := strings.Split(s, "+")
	var c Combo
	for i, part := range parts {
		part = strings.TrimSpace(part)
		last := i == len(parts)-1

		if !last {
			set, ok := modifierAliases[strings.ToLower(part)]
			if !ok {
				return Combo{}, fmt.Errorf("keybind: unknown modifier %q in %q", part, s)
			}
			set(&c)
			continue
		}

		key, err := normalizeKey(part)
		if err != nil {
			return Combo{}, fmt.Errorf("keybind: %w in %q", err, s)
		}
		c.Key = key
	}

	c.normalizeShift()
	return c, nil
}

// MustParseCombo is ParseCombo for static combos; it panics on error.
func MustParseCombo(s string) Combo {
	c, err := ParseCombo(s)
	if err != nil {
		panic(err)
	}
	return c
}

// normalizeKey validates and canonicalizes a base key name.
func normalizeKey(part string) (string, error) {
	if part == "" {
		return "", fmt.Errorf("missing base key")
	}
	if utf8.RuneCountInString(part) == 1 {
		return part, nil
	}
	lower := strings.ToLower(part)
	if lower == "escape" {
		lower = "esc"
	}
	if !namedKeys[lower] {
		return "", fmt.Errorf("unknown key %q", part)
	}
	return lower, nil
}

// normalizeShift folds shift into single-letter keys: shift+w is the same
// physical press as W, so the canonical form stores the uppercase rune with
// the shift flag cleared.
func (c *Combo) normalizeShift() {
	if !c.Shift {
		return
	}
	r, size := utf8.DecodeRuneInString(c.Key)
	if size == len(c.Key) && unicode.IsLetter(r) {
		c.Key = string(unicode.ToUpper(r))
		c.Shift = false
	}
}

// String returns the canonical combo string with modifiers in
// ctrl, alt, shift, meta order.
func (c Combo) String() string {
	var parts []string
	if c.Ctrl {
		parts = append(parts, "ctrl")
	}
	if c.Alt {
		parts = append(parts, "alt")
	}
	if c.Shift {
		parts = append(parts, "shift")
	}
	if c.Meta {
		parts = append(parts, "meta")
	}
	parts = append(parts, c.Key)
	return strings.Join(parts, "+")
}

// Equal reports whether two combos describe the same physical key press.
func (c Combo) Equal(other Combo) bool {
	return c.Key == other.Key &&
		c.Ctrl == other.Ctrl &&
		c.Alt == other.Alt &&
		c.Shift == other.Shift &&
		c.Meta == other.Meta
}
