package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/keywarden/keywarden/internal/keybind"
	"github.com/keywarden/keywarden/internal/profile"
	"github.com/keywarden/keywarden/internal/store"
)

// formatKeysList renders the keybinding table for `keywarden keys list`.
// Combos bound to more than one action get a warning marker.
func formatKeysList(km keybind.Keymap) string {
	conflicted := make(map[string]bool)
	for _, c := range km.Conflicts() {
		conflicted[c.Combo.String()] = true
	}

	var b strings.Builder
	b.WriteString("Keybindings\n")
	b.WriteString("───────────\n")
	for _, action := range keybind.Actions() {
		combo := "unbound"
		marker := " "
		if c := km.Lookup(action); c != nil {
			combo = c.String()
			if conflicted[combo] {
				marker = "⚠"
			}
		}
		fmt.Fprintf(&b, "  %s %-14s %s\n", marker, action.String(), combo)
	}
	return b.String()
}

// formatKeysJSON renders the keymap as JSON for `keywarden keys list --json`.
// Unbound actions appear with an empty combo so consumers see the full action set.
func formatKeysJSON(km keybind.Keymap) (string, error) {
	bindings := make(map[string]string, len(keybind.Actions()))
	for _, action := range keybind.Actions() {
		combo := ""
		if c := km.Lookup(action); c != nil {
			combo = c.String()
		}
		bindings[action.String()] = combo
	}
	out, err := json.MarshalIndent(bindings, "", "  ")
	if err != nil {
		return "", fmt.Errorf("keys: encode keymap: %w", err)
	}
	return string(out), nil
}

// formatProfilesList renders the profile table for `keywarden profiles list`.
func formatProfilesList(profiles []profile.Profile) string {
	if len(profiles) == 0 {
		return "No profiles found\n"
	}
	var b strings.Builder
	b.WriteString("Profiles\n")
	b.WriteString("────────\n")
	for _, p := range profiles {
		origin := "user"
		if p.Builtin {
			origin = "builtin"
		}
		fmt.Fprintf(&b, "  %-12s %-8s %s\n", p.Name, origin, p.Description)
	}
	return b.String()
}

// formatStatus renders the session summary for `keywarden status`.
func formatStatus(s store.SessionSummary) string {
	var b strings.Builder
	b.WriteString("Last Session\n")
	b.WriteString("────────────\n")
	fmt.Fprintf(&b, "  %-14s %s\n", "session:", s.SessionID)
	if !s.StartedAt.IsZero() {
		fmt.Fprintf(&b, "  %-14s %s\n", "started:", s.StartedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(&b, "  %-14s %d\n", "intercepted:", s.Intercepted)
	fmt.Fprintf(&b, "  %-14s %d\n", "passed:", s.Passed)
	fmt.Fprintf(&b, "  %-14s %d\n", "rebound:", s.Rebound)
	fmt.Fprintf(&b, "  %-14s %d\n", "conflicts:", s.Conflicts)
	fmt.Fprintf(&b, "  %-14s %d\n", "reloads:", s.Reloads)
	if s.LastCombo != "" {
		fmt.Fprintf(&b, "  %-14s %s (%s)\n", "last:", s.LastCombo, s.LastAction)
	}
	return b.String()
}
