// Package tui provides a bubbletea + lipgloss terminal UI demonstrating
// live keybinding interception, recording, and profiles.
package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/keywarden/keywarden/internal/store"
)

// Color palette.
var (
	colorWhite  = lipgloss.Color("#FAFAFA")
	colorGray   = lipgloss.Color("#888888")
	colorBlue   = lipgloss.Color("#5B9BD5")
	colorGreen  = lipgloss.Color("#6BCB77")
	colorYellow = lipgloss.Color("#FFD93D")
	colorRed    = lipgloss.Color("#FF6B6B")
	colorOrange = lipgloss.Color("#FFA54F")
)

// Styles used across the TUI. Accent-dependent styles (header, rebind) live
// on the Theme and are computed from the configured accent color at creation.
var (
	timestampStyle = lipgloss.NewStyle().
			Foreground(colorGray)

	interceptStyle = lipgloss.NewStyle().
			Foreground(colorGreen)

	passedStyle = lipgloss.NewStyle().
			Foreground(colorBlue)

	conflictStyle = lipgloss.NewStyle().
			Foreground(colorYellow)

	errorStyle = lipgloss.NewStyle().
			Foreground(colorRed).
			Bold(true)

	reloadStyle = lipgloss.NewStyle().
			Foreground(colorOrange)

	infoStyle = lipgloss.NewStyle().
			Foreground(colorWhite)
)

// kindIcon returns the icon for an activity entry kind.
func kindIcon(kind store.Kind) string {
	switch kind {
	case store.KindIntercepted:
		return "⛔"
	case store.KindPassed:
		return "→"
	case store.KindRebound:
		return "⌨"
	case store.KindConflict:
		return "⚠"
	case store.KindReload:
		return "⟳"
	case store.KindSessionStart, store.KindSessionEnd:
		return "•"
	default:
		return " "
	}
}

// kindStyle returns the lipgloss style for an activity entry kind.
func kindStyle(kind store.Kind) lipgloss.Style {
	switch kind {
	case store.KindIntercepted:
		return interceptStyle
	case store.KindPassed:
		return passedStyle
	case store.KindConflict:
		return conflictStyle
	case store.KindReload:
		return reloadStyle
	default:
		return infoStyle
	}
}

// singleLine collapses newlines so an entry renders as one terminal row.
func singleLine(s string) string {
	s = strings.ReplaceAll(s, "\r\n", " ")
	s = strings.ReplaceAll(s, "\n", " ")
	return strings.TrimSpace(s)
}
