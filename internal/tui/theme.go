package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/keywarden/keywarden/internal/settings"
	"github.com/keywarden/keywarden/internal/store"
)

// Theme holds accent-color-derived styles for the multi-panel TUI.
// Non-accent styles (kind icons, color vars) are package-level in styles.go.
type Theme struct {
	accentStyle     lipgloss.Style // for header background / focused elements
	rebindStyle     lipgloss.Style // for rebind activity messages
	borderFocused   lipgloss.Style // focused panel border
	borderUnfocused lipgloss.Style // unfocused panel border
}

// NewTheme creates a Theme from a hex accent color string (e.g. "#2DD4BF").
// If accentColor is empty, the default accent color is used.
func NewTheme(accentColor string) Theme {
	color := settings.DefaultAccentColor
	if accentColor != "" {
		color = accentColor
	}
	c := lipgloss.Color(color)
	return Theme{
		accentStyle: lipgloss.NewStyle().
			Background(c).
			Foreground(lipgloss.Color("#FFFFFF")).
			Bold(true),
		rebindStyle: lipgloss.NewStyle().
			Foreground(c),
		borderFocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c),
		borderUnfocused: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorGray),
	}
}

// AccentHeaderStyle returns the style for the header bar.
func (t Theme) AccentHeaderStyle() lipgloss.Style {
	return t.accentStyle
}

// PanelBorderStyle returns the appropriate border style for a panel based on
// whether it currently holds keyboard focus.
func (t Theme) PanelBorderStyle(focused bool) lipgloss.Style {
	if focused {
		return t.borderFocused
	}
	return t.borderUnfocused
}

// RenderActivityLine renders a store.Entry as a single terminal line for the
// activity log.
func (t Theme) RenderActivityLine(entry store.Entry, width int) string {
	ts := timestampStyle.Render(fmt.Sprintf("[%s]", entry.Timestamp.Format("15:04:05")))
	icon := kindIcon(entry.Kind)

	var body string
	switch entry.Kind {
	case store.KindIntercepted:
		body = fmt.Sprintf("%s intercepted %s", entry.Combo, entry.Action)

	case store.KindPassed:
		body = fmt.Sprintf("%s passed through", entry.Combo)

	case store.KindRebound:
		body = fmt.Sprintf("%s rebound to %s", entry.Action, entry.Combo)
		if entry.Previous != "" {
			body += fmt.Sprintf(" (was %s)", entry.Previous)
		}
		return fmt.Sprintf("%s  %s %s", ts, icon, t.rebindStyle.Render(body))

	case store.KindConflict:
		body = fmt.Sprintf("%s now shadows %s on %s",
			entry.Action, strings.Join(entry.Conflicts, ", "), entry.Combo)

	case store.KindReload:
		body = "settings reloaded"
		if entry.Detail != "" {
			body += ": " + singleLine(entry.Detail)
		}

	case store.KindSessionStart:
		body = "session started"

	case store.KindSessionEnd:
		body = "session ended"

	default:
		body = singleLine(entry.Detail)
	}

	maxBody := width - 16
	if maxBody < 20 {
		maxBody = 20
	}
	if runes := []rune(body); len(runes) > maxBody {
		body = string(runes[:maxBody-1]) + "…"
	}
	return fmt.Sprintf("%s  %s %s", ts, icon, kindStyle(entry.Kind).Render(body))
}
