package panels

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

var footerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

// FooterProps holds all data needed to render the footer bar.
type FooterProps struct {
	Focus      string // "bindings", "profiles", "terminal", "activity"
	LastEvent  string // most recent activity line, plain text
	Recording  bool
	RecordFor  string // action being recorded
	Confirming bool   // confirm-close dialog open
}

// RenderFooter renders the context-sensitive footer bar.
// Left side: last activity event. Right side: keybinding hints.
func RenderFooter(props FooterProps, width int) string {
	last := props.LastEvent
	if last == "" {
		last = "—"
	}
	left := fmt.Sprintf("last: %s", last)

	var right string
	switch {
	case props.Recording:
		right = fmt.Sprintf("● press a combo for %s  esc:cancel", props.RecordFor)
	case props.Confirming:
		right = "close tab?  y/enter:close  n/esc:keep"
	default:
		right = panelHints(props.Focus) + "  ?:help  q:quit  1-4:panel"
	}

	gap := width - len([]rune(left)) - len([]rune(right))
	if gap < 2 {
		gap = 2
	}

	return footerStyle.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}

// panelHints returns the context-sensitive keybinding hints for a given focus.
func panelHints(focus string) string {
	switch focus {
	case "bindings":
		return "j/k:navigate  r:rebind  d:default  tab:next panel"
	case "profiles":
		return "j/k:navigate  a:apply  n:save  tab:next panel"
	case "terminal":
		return "type to echo  f:follow  tab:next panel"
	case "activity":
		return "[/]:tab  j/k:scroll  tab:next panel"
	default:
		return "tab:next panel"
	}
}
