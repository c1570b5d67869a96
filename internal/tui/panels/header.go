package panels

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// HeaderProps holds all data needed to render the header bar.
// String fields for mode/state avoid importing the parent tui package.
type HeaderProps struct {
	ConfigPath  string
	ProfileName string
	Tabs        int
	Intercepted int
	ModeSymbol  string // e.g. "●", "✓", "?"
	ModeLabel   string // e.g. "READY", "RECORDING"
	Elapsed     time.Duration
	Clock       time.Time
}

// AbbreviatePath returns a display-friendly path, replacing the home directory
// with "~" and converting backslashes to forward slashes.
func AbbreviatePath(path string) string {
	if path == "" {
		return ""
	}
	if home, err := os.UserHomeDir(); err == nil && strings.HasPrefix(path, home) {
		path = "~" + path[len(home):]
	}
	return strings.ReplaceAll(path, "\\", "/")
}

// FormatElapsed renders a duration as a compact string: "5s", "2m30s", "1h15m".
func FormatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%dm", h, m)
	}
	if m > 0 {
		return fmt.Sprintf("%dm%ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// RenderHeader renders the header bar for the multi-panel TUI.
// accentStyle is applied to the full header bar width.
func RenderHeader(props HeaderProps, width int, accentStyle lipgloss.Style) string {
	parts := []string{"⌨ keywarden"}
	if props.ConfigPath != "" {
		parts = append(parts, "config: "+AbbreviatePath(props.ConfigPath))
	}
	if props.ProfileName != "" {
		parts = append(parts, "profile: "+props.ProfileName)
	}

	modeLabel := props.ModeLabel
	if props.ModeSymbol != "" && props.ModeLabel != "" {
		modeLabel = props.ModeSymbol + " " + props.ModeLabel
	}

	parts = append(parts,
		fmt.Sprintf("tabs: %d", props.Tabs),
		fmt.Sprintf("intercepted: %d", props.Intercepted),
	)
	if modeLabel != "" {
		parts = append(parts, modeLabel)
	}
	if props.Elapsed > 0 {
		parts = append(parts, fmt.Sprintf("elapsed: %s", FormatElapsed(props.Elapsed)))
	}
	if !props.Clock.IsZero() {
		parts = append(parts, props.Clock.Format("15:04"))
	}

	content := strings.Join(parts, "  │  ")
	return accentStyle.Width(width).Render(content)
}
