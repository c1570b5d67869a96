// Package components provides reusable TUI components for the keywarden
// multi-panel UI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// tabActiveStyle renders the active tab with bold accent-colored text.
var tabActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2DD4BF"))

// tabInactiveStyle renders inactive tabs in a dimmed style.
var tabInactiveStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))

// TabBar renders a row of labelled tabs with one active. Tabs can be
// appended and removed at runtime, which the terminal panel uses for
// workspace tabs.
type TabBar struct {
	tabs   []string
	active int
	width  int
}

// NewTabBar creates a TabBar with the given tab titles. The first tab is active.
func NewTabBar(tabs []string) TabBar {
	return TabBar{tabs: tabs}
}

// Active returns the index of the currently active tab.
func (t TabBar) Active() int {
	return t.active
}

// Count returns the number of tabs.
func (t TabBar) Count() int {
	return len(t.tabs)
}

// Label returns the label of tab i, or "" when out of range.
func (t TabBar) Label(i int) string {
	if i < 0 || i >= len(t.tabs) {
		return ""
	}
	return t.tabs[i]
}

// Next returns a TabBar with the next tab active (wraps around).
func (t TabBar) Next() TabBar {
	if len(t.tabs) == 0 {
		return t
	}
	t.active = (t.active + 1) % len(t.tabs)
	return t
}

// Prev returns a TabBar with the previous tab active (wraps around).
func (t TabBar) Prev() TabBar {
	if len(t.tabs) == 0 {
		return t
	}
	t.active = (t.active + len(t.tabs) - 1) % len(t.tabs)
	return t
}

// SetActive returns a TabBar with tab i active. Out-of-range indices are
// ignored.
func (t TabBar) SetActive(i int) TabBar {
	if i >= 0 && i < len(t.tabs) {
		t.active = i
	}
	return t
}

// Append returns a TabBar with a new tab added at the end and made active.
func (t TabBar) Append(label string) TabBar {
	tabs := make([]string, len(t.tabs), len(t.tabs)+1)
	copy(tabs, t.tabs)
	t.tabs = append(tabs, label)
	t.active = len(t.tabs) - 1
	return t
}

// Remove returns a TabBar with tab i removed. The active tab shifts left
// when it was at or after i. Removing the last remaining tab leaves the bar
// empty.
func (t TabBar) Remove(i int) TabBar {
	if i < 0 || i >= len(t.tabs) {
		return t
	}
	tabs := make([]string, 0, len(t.tabs)-1)
	tabs = append(tabs, t.tabs[:i]...)
	tabs = append(tabs, t.tabs[i+1:]...)
	t.tabs = tabs
	if t.active >= i && t.active > 0 {
		t.active--
	}
	if t.active >= len(t.tabs) {
		t.active = len(t.tabs) - 1
	}
	return t
}

// SetWidth returns a TabBar configured for the given render width.
func (t TabBar) SetWidth(w int) TabBar {
	t.width = w
	return t
}

// View renders the tab bar as a single line string.
// Active tab: bold + accent color. Inactive tabs: dimmed.
func (t TabBar) View() string {
	if len(t.tabs) == 0 {
		return ""
	}

	var parts []string
	for i, label := range t.tabs {
		var rendered string
		if i == t.active {
			rendered = tabActiveStyle.Render(label)
		} else {
			rendered = tabInactiveStyle.Render(label)
		}
		parts = append(parts, rendered)
	}

	return strings.Join(parts, "  │  ")
}
