package panels

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keywarden/keywarden/internal/store"
	"github.com/keywarden/keywarden/internal/tui/components"
)

// ActivityTab identifies the active content tab in the activity panel.
type ActivityTab int

const (
	TabLog       ActivityTab = iota // Live activity log
	TabConflicts                    // Conflict warnings only
	TabSummary                      // Session counters
)

var activityTabLabels = []string{"Activity", "Conflicts", "Summary"}

// ActivityPanel is the bottom-right panel showing the session activity log,
// conflict warnings, and aggregate counters.
type ActivityPanel struct {
	tabbar    components.TabBar
	log       components.LogView
	conflicts components.LogView
	summary   store.SessionSummary
	width     int
	height    int
	activeTab ActivityTab
}

// NewActivityPanel creates an activity panel.
func NewActivityPanel(w, h int) ActivityPanel {
	contentH := h - 1
	if contentH < 1 {
		contentH = 1
	}
	return ActivityPanel{
		tabbar:    components.NewTabBar(activityTabLabels).SetWidth(w),
		log:       components.NewLogView(w, contentH),
		conflicts: components.NewLogView(w, contentH),
		width:     w,
		height:    h,
		activeTab: TabLog,
	}
}

// AppendLine appends a pre-rendered line to the activity log. Conflict
// lines are mirrored into the Conflicts tab.
func (p ActivityPanel) AppendLine(rendered string, kind store.Kind) ActivityPanel {
	p.log = p.log.AppendLine(rendered)
	if kind == store.KindConflict {
		p.conflicts = p.conflicts.AppendLine(rendered)
	}
	return p
}

// SetSummary updates the counters shown on the Summary tab.
func (p ActivityPanel) SetSummary(s store.SessionSummary) ActivityPanel {
	p.summary = s
	return p
}

// SetSize resizes all internal viewports.
func (p ActivityPanel) SetSize(w, h int) ActivityPanel {
	p.width = w
	p.height = h
	contentH := h - 1
	if contentH < 1 {
		contentH = 1
	}
	p.tabbar = p.tabbar.SetWidth(w)
	p.log = p.log.SetSize(w, contentH)
	p.conflicts = p.conflicts.SetSize(w, contentH)
	return p
}

// Update handles key messages for the activity panel.
func (p ActivityPanel) Update(msg tea.Msg) (ActivityPanel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "]":
			p.tabbar = p.tabbar.Next()
			p.activeTab = ActivityTab(p.tabbar.Active())
		case "[":
			p.tabbar = p.tabbar.Prev()
			p.activeTab = ActivityTab(p.tabbar.Active())
		default:
			switch p.activeTab {
			case TabLog:
				p.log, cmd = p.log.Update(msg)
			case TabConflicts:
				p.conflicts, cmd = p.conflicts.Update(msg)
			}
		}
	default:
		switch p.activeTab {
		case TabLog:
			p.log, cmd = p.log.Update(msg)
		case TabConflicts:
			p.conflicts, cmd = p.conflicts.Update(msg)
		}
	}
	return p, cmd
}

// View renders the activity panel: tab bar + active tab content.
func (p ActivityPanel) View() string {
	tabRow := p.tabbar.View()
	var content string
	switch p.activeTab {
	case TabLog:
		content = p.log.View()
	case TabConflicts:
		content = p.conflicts.View()
	case TabSummary:
		content = p.renderSummary()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabRow, content)
}

// renderSummary renders the session counter table for the Summary tab.
func (p ActivityPanel) renderSummary() string {
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("#888888"))
	contentH := p.height - 1
	if contentH < 1 {
		contentH = 1
	}

	s := p.summary
	rows := []struct {
		label string
		value string
	}{
		{"Intercepted", fmt.Sprintf("%d", s.Intercepted)},
		{"Passed", fmt.Sprintf("%d", s.Passed)},
		{"Rebound", fmt.Sprintf("%d", s.Rebound)},
		{"Conflicts", fmt.Sprintf("%d", s.Conflicts)},
		{"Reloads", fmt.Sprintf("%d", s.Reloads)},
	}

	var sb strings.Builder
	sb.WriteString(dim.Render(fmt.Sprintf("  %-14s %8s", "Event", "Count")))
	sb.WriteString("\n")
	divider := strings.Repeat("─", min(p.width, 26))
	sb.WriteString(dim.Render(divider))
	sb.WriteString("\n")
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("  %-14s %8s", r.label, r.value))
		sb.WriteString("\n")
	}
	if s.LastCombo != "" {
		sb.WriteString(dim.Render(divider))
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf("  last: %s", s.LastCombo))
		if s.LastAction != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", s.LastAction))
		}
	}

	return lipgloss.NewStyle().
		Width(p.width).Height(contentH).
		Render(sb.String())
}
