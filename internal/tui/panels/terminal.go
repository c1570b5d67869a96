package panels

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keywarden/keywarden/internal/tui/components"
)

// TerminalPanel is the demo terminal surface: a row of workspace tabs, each
// with its own scrollback buffer. The tab and buffer actions (close, new,
// next, prev, clear) are what the keybinding actions operate on.
type TerminalPanel struct {
	tabbar  components.TabBar
	buffers []components.LogView
	width   int
	height  int
	nextNum int // monotonically increasing tab number
}

// NewTerminalPanel creates a terminal panel with a single workspace tab.
func NewTerminalPanel(w, h int) TerminalPanel {
	contentH := h - 1 // subtract tab bar row
	if contentH < 1 {
		contentH = 1
	}
	return TerminalPanel{
		tabbar:  components.NewTabBar([]string{"term 1"}).SetWidth(w),
		buffers: []components.LogView{components.NewLogView(w, contentH)},
		width:   w,
		height:  h,
		nextNum: 2,
	}
}

// Echo appends a pre-rendered line to the active tab's buffer.
func (p TerminalPanel) Echo(rendered string) TerminalPanel {
	if i := p.tabbar.Active(); i < len(p.buffers) {
		p.buffers[i] = p.buffers[i].AppendLine(rendered)
	}
	return p
}

// NewTab opens a fresh workspace tab and makes it active.
func (p TerminalPanel) NewTab() TerminalPanel {
	contentH := p.height - 1
	if contentH < 1 {
		contentH = 1
	}
	p.tabbar = p.tabbar.Append(fmt.Sprintf("term %d", p.nextNum))
	p.nextNum++
	buffers := make([]components.LogView, len(p.buffers), len(p.buffers)+1)
	copy(buffers, p.buffers)
	p.buffers = append(buffers, components.NewLogView(p.width, contentH))
	return p
}

// CloseActive closes the active tab. The last remaining tab is never
// closed; the caller decides whether that means quitting the app.
func (p TerminalPanel) CloseActive() TerminalPanel {
	if len(p.buffers) <= 1 {
		return p
	}
	i := p.tabbar.Active()
	p.tabbar = p.tabbar.Remove(i)
	buffers := make([]components.LogView, 0, len(p.buffers)-1)
	buffers = append(buffers, p.buffers[:i]...)
	buffers = append(buffers, p.buffers[i+1:]...)
	p.buffers = buffers
	return p
}

// NextTab activates the next tab, wrapping around.
func (p TerminalPanel) NextTab() TerminalPanel {
	p.tabbar = p.tabbar.Next()
	return p
}

// PrevTab activates the previous tab, wrapping around.
func (p TerminalPanel) PrevTab() TerminalPanel {
	p.tabbar = p.tabbar.Prev()
	return p
}

// ClearActive empties the active tab's scrollback.
func (p TerminalPanel) ClearActive() TerminalPanel {
	if i := p.tabbar.Active(); i < len(p.buffers) {
		p.buffers[i] = p.buffers[i].Clear()
	}
	return p
}

// Count returns the number of open tabs.
func (p TerminalPanel) Count() int {
	return p.tabbar.Count()
}

// ActiveLabel returns the active tab's label.
func (p TerminalPanel) ActiveLabel() string {
	return p.tabbar.Label(p.tabbar.Active())
}

// ActiveLines returns the number of lines in the active tab's scrollback.
func (p TerminalPanel) ActiveLines() int {
	if i := p.tabbar.Active(); i < len(p.buffers) {
		return p.buffers[i].Len()
	}
	return 0
}

// SetSize resizes the panel and every tab buffer.
func (p TerminalPanel) SetSize(w, h int) TerminalPanel {
	p.width = w
	p.height = h
	contentH := h - 1
	if contentH < 1 {
		contentH = 1
	}
	p.tabbar = p.tabbar.SetWidth(w)
	buffers := make([]components.LogView, len(p.buffers))
	for i, b := range p.buffers {
		buffers[i] = b.SetSize(w, contentH)
	}
	p.buffers = buffers
	return p
}

// Update delegates scroll keys to the active tab's buffer.
func (p TerminalPanel) Update(msg tea.Msg) (TerminalPanel, tea.Cmd) {
	var cmd tea.Cmd
	if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.String() == "f" {
		if i := p.tabbar.Active(); i < len(p.buffers) {
			p.buffers[i] = p.buffers[i].ToggleFollow()
		}
		return p, nil
	}
	if i := p.tabbar.Active(); i < len(p.buffers) {
		p.buffers[i], cmd = p.buffers[i].Update(msg)
	}
	return p, cmd
}

// View renders the terminal panel: tab bar + active buffer.
func (p TerminalPanel) View() string {
	tabRow := p.tabbar.View()
	var content string
	if i := p.tabbar.Active(); i < len(p.buffers) {
		content = p.buffers[i].View()
	}
	return lipgloss.JoinVertical(lipgloss.Left, tabRow, content)
}
