// Package panels provides the panel components for the keywarden
// multi-panel TUI.
package panels

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keywarden/keywarden/internal/keybind"
)

// RecordRequestMsg is emitted when the user presses 'r' to rebind the
// selected action.
type RecordRequestMsg struct{ Action keybind.Action }

// ResetRequestMsg is emitted when the user presses 'd' to restore the
// selected action's default combo.
type ResetRequestMsg struct{ Action keybind.Action }

// bindingItem wraps one action binding as a list.Item.
type bindingItem struct {
	action   keybind.Action
	combo    string // "" when unbound
	conflict bool   // combo shared with another action
}

func (b bindingItem) Title() string {
	combo := b.combo
	if combo == "" {
		combo = "unbound"
	}
	marker := " "
	if b.conflict {
		marker = "⚠"
	}
	return fmt.Sprintf("%s %-12s %s", marker, b.action.String(), combo)
}

func (b bindingItem) Description() string { return b.action.Label() }
func (b bindingItem) FilterValue() string { return b.action.String() }

// bindingDelegate is a custom item delegate for compact single-line items.
type bindingDelegate struct{}

func (d bindingDelegate) Height() int                             { return 1 }
func (d bindingDelegate) Spacing() int                            { return 0 }
func (d bindingDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d bindingDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	bi, ok := item.(bindingItem)
	if !ok {
		return
	}
	s := bi.Title()
	if index == m.Index() {
		s = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2DD4BF")).Render("> " + s)
	} else {
		s = "  " + s
	}
	_, _ = fmt.Fprint(w, s)
}

// BindingsPanel displays every action with its current combo and lets the
// user start a rebind or reset to default.
type BindingsPanel struct {
	list   list.Model
	keymap keybind.Keymap
	width  int
	height int
}

// NewBindingsPanel creates a bindings panel showing km.
func NewBindingsPanel(km keybind.Keymap, w, h int) BindingsPanel {
	l := list.New(buildBindingItems(km), bindingDelegate{}, w, h)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	return BindingsPanel{
		list:   l,
		keymap: km,
		width:  w,
		height: h,
	}
}

// buildBindingItems renders km into list items in stable action order, with
// conflict markers on combos bound to more than one action.
func buildBindingItems(km keybind.Keymap) []list.Item {
	conflicted := make(map[string]bool)
	for _, c := range km.Conflicts() {
		conflicted[c.Combo.String()] = true
	}
	actions := keybind.Actions()
	items := make([]list.Item, len(actions))
	for i, action := range actions {
		item := bindingItem{action: action}
		if combo := km.Lookup(action); combo != nil {
			item.combo = combo.String()
			item.conflict = conflicted[item.combo]
		}
		items[i] = item
	}
	return items
}

// SetKeymap replaces the displayed keymap, preserving the selection.
func (p BindingsPanel) SetKeymap(km keybind.Keymap) BindingsPanel {
	p.keymap = km
	idx := p.list.Index()
	p.list.SetItems(buildBindingItems(km))
	p.list.Select(idx)
	return p
}

// SelectedAction returns the currently highlighted action, or nil.
func (p BindingsPanel) SelectedAction() *keybind.Action {
	if item, ok := p.list.SelectedItem().(bindingItem); ok {
		a := item.action
		return &a
	}
	return nil
}

// SetSize resizes the panel.
func (p BindingsPanel) SetSize(w, h int) BindingsPanel {
	p.width = w
	p.height = h
	p.list.SetSize(w, h)
	return p
}

// Update handles key messages for the panel.
func (p BindingsPanel) Update(msg tea.Msg) (BindingsPanel, tea.Cmd) {
	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			p.list, cmd = p.list.Update(tea.KeyMsg{Type: tea.KeyDown})
		case "k", "up":
			p.list, cmd = p.list.Update(tea.KeyMsg{Type: tea.KeyUp})
		case "r", "enter":
			if sel := p.SelectedAction(); sel != nil {
				action := *sel
				return p, func() tea.Msg { return RecordRequestMsg{Action: action} }
			}
		case "d":
			if sel := p.SelectedAction(); sel != nil {
				action := *sel
				return p, func() tea.Msg { return ResetRequestMsg{Action: action} }
			}
		default:
			p.list, cmd = p.list.Update(msg)
		}
	default:
		p.list, cmd = p.list.Update(msg)
	}
	return p, cmd
}

// View renders the bindings panel.
func (p BindingsPanel) View() string {
	return p.list.View()
}
