package panels

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/keywarden/keywarden/internal/profile"
)

// ApplyProfileRequestMsg is emitted when the user applies the selected profile.
type ApplyProfileRequestMsg struct{ Profile profile.Profile }

// SaveProfileRequestMsg is emitted when the user submits a name via the 'n'
// overlay to save the current bindings as a new profile.
type SaveProfileRequestMsg struct{ Name string }

// profileItem wraps a profile.Profile as a list.Item.
type profileItem struct {
	p profile.Profile
}

func (i profileItem) Title() string {
	origin := "user"
	if i.p.Builtin {
		origin = "builtin"
	}
	return fmt.Sprintf("%-10s %s", i.p.Name, origin)
}

func (i profileItem) Description() string { return i.p.Description }
func (i profileItem) FilterValue() string { return i.p.Name }

// profileDelegate is a custom item delegate for compact single-line items.
type profileDelegate struct{}

func (d profileDelegate) Height() int                             { return 1 }
func (d profileDelegate) Spacing() int                            { return 0 }
func (d profileDelegate) Update(_ tea.Msg, _ *list.Model) tea.Cmd { return nil }
func (d profileDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	pi, ok := item.(profileItem)
	if !ok {
		return
	}
	s := pi.Title()
	if index == m.Index() {
		s = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#2DD4BF")).Render("> " + s)
	} else {
		s = "  " + s
	}
	_, _ = fmt.Fprint(w, s)
}

// ProfilesPanel displays the available keymap presets.
type ProfilesPanel struct {
	list        list.Model
	profiles    []profile.Profile
	width       int
	height      int
	input       textinput.Model
	inputActive bool
}

// NewProfilesPanel creates a profiles panel with the given presets.
func NewProfilesPanel(profiles []profile.Profile, w, h int) ProfilesPanel {
	items := make([]list.Item, len(profiles))
	for i, p := range profiles {
		items[i] = profileItem{p: p}
	}
	l := list.New(items, profileDelegate{}, w, h)
	l.SetShowTitle(false)
	l.SetShowHelp(false)
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)

	ti := textinput.New()
	ti.Placeholder = "profile-name"
	ti.CharLimit = 64
	if w > 4 {
		ti.Width = w - 4
	}

	return ProfilesPanel{
		list:     l,
		profiles: profiles,
		width:    w,
		height:   h,
		input:    ti,
	}
}

// InputActive reports whether the name-input overlay is capturing keys.
// The root model bypasses global key handling while it is.
func (p ProfilesPanel) InputActive() bool {
	return p.inputActive
}

// SetProfiles replaces the displayed profile list, preserving the selection.
func (p ProfilesPanel) SetProfiles(profiles []profile.Profile) ProfilesPanel {
	p.profiles = profiles
	items := make([]list.Item, len(profiles))
	for i, pr := range profiles {
		items[i] = profileItem{p: pr}
	}
	idx := p.list.Index()
	p.list.SetItems(items)
	if idx < len(items) {
		p.list.Select(idx)
	}
	return p
}

// SelectedProfile returns the currently highlighted profile, or nil.
func (p ProfilesPanel) SelectedProfile() *profile.Profile {
	if item, ok := p.list.SelectedItem().(profileItem); ok {
		pr := item.p
		return &pr
	}
	return nil
}

// SetSize resizes the panel.
func (p ProfilesPanel) SetSize(w, h int) ProfilesPanel {
	p.width = w
	p.height = h
	p.list.SetSize(w, h)
	if w > 4 {
		p.input.Width = w - 4
	}
	return p
}

// Update handles key messages for the panel.
func (p ProfilesPanel) Update(msg tea.Msg) (ProfilesPanel, tea.Cmd) {
	// When the name-input overlay is active, route messages there first.
	if p.inputActive {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "esc":
				p.inputActive = false
				p.input.Blur()
				p.input.Reset()
				return p, nil
			case "enter":
				name := strings.TrimSpace(p.input.Value())
				if name == "" {
					return p, nil
				}
				p.inputActive = false
				p.input.Blur()
				p.input.Reset()
				return p, func() tea.Msg { return SaveProfileRequestMsg{Name: name} }
			}
		}
		var cmd tea.Cmd
		p.input, cmd = p.input.Update(msg)
		return p, cmd
	}

	var cmd tea.Cmd
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "j", "down":
			p.list, cmd = p.list.Update(tea.KeyMsg{Type: tea.KeyDown})
		case "k", "up":
			p.list, cmd = p.list.Update(tea.KeyMsg{Type: tea.KeyUp})
		case "enter", "a":
			if sel := p.SelectedProfile(); sel != nil {
				pr := *sel
				return p, func() tea.Msg { return ApplyProfileRequestMsg{Profile: pr} }
			}
		case "n":
			p.inputActive = true
			p.input.Reset()
			p.input.Focus()
			return p, textinput.Blink
		default:
			p.list, cmd = p.list.Update(msg)
		}
	default:
		p.list, cmd = p.list.Update(msg)
	}
	return p, cmd
}

// View renders the profiles panel.
func (p ProfilesPanel) View() string {
	if p.inputActive {
		prompt := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#2DD4BF")).
			Render("Save bindings as:")
		hint := lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888")).
			Render("Enter to save · Esc to cancel")
		content := lipgloss.JoinVertical(lipgloss.Left,
			prompt,
			p.input.View(),
			hint,
		)
		return lipgloss.NewStyle().
			Width(p.width).Height(p.height).
			Render(content)
	}
	if len(p.profiles) == 0 {
		return lipgloss.NewStyle().
			Width(p.width).Height(p.height).
			Align(lipgloss.Center, lipgloss.Center).
			Foreground(lipgloss.Color("#888888")).
			Render("No profiles")
	}
	return p.list.View()
}
