package tui

import "github.com/charmbracelet/bubbles/key"

// globalKeyMap declares the keys the root model always handles itself after
// window dispatch. Intercepted combos are not listed here: they are claimed
// dynamically through the window's capture listeners.
type globalKeyMap struct {
	NextPanel key.Binding
	PrevPanel key.Binding
	Jump      key.Binding
	Help      key.Binding
	Quit      key.Binding
}

var globalKeys = globalKeyMap{
	NextPanel: key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "next panel")),
	PrevPanel: key.NewBinding(key.WithKeys("shift+tab"), key.WithHelp("shift+tab", "prev panel")),
	Jump:      key.NewBinding(key.WithKeys("1", "2", "3", "4"), key.WithHelp("1-4", "jump to panel")),
	Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
	Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
}

func (g globalKeyMap) bindings() []key.Binding {
	return []key.Binding{g.NextPanel, g.PrevPanel, g.Jump, g.Help, g.Quit}
}

// IsGlobalKey reports whether k names a key the root model handles before
// delegating to the focused panel.
func IsGlobalKey(k string) bool {
	for _, b := range globalKeys.bindings() {
		for _, bound := range b.Keys() {
			if bound == k {
				return true
			}
		}
	}
	return false
}

// panelKeys maps each FocusTarget to the keys that panel handles internally.
var panelKeys = map[FocusTarget][]string{
	FocusBindings: {"j", "k", "enter", "r", "d"},
	FocusProfiles: {"j", "k", "enter", "a", "n"},
	FocusTerminal: {"f", "ctrl+u", "ctrl+d", "j", "k"},
	FocusActivity: {"[", "]", "j", "k"},
}

// PanelKeys returns the list of keys handled by the given focused panel.
func PanelKeys(focus FocusTarget) []string {
	return panelKeys[focus]
}
