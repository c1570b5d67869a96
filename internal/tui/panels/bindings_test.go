package panels

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/keywarden/keywarden/internal/keybind"
)

func TestNewBindingsPanel_ShowsAllActions(t *testing.T) {
	p := NewBindingsPanel(keybind.DefaultKeymap(), 40, 10)
	view := p.View()
	for _, action := range keybind.Actions() {
		if !strings.Contains(view, action.String()) {
			t.Errorf("View() missing action %q", action)
		}
	}
}

func TestBindingsPanel_SelectedAction(t *testing.T) {
	p := NewBindingsPanel(keybind.DefaultKeymap(), 40, 10)
	sel := p.SelectedAction()
	if sel == nil {
		t.Fatal("SelectedAction() = nil")
	}
	if *sel != keybind.ActionCloseTab {
		t.Errorf("initial selection = %v, want close_tab", *sel)
	}

	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	sel = p.SelectedAction()
	if sel == nil || *sel != keybind.ActionNewTab {
		t.Errorf("selection after j = %v, want new_tab", sel)
	}
}

func TestBindingsPanel_RecordRequest(t *testing.T) {
	p := NewBindingsPanel(keybind.DefaultKeymap(), 40, 10)
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("r")})
	if cmd == nil {
		t.Fatal("r should produce a command")
	}
	msg, ok := cmd().(RecordRequestMsg)
	if !ok {
		t.Fatalf("got %T, want RecordRequestMsg", cmd())
	}
	if msg.Action != keybind.ActionCloseTab {
		t.Errorf("record request for %v, want close_tab", msg.Action)
	}
}

func TestBindingsPanel_ResetRequest(t *testing.T) {
	p := NewBindingsPanel(keybind.DefaultKeymap(), 40, 10)
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})
	_, cmd := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("d")})
	if cmd == nil {
		t.Fatal("d should produce a command")
	}
	msg, ok := cmd().(ResetRequestMsg)
	if !ok {
		t.Fatalf("got %T, want ResetRequestMsg", cmd())
	}
	if msg.Action != keybind.ActionNewTab {
		t.Errorf("reset request for %v, want new_tab", msg.Action)
	}
}

func TestBindingsPanel_SetKeymapPreservesSelection(t *testing.T) {
	p := NewBindingsPanel(keybind.DefaultKeymap(), 40, 10)
	p, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("j")})

	km := keybind.DefaultKeymap()
	km[keybind.ActionNewTab] = keybind.MustParseCombo("ctrl+n")
	p = p.SetKeymap(km)

	sel := p.SelectedAction()
	if sel == nil || *sel != keybind.ActionNewTab {
		t.Errorf("selection after SetKeymap = %v, want new_tab", sel)
	}
	if !strings.Contains(p.View(), "ctrl+n") {
		t.Error("View() missing updated combo")
	}
}

func TestBindingsPanel_ConflictMarker(t *testing.T) {
	km := keybind.DefaultKeymap()
	km[keybind.ActionNewTab] = keybind.MustParseCombo("ctrl+w") // same as close_tab
	p := NewBindingsPanel(km, 40, 10)
	if !strings.Contains(p.View(), "⚠") {
		t.Error("View() missing conflict marker for duplicated combo")
	}
}

func TestBindingsPanel_UnboundAction(t *testing.T) {
	km := keybind.DefaultKeymap()
	delete(km, keybind.ActionClearBuffer)
	p := NewBindingsPanel(km, 40, 10)
	if !strings.Contains(p.View(), "unbound") {
		t.Error("View() should label missing bindings as unbound")
	}
}
