package tui

import (
	"testing"

	"github.com/keywarden/keywarden/internal/keybind"
)

func TestMailbox_PushDrain(t *testing.T) {
	mb := NewMailbox()
	mb.Push(keybind.ActionClearBuffer)
	mb.Push(keybind.ActionCloseTab)

	got := mb.Drain()
	if len(got) != 2 {
		t.Fatalf("Drain() returned %d actions, want 2", len(got))
	}
	if got[0] != keybind.ActionClearBuffer || got[1] != keybind.ActionCloseTab {
		t.Errorf("Drain() = %v, want arrival order [clear_buffer close_tab]", got)
	}
}

func TestMailbox_DrainEmpties(t *testing.T) {
	mb := NewMailbox()
	mb.Push(keybind.ActionNewTab)
	mb.Drain()
	if got := mb.Drain(); len(got) != 0 {
		t.Errorf("second Drain() returned %d actions, want 0", len(got))
	}
}

func TestMailbox_DrainEmpty(t *testing.T) {
	mb := NewMailbox()
	if got := mb.Drain(); got != nil {
		t.Errorf("Drain() on empty mailbox = %v, want nil", got)
	}
}
