package components

import (
	"strings"
	"testing"
)

func TestTabBar_NextPrevWraps(t *testing.T) {
	tb := NewTabBar([]string{"a", "b", "c"})
	if tb.Active() != 0 {
		t.Fatalf("initial active = %d, want 0", tb.Active())
	}
	tb = tb.Next().Next()
	if tb.Active() != 2 {
		t.Errorf("after two Next: active = %d, want 2", tb.Active())
	}
	tb = tb.Next()
	if tb.Active() != 0 {
		t.Errorf("Next should wrap to 0, got %d", tb.Active())
	}
	tb = tb.Prev()
	if tb.Active() != 2 {
		t.Errorf("Prev should wrap to 2, got %d", tb.Active())
	}
}

func TestTabBar_Append(t *testing.T) {
	tb := NewTabBar([]string{"term 1"})
	tb = tb.Append("term 2")
	if tb.Count() != 2 {
		t.Fatalf("Count = %d, want 2", tb.Count())
	}
	if tb.Active() != 1 {
		t.Errorf("appended tab should become active, active = %d", tb.Active())
	}
	if tb.Label(1) != "term 2" {
		t.Errorf("Label(1) = %q, want %q", tb.Label(1), "term 2")
	}
}

func TestTabBar_Remove(t *testing.T) {
	tests := []struct {
		name       string
		active     int
		remove     int
		wantActive int
		wantCount  int
	}{
		{"remove before active", 2, 0, 1, 2},
		{"remove active", 1, 1, 0, 2},
		{"remove after active", 0, 2, 0, 2},
		{"remove last tab standing", 0, 0, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tabs := []string{"a", "b", "c"}
			if tt.name == "remove last tab standing" {
				tabs = []string{"a"}
			}
			tb := NewTabBar(tabs).SetActive(tt.active)
			tb = tb.Remove(tt.remove)
			if tb.Count() != tt.wantCount {
				t.Errorf("Count = %d, want %d", tb.Count(), tt.wantCount)
			}
			if tt.wantCount > 0 && tb.Active() != tt.wantActive {
				t.Errorf("Active = %d, want %d", tb.Active(), tt.wantActive)
			}
		})
	}
}

func TestTabBar_RemoveOutOfRange(t *testing.T) {
	tb := NewTabBar([]string{"a"})
	if got := tb.Remove(5).Count(); got != 1 {
		t.Errorf("out-of-range Remove changed tab count to %d", got)
	}
}

func TestTabBar_SetActiveIgnoresOutOfRange(t *testing.T) {
	tb := NewTabBar([]string{"a", "b"}).SetActive(7)
	if tb.Active() != 0 {
		t.Errorf("SetActive(7) changed active to %d", tb.Active())
	}
}

func TestTabBar_View(t *testing.T) {
	tb := NewTabBar([]string{"Activity", "Conflicts"})
	view := tb.View()
	for _, label := range []string{"Activity", "Conflicts"} {
		if !strings.Contains(view, label) {
			t.Errorf("View() missing label %q", label)
		}
	}
	if !strings.Contains(view, "│") {
		t.Error("View() missing tab separator")
	}
}

func TestTabBar_ViewEmpty(t *testing.T) {
	if got := NewTabBar(nil).View(); got != "" {
		t.Errorf("empty tab bar View() = %q, want empty", got)
	}
}
