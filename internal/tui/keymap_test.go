package tui

import "testing"

func TestIsGlobalKey(t *testing.T) {
	tests := []struct {
		key  string
		want bool
	}{
		{"tab", true},
		{"shift+tab", true},
		{"q", true},
		{"ctrl+c", true},
		{"1", true},
		{"4", true},
		{"?", true},
		{"j", false},
		{"ctrl+w", false},
		{"enter", false},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			if got := IsGlobalKey(tt.key); got != tt.want {
				t.Errorf("IsGlobalKey(%q) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestPanelKeys_AllPanelsCovered(t *testing.T) {
	for _, focus := range []FocusTarget{FocusBindings, FocusProfiles, FocusTerminal, FocusActivity} {
		if len(PanelKeys(focus)) == 0 {
			t.Errorf("PanelKeys(%v) is empty", focus)
		}
	}
}

func TestPanelKeys_NoOverlapWithGlobals(t *testing.T) {
	for _, focus := range []FocusTarget{FocusBindings, FocusProfiles, FocusTerminal, FocusActivity} {
		for _, key := range PanelKeys(focus) {
			if IsGlobalKey(key) {
				t.Errorf("panel key %q for %v is also a global key", key, focus)
			}
		}
	}
}
