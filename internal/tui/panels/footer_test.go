package panels

import (
	"strings"
	"testing"
)

func TestRenderFooter_Default(t *testing.T) {
	got := RenderFooter(FooterProps{Focus: "bindings", LastEvent: "ctrl+t → new_tab"}, 160)
	for _, want := range []string{"last: ctrl+t → new_tab", "r:rebind", "q:quit"} {
		if !strings.Contains(got, want) {
			t.Errorf("footer missing %q in %q", want, got)
		}
	}
}

func TestRenderFooter_NoLastEvent(t *testing.T) {
	got := RenderFooter(FooterProps{Focus: "terminal"}, 120)
	if !strings.Contains(got, "last: —") {
		t.Errorf("footer should show placeholder for empty last event, got %q", got)
	}
}

func TestRenderFooter_Recording(t *testing.T) {
	got := RenderFooter(FooterProps{Recording: true, RecordFor: "close_tab"}, 120)
	if !strings.Contains(got, "press a combo for close_tab") {
		t.Errorf("recording footer missing prompt, got %q", got)
	}
	if !strings.Contains(got, "esc:cancel") {
		t.Errorf("recording footer missing cancel hint, got %q", got)
	}
}

func TestRenderFooter_Confirming(t *testing.T) {
	got := RenderFooter(FooterProps{Confirming: true}, 120)
	if !strings.Contains(got, "close tab?") {
		t.Errorf("confirming footer missing question, got %q", got)
	}
}

func TestPanelHints_PerFocus(t *testing.T) {
	tests := []struct {
		focus string
		want  string
	}{
		{"bindings", "r:rebind"},
		{"profiles", "a:apply"},
		{"terminal", "f:follow"},
		{"activity", "[/]:tab"},
		{"other", "tab:next panel"},
	}
	for _, tt := range tests {
		t.Run(tt.focus, func(t *testing.T) {
			if got := panelHints(tt.focus); !strings.Contains(got, tt.want) {
				t.Errorf("panelHints(%q) = %q, missing %q", tt.focus, got, tt.want)
			}
		})
	}
}
