package panels

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
)

func TestAbbreviatePath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"home prefix", filepath.Join(home, "proj"), "~/proj"},
		{"outside home", "/etc/keywarden", "/etc/keywarden"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := AbbreviatePath(tt.input); got != tt.want {
				t.Errorf("AbbreviatePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatElapsed(t *testing.T) {
	tests := []struct {
		input time.Duration
		want  string
	}{
		{5 * time.Second, "5s"},
		{2*time.Minute + 30*time.Second, "2m30s"},
		{time.Hour + 15*time.Minute, "1h15m"},
	}
	for _, tt := range tests {
		if got := FormatElapsed(tt.input); got != tt.want {
			t.Errorf("FormatElapsed(%v) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestRenderHeader_Contents(t *testing.T) {
	props := HeaderProps{
		ConfigPath:  "/etc/keywarden.toml",
		ProfileName: "vim",
		Tabs:        3,
		Intercepted: 7,
		ModeSymbol:  "●",
		ModeLabel:   "RECORDING",
		Elapsed:     90 * time.Second,
		Clock:       time.Date(2026, 8, 27, 14, 30, 0, 0, time.UTC),
	}
	got := RenderHeader(props, 160, lipgloss.NewStyle())
	for _, want := range []string{"keywarden", "/etc/keywarden.toml", "vim", "tabs: 3", "intercepted: 7", "● RECORDING", "1m30s", "14:30"} {
		if !strings.Contains(got, want) {
			t.Errorf("header missing %q in %q", want, got)
		}
	}
}

func TestRenderHeader_OmitsEmptyFields(t *testing.T) {
	got := RenderHeader(HeaderProps{Tabs: 1}, 80, lipgloss.NewStyle())
	if strings.Contains(got, "profile:") {
		t.Error("header shows profile label with no profile set")
	}
	if strings.Contains(got, "elapsed:") {
		t.Error("header shows elapsed with zero duration")
	}
}
