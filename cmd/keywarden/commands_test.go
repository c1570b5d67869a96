package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/keywarden/keywarden/internal/keybind"
	"github.com/keywarden/keywarden/internal/profile"
	"github.com/keywarden/keywarden/internal/store"
)

func TestFormatKeysList(t *testing.T) {
	tests := []struct {
		name     string
		km       keybind.Keymap
		contains []string
		excludes []string
	}{
		{
			name:     "defaults",
			km:       keybind.DefaultKeymap(),
			contains: []string{"Keybindings", "close_tab", "ctrl+w", "clear_buffer", "ctrl+l"},
			excludes: []string{"⚠", "unbound"},
		},
		{
			name: "conflicting combos get a marker",
			km: keybind.Keymap{
				keybind.ActionCloseTab: keybind.MustParseCombo("ctrl+w"),
				keybind.ActionNewTab:   keybind.MustParseCombo("ctrl+w"),
			},
			contains: []string{"⚠"},
		},
		{
			name:     "missing bindings shown as unbound",
			km:       keybind.Keymap{},
			contains: []string{"unbound"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := formatKeysList(tt.km)
			for _, want := range tt.contains {
				if !strings.Contains(got, want) {
					t.Errorf("output should contain %q\ngot:\n%s", want, got)
				}
			}
			for _, exclude := range tt.excludes {
				if strings.Contains(got, exclude) {
					t.Errorf("output should NOT contain %q\ngot:\n%s", exclude, got)
				}
			}
		})
	}
}

func TestFormatKeysJSON(t *testing.T) {
	got, err := formatKeysJSON(keybind.DefaultKeymap())
	if err != nil {
		t.Fatalf("formatKeysJSON: %v", err)
	}
	var bindings map[string]string
	if err := json.Unmarshal([]byte(got), &bindings); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if bindings["close_tab"] != "ctrl+w" {
		t.Errorf("close_tab = %q, want ctrl+w", bindings["close_tab"])
	}
	if len(bindings) != len(keybind.Actions()) {
		t.Errorf("got %d actions, want %d", len(bindings), len(keybind.Actions()))
	}
}

func TestFormatProfilesList(t *testing.T) {
	got := formatProfilesList(profile.Builtins())
	for _, want := range []string{"Profiles", "default", "builtin", "vim", "emacs"} {
		if !strings.Contains(got, want) {
			t.Errorf("output should contain %q\ngot:\n%s", want, got)
		}
	}

	if got := formatProfilesList(nil); !strings.Contains(got, "No profiles found") {
		t.Errorf("empty list output = %q", got)
	}
}

func TestFormatStatus(t *testing.T) {
	s := store.SessionSummary{
		SessionID:   "1756280000-42",
		StartedAt:   time.Date(2026, 8, 27, 9, 0, 0, 0, time.UTC),
		Intercepted: 4,
		Passed:      9,
		Rebound:     1,
		LastAction:  "clear_buffer",
		LastCombo:   "ctrl+l",
	}
	got := formatStatus(s)
	for _, want := range []string{
		"Last Session", "1756280000-42", "2026-08-27 09:00:00",
		"intercepted:", "4", "passed:", "9", "ctrl+l (clear_buffer)",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("output should contain %q\ngot:\n%s", want, got)
		}
	}
}

func TestFormatStatus_OmitsEmptyLast(t *testing.T) {
	got := formatStatus(store.SessionSummary{SessionID: "x"})
	if strings.Contains(got, "last:") {
		t.Error("status should omit the last line with no events")
	}
}

// chdir switches the working directory for the duration of a test.
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatalf("Getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestInitCommand_CreatesConfig(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cmd := rootCmd()
	cmd.SetArgs([]string{"init"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "keywarden.toml")); err != nil {
		t.Errorf("keywarden.toml not created: %v", err)
	}
}

func TestKeysSetCommand_Rebinds(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	for _, args := range [][]string{
		{"init"},
		{"keys", "set", "close_tab", "ctrl+x"},
	} {
		cmd := rootCmd()
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	st, _, err := openSettings()
	if err != nil {
		t.Fatalf("openSettings: %v", err)
	}
	if got := st.Keymap().Lookup(keybind.ActionCloseTab); got == nil || got.String() != "ctrl+x" {
		t.Errorf("close_tab = %v, want ctrl+x", got)
	}
}

func TestKeysSetCommand_RejectsUnknownAction(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	cmd := rootCmd()
	cmd.SetArgs([]string{"keys", "set", "explode", "ctrl+x"})
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true
	if err := cmd.Execute(); err == nil {
		t.Error("unknown action should error")
	}
}

func TestKeysResetCommand_All(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	for _, args := range [][]string{
		{"init"},
		{"keys", "set", "close_tab", "ctrl+x"},
		{"keys", "reset", "--all"},
	} {
		cmd := rootCmd()
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	st, _, err := openSettings()
	if err != nil {
		t.Fatalf("openSettings: %v", err)
	}
	if got := st.Keymap().Lookup(keybind.ActionCloseTab); got == nil || got.String() != "ctrl+w" {
		t.Errorf("close_tab after reset = %v, want ctrl+w", got)
	}
}

func TestProfilesApplyCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)

	for _, args := range [][]string{
		{"init"},
		{"profiles", "apply", "vim"},
	} {
		cmd := rootCmd()
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	st, _, err := openSettings()
	if err != nil {
		t.Fatalf("openSettings: %v", err)
	}
	if got := st.Keymap().Lookup(keybind.ActionCloseTab); got == nil || got.String() != "ctrl+q" {
		t.Errorf("close_tab after vim profile = %v, want ctrl+q", got)
	}
}

func TestProfilesNewCommand(t *testing.T) {
	dir := t.TempDir()
	chdir(t, dir)
	t.Setenv("EDITOR", "")

	for _, args := range [][]string{
		{"init"},
		{"profiles", "new", "mine"},
	} {
		cmd := rootCmd()
		cmd.SetArgs(args)
		if err := cmd.Execute(); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "profiles", "mine.toml")); err != nil {
		t.Errorf("profile file not created: %v", err)
	}
}

func TestOpenSettings_NoConfig(t *testing.T) {
	chdir(t, t.TempDir())
	if _, _, err := openSettings(); err == nil {
		t.Error("openSettings should fail without keywarden.toml")
	}
}
