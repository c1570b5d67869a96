package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotFound is returned by Locate when no configuration file exists in
// the start directory or any of its parents.
var ErrNotFound = errors.New("settings: keywarden.toml not found")

// Locate walks from dir upward looking for keywarden.toml and returns its
// path. Returns ErrNotFound when the root is reached without a hit.
func Locate(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("settings: resolve %q: %w", dir, err)
	}
	for {
		path := filepath.Join(abs, FileName)
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", ErrNotFound
		}
		abs = parent
	}
}

// InitFile writes a commented default keywarden.toml in dir if none exists.
// Returns the file path; an existing file is left untouched.
func InitFile(dir string) (string, error) {
	path := filepath.Join(dir, FileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	} else if !os.IsNotExist(err) {
		return "", fmt.Errorf("settings: stat %q: %w", path, err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0644); err != nil {
		return "", fmt.Errorf("settings: write %q: %w", path, err)
	}
	return path, nil
}

// configTemplate is the scaffolded keywarden.toml. It spells out every
// default so users can edit in place.
const configTemplate = `# keywarden configuration
#
# Keybindings map workspace actions to key combinations. A combo is a base
# key with optional ctrl/alt/shift/meta modifiers, e.g. "ctrl+shift+t".
# Set an action to "" to leave it unbound.

[keybindings]
close_tab = "ctrl+w"
new_tab = "ctrl+t"
next_tab = "ctrl+pgdown"
prev_tab = "ctrl+pgup"
clear_buffer = "ctrl+l"

[tui]
accent_color = "#2DD4BF"

[log]
level = "info"
dir = ".keywarden"
retention = 20

[notifications]
# url = "https://ntfy.sh/your-topic"
on_conflict = false
on_session_end = false

[profiles]
dir = "profiles"
`
