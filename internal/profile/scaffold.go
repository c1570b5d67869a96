package profile

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// New creates a user profile file at dir/<name>.toml seeded with bindings
// and returns its path. A nil bindings map seeds from the builtin default.
// Returns an error if the file already exists.
func New(dir, name string, bindings map[string]string) (string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("profile: create dir %q: %w", dir, err)
	}

	path := filepath.Join(dir, name+".toml")
	if _, err := os.Stat(path); err == nil {
		return "", fmt.Errorf("profile: %q already exists", path)
	}

	if bindings == nil {
		for _, b := range Builtins() {
			if b.Name == "default" {
				bindings = b.Bindings
				break
			}
		}
	}

	p := Profile{Name: name, Bindings: bindings}
	if _, err := p.Keymap(); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(p); err != nil {
		return "", fmt.Errorf("profile: encode %q: %w", name, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return "", fmt.Errorf("profile: write %q: %w", path, err)
	}
	return path, nil
}
