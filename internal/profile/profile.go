// Package profile provides keymap preset discovery, loading, and scaffolding.
// Builtin presets ship embedded in the binary; user presets live as TOML
// files in the profiles directory next to the configuration file.
package profile

import (
	"embed"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/keywarden/keywarden/internal/keybind"
	"github.com/keywarden/keywarden/internal/settings"
)

//go:embed templates/*.toml
var builtinFS embed.FS

// Profile is a named set of keybindings that can replace the active keymap
// in one step.
type Profile struct {
	Name        string            `toml:"name"`
	Description string            `toml:"description"`
	Bindings    map[string]string `toml:"keybindings"`

	// Path is the file the profile came from; empty for builtins.
	Path    string `toml:"-"`
	Builtin bool   `toml:"-"`
}

// Keymap parses the profile's bindings. Empty combo strings mean the action
// is deliberately unbound in this profile.
func (p Profile) Keymap() (keybind.Keymap, error) {
	km := make(keybind.Keymap, len(p.Bindings))
	for name, raw := range p.Bindings {
		action, err := keybind.ParseAction(name)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.Name, err)
		}
		if raw == "" {
			continue
		}
		combo, err := keybind.ParseCombo(raw)
		if err != nil {
			return nil, fmt.Errorf("profile %q: %w", p.Name, err)
		}
		km[action] = combo
	}
	return km, nil
}

// Builtins returns the embedded presets, sorted by name.
func Builtins() []Profile {
	entries, err := fs.ReadDir(builtinFS, "templates")
	if err != nil {
		panic(fmt.Sprintf("profile: embedded templates unreadable: %v", err))
	}
	profiles := make([]Profile, 0, len(entries))
	for _, e := range entries {
		data, err := builtinFS.ReadFile("templates/" + e.Name())
		if err != nil {
			panic(fmt.Sprintf("profile: read embedded %s: %v", e.Name(), err))
		}
		var p Profile
		if err := toml.Unmarshal(data, &p); err != nil {
			panic(fmt.Sprintf("profile: embedded %s is malformed: %v", e.Name(), err))
		}
		p.Builtin = true
		profiles = append(profiles, p)
	}
	sort.Slice(profiles, func(i, j int) bool { return profiles[i].Name < profiles[j].Name })
	return profiles
}

// List returns the builtin presets followed by the user profiles found in
// dir, each group sorted by name. A user profile with a builtin's name
// shadows the builtin. A missing dir yields just the builtins.
func List(dir string) ([]Profile, error) {
	profiles := Builtins()
	byName := make(map[string]int, len(profiles))
	for i, p := range profiles {
		byName[p.Name] = i
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return profiles, nil
	}
	if err != nil {
		return nil, fmt.Errorf("profile: read dir %q: %w", dir, err)
	}

	var users []Profile
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".toml") {
			continue
		}
		p, err := loadFile(filepath.Join(dir, e.Name()))
		if err != nil {
			return nil, err
		}
		if i, ok := byName[p.Name]; ok {
			profiles[i] = p
			continue
		}
		users = append(users, p)
	}
	sort.Slice(users, func(i, j int) bool { return users[i].Name < users[j].Name })
	return append(profiles, users...), nil
}

// Load resolves name to a profile: a user file in dir wins over a builtin
// of the same name.
func Load(dir, name string) (Profile, error) {
	path := filepath.Join(dir, name+".toml")
	if _, err := os.Stat(path); err == nil {
		return loadFile(path)
	}
	for _, p := range Builtins() {
		if p.Name == name {
			return p, nil
		}
	}
	return Profile{}, fmt.Errorf("profile: %q not found in %s or builtins", name, dir)
}

// Apply replaces the store's keybindings with the profile's, persisting and
// notifying subscribers through the usual update path.
func Apply(st *settings.Store, p Profile) error {
	if _, err := p.Keymap(); err != nil {
		return err
	}
	return st.Update(func(cfg *settings.Config) {
		bindings := make(map[string]string, len(p.Bindings))
		for k, v := range p.Bindings {
			bindings[k] = v
		}
		cfg.Keybindings = bindings
	})
}

// loadFile reads and validates one profile file. The file name (minus
// extension) overrides an empty or mismatched name field.
func loadFile(path string) (Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Profile{}, fmt.Errorf("profile: read %q: %w", path, err)
	}
	var p Profile
	if err := toml.Unmarshal(data, &p); err != nil {
		return Profile{}, fmt.Errorf("profile: parse %q: %w", path, err)
	}
	p.Name = strings.TrimSuffix(filepath.Base(path), ".toml")
	p.Path = path
	if _, err := p.Keymap(); err != nil {
		return Profile{}, err
	}
	return p, nil
}
