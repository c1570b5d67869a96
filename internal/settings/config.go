// Package settings parses keywarden.toml and exposes it through a reactive
// store: components read immutable snapshots and subscribe to changes.
package settings

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"github.com/BurntSushi/toml"

	"github.com/keywarden/keywarden/internal/keybind"
)

// FileName is the configuration file name looked up by Locate.
const FileName = "keywarden.toml"

// DefaultAccentColor is the default TUI accent color (teal).
const DefaultAccentColor = "#2DD4BF"

// hexColorRe matches a 6-digit hex color string like "#2DD4BF".
var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// logLevels lists accepted log.level values.
var logLevels = map[string]bool{"debug": true, "info": true, "warn": true, "error": true}

// Config is the top-level keywarden.toml configuration.
type Config struct {
	Keybindings   map[string]string   `toml:"keybindings"`
	TUI           TUIConfig           `toml:"tui"`
	Log           LogConfig           `toml:"log"`
	Notifications NotificationsConfig `toml:"notifications"`
	Profiles      ProfilesConfig      `toml:"profiles"`
}

// TUIConfig controls the terminal UI appearance.
type TUIConfig struct {
	AccentColor string `toml:"accent_color"`
}

// LogConfig controls the session log and diagnostics output.
type LogConfig struct {
	Level     string `toml:"level"`
	Dir       string `toml:"dir"`       // directory for session logs; relative to the config file
	Retention int    `toml:"retention"` // number of session logs to keep; 0 = unlimited
}

// NotificationsConfig controls webhook/ntfy.sh notifications.
type NotificationsConfig struct {
	URL          string `toml:"url"`
	OnConflict   bool   `toml:"on_conflict"`
	OnSessionEnd bool   `toml:"on_session_end"`
}

// ProfilesConfig controls keymap profile discovery.
type ProfilesConfig struct {
	Dir string `toml:"dir"` // directory holding profile .toml files
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		Keybindings: keybind.DefaultKeymap().Raw(),
		TUI:         TUIConfig{AccentColor: DefaultAccentColor},
		Log:         LogConfig{Level: "info", Dir: ".keywarden", Retention: 20},
		Profiles:    ProfilesConfig{Dir: "profiles"},
	}
}

// Validate checks the configuration for issues that would cause confusing
// runtime failures. It returns all found issues joined together.
func (c *Config) Validate() error {
	var errs []error

	if c.TUI.AccentColor != "" && !hexColorRe.MatchString(c.TUI.AccentColor) {
		errs = append(errs, fmt.Errorf("tui.accent_color %q must be a 6-digit hex color like %q", c.TUI.AccentColor, DefaultAccentColor))
	}
	if c.Log.Level != "" && !logLevels[c.Log.Level] {
		errs = append(errs, fmt.Errorf("log.level %q must be one of debug, info, warn, error", c.Log.Level))
	}
	if c.Log.Retention < 0 {
		errs = append(errs, fmt.Errorf("log.retention must be >= 0 (0 = unlimited)"))
	}
	if _, err := c.Keymap(); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}

// Keymap builds the parsed keymap from the keybindings table. Entries with
// an empty combo string are unbound actions and are skipped: the resulting
// keymap simply has no spec for them.
func (c *Config) Keymap() (keybind.Keymap, error) {
	raw := make(map[string]string, len(c.Keybindings))
	for name, combo := range c.Keybindings {
		if combo == "" {
			if _, err := keybind.ParseAction(name); err != nil {
				return nil, err
			}
			continue
		}
		raw[name] = combo
	}
	return keybind.ParseKeymap(raw)
}

// Load reads and validates the configuration at path. File entries override
// the defaults per action; an action set to "" is explicitly unbound.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("settings: read %q: %w", path, err)
	}

	var file Config
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("settings: parse %q: %w", path, err)
	}

	cfg := Defaults()
	if file.Keybindings != nil {
		for name, combo := range file.Keybindings {
			cfg.Keybindings[name] = combo
		}
	}
	if file.TUI.AccentColor != "" {
		cfg.TUI.AccentColor = file.TUI.AccentColor
	}
	if file.Log.Level != "" {
		cfg.Log.Level = file.Log.Level
	}
	if file.Log.Dir != "" {
		cfg.Log.Dir = file.Log.Dir
	}
	if file.Log.Retention != 0 {
		cfg.Log.Retention = file.Log.Retention
	}
	cfg.Notifications = file.Notifications
	if file.Profiles.Dir != "" {
		cfg.Profiles.Dir = file.Profiles.Dir
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("settings: invalid %q: %w", path, err)
	}
	return &cfg, nil
}

// Clone returns a deep copy of the configuration.
func (c Config) Clone() Config {
	out := c
	out.Keybindings = make(map[string]string, len(c.Keybindings))
	for name, combo := range c.Keybindings {
		out.Keybindings[name] = combo
	}
	return out
}
