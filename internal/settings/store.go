package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/keywarden/keywarden/internal/keybind"
)

// Snapshot is an immutable view of the configuration at one point in time:
// the raw config plus its parsed keymap.
type Snapshot struct {
	Config Config
	Keymap keybind.Keymap
}

// Subscription represents an active observer subscription.
type Subscription struct {
	id    uint64
	store *Store
}

// Unsubscribe removes this subscription. Safe to call more than once.
func (s *Subscription) Unsubscribe() {
	if s.store != nil {
		s.store.unsubscribe(s.id)
		s.store = nil
	}
}

// Store holds the current configuration snapshot and notifies subscribers
// on every change. Notification is synchronous and runs outside the store
// lock: when Update or Reload returns, every subscriber has already seen
// the new snapshot, so the next dispatched key event observes the new
// configuration.
type Store struct {
	mu     sync.RWMutex
	path   string
	snap   Snapshot
	subs   map[uint64]func(Snapshot)
	nextID uint64
	log    zerolog.Logger
}

// Open loads the configuration at path into a new Store.
func Open(path string, log zerolog.Logger) (*Store, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	km, err := cfg.Keymap()
	if err != nil {
		return nil, err
	}
	return &Store{
		path: path,
		snap: Snapshot{Config: *cfg, Keymap: km},
		subs: make(map[uint64]func(Snapshot)),
		log:  log,
	}, nil
}

// Path returns the configuration file path backing the store.
func (s *Store) Path() string {
	return s.path
}

// Get returns the current snapshot.
func (s *Store) Get() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snap
}

// Keymap returns the current keymap snapshot.
func (s *Store) Keymap() keybind.Keymap {
	return s.Get().Keymap
}

// Subscribe registers fn to be called with each new snapshot.
func (s *Store) Subscribe(fn func(Snapshot)) *Subscription {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	s.subs[s.nextID] = fn
	return &Subscription{id: s.nextID, store: s}
}

// SubscribeKeymap registers fn to be called with each new keymap snapshot.
// The returned cancel function removes the subscription; it satisfies the
// interceptor's Source contract.
func (s *Store) SubscribeKeymap(fn func(keybind.Keymap)) func() {
	sub := s.Subscribe(func(snap Snapshot) { fn(snap.Keymap) })
	return sub.Unsubscribe
}

func (s *Store) unsubscribe(id uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.subs, id)
}

// Update applies mutate to a copy of the current config, validates it,
// persists it, swaps the snapshot, and notifies subscribers. On any error
// the previous snapshot stays in place.
func (s *Store) Update(mutate func(*Config)) error {
	s.mu.Lock()
	cfg := s.snap.Config.Clone()
	mutate(&cfg)

	if err := cfg.Validate(); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("settings: rejected update: %w", err)
	}
	km, err := cfg.Keymap()
	if err != nil {
		s.mu.Unlock()
		return err
	}
	if err := writeConfig(s.path, cfg); err != nil {
		s.mu.Unlock()
		return err
	}

	s.snap = Snapshot{Config: cfg, Keymap: km}
	s.notifyLocked()
	return nil
}

// Reload re-reads the configuration file. An unreadable or invalid file
// leaves the previous snapshot in place and returns the error.
func (s *Store) Reload() error {
	cfg, err := Load(s.path)
	if err != nil {
		return err
	}
	km, err := cfg.Keymap()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.snap = Snapshot{Config: *cfg, Keymap: km}
	s.log.Debug().Str("path", s.path).Msg("settings reloaded")
	s.notifyLocked()
	return nil
}

// SetBinding rebinds action to combo, returning the other actions already
// bound to that combo. Conflicts are reported, not rejected: the caller
// decides whether to warn or notify.
func (s *Store) SetBinding(action keybind.Action, combo keybind.Combo) ([]keybind.Action, error) {
	conflicts := s.Keymap().ConflictsWith(action, combo)
	err := s.Update(func(cfg *Config) {
		cfg.Keybindings[action.String()] = combo.String()
	})
	if err != nil {
		return nil, err
	}
	return conflicts, nil
}

// ResetBinding restores action to its built-in default combo.
func (s *Store) ResetBinding(action keybind.Action) error {
	def := keybind.DefaultKeymap().Lookup(action)
	return s.Update(func(cfg *Config) {
		if def == nil {
			delete(cfg.Keybindings, action.String())
			return
		}
		cfg.Keybindings[action.String()] = def.String()
	})
}

// notifyLocked copies the snapshot and subscribers, releases the lock, then
// notifies. Must be called with s.mu held for write; releases it.
func (s *Store) notifyLocked() {
	snap := s.snap
	subs := make([]func(Snapshot), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

// writeConfig persists cfg to path with a write-then-rename so concurrent
// readers never observe a partially-written file.
func writeConfig(path string, cfg Config) error {
	var buf bytes.Buffer
	buf.WriteString("# keywarden configuration\n\n")
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("settings: encode config: %w", err)
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".keywarden-*.tmp")
	if err != nil {
		return fmt.Errorf("settings: create temp config: %w", err)
	}
	if _, err := tmp.Write(buf.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: write temp config: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: close temp config: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("settings: rename config: %w", err)
	}
	return nil
}
