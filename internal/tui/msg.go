package tui

import (
	"time"

	"github.com/keywarden/keywarden/internal/profile"
	"github.com/keywarden/keywarden/internal/settings"
)

// snapshotMsg carries a new settings snapshot (from the file watcher or an
// in-app rebind) into the update loop.
type snapshotMsg settings.Snapshot

// updatesClosedMsg signals the snapshot channel closed.
type updatesClosedMsg struct{}

// tickMsg is sent every second for the clock.
type tickMsg time.Time

// profilesRefreshedMsg carries the refreshed profile list after a save.
type profilesRefreshedMsg struct{ Profiles []profile.Profile }
