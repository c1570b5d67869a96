// Package store persists keybinding activity to a JSONL session log and
// provides indexed read-back for the activity panel. One store instance is
// created per keywarden invocation in cmd/keywarden/wiring.go and shared by
// the interceptors, the recorder, and the settings watcher.
package store

import "time"

// Kind classifies an activity log entry.
type Kind string

const (
	KindSessionStart Kind = "session_start"
	KindSessionEnd   Kind = "session_end"
	KindIntercepted  Kind = "intercepted" // a bound combo was captured and suppressed
	KindPassed       Kind = "passed"      // a key press fell through to default handling
	KindRebound      Kind = "rebound"     // an action was bound to a new combo
	KindConflict     Kind = "conflict"    // a rebind collided with existing bindings
	KindReload       Kind = "reload"      // the settings file changed on disk
)

// Entry is one line of the session activity log.
type Entry struct {
	Kind      Kind      `json:"kind"`
	Timestamp time.Time `json:"ts"`
	Action    string    `json:"action,omitempty"`
	Combo     string    `json:"combo,omitempty"`
	Previous  string    `json:"previous,omitempty"` // prior combo on a rebind
	Conflicts []string  `json:"conflicts,omitempty"`
	Detail    string    `json:"detail,omitempty"`
}

// Writer persists activity entries to durable storage.
type Writer interface {
	Append(entry Entry) error
	Close() error
}

// Reader retrieves past activity from storage.
type Reader interface {
	Tail(n int) ([]Entry, error)
	ActionLog(action string) ([]Entry, error)
	SessionSummary() (SessionSummary, error)
}

// Store combines Writer and Reader into a single session-scoped handle.
type Store interface {
	Writer
	Reader
}

// SessionSummary aggregates the current session's activity counts.
type SessionSummary struct {
	SessionID   string
	StartedAt   time.Time
	Intercepted int
	Passed      int
	Rebound     int
	Conflicts   int
	Reloads     int
	LastAction  string
	LastCombo   string
}
