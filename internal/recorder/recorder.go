// Package recorder captures a raw key press to rebind a workspace action.
// While armed, the recorder's element holds window focus and carries the
// recording marker, so every interceptor stands down and the next key press
// reaches the recorder untouched.
package recorder

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/keywarden/keywarden/internal/keybind"
	"github.com/keywarden/keywarden/internal/settings"
	"github.com/keywarden/keywarden/internal/window"
)

// State tracks the recorder through one capture flow.
type State int

const (
	StateIdle     State = iota // not recording
	StateArmed                 // waiting for the next raw key press
	StateCaptured              // a combo was captured, awaiting commit or cancel
)

// validTransitions defines the allowed State transitions.
var validTransitions = map[State][]State{
	StateIdle:     {StateArmed},
	StateArmed:    {StateCaptured, StateIdle},
	StateCaptured: {StateIdle, StateArmed},
}

// CanTransitionTo reports whether transitioning from s to next is valid.
func (s State) CanTransitionTo(next State) bool {
	for _, valid := range validTransitions[s] {
		if valid == next {
			return true
		}
	}
	return false
}

// String returns the human-readable name of the state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateArmed:
		return "armed"
	case StateCaptured:
		return "captured"
	default:
		return "unknown"
	}
}

// elementID identifies the recorder's focusable element.
const elementID = "keybinding-recorder"

// Recorder drives the capture → confirm → commit flow for rebinding one
// action at a time.
type Recorder struct {
	mu sync.Mutex

	win   *window.Window
	store *settings.Store
	log   zerolog.Logger

	state     State
	action    keybind.Action
	captured  *keybind.Combo
	conflicts []keybind.Action
	handle    *window.Handle
	prevFocus window.Element
}

// New creates an idle Recorder.
func New(win *window.Window, store *settings.Store, log zerolog.Logger) *Recorder {
	return &Recorder{win: win, store: store, log: log, state: StateIdle}
}

// State returns the current state.
func (r *Recorder) State() State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Action returns the action being rebound. Meaningful while not idle.
func (r *Recorder) Action() keybind.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.action
}

// Captured returns the captured combo, or nil before capture.
func (r *Recorder) Captured() *keybind.Combo {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.captured
}

// Conflicts returns the actions already bound to the captured combo.
func (r *Recorder) Conflicts() []keybind.Action {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.conflicts
}

// Arm begins capturing a new combo for action: it focuses the recorder
// element (with the recording marker) and registers a capture listener
// that swallows the next key press.
func (r *Recorder) Arm(action keybind.Action) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.state.CanTransitionTo(StateArmed) {
		return fmt.Errorf("recorder: cannot arm while %s", r.state)
	}
	r.state = StateArmed
	r.action = action
	r.captured = nil
	r.conflicts = nil

	r.prevFocus = r.win.Focused()
	r.win.Focus(window.Element{ID: elementID, Attrs: window.AttrRecording})
	r.handle = r.win.AddCaptureListener(r.onKey)
	r.log.Debug().Str("action", action.String()).Msg("recorder armed")
	return nil
}

// onKey consumes the next raw key press while armed. Escape cancels;
// anything else becomes the captured combo.
func (r *Recorder) onKey(ctx *window.KeyContext) {
	r.mu.Lock()
	if r.state != StateArmed {
		r.mu.Unlock()
		return
	}
	ctx.PreventDefault()
	ctx.StopPropagation()

	if ctx.Event.Key == "esc" && !ctx.Event.Ctrl && !ctx.Event.Alt && !ctx.Event.Meta {
		r.teardownLocked()
		r.state = StateIdle
		r.mu.Unlock()
		return
	}

	combo := ctx.Event.Combo()
	r.captured = &combo
	r.conflicts = r.store.Keymap().ConflictsWith(r.action, combo)
	r.state = StateCaptured
	r.teardownLocked()
	r.log.Debug().Str("action", r.action.String()).Str("combo", combo.String()).
		Int("conflicts", len(r.conflicts)).Msg("combo captured")
	r.mu.Unlock()
}

// Commit persists the captured combo through the settings store, which
// re-notifies every interceptor with the new keymap.
func (r *Recorder) Commit() error {
	r.mu.Lock()
	if r.state != StateCaptured || r.captured == nil {
		r.mu.Unlock()
		return fmt.Errorf("recorder: nothing captured to commit")
	}
	action := r.action
	combo := *r.captured
	r.state = StateIdle
	r.mu.Unlock()

	// Store notification runs subscriber callbacks; keep the lock released.
	if _, err := r.store.SetBinding(action, combo); err != nil {
		return err
	}
	r.log.Info().Str("action", action.String()).Str("combo", combo.String()).Msg("binding committed")
	return nil
}

// Cancel abandons the current flow from any state and restores focus.
func (r *Recorder) Cancel() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state == StateIdle {
		return
	}
	r.teardownLocked()
	r.state = StateIdle
	r.captured = nil
	r.conflicts = nil
}

// teardownLocked removes the capture listener and restores prior focus.
func (r *Recorder) teardownLocked() {
	if r.handle != nil {
		r.handle.Remove()
		r.handle = nil
	}
	r.win.Focus(r.prevFocus)
}
