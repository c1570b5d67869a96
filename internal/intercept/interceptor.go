// Package intercept implements the keybinding interceptor: a capture-phase
// listener whose lifetime tracks an activation flag and whose matching
// behavior tracks the live keybinding configuration.
//
// While active, the interceptor owns exactly one capture listener on the
// window. Any change to a tracked input — activation flag, intercepted
// action, keymap snapshot, or callback — atomically replaces that listener
// with one bound to the current values. There is never a window where two
// listeners coexist, nor where none exists while logically active.
package intercept

import (
	"sync"

	"github.com/rs/zerolog"

	"github.com/keywarden/keywarden/internal/keybind"
	"github.com/keywarden/keywarden/internal/window"
)

// Source provides the live keybinding configuration. The settings store
// implements it; tests supply stubs.
type Source interface {
	// Keymap returns the current keymap snapshot.
	Keymap() keybind.Keymap

	// SubscribeKeymap registers fn to be called with each new keymap
	// snapshot. The returned cancel function removes the subscription and
	// is safe to call more than once.
	SubscribeKeymap(fn func(keybind.Keymap)) (cancel func())
}

// Option configures an Interceptor.
type Option func(*Interceptor)

// WithLogger attaches a logger. The default discards everything.
func WithLogger(log zerolog.Logger) Option {
	return func(it *Interceptor) { it.log = log }
}

// WithHook registers fn to be called with each intercepted event, after
// suppression and before the match callback. Used to feed the session log.
func WithHook(fn func(keybind.Event)) Option {
	return func(it *Interceptor) { it.hook = fn }
}

// Interceptor binds an activation flag, an action identity, a live keymap,
// and a callback to a single owned capture listener on the window.
type Interceptor struct {
	mu sync.Mutex

	win *window.Window
	src Source

	action  keybind.Action
	onMatch func()
	keymap  keybind.Keymap

	state       State
	handle      *window.Handle
	unsubscribe func()
	hook        func(keybind.Event)
	log         zerolog.Logger
	closed      bool
}

// New creates an interceptor for the given action. It starts inactive and
// immediately subscribes to keymap changes from src. onMatch is invoked
// synchronously, during dispatch, whenever an active interceptor suppresses
// a matching event.
func New(win *window.Window, src Source, action keybind.Action, onMatch func(), opts ...Option) *Interceptor {
	it := &Interceptor{
		win:     win,
		src:     src,
		action:  action,
		onMatch: onMatch,
		keymap:  src.Keymap(),
		state:   StateInactive,
		log:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(it)
	}
	it.unsubscribe = src.SubscribeKeymap(it.onKeymapChange)
	return it
}

// SetActive toggles the interceptor. Repeated calls with the same value are
// no-ops; the false→true transition registers the capture listener and
// true→false removes it, both synchronously.
func (it *Interceptor) SetActive(active bool) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.closed {
		return
	}
	if active == (it.state == StateActive) {
		return
	}
	if active {
		if !it.state.CanTransitionTo(StateActive) {
			return
		}
		it.state = StateActive
		it.rebindLocked()
		it.log.Debug().Str("action", it.action.String()).Msg("interceptor activated")
		return
	}
	if !it.state.CanTransitionTo(StateInactive) {
		return
	}
	it.state = StateInactive
	it.releaseLocked()
	it.log.Debug().Str("action", it.action.String()).Msg("interceptor deactivated")
}

// SetAction switches the intercepted action, replacing the listener if one
// is registered.
func (it *Interceptor) SetAction(action keybind.Action) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.closed || action == it.action {
		return
	}
	it.action = action
	it.rebindIfActiveLocked()
}

// SetCallback swaps the match callback, replacing the listener if one is
// registered. Callers should hold a stable callback to avoid churn.
func (it *Interceptor) SetCallback(onMatch func()) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.closed {
		return
	}
	it.onMatch = onMatch
	it.rebindIfActiveLocked()
}

// State returns the current lifecycle state.
func (it *Interceptor) State() State {
	it.mu.Lock()
	defer it.mu.Unlock()
	return it.state
}

// Active reports whether a capture listener is currently registered.
func (it *Interceptor) Active() bool {
	return it.State() == StateActive
}

// Close deterministically removes the listener and the keymap subscription.
// It is safe to call multiple times; a closed interceptor ignores all
// further input changes.
func (it *Interceptor) Close() {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.closed {
		return
	}
	it.closed = true
	it.state = StateInactive
	it.releaseLocked()
	if it.unsubscribe != nil {
		it.unsubscribe()
	}
}

// onKeymapChange receives each new keymap snapshot from the source.
func (it *Interceptor) onKeymapChange(km keybind.Keymap) {
	it.mu.Lock()
	defer it.mu.Unlock()
	if it.closed {
		return
	}
	it.keymap = km
	it.rebindIfActiveLocked()
}

func (it *Interceptor) rebindIfActiveLocked() {
	if it.state != StateActive {
		return
	}
	if !it.state.CanTransitionTo(StateActive) {
		return
	}
	it.rebindLocked()
}

// rebindLocked removes the previous listener and registers a fresh one
// bound to a snapshot of the current inputs. Because the closure captures
// values, a replaced listener can never observe newer configuration — and
// because it is removed first, it can never fire again either.
func (it *Interceptor) rebindLocked() {
	it.releaseLocked()

	action := it.action
	km := it.keymap
	onMatch := it.onMatch
	hook := it.hook
	log := it.log

	it.handle = it.win.AddCaptureListener(func(ctx *window.KeyContext) {
		// A keybinding recorder capturing raw input always wins.
		if ctx.Target.Has(window.AttrRecording) {
			return
		}
		spec := km.Lookup(action)
		if !keybind.Matches(ctx.Event, spec) {
			return
		}
		ctx.PreventDefault()
		ctx.StopPropagation()
		log.Debug().Str("action", action.String()).Str("key", ctx.Event.String()).Msg("intercepted")
		if hook != nil {
			hook(ctx.Event)
		}
		if onMatch != nil {
			onMatch()
		}
	})
}

func (it *Interceptor) releaseLocked() {
	if it.handle != nil {
		it.handle.Remove()
		it.handle = nil
	}
}
