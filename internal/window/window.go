// Package window models the application-global key event target: an ordered
// set of capture-phase and bubble-phase listeners, a focus registry, and a
// synchronous dispatch that honors stop-propagation and prevent-default.
//
// The TUI feeds every incoming key press through Window.DispatchKey before
// applying its own default handling, which gives interceptors a true capture
// phase: they observe the event before any component-local handler does.
package window

import (
	"sync"

	"github.com/keywarden/keywarden/internal/keybind"
)

// Attr is a bitmask of marker attributes carried by a focusable element.
type Attr uint8

const (
	// AttrRecording marks an element that is capturing raw input to record
	// a new keybinding. Interceptors stand down while it holds focus.
	AttrRecording Attr = 1 << iota
)

// Element is a focusable UI element snapshot: an identity plus marker
// attributes. The window only ever reads attributes; element state is owned
// by the component that focused it.
type Element struct {
	ID    string
	Attrs Attr
}

// Has reports whether the element carries the given attribute.
func (e Element) Has(attr Attr) bool {
	return e.Attrs&attr != 0
}

// KeyContext is passed to each listener during dispatch. Listeners suppress
// the event's default behavior with PreventDefault and halt further
// delivery with StopPropagation.
type KeyContext struct {
	Event  keybind.Event
	Target Element

	prevented bool
	stopped   bool
}

// PreventDefault marks the event so the host applies no default behavior.
func (c *KeyContext) PreventDefault() { c.prevented = true }

// StopPropagation halts delivery to any listener after the current one.
func (c *KeyContext) StopPropagation() { c.stopped = true }

// DefaultPrevented reports whether PreventDefault has been called.
func (c *KeyContext) DefaultPrevented() bool { return c.prevented }

// Propagating reports whether the event is still being delivered.
func (c *KeyContext) Propagating() bool { return !c.stopped }

// Listener observes a dispatched key event.
type Listener func(*KeyContext)

// DispatchResult summarises one dispatch for the host: whether default
// behavior should be suppressed and whether propagation was stopped.
type DispatchResult struct {
	DefaultPrevented bool
	Stopped          bool
}

// listenerEntry pairs a listener with its registration id.
type listenerEntry struct {
	id uint64
	fn Listener
}

// Window is the global key event target. Listener registration and removal
// are applied synchronously under the same lock that snapshots the listener
// table for dispatch, so a registration change is always visible to the
// next dispatched event.
type Window struct {
	mu      sync.Mutex
	capture []listenerEntry
	bubble  []listenerEntry
	focused Element
	nextID  uint64
}

// New creates an empty Window with nothing focused.
func New() *Window {
	return &Window{}
}

// Handle is the owned registration of a single listener. Remove is
// idempotent; a removed handle never fires again.
type Handle struct {
	w       *Window
	id      uint64
	capture bool
}

// Remove deregisters the listener. It is safe to call multiple times.
func (h *Handle) Remove() {
	if h == nil || h.w == nil {
		return
	}
	h.w.remove(h.id, h.capture)
	h.w = nil
}

// AddCaptureListener registers a capture-phase listener. Capture listeners
// run in registration order, before any bubble-phase listener.
func (w *Window) AddCaptureListener(fn Listener) *Handle {
	return w.add(fn, true)
}

// AddBubbleListener registers a bubble-phase listener, run after the
// capture phase when propagation has not been stopped.
func (w *Window) AddBubbleListener(fn Listener) *Handle {
	return w.add(fn, false)
}

func (w *Window) add(fn Listener, capture bool) *Handle {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.nextID++
	entry := listenerEntry{id: w.nextID, fn: fn}
	if capture {
		w.capture = append(w.capture, entry)
	} else {
		w.bubble = append(w.bubble, entry)
	}
	return &Handle{w: w, id: w.nextID, capture: capture}
}

func (w *Window) remove(id uint64, capture bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	list := w.bubble
	if capture {
		list = w.capture
	}
	for i, entry := range list {
		if entry.id == id {
			list = append(list[:i], list[i+1:]...)
			break
		}
	}
	if capture {
		w.capture = list
	} else {
		w.bubble = list
	}
}

// CaptureListeners returns the number of registered capture listeners.
func (w *Window) CaptureListeners() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.capture)
}

// Focus records elem as the currently focused element.
func (w *Window) Focus(elem Element) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.focused = elem
}

// Blur clears the focused element.
func (w *Window) Blur() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.focused = Element{}
}

// Focused returns the currently focused element snapshot.
func (w *Window) Focused() Element {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.focused
}

// DispatchKey delivers the event to capture listeners in registration order
// and then, if propagation was not stopped, to bubble listeners. Listeners
// run outside the window lock so they may register or remove listeners;
// such changes affect the next dispatch, not the one in flight.
func (w *Window) DispatchKey(ev keybind.Event) DispatchResult {
	w.mu.Lock()
	capture := make([]listenerEntry, len(w.capture))
	copy(capture, w.capture)
	bubble := make([]listenerEntry, len(w.bubble))
	copy(bubble, w.bubble)
	target := w.focused
	w.mu.Unlock()

	ctx := &KeyContext{Event: ev, Target: target}
	for _, entry := range capture {
		entry.fn(ctx)
		if ctx.stopped {
			return DispatchResult{DefaultPrevented: ctx.prevented, Stopped: true}
		}
	}
	for _, entry := range bubble {
		entry.fn(ctx)
		if ctx.stopped {
			return DispatchResult{DefaultPrevented: ctx.prevented, Stopped: true}
		}
	}
	return DispatchResult{DefaultPrevented: ctx.prevented, Stopped: false}
}
