package intercept

import (
	"testing"

	"github.com/keywarden/keywarden/internal/keybind"
	"github.com/keywarden/keywarden/internal/window"
)

// stubSource is a minimal Source whose keymap can be swapped mid-test.
type stubSource struct {
	km   keybind.Keymap
	subs []func(keybind.Keymap)
}

func newStubSource(km keybind.Keymap) *stubSource {
	return &stubSource{km: km}
}

func (s *stubSource) Keymap() keybind.Keymap { return s.km }

func (s *stubSource) SubscribeKeymap(fn func(keybind.Keymap)) func() {
	s.subs = append(s.subs, fn)
	idx := len(s.subs) - 1
	return func() { s.subs[idx] = nil }
}

func (s *stubSource) swap(km keybind.Keymap) {
	s.km = km
	for _, fn := range s.subs {
		if fn != nil {
			fn(km)
		}
	}
}

func closeTabKeymap(combo string) keybind.Keymap {
	return keybind.Keymap{keybind.ActionCloseTab: keybind.MustParseCombo(combo)}
}

func TestInterceptor_MatchSuppressesAndFires(t *testing.T) {
	w := window.New()
	src := newStubSource(closeTabKeymap("ctrl+w"))
	var matched int
	it := New(w, src, keybind.ActionCloseTab, func() { matched++ })
	defer it.Close()
	it.SetActive(true)

	res := w.DispatchKey(keybind.EventFromString("ctrl+w"))
	if matched != 1 {
		t.Errorf("onMatch fired %d times, want 1", matched)
	}
	if !res.DefaultPrevented || !res.Stopped {
		t.Errorf("matching event result = %+v, want suppressed and stopped", res)
	}

	res = w.DispatchKey(keybind.EventFromString("ctrl+q"))
	if matched != 1 {
		t.Errorf("non-matching event invoked onMatch (count %d)", matched)
	}
	if res.DefaultPrevented || res.Stopped {
		t.Errorf("non-matching event result = %+v, want untouched", res)
	}
}

func TestInterceptor_NoDoubleListener(t *testing.T) {
	w := window.New()
	src := newStubSource(closeTabKeymap("ctrl+w"))
	var matched int
	it := New(w, src, keybind.ActionCloseTab, func() { matched++ })
	defer it.Close()

	// Arbitrary toggle sequence: never more than one listener, and
	// repeated identical inputs are idempotent.
	toggles := []bool{true, true, false, false, true, false, true, true}
	for _, active := range toggles {
		it.SetActive(active)
		want := 0
		if active {
			want = 1
		}
		if n := w.CaptureListeners(); n != want {
			t.Fatalf("after SetActive(%v): %d listeners, want %d", active, n, want)
		}
	}

	it.SetActive(true)
	w.DispatchKey(keybind.EventFromString("ctrl+w"))
	if matched != 1 {
		t.Errorf("onMatch fired %d times for one event, want 1", matched)
	}
}

func TestInterceptor_InactiveIgnoresEvents(t *testing.T) {
	w := window.New()
	src := newStubSource(closeTabKeymap("ctrl+w"))
	var matched int
	it := New(w, src, keybind.ActionCloseTab, func() { matched++ })
	defer it.Close()

	res := w.DispatchKey(keybind.EventFromString("ctrl+w"))
	if matched != 0 {
		t.Errorf("inactive interceptor invoked onMatch %d times", matched)
	}
	if res.DefaultPrevented || res.Stopped {
		t.Errorf("inactive interceptor altered dispatch: %+v", res)
	}
}

func TestInterceptor_RecorderPrecedence(t *testing.T) {
	w := window.New()
	src := newStubSource(closeTabKeymap("ctrl+w"))
	var matched int
	it := New(w, src, keybind.ActionCloseTab, func() { matched++ })
	defer it.Close()
	it.SetActive(true)

	w.Focus(window.Element{ID: "recorder", Attrs: window.AttrRecording})
	res := w.DispatchKey(keybind.EventFromString("ctrl+w"))
	if matched != 0 {
		t.Error("onMatch fired while recorder held focus")
	}
	if res.DefaultPrevented || res.Stopped {
		t.Errorf("event suppressed while recorder held focus: %+v", res)
	}

	// Focus moving away restores interception.
	w.Focus(window.Element{ID: "main"})
	w.DispatchKey(keybind.EventFromString("ctrl+w"))
	if matched != 1 {
		t.Errorf("onMatch fired %d times after recorder blur, want 1", matched)
	}
}

func TestInterceptor_Reconfiguration(t *testing.T) {
	w := window.New()
	src := newStubSource(closeTabKeymap("ctrl+w"))
	var matched int
	it := New(w, src, keybind.ActionCloseTab, func() { matched++ })
	defer it.Close()
	it.SetActive(true)

	src.swap(closeTabKeymap("ctrl+x"))

	if n := w.CaptureListeners(); n != 1 {
		t.Fatalf("after remap: %d listeners, want 1", n)
	}

	res := w.DispatchKey(keybind.EventFromString("ctrl+w"))
	if matched != 0 || res.DefaultPrevented {
		t.Error("old combo still intercepted after remap")
	}
	res = w.DispatchKey(keybind.EventFromString("ctrl+x"))
	if matched != 1 || !res.DefaultPrevented {
		t.Error("new combo not intercepted after remap")
	}
}

func TestInterceptor_MissingBinding(t *testing.T) {
	w := window.New()
	src := newStubSource(keybind.Keymap{}) // nothing bound
	var matched int
	it := New(w, src, keybind.ActionCloseTab, func() { matched++ })
	defer it.Close()
	it.SetActive(true)

	res := w.DispatchKey(keybind.EventFromString("ctrl+w"))
	if matched != 0 || res.DefaultPrevented || res.Stopped {
		t.Errorf("unbound action intercepted: matched=%d res=%+v", matched, res)
	}
}

func TestInterceptor_Teardown(t *testing.T) {
	t.Run("deactivate", func(t *testing.T) {
		w := window.New()
		src := newStubSource(closeTabKeymap("ctrl+w"))
		var matched int
		it := New(w, src, keybind.ActionCloseTab, func() { matched++ })
		defer it.Close()

		it.SetActive(true)
		it.SetActive(false)
		res := w.DispatchKey(keybind.EventFromString("ctrl+w"))
		if matched != 0 || res.DefaultPrevented {
			t.Error("deactivated interceptor still firing")
		}
	})

	t.Run("close while active", func(t *testing.T) {
		w := window.New()
		src := newStubSource(closeTabKeymap("ctrl+w"))
		var matched int
		it := New(w, src, keybind.ActionCloseTab, func() { matched++ })

		it.SetActive(true)
		it.Close()
		if n := w.CaptureListeners(); n != 0 {
			t.Errorf("%d listeners after Close, want 0", n)
		}
		w.DispatchKey(keybind.EventFromString("ctrl+w"))
		if matched != 0 {
			t.Error("closed interceptor invoked onMatch")
		}

		// Closed interceptors ignore further input changes.
		it.Close()
		it.SetActive(true)
		if n := w.CaptureListeners(); n != 0 {
			t.Errorf("SetActive after Close registered a listener")
		}
	})
}

func TestInterceptor_SetAction(t *testing.T) {
	w := window.New()
	km := keybind.Keymap{
		keybind.ActionCloseTab:    keybind.MustParseCombo("ctrl+w"),
		keybind.ActionClearBuffer: keybind.MustParseCombo("ctrl+l"),
	}
	src := newStubSource(km)
	var matched int
	it := New(w, src, keybind.ActionCloseTab, func() { matched++ })
	defer it.Close()
	it.SetActive(true)

	it.SetAction(keybind.ActionClearBuffer)
	if n := w.CaptureListeners(); n != 1 {
		t.Fatalf("after SetAction: %d listeners, want 1", n)
	}

	w.DispatchKey(keybind.EventFromString("ctrl+w"))
	if matched != 0 {
		t.Error("old action's combo still intercepted after SetAction")
	}
	w.DispatchKey(keybind.EventFromString("ctrl+l"))
	if matched != 1 {
		t.Error("new action's combo not intercepted after SetAction")
	}
}

func TestInterceptor_ClearBufferScenario(t *testing.T) {
	// isActive=true, keybinding=clear_buffer, keymap={clear_buffer: ctrl+l}.
	w := window.New()
	src := newStubSource(keybind.Keymap{
		keybind.ActionClearBuffer: keybind.MustParseCombo("ctrl+l"),
	})
	var matched int
	it := New(w, src, keybind.ActionClearBuffer, func() { matched++ })
	defer it.Close()
	it.SetActive(true)

	res := w.DispatchKey(keybind.Event{Key: "l", Ctrl: true})
	if matched != 1 {
		t.Errorf("onMatch fired %d times, want 1", matched)
	}
	if !res.DefaultPrevented || !res.Stopped {
		t.Errorf("ctrl+l result = %+v, want suppressed and stopped", res)
	}

	res = w.DispatchKey(keybind.Event{Key: "l"})
	if matched != 1 {
		t.Error("bare l invoked onMatch")
	}
	if res.DefaultPrevented || res.Stopped {
		t.Errorf("bare l result = %+v, want untouched", res)
	}
}

func TestInterceptor_Hook(t *testing.T) {
	w := window.New()
	src := newStubSource(closeTabKeymap("ctrl+w"))
	var hooked []string
	it := New(w, src, keybind.ActionCloseTab, func() {},
		WithHook(func(ev keybind.Event) { hooked = append(hooked, ev.String()) }))
	defer it.Close()
	it.SetActive(true)

	w.DispatchKey(keybind.EventFromString("ctrl+w"))
	w.DispatchKey(keybind.EventFromString("ctrl+q"))

	if len(hooked) != 1 || hooked[0] != "ctrl+w" {
		t.Errorf("hook observed %v, want [ctrl+w]", hooked)
	}
}

func TestState_Transitions(t *testing.T) {
	tests := []struct {
		name string
		from State
		to   State
		want bool
	}{
		{"inactive to active", StateInactive, StateActive, true},
		{"active to inactive", StateActive, StateInactive, true},
		{"active rebind (self)", StateActive, StateActive, true},
		{"inactive self-loop invalid", StateInactive, StateInactive, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.from.CanTransitionTo(tt.to); got != tt.want {
				t.Errorf("CanTransitionTo(%v→%v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}

func TestState_String(t *testing.T) {
	if StateInactive.String() != "inactive" || StateActive.String() != "active" {
		t.Error("unexpected state names")
	}
	if State(99).String() != "unknown" {
		t.Error("out-of-range state should be unknown")
	}
}
