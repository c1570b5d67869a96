package window

import (
	"testing"

	"github.com/keywarden/keywarden/internal/keybind"
)

func TestDispatchKey_CaptureBeforeBubble(t *testing.T) {
	w := New()
	var order []string
	w.AddBubbleListener(func(*KeyContext) { order = append(order, "bubble") })
	w.AddCaptureListener(func(*KeyContext) { order = append(order, "capture1") })
	w.AddCaptureListener(func(*KeyContext) { order = append(order, "capture2") })

	w.DispatchKey(keybind.EventFromString("ctrl+w"))

	want := []string{"capture1", "capture2", "bubble"}
	if len(order) != len(want) {
		t.Fatalf("got order %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("got order %v, want %v", order, want)
		}
	}
}

func TestDispatchKey_StopPropagation(t *testing.T) {
	w := New()
	var later, bubbled bool
	w.AddCaptureListener(func(ctx *KeyContext) {
		ctx.StopPropagation()
	})
	w.AddCaptureListener(func(*KeyContext) { later = true })
	w.AddBubbleListener(func(*KeyContext) { bubbled = true })

	res := w.DispatchKey(keybind.EventFromString("ctrl+w"))

	if !res.Stopped {
		t.Error("result should report Stopped")
	}
	if later {
		t.Error("later capture listener ran after StopPropagation")
	}
	if bubbled {
		t.Error("bubble listener ran after StopPropagation")
	}
}

func TestDispatchKey_PreventDefault(t *testing.T) {
	w := New()
	w.AddCaptureListener(func(ctx *KeyContext) { ctx.PreventDefault() })

	res := w.DispatchKey(keybind.EventFromString("ctrl+l"))
	if !res.DefaultPrevented {
		t.Error("result should report DefaultPrevented")
	}
	if res.Stopped {
		t.Error("PreventDefault alone should not stop propagation")
	}
}

func TestDispatchKey_NoListeners(t *testing.T) {
	w := New()
	res := w.DispatchKey(keybind.EventFromString("q"))
	if res.DefaultPrevented || res.Stopped {
		t.Errorf("empty window dispatch = %+v, want zero result", res)
	}
}

func TestHandle_Remove(t *testing.T) {
	w := New()
	var fired int
	h := w.AddCaptureListener(func(*KeyContext) { fired++ })

	w.DispatchKey(keybind.EventFromString("a"))
	h.Remove()
	w.DispatchKey(keybind.EventFromString("a"))

	if fired != 1 {
		t.Errorf("listener fired %d times, want 1", fired)
	}
	if n := w.CaptureListeners(); n != 0 {
		t.Errorf("CaptureListeners() = %d, want 0", n)
	}

	// Remove is idempotent.
	h.Remove()
	h.Remove()
	if n := w.CaptureListeners(); n != 0 {
		t.Errorf("CaptureListeners() after repeated Remove = %d, want 0", n)
	}
}

func TestHandle_RemoveNil(t *testing.T) {
	var h *Handle
	h.Remove() // must not panic
}

func TestDispatchKey_TargetSnapshot(t *testing.T) {
	w := New()
	w.Focus(Element{ID: "recorder", Attrs: AttrRecording})

	var target Element
	w.AddCaptureListener(func(ctx *KeyContext) { target = ctx.Target })
	w.DispatchKey(keybind.EventFromString("x"))

	if target.ID != "recorder" {
		t.Errorf("target ID = %q, want recorder", target.ID)
	}
	if !target.Has(AttrRecording) {
		t.Error("target should carry AttrRecording")
	}

	w.Blur()
	w.DispatchKey(keybind.EventFromString("x"))
	if target.ID != "" || target.Has(AttrRecording) {
		t.Errorf("after Blur target = %+v, want zero element", target)
	}
}

func TestDispatchKey_ListenerMutationAffectsNextDispatch(t *testing.T) {
	w := New()
	var second int
	w.AddCaptureListener(func(*KeyContext) {
		// Registering during dispatch must not fire within this dispatch.
		w.AddCaptureListener(func(*KeyContext) { second++ })
	})

	w.DispatchKey(keybind.EventFromString("a"))
	if second != 0 {
		t.Fatalf("listener added mid-dispatch fired %d times in same dispatch", second)
	}

	w.DispatchKey(keybind.EventFromString("a"))
	if second != 1 {
		t.Errorf("listener added mid-dispatch fired %d times on next dispatch, want 1", second)
	}
}
