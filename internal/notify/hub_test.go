package notify

import (
	"encoding/json"
	"testing"
)

func TestHubDeliversToOwnSessionOnly(t *testing.T) {
	h := NewHub(nil)

	a := h.Register("client-a", "sess-a")
	b := h.Register("client-b", "sess-b")
	defer h.Unregister("client-a")
	defer h.Unregister("client-b")

	h.EmitTo("sess-a", KindSuccess, "Widget added to cart")

	select {
	case data := <-a.Events:
		var ev Event
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal event: %v", err)
		}
		if ev.Kind != KindSuccess || ev.Message != "Widget added to cart" {
			t.Errorf("event = %+v", ev)
		}
	default:
		t.Fatal("session a should have received the event")
	}

	select {
	case <-b.Events:
		t.Fatal("session b must not receive session a's event")
	default:
	}
}

func TestHubDropsWhenClientBufferFull(t *testing.T) {
	h := NewHub(nil)
	c := h.Register("client-a", "sess-a")
	defer h.Unregister("client-a")

	// Saturate the buffer and one more; EmitTo must not block.
	for i := 0; i < cap(c.Events)+5; i++ {
		h.EmitTo("sess-a", KindError, "stock limit reached for Widget")
	}

	if got := len(c.Events); got != cap(c.Events) {
		t.Errorf("buffered events = %d, want %d", got, cap(c.Events))
	}
}

func TestRecorder(t *testing.T) {
	r := &Recorder{}
	if _, ok := r.Last(); ok {
		t.Fatal("empty recorder should have no last event")
	}

	r.Emit(KindSuccess, "one")
	r.Emit(KindError, "two")

	events := r.Events()
	if len(events) != 2 {
		t.Fatalf("recorded %d events, want 2", len(events))
	}
	if last, ok := r.Last(); !ok || last.Message != "two" || last.Kind != KindError {
		t.Errorf("Last() = %+v, %v", last, ok)
	}
}
