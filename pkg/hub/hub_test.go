package hub

import (
	"encoding/json"
	"testing"
	"time"
)

// register a bare client (no connection; only the send queue matters for
// the hub's own logic) and wait until the hub has processed it.
func addClient(t *testing.T, h *Hub, queue int) *client {
	t.Helper()
	c := &client{hub: h, send: make(chan Message, queue)}
	h.register <- c

	deadline := time.After(2 * time.Second)
	for h.ClientCount() == 0 {
		select {
		case <-deadline:
			t.Fatal("client never registered")
		case <-time.After(time.Millisecond):
		}
	}
	return c
}

func TestHub_BroadcastDeliversToClients(t *testing.T) {
	h := New("test")
	go h.Run()

	c := addClient(t, h, 4)

	h.BroadcastJSON(map[string]int{"n": 7})

	select {
	case msg := <-c.send:
		if msg.Type != JSONMessage {
			t.Errorf("type: got %v, want JSON", msg.Type)
		}
		var got map[string]int
		if err := json.Unmarshal(msg.Data, &got); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if got["n"] != 7 {
			t.Errorf("payload: got %v", got)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("broadcast never delivered")
	}
}

func TestHub_DropsSlowClient(t *testing.T) {
	h := New("test")
	go h.Run()

	// Queue of one, never read: the second broadcast overflows it
	addClient(t, h, 1)

	h.BroadcastBinary([]byte{0x01})
	h.BroadcastBinary([]byte{0x02})

	deadline := time.After(2 * time.Second)
	for h.ClientCount() != 0 {
		select {
		case <-deadline:
			t.Fatal("slow client was never dropped")
		case <-time.After(time.Millisecond):
		}
	}
}

func TestHub_UnregisterClosesSendQueue(t *testing.T) {
	h := New("test")
	go h.Run()

	c := addClient(t, h, 4)
	h.unregister <- c

	select {
	case _, ok := <-c.send:
		if ok {
			t.Error("expected closed send queue after unregister")
		}
	case <-time.After(2 * time.Second):
		t.Fatal("send queue never closed")
	}
}

func TestNewJSONMessage_EncodeFailureYieldsEmpty(t *testing.T) {
	// Channels are not JSON-encodable; the broadcast path skips empty
	// messages rather than erroring
	msg := NewJSONMessage(make(chan int))
	if len(msg.Data) != 0 {
		t.Errorf("expected empty message, got %d bytes", len(msg.Data))
	}
}
