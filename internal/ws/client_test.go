package ws

import (
	"encoding/json"
	"testing"
)

func testClient(buffer int) *Client {
	return &Client{UserID: 1, Send: make(chan []byte, buffer), done: make(chan struct{})}
}

func TestClient_SendJSON(t *testing.T) {
	c := testClient(4)

	c.sendError("nope")

	select {
	case data := <-c.Send:
		var p errorPayload
		if err := json.Unmarshal(data, &p); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if p.Type != MsgError || p.Error != "nope" {
			t.Fatalf("unexpected payload: %+v", p)
		}
	default:
		t.Fatal("nothing queued")
	}
}

func TestClient_SendDropsWhenBufferFull(t *testing.T) {
	c := testClient(1)

	// must not block even when the buffer is full
	c.send([]byte("one"))
	c.send([]byte("two"))

	if got := string(<-c.Send); got != "one" {
		t.Fatalf("got %q, want the first message kept", got)
	}
	select {
	case extra := <-c.Send:
		t.Fatalf("unexpected extra message %q", extra)
	default:
	}
}

func TestHub_SendToUserUnknown(t *testing.T) {
	h := NewHub(nil, nil, nil)
	if h.SendToUser(42, []byte("x")) {
		t.Fatal("send to unknown user reported success")
	}
	if h.Online(42) {
		t.Fatal("unknown user reported online")
	}
}
