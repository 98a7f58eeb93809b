package sse

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/mossii/statusboard/internal/model"
	"github.com/mossii/statusboard/internal/services/lock"
	"github.com/mossii/statusboard/internal/testutil"
)

func recvEvent(t *testing.T, client *Client) string {
	t.Helper()
	select {
	case msg := <-client.send:
		return string(msg)
	case <-time.After(100 * time.Millisecond):
		t.Fatal("client did not receive message")
		return ""
	}
}

func TestBroadcaster_CellChanged(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "127.0.0.1:5000")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	b := NewBroadcaster(hub, testutil.NopLogger())
	b.BroadcastCellChanged(&model.StatusCell{
		ID:       "cell-1",
		PlayerID: "p1",
		GameID:   "g1",
		Status:   model.StatusGreen,
	})

	msg := recvEvent(t, client)
	if !strings.HasPrefix(msg, "event: cell-changed\n") {
		t.Errorf("unexpected event framing: %q", msg)
	}

	data := strings.TrimPrefix(strings.Split(msg, "\n")[1], "data: ")
	var payload struct {
		Cell model.StatusCell `json:"cell"`
	}
	if err := json.Unmarshal([]byte(data), &payload); err != nil {
		t.Fatalf("payload is not valid JSON: %v", err)
	}
	if payload.Cell.Status != model.StatusGreen {
		t.Errorf("payload status = %q, want %q", payload.Cell.Status, model.StatusGreen)
	}
}

func TestBroadcaster_LockChanged(t *testing.T) {
	hub := NewHub(testutil.NopLogger())
	go hub.Run()
	defer hub.Close()

	client := NewClient(hub, "127.0.0.1:5000")
	hub.Register(client)
	time.Sleep(10 * time.Millisecond)

	b := NewBroadcaster(hub, testutil.NopLogger())
	b.BroadcastLockChanged(lock.State{Locked: true})

	msg := recvEvent(t, client)
	expected := "event: lock-changed\ndata: {\"locked\":true}\n\n"
	if msg != expected {
		t.Errorf("got %q, want %q", msg, expected)
	}
}
