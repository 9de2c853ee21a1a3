package websocket

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vovakirdan/maze-chase/internal/core"
)

func newTestClient(hub *Hub, sessionID string) *Client {
	return &Client{hub: hub, sessionID: sessionID, send: make(chan []byte, 256)}
}

func readMessage(t *testing.T, ch <-chan []byte) Message {
	t.Helper()
	select {
	case data := <-ch:
		var m Message
		if err := json.Unmarshal(data, &m); err != nil {
			t.Fatalf("cannot decode %q: %v", data, err)
		}
		return m
	case <-time.After(time.Second):
		t.Fatal("no message received")
		return Message{}
	}
}

func TestHubRegisterUnregister(t *testing.T) {
	hub := NewHub(nil)
	c1 := newTestClient(hub, "s")
	c2 := newTestClient(hub, "s")

	hub.registerClient(c1)
	hub.registerClient(c2)
	if len(hub.sessions["s"]) != 2 {
		t.Fatalf("expected 2 spectators, got %d", len(hub.sessions["s"]))
	}
	if m := readMessage(t, c1.send); m.Event != EventJoined || m.SessionID != "s" {
		t.Errorf("hello = %+v", m)
	}

	hub.unregisterClient(c1)
	if !hub.sessions["s"][c2] || len(hub.sessions["s"]) != 1 {
		t.Error("wrong spectator removed")
	}
	if _, ok := <-c1.send; ok {
		t.Error("send channel not closed")
	}

	hub.unregisterClient(c2)
	if _, ok := hub.sessions["s"]; ok {
		t.Error("empty session not cleaned up")
	}
	// A second unregister is harmless.
	hub.unregisterClient(c2)
}

func TestHubBroadcastScopedToSession(t *testing.T) {
	hub := NewHub(nil)
	a := newTestClient(hub, "a")
	b := newTestClient(hub, "b")
	hub.registerClient(a)
	hub.registerClient(b)
	readMessage(t, a.send)
	readMessage(t, b.send)

	hub.broadcastMessage(&Message{SessionID: "a", Event: EventState, Data: map[string]int{"score": 10}})

	m := readMessage(t, a.send)
	if m.Event != EventState {
		t.Errorf("event = %q", m.Event)
	}
	if data, ok := m.Data.(map[string]any); !ok || data["score"] != float64(10) {
		t.Errorf("data = %#v", m.Data)
	}
	select {
	case data := <-b.send:
		t.Errorf("session b received %q", data)
	default:
	}
}

func TestHubReplaysLastState(t *testing.T) {
	hub := NewHub(nil)
	hub.broadcastMessage(&Message{SessionID: "s", Event: EventState, Data: "snap-1"})
	hub.broadcastMessage(&Message{SessionID: "s", Event: EventEffect, Data: "dot"})

	late := newTestClient(hub, "s")
	hub.registerClient(late)
	m := readMessage(t, late.send)
	if m.Event != EventState || m.Data != "snap-1" {
		t.Errorf("late joiner got %+v", m)
	}
}

func TestHubDropsSlowSpectator(t *testing.T) {
	hub := NewHub(nil)
	slow := &Client{hub: hub, sessionID: "s", send: make(chan []byte, 1)}
	hub.registerClient(slow) // hello fills the buffer

	hub.broadcastMessage(&Message{SessionID: "s", Event: EventState})
	if _, ok := hub.sessions["s"]; ok {
		t.Error("slow spectator still registered")
	}
}

func TestPublisherNeverBlocks(t *testing.T) {
	hub := NewHub(nil)
	pub := hub.Session("s")

	done := make(chan struct{})
	go func() {
		for i := 0; i < broadcastBuffer*2; i++ {
			pub.Publish(i)
			pub.TriggerEffect(core.EffectDot)
		}
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked without a running hub")
	}
	if len(hub.broadcast) != broadcastBuffer {
		t.Errorf("queued %d, want %d", len(hub.broadcast), broadcastBuffer)
	}
}

func TestSpectatorEndToEnd(t *testing.T) {
	hub := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go hub.Run(ctx)

	server := httptest.NewServer(hub.Handler())
	defer server.Close()

	wsURL := "ws" + strings.TrimPrefix(server.URL, "http") + "/ws?session=game-1"
	conn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	defer conn.Close()
	conn.SetReadDeadline(time.Now().Add(2 * time.Second))

	var m Message
	if err := conn.ReadJSON(&m); err != nil || m.Event != EventJoined {
		t.Fatalf("hello = %+v, %v", m, err)
	}

	pub := hub.Session("game-1")
	pub.TriggerEffect(core.EffectCapture)
	if err := conn.ReadJSON(&m); err != nil {
		t.Fatalf("read: %v", err)
	}
	if m.Event != EventEffect || m.Data != "capture" || m.SessionID != "game-1" {
		t.Errorf("effect message = %+v", m)
	}
}
