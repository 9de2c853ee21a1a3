// Package websocket streams game snapshots and effect events to spectators.
package websocket

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/vovakirdan/maze-chase/internal/core"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512

	// Pending broadcasts; beyond this new ones are dropped.
	broadcastBuffer = 256
)

// Events sent to spectators.
const (
	EventJoined = "joined"
	EventState  = "state_update"
	EventEffect = "effect"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Message is one frame sent to spectators.
type Message struct {
	SessionID string `json:"session_id"`
	Event     string `json:"event"`
	Data      any    `json:"data,omitempty"`
}

// Client is one spectator connection.
type Client struct {
	hub       *Hub
	conn      *websocket.Conn
	send      chan []byte
	sessionID string
}

// Hub fans messages out to the spectators of each game session.
// All session bookkeeping happens on the Run goroutine.
type Hub struct {
	log *log.Logger

	sessions map[string]map[*Client]bool
	// last state sent per session, replayed to late joiners
	last map[string][]byte

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client
	done       chan struct{}
}

// NewHub creates a hub. A nil logger discards.
func NewHub(logger *log.Logger) *Hub {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Hub{
		log:        logger,
		sessions:   make(map[string]map[*Client]bool),
		last:       make(map[string][]byte),
		broadcast:  make(chan *Message, broadcastBuffer),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		done:       make(chan struct{}),
	}
}

// Run processes hub events until ctx is done, then disconnects everyone.
func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)

		case <-ctx.Done():
			close(h.done)
			for _, clients := range h.sessions {
				for client := range clients {
					h.unregisterClient(client)
				}
			}
			return
		}
	}
}

// Handler serves spectator connections on /ws?session=<id>.
func (h *Hub) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", func(w http.ResponseWriter, r *http.Request) {
		sessionID := r.URL.Query().Get("session")
		if sessionID == "" {
			sessionID = "local"
		}
		h.ServeWS(w, r, sessionID)
	})
	return mux
}

// ServeWS upgrades the request and attaches the spectator to sessionID.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, sessionID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "err", err)
		return
	}

	client := &Client{
		hub:       h,
		conn:      conn,
		send:      make(chan []byte, 256),
		sessionID: sessionID,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump()
}

// Broadcast queues an event for the spectators of sessionID without
// blocking. It reports false when the queue is full and the event dropped.
func (h *Hub) Broadcast(sessionID, event string, data any) bool {
	select {
	case h.broadcast <- &Message{SessionID: sessionID, Event: event, Data: data}:
		return true
	default:
		return false
	}
}

// Session returns a publisher bound to one game session.
func (h *Hub) Session(sessionID string) *Publisher {
	return &Publisher{hub: h, sessionID: sessionID}
}

func (h *Hub) registerClient(client *Client) {
	if h.sessions[client.sessionID] == nil {
		h.sessions[client.sessionID] = make(map[*Client]bool)
	}
	h.sessions[client.sessionID][client] = true

	hello := h.last[client.sessionID]
	if hello == nil {
		hello, _ = json.Marshal(&Message{SessionID: client.sessionID, Event: EventJoined})
	}
	client.send <- hello

	h.log.Info("spectator joined", "session", client.sessionID, "spectators", len(h.sessions[client.sessionID]))
}

func (h *Hub) unregisterClient(client *Client) {
	clients, ok := h.sessions[client.sessionID]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.send)
	if len(clients) == 0 {
		delete(h.sessions, client.sessionID)
	}
	h.log.Info("spectator left", "session", client.sessionID, "spectators", len(clients))
}

func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		h.log.Error("cannot encode broadcast", "event", message.Event, "err", err)
		return
	}
	if message.Event == EventState {
		h.last[message.SessionID] = data
	}

	for client := range h.sessions[message.SessionID] {
		select {
		case client.send <- data:
		default:
			// Slow spectator; drop it.
			h.unregisterClient(client)
		}
	}
}

// Publisher feeds one game session's snapshots and effects to the hub.
// It implements core.EffectTrigger.
type Publisher struct {
	hub       *Hub
	sessionID string
}

// Publish sends a state snapshot.
func (p *Publisher) Publish(v any) {
	if !p.hub.Broadcast(p.sessionID, EventState, v) {
		p.hub.log.Debug("broadcast queue full", "session", p.sessionID)
	}
}

// TriggerEffect implements core.EffectTrigger.
func (p *Publisher) TriggerEffect(e core.Effect) {
	p.hub.Broadcast(p.sessionID, EventEffect, e.String())
}

// readPump drains the connection so control frames are processed.
func (c *Client) readPump() {
	defer func() {
		select {
		case c.hub.unregister <- c:
		case <-c.hub.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.hub.log.Debug("websocket read error", "err", err)
			}
			return
		}
	}
}

// writePump sends queued messages and keepalive pings.
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
