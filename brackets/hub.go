package brackets

import (
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Event types pushed to viewers of a bracket session.
const (
	EventPickRecorded = "PICK_RECORDED"
	EventPicksCleared = "PICKS_CLEARED"
	EventBracketSaved = "BRACKET_SAVED"
)

// HubMessage is the wire envelope for session events.
type HubMessage struct {
	Type      string      `json:"type"`
	SessionID string      `json:"session_id"`
	Payload   interface{} `json:"payload"`
}

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
)

// Client is one websocket viewer attached to a session room.
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	session string
}

// Hub fans session events out to the viewers of each bracket session. The
// core stays synchronous; the hub only mirrors state changes outward.
type Hub struct {
	register   chan *Client
	unregister chan *Client
	rooms      map[string]map[*Client]bool
	mu         sync.RWMutex
	logger     *slog.Logger
}

func NewHub(logger *slog.Logger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		rooms:      make(map[string]map[*Client]bool),
		logger:     logger,
	}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if _, ok := h.rooms[client.session]; !ok {
				h.rooms[client.session] = make(map[*Client]bool)
			}
			h.rooms[client.session][client] = true
			h.logger.Info("viewer joined session",
				slog.String("session_id", client.session),
				slog.Int("viewers", len(h.rooms[client.session])))
			h.mu.Unlock()

		case client := <-h.unregister:
			h.mu.Lock()
			if room, ok := h.rooms[client.session]; ok {
				if _, member := room[client]; member {
					close(client.send)
					delete(room, client)
					if len(room) == 0 {
						delete(h.rooms, client.session)
					}
				}
			}
			h.mu.Unlock()
		}
	}
}

// NewClient attaches a websocket connection to a session room and starts its
// read/write pumps.
func (h *Hub) NewClient(conn *websocket.Conn, sessionID string) *Client {
	c := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, 16),
		session: sessionID,
	}
	h.register <- c
	go c.writePump()
	go c.readPump()
	return c
}

// BroadcastToSession sends one event to every viewer of a session. Viewers
// with a full send buffer are skipped rather than blocked on.
func (h *Hub) BroadcastToSession(sessionID, eventType string, payload interface{}) {
	raw, err := json.Marshal(HubMessage{Type: eventType, SessionID: sessionID, Payload: payload})
	if err != nil {
		h.logger.Error("failed to marshal hub message",
			slog.String("session_id", sessionID), slog.Any("error", err))
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for client := range h.rooms[sessionID] {
		select {
		case client.send <- raw:
		default:
			h.logger.Warn("dropping event for slow viewer", slog.String("session_id", sessionID))
		}
	}
}

// readPump drains inbound frames (viewers never send anything meaningful)
// and keeps the pong deadline fresh.
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
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
			return
		}
	}
}

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
