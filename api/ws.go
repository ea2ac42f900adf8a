package api

import (
	"encoding/json"
	"net/http"
	"sync"

	"hangman/log"
	"hangman/view"

	"github.com/gorilla/websocket"
)

// Represents a single WebSocket connection. A session may have several, one per open tab.
type Client struct {
	conn *websocket.Conn
	mu   sync.Mutex // gorilla allows only one concurrent writer per conn
}

// Encode msg and write it as a single text frame.
func (c *Client) send(msg WSMessage) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Format for all WebSocket messages (sent and received).
type WSMessage struct {
	Action  string     `json:"action"`            // guess, reset, definition, state, error
	Payload string     `json:"payload,omitempty"` // letter for guess, text for error
	State   *view.View `json:"state,omitempty"`   // only set on server -> client messages
}

// ----------- Client Registry ----------- //

// Hub holds, for every session id, all clients currently connected to it.
type Hub struct {
	mu      sync.Mutex // guards clients
	clients map[string][]*Client
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string][]*Client)}
}

// Register a client connection with its session.
func (h *Hub) add(sessionID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.clients[sessionID] = append(h.clients[sessionID], c)
}

// Remove a client from its session, dropping the session entry once it is empty.
func (h *Hub) remove(sessionID string, c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	list := h.clients[sessionID]
	for i, other := range list {
		if other == c {
			// Full slice expression so a concurrent Broadcast copy is never overwritten
			h.clients[sessionID] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	if len(h.clients[sessionID]) == 0 {
		delete(h.clients, sessionID)
	}
}

// Broadcast sends the session's current view to all of its clients.
// A client whose write fails is closed and unregistered.
func (h *Hub) Broadcast(sessionID string, v view.View) {
	// Snapshot the targets so no write happens under the hub lock
	h.mu.Lock()
	targets := append([]*Client(nil), h.clients[sessionID]...)
	h.mu.Unlock()

	msg := WSMessage{Action: "state", State: &v}
	for _, c := range targets {
		if err := c.send(msg); err != nil {
			log.With("session", sessionID).Warn("Error writing WS message, closing conn: %v", err)
			c.conn.Close()
			h.remove(sessionID, c)
		}
	}
}

// Count returns how many clients are connected to a session.
func (h *Hub) Count(sessionID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients[sessionID])
}

// Allows WebSocket upgrade from any origin; the session cookie is SameSite=Lax.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ----------- WebSocket Handler ----------- //

// HTTP handler: upgrade the connection and turn every message into a
// transition on the caller's session.
// Path: /ws
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	// The page sets the session cookie; a socket without one has no game to talk to
	sessionID, ok := sessionFromRequest(r)
	if !ok {
		http.Error(w, "Missing session", http.StatusBadRequest)
		return
	}
	logger := log.With("session", sessionID)

	// Upgrade HTTP conn to WebSocket
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("WebSocket upgrade error: %v", err)
		return
	}

	// Register this client; unregister and close on disconnect
	client := &Client{conn: conn}
	s.hub.add(sessionID, client)
	defer func() {
		s.hub.remove(sessionID, client)
		conn.Close()
	}()

	// Greet with the current state. The page compares it with what it rendered
	// and only reloads when the two disagree on whether the game is over.
	if v, err := s.sessions.View(sessionID); err == nil {
		client.send(WSMessage{Action: "state", State: &v})
	}

	// Main receive loop: wait for client messages
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			logger.Debug("WebSocket closed: %v", err)
			return // client disconnected
		}

		var msg WSMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			logger.Debug("Invalid WS message: %v", err)
			continue
		}

		var v view.View
		switch msg.Action {
		case "guess":
			// Payload validation (one letter, not tried yet) happens in the game logic
			v, err = s.sessions.Guess(sessionID, msg.Payload)
		case "reset":
			v, err = s.sessions.Reset(sessionID)
		case "definition":
			v, err = s.sessions.ToggleDefinition(sessionID)
		case "state":
			// Refresh request: answer this client only, nothing changed
			v, err = s.sessions.View(sessionID)
			if err == nil {
				client.send(WSMessage{Action: "state", State: &v})
			}
			continue
		default:
			continue // unknown action, ignore
		}
		if err != nil {
			// Errors go privately to the sender, never broadcast
			logger.Error("Transition %q failed: %v", msg.Action, err)
			client.send(WSMessage{Action: "error", Payload: "game unavailable"})
			continue
		}

		// Every tab of the session gets the new state, including the sender
		s.hub.Broadcast(sessionID, v)
	}
}
