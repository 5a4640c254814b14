package server

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"toruslife/internal/logging"
	"toruslife/pkg/life"
)

// Websocket message types.
const (
	WSTypeSnapshot = "snapshot"
	WSTypeEvent    = "event"

	wsSendBufferSize = 64
	wsWriteWait      = 10 * time.Second
	wsPongWait       = 60 * time.Second
	wsPingInterval   = wsPongWait * 9 / 10
	wsMaxMessageSize = 512
)

// WSMessage is sent to websocket clients.
type WSMessage struct {
	Type      string `json:"type"`
	EventType string `json:"event_type,omitempty"`
	Timestamp string `json:"timestamp"`
	Payload   Frame  `json:"payload"`
}

// Frame is one rendered generation.
type Frame struct {
	Cause      string   `json:"cause,omitempty"`
	Generation int      `json:"generation"`
	Population int      `json:"population"`
	Cells      []string `json:"cells,omitempty"`
}

func newFrame(ev life.Event) Frame {
	f := Frame{Generation: ev.Generation}
	if ev.Cause != 0 {
		f.Cause = ev.Cause.String()
	}
	if ev.Grid != nil {
		f.Population = ev.Grid.Population()
		f.Cells = gridRows(ev.Grid)
	}
	return f
}

// Hub fans automaton events out to websocket clients. It implements
// life.Observer; slow clients lose frames rather than stall the controller.
type Hub struct {
	logger  *logging.Logger
	clients map[*wsClient]struct{}
	mu      sync.RWMutex
}

type wsClient struct {
	hub  *Hub
	conn *websocket.Conn
	send chan []byte
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	CheckOrigin:     func(_ *http.Request) bool { return true },
}

// NewHub creates an empty hub.
func NewHub(logger *logging.Logger) *Hub {
	return &Hub{logger: logger, clients: make(map[*wsClient]struct{})}
}

// Notify implements life.Observer.
func (h *Hub) Notify(ev life.Event) {
	h.broadcast(encode(WSMessage{
		Type:      WSTypeEvent,
		EventType: ev.Signal.String(),
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload:   newFrame(ev),
	}))
}

func encode(msg WSMessage) []byte {
	data, err := json.Marshal(msg)
	if err != nil {
		return nil
	}
	return data
}

func (h *Hub) broadcast(data []byte) {
	if data == nil {
		return
	}
	// Sends are non-blocking, so holding the read lock keeps a concurrent
	// unregister from closing a channel mid-send.
	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.clients {
		c.trySend(data)
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

func (h *Hub) register(c *wsClient) {
	h.mu.Lock()
	h.clients[c] = struct{}{}
	h.mu.Unlock()
	h.logger.Debug("websocket client connected", "clients", h.ClientCount())
}

// unregister closes the send channel exactly once.
func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	if _, existed := h.clients[c]; existed {
		delete(h.clients, c)
		close(c.send)
	}
	h.mu.Unlock()
	h.logger.Debug("websocket client disconnected", "clients", h.ClientCount())
}

func (h *Hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		close(c.send)
		delete(h.clients, c)
	}
}

// trySend drops the message when the client's buffer is full.
func (c *wsClient) trySend(data []byte) {
	select {
	case c.send <- data:
	default:
	}
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("websocket upgrade failed", "error", err)
		return
	}

	c := &wsClient{hub: s.hub, conn: conn, send: make(chan []byte, wsSendBufferSize)}
	c.send <- encode(WSMessage{
		Type:      WSTypeSnapshot,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Payload: Frame{
			Generation: s.a.Generation(),
			Population: s.a.Population(),
			Cells:      gridRows(s.a.Snapshot()),
		},
	})
	s.hub.register(c)

	go c.writePump()
	go c.readPump()
}

// readPump only services control frames; clients do not send commands here.
func (c *wsClient) readPump() {
	defer func() {
		c.hub.unregister(c)
		c.conn.Close()
	}()

	c.conn.SetReadLimit(wsMaxMessageSize)
	//nolint:errcheck // best-effort deadline
	c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.hub.logger.Warn("websocket read error", "error", err)
			}
			return
		}
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(wsPingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			//nolint:errcheck // write error caught below
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				//nolint:errcheck // best-effort close message
				c.conn.WriteMessage(websocket.CloseMessage, nil)
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			//nolint:errcheck // ping error caught below
			c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
