// Websocket event stream. The hub subscribes to the session as an observer
// and fans simulation events out to connected clients as JSON messages.
// Slow clients are dropped rather than allowed to stall the simulation.
package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/talgya/electionsim/internal/engine"
	"github.com/talgya/electionsim/internal/policy"
)

const (
	writeWait      = 10 * time.Second
	clientSendBuf  = 64
	maxStreamConns = 16
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:    1024,
	WriteBufferSize:   1024,
	EnableCompression: true,
	// The HTTP layer already gates cross-origin access via CORS_ORIGINS;
	// websocket handshakes follow the same policy.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Hub manages websocket subscribers. It implements engine.Observer.
type Hub struct {
	mu      sync.Mutex
	clients map[*websocket.Conn]chan []byte
}

// NewHub creates an empty stream hub.
func NewHub() *Hub {
	return &Hub{clients: make(map[*websocket.Conn]chan []byte)}
}

// HandleWS upgrades a request and streams events until the client leaves.
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	n := len(h.clients)
	h.mu.Unlock()
	if n >= maxStreamConns {
		http.Error(w, "too many stream connections", http.StatusServiceUnavailable)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("websocket upgrade failed", "error", err)
		return
	}

	send := make(chan []byte, clientSendBuf)
	h.mu.Lock()
	h.clients[conn] = send
	h.mu.Unlock()
	slog.Info("stream client connected", "clients", n+1)

	go h.writeLoop(conn, send)
	h.readLoop(conn)
}

// readLoop discards inbound frames and detects disconnects.
func (h *Hub) readLoop(conn *websocket.Conn) {
	defer h.drop(conn)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writeLoop(conn *websocket.Conn, send chan []byte) {
	for msg := range send {
		conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			h.drop(conn)
			return
		}
	}
	conn.WriteMessage(websocket.CloseMessage, []byte{})
}

func (h *Hub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	if send, ok := h.clients[conn]; ok {
		delete(h.clients, conn)
		close(send)
	}
	h.mu.Unlock()
	conn.Close()
}

// broadcast sends a message to every client without blocking; clients whose
// buffers are full are dropped.
func (h *Hub) broadcast(msg any) {
	data, err := json.Marshal(msg)
	if err != nil {
		return
	}

	h.mu.Lock()
	var stale []*websocket.Conn
	for conn, send := range h.clients {
		select {
		case send <- data:
		default:
			stale = append(stale, conn)
		}
	}
	h.mu.Unlock()

	for _, conn := range stale {
		slog.Warn("dropping slow stream client")
		h.drop(conn)
	}
}

// --- engine.Observer -------------------------------------------------------

func (h *Hub) InfluenceChanged(regionID string, t engine.Tuple) {
	h.broadcast(map[string]any{
		"type":      "influence",
		"region_id": regionID,
		"influence": t,
	})
}

func (h *Hub) DominationChanged(group string, holder engine.PlayerID) {
	h.broadcast(map[string]any{
		"type":   "domination",
		"group":  group,
		"holder": holder,
	})
}

func (h *Hub) CampaignCompleted(cat policy.Category, index int, dominant engine.PlayerID, summary engine.EffectSummary) {
	h.broadcast(map[string]any{
		"type":     "campaign_completed",
		"category": cat,
		"index":    index,
		"dominant": dominant,
		"summary":  summary,
	})
}

func (h *Hub) RallyPlaced(regionID string, player engine.PlayerID, special bool) {
	h.broadcast(map[string]any{
		"type":      "rally",
		"region_id": regionID,
		"player":    player,
		"special":   special,
	})
}

func (h *Hub) PhaseChanged(phase, totalPhases int) {
	h.broadcast(map[string]any{
		"type":         "phase",
		"phase":        phase,
		"total_phases": totalPhases,
	})
}

func (h *Hub) RandomEventOccurred(regionID, description string, delta float64) {
	h.broadcast(map[string]any{
		"type":        "random_event",
		"region_id":   regionID,
		"description": description,
		"delta":       delta,
	})
}

func (h *Hub) GameOver(outcome engine.Outcome, proj engine.Projection) {
	h.broadcast(map[string]any{
		"type":       "game_over",
		"outcome":    outcome,
		"projection": proj,
	})
}
