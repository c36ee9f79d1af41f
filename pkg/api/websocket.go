package api

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/yourusername/egtb/internal/position"
	"github.com/yourusername/egtb/pkg/engine"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow all origins - configure properly in production
	},
}

// WSMessage is a generic WebSocket message.
type WSMessage struct {
	Type    string          `json:"type"`    // Message type: "value", "moves", "apply", "ping"
	ID      string          `json:"id"`      // Request ID for correlating responses
	Payload json.RawMessage `json:"payload"` // Type-specific payload
}

// WSResponse is a generic WebSocket response.
type WSResponse struct {
	Type    string      `json:"type"`              // Response type: "result", "error", "pong"
	ID      string      `json:"id,omitempty"`      // Request ID
	Payload interface{} `json:"payload,omitempty"` // Response data
	Error   string      `json:"error,omitempty"`   // Error message if any
}

// WSClient represents a connected WebSocket client.
type WSClient struct {
	conn     *websocket.Conn
	handlers *Handlers
	sendChan chan WSResponse
	mu       sync.Mutex
}

// WebSocket handles WebSocket connections for interactive probing.
func (h *Handlers) WebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}
	client := &WSClient{conn: conn, handlers: h, sendChan: make(chan WSResponse, 256)}
	go client.writePump()
	client.readPump()
}

func (c *WSClient) writePump() {
	defer c.conn.Close()
	for msg := range c.sendChan {
		if err := c.conn.WriteJSON(msg); err != nil {
			return
		}
	}
}

func (c *WSClient) readPump() {
	defer func() { close(c.sendChan); c.conn.Close() }()
	for {
		var msg WSMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			return
		}
		c.handleMessage(msg)
	}
}

func (c *WSClient) handleMessage(msg WSMessage) {
	switch msg.Type {
	case "value":
		c.handleValue(msg)
	case "moves":
		c.handleMoves(msg)
	case "apply":
		c.handleApply(msg)
	case "ping":
		c.sendChan <- WSResponse{Type: "pong", ID: msg.ID}
	default:
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "unknown message type"}
	}
}

// table resolves the requested table, reporting failures on the send
// channel.
func (c *WSClient) table(msg WSMessage, pieces string) (*engine.Table, bool) {
	spec, err := position.ParseID(pieces)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid pieces"}
		return nil, false
	}
	t, err := c.handlers.registry.Load(spec, false)
	if err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "table not loaded"}
		return nil, false
	}
	return t, true
}

func (c *WSClient) handleValue(msg WSMessage) {
	var req QueryRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	t, ok := c.table(msg, req.Pieces)
	if !ok {
		return
	}
	v := t.Value(req.Position)
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: ValueResponse{
		Value:  int(v),
		Status: int(t.Status(req.Position)),
		Winner: t.ExpectedWinner(req.Position).String(),
		Legal:  v != engine.Illegal,
	}}
}

func (c *WSClient) handleMoves(msg WSMessage) {
	var req QueryRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	t, ok := c.table(msg, req.Pieces)
	if !ok {
		return
	}
	moves := t.LegalMoves(req.Position)
	resp := MovesResponse{Count: len(moves), Moves: make([]MoveRecord, 0, len(moves))}
	for _, m := range moves {
		resp.Moves = append(resp.Moves, moveToRecord(t, req.Position, m))
	}
	c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: resp}
}

func (c *WSClient) handleApply(msg WSMessage) {
	var req ApplyRequest
	if err := json.Unmarshal(msg.Payload, &req); err != nil {
		c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "invalid payload"}
		return
	}
	t, ok := c.table(msg, req.Pieces)
	if !ok {
		return
	}
	for _, m := range t.LegalMoves(req.Position) {
		if m.Slot != req.Slot || m.To != req.To {
			continue
		}
		succ, err := t.Apply(req.Position, m)
		if err != nil {
			c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: err.Error()}
			return
		}
		c.sendChan <- WSResponse{Type: "result", ID: msg.ID, Payload: ApplyResponse{
			Position: succ,
			Value:    int(t.Value(succ)),
			Winner:   t.ExpectedWinner(succ).String(),
		}}
		return
	}
	c.sendChan <- WSResponse{Type: "error", ID: msg.ID, Error: "no such legal move"}
}
