// Package api provides the HTTP/JSON query surface over loaded
// tablebases.
package api

import (
	"github.com/yourusername/egtb/internal/movegen"
	"github.com/yourusername/egtb/pkg/engine"
)

// ============================================================================
// Request Types
// ============================================================================

// QueryRequest identifies a table and a position within it. The
// position is the turn (0 = White, 1 = Black) followed by one square
// per slot; non-king slots may be 64 for a captured piece.
type QueryRequest struct {
	Pieces   string `json:"pieces"`   // table ID, e.g. "WQ" or "WBWN"
	Position []int  `json:"position"` // turn, bk, wk, ...
}

// ApplyRequest selects one legal move by its moving slot and
// destination square.
type ApplyRequest struct {
	Pieces   string `json:"pieces"`
	Position []int  `json:"position"`
	Slot     int    `json:"slot"`
	To       int    `json:"to"`
}

// ============================================================================
// Response Types
// ============================================================================

// ValueResponse is the response for a value query.
type ValueResponse struct {
	Value  int    `json:"value"`            // signed table value
	Status int    `json:"status,omitempty"` // status bits when loaded
	Winner string `json:"winner"`           // "white", "black" or "none"
	Legal  bool   `json:"legal"`
}

// MoveRecord is one legal move annotated with the value of the
// resulting position.
type MoveRecord struct {
	Slot         int    `json:"slot"`
	From         int    `json:"from"`
	To           int    `json:"to"`
	Capture      bool   `json:"capture,omitempty"`
	CapturedSlot int    `json:"captured_slot,omitempty"`
	Value        int    `json:"value"`
	Winner       string `json:"winner"`
}

// MovesResponse lists the legal moves of a position.
type MovesResponse struct {
	Moves []MoveRecord `json:"moves"`
	Count int          `json:"count"`
}

// ApplyResponse carries the successor position.
type ApplyResponse struct {
	Position []int  `json:"position"`
	Value    int    `json:"value"`
	Winner   string `json:"winner"`
}

// ErrorResponse is returned when an error occurs.
type ErrorResponse struct {
	Error string `json:"error"`          // Error message
	Code  string `json:"code,omitempty"` // Error code
}

// HealthResponse is the response for health check.
type HealthResponse struct {
	Status  string     `json:"status"`  // "ok" or "error"
	Version string     `json:"version"` // Engine version
	Tables  []string   `json:"tables"`  // Loaded table IDs
	Pool    *PoolStats `json:"pool,omitempty"`
}

// BuildProgress is one SSE progress event during a table build.
type BuildProgress struct {
	Stage   string `json:"stage"`
	N       int    `json:"n,omitempty"`
	Labeled int    `json:"labeled"`
}

// ============================================================================
// Helper Functions
// ============================================================================

// moveToRecord annotates a legal move with its successor value.
func moveToRecord(t *engine.Table, pos []int, m movegen.Move) MoveRecord {
	succ := make([]int, len(pos))
	movegen.Successor(pos, m, succ)
	rec := MoveRecord{
		Slot:    m.Slot,
		From:    m.From,
		To:      m.To,
		Capture: m.Capture,
		Value:   int(t.Value(succ)),
		Winner:  t.ExpectedWinner(succ).String(),
	}
	if m.Capture {
		rec.CapturedSlot = m.CapturedSlot
	}
	return rec
}
