package api

import (
	"encoding/json"
	"net/http"

	"github.com/yourusername/egtb/internal/position"
	"github.com/yourusername/egtb/pkg/engine"
)

// Handlers holds the HTTP handlers and the table registry.
type Handlers struct {
	registry *engine.Registry
	version  string
	pool     *WorkerPool
}

// NewHandlers creates a Handlers instance without a worker pool.
func NewHandlers(reg *engine.Registry, version string) *Handlers {
	return &Handlers{registry: reg, version: version}
}

// NewHandlersWithPool creates a Handlers instance with a worker pool.
func NewHandlersWithPool(reg *engine.Registry, version string, pool *WorkerPool) *Handlers {
	return &Handlers{registry: reg, version: version, pool: pool}
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, msg string, code string) {
	writeJSON(w, status, ErrorResponse{Error: msg, Code: code})
}

// acquireQuery gates a request on the query pool. Reports false when
// the caller should give up.
func (h *Handlers) acquireQuery(w http.ResponseWriter, r *http.Request) bool {
	if h.pool == nil {
		return true
	}
	if err := h.pool.AcquireQuery(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, "server busy", "SERVER_BUSY")
		return false
	}
	return true
}

func (h *Handlers) releaseQuery() {
	if h.pool != nil {
		h.pool.ReleaseQuery()
	}
}

// lookupTable resolves the table for a request, loading it from disk
// on first use.
func (h *Handlers) lookupTable(w http.ResponseWriter, pieces string) (*engine.Table, bool) {
	spec, err := position.ParseID(pieces)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error(), "INVALID_PIECES")
		return nil, false
	}
	t, err := h.registry.Load(spec, false)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error(), "TABLE_NOT_FOUND")
		return nil, false
	}
	return t, true
}

// Health handles GET /api/health
func (h *Handlers) Health(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{
		Status:  "ok",
		Version: h.version,
		Tables:  h.registry.IDs(),
	}
	if h.pool != nil {
		stats := h.pool.Stats()
		resp.Pool = &stats
	}
	writeJSON(w, http.StatusOK, resp)
}

// Value handles POST /api/value
func (h *Handlers) Value(w http.ResponseWriter, r *http.Request) {
	if !h.acquireQuery(w, r) {
		return
	}
	defer h.releaseQuery()

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	if req.Pieces == "" {
		writeError(w, http.StatusBadRequest, "pieces is required", "MISSING_PIECES")
		return
	}

	t, ok := h.lookupTable(w, req.Pieces)
	if !ok {
		return
	}

	v := t.Value(req.Position)
	writeJSON(w, http.StatusOK, ValueResponse{
		Value:  int(v),
		Status: int(t.Status(req.Position)),
		Winner: t.ExpectedWinner(req.Position).String(),
		Legal:  v != engine.Illegal,
	})
}

// Moves handles POST /api/moves
func (h *Handlers) Moves(w http.ResponseWriter, r *http.Request) {
	if !h.acquireQuery(w, r) {
		return
	}
	defer h.releaseQuery()

	var req QueryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	if req.Pieces == "" {
		writeError(w, http.StatusBadRequest, "pieces is required", "MISSING_PIECES")
		return
	}

	t, ok := h.lookupTable(w, req.Pieces)
	if !ok {
		return
	}

	moves := t.LegalMoves(req.Position)
	resp := MovesResponse{Count: len(moves), Moves: make([]MoveRecord, 0, len(moves))}
	for _, m := range moves {
		resp.Moves = append(resp.Moves, moveToRecord(t, req.Position, m))
	}
	writeJSON(w, http.StatusOK, resp)
}

// Apply handles POST /api/apply
func (h *Handlers) Apply(w http.ResponseWriter, r *http.Request) {
	if !h.acquireQuery(w, r) {
		return
	}
	defer h.releaseQuery()

	var req ApplyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON", "INVALID_JSON")
		return
	}
	if req.Pieces == "" {
		writeError(w, http.StatusBadRequest, "pieces is required", "MISSING_PIECES")
		return
	}

	t, ok := h.lookupTable(w, req.Pieces)
	if !ok {
		return
	}

	for _, m := range t.LegalMoves(req.Position) {
		if m.Slot != req.Slot || m.To != req.To {
			continue
		}
		succ, err := t.Apply(req.Position, m)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error(), "ILLEGAL_MOVE")
			return
		}
		writeJSON(w, http.StatusOK, ApplyResponse{
			Position: succ,
			Value:    int(t.Value(succ)),
			Winner:   t.ExpectedWinner(succ).String(),
		})
		return
	}
	writeError(w, http.StatusBadRequest, "no such legal move", "ILLEGAL_MOVE")
}
