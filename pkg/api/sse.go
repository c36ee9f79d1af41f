package api

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/yourusername/egtb/internal/position"
	"github.com/yourusername/egtb/pkg/engine"
)

// SSEEvent represents a Server-Sent Event.
type SSEEvent struct {
	Event string      `json:"event"` // Event type: "progress", "result", "done", "error"
	Data  interface{} `json:"data"`  // Event data
}

// BuildSSE handles Server-Sent Events for streaming table build
// progress. The build runs inside a slow-pool slot so at most a few
// whole-space sweeps run at once.
// GET /api/build/stream?pieces=WQ
func (h *Handlers) BuildSSE(w http.ResponseWriter, r *http.Request) {
	// Set SSE headers
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.Header().Set("Access-Control-Allow-Origin", "*")

	pieces := r.URL.Query().Get("pieces")
	if pieces == "" {
		writeSSEError(w, "pieces is required")
		return
	}
	spec, err := position.ParseID(pieces)
	if err != nil {
		writeSSEError(w, "invalid pieces: "+err.Error())
		return
	}

	flusher, ok := w.(http.Flusher)
	if !ok {
		writeSSEError(w, "streaming not supported")
		return
	}

	if h.pool != nil {
		if err := h.pool.AcquireBuild(r.Context()); err != nil {
			writeSSEError(w, "server busy")
			return
		}
		defer h.pool.ReleaseBuild()
	}

	opts := h.registry.Options()
	opts.Progress = func(stage string, n, labeled int) {
		writeSSEEvent(w, "progress", BuildProgress{Stage: stage, N: n, Labeled: labeled})
		flusher.Flush()
	}

	t, err := engine.New(spec, opts)
	if err != nil {
		writeSSEError(w, "build setup failed: "+err.Error())
		return
	}
	if err := t.Build(h.registry); err != nil {
		writeSSEError(w, "build failed: "+err.Error())
		return
	}
	if err := t.Save(opts.Dir); err != nil {
		writeSSEError(w, "save failed: "+err.Error())
		return
	}
	t.DropMoveCache()
	h.registry.Put(t)

	writeSSEEvent(w, "result", map[string]interface{}{
		"pieces":    spec.ID(),
		"positions": t.Positions(),
	})
	flusher.Flush()

	writeSSEEvent(w, "done", nil)
	flusher.Flush()
}

// writeSSEEvent writes a Server-Sent Event to the response.
func writeSSEEvent(w http.ResponseWriter, event string, data interface{}) {
	fmt.Fprintf(w, "event: %s\n", event)
	if data != nil {
		jsonData, _ := json.Marshal(data)
		fmt.Fprintf(w, "data: %s\n", jsonData)
	}
	fmt.Fprintf(w, "\n")
}

// writeSSEError writes an error event and closes the stream.
func writeSSEError(w http.ResponseWriter, message string) {
	writeSSEEvent(w, "error", map[string]string{"error": message})
	if flusher, ok := w.(http.Flusher); ok {
		flusher.Flush()
	}
}
