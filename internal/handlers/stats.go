package handlers

import (
	"net/http"

	"github.com/lexiquest/lexiquest/internal/engine"
)

// StatsHandler serves GET /v1/stats.
type StatsHandler struct {
	engine *engine.Engine
}

func NewStatsHandler(eng *engine.Engine) *StatsHandler {
	return &StatsHandler{engine: eng}
}

func (h *StatsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, h.engine.Stats())
}
