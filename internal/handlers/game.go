package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/lexiquest/lexiquest/internal/engine"
	"github.com/lexiquest/lexiquest/pkg/game"
)

// ErrorResponse is the JSON error envelope for all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// GameHandler serves the game session endpoints under /v1/game/.
type GameHandler struct {
	engine *engine.Engine
	logger *slog.Logger
}

func NewGameHandler(eng *engine.Engine, logger *slog.Logger) *GameHandler {
	return &GameHandler{
		engine: eng,
		logger: logger,
	}
}

type startRequest struct {
	Genre        string `json:"genre"`
	Mode         string `json:"mode,omitempty"`
	SessionLimit int    `json:"session_limit,omitempty"`
}

type choiceRequest struct {
	SessionID string `json:"session_id"`
	SegmentID string `json:"segment_id"`
	ChoiceID  string `json:"choice_id"`
	Turn      int    `json:"turn"`
}

type freeTextRequest struct {
	SessionID string `json:"session_id"`
	Input     string `json:"input"`
	Turn      int    `json:"turn"`
}

type challengeRequest struct {
	SessionID string `json:"session_id"`
	SegmentID string `json:"segment_id"`
	Answer    string `json:"answer"`
}

type backtrackRequest struct {
	SessionID  string `json:"session_id"`
	TargetTurn int    `json:"target_turn"`
}

type sessionRequest struct {
	SessionID string `json:"session_id"`
}

func (h *GameHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	action := strings.TrimPrefix(r.URL.Path, "/v1/game/")
	action = strings.Trim(action, "/")

	if r.Method == http.MethodGet {
		h.handleGet(w, r, action)
		return
	}
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	switch action {
	case "start":
		h.handleStart(w, r)
	case "choice":
		h.handleChoice(w, r)
	case "freetext":
		h.handleFreeText(w, r)
	case "challenge":
		h.handleChallenge(w, r)
	case "backtrack":
		h.handleBacktrack(w, r)
	case "end":
		h.handleEnd(w, r)
	default:
		writeError(w, http.StatusNotFound, "unknown action")
	}
}

// handleGet serves GET /v1/game/{id}.
func (h *GameHandler) handleGet(w http.ResponseWriter, r *http.Request, idStr string) {
	id, err := uuid.Parse(idStr)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}
	gs, err := h.engine.GetState(id)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gs)
}

func (h *GameHandler) handleStart(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	genre, err := game.ParseGenre(req.Genre)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	mode, err := game.ParseMode(req.Mode)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}

	gs, err := h.engine.StartSession(r.Context(), genre, mode, req.SessionLimit)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, gs)
}

func (h *GameHandler) handleChoice(w http.ResponseWriter, r *http.Request) {
	var req choiceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := uuid.Parse(req.SessionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	res, err := h.engine.ApplyChoice(r.Context(), id, req.SegmentID, req.ChoiceID, req.Turn)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *GameHandler) handleFreeText(w http.ResponseWriter, r *http.Request) {
	var req freeTextRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := uuid.Parse(req.SessionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	res, err := h.engine.ApplyFreeText(r.Context(), id, req.Input, req.Turn)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *GameHandler) handleChallenge(w http.ResponseWriter, r *http.Request) {
	var req challengeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := uuid.Parse(req.SessionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	res, err := h.engine.ApplyChallenge(id, req.SegmentID, req.Answer)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *GameHandler) handleBacktrack(w http.ResponseWriter, r *http.Request) {
	var req backtrackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := uuid.Parse(req.SessionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	gs, err := h.engine.Backtrack(id, req.TargetTurn)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gs)
}

func (h *GameHandler) handleEnd(w http.ResponseWriter, r *http.Request) {
	var req sessionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	id, err := uuid.Parse(req.SessionID)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid session id")
		return
	}

	gs, err := h.engine.EndSession(id)
	if err != nil {
		h.writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, gs)
}

// writeEngineError maps the sentinel error taxonomy onto HTTP status
// codes. Anything unrecognized is a 500, logged here.
func (h *GameHandler) writeEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrNotFound):
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, game.ErrInvalidState), errors.Is(err, game.ErrInvalidInput):
		writeError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, game.ErrConflict):
		writeError(w, http.StatusConflict, err.Error())
	default:
		h.logger.Error("internal error", "error", err)
		writeError(w, http.StatusInternalServerError, "internal server error")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, ErrorResponse{Error: msg})
}
