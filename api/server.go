package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strconv"
	"time"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/wricardo/abalone/game/engine"
	"github.com/wricardo/abalone/game/hex"
	"github.com/wricardo/abalone/game/service"
	"github.com/wricardo/abalone/transport/websocket"
)

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	router  *mux.Router
}

// NewServer creates a new API server. hub may be nil.
func NewServer(gameService service.GameService, hub *websocket.Hub) *Server {
	s := &Server{
		service: gameService,
		hub:     hub,
		router:  mux.NewRouter(),
	}

	s.setupRoutes()
	return s
}

func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()
	api.Use(requestLogger)

	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")

	// Game operations
	api.HandleFunc("/sessions/{id}/state", s.handleGetGameState).Methods("GET")
	api.HandleFunc("/sessions/{id}/validate", s.handleValidate).Methods("POST")
	api.HandleFunc("/sessions/{id}/move", s.handleMove).Methods("POST")
	api.HandleFunc("/sessions/{id}/select", s.handleSelect).Methods("POST")
	api.HandleFunc("/sessions/{id}/undo", s.handleUndo).Methods("POST")
	api.HandleFunc("/sessions/{id}/reset", s.handleReset).Methods("POST")
	api.HandleFunc("/sessions/{id}/history", s.handleGetHistory).Methods("GET")

	// Configuration
	api.HandleFunc("/configs", s.handleListConfigs).Methods("GET")
	api.HandleFunc("/configs", s.handleCreateConfig).Methods("POST")
	api.HandleFunc("/configs/{name}", s.handleGetConfig).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)
}

// Router exposes the mux so callers can mount extra handlers (e.g. /mcp).
func (s *Server) Router() *mux.Router {
	return s.router
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		ev := log.Debug()
		if rec.status >= http.StatusInternalServerError {
			ev = log.Error()
		}
		ev.Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Warn().Err(err).Msg("encode response")
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service and engine errors to HTTP statuses.
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	var ruleErr *engine.RuleError
	switch {
	case errors.Is(err, service.ErrSessionNotFound), errors.Is(err, service.ErrConfigNotFound):
		return http.StatusNotFound
	case errors.Is(err, engine.ErrGameOver), errors.Is(err, engine.ErrNothingToUndo):
		return http.StatusConflict
	case errors.Is(err, service.ErrInvalidConfig):
		return http.StatusBadRequest
	case errors.As(err, &ruleErr):
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

// moveRequest names the marbles to move and either the target cell or a
// compass direction ("E", "NE", "NW", "W", "SW", "SE").
type moveRequest struct {
	Marbles   []hex.Coord `json:"marbles"`
	Target    *hex.Coord  `json:"target,omitempty"`
	Direction string      `json:"direction,omitempty"`
}

func (req moveRequest) target() (hex.Coord, error) {
	if req.Target != nil {
		return *req.Target, nil
	}
	if req.Direction == "" {
		return hex.Coord{}, fmt.Errorf("target or direction is required")
	}
	dir, ok := hex.DirectionByName(req.Direction)
	if !ok {
		return hex.Coord{}, fmt.Errorf("unknown direction %q", req.Direction)
	}
	return engine.TargetFor(req.Marbles, dir), nil
}

func decodeMove(w http.ResponseWriter, r *http.Request) ([]hex.Coord, hex.Coord, bool) {
	var req moveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return nil, hex.Coord{}, false
	}
	target, err := req.target()
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return nil, hex.Coord{}, false
	}
	return req.Marbles, target, true
}

func (s *Server) broadcast(sessionID string, state *engine.GameState, events []service.GameEvent) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToSession(sessionID, state)
	for _, ev := range events {
		s.hub.BroadcastEvent(sessionID, ev.Type, ev)
	}
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ConfigID   string `json:"config_id,omitempty"`
		ConfigName string `json:"config_name,omitempty"` // Deprecated, use config_id
	}

	// an empty body selects the default layout
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	configID := req.ConfigID
	if configID == "" {
		configID = req.ConfigName
	}

	session, err := s.service.CreateSession(r.Context(), configID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, session)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	query := r.URL.Query()
	sortBy := query.Get("sort")    // "created", "accessed" (default)
	order := query.Get("order")    // "asc", "desc" (default)
	limitStr := query.Get("limit") // number of sessions to return

	if sortBy != "created" {
		sortBy = "accessed"
	}
	if order != "asc" {
		order = "desc"
	}

	sort.Slice(sessions, func(i, j int) bool {
		ti, tj := sessions[i].LastAccessedAt, sessions[j].LastAccessedAt
		if sortBy == "created" {
			ti, tj = sessions[i].CreatedAt, sessions[j].CreatedAt
		}
		if order == "asc" {
			return ti.Before(tj)
		}
		return ti.After(tj)
	})

	total := len(sessions)
	if l, err := strconv.Atoi(limitStr); err == nil && l > 0 && l < total {
		sessions = sessions[:l]
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"count":    len(sessions),
		"total":    total,
		"sessions": sessions,
		"sort":     sortBy,
		"order":    order,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	session, err := s.service.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, session)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	if err := s.service.DeleteSession(r.Context(), sessionID); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"message": fmt.Sprintf("Session %s deleted", sessionID),
	})
}

// Game Operation Handlers

func (s *Server) handleGetGameState(w http.ResponseWriter, r *http.Request) {
	state, err := s.service.GetGameState(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, state)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	marbles, target, ok := decodeMove(w, r)
	if !ok {
		return
	}

	v, err := s.service.ValidateMove(r.Context(), mux.Vars(r)["id"], marbles, target)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, v)
}

// handleMove answers 200 with the new state, or 422 with the rejection
// reason when the move breaks a rule.
func (s *Server) handleMove(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	marbles, target, ok := decodeMove(w, r)
	if !ok {
		return
	}

	result, err := s.service.Move(r.Context(), sessionID, marbles, target)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if !result.Success {
		log.Info().Str("session", sessionID).Str("reason", string(result.Reason)).Msg("move rejected")
		respondJSON(w, http.StatusUnprocessableEntity, result)
		return
	}

	s.broadcast(sessionID, result.GameState, result.Events)

	log.Info().
		Str("session", sessionID).
		Str("kind", string(result.Kind)).
		Int("marbles", len(marbles)).
		Int("pushed", result.Pushed).
		Int("captured", result.Captured).
		Msg("move")

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Selection []hex.Coord `json:"selection"`
		Clicked   hex.Coord   `json:"clicked"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Select(r.Context(), mux.Vars(r)["id"], req.Selection, req.Clicked)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	result, err := s.service.Undo(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, result.GameState, result.Events)
	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	state, err := s.service.Reset(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	s.broadcast(sessionID, state, []service.GameEvent{{
		Type:      service.EventReset,
		Message:   state.Message,
		Timestamp: time.Now(),
		Player:    state.CurrentPlayer,
	}})

	respondJSON(w, http.StatusOK, map[string]any{
		"message": "Game reset successfully",
		"state":   state,
	})
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	opts := service.HistoryOptions{
		Page:  1,
		Limit: 20,
		Order: "desc",
	}

	query := r.URL.Query()
	if p, err := strconv.Atoi(query.Get("page")); err == nil && p > 0 {
		opts.Page = p
	}
	if l, err := strconv.Atoi(query.Get("limit")); err == nil && l > 0 {
		opts.Limit = l
	}
	if order := query.Get("order"); order == "asc" || order == "desc" {
		opts.Order = order
	}

	history, err := s.service.GetMoveHistory(r.Context(), mux.Vars(r)["id"], opts)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, history)
}

// Configuration Handlers

func (s *Server) handleListConfigs(w http.ResponseWriter, r *http.Request) {
	configs, err := s.service.ListConfigs(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, configs)
}

func (s *Server) handleGetConfig(w http.ResponseWriter, r *http.Request) {
	config, err := s.service.LoadConfig(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, config)
}

// handleCreateConfig stores a layout. The file name comes from ?id=, or
// from the layout name when absent.
func (s *Server) handleCreateConfig(w http.ResponseWriter, r *http.Request) {
	var gameConfig engine.GameConfig
	if err := json.NewDecoder(r.Body).Decode(&gameConfig); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	configID := r.URL.Query().Get("id")
	if configID == "" {
		configID = gameConfig.Name
	}
	if configID == "" {
		respondError(w, http.StatusBadRequest, "Config name is required")
		return
	}

	if err := s.service.SaveConfig(r.Context(), configID, &gameConfig); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":   "Configuration saved successfully",
		"config_id": configID,
	})
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "websocket push disabled", http.StatusServiceUnavailable)
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	if _, err := s.service.GetSession(r.Context(), sessionID); err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, sessionID)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}
