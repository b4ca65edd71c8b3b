package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/wricardo/swap-puzzle/game/asset"
	"github.com/wricardo/swap-puzzle/game/engine"
	"github.com/wricardo/swap-puzzle/game/service"
	"github.com/wricardo/swap-puzzle/transport/websocket"
	"github.com/wricardo/swap-puzzle/web"
)

// AssetOpener opens image files for serving
type AssetOpener interface {
	Open(name string) (*os.File, error)
}

// Server represents the REST API server
type Server struct {
	service service.GameService
	hub     *websocket.Hub
	assets  AssetOpener
	router  *mux.Router
	logger  *zap.Logger
}

// NewServer creates a new API server. hub and assets may be nil.
func NewServer(gameService service.GameService, hub *websocket.Hub, assets AssetOpener, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{
		service: gameService,
		hub:     hub,
		assets:  assets,
		router:  mux.NewRouter(),
		logger:  logger,
	}

	s.setupRoutes()
	return s
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api").Subrouter()

	// Session management
	api.HandleFunc("/sessions", s.handleCreateSession).Methods("POST")
	api.HandleFunc("/sessions", s.handleListSessions).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleGetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", s.handleDeleteSession).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/restart", s.handleRestartSession).Methods("POST")

	// Interaction and presentation
	api.HandleFunc("/sessions/{id}/pointer", s.handlePointer).Methods("POST")
	api.HandleFunc("/sessions/{id}/frame", s.handleFrame).Methods("GET")
	api.HandleFunc("/sessions/{id}/board", s.handleBoard).Methods("GET")

	// Images
	api.HandleFunc("/images", s.handleListImages).Methods("GET")
	s.router.HandleFunc("/assets/{name}", s.handleAsset).Methods("GET")

	// WebSocket
	s.router.HandleFunc("/ws", s.handleWebSocket)

	s.router.HandleFunc("/healthz", s.handleHealth).Methods("GET")

	// Browser client
	s.router.PathPrefix("/").Handler(http.FileServer(web.StaticFS()))
}

// ServeHTTP implements http.Handler
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Response helpers
func respondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondServiceError maps service errors to status codes
func respondServiceError(w http.ResponseWriter, err error) {
	respondError(w, statusFor(err), err.Error())
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrSessionNotFound),
		errors.Is(err, asset.ErrAssetNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrInvalidEvent),
		errors.Is(err, asset.ErrInvalidName):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrImageTooSmall),
		errors.Is(err, engine.ErrInvalidDimension):
		return http.StatusUnprocessableEntity
	case errors.Is(err, asset.ErrNoAssets):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// Session Handlers

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Image string `json:"image,omitempty"`
	}
	if r.Body != nil {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(w, http.StatusBadRequest, "Invalid request body")
			return
		}
	}

	info, err := s.service.CreateSession(r.Context(), req.Image)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusCreated, info)
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	sessions, err := s.service.ListSessions(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"sessions": sessions,
		"count":    len(sessions),
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	info, err := s.service.GetSession(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, info)
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if err := s.service.DeleteSession(r.Context(), mux.Vars(r)["id"]); err != nil {
		respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleRestartSession(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	info, err := s.service.RestartSession(r.Context(), sessionID)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// Clients of this session go back to the start screen
	if frame, err := s.service.Frame(r.Context(), sessionID); err == nil {
		s.broadcast(info.ID, &FrameUpdate{Frame: frame, State: info.State})
	}

	respondJSON(w, http.StatusOK, info)
}

// Interaction Handlers

func (s *Server) handlePointer(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["id"]

	var in websocket.Inbound
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	result, err := s.service.Pointer(r.Context(), sessionID, in.Event())
	if err != nil {
		respondServiceError(w, err)
		return
	}

	if update := NewFrameUpdate(result); update != nil {
		s.broadcast(result.SessionID, update)
	}
	logDrop(s.logger, result)

	respondJSON(w, http.StatusOK, result)
}

func (s *Server) handleFrame(w http.ResponseWriter, r *http.Request) {
	frame, err := s.service.Frame(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, frame)
}

func (s *Server) handleBoard(w http.ResponseWriter, r *http.Request) {
	view, err := s.service.Board(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, view)
}

// Image Handlers

func (s *Server) handleListImages(w http.ResponseWriter, r *http.Request) {
	images, err := s.service.ListImages(r.Context())
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]any{
		"images": images,
		"count":  len(images),
	})
}

func (s *Server) handleAsset(w http.ResponseWriter, r *http.Request) {
	if s.assets == nil {
		respondError(w, http.StatusNotFound, "no assets configured")
		return
	}

	name := mux.Vars(r)["name"]
	f, err := s.assets.Open(name)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	http.ServeContent(w, r, name, info.ModTime(), f)
}

// WebSocket Handler

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	if s.hub == nil {
		http.Error(w, "websocket not available", http.StatusServiceUnavailable)
		return
	}

	sessionID := r.URL.Query().Get("session")
	if sessionID == "" {
		http.Error(w, "session parameter required", http.StatusBadRequest)
		return
	}

	// Verify session exists and send its current frame on connect
	frame, err := s.service.Frame(context.Background(), sessionID)
	if err != nil {
		http.Error(w, "Invalid session", http.StatusNotFound)
		return
	}

	s.hub.ServeWS(w, r, frame.SessionID, &websocket.Message{
		SessionID: frame.SessionID,
		Event:     websocket.EventFrame,
		Data:      &FrameUpdate{Frame: frame},
	})
}

// Health check
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
	})
}

func (s *Server) broadcast(sessionID string, update *FrameUpdate) {
	if s.hub == nil {
		return
	}
	if err := s.hub.Broadcast(&websocket.Message{
		SessionID: sessionID,
		Event:     websocket.EventFrame,
		Data:      update,
	}); err != nil {
		s.logger.Debug("frame not broadcast", zap.String("session", sessionID), zap.Error(err))
	}
}
