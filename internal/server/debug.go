package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"isoworld/internal/engine"
	"isoworld/internal/providers"
	"isoworld/internal/world"
	"isoworld/pkg/api"
	"isoworld/pkg/logger"
)

// DebugHandler предоставляет доступ к состоянию движка
type DebugHandler struct {
	server *Server
}

func NewDebugHandler(s *Server) *DebugHandler {
	return &DebugHandler{server: s}
}

// RegisterRoutes регистрирует debug-эндпоинты внутри /debug
func (h *DebugHandler) RegisterRoutes(r chi.Router) {
	r.Get("/world", h.handleWorld)
	r.Get("/tile", h.handleTileQuery)
	r.Get("/tile/{i}/{j}", h.handleTilePath)
	r.Get("/providers", h.handleProviders)
	r.Post("/command", h.handleCommand)
}

// /debug/world - последний снимок кадра
func (h *DebugHandler) handleWorld(w http.ResponseWriter, r *http.Request) {
	snap, ok := h.server.World.Snapshot()
	if !ok {
		http.Error(w, "engine has not rendered a frame yet", http.StatusServiceUnavailable)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

// /debug/tile?i=5&j=3
func (h *DebugHandler) handleTileQuery(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	h.describe(w, r, q.Get("i"), q.Get("j"))
}

// /debug/tile/5/3
func (h *DebugHandler) handleTilePath(w http.ResponseWriter, r *http.Request) {
	h.describe(w, r, chi.URLParam(r, "i"), chi.URLParam(r, "j"))
}

func (h *DebugHandler) describe(w http.ResponseWriter, r *http.Request, is, js string) {
	t, err := parseTile(is, js)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.server.timeout())
	defer cancel()

	info, err := h.server.World.Describe(ctx, t)
	if err != nil {
		logger.Log.WithField("tile", t.String()).WithError(err).Debug("Describe failed")
		http.Error(w, err.Error(), statusOf(err))
		return
	}
	writeJSON(w, http.StatusOK, info)
}

// /debug/providers - имена для PROVIDER
func (h *DebugHandler) handleProviders(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, providers.Names())
}

// POST /debug/command - то же, что сообщение по WebSocket, но синхронно
func (h *DebugHandler) handleCommand(w http.ResponseWriter, r *http.Request) {
	var msg api.ClientCommand
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxMessageSize)).Decode(&msg); err != nil {
		writeJSON(w, http.StatusBadRequest, resultOf(msg.Action, fmt.Errorf("invalid command: %w", err)))
		return
	}

	cmd, err := toCommand(msg)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, resultOf(msg.Action, err))
		return
	}

	err = h.server.dispatch(r.Context(), cmd)
	status := http.StatusOK
	if err != nil {
		status = statusOf(err)
	}
	writeJSON(w, status, resultOf(msg.Action, err))
}

func parseTile(is, js string) (world.TileCoord, error) {
	i, err := strconv.Atoi(is)
	if err != nil {
		return world.TileCoord{}, fmt.Errorf("bad tile i %q", is)
	}
	j, err := strconv.Atoi(js)
	if err != nil {
		return world.TileCoord{}, fmt.Errorf("bad tile j %q", js)
	}
	return world.TileCoord{I: i, J: j}, nil
}

// statusOf сопоставляет ошибки движка с HTTP-кодами.
func statusOf(err error) int {
	switch {
	case errors.Is(err, engine.ErrNotDescribable):
		return http.StatusNotImplemented
	case errors.Is(err, engine.ErrQueueFull):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.Is(err, providers.ErrUnknownProvider), errors.Is(err, engine.ErrUnknownAction):
		return http.StatusBadRequest
	case errors.Is(err, engine.ErrNoFactory):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	// nil (например, пустой список) отдаем как [], а не null
	if data == nil {
		_, _ = w.Write([]byte("[]"))
		return
	}

	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Log.WithError(err).Warn("write json response failed")
	}
}
