// Package server - отладочный HTTP/WebSocket сервер поверх работающего движка.
//
// Сервер ничего не меняет напрямую: чтение идет через атомарный снимок,
// запись через очередь команд движка.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"isoworld/internal/engine"
	"isoworld/internal/network"
	"isoworld/internal/version"
	"isoworld/internal/world"
	"isoworld/pkg/api"
	"isoworld/pkg/logger"
)

const (
	// DefaultTimeout ограничивает ожидание ответа движка на команду.
	DefaultTimeout  = 2 * time.Second
	shutdownTimeout = 5 * time.Second
)

// World - то, что серверу нужно от движка (*engine.Engine).
type World interface {
	Snapshot() (api.FrameSnapshot, bool)
	Submit(cmd engine.Command) error
	Describe(ctx context.Context, t world.TileCoord) (api.TileInfo, error)
}

type Server struct {
	World   World
	Hub     *network.Broadcaster
	Addr    string
	Timeout time.Duration
}

func New(w World, hub *network.Broadcaster, addr string) *Server {
	return &Server{
		World:   w,
		Hub:     hub,
		Addr:    addr,
		Timeout: DefaultTimeout,
	}
}

// Routes собирает роутер. Отдельно от Run, чтобы тесты работали через httptest.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)
	r.Use(enableCORS)

	r.Get("/ws", s.handleWS)
	r.Get("/health", s.handleHealth)
	r.Get("/version", s.handleVersion)

	debug := NewDebugHandler(s)
	r.Route("/debug", debug.RegisterRoutes)

	return r
}

// Run слушает Addr до отмены ctx, затем мягко останавливает сервер.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.Addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.ListenAndServe()
	}()
	logger.Log.WithField("addr", s.Addr).Info("Debug server listening")

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		logger.Log.Info("Debug server stopped")
		return nil
	case err := <-serveErr:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve http: %w", err)
	}
}

func (s *Server) timeout() time.Duration {
	if s.Timeout <= 0 {
		return DefaultTimeout
	}
	return s.Timeout
}

// dispatch отправляет команду движку и ждет ее исполнения на ближайшем тике.
func (s *Server) dispatch(ctx context.Context, cmd engine.Command) error {
	reply := make(chan engine.Reply, 1)
	cmd.Reply = reply
	if err := s.World.Submit(cmd); err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout())
	defer cancel()
	select {
	case r := <-reply:
		return r.Err
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", cmd.Action, ctx.Err())
	}
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Консоль открывается как локальный файл, origin у нее произвольный
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)

		logger.Log.WithFields(logrus.Fields{
			"request_id": middleware.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     ww.Status(),
			"bytes":      ww.BytesWritten(),
			"duration":   time.Since(start).String(),
		}).Debug("HTTP request")
	})
}

// handleWS обрабатывает подключение консоли по WebSocket
func (s *Server) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Log.WithError(err).Warn("Upgrade error")
		return
	}

	client := NewClient(s, conn)

	go client.writePump()
	go client.readPump()
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, version.Info())
}
