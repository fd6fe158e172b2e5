package ws

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/kiryu-dev/chess/internal/config"
	"github.com/kiryu-dev/chess/internal/domain"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

const readHeaderTimeout = 5 * time.Second

type server struct {
	srv      *http.Server
	hub      domain.HubUseCase
	upgrader websocket.Upgrader
	logger   *zap.Logger

	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	stopping bool
}

func New(hub domain.HubUseCase, cfg config.ServerConfig, logger *zap.Logger) *server {
	s := &server{
		hub: hub,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  cfg.ReadBufferSize,
			WriteBufferSize: cfg.WriteBufferSize,
			CheckOrigin:     checkOrigin(cfg.AllowedOrigins),
		},
		logger: logger,
		conns:  make(map[*websocket.Conn]struct{}),
	}
	s.srv = &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: readHeaderTimeout,
	}
	// hijacked connections are invisible to Shutdown
	s.srv.RegisterOnShutdown(s.closeConnections)
	return s
}

// ListenAndServe blocks until the server is shut down.
func (s *server) ListenAndServe() error {
	s.logger.Info("starting listening address: " + s.srv.Addr)
	if err := s.srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return errors.WithMessage(err, "listen and serve")
	}
	return nil
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// track registers an upgraded connection. It reports false once shutdown has begun.
func (s *server) track(conn *websocket.Conn) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopping {
		return false
	}
	s.conns[conn] = struct{}{}
	return true
}

func (s *server) untrack(conn *websocket.Conn) {
	s.mu.Lock()
	delete(s.conns, conn)
	s.mu.Unlock()
}

func (s *server) closeConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.stopping = true
	for conn := range s.conns {
		_ = conn.Close()
	}
	if len(s.conns) > 0 {
		s.logger.Info("closed websocket connections", zap.Int("count", len(s.conns)))
	}
	clear(s.conns)
}

func (s *server) Handler() http.Handler {
	return s.srv.Handler
}

func (s *server) routes() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /game", s.serveWs)
	mux.HandleFunc("GET /health", s.healthCheck)
	mux.HandleFunc("GET /games/{id}", s.gameSnapshot)
	return mux
}

// checkOrigin accepts any origin when none are configured.
func checkOrigin(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]struct{}, len(allowed))
	for _, origin := range allowed {
		set[origin] = struct{}{}
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[origin]
		return ok
	}
}
