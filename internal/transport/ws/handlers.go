package ws

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/kiryu-dev/chess/internal/domain"
	"go.uber.org/zap"
)

type healthCheckResponse struct {
	Status            string `json:"status"`
	ActiveConnections int64  `json:"active_connections"`
}

func (s *server) serveWs(w http.ResponseWriter, r *http.Request) {
	clientUuid := strings.TrimSpace(r.Header.Get(domain.ClientUuidHeader))
	if clientUuid == "" {
		clientUuid = uuid.NewString()
	}
	s.logger.Info("new connection", zap.String("client uuid", clientUuid))
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error(err.Error())
		return
	}
	client := newClient(conn, clientUuid)
	defer client.Close()
	if !s.track(conn) {
		return
	}
	defer s.untrack(conn)
	if err := s.hub.Handle(r.Context(), client); err != nil {
		s.logger.Error(err.Error(), zap.String("client uuid", clientUuid))
	}
}

func (s *server) healthCheck(w http.ResponseWriter, _ *http.Request) {
	resp := healthCheckResponse{
		Status:            "ok",
		ActiveConnections: s.hub.ActiveConnections(),
	}
	writeJson(w, http.StatusOK, resp, s.logger)
}

func (s *server) gameSnapshot(w http.ResponseWriter, r *http.Request) {
	gameUuid := r.PathValue("id")
	session, ok := s.hub.Session(gameUuid)
	if !ok {
		http.Error(w, "game not found", http.StatusNotFound)
		return
	}
	writeJson(w, http.StatusOK, s.hub.Snapshot(session), s.logger)
}

func writeJson(w http.ResponseWriter, status int, v any, logger *zap.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := jsoniter.NewEncoder(w).Encode(v); err != nil {
		logger.Warn(err.Error())
	}
}
