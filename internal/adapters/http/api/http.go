// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/okian/dugout/pkg/logger"
)

// Dependencies required by HTTP handlers. Using an interface bundle keeps
// the handler layer loosely coupled to implementations in other packages.
type Dependencies interface {
	PlayersDependencies
	DescriptionDependencies
	AdminDependencies
	StatsProvider
}

// Server wires HTTP routes for the business API.
type Server struct {
	healthHandler      *HealthHandler
	statsHandler       *StatsHandler
	playersHandler     *PlayersHandler
	descriptionHandler *DescriptionHandler
	adminHandler       *AdminHandler
	logger             logger.Logger
}

// NewServer creates a new API server with all handlers.
func NewServer(deps Dependencies, l logger.Logger) *Server {
	if l == nil {
		l = logger.Get().Named("http")
	}
	return &Server{
		healthHandler:      NewHealthHandler(),
		statsHandler:       NewStatsHandler(deps),
		playersHandler:     NewPlayersHandler(deps),
		descriptionHandler: NewDescriptionHandler(deps),
		adminHandler:       NewAdminHandler(deps),
		logger:             l,
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(mux *http.ServeMux) {
	s.handle(mux, "GET /healthz", "healthz", s.healthHandler.HandleHealth)
	s.handle(mux, "GET /metrics", "metrics", s.healthHandler.HandleMetrics)
	s.handle(mux, "GET /stats", "stats", s.statsHandler.HandleStats)
	s.handle(mux, "GET /players", "players", s.playersHandler.HandleList)
	s.handle(mux, "GET /players/{id}", "player", s.playersHandler.HandleGet)
	s.handle(mux, "PATCH /players/{id}", "player", s.playersHandler.HandlePatch)
	s.handle(mux, "POST /players/{id}/description", "description", s.descriptionHandler.HandleDescribe)
	s.handle(mux, "POST /admin/refresh", "refresh", s.adminHandler.HandleRefresh)
}

func (s *Server) handle(mux *http.ServeMux, pattern, endpoint string, h http.HandlerFunc) {
	mux.Handle(pattern, RequestIDMiddleware(LoggingMiddleware(s.logger, MetricsMiddleware(h, endpoint))))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

// writeDomainError translates err using the domain error taxonomy. Internal
// failures are logged and answered with the bare status text.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	status, code := classify(err)
	if code == codeInternal {
		logger.Get().Named("http").Error(r.Context(), "request failed",
			logger.String("path", r.URL.Path),
			logger.Error(err),
		)
		err = nil
	}
	writeError(w, status, code, err)
}
