// Package api exposes the outing module's operations over HTTP for setup
// screens and scoreboard views.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"golang.org/x/time/rate"

	outingservice "github.com/fairway-social/outing-engine/app/modules/outing/application"
	"github.com/fairway-social/outing-engine/config"
)

// Server hosts the outing HTTP API.
type Server struct {
	service outingservice.Service
	logger  *slog.Logger
	router  chi.Router
}

// NewServer builds the chi router with rate limiting and the outing routes.
func NewServer(service outingservice.Service, logger *slog.Logger, cfg config.HTTPConfig) *Server {
	s := &Server{
		service: service,
		logger:  logger,
	}

	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	if cfg.RateLimitPerSecond > 0 {
		limiter := NewIPRateLimiter(rate.Limit(cfg.RateLimitPerSecond), cfg.RateLimitBurst)
		r.Use(RateLimitMiddleware(limiter))
	}

	r.Get("/healthz", s.handleHealth)

	r.Route("/outings/{outingID}", func(r chi.Router) {
		r.Post("/groups/auto-assign", s.handleAutoAssign)
		r.Post("/groups/shotgun", s.handleShotgun)
		r.Post("/players/{playerID}/move", s.handleMovePlayer)
		r.Post("/groups/{groupID}/marker", s.handleReassignMarker)
		r.Get("/validation", s.handleValidation)
		r.Get("/leaderboard", s.handleLeaderboard)
		r.Get("/leaderboard/export", s.handleLeaderboardExport)
		r.Get("/leaderboard/chart", s.handleLeaderboardChart)
		r.Post("/schedule", s.handleSchedule)
	})

	s.router = r
	return s
}

// Handler returns the configured HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}
