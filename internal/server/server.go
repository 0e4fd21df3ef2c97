package server

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/jonboulle/clockwork"

	"github.com/csolympiad/portal/internal/backend"
	"github.com/csolympiad/portal/internal/config"
	"github.com/csolympiad/portal/internal/gate"
	"github.com/csolympiad/portal/internal/store"
	"github.com/csolympiad/portal/internal/ui"
)

// Server is the portal web server: the UI routes plus a health endpoint.
type Server struct {
	router    chi.Router
	logger    *slog.Logger
	config    config.ServerConfig
	startTime time.Time
	store     store.Store
	backend   *backend.Client
	gate      *gate.Gate
	ui        *ui.UI
}

// New creates a new Server with all routes registered.
func New(cfg config.ServerConfig, st store.Store, client *backend.Client, logger *slog.Logger) *Server {
	clock := clockwork.NewRealClock()

	s := &Server{
		router:    chi.NewRouter(),
		logger:    logger.With("component", "server"),
		config:    cfg,
		startTime: time.Now(),
		store:     st,
		backend:   client,
		gate:      gate.New(client, clock, logger, cfg.ResyncInterval),
	}

	s.ui = ui.New(client, st, s.gate, clock, logger, ui.Config{
		Secure:     cfg.SecureCookies,
		SessionTTL: cfg.SessionTTL,
	})

	s.routes()
	return s
}

// Run starts the background loops: the gate's clock resync and the hourly
// sweep of expired login sessions. Both stop when ctx is canceled.
func (s *Server) Run(ctx context.Context) {
	go s.gate.Run(ctx)

	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				n, err := s.store.DeleteExpiredSessions(ctx)
				if err != nil {
					s.logger.Error("session sweep failed", "error", err)
					continue
				}
				if n > 0 {
					s.logger.Info("expired sessions removed", "count", n)
				}
			}
		}
	}()
}

// Close stops the gate's armed timers.
func (s *Server) Close() {
	s.gate.Close()
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Handler returns the http.Handler for this server.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() {
	r := s.router

	// Global middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(requestIDMiddleware)
	r.Use(loggingMiddleware(s.logger))

	// Health
	r.Get("/healthz", s.handleHealth)

	// UI routes (HTML)
	s.ui.RegisterRoutes(r)
}
