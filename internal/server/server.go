// Package server provides the HTTP server and routing for Gridiron.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/gridironhq/gridiron/internal/config"
	"github.com/gridironhq/gridiron/internal/database"
	"github.com/gridironhq/gridiron/internal/modules/ingest"
	"github.com/gridironhq/gridiron/internal/modules/players"
	playershandlers "github.com/gridironhq/gridiron/internal/modules/players/handlers"
	"github.com/gridironhq/gridiron/internal/modules/roster"
	rosterhandlers "github.com/gridironhq/gridiron/internal/modules/roster/handlers"
	"github.com/gridironhq/gridiron/internal/modules/trade"
	tradehandlers "github.com/gridironhq/gridiron/internal/modules/trade/handlers"
	"github.com/gridironhq/gridiron/internal/reliability"
)

// Config holds server configuration
type Config struct {
	Log           zerolog.Logger
	DB            *database.DB
	Config        *config.Config
	IngestService *ingest.Service
	BackupService *reliability.BackupService
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	db             *database.DB
	cfg            *config.Config
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		db:     cfg.DB,
		cfg:    cfg.Config,
	}

	s.systemHandlers = NewSystemHandlers(
		cfg.Log,
		cfg.Config.DataDir,
		cfg.DB,
		cfg.IngestService,
		cfg.BackupService,
		cfg.Config.ValuationsCSVPath,
	)

	s.setupMiddleware(cfg.Config.DevMode)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	// Recovery from panics
	s.router.Use(middleware.Recoverer)

	// Request ID
	s.router.Use(middleware.RequestID)

	// Real IP
	s.router.Use(middleware.RealIP)

	// Logging
	s.router.Use(s.loggingMiddleware)

	// Timeout
	s.router.Use(middleware.Timeout(60 * time.Second))

	// CORS
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Compress responses
	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)

	playersRepo := players.NewRepository(s.db.Conn(), s.log)
	playersService := players.NewService(playersRepo, s.log)
	playersHandler := playershandlers.NewHandler(playersService, s.log)

	tradeRepo := trade.NewRepository(s.db.Conn(), s.log)
	tradeResolver := trade.NewResolver(tradeRepo, s.log)
	tradeService := trade.NewService(tradeRepo, tradeResolver, s.log)
	tradeHandler := tradehandlers.NewHandler(tradeService, s.log)

	rosterRepo := roster.NewRepository(s.db.Conn(), s.log)
	rosterService := roster.NewService(rosterRepo, s.log)
	rosterHandler := rosterhandlers.NewHandler(rosterService, s.log)

	s.router.Route("/api", func(r chi.Router) {
		playersHandler.RegisterRoutes(r)
		tradeHandler.RegisterRoutes(r)
		rosterHandler.RegisterRoutes(r)
		s.systemHandlers.RegisterRoutes(r)
	})
}

// handleHealth is the liveness endpoint.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	if err := s.db.HealthCheck(ctx); err != nil {
		s.log.Error().Err(err).Msg("Health check failed")
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusServiceUnavailable)
		fmt.Fprint(w, `{"status":"unhealthy"}`)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, `{"status":"ok"}`)
}

// loggingMiddleware logs every request with its outcome.
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}
