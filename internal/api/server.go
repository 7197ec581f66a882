// Package api provides the HTTP API server and handlers for the CardVault
// catalog.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cardvault/cardvault-server/internal/auth"
	"github.com/cardvault/cardvault-server/internal/config"
	"github.com/cardvault/cardvault-server/internal/http/response"
	"github.com/cardvault/cardvault-server/internal/ratelimit"
	"github.com/cardvault/cardvault-server/internal/service"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	cfg           *config.Config
	seriesService *service.SeriesService
	tokenService  *auth.TokenService
	limiter       *ratelimit.KeyedRateLimiter
	adminHash     string
	router        *chi.Mux
	logger        *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// adminHash is the argon2id hash of the admin password.
func NewServer(cfg *config.Config, seriesService *service.SeriesService, tokenService *auth.TokenService, limiter *ratelimit.KeyedRateLimiter, adminHash string, logger *slog.Logger) *Server {
	s := &Server{
		cfg:           cfg,
		seriesService: seriesService,
		tokenService:  tokenService,
		limiter:       limiter,
		adminHash:     adminHash,
		router:        chi.NewRouter(),
		logger:        logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
	if s.limiter != nil {
		s.router.Use(s.rateLimit)
	}
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public).
		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", s.handleLogin)
		})

		r.Route("/series", func(r chi.Router) {
			// Reads are public.
			r.Get("/", s.handleListSeries)
			r.Get("/{id}", s.handleGetSeries)
			r.Get("/code/{code}", s.handleGetSeriesByCode)

			// Writes require the admin token.
			r.Group(func(r chi.Router) {
				r.Use(s.requireAuth)
				r.Post("/", s.handleCreateSeries)
				r.Put("/{id}", s.handleUpdateSeries)
				r.Delete("/{id}", s.handleDeleteSeries)
			})
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
		"name":   s.cfg.Server.Name,
	}, s.logger)
}
