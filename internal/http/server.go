// Package http provides the gateway HTTP server: health probes, the admin API and the page
// gate in front of the clinic web application.
package http

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	accessHTTP "github.com/clinicapp/accessgate/internal/access/http"
	"github.com/clinicapp/accessgate/internal/access/service"
	accessUseCase "github.com/clinicapp/accessgate/internal/access/usecase"
	"github.com/clinicapp/accessgate/internal/config"
	apperrors "github.com/clinicapp/accessgate/internal/errors"
	"github.com/clinicapp/accessgate/internal/httputil"
	"github.com/clinicapp/accessgate/internal/metrics"
)

// Server represents the HTTP server.
type Server struct {
	db     *sql.DB
	server *http.Server
	router *gin.Engine
	logger *slog.Logger
}

// NewServer creates a new HTTP server. The router is installed by SetupRouter.
func NewServer(db *sql.DB, host string, port int, logger *slog.Logger) *Server {
	return &Server{
		db:     db,
		logger: logger,
		server: &http.Server{
			Addr:              fmt.Sprintf("%s:%d", host, port),
			ReadHeaderTimeout: 10 * time.Second,
			ReadTimeout:       15 * time.Second,
			WriteTimeout:      30 * time.Second,
			IdleTimeout:       60 * time.Second,
		},
	}
}

// RouterDeps groups what SetupRouter wires into the router.
type RouterDeps struct {
	GateUseCase     accessUseCase.GateUseCase
	SyncHandler     *accessHTTP.SyncHandler
	AdminDecoder    service.TokenDecoder
	MetricsProvider *metrics.Provider
	PathLabeler     metrics.PathLabeler
	// Upstream receives page requests the gate lets through. Nil answers them with 404.
	Upstream http.Handler
}

// SetupRouter builds the gin engine.
//
// Middleware order: recovery, request id, request logging, HTTP metrics, CORS, then the page
// gate on every request. The gate exempts /api, /health and /ready, so the admin API is
// guarded separately by the bearer admin check and the per-IP rate limiter.
//
// ctx bounds background goroutines started by middleware.
func (s *Server) SetupRouter(ctx context.Context, cfg *config.Config, deps RouterDeps) {
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(requestid.New(requestid.WithGenerator(func() string {
		return uuid.Must(uuid.NewV7()).String()
	})))
	router.Use(CustomLoggerMiddleware(s.logger))

	if deps.MetricsProvider != nil {
		router.Use(metrics.HTTPMetricsMiddleware(
			deps.MetricsProvider.MeterProvider(),
			cfg.MetricsNamespace,
			deps.PathLabeler,
		))
	}

	if corsMiddleware := createCORSMiddleware(cfg.CORSEnabled, cfg.CORSAllowOrigins, s.logger); corsMiddleware != nil {
		router.Use(corsMiddleware)
	}

	router.Use(accessHTTP.GateMiddleware(deps.GateUseCase, cfg.AuthTokenCookie, s.logger))

	router.GET("/health", s.healthHandler)
	router.GET("/ready", s.readinessHandler)

	admin := router.Group("/api/admin")
	if cfg.RateLimitEnabled {
		admin.Use(accessHTTP.IPRateLimitMiddleware(ctx, cfg.RateLimitRequestsPerSec, cfg.RateLimitBurst, s.logger))
	}
	admin.Use(accessHTTP.AdminMiddleware(deps.AdminDecoder, cfg.AuthTokenCookie, s.logger))
	{
		admin.GET("/sync-roles", deps.SyncHandler.SyncRolesHandler)
	}

	router.NoRoute(s.pageHandler(deps.Upstream))

	s.router = router
}

// pageHandler forwards gated page requests to the web application.
func (s *Server) pageHandler(upstream http.Handler) gin.HandlerFunc {
	return func(c *gin.Context) {
		if upstream == nil {
			httputil.HandleErrorGin(c, apperrors.ErrNotFound, nil)
			return
		}
		upstream.ServeHTTP(c.Writer, c.Request)
	}
}

// Start serves until Shutdown is called.
func (s *Server) Start(ctx context.Context) error {
	if s.router == nil {
		return fmt.Errorf("router not configured")
	}
	s.server.Handler = s.router

	s.logger.Info("starting http server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// Shutdown gracefully shuts down the HTTP server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.server.Shutdown(ctx)
}

func (s *Server) healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

// readinessHandler reports ready only when the profile database answers a ping.
func (s *Server) readinessHandler(c *gin.Context) {
	if s.db == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	if err := s.db.PingContext(ctx); err != nil {
		s.logger.Warn("readiness check failed", slog.Any("error", err))
		c.JSON(http.StatusServiceUnavailable, gin.H{
			"status":     "not_ready",
			"components": gin.H{"database": "error"},
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":     "ready",
		"components": gin.H{"database": "ok"},
	})
}
