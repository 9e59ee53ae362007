// Package app provides the dependency injection container that assembles the gateway.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	stdhttp "net/http"
	"os"
	"sync"

	"github.com/clinicapp/accessgate/internal/access/domain"
	accessHTTP "github.com/clinicapp/accessgate/internal/access/http"
	"github.com/clinicapp/accessgate/internal/access/service"
	accessUseCase "github.com/clinicapp/accessgate/internal/access/usecase"
	"github.com/clinicapp/accessgate/internal/config"
	"github.com/clinicapp/accessgate/internal/database"
	"github.com/clinicapp/accessgate/internal/http"
	"github.com/clinicapp/accessgate/internal/metrics"
)

// Container holds all application dependencies. Components are created on first access and
// initialization errors are remembered, so a failing component fails the same way every time.
type Container struct {
	config *config.Config

	// Background context for goroutines owned by components (JWKS refresh, limiter cleanup).
	ctx    context.Context
	cancel context.CancelFunc

	// Infrastructure
	logger          *slog.Logger
	db              *sql.DB
	metricsProvider *metrics.Provider
	businessMetrics metrics.BusinessMetrics

	// Access services
	routeMatrix   *domain.RouteMatrix
	keeperService service.KeeperService
	tokenDecoder  service.TokenDecoder
	tokenSigner   service.TokenSigner

	// Repositories and stores
	profileRepository accessUseCase.ProfileRepository
	claimsStore       accessUseCase.ClaimsStore

	// Use Cases
	gateUseCase       accessUseCase.GateUseCase
	syncUseCase       accessUseCase.SyncUseCase
	tokenIssueUseCase accessUseCase.TokenIssueUseCase

	// Handlers
	syncHandler *accessHTTP.SyncHandler

	// Servers
	httpServer    *http.Server
	metricsServer *http.MetricsServer

	mu                    sync.Mutex
	loggerInit            sync.Once
	dbInit                sync.Once
	metricsProviderInit   sync.Once
	businessMetricsInit   sync.Once
	routeMatrixInit       sync.Once
	keeperServiceInit     sync.Once
	tokenDecoderInit      sync.Once
	tokenSignerInit       sync.Once
	profileRepositoryInit sync.Once
	claimsStoreInit       sync.Once
	gateUseCaseInit       sync.Once
	syncUseCaseInit       sync.Once
	tokenIssueUseCaseInit sync.Once
	syncHandlerInit       sync.Once
	httpServerInit        sync.Once
	metricsServerInit     sync.Once
	initErrors            map[string]error
}

// NewContainer creates a new dependency injection container with the provided configuration.
func NewContainer(cfg *config.Config) *Container {
	ctx, cancel := context.WithCancel(context.Background())
	return &Container{
		config:     cfg,
		ctx:        ctx,
		cancel:     cancel,
		initErrors: make(map[string]error),
	}
}

// Config returns the application configuration.
func (c *Container) Config() *config.Config {
	return c.config
}

// Logger returns the JSON logger configured from LOG_LEVEL.
func (c *Container) Logger() *slog.Logger {
	c.loggerInit.Do(func() {
		c.logger = c.initLogger()
	})
	return c.logger
}

// DB returns the database connection holding user profiles and, for the database claims
// store, identity claims.
func (c *Container) DB() (*sql.DB, error) {
	var err error
	c.dbInit.Do(func() {
		c.db, err = c.initDB()
		if err != nil {
			c.initErrors["db"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["db"]; exists {
		return nil, storedErr
	}
	return c.db, nil
}

// MetricsProvider returns the metrics provider, or nil when metrics are disabled.
func (c *Container) MetricsProvider() (*metrics.Provider, error) {
	var err error
	c.metricsProviderInit.Do(func() {
		c.metricsProvider, err = c.initMetricsProvider()
		if err != nil {
			c.initErrors["metricsProvider"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsProvider"]; exists {
		return nil, storedErr
	}
	return c.metricsProvider, nil
}

// BusinessMetrics returns the business metrics recorder; a no-op one when metrics are disabled.
func (c *Container) BusinessMetrics() (metrics.BusinessMetrics, error) {
	var err error
	c.businessMetricsInit.Do(func() {
		c.businessMetrics, err = c.initBusinessMetrics()
		if err != nil {
			c.initErrors["businessMetrics"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["businessMetrics"]; exists {
		return nil, storedErr
	}
	return c.businessMetrics, nil
}

// HTTPServer returns the gateway server with its router installed.
func (c *Container) HTTPServer() (*http.Server, error) {
	var err error
	c.httpServerInit.Do(func() {
		c.httpServer, err = c.initHTTPServer()
		if err != nil {
			c.initErrors["httpServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["httpServer"]; exists {
		return nil, storedErr
	}
	return c.httpServer, nil
}

// MetricsServer returns the metrics server, or nil when metrics are disabled.
func (c *Container) MetricsServer() (*http.MetricsServer, error) {
	var err error
	c.metricsServerInit.Do(func() {
		c.metricsServer, err = c.initMetricsServer()
		if err != nil {
			c.initErrors["metricsServer"] = err
		}
	})
	if err != nil {
		return nil, err
	}
	if storedErr, exists := c.initErrors["metricsServer"]; exists {
		return nil, storedErr
	}
	return c.metricsServer, nil
}

// Shutdown stops background goroutines and releases every initialized resource.
func (c *Container) Shutdown(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.cancel()

	var shutdownErrors []error

	if c.httpServer != nil {
		if err := c.httpServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("http server shutdown: %w", err))
		}
	}

	if c.metricsServer != nil {
		if err := c.metricsServer.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics server shutdown: %w", err))
		}
	}

	if c.metricsProvider != nil {
		if err := c.metricsProvider.Shutdown(ctx); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("metrics provider shutdown: %w", err))
		}
	}

	if c.db != nil {
		if err := c.db.Close(); err != nil {
			shutdownErrors = append(shutdownErrors, fmt.Errorf("database close: %w", err))
		}
	}

	return errors.Join(shutdownErrors...)
}

func (c *Container) initLogger() *slog.Logger {
	var logLevel slog.Level
	switch c.config.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	default:
		logLevel = slog.LevelInfo
	}

	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})

	return slog.New(handler)
}

func (c *Container) initDB() (*sql.DB, error) {
	db, err := database.Connect(database.Config{
		Driver:             c.config.DBDriver,
		ConnectionString:   c.config.DBConnectionString,
		MaxOpenConnections: c.config.DBMaxOpenConnections,
		MaxIdleConnections: c.config.DBMaxIdleConnections,
		ConnMaxLifetime:    c.config.DBConnMaxLifetime,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	return db, nil
}

func (c *Container) initMetricsProvider() (*metrics.Provider, error) {
	if !c.config.MetricsEnabled {
		return nil, nil
	}
	provider, err := metrics.NewProvider(c.config.MetricsNamespace)
	if err != nil {
		return nil, fmt.Errorf("failed to create metrics provider: %w", err)
	}
	return provider, nil
}

func (c *Container) initBusinessMetrics() (metrics.BusinessMetrics, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for business metrics: %w", err)
	}
	if provider == nil {
		return metrics.NewNoOpBusinessMetrics(), nil
	}
	return metrics.NewBusinessMetrics(provider.MeterProvider(), c.config.MetricsNamespace)
}

func (c *Container) initHTTPServer() (*http.Server, error) {
	logger := c.Logger()

	db, err := c.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database for http server: %w", err)
	}

	gateUseCase, err := c.GateUseCase()
	if err != nil {
		return nil, fmt.Errorf("failed to get gate use case for http server: %w", err)
	}

	syncHandler, err := c.SyncHandler()
	if err != nil {
		return nil, fmt.Errorf("failed to get sync handler for http server: %w", err)
	}

	decoder, err := c.TokenDecoder()
	if err != nil {
		return nil, fmt.Errorf("failed to get token decoder for http server: %w", err)
	}

	metricsProvider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for http server: %w", err)
	}

	matrix, err := c.RouteMatrix()
	if err != nil {
		return nil, fmt.Errorf("failed to get route matrix for http server: %w", err)
	}

	var upstream stdhttp.Handler
	if c.config.UpstreamURL != "" {
		upstream, err = http.NewUpstreamProxy(c.config.UpstreamURL, logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create upstream proxy: %w", err)
		}
	}

	server := http.NewServer(db, c.config.ServerHost, c.config.ServerPort, logger)
	server.SetupRouter(c.ctx, c.config, http.RouterDeps{
		GateUseCase:     gateUseCase,
		SyncHandler:     syncHandler,
		AdminDecoder:    decoder,
		MetricsProvider: metricsProvider,
		PathLabeler:     matrixPathLabeler(matrix),
		Upstream:        upstream,
	})

	return server, nil
}

func (c *Container) initMetricsServer() (*http.MetricsServer, error) {
	provider, err := c.MetricsProvider()
	if err != nil {
		return nil, fmt.Errorf("failed to get metrics provider for metrics server: %w", err)
	}
	if provider == nil {
		return nil, nil
	}
	return http.NewMetricsServer(c.config.ServerHost, c.config.MetricsPort, c.Logger(), provider), nil
}

// matrixPathLabeler labels page requests with the matched rule prefix.
func matrixPathLabeler(matrix *domain.RouteMatrix) metrics.PathLabeler {
	return func(path string) string {
		if rule, ok := matrix.Match(path); ok {
			return rule.Prefix
		}
		return "unmatched"
	}
}
