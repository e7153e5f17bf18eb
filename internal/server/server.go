package server

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/meet0129/Travion.ai-sub000/internal/app/domain/discovery"
	"github.com/meet0129/Travion.ai-sub000/internal/app/domain/places"
	"github.com/meet0129/Travion.ai-sub000/internal/app/domain/pool"
	"github.com/meet0129/Travion.ai-sub000/internal/pkg/cache"
	"github.com/meet0129/Travion.ai-sub000/internal/pkg/config"
)

// Server holds the dependencies for the HTTP server
type Server struct {
	cfg    *config.Config
	logger *zap.Logger
	router http.Handler

	caches    *cache.CacheManager
	discovery *discovery.ServiceImpl
	pool      *pool.Manager
}

// New creates a new Server instance with all dependencies
func New(cfg *config.Config, logger *zap.Logger) (*Server, error) {
	gateway := places.NewGoogleGateway(
		cfg.Places.BaseURL,
		cfg.Places.APIKey,
		cfg.Places.RequestTimeout,
		logger,
	)

	caches := cache.NewCacheManager(cfg.Discovery.AnchorCacheTTL, cfg.Discovery.ResultCacheTTL, logger)
	pipeline := discovery.NewPipeline(cfg.Places.BaseURL, cfg.Places.APIKey)
	discoveryService := discovery.NewService(gateway, pipeline, caches, logger)
	poolManager := pool.NewManager(discoveryService, cfg.Discovery.PoolTargetSize, cfg.Discovery.SessionTTL, logger)

	logger.Info("Discovery engine wired",
		zap.String("places_base_url", cfg.Places.BaseURL),
		zap.Int("pool_target", cfg.Discovery.PoolTargetSize))

	return &Server{
		cfg:       cfg,
		logger:    logger,
		caches:    caches,
		discovery: discoveryService,
		pool:      poolManager,
	}, nil
}

// HTTPServer creates and configures the HTTP server
func (s *Server) HTTPServer() *http.Server {
	return &http.Server{
		Addr:         ":" + s.cfg.ServerPort,
		Handler:      s.router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// SetRouter sets the HTTP router/handler
func (s *Server) SetRouter(router http.Handler) {
	s.router = router
}

// DiscoveryService returns the discovery engine service
func (s *Server) DiscoveryService() *discovery.ServiceImpl {
	return s.discovery
}

// PoolManager returns the suggestion pool manager
func (s *Server) PoolManager() *pool.Manager {
	return s.pool
}

// GetLogger returns the logger instance
func (s *Server) GetLogger() *zap.Logger {
	return s.logger
}

// GetConfig returns the configuration
func (s *Server) GetConfig() *config.Config {
	return s.cfg
}

// Close releases server resources
func (s *Server) Close() {
	s.caches.ClearAll()
}
