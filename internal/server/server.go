package server

import (
	"fmt"
	"net"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/nagusamecs/opennotes-desktop/host/internal/api/http"
	"github.com/nagusamecs/opennotes-desktop/host/internal/api/middleware"
	"github.com/nagusamecs/opennotes-desktop/host/internal/api/ws"
	"github.com/nagusamecs/opennotes-desktop/host/internal/dispatch"
	"github.com/nagusamecs/opennotes-desktop/host/internal/infrastructure/config"
	"github.com/nagusamecs/opennotes-desktop/host/internal/infrastructure/logging"
	"github.com/nagusamecs/opennotes-desktop/host/internal/infrastructure/monitoring"
	"github.com/nagusamecs/opennotes-desktop/host/internal/plugins/api"
	"github.com/nagusamecs/opennotes-desktop/host/internal/plugins/filesystem"
	"github.com/nagusamecs/opennotes-desktop/host/internal/plugins/httpclient"
	logplugin "github.com/nagusamecs/opennotes-desktop/host/internal/plugins/log"
	"github.com/nagusamecs/opennotes-desktop/host/internal/plugins/shell"
	"github.com/nagusamecs/opennotes-desktop/host/internal/plugins/store"
)

// Server wraps the bridge router and host dependencies
type Server struct {
	cfg      *config.Config
	router   *gin.Engine
	registry *dispatch.Registry
	logger   *logging.Logger
	metrics  *monitoring.Metrics
	shell    *shell.Provider
	dataDir  string
}

// NewServer creates a new host instance
func NewServer(cfg *config.Config) (*Server, error) {
	logger, err := logging.New(logging.Config{
		Level:       cfg.Logging.Level,
		Development: cfg.Logging.Development,
	})
	if err != nil {
		return nil, fmt.Errorf("construct logger: %w", err)
	}

	dataDir, err := cfg.Data.Resolve()
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	metrics := monitoring.NewMetrics()
	registry := dispatch.NewRegistry()

	shellProvider := shell.NewProvider(cfg.Shell, dataDir)

	plugins := []dispatch.Plugin{
		filesystem.NewProvider(dataDir),
		store.NewProvider(dataDir),
		shellProvider,
		httpclient.NewProvider(),
		api.NewProvider(cfg.Fetch, metrics),
	}
	if cfg.Logging.Development {
		plugins = append(plugins, logplugin.NewProvider(logger))
	}

	for _, plugin := range plugins {
		def := plugin.Definition()
		if err := registry.Register(plugin); err != nil {
			return nil, fmt.Errorf("register plugin %s: %w", def.ID, err)
		}
		logger.Info("plugin registered",
			zap.String("plugin", def.ID),
			zap.Int("tools", len(def.Tools)),
		)
	}
	metrics.SetPluginsRegistered(registry.Count())

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(cfg.CORS))
	if cfg.RateLimit.Enabled {
		router.Use(middleware.RateLimit(cfg.RateLimit))
	}

	handlers := apihttp.NewHandlers(registry, metrics, logger)
	wsHandler := ws.NewHandler(registry, metrics, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)
	router.GET("/plugins", handlers.Plugins)
	router.POST("/invoke", handlers.Invoke)
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/stream", wsHandler.HandleConnection)

	logger.Info("host initialized",
		zap.String("data_dir", dataDir),
		zap.Int("plugins", registry.Count()),
		zap.Bool("development", cfg.Logging.Development),
	)

	return &Server{
		cfg:      cfg,
		router:   router,
		registry: registry,
		logger:   logger,
		metrics:  metrics,
		shell:    shellProvider,
		dataDir:  dataDir,
	}, nil
}

// Run starts the bridge listener and blocks until it fails
func (s *Server) Run() error {
	addr := net.JoinHostPort(s.cfg.Server.Host, s.cfg.Server.Port)
	s.logger.Info("bridge listening", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close terminates shell sessions and flushes the logger
func (s *Server) Close() error {
	s.shell.Close()
	s.logger.Sync()
	return nil
}

// Logger exposes the host logger for the entry point
func (s *Server) Logger() *logging.Logger {
	return s.logger
}
