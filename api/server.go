// Package api serves the AMM sandbox over HTTP: pool and position queries,
// price quotes, and paper-trading transactions executed one per block.
package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"cosmossdk.io/log"
	"github.com/gin-gonic/gin"
	"github.com/rs/cors"

	"github.com/paw-chain/pawswap/pkg/sandbox"
	"github.com/paw-chain/pawswap/x/amm/keeper"
	"github.com/paw-chain/pawswap/x/amm/types"
)

// Server is the sandbox HTTP API
type Server struct {
	router    *gin.Engine
	handler   http.Handler
	config    *Config
	logger    log.Logger
	sandbox   *sandbox.Sandbox
	msgServer types.MsgServer
	wsHub     *WebSocketHub
}

// Config holds server configuration
type Config struct {
	Host            string        `mapstructure:"host"`
	Port            string        `mapstructure:"port"`
	CORSOrigins     []string      `mapstructure:"cors_origins"`
	RateLimitRPS    int           `mapstructure:"rate_limit_rps"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// FaucetEnabled exposes POST /api/faucet, which mints coins to any address.
	FaucetEnabled bool `mapstructure:"faucet_enabled"`
	// FaucetMaxAmount caps each coin of a single faucet request. Zero disables the cap.
	FaucetMaxAmount int64 `mapstructure:"faucet_max_amount"`
}

// DefaultConfig returns default server configuration
func DefaultConfig() *Config {
	return &Config{
		Host:            "0.0.0.0",
		Port:            "5000",
		CORSOrigins:     []string{"http://localhost:3000", "http://localhost:8080"},
		RateLimitRPS:    100,
		ReadTimeout:     15 * time.Second,
		WriteTimeout:    15 * time.Second,
		ShutdownTimeout: 10 * time.Second,
		FaucetEnabled:   true,
		FaucetMaxAmount: 1_000_000_000,
	}
}

// NewServer creates a new API server over sb
func NewServer(sb *sandbox.Sandbox, config *Config, logger log.Logger) (*Server, error) {
	if sb == nil {
		return nil, errors.New("sandbox is required")
	}
	if config == nil {
		config = DefaultConfig()
	}
	if config.RateLimitRPS <= 0 {
		return nil, fmt.Errorf("rate limit must be positive, got %d", config.RateLimitRPS)
	}

	s := &Server{
		config:    config,
		logger:    logger.With("module", "api"),
		sandbox:   sb,
		msgServer: keeper.NewMsgServerImpl(sb.Keeper()),
	}
	s.wsHub = NewWebSocketHub(s.logger, config.CORSOrigins)
	s.setupRouter()
	return s, nil
}

// setupRouter configures the Gin router with all routes and middleware
func (s *Server) setupRouter() {
	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()

	// Recovery first so it wraps everything else.
	s.router.Use(RecoveryMiddleware(s.logger))
	s.router.Use(SecurityHeadersMiddleware())
	s.router.Use(RequestSizeLimitMiddleware(MaxRequestSize))
	s.router.Use(RequestIDMiddleware())
	s.router.Use(LoggerMiddleware(s.logger))
	s.router.Use(RateLimitMiddleware(s.config.RateLimitRPS))

	s.router.GET("/health", s.healthCheck)
	s.registerRoutes()

	s.handler = cors.New(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders:   []string{"Content-Type", "X-Request-ID"},
		ExposedHeaders:   []string{"X-Request-ID"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(s.router)
}

// Handler returns the root HTTP handler, CORS included
func (s *Server) Handler() http.Handler {
	return s.handler
}

// healthCheck returns server health status
func (s *Server) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"height":    s.sandbox.Height(),
		"timestamp": time.Now().Unix(),
	})
}

// Start serves until ctx is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	go s.wsHub.Run(ctx)

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", s.config.Host, s.config.Port),
		Handler:           s.handler,
		ReadTimeout:       s.config.ReadTimeout,
		ReadHeaderTimeout: s.config.ReadTimeout,
		WriteTimeout:      s.config.WriteTimeout,
		MaxHeaderBytes:    1 << 20,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting API server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.config.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	return nil
}
