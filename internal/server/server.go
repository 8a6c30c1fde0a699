package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/citycare/citycare/internal/bootstrap"
	"github.com/citycare/citycare/internal/config"
	"github.com/citycare/citycare/internal/db"
)

// Server represents the HTTP server and its dependencies.
type Server struct {
	config *config.Config
	router *gin.Engine
	db     *db.PostgresDB
	redis  *redis.Client
	http   *http.Server
	logger zerolog.Logger
}

// NewServer creates and configures a new server instance.
func NewServer() (*Server, error) {
	cfg, lgr, err := bootstrap.LoadConfigAndSetupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	database, err := bootstrap.SetupDatabase(cfg, lgr)
	if err != nil {
		return nil, fmt.Errorf("failed to setup database: %w", err)
	}

	redisClient := bootstrap.SetupRedis(cfg, lgr)

	deps, err := bootstrap.BuildDependencies(cfg, database, redisClient, lgr)
	if err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to build dependencies: %w", err)
	}

	router := bootstrap.SetupRouter(cfg, deps, lgr)

	srv := &Server{
		config: cfg,
		router: router,
		db:     database,
		redis:  redisClient,
		logger: lgr,
	}

	if err := srv.setupStaticFileServing(); err != nil {
		database.Close()
		return nil, err
	}

	srv.http = &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return srv, nil
}

func (s *Server) setupStaticFileServing() error {
	storagePath := s.config.Server.StoragePath
	if err := os.MkdirAll(storagePath, 0o755); err != nil {
		s.logger.Error().Err(err).Str("path", storagePath).Msg("Failed to create storage directory")
		return fmt.Errorf("failed to create storage directory: %w", err)
	}
	s.router.Static("/uploads", storagePath)
	s.logger.Info().Str("path", storagePath).Msg("Serving uploaded files from /uploads")
	return nil
}

// Run starts the HTTP server and blocks until shutdown.
func (s *Server) Run() error {
	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info().Str("port", s.config.Server.Port).Msg("Starting server")
		if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		s.logger.Info().Str("signal", sig.String()).Msg("Shutdown signal received")
		return s.Shutdown()
	}
}

// Shutdown gracefully stops the server and closes resources.
func (s *Server) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.http.Shutdown(ctx); err != nil {
		s.logger.Error().Err(err).Msg("Server forced to shutdown")
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			s.logger.Warn().Err(err).Msg("Failed to close redis client")
		}
	}

	s.db.Close()
	s.logger.Info().Msg("Server exited gracefully")
	return nil
}
