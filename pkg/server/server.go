package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jakechorley/workforce-scheduler/internal/config"
	"github.com/jakechorley/workforce-scheduler/pkg/core/scheduler"
	"github.com/jakechorley/workforce-scheduler/pkg/core/services"
	"github.com/jakechorley/workforce-scheduler/pkg/runlock"
)

const shutdownTimeout = 10 * time.Second

// Store is everything the HTTP handlers read and write
type Store interface {
	services.AutoScheduleStore
	services.AuditLogStore
}

// Dependencies are the collaborators shared by every request
type Dependencies struct {
	Cfg      *config.Config
	Database Store
	Oracle   scheduler.ComplianceOracle

	// Locker is optional; runs are not serialised without it
	Locker runlock.Locker

	Logger *zap.Logger
}

// Server is the scheduling HTTP API
type Server struct {
	deps   Dependencies
	engine *gin.Engine
}

// New builds the router. gin's mode is left to the caller.
func New(deps Dependencies) *Server {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	s := &Server{deps: deps, engine: gin.New()}
	s.engine.Use(gin.Recovery(), requestLogger(deps.Logger))

	corsConfig := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}
	if origins := deps.Cfg.Server.AllowedOrigins; len(origins) > 0 {
		corsConfig.AllowOrigins = origins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	s.engine.Use(cors.New(corsConfig))

	s.engine.GET("/healthz", s.health)

	api := s.engine.Group("/api")
	{
		org := api.Group("/organizations/:organizationId")
		org.POST("/auto-schedule", s.autoSchedule)
		org.GET("/templates", s.listTemplates)

		api.GET("/audit/verify", s.verifyAudit)
	}

	return s
}

// Handler exposes the router, mainly for tests
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves on addr until ctx is cancelled, then drains in-flight requests
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.deps.Logger.Info("HTTP server listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("http server failed: %w", err)
	case <-ctx.Done():
	}

	s.deps.Logger.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down http server: %w", err)
	}
	return nil
}

// requestLogger logs one line per request with zap in place of gin's default logger
func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
		}
		if len(c.Errors) > 0 {
			fields = append(fields, zap.String("errors", c.Errors.String()))
		}

		switch {
		case c.Writer.Status() >= http.StatusInternalServerError:
			logger.Error("Request failed", fields...)
		case c.Writer.Status() >= http.StatusBadRequest:
			logger.Warn("Request rejected", fields...)
		default:
			logger.Info("Request handled", fields...)
		}
	}
}
