// Package server exposes matching, filtering and pattern subscriptions over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/twinfer/keyglob/filter"
	"github.com/twinfer/keyglob/internal/config"
	"github.com/twinfer/keyglob/pubsub"
)

// Server is the HTTP API.
type Server struct {
	log    *slog.Logger
	limits filter.Limits
	expr   filter.Matcher // nil when no expression is configured
	reg    *pubsub.Registry
	router *gin.Engine
}

// New builds the router for cfg. Subscriptions are kept in reg.
func New(cfg *config.Config, log *slog.Logger, reg *pubsub.Registry) (*Server, error) {
	s := &Server{
		log:    log.With("component", "http"),
		limits: cfg.FilterLimits(),
		reg:    reg,
	}

	expr := cfg.Expr()
	if !expr.Empty() {
		m, err := expr.ParseWithLimits(s.limits)
		if err != nil {
			return nil, err
		}
		s.expr = filter.WithCache(m)
	}

	switch cfg.Server.Mode {
	case "debug":
		gin.SetMode(gin.DebugMode)
	case "test":
		gin.SetMode(gin.TestMode)
	default:
		gin.SetMode(gin.ReleaseMode)
	}

	s.router = gin.New()
	s.router.Use(gin.Recovery())
	s.router.Use(requestLogger(s.log))
	s.routes()

	return s, nil
}

func (s *Server) routes() {
	s.router.GET("/health", s.health)

	api := s.router.Group("/api")
	{
		api.POST("/match", s.match)
		api.POST("/filter", s.filter)

		api.GET("/channels", s.listChannels)
		channel := api.Group("/channels/:channel")
		{
			channel.GET("/patterns", s.listPatterns)
			channel.POST("/subscriptions", s.subscribe)
			channel.POST("/publish", s.publish)
		}

		subs := api.Group("/subscriptions/:id")
		{
			subs.GET("/messages", s.messages)
			subs.DELETE("", s.unsubscribe)
		}
	}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func requestLogger(log *slog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		level := slog.LevelDebug
		if c.Writer.Status() >= http.StatusInternalServerError {
			level = slog.LevelError
		}
		log.Log(c.Request.Context(), level, "request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start),
		)
	}
}
