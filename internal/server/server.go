// Package server exposes the content pipeline as a stateless JSON API.
//
// Every request carries the whole document state:
//
//	{"blocks": [...], "store": [...]}
//
// and every state-changing endpoint answers with the new state plus fresh
// component suggestions. Errors use a single envelope:
//
//	{"error": {"message": "...", "code": "invalid_apply"}}
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"slices"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/alnah/go-blockforge"
	"github.com/alnah/go-blockforge/internal/logger"
	"github.com/alnah/go-blockforge/internal/preview"
)

// Defaults for Config fields left zero.
const (
	DefaultAddr         = "127.0.0.1:8080"
	DefaultMaxBodyBytes = 4 << 20
	shutdownGrace       = 5 * time.Second
	readHeaderTimeout   = 10 * time.Second
)

// Config configures the server.
type Config struct {
	Addr           string
	AllowedOrigins []string // "*" or empty allows any origin
	MaxBodyBytes   int64
	Page           preview.Options
	Logger         *logger.Logger
}

// Server is the HTTP API.
type Server struct {
	engine *gin.Engine
	addr   string
	log    *logger.Logger
}

// New builds the router for d.
func New(d *blockforge.Designer, cfg Config) *Server {
	if cfg.Addr == "" {
		cfg.Addr = DefaultAddr
	}
	if cfg.MaxBodyBytes <= 0 {
		cfg.MaxBodyBytes = DefaultMaxBodyBytes
	}
	if cfg.Logger == nil {
		cfg.Logger = logger.Nop()
	}
	return &Server{
		engine: newRouter(NewHandler(d, cfg.Page), cfg),
		addr:   cfg.Addr,
		log:    cfg.Logger,
	}
}

func newRouter(h *Handler, cfg Config) *gin.Engine {
	router := gin.New()
	router.Use(recovery(cfg.Logger), requestLogger(cfg.Logger))
	router.Use(cors.New(corsConfig(cfg.AllowedOrigins)))

	router.GET("/healthcheck", HealthCheck)

	api := router.Group("/api")
	api.Use(limitBody(cfg.MaxBodyBytes))
	{
		api.GET("/components", h.Components)
		api.POST("/parse", h.Parse)
		api.POST("/paste", h.Paste)
		api.POST("/edit", h.Edit)
		api.POST("/suggest", h.Suggest)
		api.POST("/render", h.Render)
		api.POST("/editor", h.Editor)
		api.POST("/apply", h.Apply)
		api.POST("/remove", h.Remove)
		api.POST("/indent", h.Indent)
		api.POST("/readability", h.Readability)
	}

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders: []string{"Content-Type", "X-Requested-With"},
		MaxAge:       12 * time.Hour,
	}
	if len(origins) == 0 || slices.Contains(origins, "*") {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

// Handler returns the router as an http.Handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run listens on the configured address until ctx is cancelled, then
// shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listening on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is cancelled.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.engine,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info("listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownGrace)
	defer cancel()
	s.log.Info("shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
