package main

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/alnah/go-blockforge/internal/config"
	"github.com/alnah/go-blockforge/internal/logger"
	"github.com/alnah/go-blockforge/internal/server"
)

// runServeCmd starts the HTTP API and blocks until ctx is cancelled.
func runServeCmd(ctx context.Context, args []string, env *Environment) error {
	flags, rest, err := parseServeFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(rest) > 0 {
		return fmt.Errorf("%w: serve takes no arguments, got %v", ErrUsage, rest)
	}

	cfg, err := loadConfig(flags.common, loadEnvConfig(env.Getenv))
	if err != nil {
		return err
	}
	mergeDesignFlags(flags.design, cfg)
	mergeServeFlags(flags, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}

	log, err := serverLogger(flags.common)
	if err != nil {
		return err
	}
	defer log.Sync()

	d, err := newDesigner(cfg, log)
	if err != nil {
		return err
	}

	gin.SetMode(gin.ReleaseMode)
	srv := server.New(d, server.Config{
		Addr:           cfg.Server.Addr,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		MaxBodyBytes:   flags.maxBody,
		Page:           pageOptions(cfg, ""),
		Logger:         log,
	})

	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Serving on http://%s (Ctrl+C to stop)\n", cfg.Server.Addr)
	}
	return srv.Run(ctx)
}

// mergeServeFlags merges server flags into cfg. CLI values win.
func mergeServeFlags(f *serveFlags, cfg *config.Config) {
	if f.addr != "" {
		cfg.Server.Addr = f.addr
	}
	if len(f.origins) > 0 {
		cfg.Server.AllowedOrigins = f.origins
	}
}

// serverLogger logs requests as JSON at info level, or to the console at
// debug level with --verbose. --quiet silences it.
func serverLogger(common commonFlags) (*logger.Logger, error) {
	switch {
	case common.quiet:
		return logger.Nop(), nil
	case common.verbose:
		return logger.New("development")
	default:
		return logger.New("production")
	}
}
