package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/alnah/go-blockforge/internal/config"
)

// envConfig holds configuration from environment variables.
// Provides CI/CD-friendly overrides without requiring YAML files.
type envConfig struct {
	ConfigPath  string        // BLOCKFORGE_CONFIG: config file name or path
	Timeout     time.Duration // BLOCKFORGE_TIMEOUT: snapshot timeout
	Format      string        // BLOCKFORGE_FORMAT: html, png, pdf
	OutputDir   string        // BLOCKFORGE_OUTPUT_DIR: default output directory
	TemplateDir string        // BLOCKFORGE_TEMPLATE_DIR: component overrides
	Addr        string        // BLOCKFORGE_ADDR: server listen address
	Workers     int           // BLOCKFORGE_WORKERS: parallel workers
}

// knownEnvVars lists valid BLOCKFORGE_* environment variables.
// Used to detect typos and warn users about unknown variables.
var knownEnvVars = map[string]bool{
	"BLOCKFORGE_CONFIG":        true,
	"BLOCKFORGE_TIMEOUT":       true,
	"BLOCKFORGE_FORMAT":        true,
	"BLOCKFORGE_OUTPUT_DIR":    true,
	"BLOCKFORGE_TEMPLATE_DIR":  true,
	"BLOCKFORGE_ADDR":          true,
	"BLOCKFORGE_WORKERS":       true,
	"BLOCKFORGE_CONTAINER":     true, // read by doctor
	"BLOCKFORGE_LOG_REDACTION": true, // read by the logger
}

// loadEnvConfig reads the BLOCKFORGE_* variables. Malformed numbers and
// durations are ignored.
func loadEnvConfig(getenv func(string) string) *envConfig {
	cfg := &envConfig{
		ConfigPath:  getenv("BLOCKFORGE_CONFIG"),
		Format:      getenv("BLOCKFORGE_FORMAT"),
		OutputDir:   getenv("BLOCKFORGE_OUTPUT_DIR"),
		TemplateDir: getenv("BLOCKFORGE_TEMPLATE_DIR"),
		Addr:        getenv("BLOCKFORGE_ADDR"),
	}

	if timeout := getenv("BLOCKFORGE_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil && d > 0 {
			cfg.Timeout = d
		}
	}

	if workers := getenv("BLOCKFORGE_WORKERS"); workers != "" {
		if w, err := strconv.Atoi(workers); err == nil && w > 0 {
			cfg.Workers = w
		}
	}

	return cfg
}

// warnUnknownEnvVars prints a warning for each unrecognized BLOCKFORGE_*
// variable in environ.
func warnUnknownEnvVars(w io.Writer, environ []string) {
	for _, env := range environ {
		if !strings.HasPrefix(env, "BLOCKFORGE_") {
			continue
		}
		name, _, _ := strings.Cut(env, "=")
		if !knownEnvVars[name] {
			fmt.Fprintf(w, "warning: unknown environment variable %s (typo?)\n", name)
		}
	}
}

// applyEnvConfig overlays set variables onto cfg.
// Precedence: CLI flags > env vars > config file > defaults
// (CLI flags are applied later via mergeXFlags).
func applyEnvConfig(env *envConfig, cfg *config.Config) {
	if env.Timeout > 0 {
		cfg.Preview.Timeout = env.Timeout.String()
	}
	if env.Format != "" {
		cfg.Preview.Format = env.Format
	}
	if env.OutputDir != "" {
		cfg.Output.DefaultDir = env.OutputDir
	}
	if env.TemplateDir != "" {
		cfg.Render.TemplateDir = env.TemplateDir
	}
	if env.Addr != "" {
		cfg.Server.Addr = env.Addr
	}
}
