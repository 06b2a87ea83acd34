// Package config loads and validates YAML configuration for the CLI and
// the HTTP server.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alnah/go-blockforge/internal/fileutil"
	"github.com/alnah/go-blockforge/internal/preview"
	"github.com/alnah/go-blockforge/internal/readability"
	"github.com/alnah/go-blockforge/internal/render"
	"github.com/alnah/go-blockforge/internal/yamlutil"
)

// Sentinel errors for config operations.
var (
	ErrConfigNotFound  = errors.New("config file not found")
	ErrEmptyConfigName = errors.New("config name cannot be empty")
	ErrConfigParse     = errors.New("failed to parse config")
	ErrFieldTooLong    = errors.New("field exceeds maximum length")
	ErrOutOfRange      = errors.New("value out of range")
	ErrInvalidValue    = errors.New("invalid value")
)

// appDir is the directory name under the user config directory.
const appDir = "go-blockforge"

// Field length limits.
const (
	MaxPathLength   = 4096
	MaxIconLength   = 64
	MaxColourLength = 20
	MaxAddrLength   = 256
	MaxURLLength    = 2048
	MaxTitleLength  = 200
	MaxLangLength   = 35 // BCP 47 upper bound in practice
	MaxOrigins      = 32
)

// Numeric ranges. Zero means "use the default" where allowed.
const (
	MinTabTitle      = 5
	MaxTabTitle      = 200
	MinWordsPerMin   = 50
	MaxWordsPerMin   = 1000
	MinViewportWidth = 320
	MaxViewportWidth = 3840
	MaxTimeout       = 10 * time.Minute
)

// Config holds all settings.
type Config struct {
	Render      RenderConfig      `yaml:"render"`
	Readability ReadabilityConfig `yaml:"readability"`
	Preview     PreviewConfig     `yaml:"preview"`
	Server      ServerConfig      `yaml:"server"`
	Output      OutputConfig      `yaml:"output"`
}

// RenderConfig tunes the HTML generator.
type RenderConfig struct {
	TabTitleMax int    `yaml:"tabTitleMax"` // rune limit for tab titles
	Icon        string `yaml:"icon"`        // default icon-list icon
	Colour      string `yaml:"colour"`      // default icon-list colour, hex or colour word
	TemplateDir string `yaml:"templateDir"` // component overrides (empty = built-in only)
}

// ReadabilityConfig tunes the analyzer.
type ReadabilityConfig struct {
	WordsPerMinute int `yaml:"wordsPerMinute"`
}

// PreviewConfig tunes the standalone page and browser snapshots.
type PreviewConfig struct {
	Timeout       string `yaml:"timeout"` // Go duration, e.g. "30s"
	ViewportWidth int    `yaml:"viewportWidth"`
	Format        string `yaml:"format"` // html, png or pdf
	Title         string `yaml:"title"`
	Lang          string `yaml:"lang"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowedOrigins"`
}

// OutputConfig defines output destination options.
type OutputConfig struct {
	DefaultDir string `yaml:"defaultDir"` // empty = next to the input
}

// TimeoutDuration parses Preview.Timeout. An empty value yields the
// preview default.
func (p PreviewConfig) TimeoutDuration() (time.Duration, error) {
	if p.Timeout == "" {
		return preview.DefaultTimeout, nil
	}
	d, err := time.ParseDuration(p.Timeout)
	if err != nil {
		return 0, fmt.Errorf("%w: preview.timeout %q: %v", ErrInvalidValue, p.Timeout, err)
	}
	return d, nil
}

// Validate checks lengths, ranges and enumerations. It is nil-safe and is
// called by LoadConfig.
func (c *Config) Validate() error {
	if c == nil {
		return nil
	}

	lengths := []struct {
		field string
		value string
		max   int
	}{
		{"render.icon", c.Render.Icon, MaxIconLength},
		{"render.colour", c.Render.Colour, MaxColourLength},
		{"render.templateDir", c.Render.TemplateDir, MaxPathLength},
		{"preview.title", c.Preview.Title, MaxTitleLength},
		{"preview.lang", c.Preview.Lang, MaxLangLength},
		{"server.addr", c.Server.Addr, MaxAddrLength},
		{"output.defaultDir", c.Output.DefaultDir, MaxPathLength},
	}
	for _, l := range lengths {
		if err := validateFieldLength(l.field, l.value, l.max); err != nil {
			return err
		}
	}

	if err := validateRange("render.tabTitleMax", c.Render.TabTitleMax, MinTabTitle, MaxTabTitle); err != nil {
		return err
	}
	if c.Render.Icon != "" && !render.ValidIcon(c.Render.Icon) {
		return fmt.Errorf("%w: render.icon %q", ErrInvalidValue, c.Render.Icon)
	}
	if c.Render.Colour != "" && !render.ValidColour(c.Render.Colour) {
		return fmt.Errorf("%w: render.colour %q (hex like #198754 or a colour word)", ErrInvalidValue, c.Render.Colour)
	}

	if err := validateRange("readability.wordsPerMinute", c.Readability.WordsPerMinute, MinWordsPerMin, MaxWordsPerMin); err != nil {
		return err
	}

	d, err := c.Preview.TimeoutDuration()
	if err != nil {
		return err
	}
	if d <= 0 || d > MaxTimeout {
		return fmt.Errorf("%w: preview.timeout must be in (0, %s], got %s", ErrOutOfRange, MaxTimeout, d)
	}
	if err := validateRange("preview.viewportWidth", c.Preview.ViewportWidth, MinViewportWidth, MaxViewportWidth); err != nil {
		return err
	}
	if c.Preview.Format != "" {
		if _, err := preview.ParseFormat(c.Preview.Format); err != nil {
			return fmt.Errorf("preview.format: %w", err)
		}
	}

	if len(c.Server.AllowedOrigins) > MaxOrigins {
		return fmt.Errorf("%w: server.allowedOrigins has %d entries (max %d)", ErrOutOfRange, len(c.Server.AllowedOrigins), MaxOrigins)
	}
	for i, o := range c.Server.AllowedOrigins {
		field := fmt.Sprintf("server.allowedOrigins[%d]", i)
		if err := validateFieldLength(field, o, MaxURLLength); err != nil {
			return err
		}
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return fmt.Errorf("%w: %s %q (must be * or an http(s) origin)", ErrInvalidValue, field, o)
		}
	}

	return nil
}

// validateFieldLength checks if a field exceeds its maximum allowed length.
func validateFieldLength(fieldName, value string, maxLength int) error {
	if len(value) > maxLength {
		return fmt.Errorf("%w: %s (%d chars, max %d)", ErrFieldTooLong, fieldName, len(value), maxLength)
	}
	return nil
}

// validateRange accepts zero (unset) or a value within [lo, hi].
func validateRange(fieldName string, v, lo, hi int) error {
	if v == 0 || (v >= lo && v <= hi) {
		return nil
	}
	return fmt.Errorf("%w: %s must be between %d and %d, got %d", ErrOutOfRange, fieldName, lo, hi, v)
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Render: RenderConfig{
			TabTitleMax: 30,
			Icon:        render.DefaultIcon,
			Colour:      render.DefaultColour,
		},
		Readability: ReadabilityConfig{WordsPerMinute: readability.DefaultWordsPerMinute},
		Preview: PreviewConfig{
			Timeout:       preview.DefaultTimeout.String(),
			ViewportWidth: preview.DefaultViewportWidth,
			Format:        string(preview.FormatHTML),
			Title:         preview.DefaultTitle,
			Lang:          preview.DefaultLang,
		},
		Server: ServerConfig{
			Addr:           "127.0.0.1:8080",
			AllowedOrigins: []string{"*"},
		},
	}
}

// LoadConfig loads configuration from a file path or config name.
// If nameOrPath contains a path separator, it's treated as a file path.
// Otherwise, it's treated as a config name and searched in standard
// locations. Fields absent from the file keep their DefaultConfig value.
// Returns an error if the file is not found (no silent fallback).
func LoadConfig(nameOrPath string) (*Config, error) {
	if nameOrPath == "" {
		return nil, ErrEmptyConfigName
	}

	configPath := nameOrPath
	if !fileutil.IsFilePath(nameOrPath) {
		var err error
		configPath, err = resolveConfigPath(nameOrPath)
		if err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath) // #nosec G304 -- config path is user-provided
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, configPath)
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	cfg := DefaultConfig()
	if err := yamlutil.UnmarshalStrict(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConfigParse, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// SearchPaths lists the candidate files for a config name: the current
// directory first, then the user config directory, .yaml before .yml.
func SearchPaths(name string) []string {
	extensions := []string{".yaml", ".yml"}
	paths := make([]string, 0, len(extensions)*2)
	for _, ext := range extensions {
		paths = append(paths, name+ext)
	}
	if dir, err := os.UserConfigDir(); err == nil {
		for _, ext := range extensions {
			paths = append(paths, filepath.Join(dir, appDir, name+ext))
		}
	}
	return paths
}

// resolveConfigPath returns the first existing SearchPaths entry.
func resolveConfigPath(name string) (string, error) {
	tried := SearchPaths(name)
	for _, p := range tried {
		if fileutil.FileExists(p) {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w: tried %s", ErrConfigNotFound, strings.Join(tried, ", "))
}
