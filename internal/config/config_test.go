package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if err := cfg.Validate(); err != nil {
		t.Fatalf("DefaultConfig().Validate() error = %v", err)
	}
	if cfg.Render.TabTitleMax != 30 {
		t.Errorf("Render.TabTitleMax = %d, want 30", cfg.Render.TabTitleMax)
	}
	if cfg.Readability.WordsPerMinute != 225 {
		t.Errorf("Readability.WordsPerMinute = %d, want 225", cfg.Readability.WordsPerMinute)
	}
	if cfg.Preview.Format != "html" {
		t.Errorf("Preview.Format = %q, want html", cfg.Preview.Format)
	}
	if cfg.Output.DefaultDir != "" {
		t.Errorf("Output.DefaultDir = %q, want empty", cfg.Output.DefaultDir)
	}
	if d, err := cfg.Preview.TimeoutDuration(); err != nil || d != 30*time.Second {
		t.Errorf("TimeoutDuration() = %v, %v, want 30s", d, err)
	}
}

func TestValidateFieldLength(t *testing.T) {
	tests := []struct {
		name      string
		value     string
		maxLength int
		wantErr   bool
	}{
		{name: "empty value is valid", value: "", maxLength: 10},
		{name: "value at limit is valid", value: "1234567890", maxLength: 10},
		{name: "value over limit", value: "12345678901", maxLength: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateFieldLength("test", tt.value, tt.maxLength)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateFieldLength() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrFieldTooLong) {
				t.Errorf("error = %v, want ErrFieldTooLong", err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr error
	}{
		{
			name:   "zero values are allowed",
			mutate: func(c *Config) { *c = Config{} },
		},
		{
			name:    "tab title too short",
			mutate:  func(c *Config) { c.Render.TabTitleMax = 2 },
			wantErr: ErrOutOfRange,
		},
		{
			name:    "tab title too long",
			mutate:  func(c *Config) { c.Render.TabTitleMax = 500 },
			wantErr: ErrOutOfRange,
		},
		{
			name:    "malformed icon",
			mutate:  func(c *Config) { c.Render.Icon = "fa fa-star" },
			wantErr: ErrInvalidValue,
		},
		{
			name:   "colour word",
			mutate: func(c *Config) { c.Render.Colour = "Red" },
		},
		{
			name:    "bad colour",
			mutate:  func(c *Config) { c.Render.Colour = "url(x)" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "colour too long",
			mutate:  func(c *Config) { c.Render.Colour = "#" + strings.Repeat("a", MaxColourLength) },
			wantErr: ErrFieldTooLong,
		},
		{
			name:    "reading speed out of range",
			mutate:  func(c *Config) { c.Readability.WordsPerMinute = 10 },
			wantErr: ErrOutOfRange,
		},
		{
			name:    "timeout not a duration",
			mutate:  func(c *Config) { c.Preview.Timeout = "soon" },
			wantErr: ErrInvalidValue,
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.Preview.Timeout = "-1s" },
			wantErr: ErrOutOfRange,
		},
		{
			name:    "timeout over limit",
			mutate:  func(c *Config) { c.Preview.Timeout = "1h" },
			wantErr: ErrOutOfRange,
		},
		{
			name:    "viewport too narrow",
			mutate:  func(c *Config) { c.Preview.ViewportWidth = 100 },
			wantErr: ErrOutOfRange,
		},
		{
			name:   "format is case-insensitive",
			mutate: func(c *Config) { c.Preview.Format = "PDF" },
		},
		{
			name:    "unknown format",
			mutate:  func(c *Config) { c.Preview.Format = "gif" },
			wantErr: errors.New("preview.format"),
		},
		{
			name:   "https origin",
			mutate: func(c *Config) { c.Server.AllowedOrigins = []string{"https://lms.example.com"} },
		},
		{
			name:    "origin without scheme",
			mutate:  func(c *Config) { c.Server.AllowedOrigins = []string{"lms.example.com"} },
			wantErr: ErrInvalidValue,
		},
		{
			name: "too many origins",
			mutate: func(c *Config) {
				c.Server.AllowedOrigins = make([]string, MaxOrigins+1)
				for i := range c.Server.AllowedOrigins {
					c.Server.AllowedOrigins[i] = "*"
				}
			},
			wantErr: ErrOutOfRange,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v", err)
				}
				return
			}
			if err == nil {
				t.Fatalf("Validate() = nil, want %v", tt.wantErr)
			}
			if !errors.Is(err, tt.wantErr) && !strings.Contains(err.Error(), tt.wantErr.Error()) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_ValidateNil(t *testing.T) {
	var c *Config
	if err := c.Validate(); err != nil {
		t.Errorf("nil Validate() = %v", err)
	}
}

func TestLoadConfig(t *testing.T) {
	writeConfig := func(t *testing.T, content string) string {
		t.Helper()
		path := filepath.Join(t.TempDir(), "blockforge.yaml")
		if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
			t.Fatalf("setup: %v", err)
		}
		return path
	}

	t.Run("empty name returns ErrEmptyConfigName", func(t *testing.T) {
		_, err := LoadConfig("")
		if !errors.Is(err, ErrEmptyConfigName) {
			t.Errorf("error = %v, want ErrEmptyConfigName", err)
		}
	})

	t.Run("file overrides defaults per field", func(t *testing.T) {
		path := writeConfig(t, `render:
  colour: "#dc3545"
readability:
  wordsPerMinute: 180
server:
  allowedOrigins:
    - https://lms.example.com
output:
  defaultDir: "/tmp/out"
`)
		cfg, err := LoadConfig(path)
		if err != nil {
			t.Fatalf("LoadConfig() error = %v", err)
		}
		if cfg.Render.Colour != "#dc3545" {
			t.Errorf("Render.Colour = %q", cfg.Render.Colour)
		}
		if cfg.Render.Icon != "circle-check" {
			t.Errorf("Render.Icon = %q, want default kept", cfg.Render.Icon)
		}
		if cfg.Readability.WordsPerMinute != 180 {
			t.Errorf("WordsPerMinute = %d, want 180", cfg.Readability.WordsPerMinute)
		}
		if len(cfg.Server.AllowedOrigins) != 1 || cfg.Server.AllowedOrigins[0] != "https://lms.example.com" {
			t.Errorf("AllowedOrigins = %v", cfg.Server.AllowedOrigins)
		}
		if cfg.Output.DefaultDir != "/tmp/out" {
			t.Errorf("Output.DefaultDir = %q", cfg.Output.DefaultDir)
		}
	})

	t.Run("nonexistent file path returns ErrConfigNotFound", func(t *testing.T) {
		_, err := LoadConfig("/nonexistent/path/config.yaml")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Errorf("error = %v, want ErrConfigNotFound", err)
		}
	})

	t.Run("unknown name returns ErrConfigNotFound with tried paths", func(t *testing.T) {
		_, err := LoadConfig("no-such-blockforge-config")
		if !errors.Is(err, ErrConfigNotFound) {
			t.Fatalf("error = %v, want ErrConfigNotFound", err)
		}
		if !strings.Contains(err.Error(), "no-such-blockforge-config.yml") {
			t.Errorf("error does not list tried paths: %v", err)
		}
	})

	t.Run("invalid YAML returns ErrConfigParse", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "render: [unclosed"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("unknown field returns ErrConfigParse in strict mode", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "render:\n  theme: dark\n"))
		if !errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want ErrConfigParse", err)
		}
	})

	t.Run("invalid values fail validation", func(t *testing.T) {
		_, err := LoadConfig(writeConfig(t, "preview:\n  format: gif\n"))
		if err == nil || errors.Is(err, ErrConfigParse) {
			t.Errorf("error = %v, want a validation error", err)
		}
	})
}

func TestSearchPaths(t *testing.T) {
	paths := SearchPaths("team")
	if len(paths) < 2 || paths[0] != "team.yaml" || paths[1] != "team.yml" {
		t.Fatalf("SearchPaths() = %v, want local paths first", paths)
	}
	for _, p := range paths[2:] {
		if !strings.Contains(p, filepath.Join("go-blockforge", "team")) {
			t.Errorf("user path %q not under go-blockforge", p)
		}
	}
}
