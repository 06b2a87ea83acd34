package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/alnah/go-blockforge"
	"github.com/alnah/go-blockforge/internal/assets"
	"github.com/alnah/go-blockforge/internal/config"
	"github.com/alnah/go-blockforge/internal/fileutil"
	"github.com/alnah/go-blockforge/internal/hints"
	"github.com/alnah/go-blockforge/internal/logger"
	"github.com/alnah/go-blockforge/internal/preview"
)

// loadConfig resolves the configuration for a command: --config, then
// BLOCKFORGE_CONFIG, then the built-in defaults, with env overrides applied
// on top. Flags are merged by the caller.
func loadConfig(common commonFlags, envCfg *envConfig) (*config.Config, error) {
	name := common.config
	if name == "" {
		name = envCfg.ConfigPath
	}

	cfg := config.DefaultConfig()
	if name != "" {
		loaded, err := config.LoadConfig(name)
		if err != nil {
			if errors.Is(err, config.ErrConfigNotFound) && !fileutil.IsFilePath(name) {
				return nil, fmt.Errorf("loading config: %w%s", err, hints.ForConfigNotFound(config.SearchPaths(name)))
			}
			return nil, fmt.Errorf("loading config: %w", err)
		}
		cfg = loaded
	}

	applyEnvConfig(envCfg, cfg)
	return cfg, nil
}

// mergeDesignFlags merges generator flags into cfg. CLI values win.
func mergeDesignFlags(f designFlags, cfg *config.Config) {
	if f.templateDir != "" {
		cfg.Render.TemplateDir = f.templateDir
	}
	if f.tabTitleMax != 0 {
		cfg.Render.TabTitleMax = f.tabTitleMax
	}
	if f.icon != "" {
		cfg.Render.Icon = f.icon
	}
	if f.colour != "" {
		cfg.Render.Colour = f.colour
	}
}

// mergePageFlags merges page and snapshot flags into cfg. The title is
// resolved per file and is not merged.
func mergePageFlags(f pageFlags, cfg *config.Config) {
	if f.format != "" {
		cfg.Preview.Format = f.format
	}
	if f.lang != "" {
		cfg.Preview.Lang = f.lang
	}
	if f.timeout != "" {
		cfg.Preview.Timeout = f.timeout
	}
	if f.width != 0 {
		cfg.Preview.ViewportWidth = f.width
	}
}

// newLogger returns a console logger on w when verbose, else a silent one.
func newLogger(verbose bool, w io.Writer) *logger.Logger {
	if verbose {
		return logger.NewWriter(w)
	}
	return logger.Nop()
}

// newDesigner builds a Designer from the render and readability sections.
func newDesigner(cfg *config.Config, log *logger.Logger) (*blockforge.Designer, error) {
	opts := []blockforge.Option{
		blockforge.WithLogger(log.SugaredLogger.Desugar()),
		blockforge.WithTemplateDir(cfg.Render.TemplateDir),
		blockforge.WithTabTitleMax(cfg.Render.TabTitleMax),
		blockforge.WithIconDefaults(cfg.Render.Icon, cfg.Render.Colour),
	}
	if cfg.Readability.WordsPerMinute > 0 {
		opts = append(opts, blockforge.WithWordsPerMinute(cfg.Readability.WordsPerMinute))
	}

	d, err := blockforge.New(opts...)
	if err != nil {
		if cfg.Render.TemplateDir != "" {
			return nil, fmt.Errorf("%w%s", err, hints.ForTemplateDir())
		}
		return nil, err
	}
	return d, nil
}

// newPageBuilder loads the preview page, honouring a page override in the
// template directory.
func newPageBuilder(cfg *config.Config) (*preview.Builder, error) {
	loader, err := assets.NewAssetResolver(cfg.Render.TemplateDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w%s", ErrUsage, err, hints.ForTemplateDir())
	}
	return preview.NewBuilder(loader)
}

// pageOptions returns the page settings of cfg with title as the page
// title when set.
func pageOptions(cfg *config.Config, title string) preview.Options {
	opts := preview.Options{Lang: cfg.Preview.Lang, Title: cfg.Preview.Title}
	if title != "" {
		opts.Title = title
	}
	return opts
}
