package main

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/alnah/go-blockforge"
	"github.com/alnah/go-blockforge/internal/config"
	"github.com/alnah/go-blockforge/internal/fileutil"
	"github.com/alnah/go-blockforge/internal/hints"
	"github.com/alnah/go-blockforge/internal/preview"
)

// renderParams groups parameters shared across batch and file rendering.
type renderParams struct {
	designer   *blockforge.Designer
	layout     layout
	pages      *preview.Builder
	cfg        *config.Config
	format     preview.Format
	standalone bool
	title      string // overrides the per-file title when set
	color      bool   // highlight HTML written to stdout
	env        *Environment
}

// RenderResult holds the outcome of a single render.
type RenderResult struct {
	InputPath  string
	OutputPath string
	Blocks     int
	Err        error
	Duration   time.Duration
}

// runRenderCmd parses flags and runs a batch render.
func runRenderCmd(ctx context.Context, args []string, env *Environment) error {
	flags, inputs, err := parseRenderFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	return runRender(ctx, inputs, flags.common, flags.design, flags.page, flags.out, flags.standalone, env)
}

// runPreviewCmd renders a single input as a standalone page, optionally
// captured as PNG or PDF.
func runPreviewCmd(ctx context.Context, args []string, env *Environment) error {
	flags, inputs, err := parsePreviewFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(inputs) != 1 {
		return fmt.Errorf("%w: preview takes exactly one input, got %d", ErrUsage, len(inputs))
	}
	flags.out.workers = 1
	return runRender(ctx, inputs, flags.common, flags.design, flags.page, flags.out, true, env)
}

// runRender orchestrates configuration, discovery and the batch.
func runRender(ctx context.Context, inputs []string, common commonFlags, design designFlags, page pageFlags, out outputFlags, standalone bool, env *Environment) error {
	if err := validateWorkers(out.workers); err != nil {
		return err
	}
	mode, err := parseColorMode(out.color)
	if err != nil {
		return err
	}
	if len(inputs) == 0 {
		return ErrNoInput
	}

	envCfg := loadEnvConfig(env.Getenv)
	cfg, err := loadConfig(common, envCfg)
	if err != nil {
		return err
	}
	mergeDesignFlags(design, cfg)
	mergePageFlags(page, cfg)
	if err := cfg.Validate(); err != nil {
		return err
	}
	format, err := preview.ParseFormat(cfg.Preview.Format)
	if err != nil {
		return err
	}
	timeout, err := cfg.Preview.TimeoutDuration()
	if err != nil {
		return err
	}

	outputDir := out.output
	if outputDir == "" {
		outputDir = cfg.Output.DefaultDir
	}
	files, err := discoverFiles(inputs, outputDir, string(format))
	if err != nil {
		return fmt.Errorf("discovering files: %w", err)
	}
	if len(files) == 0 {
		return fmt.Errorf("%w: no supported files in %v", ErrNoInput, inputs)
	}
	if err := checkStdout(files); err != nil {
		return err
	}

	l, err := loadOptionalLayout(design.layout)
	if err != nil {
		return err
	}
	log := newLogger(common.verbose, env.Stderr)
	defer log.Sync()
	d, err := newDesigner(cfg, log)
	if err != nil {
		return err
	}
	pages, err := newPageBuilder(cfg)
	if err != nil {
		return err
	}

	params := &renderParams{
		designer:   d,
		layout:     l,
		pages:      pages,
		cfg:        cfg,
		format:     format,
		standalone: standalone,
		title:      page.title,
		color:      useColor(mode, env.Stdout, env),
		env:        env,
	}

	pool := NewBrowserPool(resolvePoolSize(out.workers, envCfg.Workers),
		preview.WithTimeout(timeout),
		preview.WithViewportWidth(cfg.Preview.ViewportWidth),
	)
	defer func() { _ = pool.Close() }()

	log.Debug("rendering", "files", len(files), "workers", pool.Size(), "format", string(format))
	results := renderBatch(ctx, pool, files, params)

	failed, firstErr := printResults(results, common.quiet, common.verbose, env)
	if failed > 0 {
		return fmt.Errorf("%d of %d render(s) failed: %w", failed, len(results), firstErr)
	}
	return nil
}

// checkStdout rejects batches where more than one file targets stdout.
func checkStdout(files []FileToRender) error {
	n := 0
	for _, f := range files {
		if f.OutputPath == stdinPath {
			n++
		}
	}
	if n > 1 {
		return fmt.Errorf("%w: %d files cannot share stdout, use --output <dir>", ErrUsage, n)
	}
	return nil
}

// renderBatch processes files concurrently. Workers share the Designer and
// hold one pooled browser each.
func renderBatch(ctx context.Context, pool Pool, files []FileToRender, params *renderParams) []RenderResult {
	if len(files) == 0 {
		return nil
	}

	concurrency := min(pool.Size(), len(files))
	results := make([]RenderResult, len(files))
	var wg sync.WaitGroup
	jobs := make(chan int, len(files))

	for range concurrency {
		wg.Add(1)
		go func() {
			defer wg.Done()

			snap := pool.Acquire()
			defer pool.Release(snap)

			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					results[idx] = RenderResult{InputPath: files[idx].InputPath, Err: err}
					continue
				}
				results[idx] = renderFile(ctx, snap, files[idx], params)
			}
		}()
	}

	for i := range files {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	return results
}

// renderFile processes a single file and returns the result.
func renderFile(ctx context.Context, snap Snapshotter, f FileToRender, params *renderParams) RenderResult {
	start := params.env.Now()
	result := RenderResult{InputPath: f.InputPath, OutputPath: f.OutputPath}
	done := func(err error) RenderResult {
		result.Err = err
		result.Duration = params.env.Now().Sub(start)
		return result
	}

	state, err := loadState(params.designer, f.InputPath, params.layout, params.env)
	if err != nil {
		return done(err)
	}
	result.Blocks = len(state.Blocks)

	data, err := params.produce(ctx, snap, state, f.InputPath)
	if err != nil {
		return done(err)
	}

	if f.OutputPath == stdinPath {
		return done(params.writeStdout(data))
	}

	if err := fileutil.WriteAtomic(f.OutputPath, data); err != nil {
		hint := ""
		if errors.Is(err, fileutil.ErrOutputDir) {
			hint = hints.ForOutputDirectory()
		}
		return done(fmt.Errorf("%w: %w%s", ErrWriteOutput, err, hint))
	}
	return done(nil)
}

// produce renders s to the configured format: a bare fragment, a
// standalone page, or a browser capture of that page.
func (p *renderParams) produce(ctx context.Context, snap Snapshotter, s blockforge.State, inputPath string) ([]byte, error) {
	fragment := p.designer.Render(s)
	if p.format == preview.FormatHTML && !p.standalone {
		return []byte(fragment), nil
	}

	title := p.title
	if title == "" {
		title = titleFor(inputPath)
	}
	page, err := p.pages.Document(fragment, pageOptions(p.cfg, title))
	if err != nil {
		return nil, err
	}
	if p.format == preview.FormatHTML {
		return []byte(page), nil
	}

	data, err := snap.Snapshot(ctx, page, p.format)
	if err != nil {
		switch {
		case errors.Is(err, preview.ErrBrowserConnect):
			return nil, fmt.Errorf("%w%s", err, hints.ForBrowserConnect(p.env.Getenv))
		case errors.Is(err, context.DeadlineExceeded), errors.Is(err, preview.ErrPageLoad):
			return nil, fmt.Errorf("%w%s", err, hints.ForTimeout())
		}
		return nil, err
	}
	return data, nil
}

func (p *renderParams) writeStdout(data []byte) error {
	var err error
	if p.format == preview.FormatHTML {
		err = writeHTML(p.env.Stdout, string(data), p.color)
	} else {
		_, err = p.env.Stdout.Write(data)
	}
	if err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	return nil
}

// ResultSummary holds the count of succeeded and failed renders.
type ResultSummary struct {
	Succeeded int
	Failed    int
}

// countResults tallies succeeded and failed renders.
func countResults(results []RenderResult) ResultSummary {
	var summary ResultSummary
	for _, r := range results {
		if r.Err != nil {
			summary.Failed++
		} else {
			summary.Succeeded++
		}
	}
	return summary
}

// printResults reports each render and returns the failure count and the
// first failure.
func printResults(results []RenderResult, quiet, verbose bool, env *Environment) (int, error) {
	summary := countResults(results)
	var firstErr error

	for _, r := range results {
		if r.Err != nil {
			if firstErr == nil {
				firstErr = r.Err
			}
			fmt.Fprintf(env.Stderr, "FAILED %s: %v\n", r.InputPath, r.Err)
			continue
		}

		if quiet || r.OutputPath == stdinPath {
			continue
		}

		if verbose {
			fmt.Fprintf(env.Stdout, "%s -> %s (%d blocks, %v)\n", r.InputPath, r.OutputPath, r.Blocks, r.Duration.Round(time.Millisecond))
		} else {
			fmt.Fprintf(env.Stdout, "Created %s\n", r.OutputPath)
		}
	}

	if !quiet && len(results) > 1 {
		fmt.Fprintf(env.Stdout, "\n%d succeeded, %d failed\n", summary.Succeeded, summary.Failed)
	}

	return summary.Failed, firstErr
}
