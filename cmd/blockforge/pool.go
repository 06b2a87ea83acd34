package main

import (
	"context"
	"runtime"
	"sync"

	"github.com/alnah/go-blockforge/internal/preview"
)

// Snapshotter turns a standalone page into output bytes.
type Snapshotter interface {
	Snapshot(ctx context.Context, page string, format preview.Format) ([]byte, error)
}

// Compile-time interface implementation check.
var _ Snapshotter = (*preview.Browser)(nil)

// Pool abstracts snapshotter pool operations for testability.
type Pool interface {
	Acquire() Snapshotter
	Release(Snapshotter)
	Size() int
}

// BrowserPool manages preview.Browser instances for parallel snapshots.
// Each browser owns its own Chrome process, launched on first snapshot, so
// HTML-only batches never start one.
type BrowserPool struct {
	size     int
	opts     []preview.BrowserOption
	browsers []*preview.Browser
	sem      chan Snapshotter
	mu       sync.Mutex
	created  int
	closed   bool
}

// NewBrowserPool creates a pool with capacity for n browsers.
// Browsers are created lazily when acquired, not at pool creation.
func NewBrowserPool(n int, opts ...preview.BrowserOption) *BrowserPool {
	if n < 1 {
		n = 1
	}

	return &BrowserPool{
		size:     n,
		opts:     opts,
		browsers: make([]*preview.Browser, 0, n),
		sem:      make(chan Snapshotter, n),
	}
}

// Compile-time check that BrowserPool implements Pool.
var _ Pool = (*BrowserPool)(nil)

// Acquire gets a browser from the pool, creating one if needed.
// Blocks if all browsers are in use.
func (p *BrowserPool) Acquire() Snapshotter {
	select {
	case b := <-p.sem:
		return b
	default:
	}

	p.mu.Lock()
	if p.created < p.size {
		p.created++
		b := preview.NewBrowser(p.opts...)
		p.browsers = append(p.browsers, b)
		p.mu.Unlock()
		return b
	}
	p.mu.Unlock()

	return <-p.sem
}

// Release returns a browser to the pool.
func (p *BrowserPool) Release(s Snapshotter) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.closed {
		p.sem <- s
	}
}

// Close shuts down every browser that was launched.
func (p *BrowserPool) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	close(p.sem)
	browsers := p.browsers
	p.mu.Unlock()

	var lastErr error
	for _, b := range browsers {
		if err := b.Close(); err != nil {
			lastErr = err
		}
	}
	return lastErr
}

// Size returns the pool capacity.
func (p *BrowserPool) Size() int {
	return p.size
}

// resolvePoolSize determines the worker count.
// Priority: explicit flag > BLOCKFORGE_WORKERS > GOMAXPROCS-based calculation.
func resolvePoolSize(flagWorkers, envWorkers int) int {
	if flagWorkers > 0 {
		return flagWorkers
	}
	if envWorkers > 0 {
		return min(envWorkers, maxWorkers)
	}

	// GOMAXPROCS is adjusted by automaxprocs for containers.
	n := runtime.GOMAXPROCS(0) / 2
	return max(1, min(n, 8))
}
