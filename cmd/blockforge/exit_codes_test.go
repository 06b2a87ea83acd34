package main

// Notes:
// - exitCodeFor: every sentinel the commands return is mapped, wrapped and
//   unwrapped, so a new sentinel without a mapping falls to ExitGeneral.

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/alnah/go-blockforge"
	"github.com/alnah/go-blockforge/internal/config"
	"github.com/alnah/go-blockforge/internal/preview"
)

func TestExitCodeFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, ExitSuccess},

		{"browser connect", preview.ErrBrowserConnect, ExitBrowser},
		{"page create", preview.ErrPageCreate, ExitBrowser},
		{"page load", preview.ErrPageLoad, ExitBrowser},
		{"capture", preview.ErrCapture, ExitBrowser},
		{"wrapped capture", fmt.Errorf("snapshot: %w", preview.ErrCapture), ExitBrowser},

		{"file not exist", os.ErrNotExist, ExitIO},
		{"permission denied", os.ErrPermission, ExitIO},
		{"no input", ErrNoInput, ExitIO},
		{"read input", ErrReadInput, ExitIO},
		{"write output", ErrWriteOutput, ExitIO},

		{"usage", ErrUsage, ExitUsage},
		{"config not found", config.ErrConfigNotFound, ExitUsage},
		{"config parse", config.ErrConfigParse, ExitUsage},
		{"config out of range", config.ErrOutOfRange, ExitUsage},
		{"unsupported format", preview.ErrUnsupportedFormat, ExitUsage},
		{"templates", blockforge.ErrTemplates, ExitUsage},
		{"unknown component", blockforge.ErrUnknownComponent, ExitUsage},
		{"invalid split", blockforge.ErrInvalidSplit, ExitUsage},
		{"invalid colour", blockforge.ErrInvalidColour, ExitUsage},
		{"layout", ErrLayout, ExitUsage},
		{"layout wrapping component", fmt.Errorf("%w: step 1: %w", ErrLayout, blockforge.ErrNoBlocks), ExitUsage},
		{"extension", ErrInvalidExtension, ExitUsage},
		{"workers", ErrInvalidWorkerCount, ExitUsage},
		{"color mode", ErrInvalidColorMode, ExitUsage},
		{"shell", ErrUnsupportedShell, ExitUsage},

		{"unknown error", errors.New("boom"), ExitGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := exitCodeFor(tt.err); got != tt.want {
				t.Errorf("exitCodeFor(%v) = %d, want %d", tt.err, got, tt.want)
			}
		})
	}
}

func TestExitCodeFor_BrowserBeatsIO(t *testing.T) {
	t.Parallel()

	err := fmt.Errorf("%w: %w", preview.ErrPageLoad, os.ErrNotExist)
	if got := exitCodeFor(err); got != ExitBrowser {
		t.Errorf("exitCodeFor() = %d, want %d", got, ExitBrowser)
	}
}

func TestExitCodes_UnixConventions(t *testing.T) {
	t.Parallel()

	codes := []int{ExitSuccess, ExitGeneral, ExitUsage, ExitIO, ExitBrowser}
	seen := map[int]bool{}
	for _, c := range codes {
		if c >= 126 {
			t.Errorf("exit code %d collides with shell-reserved codes", c)
		}
		if seen[c] {
			t.Errorf("exit code %d is used twice", c)
		}
		seen[c] = true
	}
}
