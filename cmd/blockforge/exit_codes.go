package main

import (
	"errors"
	"os"

	"github.com/alnah/go-blockforge"
	"github.com/alnah/go-blockforge/internal/config"
	"github.com/alnah/go-blockforge/internal/preview"
)

// Exit codes stay below 126, which shells reserve.
const (
	ExitSuccess = 0
	ExitGeneral = 1
	ExitUsage   = 2 // flags, config, layout and design validation
	ExitIO      = 3 // missing or unreadable input, unwritable output
	ExitBrowser = 4 // Chrome could not snapshot the page
)

// exitClasses is checked top to bottom; the first class holding a sentinel
// in the error chain wins. A browser failure on a missing file therefore
// exits 4, not 3.
var exitClasses = []struct {
	code int
	errs []error
}{
	{ExitBrowser, []error{
		preview.ErrBrowserConnect, preview.ErrPageCreate, preview.ErrPageLoad, preview.ErrCapture,
	}},
	{ExitIO, []error{
		os.ErrNotExist, os.ErrPermission, ErrNoInput, ErrReadInput, ErrWriteOutput,
	}},
	{ExitUsage, []error{
		ErrUsage, ErrInvalidExtension, ErrInvalidWorkerCount, ErrInvalidColorMode, ErrLayout, ErrUnsupportedShell,
		config.ErrConfigNotFound, config.ErrEmptyConfigName, config.ErrConfigParse,
		config.ErrFieldTooLong, config.ErrOutOfRange, config.ErrInvalidValue,
		preview.ErrUnsupportedFormat,
		blockforge.ErrTemplates, blockforge.ErrUnknownComponent, blockforge.ErrNoBlocks,
		blockforge.ErrInvalidSplit, blockforge.ErrInvalidIndent, blockforge.ErrInvalidColour,
		blockforge.ErrInvalidIcon, blockforge.ErrUnknownBlock, blockforge.ErrNotIndentable,
	}},
}

// exitCodeFor maps err to an exit code by walking its wrap chain.
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}
	for _, class := range exitClasses {
		for _, target := range class.errs {
			if errors.Is(err, target) {
				return class.code
			}
		}
	}
	return ExitGeneral
}
