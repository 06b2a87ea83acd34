package main

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/alnah/go-blockforge"
	"github.com/alnah/go-blockforge/internal/fileutil"
)

// Sentinel errors for input discovery and I/O.
var (
	ErrNoInput            = errors.New("no input specified")
	ErrReadInput          = errors.New("failed to read input")
	ErrWriteOutput        = errors.New("failed to write output")
	ErrInvalidExtension   = errors.New("input must be .html, .htm, .txt, .text, .md or .markdown")
	ErrInvalidWorkerCount = errors.New("invalid worker count")
)

// stdinPath names standard input or output.
const stdinPath = "-"

// maxWorkers bounds --workers. Each worker may own a browser.
const maxWorkers = 16

// maxInputBytes bounds a single input document.
const maxInputBytes = 16 << 20

var (
	htmlExtensions = []string{".html", ".htm"}
	textExtensions = []string{".txt", ".text", ".md", ".markdown"}
)

// FileToRender represents a single file to process.
type FileToRender struct {
	InputPath  string
	OutputPath string
}

// isInputFile reports whether path has a supported input extension.
func isInputFile(path string) bool {
	return fileutil.HasExtension(path, htmlExtensions...) || fileutil.HasExtension(path, textExtensions...)
}

// discoverFiles expands inputs into files to render. Directories are walked
// recursively; files must carry a supported extension. ext is the output
// extension, without the dot.
func discoverFiles(inputs []string, outputDir, ext string) ([]FileToRender, error) {
	var files []FileToRender
	for _, input := range inputs {
		if input == stdinPath {
			files = append(files, FileToRender{InputPath: stdinPath, OutputPath: stdinPath})
			continue
		}

		info, err := os.Stat(input)
		if err != nil {
			return nil, err
		}

		if !info.IsDir() {
			if !isInputFile(input) {
				return nil, fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(input))
			}
			files = append(files, FileToRender{InputPath: input, OutputPath: resolveOutputPath(input, outputDir, "", ext)})
			continue
		}

		err = filepath.WalkDir(input, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return fmt.Errorf("scanning %s: %w", path, err)
			}
			if d.IsDir() || !isInputFile(path) {
				return nil
			}
			files = append(files, FileToRender{InputPath: path, OutputPath: resolveOutputPath(path, outputDir, input, ext)})
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return files, nil
}

// resolveOutputPath determines the output path for an input file.
//
//   - no outputDir: next to the input;
//   - outputDir ending in .ext: used as is (single-file runs);
//   - otherwise under outputDir, mirroring the tree below baseInputDir.
//
// An output that would overwrite its own input gets an ".out" infix.
func resolveOutputPath(inputPath, outputDir, baseInputDir, ext string) string {
	if outputDir == stdinPath {
		return stdinPath
	}
	base := strings.TrimSuffix(filepath.Base(inputPath), filepath.Ext(inputPath))
	name := base + "." + ext

	var out string
	switch {
	case outputDir == "":
		out = fileutil.ReplaceExtension(inputPath, "."+ext)
	case fileutil.HasExtension(outputDir, "."+ext):
		return outputDir
	case baseInputDir != "":
		out = filepath.Join(outputDir, name)
		if rel, err := filepath.Rel(baseInputDir, inputPath); err == nil {
			out = filepath.Join(outputDir, filepath.Dir(rel), name)
		}
	default:
		out = filepath.Join(outputDir, name)
	}

	if filepath.Clean(out) == filepath.Clean(inputPath) {
		out = filepath.Join(filepath.Dir(out), base+".out."+ext)
	}
	return out
}

// validateWorkers checks that the worker count is within valid bounds.
func validateWorkers(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d (must be >= 0, 0 means auto)", ErrInvalidWorkerCount, n)
	}
	if n > maxWorkers {
		return fmt.Errorf("%w: %d (maximum is %d)", ErrInvalidWorkerCount, n, maxWorkers)
	}
	return nil
}

// readPayload reads an input document. HTML files fill the HTML variant and
// text files the plain-text variant; stdin is sniffed for a leading tag.
func readPayload(path string, stdin io.Reader) (blockforge.Payload, error) {
	var (
		data []byte
		err  error
	)
	if path == stdinPath {
		data, err = io.ReadAll(io.LimitReader(stdin, maxInputBytes+1))
	} else {
		data, err = readFileLimited(path)
	}
	if err != nil {
		return blockforge.Payload{}, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	if len(data) > maxInputBytes {
		return blockforge.Payload{}, fmt.Errorf("%w: %s exceeds %d bytes", ErrReadInput, path, maxInputBytes)
	}

	text := string(data)
	switch {
	case path == stdinPath && strings.HasPrefix(strings.TrimSpace(text), "<"):
		return blockforge.Payload{HTML: text}, nil
	case fileutil.HasExtension(path, htmlExtensions...):
		return blockforge.Payload{HTML: text}, nil
	default:
		return blockforge.Payload{PlainText: text}, nil
	}
}

func readFileLimited(path string) ([]byte, error) {
	f, err := os.Open(path) // #nosec G304 -- user-provided input path
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return io.ReadAll(io.LimitReader(f, maxInputBytes+1))
}

// titleFor returns the default page title for an input file.
func titleFor(path string) string {
	if path == stdinPath {
		return ""
	}
	return strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
}
