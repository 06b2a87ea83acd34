// Package fileutil holds the path and file helpers shared by the CLI, the
// config loader and the preview renderer.
package fileutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

var (
	ErrBadExtension = errors.New("invalid file extension")
	ErrOutputDir    = errors.New("creating output directory")
)

const (
	dirMode  = 0o750
	fileMode = 0o644
)

// WriteTempFile stores content in a new file under the system temp
// directory. cleanup removes it and is safe to call more than once.
func WriteTempFile(content, ext string) (path string, cleanup func(), err error) {
	if err := checkExtension(ext); err != nil {
		return "", nil, err
	}
	path, err = writeSibling(os.TempDir(), "blockforge-*."+ext, []byte(content))
	if err != nil {
		return "", nil, err
	}
	return path, func() { _ = os.Remove(path) }, nil
}

// WriteAtomic replaces path with data. The bytes land in a temporary file
// next to path first, so a reader never observes a partial write. Missing
// parent directories are created.
func WriteAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirMode); err != nil {
		return fmt.Errorf("%w: %w", ErrOutputDir, err)
	}
	tmp, err := writeSibling(dir, "."+filepath.Base(path)+".*", data)
	if err != nil {
		return err
	}
	if err := os.Chmod(tmp, fileMode); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("setting mode on %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}

// writeSibling writes data to a fresh file in dir named after pattern and
// returns its path. Nothing is left behind on failure.
func writeSibling(dir, pattern string, data []byte) (string, error) {
	f, err := os.CreateTemp(dir, pattern)
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	name := f.Name()
	_, werr := f.Write(data)
	cerr := f.Close()
	if err := errors.Join(werr, cerr); err != nil {
		_ = os.Remove(name)
		return "", fmt.Errorf("writing %s: %w", name, err)
	}
	return name, nil
}

// checkExtension accepts a bare extension such as "html".
func checkExtension(ext string) error {
	if ext == "" || strings.ContainsAny(ext, `/\`+"\x00") {
		return fmt.Errorf("%w: %q", ErrBadExtension, ext)
	}
	return nil
}

// FileExists reports whether path names something other than a directory.
func FileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// IsFilePath tells a path ("./course.yaml", `C:\course.yaml`) from a bare
// config name ("course").
func IsFilePath(s string) bool {
	return strings.ContainsAny(s, `/\`)
}

// HasExtension reports whether path ends in one of exts. exts carry their
// leading dot; case is ignored.
func HasExtension(path string, exts ...string) bool {
	ext := filepath.Ext(path)
	for _, e := range exts {
		if strings.EqualFold(ext, e) {
			return true
		}
	}
	return false
}

// ReplaceExtension swaps the extension of path for ext, dot included.
func ReplaceExtension(path, ext string) string {
	return strings.TrimSuffix(path, filepath.Ext(path)) + ext
}
