package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FilesystemLoader serves templates from a directory on disk. Reads go
// through os.Root, so neither names nor symlinks can leave the directory.
type FilesystemLoader struct {
	dir string
}

// NewFilesystemLoader checks that dir is a readable directory.
func NewFilesystemLoader(dir string) (*FilesystemLoader, error) {
	if dir == "" {
		return nil, fmt.Errorf("%w: empty path", ErrInvalidBasePath)
	}

	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return nil, fmt.Errorf("%w: directory does not exist: %s", ErrInvalidBasePath, dir)
	case err != nil:
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	case !info.IsDir():
		return nil, fmt.Errorf("%w: not a directory: %s", ErrInvalidBasePath, dir)
	}

	root, err := os.OpenRoot(dir)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidBasePath, err)
	}
	defer func() { _ = root.Close() }()
	if _, err := fs.ReadDir(root.FS(), "."); err != nil {
		return nil, fmt.Errorf("%w: cannot read directory: %v", ErrInvalidBasePath, err)
	}

	return &FilesystemLoader{dir: dir}, nil
}

// LoadComponent reads <dir>/components/<name>.html.
func (f *FilesystemLoader) LoadComponent(name string) (string, error) {
	return f.read(componentAssets, name)
}

// LoadPage reads <dir>/pages/<name>.html.
func (f *FilesystemLoader) LoadPage(name string) (string, error) {
	return f.read(pageAssets, name)
}

func (f *FilesystemLoader) read(kind assetKind, name string) (string, error) {
	root, err := os.OpenRoot(f.dir)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
	defer func() { _ = root.Close() }()

	content, err := readAsset(root.FS(), ".", kind, name)
	if errors.Is(err, ErrAssetRead) && f.isSymlink(kind, name) {
		return "", fmt.Errorf("%w: %s/%s.html links outside %s", ErrPathTraversal, kind.dir, name, f.dir)
	}
	return content, err
}

// isSymlink reports whether the template file is a symbolic link. os.Root
// refuses links that escape the directory.
func (f *FilesystemLoader) isSymlink(kind assetKind, name string) bool {
	info, err := os.Lstat(filepath.Join(f.dir, kind.dir, name+".html"))
	return err == nil && info.Mode()&fs.ModeSymlink != 0
}

var _ AssetLoader = (*FilesystemLoader)(nil)
