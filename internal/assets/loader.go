package assets

import (
	"errors"
	"fmt"
	"io/fs"
	"path"
)

// AssetLoader loads HTML templates by name, without the .html extension.
//
// Missing templates yield ErrComponentNotFound or ErrPageNotFound; unsafe
// names yield ErrInvalidAssetName.
type AssetLoader interface {
	LoadComponent(name string) (string, error)
	LoadPage(name string) (string, error)
}

// PreviewPage is the name of the standalone preview page template.
const PreviewPage = "preview"

// assetKind is a template directory and the error for a miss in it.
type assetKind struct {
	dir      string
	notFound error
}

var (
	componentAssets = assetKind{dir: "components", notFound: ErrComponentNotFound}
	pageAssets      = assetKind{dir: "pages", notFound: ErrPageNotFound}
)

// readAsset reads root/<kind dir>/<name>.html from fsys.
func readAsset(fsys fs.FS, root string, kind assetKind, name string) (string, error) {
	if err := ValidateAssetName(name); err != nil {
		return "", err
	}
	data, err := fs.ReadFile(fsys, path.Join(root, kind.dir, name+".html"))
	switch {
	case err == nil:
		return string(data), nil
	case errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("%w: %q", kind.notFound, name)
	default:
		return "", fmt.Errorf("%w: %v", ErrAssetRead, err)
	}
}
