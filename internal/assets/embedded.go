package assets

import "embed"

//go:embed templates
var bundled embed.FS

// EmbeddedLoader serves the templates compiled into the binary.
type EmbeddedLoader struct{}

// NewEmbeddedLoader returns the built-in template set.
func NewEmbeddedLoader() *EmbeddedLoader {
	return &EmbeddedLoader{}
}

func (*EmbeddedLoader) LoadComponent(name string) (string, error) {
	return readAsset(bundled, "templates", componentAssets, name)
}

func (*EmbeddedLoader) LoadPage(name string) (string, error) {
	return readAsset(bundled, "templates", pageAssets, name)
}

var _ AssetLoader = (*EmbeddedLoader)(nil)
