package assets

import "errors"

// AssetResolver tries a chain of loaders in order. A loader that lacks a
// template passes the request on; any other failure stops the chain.
type AssetResolver struct {
	chain []AssetLoader
}

// NewAssetResolver returns the built-in templates, overlaid by dir when it
// is not empty.
func NewAssetResolver(dir string) (*AssetResolver, error) {
	r := &AssetResolver{}
	if dir != "" {
		custom, err := NewFilesystemLoader(dir)
		if err != nil {
			return nil, err
		}
		r.chain = append(r.chain, custom)
	}
	r.chain = append(r.chain, NewEmbeddedLoader())
	return r, nil
}

// LoadComponent returns the first component template found along the chain.
func (r *AssetResolver) LoadComponent(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadComponent(name) })
}

// LoadPage returns the first page template found along the chain.
func (r *AssetResolver) LoadPage(name string) (string, error) {
	return r.first(func(l AssetLoader) (string, error) { return l.LoadPage(name) })
}

func (r *AssetResolver) first(load func(AssetLoader) (string, error)) (string, error) {
	var err error
	for _, l := range r.chain {
		var content string
		content, err = load(l)
		if err == nil {
			return content, nil
		}
		if !errors.Is(err, ErrComponentNotFound) && !errors.Is(err, ErrPageNotFound) {
			return "", err
		}
	}
	return "", err
}

// HasCustomLoader reports whether a template directory overlays the
// built-in set.
func (r *AssetResolver) HasCustomLoader() bool {
	return len(r.chain) > 1
}

var _ AssetLoader = (*AssetResolver)(nil)
