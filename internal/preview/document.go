// Package preview wraps a rendered fragment in a standalone page and
// captures that page as PNG or PDF through a headless browser.
//
// The page references Font Awesome 6.4.0, Bootstrap 4.5.2 and jQuery from
// their CDNs. Nothing is embedded, so a snapshot needs network access for
// icons and interactive layouts to render faithfully.
package preview

import (
	"fmt"
	"html/template"
	"strings"
	"sync"

	"github.com/alnah/go-blockforge/internal/assets"
)

// Defaults applied by Document to zero Options fields.
const (
	DefaultLang     = "en"
	DefaultTitle    = "Preview"
	DefaultMaxWidth = 960
)

// Options configures the standalone page.
type Options struct {
	Lang     string
	Title    string
	MaxWidth int
}

type pageData struct {
	Lang     string
	Title    string
	MaxWidth int
	Fragment template.HTML
}

// Builder renders preview pages from a page template.
type Builder struct {
	tmpl *template.Template
}

// NewBuilder parses the preview page template from loader.
func NewBuilder(loader assets.AssetLoader) (*Builder, error) {
	src, err := loader.LoadPage(assets.PreviewPage)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	tmpl, err := template.New(assets.PreviewPage).Parse(src)
	if err != nil {
		return nil, fmt.Errorf("%w: parsing %s: %w", ErrTemplate, assets.PreviewPage, err)
	}
	return &Builder{tmpl: tmpl}, nil
}

// Document wraps fragment in a standalone page. The fragment is trusted
// generator output and is inserted unescaped; options are escaped.
func (b *Builder) Document(fragment string, opts Options) (string, error) {
	data := pageData{
		Lang:     opts.Lang,
		Title:    opts.Title,
		MaxWidth: opts.MaxWidth,
		Fragment: template.HTML(fragment), // #nosec G203 -- generator output
	}
	if data.Lang == "" {
		data.Lang = DefaultLang
	}
	if data.Title == "" {
		data.Title = DefaultTitle
	}
	if data.MaxWidth <= 0 {
		data.MaxWidth = DefaultMaxWidth
	}

	var sb strings.Builder
	if err := b.tmpl.Execute(&sb, data); err != nil {
		return "", fmt.Errorf("%w: %w", ErrTemplate, err)
	}
	return sb.String(), nil
}

var defaultBuilder = sync.OnceValues(func() (*Builder, error) {
	return NewBuilder(assets.NewEmbeddedLoader())
})

// Document wraps fragment with the built-in page template.
func Document(fragment string, opts Options) (string, error) {
	b, err := defaultBuilder()
	if err != nil {
		return "", err
	}
	return b.Document(fragment, opts)
}
