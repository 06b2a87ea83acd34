package render

import "errors"

// Sentinel errors for generator construction.
var (
	// ErrTemplateLoad indicates a component template could not be loaded.
	ErrTemplateLoad = errors.New("loading component template")

	// ErrTemplateParse indicates a component template is not valid html/template syntax.
	ErrTemplateParse = errors.New("parsing component template")
)
