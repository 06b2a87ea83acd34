package blockforge

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/alnah/go-blockforge/internal/assets"
	"github.com/alnah/go-blockforge/internal/classify"
	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/logger"
	"github.com/alnah/go-blockforge/internal/normalize"
	"github.com/alnah/go-blockforge/internal/parser"
	"github.com/alnah/go-blockforge/internal/readability"
	"github.com/alnah/go-blockforge/internal/render"
	"github.com/alnah/go-blockforge/internal/splitstore"
)

// Designer runs the content pipeline: it turns payloads and editor HTML into
// State, suggests components and renders the final fragment. It holds no
// document state and is safe for concurrent use.
type Designer struct {
	normalizer *normalize.Normalizer
	parser     *parser.Parser
	generator  *render.Generator
	log        *logger.Logger
	wpm        int
}

// Option configures a Designer.
type Option func(*designerConfig)

type designerConfig struct {
	templateDir string
	log         *logger.Logger
	tabTitleMax int
	icon        string
	colour      string
	wpm         int
}

// WithLogger sets the logger for pipeline diagnostics. The default is silent.
func WithLogger(l *zap.Logger) Option {
	return func(c *designerConfig) {
		if l != nil {
			c.log = &logger.Logger{SugaredLogger: l.Sugar()}
		}
	}
}

// WithTemplateDir overrides component templates with files found under
// dir/components. Missing files fall back to the built-in templates.
func WithTemplateDir(dir string) Option {
	return func(c *designerConfig) { c.templateDir = dir }
}

// WithTabTitleMax sets the rune limit for tab titles.
func WithTabTitleMax(n int) Option {
	return func(c *designerConfig) { c.tabTitleMax = n }
}

// WithIconDefaults sets the icon and colour of icon lists without a
// customisation.
func WithIconDefaults(icon, colour string) Option {
	return func(c *designerConfig) {
		c.icon = icon
		c.colour = colour
	}
}

// WithWordsPerMinute sets the reading speed used by Analyze.
func WithWordsPerMinute(wpm int) Option {
	return func(c *designerConfig) { c.wpm = wpm }
}

// New creates a Designer.
func New(opts ...Option) (*Designer, error) {
	cfg := designerConfig{log: logger.Nop(), wpm: readability.DefaultWordsPerMinute}
	for _, opt := range opts {
		opt(&cfg)
	}

	loader, err := assets.NewAssetResolver(cfg.templateDir)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplates, err)
	}

	genOpts := []render.Option{render.WithLogger(cfg.log)}
	if cfg.tabTitleMax > 0 {
		genOpts = append(genOpts, render.WithTabTitleMax(cfg.tabTitleMax))
	}
	if cfg.icon != "" || cfg.colour != "" {
		genOpts = append(genOpts, render.WithIconDefaults(cfg.icon, cfg.colour))
	}
	gen, err := render.New(loader, genOpts...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTemplates, err)
	}

	return &Designer{
		normalizer: normalize.New(),
		parser:     parser.New(),
		generator:  gen,
		log:        cfg.log,
		wpm:        cfg.wpm,
	}, nil
}

// Parse builds a fresh State from canonical or editor-surface HTML. Block
// ids carried by the markup are kept.
func (d *Designer) Parse(html string) State {
	blocks := d.parser.Parse(html)
	d.log.Debug("parsed", "blocks", len(blocks))
	return State{Blocks: blocks, Store: splitstore.New()}
}

// Load builds a fresh State from a clipboard payload.
func (d *Designer) Load(p Payload) State {
	canonical, ok := d.normalizer.Clipboard(p)
	if !ok {
		return State{Store: splitstore.New()}
	}
	return d.Parse(canonical)
}

// Paste normalizes a payload and appends its blocks to s. A payload without
// content leaves s unchanged.
func (d *Designer) Paste(s State, p Payload) State {
	canonical, ok := d.normalizer.Clipboard(p)
	if !ok {
		d.log.Debug("paste ignored, payload has no content")
		return s.Clone()
	}
	pasted := d.parser.Parse(canonical)
	next := append(content.Clone(s.Blocks), pasted...)
	d.log.Debug("pasted", "blocks", len(pasted), "total", len(next))
	return s.ReplaceBlocks(next)
}

// Edit re-parses the editing surface and reconciles it with s. Blocks whose
// id survives keep their component and list type; their content is taken
// from the surface unless it came back empty.
func (d *Designer) Edit(s State, editorHTML string) State {
	old := make(map[string]Block, len(s.Blocks))
	for _, b := range s.Blocks {
		old[b.ID] = b
	}

	parsed := d.parser.Parse(editorHTML)
	for i, b := range parsed {
		prev, ok := old[b.ID]
		if !ok {
			continue
		}
		b.Component = prev.Component
		if prev.ListType != content.NoList {
			b.ListType = prev.ListType
		}
		if b.Content == "" {
			b.Content = prev.Content
		}
		parsed[i] = b
	}

	out, full := s.replace(parsed)
	if full {
		d.log.Debug("edit replaced document", "previous", len(s.Blocks), "blocks", len(parsed))
	} else {
		d.log.Debug("edit reconciled", "blocks", len(parsed), "entries", out.Store.Len())
	}
	return out
}

// Suggest returns a component suggestion per block.
func (d *Designer) Suggest(s State) Suggestions {
	return classify.Classify(s.Blocks)
}

// Render returns the final HTML fragment for s.
func (d *Designer) Render(s State) string {
	return d.generator.Generate(s.Blocks, s.Store)
}

// EditorSurface returns the editing-surface markup for s with component
// and suggestion indicators. Passing it to Edit keeps block identity.
func (d *Designer) EditorSurface(s State) string {
	return d.generator.EditorSurface(s.Blocks, d.Suggest(s))
}

// Analyze returns readability statistics for the text of s.
func (d *Designer) Analyze(s State) Stats {
	return readability.AnalyzeBlocks(s.Blocks, readability.WithWordsPerMinute(d.wpm))
}
