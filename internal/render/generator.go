// Package render turns a block sequence and its layout store into the final
// HTML fragment.
//
// The generator scans blocks left to right. A block carrying a multi-block
// component consumes the run of following blocks with the same component;
// any other tagged block is a run of one. An untagged list block renders as
// a run of one with its list type as component, and every other block is
// emitted verbatim. Runs are rendered through html/template component
// templates loaded from an assets.AssetLoader.
package render

import (
	"fmt"
	"html/template"
	"strings"

	"github.com/alnah/go-blockforge/internal/assets"
	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/htmlutil"
	"github.com/alnah/go-blockforge/internal/logger"
	"github.com/alnah/go-blockforge/internal/splitstore"
)

// Template names, one per file under components/.
const (
	tmplModuleTitle = "moduleTitle"
	tmplHeading     = "heading"
	tmplObjectives  = "learningObjectives"
	tmplBox         = "box"
	tmplTextColumns = "textColumns"
	tmplNumbered    = "numberedList"
	tmplBullet      = "bulletList"
	tmplAlpha       = "alphaList"
	tmplNumeric     = "numericList"
	tmplIconList    = "iconList"
	tmplAccordion   = "accordion"
	tmplCarousel    = "carousel"
	tmplTabs        = "tabs"
	tmplStylisedBox = "stylizedContentBox"
	tmplEditorBlock = "editorBlock"
)

const (
	defaultTabTitle   = 30
	articleOpen       = `<article role="article">`
	articleClose      = `</article>`
	fragmentSeparator = "\n"
)

var templateNames = []string{
	tmplModuleTitle, tmplHeading, tmplObjectives, tmplBox, tmplTextColumns,
	tmplNumbered, tmplBullet, tmplAlpha, tmplNumeric, tmplIconList,
	tmplAccordion, tmplCarousel, tmplTabs, tmplStylisedBox, tmplEditorBlock,
}

var funcs = template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}

// Generator renders blocks to HTML. It is safe for concurrent use.
type Generator struct {
	tmpl        *template.Template
	log         *logger.Logger
	tabTitleMax int
	icon        string
	colour      string
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used to report template failures.
func WithLogger(l *logger.Logger) Option {
	return func(g *Generator) { g.log = l }
}

// WithTabTitleMax sets the rune limit for tab button titles.
func WithTabTitleMax(n int) Option {
	return func(g *Generator) {
		if n > 0 {
			g.tabTitleMax = n
		}
	}
}

// WithIconDefaults sets the icon and colour used by icon lists without a
// customisation. Invalid values keep the built-in defaults.
func WithIconDefaults(icon, colour string) Option {
	return func(g *Generator) {
		if ValidIcon(icon) {
			g.icon = icon
		}
		if colour != "" {
			g.colour = SafeColour(colour)
		}
	}
}

// New loads every component template from loader and returns a Generator.
// A nil loader uses the embedded templates.
func New(loader assets.AssetLoader, opts ...Option) (*Generator, error) {
	if loader == nil {
		loader = assets.NewEmbeddedLoader()
	}

	root := template.New("components").Funcs(funcs)
	for _, name := range templateNames {
		src, err := loader.LoadComponent(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrTemplateLoad, err)
		}
		if _, err := root.New(name).Parse(src); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrTemplateParse, name, err)
		}
	}

	g := &Generator{
		tmpl:        root,
		tabTitleMax: defaultTabTitle,
		icon:        DefaultIcon,
		colour:      DefaultColour,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Generate renders blocks into one fragment wrapped in an article element.
// An empty sequence yields "".
func (g *Generator) Generate(blocks []content.Block, store *splitstore.Store) string {
	if len(blocks) == 0 {
		return ""
	}

	parts := make([]string, 0, len(blocks))
	for i := 0; i < len(blocks); {
		comp, n := nextRun(blocks, i)
		run := blocks[i : i+n]
		if comp == content.NoComponent {
			parts = append(parts, run[0].Content)
		} else {
			parts = append(parts, g.component(comp, run, store))
		}
		i += n
	}

	return articleOpen + fragmentSeparator + strings.Join(parts, fragmentSeparator) + fragmentSeparator + articleClose
}

// nextRun returns the component rendering blocks[i] and how many blocks
// the run consumes.
func nextRun(blocks []content.Block, i int) (content.Component, int) {
	b := blocks[i]
	switch {
	case b.Component != content.NoComponent:
		if !b.Component.IsMultiBlock() {
			return b.Component, 1
		}
		j := i + 1
		for j < len(blocks) && blocks[j].Component == b.Component {
			j++
		}
		return b.Component, j - i
	case b.IsList() && b.ListType != content.NoList:
		return b.ListType.Component(), 1
	}
	return content.NoComponent, 1
}

func (g *Generator) component(c content.Component, run []content.Block, store *splitstore.Store) string {
	ids := content.IDs(run)
	splits, _ := store.Splits(c, ids)

	switch c {
	case content.ModuleTitle, content.StyledHeading:
		return g.headings(c, run)
	case content.LearningObjectives:
		return g.execute(tmplObjectives, parseObjectives(run), run)
	case content.InfoBox, content.SummaryBox, content.ExerciseBox, content.ResourceBox:
		return g.execute(tmplBox, newBox(c, run), run)
	case content.IconList:
		cu, _ := store.Customisation(c, ids)
		return g.iconList(run, cu)
	case content.NumberedList:
		return g.execute(tmplNumbered, safe(listItems(run)), run)
	case content.BulletListComp, content.AlphaListComp, content.NumericListComp:
		levels, _ := store.Indent(c, ids)
		return g.list(c, run, levels)
	case content.Accordion:
		return g.execute(tmplAccordion, accordionSections(run, splits), run)
	case content.Carousel:
		return g.execute(tmplCarousel, carouselView(run, splits), run)
	case content.Tabs:
		return g.execute(tmplTabs, g.tabsView(run, splits), run)
	case content.StylizedContentBox:
		return g.execute(tmplStylisedBox, stylisedView(run, splits), run)
	case content.TextColumns:
		return g.execute(tmplTextColumns, textColumns(run), run)
	}
	return htmlutil.JoinRaw(run)
}

func (g *Generator) headings(c content.Component, run []content.Block) string {
	name := tmplHeading
	if c == content.ModuleTitle {
		name = tmplModuleTitle
	}
	out := make([]string, len(run))
	for i, b := range run {
		out[i] = g.execute(name, htmlutil.TrimmedText(b.Content), run[i:i+1])
	}
	return strings.Join(out, fragmentSeparator)
}

// execute renders a template. On failure the run is passed through raw.
func (g *Generator) execute(name string, data any, run []content.Block) string {
	var buf strings.Builder
	if err := g.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		g.log.Warn("template failed, passing run through",
			"template", name, "blocks", len(run), "error", err)
		return htmlutil.JoinRaw(run)
	}
	return strings.TrimSpace(buf.String())
}

// safe marks sanitized HTML strings as template-safe.
func safe(items []string) []template.HTML {
	out := make([]template.HTML, len(items))
	for i, s := range items {
		out[i] = template.HTML(s) // #nosec G203 -- items are projections of allow-listed block HTML
	}
	return out
}
