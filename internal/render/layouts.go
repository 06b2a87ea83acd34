package render

import (
	"fmt"
	"hash/fnv"
	"html/template"
	"strconv"
	"strings"

	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/group"
	"github.com/alnah/go-blockforge/internal/htmlutil"
)

const defaultSectionTitle = "Section"

// section is one rendered part of a multi-part layout.
type section struct {
	Title string
	Body  template.HTML
	List  bool
}

// sectionBody keeps list markup verbatim, else joins the blocks with join.
func sectionBody(blocks []content.Block, join func([]content.Block) string) (template.HTML, bool) {
	if htmlutil.HasListMarkup(blocks) {
		return template.HTML(htmlutil.JoinRaw(blocks)), true // #nosec G203 -- block HTML is allow-listed
	}
	return template.HTML(join(blocks)), false // #nosec G203 -- joins escape text
}

func paragraphs(keepFormatting bool) func([]content.Block) string {
	return func(b []content.Block) string { return htmlutil.JoinParagraphs(b, keepFormatting) }
}

func inline(keepFormatting bool) func([]content.Block) string {
	return func(b []content.Block) string { return htmlutil.JoinText(b, keepFormatting) }
}

func accordionSections(run []content.Block, splits []int) []section {
	groups := group.Accordion(run, splits)
	out := make([]section, len(groups))
	for i, g := range groups {
		title := htmlutil.TrimmedText(g.Title)
		if title == "" {
			title = defaultSectionTitle
		}
		body, list := sectionBody(g.Blocks, paragraphs(true))
		out[i] = section{Title: title, Body: body, List: list}
	}
	return out
}

type slidesView struct {
	ID     string
	Slides []section
}

func carouselView(run []content.Block, splits []int) slidesView {
	groups := group.Carousel(run, splits)
	v := slidesView{ID: "carousel-" + runID(run), Slides: make([]section, len(groups))}
	for i, g := range groups {
		body, list := sectionBody(g.Blocks, inline(true))
		v.Slides[i] = section{Title: htmlutil.TrimmedText(g.Title), Body: body, List: list}
	}
	return v
}

type tabsView struct {
	ID   string
	Tabs []section
}

func (g *Generator) tabsView(run []content.Block, splits []int) tabsView {
	groups := group.Tabs(run, splits)
	v := tabsView{ID: "tab-" + runID(run), Tabs: make([]section, len(groups))}
	for i, grp := range groups {
		title := htmlutil.TrimmedText(grp.Title)
		if title == "" {
			title = "Tab " + strconv.Itoa(i+1)
		}
		body, list := sectionBody(grp.Blocks, inline(false))
		v.Tabs[i] = section{Title: htmlutil.TruncateTitle(title, g.tabTitleMax), Body: body, List: list}
	}
	return v
}

type cardsView struct {
	Title string
	Cards []section
}

// stylisedView lays out a stylised content box. Without manual splits, a
// leading heading that is the overall title of the run becomes the box
// title instead of a card.
func stylisedView(run []content.Block, splits []int) cardsView {
	var v cardsView
	blocks := run
	if len(splits) == 0 {
		if main := group.ByHeadings(run).MainHeading; main != "" {
			v.Title = htmlutil.TrimmedText(main)
			blocks = run[1:]
		}
	}

	for _, g := range group.StylisedBox(blocks, splits) {
		body, list := sectionBody(g.Blocks, inline(false))
		v.Cards = append(v.Cards, section{Title: htmlutil.TrimmedText(g.Title), Body: body, List: list})
	}
	return v
}

func textColumns(run []content.Block) template.HTML {
	body, _ := sectionBody(run, paragraphs(false))
	return body
}

// runID derives a stable element id from the block ids of a run.
func runID(run []content.Block) string {
	h := fnv.New32a()
	_, _ = h.Write([]byte(strings.Join(content.IDs(run), "-")))
	return fmt.Sprintf("%08x", h.Sum32())
}
