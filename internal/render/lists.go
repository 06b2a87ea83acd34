package render

import (
	"html/template"
	"regexp"
	"strings"

	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/htmlutil"
	"github.com/alnah/go-blockforge/internal/splitstore"
)

// Icon list defaults.
const (
	DefaultIcon   = "circle-check"
	DefaultColour = "#198754"
)

const nestedListStyle = `margin-top: 0.5rem; margin-bottom: 0.5rem;`

var (
	hexColour = regexp.MustCompile(`^#[0-9a-fA-F]{3,8}$`)
	iconName  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// Choice is a selectable customisation value.
type Choice struct {
	Value string `json:"value" yaml:"value"`
	Label string `json:"label" yaml:"label"`
}

// Icons lists the suggested Font Awesome icons for icon lists.
var Icons = []Choice{
	{"circle-check", "Check Circle"},
	{"circle-xmark", "X Mark"},
	{"arrow-right", "Arrow"},
	{"star", "Star"},
	{"circle-question", "Question"},
	{"link", "Link"},
	{"flag", "Flag"},
	{"map-pin", "Pin"},
	{"info-circle", "Info"},
}

// Colours lists the suggested accessible icon colours.
var Colours = []Choice{
	{"#198754", "Green"},
	{"#dc3545", "Red"},
	{"#fd7e14", "Orange"},
	{"#6f42c1", "Purple"},
	{"#212529", "Black"},
	{"#586fb5", "Blue"},
	{"#109294", "Teal"},
	{"#a85b8b", "Pink"},
}

// colourNames maps colour words to hex values readable on white.
var colourNames = map[string]string{
	"blue":       "#0066cc",
	"light blue": "#4a90e2",
	"dark blue":  "#003d7a",
	"green":      "#198754",
	"red":        "#dc3545",
	"orange":     "#fd7e14",
	"yellow":     "#ffc107",
	"purple":     "#6f42c1",
	"pink":       "#e91e63",
	"teal":       "#20c997",
	"cyan":       "#17a2b8",
	"indigo":     "#6610f2",
	"brown":      "#795548",
	"grey":       "#6c757d",
	"gray":       "#6c757d",
	"black":      "#212529",
	"gold":       "#b8860b",
	"silver":     "#6c757d",
	"bronze":     "#cd7f32",
}

// SafeColour maps a colour word to its hex value, keeps a hex colour as is,
// and turns anything else into DefaultColour.
func SafeColour(c string) string {
	c = strings.TrimSpace(c)
	if hex, ok := colourNames[strings.ToLower(c)]; ok {
		return hex
	}
	if hexColour.MatchString(c) {
		return c
	}
	return DefaultColour
}

// ValidColour reports whether c is a hex colour or a known colour word.
func ValidColour(c string) bool {
	c = strings.TrimSpace(c)
	_, named := colourNames[strings.ToLower(c)]
	return named || hexColour.MatchString(c)
}

// ValidIcon reports whether name is a well-formed icon name.
func ValidIcon(name string) bool {
	return iconName.MatchString(name)
}

// listItems returns the cleaned items of a list run: one per block when the
// run has several blocks, else the items found inside the single block.
func listItems(run []content.Block) []string {
	if len(run) == 1 {
		return htmlutil.ExtractListItems(run[0].Content)
	}
	items := make([]string, len(run))
	for i, b := range run {
		items[i] = htmlutil.CleanListItem(htmlutil.KeepFormatting(b.Content))
	}
	return items
}

type iconListView struct {
	Items  []template.HTML
	Icon   string
	Colour string
}

func (g *Generator) iconList(run []content.Block, cu splitstore.Customisation) string {
	v := iconListView{Items: safe(listItems(run)), Icon: g.icon, Colour: g.colour}
	if ValidIcon(cu.Icon) {
		v.Icon = cu.Icon
	}
	if cu.Colour != "" {
		v.Colour = SafeColour(cu.Colour)
	}
	return g.execute(tmplIconList, v, run)
}

// list renders a bullet, alpha or numeric list, switching to the nested
// builder when any block has a stored level above zero.
func (g *Generator) list(c content.Component, run []content.Block, levels map[string]int) string {
	items := listItems(run)
	if indented(levels) {
		return nestedList(items, run, levels, c)
	}
	switch c {
	case content.AlphaListComp:
		return g.execute(tmplAlpha, safe(items), run)
	case content.NumericListComp:
		return g.execute(tmplNumeric, safe(items), run)
	}
	return g.execute(tmplBullet, safe(items), run)
}

func indented(levels map[string]int) bool {
	for _, l := range levels {
		if l > 0 {
			return true
		}
	}
	return false
}

// nestedList builds a list whose nesting follows the stored level of each
// item's block. Item i takes the level of run[i]; items beyond the run, as
// when one block holds several items, sit at level 0. A level jump of more
// than one opens unmarked wrapper items so every nested list sits inside an
// li and every tag is closed.
func nestedList(items []string, run []content.Block, levels map[string]int, c content.Component) string {
	if len(items) == 0 {
		return ""
	}

	outer, nested := listTags(c)
	var buf strings.Builder
	buf.WriteString("<" + outer + ` style="margin-top: 1rem;">`)

	// liOpen[d] reports whether an li is open at depth d.
	liOpen := make([]bool, splitstore.MaxIndent+1)
	depth := 0

	closeItem := func(d int) {
		if liOpen[d] {
			buf.WriteString("</li>")
			liOpen[d] = false
		}
	}

	for i, item := range items {
		target := 0
		if i < len(run) {
			target = splitstore.ClampIndent(levels[run[i].ID])
		}

		for depth > target {
			closeItem(depth)
			buf.WriteString("</" + closingTag(nested) + ">")
			depth--
		}
		if depth == target {
			closeItem(depth)
		}
		for depth < target {
			if !liOpen[depth] {
				buf.WriteString(`<li style="list-style: none;">`)
				liOpen[depth] = true
			}
			buf.WriteString("<" + nested + ` style="` + nestedListStyle + `">`)
			depth++
		}

		buf.WriteString("<li>" + item)
		liOpen[depth] = true
	}

	for ; depth > 0; depth-- {
		closeItem(depth)
		buf.WriteString("</" + closingTag(nested) + ">")
	}
	closeItem(0)
	buf.WriteString("</" + closingTag(outer) + ">")
	return buf.String()
}

// listTags returns the opening tag text of the outer and nested lists.
func listTags(c content.Component) (outer, nested string) {
	switch c {
	case content.AlphaListComp:
		return `ol type="a"`, `ol type="a"`
	case content.NumericListComp:
		return "ol", "ol"
	}
	return "ul", "ul"
}

func closingTag(open string) string {
	name, _, _ := strings.Cut(open, " ")
	return name
}
