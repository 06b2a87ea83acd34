package render

import (
	"html/template"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/htmlutil"
)

// maxBoxTitle is the rune limit below which a first paragraph without a
// period is taken as a box title.
const maxBoxTitle = 100

const (
	titledSeparator    = `</p><p style="margin-top:0.618rem;margin-bottom:0px;">`
	titlelessSeparator = "<br>"
)

type boxStyle struct {
	Accent     string
	Icon       string
	Background string // titleless variant
	Foreground string // titleless variant
}

var boxStyles = map[content.Component]boxStyle{
	content.InfoBox:     {Accent: "#586fb5", Icon: "fa-info-circle", Background: "#586fb5", Foreground: "white"},
	content.SummaryBox:  {Accent: "#1f4040", Icon: "fa-list-check", Background: "#f6f6f4", Foreground: "#1f4040"},
	content.ExerciseBox: {Accent: "#a85b8b", Icon: "fa-question-circle", Background: "#a85b8b", Foreground: "white"},
	content.ResourceBox: {Accent: "#109294", Icon: "fa-link", Background: "#109294", Foreground: "white"},
}

type boxView struct {
	Title string
	Body  template.HTML
	List  bool
	Style boxStyle
}

// newBox builds a callout box. The first block titles the box when the run
// has more than one block and it is a heading, or short text with no period.
func newBox(c content.Component, run []content.Block) boxView {
	v := boxView{Style: boxStyles[c], List: htmlutil.HasListMarkup(run)}

	if title, ok := boxTitle(run); ok {
		v.Title = title
		v.Body = boxBody(run[1:], v.List, titledSeparator)
		return v
	}
	v.Body = boxBody(run, v.List, titlelessSeparator)
	return v
}

func boxTitle(run []content.Block) (string, bool) {
	if len(run) < 2 {
		return "", false
	}
	first := htmlutil.TrimmedText(run[0].Content)
	if run[0].Type == content.Heading {
		return first, true
	}
	if utf8.RuneCountInString(first) < maxBoxTitle && !strings.Contains(first, ".") {
		return first, true
	}
	return "", false
}

func boxBody(blocks []content.Block, list bool, sep string) template.HTML {
	if list {
		return template.HTML(htmlutil.JoinRaw(blocks)) // #nosec G203 -- block HTML is allow-listed
	}
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if s := htmlutil.KeepFormatting(b.Content); strings.TrimSpace(s) != "" {
			parts = append(parts, s)
		}
	}
	return template.HTML(strings.Join(parts, sep)) // #nosec G203 -- KeepFormatting escapes text
}
