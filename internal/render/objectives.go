package render

import (
	"html"
	"html/template"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-blockforge/internal/classify"
	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/htmlutil"
	"github.com/alnah/go-blockforge/internal/sanitize"
)

const (
	defaultObjectivesTitle = "Learning Objectives"
	defaultObjectivesLead  = "By the end of this section, you will be able to:"
	maxObjectivesTitle     = 100
	maxObjectivesLead      = 300
	minObjective           = 5
)

var (
	boldEdges       = regexp.MustCompile(`^\*\*|\*\*$`)
	objectiveNumber = regexp.MustCompile(`^\d+\.\s*`)
	objectiveLetter = regexp.MustCompile(`^[a-zA-Z]\.\s*`)
	objectiveBullet = regexp.MustCompile(`^[•·▪▫‣⁃-]\s*`)
	spaces          = regexp.MustCompile(`\s+`)
	titleCue        = regexp.MustCompile(`objective|goal|outcome|learn|will i`)
	leadCue         = regexp.MustCompile(`will be able to|you will|skills and knowledge|by the end|after this|provide you|^(?:this|the|by|after)\b`)
)

type objectivesView struct {
	Title      string
	SubHeading string
	Objectives []template.HTML
}

// parseObjectives reads a learning-objectives run: an optional title line,
// an optional lead-in line, then one objective per remaining line. A run of
// several blocks reads one line per block; a single block the classifier
// recognises is split into lines; any other single block falls back to its
// list items under the default headings.
func parseObjectives(run []content.Block) objectivesView {
	v := objectivesView{Title: defaultObjectivesTitle, SubHeading: defaultObjectivesLead}

	var lines []string
	switch {
	case len(run) > 1:
		for _, b := range run {
			if s := htmlutil.TrimmedText(b.Content); s != "" {
				lines = append(lines, s)
			}
		}
	case len(run) == 1 && isObjectivesBlock(run[0]):
		lines = textLines(run[0].Content)
	default:
		if len(run) == 1 {
			v.Objectives = safe(htmlutil.ExtractListItems(run[0].Content))
		}
		return v
	}

	if len(lines) > 0 && looksLikeObjectivesTitle(lines[0]) {
		v.Title = cleanTitle(lines[0])
		lines = lines[1:]
	}
	if len(lines) > 0 && looksLikeLead(lines[0]) {
		v.SubHeading = cleanTitle(lines[0])
		lines = lines[1:]
	}
	for _, l := range lines {
		if item := cleanObjective(l); utf8.RuneCountInString(item) > minObjective {
			v.Objectives = append(v.Objectives, template.HTML(html.EscapeString(item))) // #nosec G203 -- escaped
		}
	}
	return v
}

func isObjectivesBlock(b content.Block) bool {
	c, ok := classify.Suggest(b)
	return ok && c == content.LearningObjectives
}

func looksLikeObjectivesTitle(text string) bool {
	if utf8.RuneCountInString(text) > maxObjectivesTitle {
		return false
	}
	lower := strings.ToLower(boldEdges.ReplaceAllString(text, ""))
	return titleCue.MatchString(lower) || shouting(text) || strings.HasSuffix(text, "?")
}

// shouting reports whether text has letters and all of them are upper case.
func shouting(text string) bool {
	letters := false
	for _, r := range text {
		if unicode.IsLetter(r) {
			letters = true
			if !unicode.IsUpper(r) {
				return false
			}
		}
	}
	return letters
}

func looksLikeLead(text string) bool {
	if utf8.RuneCountInString(text) > maxObjectivesLead {
		return false
	}
	return leadCue.MatchString(strings.ToLower(boldEdges.ReplaceAllString(text, "")))
}

func cleanTitle(text string) string {
	return strings.TrimSpace(boldEdges.ReplaceAllString(text, ""))
}

func cleanObjective(text string) string {
	s := strings.TrimSpace(text)
	s = boldEdges.ReplaceAllString(s, "")
	s = objectiveNumber.ReplaceAllString(s, "")
	s = objectiveLetter.ReplaceAllString(s, "")
	s = objectiveBullet.ReplaceAllString(s, "")
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

// textLines returns the non-empty trimmed lines of a fragment's text, with
// line breaks at br and at block-level element boundaries.
func textLines(fragment string) []string {
	var buf strings.Builder
	var walk func(n *xhtml.Node)
	walk = func(n *xhtml.Node) {
		switch n.Type {
		case xhtml.TextNode:
			buf.WriteString(n.Data)
			return
		case xhtml.ElementNode:
			if n.DataAtom == atom.Br {
				buf.WriteByte('\n')
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
		if n.Type == xhtml.ElementNode && breaksLine(n.DataAtom) {
			buf.WriteByte('\n')
		}
	}
	walk(sanitize.ParseFragment(fragment))

	var lines []string
	for _, l := range strings.Split(buf.String(), "\n") {
		if l = strings.TrimSpace(l); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func breaksLine(a atom.Atom) bool {
	switch a {
	case atom.P, atom.Div, atom.Li, atom.Ul, atom.Ol,
		atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6:
		return true
	}
	return false
}
