// Package normalize turns clipboard and editor payloads into canonical HTML
// restricted to the block allow-list.
//
// Rich payloads have their legacy and inline-styled formatting rewritten to
// semantic tags, then pass through a bluemonday policy. Plain-text payloads
// go through a goldmark parser reduced to paragraphs and emphasis.
package normalize

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/util"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-blockforge/internal/sanitize"
)

// Payload is a clipboard payload. Either variant may be empty.
type Payload struct {
	HTML      string `json:"html,omitempty"`
	PlainText string `json:"plainText,omitempty"`
}

var (
	boldStyle      = regexp.MustCompile(`(?i)font-weight\s*:\s*(bold|700|800|900)`)
	italicStyle    = regexp.MustCompile(`(?i)font-style\s*:\s*italic`)
	underlineStyle = regexp.MustCompile(`(?i)text-decoration(?:-line)?\s*:[^;]*underline`)
	whitespaceRun  = regexp.MustCompile(`\s+`)
)

// Normalizer converts payloads to canonical HTML. It is safe for concurrent use.
type Normalizer struct {
	policy *bluemonday.Policy
	md     goldmark.Markdown
}

// New creates a Normalizer with the paste-stage allow-list.
func New() *Normalizer {
	p := bluemonday.NewPolicy()
	p.AllowElements("p", "h1", "h2", "h3", "h4", "h5", "h6",
		"strong", "em", "u", "ul", "ol", "li", "br")
	p.AllowAttrs("href", "target", "rel").OnElements("a")
	p.AllowStandardURLs()
	p.RequireNoFollowOnLinks(false)

	md := goldmark.New(
		goldmark.WithParser(parser.NewParser(
			parser.WithBlockParsers(util.Prioritized(parser.NewParagraphParser(), 1000)),
			parser.WithInlineParsers(util.Prioritized(parser.NewEmphasisParser(), 500)),
		)),
	)

	return &Normalizer{policy: p, md: md}
}

// Clipboard normalizes a clipboard payload. The HTML variant wins when it
// carries any text; otherwise the plain-text variant is used. ok is false
// when neither yields content, in which case callers leave blocks unchanged.
func (n *Normalizer) Clipboard(p Payload) (out string, ok bool) {
	if strings.TrimSpace(p.HTML) != "" {
		if out = n.HTML(p.HTML); hasText(out) {
			return out, true
		}
	}
	if strings.TrimSpace(p.PlainText) != "" {
		if out = n.PlainText(p.PlainText); hasText(out) {
			return out, true
		}
	}
	return "", false
}

// HTML rewrites legacy and style-based formatting to semantic tags,
// collapses newlines and sanitizes to the paste allow-list.
func (n *Normalizer) HTML(raw string) string {
	raw = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(raw)

	root := sanitize.ParseFragment(raw)
	rewriteFormatting(root)

	clean := n.policy.Sanitize(sanitize.Render(root))
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(clean, " "))
}

// PlainText converts markdown-like emphasis and blank-line paragraphs to HTML.
func (n *Normalizer) PlainText(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")

	var buf bytes.Buffer
	if err := n.md.Convert([]byte(text), &buf); err != nil {
		// Conversion into a bytes.Buffer only fails on writer errors.
		return ""
	}

	out := strings.ReplaceAll(buf.String(), "</p>\n", "</p>")
	return strings.TrimSpace(strings.ReplaceAll(out, "\n", " "))
}

// rewriteFormatting renames b/i and wraps the children of inline-styled
// elements in the semantic tag their style expresses.
func rewriteFormatting(n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type != html.ElementNode {
			continue
		}
		switch c.DataAtom {
		case atom.B:
			c.DataAtom, c.Data = atom.Strong, "strong"
		case atom.I:
			c.DataAtom, c.Data = atom.Em, "em"
		}
		rewriteFormatting(c)
		if style, ok := sanitize.Attr(c, "style"); ok {
			if underlineStyle.MatchString(style) {
				wrapChildren(c, atom.U)
			}
			if italicStyle.MatchString(style) {
				wrapChildren(c, atom.Em)
			}
			if boldStyle.MatchString(style) {
				wrapChildren(c, atom.Strong)
			}
		}
	}
}

func wrapChildren(n *html.Node, a atom.Atom) {
	wrapper := &html.Node{Type: html.ElementNode, DataAtom: a, Data: a.String()}
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		wrapper.AppendChild(c)
		c = next
	}
	n.AppendChild(wrapper)
}

func hasText(fragment string) bool {
	return strings.TrimSpace(sanitize.Text(sanitize.ParseFragment(fragment))) != ""
}
