// Package parser splits canonical HTML into an ordered sequence of content
// blocks, detecting headings, list sub-types and paragraphs that are really
// list items in disguise.
package parser

import (
	"html"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/sanitize"
)

// Editor-surface classes.
const (
	classBlock      = "content-block"
	classBlockBody  = "block-content"
	classComponent  = "component-indicator"
	classSuggestion = "suggestion-indicator"
)

// Editor-surface attributes.
const (
	attrBlockID   = "data-block-id"
	attrBlockType = "data-block-type"
)

var (
	blankLine     = regexp.MustCompile(`\n[ \t]*\n`)
	lettered      = regexp.MustCompile(`(?i)^[a-z][.)]\s`)
	alphaListType = []string{"lower-alpha", "upper-alpha", "lower-latin", "upper-latin"}
)

// Parser turns canonical HTML into blocks. The zero value is ready to use.
type Parser struct {
	// NewID mints ids for elements that carry none. Defaults to content.NewID.
	NewID func() string
}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse splits fragment into blocks. Empty or whitespace-only input yields
// nil; any other input yields at least one block.
func (p *Parser) Parse(fragment string) []content.Block {
	if strings.TrimSpace(fragment) == "" {
		return nil
	}
	if !strings.Contains(fragment, "<") {
		fragment = paragraphs(fragment)
	}

	root := sanitize.ParseFragment(fragment)
	alpha := alphaHints(root)
	sanitize.Editor.Filter(root)
	wrapInlineRuns(root)

	var blocks []content.Block
	seen := make(map[string]bool)
	for _, el := range sanitize.Elements(root) {
		b, ok := p.block(el, alpha)
		if !ok {
			continue
		}
		// A pasted or duplicated wrapper can repeat an id; later copies get
		// a fresh one so ids stay unique within the result.
		if seen[b.ID] {
			b.ID = p.newID()
		}
		seen[b.ID] = true
		blocks = append(blocks, b)
	}

	if len(blocks) == 0 && strings.TrimSpace(sanitize.Text(root)) != "" {
		blocks = append(blocks, content.Block{
			ID:      p.newID(),
			Type:    content.Paragraph,
			Content: "<p>" + sanitize.Render(root) + "</p>",
		})
	}

	return convertParagraphLists(blocks)
}

func (p *Parser) newID() string {
	if p.NewID != nil {
		return p.NewID()
	}
	return content.NewID()
}

func (p *Parser) block(el *xhtml.Node, alpha map[*xhtml.Node]bool) (content.Block, bool) {
	if isIndicator(el) {
		return content.Block{}, false
	}

	id, _ := sanitize.Attr(el, attrBlockID)
	id = strings.TrimSpace(id)
	wrapper := el.DataAtom == atom.Div && sanitize.HasClass(el, classBlock)
	if !wrapper {
		stripBlockAttrs(el)
	}

	b := content.Block{Type: content.Paragraph, Content: sanitize.OuterHTML(el)}
	text := strings.TrimSpace(sanitize.Text(el))

	switch {
	case sanitize.IsHeading(el):
		b.Type = content.Heading
	case el.DataAtom == atom.Ul || el.DataAtom == atom.Ol:
		b.Type = content.List
		b.ListType = listType(el, alpha)
	case wrapper:
		body := unwrapBlock(el)
		b.Content = body.html
		text = strings.TrimSpace(body.text)
		b.Type = blockType(el)
		if b.Type == content.List && body.list != nil {
			b.ListType = listType(body.list, alpha)
		}
	case el.DataAtom == atom.P:
		if !IsMarker(text) && ShouldBeHeading(text) {
			b.Type = content.Heading
		}
	}

	if text == "" {
		return content.Block{}, false
	}

	b.ID = id
	if b.ID == "" {
		b.ID = p.newID()
	}
	return b, true
}

// stripBlockAttrs removes editor-surface attributes from n and its
// descendants so they never leak into block content.
func stripBlockAttrs(n *xhtml.Node) {
	if n.Type == xhtml.ElementNode {
		attrs := n.Attr[:0]
		for _, a := range n.Attr {
			if a.Key != attrBlockID && a.Key != attrBlockType {
				attrs = append(attrs, a)
			}
		}
		n.Attr = attrs
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		stripBlockAttrs(c)
	}
}

func paragraphs(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	var buf strings.Builder
	for _, run := range blankLine.Split(text, -1) {
		if strings.TrimSpace(run) == "" {
			continue
		}
		buf.WriteString("<p>" + html.EscapeString(run) + "</p>")
	}
	return buf.String()
}

func isIndicator(n *xhtml.Node) bool {
	return n.Type == xhtml.ElementNode &&
		(sanitize.HasClass(n, classComponent) || sanitize.HasClass(n, classSuggestion))
}

func blockType(el *xhtml.Node) content.BlockType {
	v, _ := sanitize.Attr(el, attrBlockType)
	switch t := content.BlockType(v); t {
	case content.Heading, content.List:
		return t
	}
	return content.Paragraph
}

type blockBody struct {
	html string
	text string
	list *xhtml.Node
}

// unwrapBlock returns the content of an editor block wrapper without its
// indicator badges. A block-content child is unwrapped as well.
func unwrapBlock(el *xhtml.Node) blockBody {
	var (
		buf  strings.Builder
		text strings.Builder
		body blockBody
	)
	for c := el.FirstChild; c != nil; c = c.NextSibling {
		switch {
		case isIndicator(c):
			continue
		case c.Type == xhtml.ElementNode && sanitize.HasClass(c, classBlockBody):
			buf.WriteString(sanitize.InnerHTML(c))
		default:
			buf.WriteString(sanitize.OuterHTML(c))
		}
		text.WriteString(sanitize.Text(c))
		if body.list == nil {
			body.list = findList(c)
		}
	}
	body.html = strings.TrimSpace(buf.String())
	body.text = text.String()
	return body
}

func findList(n *xhtml.Node) *xhtml.Node {
	if n.Type == xhtml.ElementNode && (n.DataAtom == atom.Ul || n.DataAtom == atom.Ol) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findList(c); found != nil {
			return found
		}
	}
	return nil
}

// alphaHints records ordered lists whose type or list-style attributes mark
// them as lettered. It runs before sanitization strips those attributes.
func alphaHints(root *xhtml.Node) map[*xhtml.Node]bool {
	hints := make(map[*xhtml.Node]bool)
	goquery.NewDocumentFromNode(root).Find("ol").Each(func(_ int, s *goquery.Selection) {
		if t, ok := s.Attr("type"); ok && (t == "a" || t == "A") {
			hints[s.Nodes[0]] = true
			return
		}
		style := strings.ToLower(s.AttrOr("style", ""))
		if !strings.Contains(style, "list-style-type") {
			return
		}
		for _, v := range alphaListType {
			if strings.Contains(style, v) {
				hints[s.Nodes[0]] = true
				return
			}
		}
	})
	return hints
}

func listType(el *xhtml.Node, alpha map[*xhtml.Node]bool) content.ListType {
	if el.DataAtom == atom.Ul {
		return content.BulletList
	}
	if alpha[el] {
		return content.AlphaList
	}
	items := goquery.NewDocumentFromNode(el).Find("li")
	if items.Length() >= 2 &&
		lettered.MatchString(strings.TrimSpace(items.Eq(0).Text())) &&
		lettered.MatchString(strings.TrimSpace(items.Eq(1).Text())) {
		return content.AlphaList
	}
	return content.NumericList
}

// wrapInlineRuns gathers loose top-level text and inline elements into
// paragraphs so their text becomes a block instead of being skipped.
func wrapInlineRuns(root *xhtml.Node) {
	var run *xhtml.Node
	for c := root.FirstChild; c != nil; {
		next := c.NextSibling
		if !isInline(c) {
			run = nil
			c = next
			continue
		}
		if run == nil {
			run = &xhtml.Node{Type: xhtml.ElementNode, DataAtom: atom.P, Data: "p"}
			root.InsertBefore(run, c)
		}
		root.RemoveChild(c)
		run.AppendChild(c)
		c = next
	}
}

func isInline(n *xhtml.Node) bool {
	switch n.Type {
	case xhtml.TextNode:
		return true
	case xhtml.ElementNode:
		if isIndicator(n) {
			return false
		}
		switch n.DataAtom {
		case atom.Strong, atom.Em, atom.U, atom.A, atom.Br, atom.Span:
			return true
		}
	}
	return false
}
