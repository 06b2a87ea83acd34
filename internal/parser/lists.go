package parser

import (
	"strings"
	"unicode"

	xhtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/htmlutil"
	"github.com/alnah/go-blockforge/internal/sanitize"
)

// convertParagraphLists turns paragraphs whose text opens with a list marker
// into list items, one block per paragraph. Each item keeps its id and inline
// formatting, loses its marker, and takes the detected list type as both
// ListType and Component so consecutive items render as one list.
func convertParagraphLists(blocks []content.Block) []content.Block {
	out := make([]content.Block, 0, len(blocks))
	for _, b := range blocks {
		if b.Type != content.Paragraph {
			out = append(out, b)
			continue
		}
		text := htmlutil.TrimmedText(b.Content)
		lt, rest, ok := DetectMarker(text)
		if !ok {
			out = append(out, b)
			continue
		}
		item := stripLeadingText(htmlutil.KeepFormatting(b.Content), len(text)-len(rest))
		out = append(out, content.Block{
			ID:        b.ID,
			Type:      content.Paragraph,
			Content:   "<p>" + item + "</p>",
			ListType:  lt,
			Component: lt.Component(),
		})
	}
	return out
}

// stripLeadingText removes leading whitespace and then n bytes of text from
// the start of fragment's text stream, across element boundaries. Formatting
// elements emptied by the cut are removed.
func stripLeadingText(fragment string, n int) string {
	root := sanitize.ParseFragment(fragment)
	skipSpace := true
	var cut func(node *xhtml.Node) bool
	cut = func(node *xhtml.Node) bool {
		for c := node.FirstChild; c != nil; {
			next := c.NextSibling
			switch c.Type {
			case xhtml.TextNode:
				if skipSpace {
					c.Data = strings.TrimLeftFunc(c.Data, unicode.IsSpace)
					if c.Data == "" {
						node.RemoveChild(c)
						c = next
						continue
					}
					skipSpace = false
				}
				if n >= len(c.Data) {
					n -= len(c.Data)
					node.RemoveChild(c)
				} else {
					c.Data = strings.TrimLeftFunc(c.Data[n:], unicode.IsSpace)
					n = 0
				}
			case xhtml.ElementNode:
				done := cut(c)
				if c.FirstChild == nil && c.DataAtom != atom.Br {
					node.RemoveChild(c)
				}
				if done {
					return true
				}
			}
			if n == 0 && !skipSpace {
				return true
			}
			c = next
		}
		return false
	}
	cut(root)
	return strings.TrimSpace(sanitize.Render(root))
}
