// Package sanitize filters HTML trees against tag and attribute allow-lists.
//
// Filtering is a pure tree transform over golang.org/x/net/html nodes: every
// element is kept, unwrapped (children hoisted into its place) or dropped
// with its subtree. Text is never discarded except inside dropped elements.
package sanitize

import (
	"net/url"
	"strings"

	"golang.org/x/net/html"
)

// Action is the fate of one element under a policy.
type Action int

// Element actions.
const (
	Keep Action = iota
	Unwrap
	Drop
)

// Policy is an allow-list of tags and attributes.
type Policy struct {
	Tags  map[string]bool // allowed element names
	Attrs map[string]bool // allowed attribute keys, on any allowed element
}

// dropped elements lose their subtree: their text is code, metadata or
// embedded media, never authored content.
var dropped = map[string]bool{
	"script": true, "style": true, "head": true, "title": true, "meta": true, "link": true,
	"template": true, "noscript": true, "iframe": true, "object": true, "embed": true,
	"svg": true, "math": true, "xml": true,
}

// Editor allows the canonical block tags plus the wrapper markup the editing
// surface round-trips (div/span with block data attributes and classes).
var Editor = &Policy{
	Tags: set("p", "h1", "h2", "h3", "h4", "h5", "h6", "strong", "em", "u",
		"ul", "ol", "li", "br", "div", "span", "a"),
	Attrs: set("data-block-id", "data-block-type", "class", "href", "target", "rel"),
}

// Content allows only the canonical block tags.
var Content = &Policy{
	Tags: set("p", "h1", "h2", "h3", "h4", "h5", "h6", "strong", "em", "u",
		"ul", "ol", "li", "br", "a"),
	Attrs: set("href", "target", "rel"),
}

// Sanitize parses fragment, filters it and serializes the result.
func (p *Policy) Sanitize(fragment string) string {
	root := ParseFragment(fragment)
	p.Filter(root)
	return Render(root)
}

// Filter applies the policy to the children of n in place.
func (p *Policy) Filter(n *html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		switch c.Type {
		case html.ElementNode:
			switch p.action(c) {
			case Drop:
				n.RemoveChild(c)
			case Unwrap:
				p.Filter(c)
				for gc := c.FirstChild; gc != nil; {
					gnext := gc.NextSibling
					c.RemoveChild(gc)
					n.InsertBefore(gc, c)
					gc = gnext
				}
				n.RemoveChild(c)
			default:
				c.Attr = p.filterAttrs(c.Attr)
				p.Filter(c)
			}
		case html.CommentNode, html.DoctypeNode:
			n.RemoveChild(c)
		}
		c = next
	}
}

func (p *Policy) action(n *html.Node) Action {
	name := strings.ToLower(n.Data)
	if dropped[name] {
		return Drop
	}
	if n.Namespace == "" && p.Tags[name] {
		return Keep
	}
	return Unwrap
}

func (p *Policy) filterAttrs(attrs []html.Attribute) []html.Attribute {
	out := attrs[:0]
	for _, a := range attrs {
		if a.Namespace != "" || !p.Attrs[a.Key] {
			continue
		}
		if a.Key == "href" && !SafeURL(a.Val) {
			continue
		}
		out = append(out, a)
	}
	return out
}

// SafeURL reports whether an href value is relative, an anchor, or uses the
// http, https or mailto scheme.
func SafeURL(raw string) bool {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	switch strings.ToLower(u.Scheme) {
	case "", "http", "https", "mailto":
		return true
	}
	return false
}

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}
