// Package htmlutil projects block HTML into the text forms the renderer and
// analyzers need: plain text, formatting-only HTML, joined bodies and list
// items.
//
// Every function accepts arbitrary fragments and never fails; malformed
// markup degrades to whatever text the HTML parser recovers.
package htmlutil

import (
	"html"
	"strings"

	xhtml "golang.org/x/net/html"

	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/sanitize"
)

// Text returns the decoded text content of an HTML fragment.
func Text(fragment string) string {
	if fragment == "" {
		return ""
	}
	if !strings.ContainsAny(fragment, "<&") {
		return fragment
	}
	return sanitize.Text(sanitize.ParseFragment(fragment))
}

// TrimmedText returns Text with surrounding whitespace removed.
func TrimmedText(fragment string) string {
	return strings.TrimSpace(Text(fragment))
}

// ComparisonText returns lower-cased text with whitespace runs collapsed.
func ComparisonText(fragment string) string {
	return strings.ToLower(strings.Join(strings.Fields(Text(fragment)), " "))
}

// EscapedText returns the text content escaped for insertion into HTML.
func EscapedText(fragment string) string {
	return html.EscapeString(Text(fragment))
}

// KeepFormatting drops every tag except strong, em, u and a, converting
// b to strong and i to em. Links keep href, target and rel; a link with an
// href but no target opens in a new tab with noopener.
func KeepFormatting(fragment string) string {
	if fragment == "" {
		return ""
	}
	root := sanitize.ParseFragment(fragment)
	var buf strings.Builder
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		writeFormatting(&buf, c)
	}
	return buf.String()
}

func writeFormatting(buf *strings.Builder, n *xhtml.Node) {
	switch n.Type {
	case xhtml.TextNode:
		buf.WriteString(html.EscapeString(n.Data))
		return
	case xhtml.ElementNode:
	default:
		return
	}

	tag := strings.ToLower(n.Data)
	switch tag {
	case "b":
		tag = "strong"
	case "i":
		tag = "em"
	case "script", "style":
		return
	}

	var inner strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		writeFormatting(&inner, c)
	}

	switch tag {
	case "strong", "em", "u":
		buf.WriteString("<" + tag + ">" + inner.String() + "</" + tag + ">")
	case "a":
		buf.WriteString("<a" + linkAttrs(n) + ">" + inner.String() + "</a>")
	default:
		buf.WriteString(inner.String())
	}
}

func linkAttrs(n *xhtml.Node) string {
	href, _ := sanitize.Attr(n, "href")
	if !sanitize.SafeURL(href) {
		href = ""
	}
	target, _ := sanitize.Attr(n, "target")
	rel, _ := sanitize.Attr(n, "rel")

	attrs := ` href="` + html.EscapeString(href) + `"`
	if target != "" {
		attrs += ` target="` + html.EscapeString(target) + `"`
	}
	if rel != "" {
		attrs += ` rel="` + html.EscapeString(rel) + `"`
	}
	if href != "" && target == "" {
		attrs += ` target="_blank" rel="noopener noreferrer"`
	}
	return attrs
}

// JoinText joins the text of blocks with single spaces, skipping empty
// blocks. With keepFormatting the inline formatting survives; otherwise the
// text is escaped plain text. The result is safe to insert as HTML.
func JoinText(blocks []content.Block, keepFormatting bool) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if s := project(b.Content, keepFormatting); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

// JoinParagraphs wraps each non-empty block text in <p> and concatenates them.
func JoinParagraphs(blocks []content.Block, keepFormatting bool) string {
	var buf strings.Builder
	for _, b := range blocks {
		if s := project(b.Content, keepFormatting); s != "" {
			buf.WriteString("<p>" + s + "</p>")
		}
	}
	return buf.String()
}

// JoinRaw joins block content verbatim with newlines.
func JoinRaw(blocks []content.Block) string {
	parts := make([]string, len(blocks))
	for i, b := range blocks {
		parts[i] = b.Content
	}
	return strings.Join(parts, "\n")
}

// HasListMarkup reports whether any block contains a ul or ol element.
func HasListMarkup(blocks []content.Block) bool {
	for _, b := range blocks {
		if strings.Contains(b.Content, "<ul") || strings.Contains(b.Content, "<ol") {
			return true
		}
	}
	return false
}

// PlainText joins the trimmed text of all blocks with spaces.
func PlainText(blocks []content.Block) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		if s := TrimmedText(b.Content); s != "" {
			parts = append(parts, s)
		}
	}
	return strings.Join(parts, " ")
}

func project(fragment string, keepFormatting bool) string {
	if keepFormatting {
		return KeepFormatting(fragment)
	}
	return EscapedText(fragment)
}

// TruncateTitle shortens title to max runes, cutting at the last space when
// it falls within the final ten runes, and appends "...". An empty title
// becomes "Tab".
func TruncateTitle(title string, max int) string {
	if title == "" {
		return "Tab"
	}
	r := []rune(title)
	if len(r) <= max {
		return title
	}
	truncated := string(r[:max])
	if last := strings.LastIndex(truncated, " "); last >= 0 && len([]rune(truncated[:last])) > max-10 {
		return truncated[:last] + "..."
	}
	return truncated + "..."
}

// Clip cuts s to keep runes and appends "..." when s is longer than max.
func Clip(s string, max, keep int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:keep]) + "..."
}
