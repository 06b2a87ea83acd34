package parser

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/rules"
)

// Prose longer than this is never read as a list item.
const maxMarkerText = 500

// Go's \s is ASCII-only; pasted bullets are usually followed by a no-break space.
const space = `[\s\x{00A0}]+`

var (
	bulletMarker  = regexp.MustCompile(`^[•·○●◦‣⁃▪▫■□✓✔➢➣➤➔→⇒\x{2219}\x{204C}\x{204D}]` + space)
	dashMarker    = regexp.MustCompile(`^[-−–—*]` + space)
	numericMarker = regexp.MustCompile(`^(?:\d+[.)]|\(\d+\))` + space)
	alphaMarker   = regexp.MustCompile(`^(?:[a-zA-Z][.)]|\([a-zA-Z]\))` + space)
	romanMarker   = regexp.MustCompile(`(?i)^(?:i{1,3}|iv|v|vi{0,3}|ix|x|xi{0,3})[.)]` + space)

	sentencePunct = regexp.MustCompile(`[.!?]`)
	startsUpper   = regexp.MustCompile(`^[A-Z]`)
)

// marker is a list-marker family. A nil prefix rejects the text outright;
// accept, when set, vets the remainder and a rejection is final.
type marker struct {
	listType content.ListType
	prefix   *regexp.Regexp
	accept   func(rest string) bool
}

// markerRules run in precedence order. The first prefix that matches decides,
// even when its guard then rejects the text, so "i. e. something" is never
// retried as a roman numeral.
var markerRules = []rules.Rule[string, marker]{
	{
		Name:  "prose",
		Match: func(s string) bool { return utf8.RuneCountInString(s) > maxMarkerText },
	},
	{
		Name:  "bullet",
		Match: bulletMarker.MatchString,
		Then:  marker{listType: content.BulletList, prefix: bulletMarker},
	},
	{
		Name:  "dash",
		Match: dashMarker.MatchString,
		Then:  marker{listType: content.BulletList, prefix: dashMarker, accept: looksLikeItem},
	},
	{
		Name:  "numeric",
		Match: numericMarker.MatchString,
		Then:  marker{listType: content.NumericList, prefix: numericMarker},
	},
	{
		Name:  "alpha",
		Match: alphaMarker.MatchString,
		Then: marker{listType: content.AlphaList, prefix: alphaMarker, accept: func(rest string) bool {
			return startsUpper.MatchString(rest) || utf8.RuneCountInString(rest) > 20
		}},
	},
	{
		Name:  "roman",
		Match: romanMarker.MatchString,
		Then:  marker{listType: content.NumericList, prefix: romanMarker},
	},
}

// looksLikeItem rejects em-dash prose and markdown emphasis behind a dash.
func looksLikeItem(rest string) bool {
	return utf8.RuneCountInString(rest) < 300 &&
		len(sentencePunct.FindAllStringIndex(rest, -1)) <= 2 &&
		startsUpper.MatchString(rest)
}

// DetectMarker reports whether text opens with a list-item marker. It returns
// the list type and the text with the marker removed.
func DetectMarker(text string) (content.ListType, string, bool) {
	trimmed := strings.TrimSpace(text)
	m, ok := rules.First(markerRules, trimmed)
	if !ok || m.prefix == nil {
		return content.NoList, trimmed, false
	}
	rest := strings.TrimSpace(m.prefix.ReplaceAllString(trimmed, ""))
	if m.accept != nil && !m.accept(rest) {
		return content.NoList, trimmed, false
	}
	return m.listType, rest, true
}

// IsMarker reports whether text opens with a list-item marker.
func IsMarker(text string) bool {
	_, _, ok := DetectMarker(text)
	return ok
}
