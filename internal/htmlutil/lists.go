package htmlutil

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/alnah/go-blockforge/internal/sanitize"
)

var (
	linkPattern     = regexp.MustCompile(`(?is)<a\b[^>]*>.*?</a>`)
	paragraphEdges  = regexp.MustCompile(`(?i)^<p[^>]*>|</p>$`)
	numberPrefix    = regexp.MustCompile(`^\s*\d+\.\s+`)
	letterPrefix    = regexp.MustCompile(`^\s*[a-zA-Z]\.\s+`)
	romanPrefix     = regexp.MustCompile(`(?i)^\s*(?:i{1,3}|iv|v|vi{0,3}|ix|x)\.\s+`)
	parenPrefix     = regexp.MustCompile(`^\s*\([a-zA-Z0-9]+\)\s+`)
	bulletPrefix    = regexp.MustCompile(`^\s*[•·▪▫‣⁃-]\s+`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
	indicatorPrefix = regexp.MustCompile(`^(\d+[.)]\s*|[a-zA-Z][.)]\s*|[•·▪▫‣⁃-]\s*)`)
	lineBreak       = regexp.MustCompile(`(?i)\n|<br\s*/?>`)
	linkToken       = regexp.MustCompile(`__LINK_(\d+)__`)
)

// CleanListItem strips list numbering, bullets and paragraph tags from an
// item's HTML and collapses whitespace. Links are preserved untouched.
func CleanListItem(item string) string {
	if item == "" {
		return ""
	}

	var links []string
	cleaned := linkPattern.ReplaceAllStringFunc(item, func(m string) string {
		links = append(links, m)
		return "__LINK_" + strconv.Itoa(len(links)-1) + "__"
	})

	cleaned = paragraphEdges.ReplaceAllString(cleaned, "")
	cleaned = numberPrefix.ReplaceAllString(cleaned, "")
	cleaned = letterPrefix.ReplaceAllString(cleaned, "")
	cleaned = romanPrefix.ReplaceAllString(cleaned, "")
	cleaned = parenPrefix.ReplaceAllString(cleaned, "")
	cleaned = bulletPrefix.ReplaceAllString(cleaned, "")
	cleaned = strings.ReplaceAll(cleaned, "&nbsp;", " ")
	cleaned = strings.ReplaceAll(cleaned, " ", " ")
	cleaned = strings.TrimSpace(whitespaceRun.ReplaceAllString(cleaned, " "))

	if indicatorPrefix.MatchString(cleaned) {
		cleaned = strings.TrimSpace(indicatorPrefix.ReplaceAllString(cleaned, ""))
	}

	return linkToken.ReplaceAllStringFunc(cleaned, func(m string) string {
		i, err := strconv.Atoi(linkToken.FindStringSubmatch(m)[1])
		if err != nil || i >= len(links) {
			return m
		}
		return links[i]
	})
}

// ExtractListItems returns the cleaned items of a fragment: the inner HTML
// of each li when present, else of each p, else each line split on newlines
// and <br> (lines of two characters or fewer are dropped).
func ExtractListItems(fragment string) []string {
	if fragment == "" {
		return nil
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		return nil
	}

	var items []string
	collect := func(sel *goquery.Selection) {
		sel.Each(func(_ int, s *goquery.Selection) {
			inner, err := s.Html()
			if err != nil {
				return
			}
			if item := CleanListItem(strings.TrimSpace(inner)); item != "" {
				items = append(items, item)
			}
		})
	}

	if li := doc.Find("li"); li.Length() > 0 {
		collect(li)
		return items
	}
	if p := doc.Find("p"); p.Length() > 0 {
		collect(p)
		return items
	}

	serialized := sanitize.Render(sanitize.ParseFragment(fragment))
	for _, line := range lineBreak.Split(serialized, -1) {
		item := CleanListItem(strings.TrimSpace(line))
		if len([]rune(item)) > 2 {
			items = append(items, item)
		}
	}
	return items
}
