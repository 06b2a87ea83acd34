// Package group partitions a run of blocks into titled groups for the
// multi-part layouts: tabs, carousel, accordion and the stylised box.
//
// Partitioning is either manual, at stored split indices, or automatic,
// at heading-like blocks. Group titles are block HTML or generated labels.
package group

import (
	"regexp"
	"sort"
	"strconv"

	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/htmlutil"
	"github.com/alnah/go-blockforge/internal/parser"
)

// Group is one section of a multi-part layout.
type Group struct {
	Title  string          `json:"title"`
	Blocks []content.Block `json:"blocks"`
}

// Auto is the result of heading-based grouping.
type Auto struct {
	// MainHeading is the content of a leading heading that was taken as the
	// overall title of the run. It is not part of any group.
	MainHeading string
	Groups      []Group
}

// Generated titles.
const (
	fallbackTitle = "Content"
	leadTitle     = "Section 1"
)

// Maximum number of columns in a balanced stylised box.
const maxColumns = 3

var headingTag = regexp.MustCompile(`(?i)<h[1-6]\b`)

// IsHeading reports whether b starts a group: a heading block, or one whose
// stripped text is heading-like.
func IsHeading(b content.Block) bool {
	if b.Type == content.Heading {
		return true
	}
	return parser.IsHeadingLike(htmlutil.TrimmedText(b.Content))
}

// ByHeadings groups blocks at heading-like blocks. A leading heading followed
// by another within three blocks is the overall title and is skipped. Content
// before the first heading goes in a group titled "Section 1"; a run with no
// groups at all becomes one group titled "Content".
func ByHeadings(blocks []content.Block) Auto {
	var res Auto
	start := 0
	if len(blocks) > 0 && IsHeading(blocks[0]) {
		for _, b := range blocks[1:min(4, len(blocks))] {
			if IsHeading(b) {
				res.MainHeading = blocks[0].Content
				start = 1
				break
			}
		}
	}

	var cur *Group
	for _, b := range blocks[start:] {
		if IsHeading(b) {
			if cur != nil && len(cur.Blocks) > 0 {
				res.Groups = append(res.Groups, *cur)
			}
			cur = &Group{Title: b.Content}
			continue
		}
		if cur == nil {
			cur = &Group{Title: leadTitle}
		}
		cur.Blocks = append(cur.Blocks, b)
	}
	if cur != nil && (len(cur.Blocks) > 0 || cur.Title != "") {
		res.Groups = append(res.Groups, *cur)
	}

	if len(res.Groups) == 0 && len(blocks) > 0 {
		res.Groups = []Group{{Title: fallbackTitle, Blocks: blocks[start:]}}
	}
	return res
}

// Manual partitions blocks at splits. Indices are sorted and those outside
// (previous split, len(blocks)] are ignored. A partition whose first block
// is heading-like takes it as its title.
func Manual(blocks []content.Block, splits []int) []Group {
	sorted := append([]int(nil), splits...)
	sort.Ints(sorted)

	var groups []Group
	start := 0
	for _, at := range sorted {
		if at > start && at <= len(blocks) {
			groups = append(groups, fromBlocks(blocks[start:at]))
			start = at
		}
	}
	if start < len(blocks) {
		groups = append(groups, fromBlocks(blocks[start:]))
	}
	return groups
}

func fromBlocks(blocks []content.Block) Group {
	if IsHeading(blocks[0]) {
		return Group{Title: blocks[0].Content, Blocks: blocks[1:]}
	}
	return Group{Blocks: blocks}
}

// Tabs groups a tab set. Missing or generated titles become "Tab N".
func Tabs(blocks []content.Block, splits []int) []Group {
	if len(splits) > 0 {
		groups := Manual(blocks, splits)
		for i := range groups {
			if groups[i].Title == "" {
				groups[i].Title = "Tab " + strconv.Itoa(i+1)
			}
		}
		return groups
	}

	groups := ByHeadings(blocks).Groups
	for i := range groups {
		switch groups[i].Title {
		case "", fallbackTitle, "Section " + strconv.Itoa(i+1):
			groups[i].Title = "Tab " + strconv.Itoa(i+1)
		}
	}
	return groups
}

// Carousel groups slides. Automatic groups without a title become "Slide N".
func Carousel(blocks []content.Block, splits []int) []Group {
	if len(splits) > 0 {
		return Manual(blocks, splits)
	}
	groups := ByHeadings(blocks).Groups
	for i := range groups {
		if groups[i].Title == "" {
			groups[i].Title = "Slide " + strconv.Itoa(i+1)
		}
	}
	return groups
}

// Accordion groups disclosure sections.
//
// Unlike the other layouts, a nil splits auto-detects while a non-nil empty
// splits yields a single group holding the whole run. Applying a smart
// component to one block stores exactly such an empty slice.
func Accordion(blocks []content.Block, splits []int) []Group {
	if splits == nil {
		return ByHeadings(blocks).Groups
	}
	return Manual(blocks, splits)
}

// StylisedBox groups the cards of a stylised content box: at manual splits,
// else at one to four headings (blocks before the first heading are not
// shown), else into up to three balanced columns.
func StylisedBox(blocks []content.Block, splits []int) []Group {
	if len(splits) > 0 {
		return Manual(blocks, splits)
	}

	var headings []int
	for i, b := range blocks {
		if IsHeading(b) {
			headings = append(headings, i)
		}
	}
	if len(headings) > 0 && len(headings) <= 4 {
		groups := make([]Group, 0, len(headings))
		for i, at := range headings {
			end := len(blocks)
			if i+1 < len(headings) {
				end = headings[i+1]
			}
			groups = append(groups, Group{Title: blocks[at].Content, Blocks: blocks[at+1 : end]})
		}
		return groups
	}

	return Columns(blocks)
}

// Columns splits blocks into min(3, ceil(n/2)) columns of ceil(n/cols)
// blocks. A column opening with a heading takes it as its title.
func Columns(blocks []content.Block) []Group {
	n := len(blocks)
	if n == 0 {
		return nil
	}
	cols := min(maxColumns, ceilDiv(n, 2))
	per := ceilDiv(n, cols)

	var groups []Group
	for i := 0; i < n; i += per {
		col := blocks[i:min(i+per, n)]
		if IsHeading(col[0]) {
			groups = append(groups, Group{Title: col[0].Content, Blocks: col[1:]})
		} else {
			groups = append(groups, Group{Blocks: col})
		}
	}
	return groups
}

// AutoSplitPoints proposes split indices when a smart component is applied:
// every heading after the first block, or every index when there is none.
func AutoSplitPoints(blocks []content.Block) []int {
	splits := []int{}
	for i, b := range blocks {
		if i > 0 && (b.Type == content.Heading || headingTag.MatchString(b.Content)) {
			splits = append(splits, i)
		}
	}
	if len(splits) > 0 {
		return splits
	}
	for i := 1; i < len(blocks); i++ {
		splits = append(splits, i)
	}
	return splits
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}
