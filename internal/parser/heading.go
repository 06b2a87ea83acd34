package parser

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/alnah/go-blockforge/internal/nlp"
	"github.com/alnah/go-blockforge/internal/rules"
)

// Headings longer than this read as prose.
const maxHeadingText = 100

// Heading pattern names returned by HeadingPattern.
const (
	PatternKeyword       = "keyword"
	PatternDivision      = "division"
	PatternNumbered      = "numbered"
	PatternCapitalised   = "capitalised"
	PatternInterrogative = "interrogative"
)

var (
	keywordHeading       = regexp.MustCompile(`(?i)^(?:introduction|overview|summary|conclusion|background|objectives?|goals?)`)
	divisionHeading      = regexp.MustCompile(`(?i)^(?:part|chapter|section|module|unit|lesson|topic|week)\s+`)
	numberedHeading      = regexp.MustCompile(`^\d+[.)]\s+`)
	capitalisedHeading   = regexp.MustCompile(`^[A-Z][^.!?]*$`)
	interrogativeHeading = regexp.MustCompile(`(?i)^(?:what|why|how|when|where|who)\s+`)
	finalPunct           = regexp.MustCompile(`[.!?]$`)
)

var headingPatterns = []rules.Rule[string, bool]{
	{Name: PatternKeyword, Match: keywordHeading.MatchString, Then: true},
	{Name: PatternDivision, Match: divisionHeading.MatchString, Then: true},
	{Name: PatternNumbered, Match: numberedHeading.MatchString, Then: true},
	{Name: PatternCapitalised, Match: capitalisedHeading.MatchString, Then: true},
	{Name: PatternInterrogative, Match: interrogativeHeading.MatchString, Then: true},
}

// HeadingPattern returns the name of the first heading pattern text matches,
// or "" when none does.
func HeadingPattern(text string) string {
	return rules.FirstName(headingPatterns, text)
}

// ShouldBeHeading reports whether a line of plain text reads as a heading:
// short, with at most one sentence mark, and either matching a heading
// pattern or being a short capitalised noun phrase without final punctuation.
func ShouldBeHeading(text string) bool {
	if utf8.RuneCountInString(text) > maxHeadingText || len(sentencePunct.FindAllStringIndex(text, -1)) > 1 {
		return false
	}
	if HeadingPattern(text) != "" {
		return true
	}
	return IsCapitalised(text) &&
		len(strings.Split(text, " ")) < 8 &&
		nlp.HasNoun(text) &&
		!finalPunct.MatchString(text)
}

// IsHeadingLike is the stricter variant used for grouping: non-empty, short,
// no final sentence punctuation and a heading pattern match.
func IsHeadingLike(text string) bool {
	if text == "" || utf8.RuneCountInString(text) > maxHeadingText || finalPunct.MatchString(text) {
		return false
	}
	return HeadingPattern(text) != ""
}

// IsCapitalised reports whether text opens with an upper-case letter or a
// digit. A leading dash or bullet does not count.
func IsCapitalised(text string) bool {
	r, _ := utf8.DecodeRuneInString(text)
	return unicode.IsUpper(r) || unicode.IsDigit(r)
}
