package nlp

import (
	"regexp"
	"strings"
)

var (
	extraSyllable = []*regexp.Regexp{
		regexp.MustCompile(`ia`), regexp.MustCompile(`eo`), regexp.MustCompile(`oa`),
		regexp.MustCompile(`ua`), regexp.MustCompile(`uo`), regexp.MustCompile(`tion`),
		regexp.MustCompile(`sion`), regexp.MustCompile(`ious`), regexp.MustCompile(`eous`),
		regexp.MustCompile(`ied`),
	}
	silentSyllable = []*regexp.Regexp{
		regexp.MustCompile(`dge$`), regexp.MustCompile(`ked$`), regexp.MustCompile(`[^l]led$`),
		regexp.MustCompile(`[^r]red$`), regexp.MustCompile(`shed$`), regexp.MustCompile(`ted$`),
	}
	simpleEnding = regexp.MustCompile(`(?:ing|ed|es|ly)$`)
)

// Syllables estimates the syllable count of an English word. Only ASCII
// letters are considered; a word without any counts 0, any other at least 1.
func Syllables(word string) int {
	w := letters(word)
	if w == "" {
		return 0
	}

	n := 0
	prevVowel := false
	for i := 0; i < len(w); i++ {
		v := isVowel(w[i])
		if v && !prevVowel {
			n++
		}
		prevVowel = v
	}

	for _, re := range extraSyllable {
		if re.MatchString(w) {
			n++
		}
	}
	for _, re := range silentSyllable {
		if re.MatchString(w) {
			n--
		}
	}

	// silent e
	if n > 1 && strings.HasSuffix(w, "e") && !strings.HasSuffix(w, "le") {
		before := w[len(w)-2]
		if !isVowel(before) && before != 'l' && before != 'r' {
			n--
		}
	}
	if len(w) > 1 && strings.HasSuffix(w, "y") && !isVowel(w[len(w)-2]) {
		n++
	}

	return max(1, n)
}

// IsComplex reports whether a word of the given syllable count is complex:
// three or more syllables, except three-syllable words ending in ing, ed,
// es or ly.
func IsComplex(word string, syllables int) bool {
	if syllables < 3 {
		return false
	}
	return syllables > 3 || !simpleEnding.MatchString(letters(word))
}

// letters lower-cases word and keeps only a to z.
func letters(word string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(word) {
		if r >= 'a' && r <= 'z' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isVowel(c byte) bool {
	switch c {
	case 'a', 'e', 'i', 'o', 'u':
		return true
	}
	return false
}
