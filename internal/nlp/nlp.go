// Package nlp provides the lightweight lexical heuristics the classifiers need:
// word and sentence segmentation plus noun-like and verb-like token detection.
//
// The detectors are lexicon and suffix based. They answer "does this short
// text contain a noun?" well enough for heading and list heuristics, and make
// no attempt at full part-of-speech tagging.
package nlp

import (
	"regexp"
	"strings"
	"unicode"
)

// Words splits text on whitespace.
func Words(text string) []string {
	return strings.Fields(text)
}

// Tokens returns the lower-cased alphanumeric tokens of text, with
// surrounding punctuation removed. Apostrophes inside words are kept.
func Tokens(text string) []string {
	fields := strings.Fields(text)
	out := make([]string, 0, len(fields))
	for _, f := range fields {
		t := strings.TrimFunc(f, func(r rune) bool {
			return !unicode.IsLetter(r) && !unicode.IsDigit(r)
		})
		if t != "" {
			out = append(out, strings.ToLower(t))
		}
	}
	return out
}

var (
	// sentenceEnd matches terminal punctuation followed by whitespace or end of text.
	sentenceEnd = regexp.MustCompile(`[.!?]+(?:["')\]]*)(?:\s+|$)`)
)

// abbreviations never end a sentence.
var abbreviations = map[string]bool{
	"mr": true, "mrs": true, "ms": true, "dr": true, "prof": true, "sr": true, "jr": true,
	"st": true, "vs": true, "etc": true, "e.g": true, "i.e": true, "fig": true, "no": true,
	"approx": true, "dept": true, "est": true, "inc": true, "ltd": true,
}

// Sentences segments text into sentences. Abbreviations and decimal numbers
// do not end a sentence. Text without terminal punctuation counts as one
// sentence.
func Sentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var out []string
	start := 0
	for _, loc := range sentenceEnd.FindAllStringIndex(text, -1) {
		candidate := text[start:loc[0]]
		if endsWithAbbreviation(candidate) {
			continue
		}
		if s := strings.TrimSpace(text[start:loc[1]]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if rest := strings.TrimSpace(text[start:]); rest != "" {
		out = append(out, rest)
	}
	return out
}

func endsWithAbbreviation(s string) bool {
	fields := strings.Fields(s)
	if len(fields) == 0 {
		return false
	}
	last := strings.ToLower(strings.TrimLeft(fields[len(fields)-1], `"'([`))
	if abbreviations[last] {
		return true
	}
	// initials like "J." in "J. Smith"
	r := []rune(fields[len(fields)-1])
	return len(r) == 1 && unicode.IsUpper(r[0])
}
