// Package readability computes reading statistics for plain text: counts,
// reading time, six readability formulas, their average grade and a
// consensus reading level.
package readability

import (
	"math"
	"unicode"

	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/htmlutil"
	"github.com/alnah/go-blockforge/internal/nlp"
	"github.com/alnah/go-blockforge/internal/rules"
)

// DefaultWordsPerMinute is the reading speed used for ReadingTime.
const DefaultWordsPerMinute = 225

// Stats holds the statistics of one text. Scores are floored at 0 and
// rounded to one decimal; SyllablesPerWord is rounded to two.
type Stats struct {
	WordCount        int     `json:"wordCount" yaml:"wordCount"`
	SentenceCount    int     `json:"sentenceCount" yaml:"sentenceCount"`
	ReadingTime      int     `json:"readingTime" yaml:"readingTime"`
	ReadingLevel     Level   `json:"readingLevel" yaml:"readingLevel"`
	FleschKincaid    float64 `json:"fleschKincaid" yaml:"fleschKincaid"`
	FleschReading    float64 `json:"fleschReading" yaml:"fleschReading"`
	GunningFog       float64 `json:"gunningFog" yaml:"gunningFog"`
	SMOG             float64 `json:"smog" yaml:"smog"`
	ColemanLiau      float64 `json:"colemanLiau" yaml:"colemanLiau"`
	ARI              float64 `json:"automatedReadability" yaml:"automatedReadability"`
	AvgGradeLevel    float64 `json:"avgGradeLevel" yaml:"avgGradeLevel"`
	AvgSentenceLen   float64 `json:"avgSentenceLength" yaml:"avgSentenceLength"`
	AvgWordLen       float64 `json:"avgWordLength" yaml:"avgWordLength"`
	ComplexWords     int     `json:"complexWords" yaml:"complexWords"`
	SyllablesPerWord float64 `json:"syllablesPerWord" yaml:"syllablesPerWord"`
}

// Option configures Analyze.
type Option func(*analyzer)

type analyzer struct {
	wpm int
}

// WithWordsPerMinute sets the reading speed. Non-positive values are ignored.
func WithWordsPerMinute(wpm int) Option {
	return func(a *analyzer) {
		if wpm > 0 {
			a.wpm = wpm
		}
	}
}

// counts are the raw measurements the formulas work from.
type counts struct {
	words, sentences, syllables, complex, letters, chars int
}

// Analyze computes the statistics of text. Text without words yields the
// zero Stats.
func Analyze(text string, opts ...Option) Stats {
	a := analyzer{wpm: DefaultWordsPerMinute}
	for _, opt := range opts {
		opt(&a)
	}

	words := nlp.Words(text)
	if len(words) == 0 {
		return Stats{}
	}

	c := counts{words: len(words), sentences: max(1, len(nlp.Sentences(text)))}
	for _, w := range words {
		s := nlp.Syllables(w)
		if s == 0 {
			continue
		}
		c.syllables += s
		if nlp.IsComplex(w, s) {
			c.complex++
		}
	}
	for _, r := range text {
		if !unicode.IsSpace(r) {
			c.chars++
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			c.letters++
		}
	}

	fre := fleschReading(c)
	fk := fleschKincaid(c)
	fog := gunningFog(c)
	smog := smogIndex(c)
	cl := colemanLiau(c)
	ari := automatedReadability(c)
	avg := averageGrade(fk, fog, smog, cl, ari)

	return Stats{
		WordCount:        c.words,
		SentenceCount:    c.sentences,
		ReadingTime:      int(math.Ceil(float64(c.words) / float64(a.wpm))),
		ReadingLevel:     consensus(avg, fre),
		FleschKincaid:    round(fk, 1),
		FleschReading:    round(fre, 1),
		GunningFog:       round(fog, 1),
		SMOG:             round(smog, 1),
		ColemanLiau:      round(cl, 1),
		ARI:              round(ari, 1),
		AvgGradeLevel:    round(avg, 1),
		AvgSentenceLen:   round(float64(c.words)/float64(c.sentences), 1),
		AvgWordLen:       round(float64(c.letters)/float64(c.words), 1),
		ComplexWords:     c.complex,
		SyllablesPerWord: round(float64(c.syllables)/float64(c.words), 2),
	}
}

// AnalyzeBlocks analyzes the plain text of blocks joined with spaces.
func AnalyzeBlocks(blocks []content.Block, opts ...Option) Stats {
	return Analyze(htmlutil.PlainText(blocks), opts...)
}

func fleschReading(c counts) float64 {
	if c.words == 0 || c.sentences == 0 {
		return 100
	}
	score := 206.835 - 1.015*perSentence(c) - 84.6*float64(c.syllables)/float64(c.words)
	return math.Max(0, math.Min(100, score))
}

func fleschKincaid(c counts) float64 {
	if c.words == 0 || c.sentences == 0 {
		return 0
	}
	return math.Max(0, 0.39*perSentence(c)+11.8*float64(c.syllables)/float64(c.words)-15.59)
}

func gunningFog(c counts) float64 {
	if c.words == 0 || c.sentences == 0 {
		return 0
	}
	return math.Max(0, 0.4*(perSentence(c)+100*float64(c.complex)/float64(c.words)))
}

func smogIndex(c counts) float64 {
	if c.sentences < 3 {
		return 0
	}
	return math.Max(0, 1.0430*math.Sqrt(float64(c.complex)*30/float64(c.sentences))+3.1291)
}

func colemanLiau(c counts) float64 {
	if c.words == 0 {
		return 0
	}
	l := float64(c.letters) / float64(c.words) * 100
	s := float64(c.sentences) / float64(c.words) * 100
	return math.Max(0, 0.0588*l-0.296*s-15.8)
}

func automatedReadability(c counts) float64 {
	if c.words == 0 || c.sentences == 0 {
		return 0
	}
	return math.Max(0, 4.71*float64(c.chars)/float64(c.words)+0.5*perSentence(c)-21.43)
}

func perSentence(c counts) float64 {
	return float64(c.words) / float64(c.sentences)
}

// averageGrade is the mean of the positive grades, or 0.
func averageGrade(grades ...float64) float64 {
	var sum float64
	n := 0
	for _, g := range grades {
		if g > 0 {
			sum += g
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Floor(v*p+0.5) / p
}

// Level is a consensus reading level.
type Level string

// Reading levels, from easiest to hardest.
const (
	Elementary   Level = "Elementary"
	MiddleSchool Level = "Middle School"
	Year9to10    Level = "Year 9-10"
	Year11to12   Level = "Year 11-12"
	University   Level = "University"
	Graduate     Level = "Graduate"
	Professional Level = "Professional"
)

type grade struct {
	avg, ease float64
}

func below(limit float64) func(grade) bool {
	return func(g grade) bool { return g.avg < limit }
}

// levelRules map an average grade and reading ease to a level. The reading
// ease overrides are checked before the grade bands.
var levelRules = []rules.Rule[grade, Level]{
	{Name: "easy-override", Match: func(g grade) bool { return g.ease > 80 && g.avg > 8 }, Then: MiddleSchool},
	{Name: "hard-override", Match: func(g grade) bool { return g.ease < 30 && g.avg < 12 }, Then: Graduate},
	{Name: "elementary", Match: below(5), Then: Elementary},
	{Name: "middle-school", Match: below(8), Then: MiddleSchool},
	{Name: "year-9-10", Match: below(10), Then: Year9to10},
	{Name: "year-11-12", Match: below(12), Then: Year11to12},
	{Name: "university", Match: below(14), Then: University},
	{Name: "graduate", Match: below(16), Then: Graduate},
	{Name: "professional", Match: func(grade) bool { return true }, Then: Professional},
}

func consensus(avg, ease float64) Level {
	l, _ := rules.First(levelRules, grade{avg: avg, ease: ease})
	return l
}
