// Package classify suggests a design component for each block.
//
// Suggestions are a side channel: they are recomputed from scratch on every
// change, never stored and never written back onto blocks.
package classify

import (
	"regexp"
	"strings"

	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/htmlutil"
	"github.com/alnah/go-blockforge/internal/nlp"
	"github.com/alnah/go-blockforge/internal/parser"
	"github.com/alnah/go-blockforge/internal/rules"
)

// Suggestions maps block ids to the suggested component.
type Suggestions map[string]content.Component

// subject is what the rules see for one block.
type subject struct {
	block content.Block
	text  string // stripped text, original case
	lower string
}

var moduleTitle = regexp.MustCompile(`(?i)^(?:module|chapter|unit|section|lesson)\s+\d+`)

var (
	objectiveCues = cues(`learning objectives?`, `by the end of`, `you will be able to`,
		`students will`, `learners will`, `objectives?:`, `goals?:`, `outcomes?:`)
	summaryCues = cues(`summary`, `in summary`, `to summari[sz]e`, `key points`,
		`key takeaways`, `main points`, `recap`, `conclusion`)
	exerciseCues = cues(`exercise`, `question`, `activity`, `practice`, `try it`,
		`your turn`, `task`, `assignment`, `homework`, `\?$`)
	resourceCues = cues(`resource`, `additional reading`, `further reading`, `reference`,
		`link`, `website`, `url`, `download`, `materials`, `documentation`, `guide`,
		`manual`, `http`, `www\.`, `\.com`, `\.org`, `\.edu`)
	importantCues = cues(`important`, `note:`, `remember`, `don't forget`, `keep in mind`,
		`attention`, `warning`, `caution`, `tip:`, `pro tip`, `hint:`)
	stepCues = cues(`step \d+`, `first`, `second`, `third`, `next`, `then`, `finally`,
		`procedure`, `process`)
)

// actionVerbs mark list items as tasks.
var actionVerbs = nlp.Set(
	"complete", "finish", "submit", "review", "read", "write",
	"create", "design", "implement", "analyze", "evaluate",
	"understand", "learn", "master", "practice", "apply",
)

var suggestionRules = []rules.Rule[subject, content.Component]{
	{Name: "module title", Match: func(s subject) bool { return isHeading(s) && moduleTitle.MatchString(s.text) }, Then: content.ModuleTitle},
	{Name: "heading", Match: isHeading, Then: content.StyledHeading},
	{Name: "objectives", Match: lowerMatches(objectiveCues), Then: content.LearningObjectives},
	{Name: "summary", Match: lowerMatches(summaryCues), Then: content.SummaryBox},
	{Name: "exercise", Match: lowerMatches(exerciseCues), Then: content.ExerciseBox},
	{Name: "resource", Match: lowerMatches(resourceCues), Then: content.ResourceBox},
	{Name: "important", Match: lowerMatches(importantCues), Then: content.InfoBox},
	{Name: "action list", Match: func(s subject) bool {
		return s.block.IsList() && len(nlp.Verbs(s.lower, actionVerbs)) > 0
	}, Then: content.IconList},
	{Name: "step list", Match: func(s subject) bool { return s.block.IsList() && stepCues.MatchString(s.lower) }, Then: content.NumberedList},
	{Name: "list", Match: func(s subject) bool { return s.block.IsList() }, Then: content.BulletListComp},
}

// Classify returns one suggestion per block that matches a rule.
func Classify(blocks []content.Block) Suggestions {
	out := make(Suggestions, len(blocks))
	for _, b := range blocks {
		if c, ok := Suggest(b); ok {
			out[b.ID] = c
		}
	}
	return out
}

// Suggest returns the suggestion for a single block.
func Suggest(b content.Block) (content.Component, bool) {
	text := htmlutil.TrimmedText(b.Content)
	return rules.First(suggestionRules, subject{block: b, text: text, lower: strings.ToLower(text)})
}

// Rule returns the name of the rule that decides b's suggestion, or "".
func Rule(b content.Block) string {
	text := htmlutil.TrimmedText(b.Content)
	return rules.FirstName(suggestionRules, subject{block: b, text: text, lower: strings.ToLower(text)})
}

// isHeading holds for heading blocks and for plain paragraphs that read as one.
// List items never do.
func isHeading(s subject) bool {
	if s.block.Type == content.Heading {
		return true
	}
	return s.block.Type == content.Paragraph && s.block.ListType == content.NoList &&
		s.text != "" && parser.ShouldBeHeading(s.text)
}

func lowerMatches(re *regexp.Regexp) func(subject) bool {
	return func(s subject) bool { return re.MatchString(s.lower) }
}

// cues compiles alternatives into one case-insensitive pattern.
func cues(alts ...string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)(?:` + strings.Join(alts, "|") + `)`)
}
