package classify

import (
	"reflect"
	"testing"

	"github.com/alnah/go-blockforge/internal/content"
)

func TestSuggest(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		block    content.Block
		expected content.Component
		ok       bool
	}{
		{
			name:     "module title",
			block:    content.Block{Type: content.Heading, Content: "<h2>Module 3 Basics</h2>"},
			expected: content.ModuleTitle,
			ok:       true,
		},
		{
			name:     "heading block",
			block:    content.Block{Type: content.Heading, Content: "<h2>Getting started</h2>"},
			expected: content.StyledHeading,
			ok:       true,
		},
		{
			name:     "paragraph that reads as heading",
			block:    content.Block{Type: content.Paragraph, Content: "<p>Introduction</p>"},
			expected: content.StyledHeading,
			ok:       true,
		},
		{
			name:     "objectives",
			block:    content.Block{Type: content.Paragraph, Content: "<p>by the end of this lesson you will be able to explain loops.</p>"},
			expected: content.LearningObjectives,
			ok:       true,
		},
		{
			name:     "summary",
			block:    content.Block{Type: content.Paragraph, Content: "<p>in summary, loops repeat work.</p>"},
			expected: content.SummaryBox,
			ok:       true,
		},
		{
			name:     "exercise cue",
			block:    content.Block{Type: content.Paragraph, Content: "<p>try it yourself with the editor.</p>"},
			expected: content.ExerciseBox,
			ok:       true,
		},
		{
			name:     "question mark",
			block:    content.Block{Type: content.Paragraph, Content: "<p>do you agree with this claim?</p>"},
			expected: content.ExerciseBox,
			ok:       true,
		},
		{
			name:     "resource",
			block:    content.Block{Type: content.Paragraph, Content: "<p>see the documentation at example.org for details.</p>"},
			expected: content.ResourceBox,
			ok:       true,
		},
		{
			name:     "important",
			block:    content.Block{Type: content.Paragraph, Content: "<p>remember to save your work often.</p>"},
			expected: content.InfoBox,
			ok:       true,
		},
		{
			name:     "action list",
			block:    content.Block{Type: content.List, ListType: content.BulletList, Content: "<ul><li>Complete the quiz</li></ul>"},
			expected: content.IconList,
			ok:       true,
		},
		{
			name:     "step list",
			block:    content.Block{Type: content.List, ListType: content.BulletList, Content: "<ul><li>first, mix the flour</li></ul>"},
			expected: content.NumberedList,
			ok:       true,
		},
		{
			name:     "plain list",
			block:    content.Block{Type: content.List, ListType: content.BulletList, Content: "<ul><li>apples</li><li>pears</li></ul>"},
			expected: content.BulletListComp,
			ok:       true,
		},
		{
			name:     "converted list item is not a heading",
			block:    content.Block{Type: content.Paragraph, ListType: content.BulletList, Content: "<p>Red apples</p>"},
			expected: content.BulletListComp,
			ok:       true,
		},
		{
			name:  "plain prose",
			block: content.Block{Type: content.Paragraph, Content: "<p>the sky is blue today.</p>"},
			ok:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := Suggest(tt.block)
			if ok != tt.ok || got != tt.expected {
				t.Errorf("Suggest() = (%q, %v) by rule %q, want (%q, %v)", got, ok, Rule(tt.block), tt.expected, tt.ok)
			}
		})
	}
}

func TestClassifyDeterministic(t *testing.T) {
	t.Parallel()

	blocks := []content.Block{
		{ID: "a", Type: content.Heading, Content: "<h2>Unit 1 Loops</h2>"},
		{ID: "b", Type: content.Paragraph, Content: "<p>remember to indent your code.</p>"},
		{ID: "c", Type: content.Paragraph, Content: "<p>the sky is blue today.</p>"},
		{ID: "d", Type: content.List, ListType: content.NumericList, Content: "<ol><li>Review the notes</li></ol>"},
	}
	want := Suggestions{
		"a": content.ModuleTitle,
		"b": content.InfoBox,
		"d": content.IconList,
	}

	first := Classify(blocks)
	second := Classify(blocks)
	if !reflect.DeepEqual(first, want) {
		t.Errorf("Classify() = %v, want %v", first, want)
	}
	if !reflect.DeepEqual(first, second) {
		t.Errorf("Classify() not deterministic: %v then %v", first, second)
	}
	if blocks[0].Component != content.NoComponent {
		t.Error("Classify() mutated its input")
	}
}

func TestClassifyEmpty(t *testing.T) {
	t.Parallel()

	if got := Classify(nil); len(got) != 0 {
		t.Errorf("Classify(nil) = %v, want empty", got)
	}
}
