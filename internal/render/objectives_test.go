package render

import (
	"html/template"
	"reflect"
	"testing"

	"github.com/alnah/go-blockforge/internal/content"
)

func TestParseObjectives(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		run        []content.Block
		title      string
		subHeading string
		objectives []template.HTML
	}{
		{
			name: "title lead and items",
			run: []content.Block{
				para("a", "Learning Objectives"),
				para("b", "By the end of this lesson, you will be able to:"),
				para("c", "1. Explain the water cycle"),
				para("d", "2. Name the three states of matter"),
				para("e", "Ok"),
			},
			title:      "Learning Objectives",
			subHeading: "By the end of this lesson, you will be able to:",
			objectives: []template.HTML{"Explain the water cycle", "Name the three states of matter"},
		},
		{
			name: "items only",
			run: []content.Block{
				para("a", "Describe photosynthesis"),
				para("b", "Compare plant & animal cells"),
			},
			title:      defaultObjectivesTitle,
			subHeading: defaultObjectivesLead,
			objectives: []template.HTML{"Describe photosynthesis", "Compare plant &amp; animal cells"},
		},
		{
			name: "single list block",
			run: []content.Block{
				{ID: "l", Type: content.List, ListType: content.BulletList, Content: "<ul><li>Define energy</li><li>Measure work</li></ul>"},
			},
			title:      defaultObjectivesTitle,
			subHeading: defaultObjectivesLead,
			objectives: []template.HTML{"Define energy", "Measure work"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := parseObjectives(tt.run)
			if got.Title != tt.title {
				t.Errorf("Title = %q, want %q", got.Title, tt.title)
			}
			if got.SubHeading != tt.subHeading {
				t.Errorf("SubHeading = %q, want %q", got.SubHeading, tt.subHeading)
			}
			if !reflect.DeepEqual(got.Objectives, tt.objectives) {
				t.Errorf("Objectives = %q, want %q", got.Objectives, tt.objectives)
			}
		})
	}
}

func TestShouting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected bool
	}{
		{"WHAT YOU WILL LEARN", true},
		{"Goals", false},
		{"123", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := shouting(tt.input); got != tt.expected {
				t.Errorf("shouting(%q) = %v, want %v", tt.input, got, tt.expected)
			}
		})
	}
}
