package render

import (
	"strings"
	"testing"

	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/parser"
)

func TestEditorSurfaceRoundTrip(t *testing.T) {
	t.Parallel()

	blocks := []content.Block{
		{ID: "b1", Type: content.Heading, Content: "<h2>Intro</h2>", Component: content.ModuleTitle},
		{ID: "b2", Type: content.List, ListType: content.BulletList, Content: "<ul><li>One</li><li>Two</li></ul>"},
		{ID: "b3", Type: content.Paragraph, Content: "<p>Read the <strong>notes</strong> first.</p>"},
	}
	surface := newGenerator(t).EditorSurface(blocks, map[string]content.Component{
		"b1": content.InfoBox,
		"b3": content.InfoBox,
	})

	if !strings.Contains(surface, ">Module Title</span>") {
		t.Errorf("component indicator missing: %q", surface)
	}
	if !strings.Contains(surface, ">Suggested: Info Box</span>") {
		t.Errorf("suggestion indicator missing: %q", surface)
	}
	if strings.Count(surface, "suggestion-indicator") != 1 {
		t.Errorf("tagged block shows a suggestion: %q", surface)
	}

	got := parser.New().Parse(surface)
	if len(got) != len(blocks) {
		t.Fatalf("Parse() returned %d blocks, want %d: %+v", len(got), len(blocks), got)
	}
	for i, want := range blocks {
		if got[i].ID != want.ID || got[i].Type != want.Type || got[i].Content != want.Content {
			t.Errorf("block %d = {%s %s %q}, want {%s %s %q}",
				i, got[i].ID, got[i].Type, got[i].Content, want.ID, want.Type, want.Content)
		}
	}
	if got[1].ListType != content.BulletList {
		t.Errorf("list type = %q, want %q", got[1].ListType, content.BulletList)
	}
}

func TestEditorSurfaceEmpty(t *testing.T) {
	t.Parallel()

	if got := newGenerator(t).EditorSurface(nil, nil); got != "" {
		t.Errorf("EditorSurface(nil) = %q, want empty", got)
	}
}
