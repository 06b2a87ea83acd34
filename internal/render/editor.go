package render

import (
	"html/template"
	"strings"

	"github.com/alnah/go-blockforge/internal/content"
)

type editorView struct {
	ID             string
	Type           content.BlockType
	Component      content.Component
	ComponentName  string
	Suggestion     content.Component
	SuggestionName string
	Content        template.HTML
}

// EditorSurface renders blocks as editing-surface wrappers: one
// content-block div per block carrying its id and type, an indicator for an
// applied component or, failing that, a suggested one, and the block HTML.
// Parsing the output recovers the same ids and types.
func (g *Generator) EditorSurface(blocks []content.Block, suggestions map[string]content.Component) string {
	parts := make([]string, 0, len(blocks))
	for _, b := range blocks {
		v := editorView{
			ID:        b.ID,
			Type:      b.Type,
			Component: b.Component,
			Content:   template.HTML(b.Content), // #nosec G203 -- block HTML is allow-listed
		}
		if b.Component != content.NoComponent {
			v.ComponentName = displayName(b.Component)
		} else if s, ok := suggestions[b.ID]; ok {
			v.Suggestion = s
			v.SuggestionName = displayName(s)
		}
		parts = append(parts, g.execute(tmplEditorBlock, v, []content.Block{b}))
	}
	return strings.Join(parts, fragmentSeparator)
}

func displayName(c content.Component) string {
	if spec, ok := content.Lookup(c); ok {
		return spec.Name
	}
	return string(c)
}
