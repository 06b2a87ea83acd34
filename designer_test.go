package blockforge

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-blockforge/internal/content"
)

func newDesigner(t *testing.T, opts ...Option) *Designer {
	t.Helper()
	d, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return d
}

func TestPasteAppends(t *testing.T) {
	t.Parallel()

	d := newDesigner(t)
	s := d.Parse("<p>First paragraph here.</p>")
	first := s.Blocks[0].ID

	got := d.Paste(s, Payload{HTML: "<b>Bold</b> words follow.<script>x()</script>"})
	if len(got.Blocks) != 2 {
		t.Fatalf("blocks = %d, want 2", len(got.Blocks))
	}
	if got.Blocks[0].ID != first {
		t.Error("paste changed the existing block id")
	}
	if want := "<p><strong>Bold</strong> words follow.</p>"; got.Blocks[1].Content != want {
		t.Errorf("pasted content = %q, want %q", got.Blocks[1].Content, want)
	}

	if same := d.Paste(s, Payload{HTML: "<p> </p>"}); len(same.Blocks) != 1 {
		t.Errorf("empty payload changed blocks: %+v", same.Blocks)
	}
}

func TestEditKeepsIdentityAndComponents(t *testing.T) {
	t.Parallel()

	d := newDesigner(t)
	s := d.Parse("<h3>One</h3><p>first body.</p><h3>Two</h3><p>second body.</p>")
	s, err := s.ApplyComponent(ApplyRequest{Component: content.Tabs, BlockIDs: content.IDs(s.Blocks), AutoSplit: true})
	if err != nil {
		t.Fatalf("ApplyComponent() error = %v", err)
	}

	surface := d.EditorSurface(s)
	edited := strings.Replace(surface, "second body.", "second body, edited.", 1)
	got := d.Edit(s, edited)

	if len(got.Blocks) != len(s.Blocks) {
		t.Fatalf("blocks = %d, want %d", len(got.Blocks), len(s.Blocks))
	}
	for i := range s.Blocks {
		if got.Blocks[i].ID != s.Blocks[i].ID || got.Blocks[i].Type != s.Blocks[i].Type {
			t.Errorf("block %d identity changed: %+v -> %+v", i, s.Blocks[i], got.Blocks[i])
		}
		if got.Blocks[i].Component != content.Tabs {
			t.Errorf("block %d lost its component", i)
		}
	}
	if !strings.Contains(got.Blocks[3].Content, "edited") {
		t.Errorf("edit not applied: %q", got.Blocks[3].Content)
	}
	if got.Store.Len() != 1 {
		t.Errorf("store entries = %d, want the tabs split kept", got.Store.Len())
	}
	if d.Render(got) != strings.Replace(d.Render(s), "second body.", "second body, edited.", 1) {
		t.Error("render after edit differs beyond the edited text")
	}
}

func TestEditDuplicatedBlocksGetFreshIDs(t *testing.T) {
	t.Parallel()

	d := newDesigner(t)
	s := d.Parse("<p>alpha text here.</p><p>beta text here.</p>")
	surface := d.EditorSurface(s)

	got := d.Edit(s, surface+surface)
	if len(got.Blocks) != 4 {
		t.Fatalf("blocks = %d, want 4", len(got.Blocks))
	}
	for i := range s.Blocks {
		if got.Blocks[i].ID != s.Blocks[i].ID {
			t.Errorf("block %d id = %q, want %q", i, got.Blocks[i].ID, s.Blocks[i].ID)
		}
	}
	seen := make(map[string]bool)
	for _, b := range got.Blocks {
		if seen[b.ID] {
			t.Fatalf("duplicate id %q in %+v", b.ID, got.Blocks)
		}
		seen[b.ID] = true
	}
}

func TestEditFullReplacementClearsStore(t *testing.T) {
	t.Parallel()

	d := newDesigner(t)
	s := d.Parse("<p>alpha text.</p><p>beta text.</p><p>gamma text.</p>")
	s, err := s.ApplyComponent(ApplyRequest{Component: content.Carousel, BlockIDs: content.IDs(s.Blocks), SplitPoints: []int{1}})
	if err != nil {
		t.Fatalf("ApplyComponent() error = %v", err)
	}

	got := d.Edit(s, "<p>Something else entirely.</p>")
	if got.Store.Len() != 0 {
		t.Errorf("store entries = %d, want 0", got.Store.Len())
	}
	if len(got.Blocks) != 1 || got.Blocks[0].Component != content.NoComponent {
		t.Errorf("blocks = %+v", got.Blocks)
	}
}

func TestLoadEmptyPayload(t *testing.T) {
	t.Parallel()

	d := newDesigner(t)
	s := d.Load(Payload{})
	if len(s.Blocks) != 0 || s.Store == nil {
		t.Errorf("Load(empty) = %+v", s)
	}
	if got := d.Render(s); got != "" {
		t.Errorf("Render(empty) = %q", got)
	}
}

func TestSuggest(t *testing.T) {
	t.Parallel()

	d := newDesigner(t)
	s := d.Parse("<h2>Module 3 Forces</h2><p>Plain prose sentence here.</p>")
	got := d.Suggest(s)
	if got[s.Blocks[0].ID] != content.ModuleTitle {
		t.Errorf("suggestion = %q, want moduleTitle", got[s.Blocks[0].ID])
	}
	if len(s.Blocks[0].Component) != 0 {
		t.Error("Suggest wrote onto the block")
	}
}

func TestTemplateDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "components"), 0o750); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "components", "heading.html"), []byte(`<h3 class="custom">{{.}}</h3>`), 0o600); err != nil {
		t.Fatal(err)
	}

	d := newDesigner(t, WithTemplateDir(dir))
	s := d.Parse("<p>Some text for the heading</p>")
	s, err := s.ApplyComponent(ApplyRequest{Component: content.StyledHeading, BlockIDs: content.IDs(s.Blocks)})
	if err != nil {
		t.Fatalf("ApplyComponent() error = %v", err)
	}
	if got := d.Render(s); !strings.Contains(got, `<h3 class="custom">Some text for the heading</h3>`) {
		t.Errorf("Render() = %q, want custom heading", got)
	}

	if _, err := New(WithTemplateDir(filepath.Join(dir, "missing"))); !errors.Is(err, ErrTemplates) {
		t.Errorf("New(missing dir) error = %v, want ErrTemplates", err)
	}
}
