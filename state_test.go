package blockforge

// Notes:
// - NewState: tests id, type and list-type validation and content filtering
// - ReplaceBlocks: tests the full-replacement ratio and pruning
// - ApplyComponent: tests block order, split storage and validation
// - RemoveComponent / Indent: tests store cleanup and level gating

import (
	"errors"
	"reflect"
	"testing"

	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/splitstore"
)

func blocks(ids ...string) []Block {
	out := make([]Block, len(ids))
	for i, id := range ids {
		out[i] = Block{ID: id, Type: content.Paragraph, Content: "<p>" + id + " text.</p>"}
	}
	return out
}

func stateOf(ids ...string) State {
	return State{Blocks: blocks(ids...), Store: splitstore.New()}
}

// ---------------------------------------------------------------------------
// TestNewState - Client-supplied blocks
// ---------------------------------------------------------------------------

func TestNewState(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		blocks  []Block
		wantErr error
	}{
		{"valid", blocks("a", "b"), nil},
		{"empty id", []Block{{Content: "<p>x</p>"}}, ErrEmptyBlockID},
		{"duplicate id", blocks("a", "a"), ErrDuplicateBlockID},
		{"unknown type", []Block{{ID: "a", Type: "table"}}, ErrInvalidBlockType},
		{"unknown list type", []Block{{ID: "a", Type: content.List, ListType: "roman"}}, ErrInvalidListType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := NewState(tt.blocks, nil)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewState() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestNewStateCleansBlocks(t *testing.T) {
	t.Parallel()

	s, err := NewState([]Block{
		{ID: "a", Content: `<p onclick="x()">Hi<script>alert(1)</script> <span>there</span></p>`},
		{ID: "b", Type: content.List, Content: "<ul><li>One</li></ul>"},
	}, nil)
	if err != nil {
		t.Fatalf("NewState() error = %v", err)
	}

	if got, want := s.Blocks[0].Content, "<p>Hi there</p>"; got != want {
		t.Errorf("content = %q, want %q", got, want)
	}
	if s.Blocks[0].Type != content.Paragraph {
		t.Errorf("empty type = %q, want paragraph", s.Blocks[0].Type)
	}
	if s.Blocks[1].ListType != content.BulletList {
		t.Errorf("list without type = %q, want bulletList", s.Blocks[1].ListType)
	}
	if s.Store == nil {
		t.Error("nil store not replaced")
	}
}

// ---------------------------------------------------------------------------
// TestReplaceBlocks - Store garbage collection
// ---------------------------------------------------------------------------

func TestReplaceBlocks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		next        []string
		wantEntries int
	}{
		{"all kept", []string{"a", "b", "c", "d"}, 2},
		{"run block removed prunes its entry", []string{"a", "b", "d"}, 1},
		{"half kept is incremental", []string{"c", "d", "x", "y"}, 1},
		{"under half kept clears", []string{"d", "x", "y"}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			s := stateOf("a", "b", "c", "d")
			s.Store.SetSplits(content.Tabs, []string{"a", "b"}, []int{1})
			s.Store.SetSplits(content.Accordion, []string{"c", "d"}, nil)

			got := s.ReplaceBlocks(blocks(tt.next...))
			if got.Store.Len() != tt.wantEntries {
				t.Errorf("entries = %d, want %d: %v", got.Store.Len(), tt.wantEntries, got.Store.Entries())
			}
			if s.Store.Len() != 2 {
				t.Error("ReplaceBlocks modified the receiver's store")
			}
		})
	}
}

func TestReplaceBlocksFromEmpty(t *testing.T) {
	t.Parallel()

	got, full := State{}.replace(blocks("a"))
	if !full {
		t.Error("replacing an empty document is not a full replacement")
	}
	if len(got.Blocks) != 1 || got.Store == nil {
		t.Errorf("got %+v", got)
	}
}

// ---------------------------------------------------------------------------
// TestApplyComponent - Component application
// ---------------------------------------------------------------------------

func TestApplyComponent(t *testing.T) {
	t.Parallel()

	s := stateOf("a", "b", "c")
	got, err := s.ApplyComponent(ApplyRequest{
		Component:   content.Tabs,
		BlockIDs:    []string{"c", "b"},
		SplitPoints: []int{1},
	})
	if err != nil {
		t.Fatalf("ApplyComponent() error = %v", err)
	}

	if got.Blocks[0].Component != content.NoComponent ||
		got.Blocks[1].Component != content.Tabs || got.Blocks[2].Component != content.Tabs {
		t.Errorf("components = %q %q %q", got.Blocks[0].Component, got.Blocks[1].Component, got.Blocks[2].Component)
	}
	if splits, ok := got.Store.Splits(content.Tabs, []string{"b", "c"}); !ok || !reflect.DeepEqual(splits, []int{1}) {
		t.Errorf("splits = %v, %v, want [1] keyed in block order", splits, ok)
	}
	if s.Blocks[1].Component != content.NoComponent {
		t.Error("ApplyComponent modified the receiver")
	}
}

func TestApplyComponentAutoSplit(t *testing.T) {
	t.Parallel()

	s := State{Blocks: []Block{
		{ID: "h1", Type: content.Heading, Content: "<h3>One</h3>"},
		{ID: "a", Type: content.Paragraph, Content: "<p>first.</p>"},
		{ID: "h2", Type: content.Heading, Content: "<h3>Two</h3>"},
		{ID: "b", Type: content.Paragraph, Content: "<p>second.</p>"},
	}, Store: splitstore.New()}

	tests := []struct {
		name      string
		component Component
		ids       []string
		want      []int
		wantOK    bool
	}{
		{"smart component splits at headings", content.Accordion, []string{"h1", "a", "h2", "b"}, []int{2}, true},
		{"single block stores empty splits", content.Accordion, []string{"a"}, []int{}, true},
		{"non-smart component stores nothing", content.InfoBox, []string{"h1", "a"}, nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := s.ApplyComponent(ApplyRequest{Component: tt.component, BlockIDs: tt.ids, AutoSplit: true})
			if err != nil {
				t.Fatalf("ApplyComponent() error = %v", err)
			}
			splits, ok := got.Store.Splits(tt.component, tt.ids)
			if ok != tt.wantOK || !reflect.DeepEqual(splits, tt.want) {
				t.Errorf("splits = %#v, %v, want %#v, %v", splits, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestApplyComponentStoresIndentAndCustomisation(t *testing.T) {
	t.Parallel()

	s := stateOf("a", "b")
	got, err := s.ApplyComponent(ApplyRequest{
		Component:    content.BulletListComp,
		BlockIDs:     []string{"a", "b"},
		IndentLevels: map[string]int{"b": 1},
	})
	if err != nil {
		t.Fatalf("ApplyComponent() error = %v", err)
	}
	if levels, _ := got.Store.Indent(content.BulletListComp, []string{"a", "b"}); !reflect.DeepEqual(levels, map[string]int{"a": 0, "b": 1}) {
		t.Errorf("levels = %v", levels)
	}

	got, err = s.ApplyComponent(ApplyRequest{
		Component:     content.IconList,
		BlockIDs:      []string{"a", "b"},
		Customisation: &Customisation{Icon: "star", Colour: "red"},
	})
	if err != nil {
		t.Fatalf("ApplyComponent() error = %v", err)
	}
	if cu, ok := got.Store.Customisation(content.IconList, []string{"a", "b"}); !ok || cu.Icon != "star" {
		t.Errorf("customisation = %+v, %v", cu, ok)
	}
}

func TestApplyComponentErrors(t *testing.T) {
	t.Parallel()

	s := stateOf("a", "b")
	tests := []struct {
		name    string
		req     ApplyRequest
		wantErr error
	}{
		{"unknown component", ApplyRequest{Component: "marquee", BlockIDs: []string{"a"}}, ErrUnknownComponent},
		{"no blocks", ApplyRequest{Component: content.InfoBox}, ErrNoBlocks},
		{"unknown block", ApplyRequest{Component: content.InfoBox, BlockIDs: []string{"z"}}, ErrUnknownBlock},
		{"split out of range", ApplyRequest{Component: content.Tabs, BlockIDs: []string{"a", "b"}, SplitPoints: []int{3}}, ErrInvalidSplit},
		{"indent too deep", ApplyRequest{Component: content.BulletListComp, BlockIDs: []string{"a"}, IndentLevels: map[string]int{"a": 4}}, ErrInvalidIndent},
		{"indent on a box", ApplyRequest{Component: content.InfoBox, BlockIDs: []string{"a"}, IndentLevels: map[string]int{"a": 1}}, ErrNotIndentable},
		{"bad colour", ApplyRequest{Component: content.IconList, BlockIDs: []string{"a"}, Customisation: &Customisation{Colour: "url(x)"}}, ErrInvalidColour},
		{"bad icon", ApplyRequest{Component: content.IconList, BlockIDs: []string{"a"}, Customisation: &Customisation{Icon: "<b>"}}, ErrInvalidIcon},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := s.ApplyComponent(tt.req); !errors.Is(err, tt.wantErr) {
				t.Errorf("ApplyComponent() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// TestRemoveComponent / TestIndent
// ---------------------------------------------------------------------------

func TestRemoveComponent(t *testing.T) {
	t.Parallel()

	s, err := stateOf("a", "b", "c").ApplyComponent(ApplyRequest{
		Component: content.Tabs, BlockIDs: []string{"a", "b"}, SplitPoints: []int{1},
	})
	if err != nil {
		t.Fatalf("ApplyComponent() error = %v", err)
	}
	s.Store.SetSplits(content.Carousel, []string{"c"}, []int{})

	got, err := s.RemoveComponent("b")
	if err != nil {
		t.Fatalf("RemoveComponent() error = %v", err)
	}
	if got.Blocks[1].Component != content.NoComponent || got.Blocks[0].Component != content.Tabs {
		t.Errorf("components = %q %q", got.Blocks[0].Component, got.Blocks[1].Component)
	}
	if got.Store.Len() != 1 {
		t.Errorf("entries = %v, want only the carousel entry", got.Store.Entries())
	}

	if _, err := s.RemoveComponent("zz"); !errors.Is(err, ErrUnknownBlock) {
		t.Errorf("RemoveComponent(unknown) error = %v, want ErrUnknownBlock", err)
	}
}

func TestIndent(t *testing.T) {
	t.Parallel()

	base, err := stateOf("a", "b", "c").ApplyComponent(ApplyRequest{
		Component: content.BulletListComp, BlockIDs: []string{"a", "b", "c"},
	})
	if err != nil {
		t.Fatalf("ApplyComponent() error = %v", err)
	}

	type step struct {
		id    string
		delta int
	}
	tests := []struct {
		name  string
		steps []step
		want  map[string]int
	}{
		{"first block cannot indent", []step{{"a", 1}}, map[string]int{"a": 0, "b": 0, "c": 0}},
		{"one level below previous", []step{{"b", 1}, {"b", 1}}, map[string]int{"a": 0, "b": 1, "c": 0}},
		{"builds a ladder", []step{{"b", 1}, {"c", 1}, {"c", 1}}, map[string]int{"a": 0, "b": 1, "c": 2}},
		{"decrease is ungated and floored", []step{{"b", 1}, {"c", 2}, {"b", -5}}, map[string]int{"a": 0, "b": 0, "c": 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s := base
			for _, st := range tt.steps {
				var err error
				if s, err = s.Indent(st.id, st.delta); err != nil {
					t.Fatalf("Indent(%q, %d) error = %v", st.id, st.delta, err)
				}
			}
			if got := s.IndentLevels("a"); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("levels = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestIndentRejectsNonLists(t *testing.T) {
	t.Parallel()

	s := stateOf("a")
	if _, err := s.Indent("a", 1); !errors.Is(err, ErrNotIndentable) {
		t.Errorf("Indent() error = %v, want ErrNotIndentable", err)
	}
	if _, err := s.Indent("zz", 1); !errors.Is(err, ErrUnknownBlock) {
		t.Errorf("Indent() error = %v, want ErrUnknownBlock", err)
	}
}
