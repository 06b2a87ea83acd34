package splitstore

import (
	"encoding/json"
	"errors"
	"reflect"
	"testing"

	"github.com/alnah/go-blockforge/internal/content"
)

func TestKeyString(t *testing.T) {
	t.Parallel()

	ids := []string{"a", "b"}
	tests := []struct {
		key      Key
		expected string
	}{
		{Key{Kind: KindSplit, Component: content.Tabs, BlockIDs: ids}, "tabs-a-b"},
		{Key{Kind: KindIndent, Component: content.BulletListComp, BlockIDs: ids}, "indent-bulletList-a-b"},
		{Key{Kind: KindCustomisation, Component: content.IconList, BlockIDs: ids}, "customisation-iconList-a-b"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			t.Parallel()
			if got := tt.key.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestSplitsEmptyVersusAbsent(t *testing.T) {
	t.Parallel()

	s := New()
	ids := []string{"a"}

	if got, ok := s.Splits(content.Accordion, ids); ok || got != nil {
		t.Fatalf("Splits() on empty store = (%v, %v), want (nil, false)", got, ok)
	}

	s.SetSplits(content.Accordion, ids, []int{})
	got, ok := s.Splits(content.Accordion, ids)
	if !ok || got == nil || len(got) != 0 {
		t.Errorf("Splits() = (%v, %v), want non-nil empty, true", got, ok)
	}
}

func TestIndentClamped(t *testing.T) {
	t.Parallel()

	s := New()
	ids := []string{"a", "b", "c"}
	s.SetIndent(content.BulletListComp, ids, map[string]int{"a": -2, "b": 1, "c": 9})

	got, ok := s.Indent(content.BulletListComp, ids)
	want := map[string]int{"a": 0, "b": 1, "c": MaxIndent}
	if !ok || !reflect.DeepEqual(got, want) {
		t.Errorf("Indent() = (%v, %v), want (%v, true)", got, ok, want)
	}
}

func TestPruneAndRemoveBlock(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetSplits(content.Tabs, []string{"a", "b"}, []int{1})
	s.SetIndent(content.BulletListComp, []string{"c", "d"}, map[string]int{"d": 1})
	s.SetCustomisation(content.IconList, []string{"e"}, Customisation{Icon: "star", Colour: "red"})

	if n := s.Prune(map[string]bool{"a": true, "b": true, "c": true, "e": true}); n != 1 {
		t.Errorf("Prune() = %d, want 1", n)
	}
	if _, ok := s.Indent(content.BulletListComp, []string{"c", "d"}); ok {
		t.Error("indent entry referencing a missing id survived Prune")
	}

	if n := s.RemoveBlock("b"); n != 1 {
		t.Errorf("RemoveBlock() = %d, want 1", n)
	}
	if s.Len() != 1 {
		t.Errorf("Len() = %d, want 1", s.Len())
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", s.Len())
	}
}

func TestRemoveBlockMatchesWholeIDs(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetSplits(content.Tabs, []string{"ab", "cd"}, []int{1})
	if n := s.RemoveBlock("a"); n != 0 {
		t.Errorf("RemoveBlock(substring) = %d, want 0", n)
	}
}

func TestNilStoreReads(t *testing.T) {
	t.Parallel()

	var s *Store
	if s.Len() != 0 || s.Entries() != nil {
		t.Error("nil store is not empty")
	}
	if _, ok := s.Splits(content.Tabs, []string{"a"}); ok {
		t.Error("nil store returned splits")
	}
	if s.Clone().Len() != 0 {
		t.Error("Clone of nil store is not empty")
	}
}

func TestCloneIsDeep(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetSplits(content.Tabs, []string{"a", "b"}, []int{1})
	c := s.Clone()
	c.SetSplits(content.Tabs, []string{"a", "b"}, []int{})

	got, _ := s.Splits(content.Tabs, []string{"a", "b"})
	if !reflect.DeepEqual(got, []int{1}) {
		t.Errorf("original changed through clone: %v", got)
	}
}

func TestJSONEntryList(t *testing.T) {
	t.Parallel()

	s := New()
	s.SetSplits(content.Accordion, []string{"a"}, []int{})
	s.SetCustomisation(content.IconList, []string{"b", "c"}, Customisation{Icon: "star", Colour: "#ff0000"})

	data, err := json.Marshal(s)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var loaded Store
	if err := json.Unmarshal(data, &loaded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if splits, ok := loaded.Splits(content.Accordion, []string{"a"}); !ok || splits == nil || len(splits) != 0 {
		t.Errorf("empty split entry lost: (%v, %v)", splits, ok)
	}
	if cu, ok := loaded.Customisation(content.IconList, []string{"b", "c"}); !ok || cu.Icon != "star" {
		t.Errorf("customisation lost: (%+v, %v)", cu, ok)
	}
}

func TestFromEntriesRejectsInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		entry Entry
	}{
		{"no ids", Entry{Kind: KindSplit, Component: content.Tabs}},
		{"unknown kind", Entry{Kind: "colour", Component: content.Tabs, BlockIDs: []string{"a"}}},
		{"customisation without value", Entry{Kind: KindCustomisation, Component: content.IconList, BlockIDs: []string{"a"}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if _, err := FromEntries([]Entry{tt.entry}); !errors.Is(err, ErrInvalidEntry) {
				t.Errorf("FromEntries() error = %v, want ErrInvalidEntry", err)
			}
		})
	}
}
