// Package splitstore holds per-run layout data: manual split points, list
// indentation and icon-list customisation, each keyed by the component and
// the exact run of block ids it applies to.
package splitstore

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/alnah/go-blockforge/internal/content"
)

// MaxIndent is the deepest list nesting level.
const MaxIndent = 3

// ErrInvalidEntry is returned when a serialized entry cannot be loaded.
var ErrInvalidEntry = errors.New("invalid store entry")

// Kind is the kind of data an entry holds.
type Kind string

// Entry kinds.
const (
	KindSplit         Kind = "split"
	KindIndent        Kind = "indent"
	KindCustomisation Kind = "customisation"
)

// Key identifies an entry.
type Key struct {
	Kind      Kind
	Component content.Component
	BlockIDs  []string
}

// String returns the external form of the key: "<component>-<ids>",
// "indent-<component>-<ids>" or "customisation-<component>-<ids>", ids
// joined by "-". Two keys collide iff their strings are equal.
func (k Key) String() string {
	base := string(k.Component) + "-" + strings.Join(k.BlockIDs, "-")
	switch k.Kind {
	case KindIndent:
		return "indent-" + base
	case KindCustomisation:
		return "customisation-" + base
	}
	return base
}

// References reports whether the key's run includes id.
func (k Key) References(id string) bool {
	for _, b := range k.BlockIDs {
		if b == id {
			return true
		}
	}
	return false
}

// Customisation is the icon and colour of an icon list.
type Customisation struct {
	Icon   string `json:"icon,omitempty" yaml:"icon,omitempty"`
	Colour string `json:"colour,omitempty" yaml:"colour,omitempty"`
}

// Entry is the serialized form of one stored value.
type Entry struct {
	Kind          Kind              `json:"kind" yaml:"kind"`
	Component     content.Component `json:"component" yaml:"component"`
	BlockIDs      []string          `json:"blockIds" yaml:"blockIds"`
	SplitPoints   []int             `json:"splitPoints,omitempty" yaml:"splitPoints,omitempty"`
	Indent        map[string]int    `json:"indent,omitempty" yaml:"indent,omitempty"`
	Customisation *Customisation    `json:"customisation,omitempty" yaml:"customisation,omitempty"`
}

// Key returns the entry's key.
func (e Entry) Key() Key {
	return Key{Kind: e.Kind, Component: e.Component, BlockIDs: e.BlockIDs}
}

// Store is the split-point store. A nil *Store reads as empty.
type Store struct {
	entries map[string]Entry
}

// New creates an empty store.
func New() *Store {
	return &Store{entries: make(map[string]Entry)}
}

// Len returns the number of entries.
func (s *Store) Len() int {
	if s == nil {
		return 0
	}
	return len(s.entries)
}

// Clone returns a deep copy of s.
func (s *Store) Clone() *Store {
	out := New()
	if s == nil {
		return out
	}
	for k, e := range s.entries {
		out.entries[k] = cloneEntry(e)
	}
	return out
}

// SetSplits stores split indices for a run. An empty, non-nil slice is
// stored as such and reads back non-nil.
func (s *Store) SetSplits(c content.Component, ids []string, splits []int) {
	if splits == nil {
		splits = []int{}
	}
	s.put(Entry{Kind: KindSplit, Component: c, BlockIDs: ids, SplitPoints: append([]int{}, splits...)})
}

// Splits returns the split indices stored for a run. ok is false, and the
// slice nil, when none are stored.
func (s *Store) Splits(c content.Component, ids []string) (splits []int, ok bool) {
	e, ok := s.get(Key{Kind: KindSplit, Component: c, BlockIDs: ids})
	if !ok {
		return nil, false
	}
	if e.SplitPoints == nil {
		return []int{}, true
	}
	return append([]int{}, e.SplitPoints...), true
}

// SetIndent stores per-block indentation levels for a run, clamped to
// 0..MaxIndent.
func (s *Store) SetIndent(c content.Component, ids []string, levels map[string]int) {
	clamped := make(map[string]int, len(levels))
	for id, l := range levels {
		clamped[id] = ClampIndent(l)
	}
	s.put(Entry{Kind: KindIndent, Component: c, BlockIDs: ids, Indent: clamped})
}

// Indent returns the indentation levels stored for a run.
func (s *Store) Indent(c content.Component, ids []string) (map[string]int, bool) {
	e, ok := s.get(Key{Kind: KindIndent, Component: c, BlockIDs: ids})
	if !ok {
		return nil, false
	}
	out := make(map[string]int, len(e.Indent))
	for id, l := range e.Indent {
		out[id] = l
	}
	return out, true
}

// SetCustomisation stores an icon-list customisation for a run.
func (s *Store) SetCustomisation(c content.Component, ids []string, cu Customisation) {
	s.put(Entry{Kind: KindCustomisation, Component: c, BlockIDs: ids, Customisation: &cu})
}

// Customisation returns the customisation stored for a run.
func (s *Store) Customisation(c content.Component, ids []string) (Customisation, bool) {
	e, ok := s.get(Key{Kind: KindCustomisation, Component: c, BlockIDs: ids})
	if !ok || e.Customisation == nil {
		return Customisation{}, false
	}
	return *e.Customisation, true
}

// Prune drops every entry whose run references an id not in present and
// returns how many were dropped.
func (s *Store) Prune(present map[string]bool) int {
	return s.drop(func(e Entry) bool {
		for _, id := range e.BlockIDs {
			if !present[id] {
				return true
			}
		}
		return false
	})
}

// RemoveBlock drops every entry whose run references id.
func (s *Store) RemoveBlock(id string) int {
	return s.drop(func(e Entry) bool { return e.Key().References(id) })
}

// Clear empties the store.
func (s *Store) Clear() {
	if s == nil {
		return
	}
	s.entries = make(map[string]Entry)
}

// Entries returns every entry ordered by key string.
func (s *Store) Entries() []Entry {
	if s == nil {
		return nil
	}
	keys := make([]string, 0, len(s.entries))
	for k := range s.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	out := make([]Entry, 0, len(keys))
	for _, k := range keys {
		out = append(out, cloneEntry(s.entries[k]))
	}
	return out
}

// FromEntries builds a store from serialized entries. Later entries replace
// earlier ones with the same key.
func FromEntries(entries []Entry) (*Store, error) {
	s := New()
	for i, e := range entries {
		if err := validate(e); err != nil {
			return nil, fmt.Errorf("entry %d: %w", i, err)
		}
		switch e.Kind {
		case KindSplit:
			s.SetSplits(e.Component, e.BlockIDs, e.SplitPoints)
		case KindIndent:
			s.SetIndent(e.Component, e.BlockIDs, e.Indent)
		case KindCustomisation:
			s.SetCustomisation(e.Component, e.BlockIDs, *e.Customisation)
		}
	}
	return s, nil
}

func validate(e Entry) error {
	if len(e.BlockIDs) == 0 {
		return fmt.Errorf("%w: no block ids", ErrInvalidEntry)
	}
	switch e.Kind {
	case KindSplit, KindIndent:
	case KindCustomisation:
		if e.Customisation == nil {
			return fmt.Errorf("%w: customisation entry without value", ErrInvalidEntry)
		}
	default:
		return fmt.Errorf("%w: unknown kind %q", ErrInvalidEntry, e.Kind)
	}
	return nil
}

// MarshalJSON encodes the store as its entry list.
func (s *Store) MarshalJSON() ([]byte, error) {
	entries := s.Entries()
	if entries == nil {
		entries = []Entry{}
	}
	return json.Marshal(entries)
}

// UnmarshalJSON decodes an entry list.
func (s *Store) UnmarshalJSON(data []byte) error {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	loaded, err := FromEntries(entries)
	if err != nil {
		return err
	}
	*s = *loaded
	return nil
}

// MarshalYAML encodes the store as its entry list.
func (s *Store) MarshalYAML() (any, error) {
	entries := s.Entries()
	if entries == nil {
		entries = []Entry{}
	}
	return entries, nil
}

// UnmarshalYAML decodes an entry list.
func (s *Store) UnmarshalYAML(unmarshal func(any) error) error {
	var entries []Entry
	if err := unmarshal(&entries); err != nil {
		return err
	}
	loaded, err := FromEntries(entries)
	if err != nil {
		return err
	}
	*s = *loaded
	return nil
}

// ClampIndent limits a level to 0..MaxIndent.
func ClampIndent(level int) int {
	return max(0, min(MaxIndent, level))
}

func (s *Store) put(e Entry) {
	if s.entries == nil {
		s.entries = make(map[string]Entry)
	}
	e.BlockIDs = append([]string{}, e.BlockIDs...)
	s.entries[e.Key().String()] = e
}

func (s *Store) get(k Key) (Entry, bool) {
	if s == nil {
		return Entry{}, false
	}
	e, ok := s.entries[k.String()]
	return e, ok
}

func (s *Store) drop(match func(Entry) bool) int {
	if s == nil {
		return 0
	}
	n := 0
	for k, e := range s.entries {
		if match(e) {
			delete(s.entries, k)
			n++
		}
	}
	return n
}

func cloneEntry(e Entry) Entry {
	e.BlockIDs = append([]string{}, e.BlockIDs...)
	if e.SplitPoints != nil {
		e.SplitPoints = append([]int{}, e.SplitPoints...)
	}
	if e.Indent != nil {
		m := make(map[string]int, len(e.Indent))
		for k, v := range e.Indent {
			m[k] = v
		}
		e.Indent = m
	}
	if e.Customisation != nil {
		c := *e.Customisation
		e.Customisation = &c
	}
	return e
}
