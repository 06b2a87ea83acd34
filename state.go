package blockforge

import (
	"fmt"

	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/group"
	"github.com/alnah/go-blockforge/internal/sanitize"
	"github.com/alnah/go-blockforge/internal/splitstore"
)

// fullReplacementRatio is the share of previous block ids below which a
// block replacement counts as a new document and clears the store.
const fullReplacementRatio = 0.5

// State is an editable document: its blocks in order and the layout store
// for their component runs. Operations return a new State and leave the
// receiver untouched.
type State struct {
	Blocks []Block `json:"blocks" yaml:"blocks"`
	Store  *Store  `json:"store" yaml:"store"`
}

// NewState builds a State from blocks supplied by a client. Block ids must
// be present and unique, and types known. Content is filtered to the block
// allow-list and list blocks without a list type become bullet items. A nil
// store starts empty.
func NewState(blocks []Block, store *Store) (State, error) {
	seen := make(map[string]bool, len(blocks))
	out := make([]Block, len(blocks))
	for i, b := range blocks {
		if b.ID == "" {
			return State{}, fmt.Errorf("block %d: %w", i, ErrEmptyBlockID)
		}
		if seen[b.ID] {
			return State{}, fmt.Errorf("%w: %q", ErrDuplicateBlockID, b.ID)
		}
		seen[b.ID] = true

		switch b.Type {
		case content.Paragraph, content.Heading, content.List:
		case "":
			b.Type = content.Paragraph
		default:
			return State{}, fmt.Errorf("block %q: %w: %q", b.ID, ErrInvalidBlockType, b.Type)
		}
		switch b.ListType {
		case content.NoList, content.BulletList, content.AlphaList, content.NumericList:
		default:
			return State{}, fmt.Errorf("block %q: %w: %q", b.ID, ErrInvalidListType, b.ListType)
		}
		if b.Type == content.List && b.ListType == content.NoList {
			b.ListType = content.BulletList
		}

		b.Content = sanitize.Content.Sanitize(b.Content)
		out[i] = b
	}

	if store == nil {
		store = splitstore.New()
	} else {
		store = store.Clone()
	}
	return State{Blocks: out, Store: store}, nil
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	return State{Blocks: content.Clone(s.Blocks), Store: s.Store.Clone()}
}

// ReplaceBlocks swaps in a new block sequence. When fewer than half of the
// previous block ids survive, the change is a full replacement and the store
// is cleared; otherwise entries referencing a removed block are pruned.
func (s State) ReplaceBlocks(next []Block) State {
	out, _ := s.replace(next)
	return out
}

// replace is ReplaceBlocks that also reports a full replacement.
func (s State) replace(next []Block) (State, bool) {
	previous := make(map[string]bool, len(s.Blocks))
	for _, b := range s.Blocks {
		previous[b.ID] = true
	}
	present := make(map[string]bool, len(next))
	preserved := 0
	for _, b := range next {
		present[b.ID] = true
		if previous[b.ID] {
			preserved++
		}
	}

	ratio := 0.0
	if len(s.Blocks) > 0 {
		ratio = float64(preserved) / float64(len(s.Blocks))
	}

	store := s.Store.Clone()
	full := ratio < fullReplacementRatio
	if full {
		store.Clear()
	} else {
		store.Prune(present)
	}
	return State{Blocks: content.Clone(next), Store: store}, full
}

// ApplyComponent sets req.Component on the target blocks and stores the
// request's split points, indentation and customisation for the run. The
// run is the target ids in block order.
func (s State) ApplyComponent(req ApplyRequest) (State, error) {
	if err := req.Validate(); err != nil {
		return State{}, err
	}
	if req.IndentLevels != nil && !req.Component.IsIndentable() {
		return State{}, fmt.Errorf("%w: %s", ErrNotIndentable, req.Component)
	}

	targets := make(map[string]bool, len(req.BlockIDs))
	for _, id := range req.BlockIDs {
		if s.index(id) < 0 {
			return State{}, fmt.Errorf("%w: %q", ErrUnknownBlock, id)
		}
		targets[id] = true
	}

	out := s.Clone()
	var run []Block
	for i := range out.Blocks {
		if targets[out.Blocks[i].ID] {
			out.Blocks[i].Component = req.Component
			run = append(run, out.Blocks[i])
		}
	}
	ids := content.IDs(run)

	switch {
	case req.SplitPoints != nil:
		out.Store.SetSplits(req.Component, ids, req.SplitPoints)
	case req.AutoSplit && req.Component.IsSmart():
		out.Store.SetSplits(req.Component, ids, group.AutoSplitPoints(run))
	}
	if req.IndentLevels != nil {
		levels := make(map[string]int, len(ids))
		for _, id := range ids {
			levels[id] = req.IndentLevels[id]
		}
		out.Store.SetIndent(req.Component, ids, levels)
	}
	if req.Customisation != nil {
		out.Store.SetCustomisation(req.Component, ids, *req.Customisation)
	}
	return out, nil
}

// RemoveComponent clears the component of a block and drops every store
// entry whose run includes it.
func (s State) RemoveComponent(blockID string) (State, error) {
	i := s.index(blockID)
	if i < 0 {
		return State{}, fmt.Errorf("%w: %q", ErrUnknownBlock, blockID)
	}
	out := s.Clone()
	out.Blocks[i].Component = content.NoComponent
	out.Store.RemoveBlock(blockID)
	return out, nil
}

// Indent moves a list block delta levels deeper (or shallower when delta is
// negative) within its component run. Levels stay within 0..MaxIndent and an
// increase never goes more than one level below the previous block of the
// run. Decreases are not gated.
func (s State) Indent(blockID string, delta int) (State, error) {
	i := s.index(blockID)
	if i < 0 {
		return State{}, fmt.Errorf("%w: %q", ErrUnknownBlock, blockID)
	}
	c := s.Blocks[i].Component
	if !c.IsIndentable() {
		return State{}, fmt.Errorf("%w: %q", ErrNotIndentable, c)
	}

	start, end := s.run(i)
	ids := content.IDs(s.Blocks[start:end])
	levels, _ := s.Store.Indent(c, ids)
	if levels == nil {
		levels = make(map[string]int, len(ids))
	}
	for _, id := range ids {
		levels[id] = splitstore.ClampIndent(levels[id])
	}

	cur := levels[blockID]
	next := splitstore.ClampIndent(cur + delta)
	if delta > 0 {
		limit := 0
		if i > start {
			limit = levels[s.Blocks[i-1].ID] + 1
		}
		next = max(cur, min(next, limit))
	}
	levels[blockID] = next

	out := s.Clone()
	out.Store.SetIndent(c, ids, levels)
	return out, nil
}

// IndentLevels returns the stored level of every block in the run holding
// blockID. Blocks without a stored level read 0.
func (s State) IndentLevels(blockID string) map[string]int {
	i := s.index(blockID)
	if i < 0 {
		return nil
	}
	start, end := s.run(i)
	ids := content.IDs(s.Blocks[start:end])
	stored, _ := s.Store.Indent(s.Blocks[i].Component, ids)
	out := make(map[string]int, len(ids))
	for _, id := range ids {
		out[id] = stored[id]
	}
	return out
}

// run returns the bounds of the component run holding block i, as the
// renderer groups it.
func (s State) run(i int) (start, end int) {
	c := s.Blocks[i].Component
	if c == content.NoComponent || !c.IsMultiBlock() {
		return i, i + 1
	}
	start, end = i, i+1
	for start > 0 && s.Blocks[start-1].Component == c {
		start--
	}
	for end < len(s.Blocks) && s.Blocks[end].Component == c {
		end++
	}
	return start, end
}

func (s State) index(id string) int {
	for i, b := range s.Blocks {
		if b.ID == id {
			return i
		}
	}
	return -1
}
