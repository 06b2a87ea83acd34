package blockforge

import (
	"fmt"

	"github.com/alnah/go-blockforge/internal/classify"
	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/normalize"
	"github.com/alnah/go-blockforge/internal/readability"
	"github.com/alnah/go-blockforge/internal/render"
	"github.com/alnah/go-blockforge/internal/splitstore"
)

type (
	// Block is one paragraph, heading or list item.
	Block = content.Block
	// BlockType is the structural type of a block.
	BlockType = content.BlockType
	// ListType is the list sub-type of a list block.
	ListType = content.ListType
	// Component names a design component.
	Component = content.Component
	// Store holds split points, indentation and customisation per block run.
	Store = splitstore.Store
	// Customisation is the icon and colour of an icon list.
	Customisation = splitstore.Customisation
	// Suggestions maps block ids to a suggested component.
	Suggestions = classify.Suggestions
	// Payload is a clipboard payload with HTML and plain-text variants.
	Payload = normalize.Payload
	// Stats holds readability statistics.
	Stats = readability.Stats
)

// MaxIndent is the deepest list indentation level.
const MaxIndent = splitstore.MaxIndent

// ApplyRequest applies a component to a set of blocks.
type ApplyRequest struct {
	Component Component `json:"component" yaml:"component"`
	BlockIDs  []string  `json:"blockIds" yaml:"blockIds"`

	// SplitPoints are indices within the run where a new group starts.
	// An empty, non-nil slice is stored as such.
	SplitPoints []int `json:"splitPoints,omitempty" yaml:"splitPoints,omitempty"`
	// AutoSplit stores heading-based split points for smart components
	// when SplitPoints is nil.
	AutoSplit bool `json:"autoSplit,omitempty" yaml:"autoSplit,omitempty"`

	IndentLevels  map[string]int `json:"indentLevels,omitempty" yaml:"indentLevels,omitempty"`
	Customisation *Customisation `json:"customisation,omitempty" yaml:"customisation,omitempty"`
}

// Validate checks that the request is well formed. It does not check that
// the block ids exist.
func (r *ApplyRequest) Validate() error {
	if r == nil {
		return ErrNoBlocks
	}
	if !r.Component.Known() {
		return fmt.Errorf("%w: %q", ErrUnknownComponent, r.Component)
	}
	if len(r.BlockIDs) == 0 {
		return ErrNoBlocks
	}
	for _, at := range r.SplitPoints {
		if at < 0 || at > len(r.BlockIDs) {
			return fmt.Errorf("%w: %d (must be between 0 and %d)", ErrInvalidSplit, at, len(r.BlockIDs))
		}
	}
	for id, level := range r.IndentLevels {
		if level < 0 || level > MaxIndent {
			return fmt.Errorf("%w: %d for block %q (must be between 0 and %d)", ErrInvalidIndent, level, id, MaxIndent)
		}
	}
	if c := r.Customisation; c != nil {
		if c.Colour != "" && !render.ValidColour(c.Colour) {
			return fmt.Errorf("%w: %q", ErrInvalidColour, c.Colour)
		}
		if c.Icon != "" && !render.ValidIcon(c.Icon) {
			return fmt.Errorf("%w: %q", ErrInvalidIcon, c.Icon)
		}
	}
	return nil
}
