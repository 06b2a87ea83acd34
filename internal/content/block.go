// Package content defines the block model shared by every pipeline stage.
package content

import (
	"github.com/google/uuid"
)

// BlockType is the structural type of a block.
type BlockType string

// Block types.
const (
	Paragraph BlockType = "paragraph"
	Heading   BlockType = "heading"
	List      BlockType = "list"
)

// ListType is the list sub-type carried by list items.
type ListType string

// List sub-types.
const (
	NoList      ListType = ""
	BulletList  ListType = "bulletList"
	AlphaList   ListType = "alphaList"
	NumericList ListType = "numericList"
)

// Component returns the list component rendering this list type.
func (l ListType) Component() Component {
	return Component(l)
}

// Block is one semantic unit of authored content: a paragraph, a heading,
// or a single list item.
type Block struct {
	ID        string    `json:"id" yaml:"id"`
	Type      BlockType `json:"type" yaml:"type"`
	Content   string    `json:"content" yaml:"content"`
	ListType  ListType  `json:"listType,omitempty" yaml:"listType,omitempty"`
	Component Component `json:"component,omitempty" yaml:"component,omitempty"`
}

// IsList reports whether the block renders as a list item.
func (b Block) IsList() bool {
	return b.Type == List || b.ListType != NoList
}

// NewID mints a fresh block identifier.
var NewID = func() string {
	return uuid.NewString()
}

// IDs returns the ids of blocks in order.
func IDs(blocks []Block) []string {
	ids := make([]string, len(blocks))
	for i, b := range blocks {
		ids[i] = b.ID
	}
	return ids
}

// Clone returns a copy of blocks that shares no backing array with the input.
func Clone(blocks []Block) []Block {
	if blocks == nil {
		return nil
	}
	out := make([]Block, len(blocks))
	copy(out, blocks)
	return out
}
