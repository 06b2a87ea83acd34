package blockforge

import "errors"

// Sentinel errors for library operations.
var (
	ErrTemplates = errors.New("loading component templates failed")

	// State errors.
	ErrEmptyBlockID     = errors.New("block id cannot be empty")
	ErrDuplicateBlockID = errors.New("duplicate block id")
	ErrInvalidBlockType = errors.New("invalid block type")
	ErrInvalidListType  = errors.New("invalid list type")
	ErrUnknownBlock     = errors.New("unknown block id")
	ErrNotIndentable    = errors.New("component does not support indentation")

	// ApplyRequest validation errors.
	ErrUnknownComponent = errors.New("unknown component")
	ErrNoBlocks         = errors.New("no target blocks")
	ErrInvalidSplit     = errors.New("invalid split point")
	ErrInvalidIndent    = errors.New("invalid indent level")
	ErrInvalidColour    = errors.New("invalid colour")
	ErrInvalidIcon      = errors.New("invalid icon")
)
