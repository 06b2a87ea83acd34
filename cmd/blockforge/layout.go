package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/alnah/go-blockforge"
	"github.com/alnah/go-blockforge/internal/content"
	"github.com/alnah/go-blockforge/internal/hints"
	"github.com/alnah/go-blockforge/internal/yamlutil"
)

// ErrLayout marks an unreadable or inapplicable layout file.
var ErrLayout = errors.New("invalid layout")

// layout is a replayable list of component applications:
//
//	- component: accordion
//	  blocks: [2, 3, 4, 5]
//	  autoSplit: true
//	- component: iconList
//	  blocks: [7, 8]
//	  indent: [0, 1]
//	  icon: star
//	  colour: "#dc3545"
type layout []layoutStep

type layoutStep struct {
	Component   blockforge.Component `yaml:"component"`
	Blocks      []blockRef           `yaml:"blocks"`
	SplitPoints []int                `yaml:"splitPoints"`
	AutoSplit   bool                 `yaml:"autoSplit"`
	Indent      []int                `yaml:"indent"` // one level per entry of Blocks
	Icon        string               `yaml:"icon"`
	Colour      string               `yaml:"colour"`
}

// blockRef is a zero-based block index or a block id.
type blockRef struct {
	index int
	id    string
}

// UnmarshalYAML accepts an integer index or a string id.
func (r *blockRef) UnmarshalYAML(unmarshal func(any) error) error {
	var v any
	if err := unmarshal(&v); err != nil {
		return err
	}
	switch t := v.(type) {
	case string:
		if t == "" {
			return errors.New("empty block id")
		}
		*r = blockRef{index: -1, id: t}
	case int:
		*r = blockRef{index: t}
	case int64:
		*r = blockRef{index: int(t)}
	case uint64:
		if t > uint64(maxInputBytes) {
			return fmt.Errorf("block index %d out of range", t)
		}
		*r = blockRef{index: int(t)} // #nosec G115 -- bounded above
	default:
		return fmt.Errorf("block reference must be an index or an id, got %T", v)
	}
	if r.id == "" && r.index < 0 {
		return fmt.Errorf("negative block index %d", r.index)
	}
	return nil
}

// loadLayout reads and decodes a layout file. Unknown keys are rejected.
func loadLayout(path string) (layout, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- user-provided layout path
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrReadInput, err)
	}
	var l layout
	if err := yamlutil.UnmarshalStrict(data, &l); err != nil {
		return nil, fmt.Errorf("%w: %s: %v%s", ErrLayout, path, err, hints.ForLayoutFile())
	}
	return l, nil
}

// Apply replays the layout onto s in order.
func (l layout) Apply(s blockforge.State) (blockforge.State, error) {
	for i, step := range l {
		req, err := step.request(s)
		if err != nil {
			return s, fmt.Errorf("%w: step %d: %w", ErrLayout, i+1, err)
		}
		next, err := s.ApplyComponent(req)
		if err != nil {
			hint := ""
			if errors.Is(err, blockforge.ErrUnknownComponent) {
				hint = hints.ForUnknownComponent(componentNames())
			}
			return s, fmt.Errorf("%w: step %d: %w%s", ErrLayout, i+1, err, hint)
		}
		s = next
	}
	return s, nil
}

// request resolves the step's block references against s.
func (st layoutStep) request(s blockforge.State) (blockforge.ApplyRequest, error) {
	if len(st.Indent) > len(st.Blocks) {
		return blockforge.ApplyRequest{}, fmt.Errorf("%w: %d levels for %d blocks", blockforge.ErrInvalidIndent, len(st.Indent), len(st.Blocks))
	}

	ids := make([]string, 0, len(st.Blocks))
	for _, ref := range st.Blocks {
		if ref.id != "" {
			ids = append(ids, ref.id)
			continue
		}
		if ref.index >= len(s.Blocks) {
			return blockforge.ApplyRequest{}, fmt.Errorf("%w: index %d (document has %d blocks)", blockforge.ErrUnknownBlock, ref.index, len(s.Blocks))
		}
		ids = append(ids, s.Blocks[ref.index].ID)
	}

	req := blockforge.ApplyRequest{
		Component:   st.Component,
		BlockIDs:    ids,
		SplitPoints: st.SplitPoints,
		AutoSplit:   st.AutoSplit,
	}
	if len(st.Indent) > 0 {
		req.IndentLevels = make(map[string]int, len(st.Indent))
		for i, level := range st.Indent {
			req.IndentLevels[ids[i]] = level
		}
	}
	if st.Icon != "" || st.Colour != "" {
		req.Customisation = &blockforge.Customisation{Icon: st.Icon, Colour: st.Colour}
	}
	return req, nil
}

func componentNames() []string {
	names := make([]string, 0, len(content.Catalogue))
	for _, spec := range content.Catalogue {
		names = append(names, string(spec.ID))
	}
	return names
}

// loadState reads an input, parses it and replays l, which may be nil.
func loadState(d *blockforge.Designer, path string, l layout, env *Environment) (blockforge.State, error) {
	payload, err := readPayload(path, env.Stdin)
	if err != nil {
		return blockforge.State{}, err
	}
	return l.Apply(d.Load(payload))
}

// loadOptionalLayout loads path, or returns nil when path is empty.
func loadOptionalLayout(path string) (layout, error) {
	if path == "" {
		return nil, nil
	}
	return loadLayout(path)
}
