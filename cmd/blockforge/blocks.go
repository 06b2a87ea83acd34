package main

import (
	"fmt"
	"path/filepath"

	"github.com/alnah/go-blockforge"
	"github.com/alnah/go-blockforge/internal/fileutil"
	"github.com/alnah/go-blockforge/internal/yamlutil"
)

// blocksDump is the YAML document written by the blocks command. It can be
// edited and fed back to the HTTP API as a state body.
type blocksDump struct {
	Blocks      []blockforge.Block     `yaml:"blocks"`
	Store       *blockforge.Store      `yaml:"store"`
	Suggestions blockforge.Suggestions `yaml:"suggestions,omitempty"`
}

// runBlocksCmd dumps the parsed state of one input, with suggestions.
func runBlocksCmd(args []string, env *Environment) error {
	flags, inputs, err := parseBlocksFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(inputs) != 1 {
		return fmt.Errorf("%w: blocks takes exactly one input, got %d", ErrUsage, len(inputs))
	}
	if inputs[0] != stdinPath && !isInputFile(inputs[0]) {
		return fmt.Errorf("%w: got %q", ErrInvalidExtension, filepath.Ext(inputs[0]))
	}

	d, l, err := setupAnalysis(flags.common, flags.design, 0, env)
	if err != nil {
		return err
	}
	s, err := loadState(d, inputs[0], l, env)
	if err != nil {
		return err
	}

	blocks := s.Blocks
	if blocks == nil {
		blocks = []blockforge.Block{}
	}
	data, err := yamlutil.Marshal(blocksDump{Blocks: blocks, Store: s.Store, Suggestions: d.Suggest(s)})
	if err != nil {
		return fmt.Errorf("encoding blocks: %w", err)
	}

	if flags.output == "" || flags.output == stdinPath {
		_, err = env.Stdout.Write(data)
		return err
	}
	if err := fileutil.WriteAtomic(flags.output, data); err != nil {
		return fmt.Errorf("%w: %w", ErrWriteOutput, err)
	}
	if !flags.common.quiet {
		fmt.Fprintf(env.Stdout, "Created %s\n", flags.output)
	}
	return nil
}

// setupAnalysis loads configuration and builds the Designer and layout for
// the single-input commands. wpm overrides the configured reading speed
// when positive.
func setupAnalysis(common commonFlags, design designFlags, wpm int, env *Environment) (*blockforge.Designer, layout, error) {
	cfg, err := loadConfig(common, loadEnvConfig(env.Getenv))
	if err != nil {
		return nil, nil, err
	}
	mergeDesignFlags(design, cfg)
	if wpm != 0 {
		cfg.Readability.WordsPerMinute = wpm
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	d, err := newDesigner(cfg, newLogger(common.verbose, env.Stderr))
	if err != nil {
		return nil, nil, err
	}
	l, err := loadOptionalLayout(design.layout)
	if err != nil {
		return nil, nil, err
	}
	return d, l, nil
}
