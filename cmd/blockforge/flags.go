package main

import (
	"errors"
	"fmt"
	"io"

	flag "github.com/spf13/pflag"
)

// ErrUsage marks invalid command-line usage.
var ErrUsage = errors.New("invalid usage")

// commonFlags holds flags shared across commands.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// designFlags tune the generator and the state before rendering.
type designFlags struct {
	layout      string
	templateDir string
	tabTitleMax int
	icon        string
	colour      string
}

// pageFlags configure standalone pages and browser snapshots.
type pageFlags struct {
	format  string
	title   string
	lang    string
	timeout string
	width   int
}

// outputFlags control where and how results are written.
type outputFlags struct {
	output  string
	workers int
	color   string
}

type renderFlags struct {
	common     commonFlags
	design     designFlags
	page       pageFlags
	out        outputFlags
	standalone bool
}

type previewFlags struct {
	common commonFlags
	design designFlags
	page   pageFlags
	out    outputFlags
}

type blocksFlags struct {
	common commonFlags
	design designFlags
	output string
}

type statsFlags struct {
	common commonFlags
	layout string
	wpm    int
	json   bool
}

type serveFlags struct {
	common  commonFlags
	design  designFlags
	addr    string
	origins []string
	maxBody int64
}

// addCommonFlags adds common flags to a FlagSet.
func addCommonFlags(fs *flag.FlagSet, f *commonFlags) {
	fs.StringVarP(&f.config, "config", "c", "", "config file name or path")
	fs.BoolVarP(&f.quiet, "quiet", "q", false, "only show errors")
	fs.BoolVarP(&f.verbose, "verbose", "v", false, "log pipeline diagnostics to stderr")
}

// addDesignFlags adds generator flags to a FlagSet.
func addDesignFlags(fs *flag.FlagSet, f *designFlags) {
	fs.StringVarP(&f.layout, "layout", "l", "", "YAML layout replayed onto the parsed blocks")
	fs.StringVar(&f.templateDir, "template-dir", "", "directory with component template overrides")
	fs.IntVar(&f.tabTitleMax, "tab-title-max", 0, "rune limit for tab titles (5-200)")
	fs.StringVar(&f.icon, "icon", "", "default icon-list icon, e.g. circle-check")
	fs.StringVar(&f.colour, "colour", "", "default icon-list colour, hex or colour word")
}

// addPageFlags adds standalone page and snapshot flags to a FlagSet.
func addPageFlags(fs *flag.FlagSet, f *pageFlags) {
	fs.StringVarP(&f.format, "format", "f", "", "output format: html, png, pdf")
	fs.StringVar(&f.title, "title", "", "page title (default: input file name)")
	fs.StringVar(&f.lang, "lang", "", "page language, e.g. en")
	fs.StringVarP(&f.timeout, "timeout", "t", "", "snapshot timeout (e.g., 30s, 2m)")
	fs.IntVar(&f.width, "width", 0, "snapshot viewport width in pixels")
}

// addOutputFlags adds output flags to a FlagSet.
func addOutputFlags(fs *flag.FlagSet, f *outputFlags, batch bool) {
	fs.StringVarP(&f.output, "output", "o", "", "output file or directory (- for stdout)")
	fs.StringVar(&f.color, "color", string(colorAuto), "highlight HTML on stdout: auto, always, never")
	if batch {
		fs.IntVarP(&f.workers, "workers", "w", 0, "parallel workers (0 = auto)")
	}
}

func newRenderFlagSet(f *renderFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("render", flag.ContinueOnError)
	addOutputFlags(fs, &f.out, true)
	fs.BoolVarP(&f.standalone, "standalone", "s", false, "wrap fragments in a standalone preview page")
	addCommonFlags(fs, &f.common)
	addDesignFlags(fs, &f.design)
	addPageFlags(fs, &f.page)
	return fs
}

func newPreviewFlagSet(f *previewFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("preview", flag.ContinueOnError)
	addOutputFlags(fs, &f.out, false)
	addCommonFlags(fs, &f.common)
	addDesignFlags(fs, &f.design)
	addPageFlags(fs, &f.page)
	return fs
}

func newBlocksFlagSet(f *blocksFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("blocks", flag.ContinueOnError)
	fs.StringVarP(&f.output, "output", "o", "", "output YAML file (default: stdout)")
	addCommonFlags(fs, &f.common)
	addDesignFlags(fs, &f.design)
	return fs
}

func newStatsFlagSet(f *statsFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("stats", flag.ContinueOnError)
	addCommonFlags(fs, &f.common)
	fs.StringVarP(&f.layout, "layout", "l", "", "YAML layout replayed onto the parsed blocks")
	fs.IntVar(&f.wpm, "wpm", 0, "reading speed in words per minute (50-1000)")
	fs.BoolVar(&f.json, "json", false, "print statistics as JSON")
	return fs
}

func newServeFlagSet(f *serveFlags) *flag.FlagSet {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	fs.StringVarP(&f.addr, "addr", "a", "", "listen address (default 127.0.0.1:8080)")
	fs.StringSliceVar(&f.origins, "origin", nil, "allowed CORS origin, repeatable (* = any)")
	fs.Int64Var(&f.maxBody, "max-body", 0, "maximum request body in bytes (0 = 4MiB)")
	addCommonFlags(fs, &f.common)
	addDesignFlags(fs, &f.design)
	return fs
}

// parseFlagSet parses args, wiring usage output to w. Parse failures wrap
// ErrUsage; -h returns flag.ErrHelp unwrapped.
func parseFlagSet(fs *flag.FlagSet, args []string, w io.Writer, usage func(io.Writer)) ([]string, error) {
	fs.SetOutput(io.Discard)
	fs.Usage = func() { usage(w) }
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return fs.Args(), nil
}

func parseRenderFlags(args []string, w io.Writer) (*renderFlags, []string, error) {
	f := &renderFlags{}
	rest, err := parseFlagSet(newRenderFlagSet(f), args, w, printRenderUsage)
	return f, rest, err
}

func parsePreviewFlags(args []string, w io.Writer) (*previewFlags, []string, error) {
	f := &previewFlags{}
	rest, err := parseFlagSet(newPreviewFlagSet(f), args, w, printPreviewUsage)
	return f, rest, err
}

func parseBlocksFlags(args []string, w io.Writer) (*blocksFlags, []string, error) {
	f := &blocksFlags{}
	rest, err := parseFlagSet(newBlocksFlagSet(f), args, w, printBlocksUsage)
	return f, rest, err
}

func parseStatsFlags(args []string, w io.Writer) (*statsFlags, []string, error) {
	f := &statsFlags{}
	rest, err := parseFlagSet(newStatsFlagSet(f), args, w, printStatsUsage)
	return f, rest, err
}

func parseServeFlags(args []string, w io.Writer) (*serveFlags, []string, error) {
	f := &serveFlags{}
	rest, err := parseFlagSet(newServeFlagSet(f), args, w, printServeUsage)
	return f, rest, err
}
