package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blockforge <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Turn pasted course content into styled, accessible HTML components.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  render      Render files or directories to HTML fragments, pages, PNG or PDF")
	fmt.Fprintln(w, "  preview     Render one input as a standalone preview page")
	fmt.Fprintln(w, "  blocks      Dump parsed blocks, store and suggestions as YAML")
	fmt.Fprintln(w, "  stats       Show readability statistics")
	fmt.Fprintln(w, "  serve       Serve the JSON API over HTTP")
	fmt.Fprintln(w, "  doctor      Check the system for snapshot support")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'blockforge help <command>' for details on a specific command.")
}

func printDesignFlagsUsage(w io.Writer) {
	fmt.Fprintln(w, "Design:")
	fmt.Fprintln(w, "  -l, --layout <file>       YAML list of components to apply before rendering")
	fmt.Fprintln(w, "      --template-dir <dir>  Component template overrides (<dir>/components/<name>.html)")
	fmt.Fprintln(w, "      --tab-title-max <n>   Rune limit for tab titles (5-200)")
	fmt.Fprintln(w, "      --icon <name>         Default icon-list icon, e.g. circle-check")
	fmt.Fprintln(w, "      --colour <c>          Default icon-list colour: hex or colour word")
	fmt.Fprintln(w)
}

func printPageFlagsUsage(w io.Writer) {
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "  -f, --format <s>          Output format: html, png, pdf")
	fmt.Fprintln(w, "      --title <s>           Page title (default: input file name)")
	fmt.Fprintln(w, "      --lang <s>            Page language (default: en)")
	fmt.Fprintln(w, "  -t, --timeout <d>         Snapshot timeout, e.g. 30s, 2m")
	fmt.Fprintln(w, "      --width <n>           Snapshot viewport width in pixels (320-3840)")
	fmt.Fprintln(w)
}

func printCommonFlagsUsage(w io.Writer) {
	fmt.Fprintln(w, "Common:")
	fmt.Fprintln(w, "  -c, --config <name>       Config file name or path")
	fmt.Fprintln(w, "  -q, --quiet               Only show errors")
	fmt.Fprintln(w, "  -v, --verbose             Log pipeline diagnostics to stderr")
}

// printRenderUsage prints usage for the render command.
func printRenderUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blockforge render <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render files or directories. Inputs are .html/.htm (clipboard HTML) or")
	fmt.Fprintln(w, ".txt/.text/.md/.markdown (plain text); - reads stdin.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (- for stdout)")
	fmt.Fprintln(w, "  -w, --workers <n>         Parallel workers (0 = auto)")
	fmt.Fprintln(w, "  -s, --standalone          Wrap fragments in a standalone preview page")
	fmt.Fprintln(w, "      --color <mode>        Highlight HTML on stdout: auto, always, never")
	fmt.Fprintln(w)
	printDesignFlagsUsage(w)
	printPageFlagsUsage(w)
	printCommonFlagsUsage(w)
}

// printPreviewUsage prints usage for the preview command.
func printPreviewUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blockforge preview <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Render one input as a standalone page that loads Font Awesome and")
	fmt.Fprintln(w, "Bootstrap from their CDNs. With --format png or pdf, capture it with")
	fmt.Fprintln(w, "headless Chrome.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output:")
	fmt.Fprintln(w, "  -o, --output <path>       Output file or directory (- for stdout)")
	fmt.Fprintln(w, "      --color <mode>        Highlight HTML on stdout: auto, always, never")
	fmt.Fprintln(w)
	printDesignFlagsUsage(w)
	printPageFlagsUsage(w)
	printCommonFlagsUsage(w)
}

// printBlocksUsage prints usage for the blocks command.
func printBlocksUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blockforge blocks <input> [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Dump the parsed blocks, the split-point store and component suggestions")
	fmt.Fprintln(w, "as YAML. Block indices in the dump are the ones a layout refers to.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -o, --output <file>       Output YAML file (default: stdout)")
	fmt.Fprintln(w)
	printDesignFlagsUsage(w)
	printCommonFlagsUsage(w)
}

// printStatsUsage prints usage for the stats command.
func printStatsUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blockforge stats <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Show word count, reading time, reading level and readability indices.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -l, --layout <file>       YAML layout replayed before analysis")
	fmt.Fprintln(w, "      --wpm <n>             Reading speed in words per minute (50-1000)")
	fmt.Fprintln(w, "      --json                Print statistics as JSON")
	fmt.Fprintln(w)
	printCommonFlagsUsage(w)
}

// printServeUsage prints usage for the serve command.
func printServeUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: blockforge serve [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Serve the stateless JSON API. Every request carries the whole document")
	fmt.Fprintln(w, "state; see GET /api/components for the palette.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "  -a, --addr <host:port>    Listen address (default 127.0.0.1:8080)")
	fmt.Fprintln(w, "      --origin <url>        Allowed CORS origin, repeatable (* = any)")
	fmt.Fprintln(w, "      --max-body <bytes>    Maximum request body (0 = 4MiB)")
	fmt.Fprintln(w)
	printDesignFlagsUsage(w)
	printCommonFlagsUsage(w)
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) int {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return ExitSuccess
	}

	switch args[0] {
	case "render":
		printRenderUsage(env.Stdout)
	case "preview":
		printPreviewUsage(env.Stdout)
	case "blocks":
		printBlocksUsage(env.Stdout)
	case "stats":
		printStatsUsage(env.Stdout)
	case "serve":
		printServeUsage(env.Stdout)
	case "doctor":
		fmt.Fprintln(env.Stdout, "Usage: blockforge doctor [--json]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Check Chrome, sandbox settings, temp directory and template overrides.")
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: blockforge version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: blockforge help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		fmt.Fprintf(env.Stderr, "Unknown command: %s\n", args[0])
		printUsage(env.Stderr)
		return ExitUsage
	}
	return ExitSuccess
}
