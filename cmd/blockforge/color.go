package main

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// ErrInvalidColorMode is returned for an unknown --color value.
var ErrInvalidColorMode = errors.New("invalid color mode")

type colorMode string

const (
	colorAuto   colorMode = "auto"
	colorAlways colorMode = "always"
	colorNever  colorMode = "never"
)

func parseColorMode(s string) (colorMode, error) {
	switch m := colorMode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return colorAuto, nil
	case colorAuto, colorAlways, colorNever:
		return m, nil
	default:
		return "", fmt.Errorf("%w: %q (auto, always, never)", ErrInvalidColorMode, s)
	}
}

// useColor decides whether output to w is highlighted. Auto mode requires a
// terminal and honours NO_COLOR.
func useColor(mode colorMode, w io.Writer, env *Environment) bool {
	switch mode {
	case colorAlways:
		return true
	case colorNever:
		return false
	default:
		return env.Getenv("NO_COLOR") == "" && env.IsTerminal(w)
	}
}

// writeHTML writes markup to w, highlighted with 256-colour escapes when
// color is set. Highlighting failures fall back to the plain markup.
func writeHTML(w io.Writer, markup string, color bool) error {
	if color {
		var sb strings.Builder
		if err := highlightHTML(&sb, markup); err == nil {
			_, err := io.WriteString(w, sb.String())
			return err
		}
	}
	_, err := io.WriteString(w, markup)
	return err
}

func highlightHTML(w io.Writer, markup string) error {
	lexer := lexers.Get("html")
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, markup)
	if err != nil {
		return err
	}
	return formatter.Format(w, style, iterator)
}
