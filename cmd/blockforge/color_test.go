package main

import (
	"bytes"
	"errors"
	"io"
	"strings"
	"testing"
)

func TestParseColorMode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in      string
		want    colorMode
		wantErr bool
	}{
		{"", colorAuto, false},
		{"auto", colorAuto, false},
		{" Always ", colorAlways, false},
		{"never", colorNever, false},
		{"rainbow", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			got, err := parseColorMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidColorMode) {
					t.Errorf("parseColorMode(%q) error = %v, want ErrInvalidColorMode", tt.in, err)
				}
				return
			}
			if err != nil || got != tt.want {
				t.Errorf("parseColorMode(%q) = %q, %v; want %q", tt.in, got, err, tt.want)
			}
		})
	}
}

func TestUseColor(t *testing.T) {
	t.Parallel()

	tty := func(io.Writer) bool { return true }

	tests := []struct {
		name     string
		mode     colorMode
		terminal bool
		noColor  string
		want     bool
	}{
		{"always ignores terminal", colorAlways, false, "", true},
		{"never ignores terminal", colorNever, true, "", false},
		{"auto on terminal", colorAuto, true, "", true},
		{"auto off terminal", colorAuto, false, "", false},
		{"auto honours NO_COLOR", colorAuto, true, "1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			env, _, _ := testEnv("", map[string]string{"NO_COLOR": tt.noColor})
			if tt.terminal {
				env.IsTerminal = tty
			}
			if got := useColor(tt.mode, env.Stdout, env); got != tt.want {
				t.Errorf("useColor() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWriteHTML(t *testing.T) {
	t.Parallel()

	const markup = `<div class="box"><p>Hi</p></div>`

	var plain bytes.Buffer
	if err := writeHTML(&plain, markup, false); err != nil {
		t.Fatalf("writeHTML(plain) error = %v", err)
	}
	if plain.String() != markup {
		t.Errorf("plain output = %q, want %q", plain.String(), markup)
	}

	var colored bytes.Buffer
	if err := writeHTML(&colored, markup, true); err != nil {
		t.Fatalf("writeHTML(color) error = %v", err)
	}
	out := colored.String()
	if !strings.Contains(out, "\x1b[") {
		t.Errorf("colored output has no escape sequences: %q", out)
	}
	if !strings.Contains(out, "Hi") {
		t.Errorf("colored output lost the text: %q", out)
	}
}
