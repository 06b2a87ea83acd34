// Package hints appends actionable advice to CLI error messages. Every hint
// renders as "\n  hint: <text>" so it lines up under the error.
package hints

import (
	"strings"

	"github.com/alnah/go-blockforge/internal/fileutil"
)

// containerMarker is the file Docker creates in every container.
var containerMarker = "/.dockerenv"

// ciVars are set by the common CI runners.
var ciVars = []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"}

// ForBrowserConnect explains how to get Chrome running for png and pdf
// output. getenv is consulted for CI, container and rod settings.
func ForBrowserConnect(getenv func(string) string) string {
	var advice []string

	if sandboxed(getenv) && getenv("ROD_NO_SANDBOX") != "1" {
		advice = append(advice, "set ROD_NO_SANDBOX=1 inside containers and CI runners")
	}
	if getenv("ROD_BROWSER_BIN") == "" {
		advice = append(advice, "point ROD_BROWSER_BIN at an installed Chrome")
	}
	advice = append(advice, "--format html needs no browser")

	return format(strings.Join(advice, "; "))
}

// sandboxed reports whether the process likely runs where Chrome's sandbox
// is unavailable.
func sandboxed(getenv func(string) string) bool {
	for _, v := range ciVars {
		if getenv(v) != "" {
			return true
		}
	}
	if getenv("BLOCKFORGE_CONTAINER") == "1" || getenv("container") != "" {
		return true
	}
	return fileutil.FileExists(containerMarker)
}

// ForTimeout suggests a longer snapshot timeout.
func ForTimeout() string {
	return format("pages pulling Bootstrap and Font Awesome from a CDN may need a longer --timeout")
}

// ForConfigNotFound lists where a config name was looked up.
func ForConfigNotFound(searched []string) string {
	if len(searched) == 0 {
		return format("pass --config with a path to a YAML file")
	}
	return format("create one of " + strings.Join(searched, ", ") + " or pass --config with a path")
}

// ForOutputDirectory is attached to failures creating output directories.
func ForOutputDirectory() string {
	return format("check that the parent of --output exists and is writable")
}

// ForUnknownComponent lists the component names a layout may use.
func ForUnknownComponent(available []string) string {
	if len(available) == 0 {
		return ""
	}
	return format("available: " + strings.Join(available, ", "))
}

// ForTemplateDir describes the expected template override layout.
func ForTemplateDir() string {
	return format("templates live in <dir>/components/<name>.html; missing files fall back to the built-in set")
}

// ForLayoutFile describes the layout file shape.
func ForLayoutFile() string {
	return format("a layout is a YAML list of {component, blocks, splitPoints, autoSplit, indent, icon, colour}")
}

func format(hint string) string {
	if hint == "" {
		return ""
	}
	return "\n  hint: " + hint
}
