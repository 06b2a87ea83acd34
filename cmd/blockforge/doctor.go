package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"

	"github.com/go-rod/rod/lib/launcher"

	"github.com/alnah/go-blockforge/internal/assets"
	"github.com/alnah/go-blockforge/internal/config"
	"github.com/alnah/go-blockforge/internal/fileutil"
)

// severity grades a doctor finding. Only errors make the command fail:
// html output needs nothing beyond the binary itself.
type severity int

const (
	sevOK severity = iota
	sevWarn
	sevError
)

var severityLabels = [...]string{sevOK: "OK", sevWarn: "WARN", sevError: "ERROR"}

func (s severity) String() string { return severityLabels[s] }

func (s severity) MarshalText() ([]byte, error) {
	return []byte(strings.ToLower(s.String())), nil
}

// finding is one line of the doctor report.
type finding struct {
	Section  string   `json:"section"`
	Severity severity `json:"severity"`
	Message  string   `json:"message"`
}

// doctorReport is the full result, in check order.
type doctorReport struct {
	Status   string    `json:"status"` // ready, warnings or errors
	Findings []finding `json:"findings"`
}

func (r *doctorReport) add(section string, sev severity, format string, args ...any) {
	r.Findings = append(r.Findings, finding{Section: section, Severity: sev, Message: fmt.Sprintf(format, args...)})
}

// worst returns the highest severity reported.
func (r *doctorReport) worst() severity {
	w := sevOK
	for _, f := range r.Findings {
		w = max(w, f.Severity)
	}
	return w
}

// doctorDeps isolates the host lookups for tests.
type doctorDeps struct {
	getenv     func(string) string
	lookChrome func() (string, bool)
	stat       func(string) (os.FileInfo, error)
	version    func(path string) (string, error)
	writeTemp  func() error
}

func defaultDoctorDeps(env *Environment) doctorDeps {
	return doctorDeps{
		getenv:     env.Getenv,
		lookChrome: launcher.LookPath,
		stat:       os.Stat,
		version:    chromeVersion,
		writeTemp: func() error {
			_, cleanup, err := fileutil.WriteTempFile("<!DOCTYPE html>", "html")
			if err == nil {
				cleanup()
			}
			return err
		},
	}
}

// doctorChecks run in order; each appends to the report.
var doctorChecks = []func(*doctorReport, doctorDeps){
	checkBrowser,
	checkHost,
	checkTempDir,
	checkConfigFile,
	checkTemplateDir,
}

// runDoctorCmd prints the report and exits 1 when any check errored.
func runDoctorCmd(args []string, env *Environment) int {
	asJSON := false
	for _, arg := range args {
		switch arg {
		case "--json":
			asJSON = true
		default:
			fmt.Fprintf(env.Stderr, "error: invalid usage: unknown doctor argument %q\n", arg)
			return ExitUsage
		}
	}

	report := runDoctor(defaultDoctorDeps(env))
	if asJSON {
		enc := json.NewEncoder(env.Stdout)
		enc.SetIndent("", "  ")
		_ = enc.Encode(report)
	} else {
		printDoctorReport(env.Stdout, report)
	}

	if report.Status == "errors" {
		return ExitGeneral
	}
	return ExitSuccess
}

func runDoctor(deps doctorDeps) *doctorReport {
	r := &doctorReport{}
	for _, check := range doctorChecks {
		check(r, deps)
	}
	switch r.worst() {
	case sevError:
		r.Status = "errors"
	case sevWarn:
		r.Status = "warnings"
	default:
		r.Status = "ready"
	}
	return r
}

// checkBrowser looks for the Chrome used by png and pdf snapshots.
func checkBrowser(r *doctorReport, deps doctorDeps) {
	const section = "Browser"

	path := deps.getenv("ROD_BROWSER_BIN")
	if path == "" {
		var ok bool
		if path, ok = deps.lookChrome(); !ok {
			r.add(section, sevWarn, "Chrome not found; only html output is available (install Chrome or set ROD_BROWSER_BIN)")
			return
		}
	}
	if _, err := deps.stat(path); err != nil {
		r.add(section, sevError, "ROD_BROWSER_BIN points at a missing file: %s", path)
		return
	}
	r.add(section, sevOK, "Chrome at %s", path)

	if v, err := deps.version(path); err != nil {
		r.add(section, sevWarn, "could not read the Chrome version: %v", err)
	} else {
		r.add(section, sevOK, "%s", v)
	}

	if deps.getenv("ROD_NO_SANDBOX") == "1" {
		r.add(section, sevOK, "sandbox disabled (ROD_NO_SANDBOX=1)")
	} else {
		r.add(section, sevOK, "sandbox enabled")
	}
}

func chromeVersion(path string) (string, error) {
	out, err := exec.Command(path, "--version").Output() // #nosec G204 -- path from rod lookup or ROD_BROWSER_BIN
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(out)), nil
}

// checkHost reports the platform and warns when Chrome's sandbox is likely
// unavailable.
func checkHost(r *doctorReport, deps doctorDeps) {
	const section = "Host"

	r.add(section, sevOK, "platform %s/%s", runtime.GOOS, runtime.GOARCH)

	container, signal := isContainer(deps)
	if container {
		r.add(section, sevOK, "container detected (%s)", signal)
	}
	ci := isCI(deps.getenv)
	if ci {
		r.add(section, sevOK, "CI detected")
	}
	if (container || ci) && deps.getenv("ROD_NO_SANDBOX") != "1" {
		r.add(section, sevWarn, "sandboxed host without ROD_NO_SANDBOX=1; Chrome may fail to start")
	}
}

// isContainer returns whether a container was detected and which signal
// gave it away.
func isContainer(deps doctorDeps) (bool, string) {
	if deps.getenv("BLOCKFORGE_CONTAINER") == "1" {
		return true, "BLOCKFORGE_CONTAINER=1"
	}
	if _, err := deps.stat("/.dockerenv"); err == nil {
		return true, "/.dockerenv"
	}
	if v := deps.getenv("container"); v != "" {
		return true, "container=" + v
	}
	if deps.getenv("KUBERNETES_SERVICE_HOST") != "" {
		return true, "KUBERNETES_SERVICE_HOST"
	}
	return false, ""
}

func isCI(getenv func(string) string) bool {
	for _, v := range []string{"CI", "GITHUB_ACTIONS", "GITLAB_CI", "JENKINS_URL", "CIRCLECI"} {
		if getenv(v) != "" {
			return true
		}
	}
	return false
}

// checkTempDir verifies snapshots can stage their page on disk.
func checkTempDir(r *doctorReport, deps doctorDeps) {
	if err := deps.writeTemp(); err != nil {
		r.add("System", sevError, "temp directory not writable: %v", err)
		return
	}
	r.add("System", sevOK, "temp directory writable")
}

// checkConfigFile loads BLOCKFORGE_CONFIG when set.
func checkConfigFile(r *doctorReport, deps doctorDeps) {
	name := deps.getenv("BLOCKFORGE_CONFIG")
	if name == "" {
		return
	}
	if _, err := config.LoadConfig(name); err != nil {
		r.add("System", sevError, "config %s: %v", name, err)
		return
	}
	r.add("System", sevOK, "config %s", name)
}

// checkTemplateDir validates BLOCKFORGE_TEMPLATE_DIR when set.
func checkTemplateDir(r *doctorReport, deps doctorDeps) {
	dir := deps.getenv("BLOCKFORGE_TEMPLATE_DIR")
	if dir == "" {
		return
	}
	if _, err := assets.NewFilesystemLoader(dir); err != nil {
		r.add("System", sevError, "templates: %v", err)
		return
	}
	r.add("System", sevOK, "templates %s", dir)
}

var statusLines = map[string]string{
	"ready":    "Status: Ready",
	"warnings": "Status: Ready with warnings",
	"errors":   "Status: Not ready (see errors above)",
}

// printDoctorReport groups findings under their section headings.
func printDoctorReport(w io.Writer, r *doctorReport) {
	fmt.Fprintln(w, "blockforge doctor")
	section := ""
	for _, f := range r.Findings {
		if f.Section != section {
			section = f.Section
			fmt.Fprintf(w, "\n%s\n", section)
		}
		fmt.Fprintf(w, "  [%s] %s\n", f.Severity, f.Message)
	}
	fmt.Fprintf(w, "\n%s\n", statusLines[r.Status])
}
