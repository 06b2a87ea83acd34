package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"strings"
	"testing"
)

// fakeDeps returns doctor dependencies with no Chrome, no container and a
// writable temp dir.
func fakeDeps(vars map[string]string) doctorDeps {
	return doctorDeps{
		getenv:     func(k string) string { return vars[k] },
		lookChrome: func() (string, bool) { return "", false },
		stat:       func(string) (os.FileInfo, error) { return nil, fs.ErrNotExist },
		version:    func(string) (string, error) { return "", errors.New("no chrome") },
		writeTemp:  func() error { return nil },
	}
}

// messages joins the findings of one severity.
func messages(r *doctorReport, sev severity) string {
	var out []string
	for _, f := range r.Findings {
		if f.Severity == sev {
			out = append(out, f.Message)
		}
	}
	return strings.Join(out, "\n")
}

func TestRunDoctor_Status(t *testing.T) {
	t.Parallel()

	withChrome := func(d doctorDeps) doctorDeps {
		d.lookChrome = func() (string, bool) { return "/usr/bin/chromium", true }
		d.stat = func(p string) (os.FileInfo, error) {
			if p == "/usr/bin/chromium" {
				return nil, nil
			}
			return nil, fs.ErrNotExist
		}
		d.version = func(string) (string, error) { return "Chromium 120.0", nil }
		return d
	}

	tests := []struct {
		name      string
		deps      doctorDeps
		want      string
		wantMsg   string
		wantLevel severity
	}{
		{"no chrome is a warning", fakeDeps(nil), "warnings", "only html output", sevWarn},
		{"chrome found", withChrome(fakeDeps(nil)), "ready", "Chromium 120.0", sevOK},
		{"bad browser bin", fakeDeps(map[string]string{"ROD_BROWSER_BIN": "/nope/chrome"}), "errors", "/nope/chrome", sevError},
		{"bad template dir", fakeDeps(map[string]string{"BLOCKFORGE_TEMPLATE_DIR": "/definitely/not/here"}), "errors", "templates:", sevError},
		{"missing config", fakeDeps(map[string]string{"BLOCKFORGE_CONFIG": "/definitely/not/here.yaml"}), "errors", "config /definitely/not/here.yaml", sevError},
		{
			"temp not writable",
			func() doctorDeps {
				d := fakeDeps(nil)
				d.writeTemp = func() error { return fs.ErrPermission }
				return d
			}(),
			"errors", "temp directory not writable", sevError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			r := runDoctor(tt.deps)
			if r.Status != tt.want {
				t.Errorf("Status = %q, want %q (findings %+v)", r.Status, tt.want, r.Findings)
			}
			if got := messages(r, tt.wantLevel); !strings.Contains(got, tt.wantMsg) {
				t.Errorf("%s findings = %q, want %q", tt.wantLevel, got, tt.wantMsg)
			}
		})
	}
}

func TestRunDoctor_GoodTemplateDir(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	r := runDoctor(fakeDeps(map[string]string{"BLOCKFORGE_TEMPLATE_DIR": dir}))
	if !strings.Contains(messages(r, sevOK), "templates "+dir) {
		t.Errorf("findings = %+v", r.Findings)
	}
}

func TestIsContainer(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		vars     map[string]string
		want     bool
		wantHint string
	}{
		{"none", nil, false, ""},
		{"explicit", map[string]string{"BLOCKFORGE_CONTAINER": "1"}, true, "BLOCKFORGE_CONTAINER=1"},
		{"podman", map[string]string{"container": "podman"}, true, "container=podman"},
		{"kubernetes", map[string]string{"KUBERNETES_SERVICE_HOST": "10.0.0.1"}, true, "KUBERNETES_SERVICE_HOST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, hint := isContainer(fakeDeps(tt.vars))
			if got != tt.want || hint != tt.wantHint {
				t.Errorf("isContainer() = %v, %q; want %v, %q", got, hint, tt.want, tt.wantHint)
			}
		})
	}
}

func TestCheckHost_SandboxWarning(t *testing.T) {
	t.Parallel()

	r := runDoctor(fakeDeps(map[string]string{"CI": "true"}))
	if !strings.Contains(messages(r, sevWarn), "ROD_NO_SANDBOX=1") {
		t.Errorf("warnings = %q, want a sandbox warning", messages(r, sevWarn))
	}

	r = runDoctor(fakeDeps(map[string]string{"CI": "true", "ROD_NO_SANDBOX": "1"}))
	if strings.Contains(messages(r, sevWarn), "ROD_NO_SANDBOX") {
		t.Errorf("warned although ROD_NO_SANDBOX=1: %q", messages(r, sevWarn))
	}
}

func TestPrintDoctorReport(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	printDoctorReport(&buf, runDoctor(fakeDeps(nil)))
	out := buf.String()
	for _, want := range []string{"\nBrowser\n", "[WARN] Chrome not found", "[OK] temp directory writable", "Status: Ready with warnings"} {
		if !strings.Contains(out, want) {
			t.Errorf("output lacks %q:\n%s", want, out)
		}
	}
}

func TestDoctorReport_JSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(runDoctor(fakeDeps(nil)))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), `"severity":"warn"`) || !strings.Contains(string(data), `"status":"warnings"`) {
		t.Errorf("json = %s", data)
	}
}

func TestRunDoctorCmd_UnknownArg(t *testing.T) {
	t.Parallel()

	env, _, stderr := testEnv("", nil)
	if code := runDoctorCmd([]string{"--yaml"}, env); code != ExitUsage {
		t.Errorf("runDoctorCmd() = %d, want %d", code, ExitUsage)
	}
	if !strings.Contains(stderr.String(), "--yaml") {
		t.Errorf("stderr = %q", stderr)
	}
}
