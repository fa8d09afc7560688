package main

import (
	"bytes"
	"errors"
	"io"
	"os"
	"strings"
	"testing"

	"github.com/conn-castle/launch/internal/installer"
)

func TestMainVersion(t *testing.T) {
	var out bytes.Buffer
	if err := execute([]string{"launch", "--version"}, &out, &out); err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out.String(), Version) {
		t.Fatalf("expected version output, got %q", out.String())
	}
}

func TestMainUnknownCommand(t *testing.T) {
	var out bytes.Buffer
	err := execute([]string{"launch", "unknown"}, &out, &out)
	if err == nil {
		t.Fatalf("expected error")
	}
}

func TestRunMainSuccess(t *testing.T) {
	var out bytes.Buffer
	called := false
	runMain([]string{"launch", "--version"}, &out, &out, func(code int) {
		called = true
	})
	if called {
		t.Fatalf("unexpected exit")
	}
}

func TestRunMainError(t *testing.T) {
	var out bytes.Buffer
	code := 0
	runMain([]string{"launch", "unknown"}, &out, &out, func(exitCode int) {
		code = exitCode
	})
	if code != 1 {
		t.Fatalf("expected exit code 1, got %d", code)
	}
	if !strings.Contains(out.String(), "unknown command") {
		t.Fatalf("expected error output, got %q", out.String())
	}
}

func TestRunMainExitCodes(t *testing.T) {
	orig := executeFunc
	t.Cleanup(func() { executeFunc = orig })

	tests := []struct {
		name     string
		err      error
		wantCode int
		wantOut  bool
	}{
		{name: "silent", err: &SilentExitError{Code: 7}, wantCode: 7},
		{name: "install failure", err: &installer.InstallFailedError{Package: "curl", ExitCode: 100}, wantCode: 100, wantOut: true},
		{name: "refresh failure", err: &installer.RefreshFailedError{ExitCode: 0}, wantCode: 1, wantOut: true},
		{name: "plain", err: errors.New("boom"), wantCode: 1, wantOut: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			executeFunc = func([]string, io.Writer, io.Writer) error { return tt.err }
			var stderr bytes.Buffer
			code := 0
			runMain([]string{"launch"}, io.Discard, &stderr, func(c int) { code = c })
			if code != tt.wantCode {
				t.Fatalf("exit code = %d, want %d", code, tt.wantCode)
			}
			if got := stderr.Len() > 0; got != tt.wantOut {
				t.Fatalf("stderr written = %v, want %v (%q)", got, tt.wantOut, stderr.String())
			}
		})
	}
}

func TestMainCallsExecute(t *testing.T) {
	originalArgs := os.Args
	defer func() { os.Args = originalArgs }()

	os.Args = []string{"launch", "--version"}
	main()
}

func TestVersionString(t *testing.T) {
	origVersion, origCommit, origDate := Version, Commit, BuildDate
	t.Cleanup(func() {
		Version, Commit, BuildDate = origVersion, origCommit, origDate
	})

	Version, Commit, BuildDate = "v1.2.3", "unknown", "unknown"
	if got := versionString(); got != "v1.2.3" {
		t.Fatalf("versionString() = %q", got)
	}
	Commit, BuildDate = "abc123", "2026-01-02"
	if got := versionString(); got != "v1.2.3 (commit abc123, built 2026-01-02)" {
		t.Fatalf("versionString() = %q", got)
	}
}
