package main

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/launch/internal/testutil"
)

const testPassword = "hunter2"

// cliEnv isolates a CLI test: XDG dirs point into temp dirs, the terminal is
// absent, and stubs for sudo and apt-get live in bin.
type cliEnv struct {
	configHome string
	stateHome  string
	bin        string
	configPath string
}

func newCLIEnv(t *testing.T) *cliEnv {
	t.Helper()
	env := &cliEnv{
		configHome: t.TempDir(),
		stateHome:  t.TempDir(),
		bin:        t.TempDir(),
	}
	t.Setenv("XDG_CONFIG_HOME", env.configHome)
	t.Setenv("XDG_STATE_HOME", env.stateHome)
	env.configPath = filepath.Join(env.configHome, "launch", "config.toml")

	origInteractive, origNeeds, origLookup := isInteractive, needsSecret, lookupEnv
	origNoColor := color.NoColor
	t.Cleanup(func() {
		isInteractive = origInteractive
		needsSecret = origNeeds
		lookupEnv = origLookup
		color.NoColor = origNoColor
	})
	isInteractive = func() bool { return false }
	needsSecret = func() bool { return true }
	lookupEnv = func(string) (string, bool) { return "", false }
	color.NoColor = true

	testutil.WriteFakeSudo(t, env.bin, "sudo", testPassword)
	env.writeAptGet(t, "")
	env.writeConfig(t, `dependencies = ["git", "curl"]`)
	return env
}

// writeAptGet installs an apt-get stub that echoes its arguments. extra runs first.
func (e *cliEnv) writeAptGet(t *testing.T, extra string) {
	t.Helper()
	testutil.WriteScript(t, e.bin, "apt-get", extra+"echo \"apt-get $*\"\n")
}

// writeConfig writes a config using the stubs. installExtra goes in [install]; tail is appended.
func (e *cliEnv) writeConfig(t *testing.T, installExtra string, tail ...string) {
	t.Helper()
	apt := filepath.Join(e.bin, "apt-get")
	content := fmt.Sprintf(`[install]
%s
refresh_command = "%s update"
install_command = "%s install -y"

[privilege]
command = "%s"
`, installExtra, apt, apt, filepath.Join(e.bin, "sudo")) + strings.Join(tail, "\n")
	require.NoError(t, os.MkdirAll(filepath.Dir(e.configPath), 0o755))
	require.NoError(t, os.WriteFile(e.configPath, []byte(content), 0o644))
}

func (e *cliEnv) logContents(t *testing.T) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(e.stateHome, "launch", "launch.log"))
	require.NoError(t, err)
	return string(data)
}

// runCLI executes the root command with args and stdin, returning combined output.
func runCLI(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetArgs(args)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	err := cmd.Execute()
	return out.String(), err
}
