package terminal

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/creack/pty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsInteractive(t *testing.T) {
	// The value depends on how the tests are run; only check that it agrees with the helper.
	assert.Equal(t, IsTerminalFile(os.Stdin) && IsTerminalFile(os.Stdout), IsInteractive())
}

func TestIsTerminalFileWithPty(t *testing.T) {
	ptmx, tty, err := pty.Open()
	if err != nil {
		t.Skipf("pty unavailable: %v", err)
	}
	t.Cleanup(func() {
		_ = tty.Close()
		_ = ptmx.Close()
	})
	assert.True(t, IsTerminalFile(tty))
}

func TestIsTerminalFileRegularFile(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "plain"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.False(t, IsTerminalFile(f))
	assert.False(t, IsTerminalFile(nil))
}

func TestIsInteractiveUsesBothStreams(t *testing.T) {
	orig := isTerminal
	t.Cleanup(func() { isTerminal = orig })

	stdinFd := int(os.Stdin.Fd())
	isTerminal = func(fd int) bool { return fd == stdinFd }
	assert.False(t, IsInteractive())

	isTerminal = func(int) bool { return true }
	assert.True(t, IsInteractive())
}
