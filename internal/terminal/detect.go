// Package terminal provides terminal detection utilities.
package terminal

import (
	"os"

	"golang.org/x/term"
)

var isTerminal = term.IsTerminal

// IsInteractive reports whether stdin and stdout are both interactive terminals.
// Credential prompts and the full-screen views require it.
func IsInteractive() bool {
	return IsTerminalFile(os.Stdin) && IsTerminalFile(os.Stdout)
}

// IsTerminalFile reports whether f is attached to a terminal.
func IsTerminalFile(f *os.File) bool {
	if f == nil {
		return false
	}
	return isTerminal(int(f.Fd()))
}
