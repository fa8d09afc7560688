package installer

import (
	"errors"
	"fmt"

	"github.com/conn-castle/launch/internal/messages"
)

var (
	// ErrCancelled is reported when the context is cancelled between steps.
	ErrCancelled = errors.New(messages.InstallerCancelled)
	// ErrNoDependencies is reported when the dependency list is empty.
	ErrNoDependencies = errors.New(messages.InstallerNoDependencies)
)

// RefreshFailedError reports a package-index refresh that exited non-zero.
type RefreshFailedError struct {
	ExitCode int
	// Stderr holds the last lines the refresh wrote to stderr, if any.
	Stderr string
}

func (e *RefreshFailedError) Error() string {
	msg := fmt.Sprintf(messages.InstallerRefreshFailedFmt, e.ExitCode)
	if e.Stderr != "" {
		msg += fmt.Sprintf(messages.InstallerStderrSuffixFmt, e.Stderr)
	}
	return msg
}

// InstallFailedError reports a package install that exited non-zero.
type InstallFailedError struct {
	Package  string
	ExitCode int
	Stderr   string
}

func (e *InstallFailedError) Error() string {
	msg := fmt.Sprintf(messages.InstallerInstallFailedFmt, e.Package, e.ExitCode)
	if e.Stderr != "" {
		msg += fmt.Sprintf(messages.InstallerStderrSuffixFmt, e.Stderr)
	}
	return msg
}

// LaunchFailedError reports a command that could not be started or whose output
// could not be read.
type LaunchFailedError struct {
	Cause error
}

func (e *LaunchFailedError) Error() string {
	return e.Cause.Error()
}

func (e *LaunchFailedError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the subprocess exit code carried by err, if any.
func ExitCode(err error) (int, bool) {
	var refreshErr *RefreshFailedError
	if errors.As(err, &refreshErr) {
		return refreshErr.ExitCode, true
	}
	var installErr *InstallFailedError
	if errors.As(err, &installErr) {
		return installErr.ExitCode, true
	}
	return 0, false
}
