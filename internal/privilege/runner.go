// Package privilege runs package manager commands with elevated permissions.
//
// When the elevation tool asks for a password, the secret is written to its stdin
// (sudo -S) and never appears in argv; a passwordless tool gets nothing on stdin. Children are started in their own process group so a terminal Ctrl+C
// does not reach a package manager in the middle of a transaction.
package privilege

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"syscall"

	"golang.org/x/sys/unix"

	"github.com/conn-castle/launch/internal/messages"
)

// DefaultTool is the elevation tool used when none is configured.
const DefaultTool = "sudo"

const stderrTailMax = 5

var (
	geteuid  = unix.Geteuid
	execCmd  = exec.Command
	environ  = os.Environ
	lookPath = exec.LookPath

	// maxLineBytes caps a single stdout line; the rest of an over-long line is dropped.
	maxLineBytes = 1 << 20
)

// Command is one program invocation. Env entries are KEY=VALUE pairs set for the
// program itself (passed through env(1) when elevating, since sudo resets the environment).
type Command struct {
	Name string
	Args []string
	Env  []string
}

// Argv returns the program name followed by its arguments.
func (c Command) Argv() []string {
	return append([]string{c.Name}, c.Args...)
}

func (c Command) String() string {
	return strings.Join(c.Argv(), " ")
}

// With returns a copy of c with extra appended to its arguments.
func (c Command) With(extra ...string) Command {
	args := make([]string, 0, len(c.Args)+len(extra))
	args = append(args, c.Args...)
	args = append(args, extra...)
	env := append([]string(nil), c.Env...)
	return Command{Name: c.Name, Args: args, Env: env}
}

// LineFunc receives each stdout line, without its trailing newline.
type LineFunc func(line string)

// Result is the outcome of a command that started.
type Result struct {
	ExitCode int
	// Stderr holds the last few lines the command wrote to stderr.
	Stderr string
}

// Runner executes a privileged command.
// A command that ran and exited non-zero is reported through Result, not err;
// err is reserved for commands that could not be started or read.
type Runner interface {
	Run(ctx context.Context, cmd Command, secret string, onLine LineFunc) (Result, error)
}

// LaunchError reports a command that could not be started.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf(messages.InstallerLaunchFailedFmt, e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

// NeedsSecret reports whether commands will go through the elevation tool.
func NeedsSecret() bool {
	return geteuid() != 0
}

// SudoRunner elevates through sudo-compatible tools.
type SudoRunner struct {
	// Tool is the elevation program; DefaultTool when empty.
	Tool string
}

// Run starts cmd and blocks until it exits. ctx is only checked before the
// command starts; a running command is never interrupted.
func (r SudoRunner) Run(ctx context.Context, cmd Command, secret string, onLine LineFunc) (Result, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return Result{}, errors.New(messages.PrivilegeCommandRequired)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	elevate := NeedsSecret()
	withSecret := elevate && !r.passwordless()
	argv := r.argv(cmd, elevate, withSecret)
	proc := execCmd(argv[0], argv[1:]...)
	proc.SysProcAttr = &syscall.SysProcAttr{Setpgid: true}
	if elevate {
		proc.Env = environ()
		if withSecret {
			proc.Stdin = strings.NewReader(secret + "\n")
		}
	} else {
		proc.Env = append(environ(), cmd.Env...)
	}

	stderr := &tailBuffer{max: stderrTailMax}
	proc.Stderr = stderr
	stdout, err := proc.StdoutPipe()
	if err != nil {
		return Result{}, &LaunchError{Command: cmd.String(), Err: err}
	}
	if err := proc.Start(); err != nil {
		return Result{}, &LaunchError{Command: cmd.String(), Err: err}
	}

	scanErr := scanLines(stdout, onLine)
	if scanErr != nil {
		_, _ = io.Copy(io.Discard, stdout)
	}
	waitErr := proc.Wait()

	result := Result{Stderr: stderr.String()}
	if waitErr != nil {
		var exitErr *exec.ExitError
		if !errors.As(waitErr, &exitErr) {
			return result, &LaunchError{Command: cmd.String(), Err: waitErr}
		}
		result.ExitCode = exitErr.ExitCode()
	}
	if scanErr != nil {
		return result, fmt.Errorf(messages.PrivilegeScanOutputFmt, cmd.String(), scanErr)
	}
	return result, nil
}

// argv builds the full argument list. When a password is expected, `-k` forces sudo
// to consume the password line even if a cached timestamp exists, so it never leaks
// into the package manager's stdin. Without one, `-n` makes the tool fail instead
// of prompting.
func (r SudoRunner) argv(cmd Command, elevate, withSecret bool) []string {
	if !elevate {
		return cmd.Argv()
	}
	argv := []string{r.tool(), "-n", "--"}
	if withSecret {
		argv = []string{r.tool(), "-k", "-S", "-p", "", "--"}
	}
	if len(cmd.Env) > 0 {
		argv = append(argv, "env")
		argv = append(argv, cmd.Env...)
	}
	return append(argv, cmd.Argv()...)
}

// passwordless reports whether the tool runs commands without asking for a
// password, as with a sudoers NOPASSWD rule. `-k` ignores cached credentials so
// a recent sudo elsewhere does not count. The check reads nothing from stdin.
func (r SudoRunner) passwordless() bool {
	check := execCmd(r.tool(), "-n", "-k", "true")
	check.Env = environ()
	return check.Run() == nil
}

func (r SudoRunner) tool() string {
	if r.Tool == "" {
		return DefaultTool
	}
	return r.Tool
}

// scanLines forwards each line of r to onLine. Lines longer than maxLineBytes are
// cut and marked, so long output never fails a command that ran.
func scanLines(r io.Reader, onLine LineFunc) error {
	br := bufio.NewReaderSize(r, 64*1024)
	var line []byte
	truncated := false
	for {
		chunk, isPrefix, err := br.ReadLine()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return err
		}
		if room := maxLineBytes - len(line); len(chunk) > room {
			chunk = chunk[:room]
			truncated = true
		}
		line = append(line, chunk...)
		if isPrefix {
			continue
		}
		if onLine != nil {
			text := strings.TrimSuffix(string(line), "\r")
			if truncated {
				text += messages.PrivilegeLineTruncated
			}
			onLine(text)
		}
		line = line[:0]
		truncated = false
	}
}

// Available reports whether the elevation tool can be found on PATH.
func (r SudoRunner) Available() error {
	_, err := lookPath(r.tool())
	return err
}

// DryRunner reports the commands it would run and succeeds without executing anything.
type DryRunner struct {
	Tool string
}

// Run emits a single line describing the command.
func (r DryRunner) Run(ctx context.Context, cmd Command, _ string, onLine LineFunc) (Result, error) {
	if strings.TrimSpace(cmd.Name) == "" {
		return Result{}, errors.New(messages.PrivilegeCommandRequired)
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}
	elevate := NeedsSecret()
	argv := SudoRunner{Tool: r.Tool}.argv(cmd, elevate, elevate)
	if onLine != nil {
		onLine(fmt.Sprintf(messages.PrivilegeDryRunFmt, strings.Join(quoteEmpty(argv), " ")))
	}
	return Result{}, nil
}

func quoteEmpty(argv []string) []string {
	out := make([]string, len(argv))
	for i, arg := range argv {
		if arg == "" {
			arg = "''"
		}
		out[i] = arg
	}
	return out
}
