// Package installer refreshes the package index and installs a fixed list of
// dependencies through a privileged runner, reporting progress as typed events.
package installer

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/conn-castle/launch/internal/messages"
	"github.com/conn-castle/launch/internal/privilege"
	"github.com/conn-castle/launch/internal/secret"
)

var (
	newRunID = uuid.NewString
	now      = time.Now
)

// Options configures an Orchestrator.
type Options struct {
	// Runner executes the privileged commands.
	Runner privilege.Runner
	// Refresh updates the package index, e.g. `apt-get update`.
	Refresh privilege.Command
	// Install installs one package; the package name is appended to its arguments.
	Install privilege.Command
	// Logger receives diagnostic records. Nil disables logging.
	Logger *zap.Logger
}

// Orchestrator runs the refresh-then-install sequence.
// A single Orchestrator may be reused for any number of sequential runs.
type Orchestrator struct {
	runner  privilege.Runner
	refresh privilege.Command
	install privilege.Command
	logger  *zap.Logger
}

// Result summarizes a finished run.
type Result struct {
	RunID string
	// State is Done or Failed.
	State State
	// Installed lists the dependencies that succeeded, in order.
	Installed []string
	Duration  time.Duration
}

// New validates opts and returns an Orchestrator.
func New(opts Options) (*Orchestrator, error) {
	if opts.Runner == nil {
		return nil, errors.New(messages.InstallerRunnerRequired)
	}
	if strings.TrimSpace(opts.Refresh.Name) == "" {
		return nil, errors.New(messages.InstallerRefreshRequired)
	}
	if strings.TrimSpace(opts.Install.Name) == "" {
		return nil, errors.New(messages.InstallerInstallRequired)
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		runner:  opts.Runner,
		refresh: opts.Refresh,
		install: opts.Install,
		logger:  logger,
	}, nil
}

// run holds the per-call state of one orchestration.
type run struct {
	*Orchestrator
	ctx    context.Context
	secret string
	sink   Sink
	log    *zap.Logger
	state  State
}

// Run refreshes the package index and installs deps in order, emitting events to sink.
// It stops at the first failure and emits exactly one terminal event: Completed on
// success, Failed otherwise. ctx is checked before the refresh and before each
// install; a command that has started always runs to completion.
// The credential is only passed to the runner and is masked in any emitted text.
func (o *Orchestrator) Run(ctx context.Context, cred secret.Credential, deps DependencyList, sink Sink) (Result, error) {
	if sink == nil {
		sink = discardSink{}
	}
	runID := newRunID()
	r := &run{
		Orchestrator: o,
		ctx:          ctx,
		secret:       cred.Reveal(),
		sink:         sink,
		log:          o.logger.With(zap.String("run_id", runID)),
		state:        State{Phase: PhaseIdle},
	}
	started := now()
	result := Result{RunID: runID, Installed: make([]string, 0, deps.Len())}
	r.log.Info("install run started", zap.Strings("dependencies", deps.Names()))

	err := r.execute(deps, &result)
	result.Duration = now().Sub(started)
	if err != nil {
		r.state = State{Phase: PhaseFailed}
		result.State = r.state
		r.log.Error("install run failed", zap.Error(err), zap.Duration("duration", result.Duration))
		r.sink.Emit(Failed(err))
		return result, err
	}
	r.state = State{Phase: PhaseDone}
	result.State = r.state
	r.log.Info("install run completed", zap.Int("installed", len(result.Installed)), zap.Duration("duration", result.Duration))
	r.sink.Emit(StatusChanged(messages.InstallerStatusCompleted))
	r.sink.Emit(Completed())
	return result, nil
}

func (r *run) execute(deps DependencyList, result *Result) error {
	if deps.Len() == 0 {
		return ErrNoDependencies
	}
	r.sink.Emit(ProgressChanged(StartPercent))

	if err := r.checkCancelled(); err != nil {
		return err
	}
	r.state = State{Phase: PhaseRefreshing}
	r.sink.Emit(StatusChanged(messages.InstallerStatusRefreshing))
	res, err := r.step("refresh", r.refresh)
	if err != nil {
		return err
	}
	if res.ExitCode != 0 {
		return &RefreshFailedError{ExitCode: res.ExitCode, Stderr: r.redact(res.Stderr)}
	}
	r.sink.Emit(ProgressChanged(RefreshPercent))

	n := deps.Len()
	for i := 0; i < n; i++ {
		if err := r.checkCancelled(); err != nil {
			return err
		}
		pkg := deps.At(i)
		r.state = State{Phase: PhaseInstalling, Index: i}
		r.sink.Emit(StatusChanged(r.redact(fmt.Sprintf(messages.InstallerStatusInstallFmt, pkg))))
		res, err := r.step("install", r.install.With(pkg))
		if err != nil {
			return err
		}
		if res.ExitCode != 0 {
			return &InstallFailedError{Package: pkg, ExitCode: res.ExitCode, Stderr: r.redact(res.Stderr)}
		}
		result.Installed = append(result.Installed, pkg)
		r.sink.Emit(ProgressChanged(Percent(i+1, n)))
	}
	return nil
}

// step runs one command, forwarding each stdout line as a DetailLine.
func (r *run) step(name string, cmd privilege.Command) (privilege.Result, error) {
	log := r.log.With(zap.String("step", name), zap.String("command", cmd.String()))
	log.Debug("step started", zap.Stringer("state", r.state))
	started := now()
	lines := 0
	res, err := r.runner.Run(r.ctx, cmd, r.secret, func(line string) {
		lines++
		r.sink.Emit(DetailLine(r.redact(line)))
	})
	elapsed := now().Sub(started)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return res, ErrCancelled
		}
		log.Error("step could not run", zap.Error(err), zap.Int("lines", lines), zap.Duration("duration", elapsed))
		return res, &LaunchFailedError{Cause: redactError{err: err, text: r.redact(err.Error())}}
	}
	log.Info("step finished", zap.Int("exit_code", res.ExitCode), zap.Int("lines", lines), zap.Duration("duration", elapsed))
	return res, nil
}

func (r *run) checkCancelled() error {
	if r.ctx.Err() != nil {
		r.log.Info("install run cancelled", zap.Stringer("state", r.state))
		return ErrCancelled
	}
	return nil
}

func (r *run) redact(text string) string {
	if r.secret == "" {
		return text
	}
	return strings.ReplaceAll(text, r.secret, messages.InstallerRedactedSecret)
}

// redactError keeps the original error chain while replacing its message.
type redactError struct {
	err  error
	text string
}

func (e redactError) Error() string { return e.text }

func (e redactError) Unwrap() error { return e.err }

// Start runs the orchestration on its own goroutine and returns the event stream.
// The channel is closed after the terminal event.
func (o *Orchestrator) Start(ctx context.Context, cred secret.Credential, deps DependencyList) <-chan Event {
	events := make(chan Event, 64)
	go func() {
		defer close(events)
		_, _ = o.Run(ctx, cred, deps, ChannelSink(events))
	}()
	return events
}
