package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/conn-castle/launch/internal/installer"
	"github.com/conn-castle/launch/internal/lock"
	"github.com/conn-castle/launch/internal/messages"
	"github.com/conn-castle/launch/internal/privilege"
	"github.com/conn-castle/launch/internal/secret"
	"github.com/conn-castle/launch/internal/theme"
	"github.com/conn-castle/launch/internal/wizard"
)

var (
	newRunnerFunc = func(tool string, dryRun bool) privilege.Runner {
		if dryRun {
			return privilege.DryRunner{Tool: tool}
		}
		return privilege.SudoRunner{Tool: tool}
	}
	confirmFunc = func(p theme.Palette, title string, value *bool) error {
		return wizard.NewHuhUI(p).Confirm(title, value)
	}
	promptSecretFunc = func(p theme.Palette, title string, value *string) error {
		return wizard.NewHuhUI(p).SecretInput(title, value)
	}
	lookupEnv = os.LookupEnv
)

type installFlags struct {
	passwordStdin bool
	dryRun        bool
	yes           bool
}

func newInstallCmd(global *globalFlags) *cobra.Command {
	flags := &installFlags{}
	cmd := &cobra.Command{
		Use:   messages.InstallUse,
		Short: messages.InstallShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInstall(cmd, global, flags)
		},
	}
	cmd.Flags().BoolVar(&flags.passwordStdin, "password-stdin", false, messages.InstallFlagPasswordStdin)
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, messages.InstallFlagDryRun)
	cmd.Flags().BoolVarP(&flags.yes, "yes", "y", false, messages.InstallFlagYes)
	return cmd
}

func runInstall(cmd *cobra.Command, global *globalFlags, flags *installFlags) error {
	s, err := openSession(global, false)
	if err != nil {
		return err
	}
	defer s.close()

	deps, err := s.cfg.DependencyList()
	if err != nil {
		return err
	}
	orch, err := newOrchestrator(s, flags.dryRun)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	printPlan(out, deps)
	if !flags.yes && !flags.dryRun && isInteractive() {
		ok := true
		err := confirmFunc(s.palette(), fmt.Sprintf(messages.InstallConfirmPromptFmt, strings.Join(deps.Names(), ", ")), &ok)
		if err != nil && !wizard.Aborted(err) {
			return err
		}
		if err != nil || !ok {
			_, _ = fmt.Fprintln(out, messages.InstallAborted)
			return nil
		}
	}

	var cred secret.Credential
	if !flags.dryRun && needsSecret() {
		cred, err = installCredential(cmd, s, flags.passwordStdin)
		if wizard.Aborted(err) {
			_, _ = fmt.Fprintln(out, messages.InstallAborted)
			return nil
		}
		if err != nil {
			return err
		}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	started := false
	err = lock.With(s.paths.LockPath, func() error {
		started = true
		_, runErr := orch.Run(ctx, cred, deps, newReporter(out, global.quiet))
		return runErr
	})
	if err == nil {
		return nil
	}
	if !started {
		return err
	}
	// The reporter has already printed the failure.
	if code, ok := installer.ExitCode(err); ok && code > 0 {
		return &SilentExitError{Code: code}
	}
	return &SilentExitError{Code: 1}
}

// newOrchestrator builds an orchestrator from the session's config.
func newOrchestrator(s *session, dryRun bool) (*installer.Orchestrator, error) {
	refresh, err := s.cfg.RefreshCommand()
	if err != nil {
		return nil, err
	}
	install, err := s.cfg.InstallCommand()
	if err != nil {
		return nil, err
	}
	return installer.New(installer.Options{
		Runner:  newRunnerFunc(s.cfg.PrivilegeTool(), dryRun),
		Refresh: refresh,
		Install: install,
		Logger:  s.logger,
	})
}

// installCredential obtains the elevation password. --password-stdin reads only
// stdin; otherwise the environment is tried, then a masked prompt when a terminal
// is attached.
func installCredential(cmd *cobra.Command, s *session, fromStdin bool) (secret.Credential, error) {
	if fromStdin {
		return secret.ReaderProvider{Reader: cmd.InOrStdin()}.Credential(cmd.Context())
	}
	chain := secret.Chain{secret.EnvProvider{LookupEnv: lookupEnv}}
	if isInteractive() {
		chain = append(chain, secret.PromptProvider{
			Title: messages.InstallPasswordPrompt,
			Prompt: func(title string, value *string) error {
				return promptSecretFunc(s.palette(), title, value)
			},
		})
	}
	cred, err := chain.Credential(cmd.Context())
	if errors.Is(err, secret.ErrNoCredential) {
		return secret.Credential{}, errors.New(messages.InstallNeedsPassword)
	}
	return cred, err
}

func printPlan(out io.Writer, deps installer.DependencyList) {
	_, _ = fmt.Fprintln(out, messages.InstallPlanHeader)
	for i, name := range deps.Names() {
		_, _ = fmt.Fprintf(out, messages.InstallPlanItemFmt, i+1, name)
	}
}

// installStarter holds the run lock for the duration of each wizard-started run.
type installStarter struct {
	orch *installer.Orchestrator
	lock string
}

func (s installStarter) Start(ctx context.Context, cred secret.Credential, deps installer.DependencyList) <-chan installer.Event {
	held, err := lock.Acquire(s.lock)
	if err != nil {
		events := make(chan installer.Event, 1)
		events <- installer.Failed(err)
		close(events)
		return events
	}
	inner := s.orch.Start(ctx, cred, deps)
	events := make(chan installer.Event)
	go func() {
		defer close(events)
		defer func() { _ = held.Release() }()
		for ev := range inner {
			events <- ev
		}
	}()
	return events
}
