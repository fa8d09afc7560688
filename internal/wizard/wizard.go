package wizard

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"slices"
	"strings"

	"github.com/aymanbagabas/go-udiff"
	"github.com/fatih/color"

	"github.com/conn-castle/launch/internal/config"
	"github.com/conn-castle/launch/internal/fsutil"
	"github.com/conn-castle/launch/internal/installer"
	"github.com/conn-castle/launch/internal/messages"
	"github.com/conn-castle/launch/internal/secret"
	"github.com/conn-castle/launch/internal/templates"
	"github.com/conn-castle/launch/internal/theme"
)

var (
	loadConfigFunc        = config.Load
	loadConfigLenientFunc = config.LoadConfigLenient
	writeConfigFunc       = fsutil.WriteFileAtomic
	errWizardBack         = errors.New("wizard back requested")
	errWizardCancelled    = errors.New("wizard cancelled")
)

// Aborted reports whether err came from the user leaving a prompt with Esc or Ctrl+C.
func Aborted(err error) bool {
	return errors.Is(err, errWizardBack) || errors.Is(err, errWizardCancelled)
}

// Starter starts an installation run and streams its events. The channel
// closes after the terminal event.
type Starter interface {
	Start(ctx context.Context, cred secret.Credential, deps installer.DependencyList) <-chan installer.Event
}

// Options configures a wizard run.
type Options struct {
	// ConfigPath is the config file offered for editing. It may not exist yet.
	ConfigPath string
	Installer  Starter
	// Credentials is tried before prompting. Nil means always prompt.
	Credentials secret.Provider
	// NeedsSecret is false when the process already runs as root.
	NeedsSecret bool
	Out         io.Writer
}

// Run drives the wizard until the user finishes or exits.
// Exiting early is not an error; a failed installation the user gives up on is.
func Run(ctx context.Context, ui UI, opts Options) error {
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}
	if opts.Installer == nil {
		return errors.New(messages.WizardNoInstaller)
	}

	cfg, err := loadWizardConfig(opts.ConfigPath, out)
	if err != nil {
		return err
	}
	deps, err := cfg.DependencyList()
	if err != nil {
		return fmt.Errorf(messages.WizardLoadConfigFailedFmt, err)
	}

	w := &wizard{ui: ui, opts: opts, out: out, cfg: cfg, deps: deps, choices: NewChoices(cfg)}
	session := NewSession()
	for session.Step != StepExit {
		action, err := w.runStep(ctx, session)
		if err != nil {
			if errors.Is(err, errWizardCancelled) {
				action = Quit
			} else {
				return err
			}
		}
		next := Transition(session, action)
		if next.Step == StepExit && session.Step != StepFinish {
			w.printExit(next)
		}
		session = next
		if action.Kind == ActionInstallSucceeded || action.Kind == ActionConfigured {
			session = Transition(session, Next)
		}
	}
	return w.failure
}

// loadWizardConfig loads the config, falling back to lenient parsing when the
// file has validation errors so the wizard can repair it.
func loadWizardConfig(path string, out io.Writer) (*config.Config, error) {
	cfg, err := loadConfigFunc(path)
	if err == nil {
		return cfg, nil
	}
	if !errors.Is(err, config.ErrConfigValidation) {
		return nil, fmt.Errorf(messages.WizardLoadConfigFailedFmt, err)
	}
	lenient, lenientErr := loadConfigLenientFunc(path)
	if lenientErr != nil {
		return nil, fmt.Errorf(messages.WizardLoadConfigFailedFmt, lenientErr)
	}
	_, _ = fmt.Fprintf(out, messages.ConfigLenientLoadInfoFmt+"\n", "the wizard", err)
	if _, depErr := lenient.DependencyList(); depErr != nil {
		lenient.Install.Dependencies = append([]string(nil), installer.DefaultDependencyNames...)
	}
	return lenient, nil
}

type wizard struct {
	ui      UI
	opts    Options
	out     io.Writer
	cfg     *config.Config
	deps    installer.DependencyList
	choices *Choices
	// failure is returned by Run when the user gives up after a failed installation.
	failure error
}

func (w *wizard) runStep(ctx context.Context, s Session) (Action, error) {
	switch s.Step {
	case StepWelcome:
		return w.welcome()
	case StepInstall:
		return w.install(ctx, s)
	case StepConfigure:
		return w.configure()
	case StepFinish:
		return w.finish(s)
	default:
		return Action{}, fmt.Errorf(messages.WizardUnknownStepFmt, int(s.Step))
	}
}

func (w *wizard) welcome() (Action, error) {
	items := make([]string, 0, w.deps.Len())
	for _, name := range w.deps.Names() {
		items = append(items, fmt.Sprintf(messages.WizardWelcomeItemFmt, name))
	}
	body := fmt.Sprintf(messages.WizardWelcomeBodyFmt, strings.Join(items, "\n"))
	err := w.ui.Note(messages.WizardWelcomeTitle, body)
	if err == nil {
		return Next, nil
	}
	if !errors.Is(err, errWizardBack) {
		return Action{}, err
	}
	exit, confirmErr := confirmWizardExitOnFirstStepEscape(w.ui)
	if confirmErr != nil {
		return Action{}, confirmErr
	}
	if exit {
		return Quit, nil
	}
	return Back, nil
}

func confirmWizardExitOnFirstStepEscape(ui UI) (bool, error) {
	exit := true
	if err := ui.Confirm(messages.WizardFirstStepExitTitle, &exit); err != nil {
		if errors.Is(err, errWizardBack) {
			return false, nil
		}
		return false, err
	}
	return exit, nil
}

// install runs the installation once and reports the outcome. A failed run
// offers a retry; declining leaves the wizard with the failure.
func (w *wizard) install(ctx context.Context, s Session) (Action, error) {
	if s.Installed {
		if err := w.ui.Note(messages.WizardInstalledTitle, messages.WizardInstalledBody); err != nil {
			return backOr(err)
		}
		return Next, nil
	}

	if s.LastError != "" {
		retry := true
		prompt := fmt.Sprintf(messages.WizardInstallRetryFmt, s.LastError)
		if err := w.ui.Confirm(prompt, &retry); err != nil {
			return backOr(err)
		}
		if !retry {
			return Quit, nil
		}
	}

	cred, err := w.credential(ctx)
	if err != nil {
		return backOr(err)
	}

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	events := w.opts.Installer.Start(runCtx, cred, w.deps)
	final, err := w.ui.Progress(messages.WizardInstallTitle, events, cancel)
	if err != nil {
		cancel()
		go drain(events)
		return Action{}, err
	}

	if final.Kind == installer.EventCompleted {
		w.failure = nil
		return InstallSucceeded, nil
	}
	w.failure = fmt.Errorf(messages.WizardInstallFailedFmt, finalError(final))
	return InstallFailed(final.Text), nil
}

func (w *wizard) credential(ctx context.Context) (secret.Credential, error) {
	if !w.opts.NeedsSecret {
		return secret.Credential{}, nil
	}
	chain := secret.Chain{
		w.opts.Credentials,
		secret.PromptProvider{Title: messages.WizardPasswordTitle, Prompt: w.ui.SecretInput},
	}
	for {
		cred, err := chain.Credential(ctx)
		if errors.Is(err, secret.ErrEmptyCredential) {
			// An empty answer re-prompts; the environment source is not retried.
			chain = secret.Chain{chain[len(chain)-1]}
			continue
		}
		return cred, err
	}
}

func finalError(ev installer.Event) error {
	if ev.Err != nil {
		return ev.Err
	}
	return errors.New(ev.Text)
}

func drain(events <-chan installer.Event) {
	for range events {
	}
}

// backOr maps errWizardBack to a Back action and passes other errors through.
func backOr(err error) (Action, error) {
	if errors.Is(err, errWizardBack) {
		return Back, nil
	}
	return Action{}, err
}

type configureStep int

const (
	configureStepDependencies configureStep = iota
	configureStepExtras
	configureStepTheme
	configureStepApply
)

// configure walks the config prompts. Esc steps back one prompt and restores
// the choices made before it; Esc on the first prompt returns to the install page.
func (w *wizard) configure() (Action, error) {
	step := configureStepDependencies
	entered := make(map[configureStep]*Choices)
	for {
		entered[step] = w.choices.Clone()
		var (
			err     error
			written bool
		)

		switch step {
		case configureStepDependencies:
			err = w.promptDependencies()
		case configureStepExtras:
			err = w.promptExtras()
		case configureStepTheme:
			err = w.promptTheme()
		case configureStepApply:
			written, err = w.confirmAndApply()
		default:
			return Next, nil
		}

		var invalid invalidInputError
		switch {
		case err == nil && step == configureStepApply:
			if written {
				return Configured, nil
			}
			return Next, nil
		case err == nil:
			step++
		case errors.As(err, &invalid):
			w.choices = entered[step].Clone()
			if noteErr := w.ui.Note(messages.WizardInvalidInputTitle, invalid.Error()); noteErr != nil && !errors.Is(noteErr, errWizardBack) {
				return Action{}, noteErr
			}
		case errors.Is(err, errWizardBack):
			if step == configureStepDependencies {
				w.choices = entered[step].Clone()
				return Back, nil
			}
			step--
			w.choices = entered[step].Clone()
		default:
			return Action{}, err
		}
	}
}

// invalidInputError is shown to the user and the prompt repeats.
type invalidInputError struct {
	msg string
}

func (e invalidInputError) Error() string { return e.msg }

func (w *wizard) promptDependencies() error {
	selected := append([]string(nil), w.choices.Dependencies...)
	if err := w.ui.MultiSelect(messages.WizardDependenciesTitle, dependencyOptions(w.choices.Dependencies), &selected); err != nil {
		return err
	}
	if len(selected) == 0 {
		return invalidInputError{msg: messages.WizardNoDependencies}
	}
	w.choices.Dependencies = selected
	w.choices.DependenciesTouched = true
	return nil
}

func (w *wizard) promptExtras() error {
	var extra string
	if err := w.ui.Input(messages.WizardExtraPackages, &extra); err != nil {
		return err
	}
	merged := mergeDependencies(w.choices.Dependencies, strings.Fields(extra))
	if err := installer.ValidateDependencies(merged); err != nil {
		return invalidInputError{msg: fmt.Errorf(messages.WizardExtraPackagesFmt, err).Error()}
	}
	w.choices.Dependencies = merged
	return nil
}

func (w *wizard) promptTheme() error {
	current := w.choices.Theme
	names := theme.Names()
	if !slices.Contains(names, current) {
		current = theme.Default
	}
	if err := w.ui.Select(messages.WizardThemeTitle, names, &current); err != nil {
		return err
	}
	if !slices.Contains(names, current) {
		return fmt.Errorf(messages.WizardUnknownThemeFmt, current)
	}
	w.choices.Theme = current
	w.choices.ThemeTouched = true
	return nil
}

// confirmAndApply previews the rewrite and writes it after confirmation.
// Returns true when the file was written.
func (w *wizard) confirmAndApply() (bool, error) {
	current, next, err := w.proposedConfig()
	if err != nil {
		return false, err
	}
	preview := buildRewritePreview(w.opts.ConfigPath, current, next)
	if preview == "" {
		if err := w.ui.Note(messages.WizardPreviewTitle, messages.WizardNoChanges); err != nil {
			return false, err
		}
		return false, nil
	}
	if err := w.ui.Note(messages.WizardPreviewTitle, preview); err != nil {
		return false, err
	}
	apply := true
	if err := w.ui.Confirm(messages.WizardConfirmWrite, &apply); err != nil {
		return false, err
	}
	if !apply {
		return false, nil
	}
	if err := writeConfigFunc(w.opts.ConfigPath, []byte(next), 0o644); err != nil {
		return false, fmt.Errorf(messages.WizardWriteConfigFailedFmt, err)
	}
	_, _ = color.New(color.FgGreen).Fprintf(w.out, messages.WizardConfigWrittenFmt+"\n", w.opts.ConfigPath)
	return true, nil
}

// proposedConfig returns the current file content ("" when missing) and the
// patched content. A missing file is patched from the template.
func (w *wizard) proposedConfig() (string, string, error) {
	data, err := os.ReadFile(w.opts.ConfigPath)
	base := string(data)
	if errors.Is(err, fs.ErrNotExist) {
		tmpl, tmplErr := templates.Read("config.toml")
		if tmplErr != nil {
			return "", "", fmt.Errorf(messages.WizardReadTemplateFailedFmt, tmplErr)
		}
		data, base = nil, string(tmpl)
	} else if err != nil {
		return "", "", fmt.Errorf(messages.WizardLoadConfigFailedFmt, err)
	}
	next, err := PatchConfig(base, w.choices)
	if err != nil {
		return "", "", fmt.Errorf(messages.WizardPatchConfigFailedFmt, err)
	}
	return string(data), next, nil
}

// buildRewritePreview returns a unified diff, or "" when nothing changes.
func buildRewritePreview(path, current, next string) string {
	return strings.TrimSpace(udiff.Unified(
		path+" (current)",
		path+" (proposed)",
		current,
		next,
	))
}

func (w *wizard) finish(s Session) (Action, error) {
	body := messages.WizardFinishSkippedBody
	if s.Configured {
		body = messages.WizardFinishBody
	}
	if err := w.ui.Note(messages.WizardFinishTitle, body); err != nil {
		return backOr(err)
	}
	return Next, nil
}

func (w *wizard) printExit(s Session) {
	if s.Installed {
		_, _ = fmt.Fprintln(w.out, messages.WizardExitAfterInstall)
		return
	}
	_, _ = fmt.Fprintln(w.out, messages.WizardExitWithoutChanges)
}
