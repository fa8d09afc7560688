package wizard

import (
	"errors"
	"os"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"github.com/conn-castle/launch/internal/installer"
	"github.com/conn-castle/launch/internal/messages"
	"github.com/conn-castle/launch/internal/terminal"
	"github.com/conn-castle/launch/internal/theme"
)

// UI defines the interaction methods.
type UI interface {
	Select(title string, options []string, current *string) error
	MultiSelect(title string, options []string, selected *[]string) error
	Confirm(title string, value *bool) error
	Input(title string, value *string) error
	SecretInput(title string, value *string) error
	Note(title string, body string) error
	// Progress shows the installation until a terminal event arrives and the
	// user dismisses the screen. cancel is called when the user asks to stop.
	Progress(title string, events <-chan installer.Event, cancel func()) (installer.Event, error)
}

// HuhUI implements UI using charmbracelet/huh and a Bubble Tea progress screen.
type HuhUI struct {
	isTerminal func() bool
	palette    theme.Palette
	ctrlCAbort bool // set by key filter during form.Run(); reset before each form
}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

var runProgramFunc = func(p *tea.Program) (tea.Model, error) { return p.Run() }

// NewHuhUI creates a HuhUI styled with palette.
// The default implementation uses terminal.IsInteractive().
func NewHuhUI(palette theme.Palette) *HuhUI {
	return &HuhUI{isTerminal: terminal.IsInteractive, palette: palette}
}

// ensureInteractive returns an error when the UI is invoked without a terminal.
func (ui *HuhUI) ensureInteractive() error {
	checker := ui.isTerminal
	if checker == nil {
		checker = terminal.IsInteractive
	}
	if checker() {
		return nil
	}
	return errors.New(messages.WizardRequiresTerminal)
}

// wizardKeyMap returns a custom keymap for wizard forms.
// Esc triggers form abort (mapped to back navigation) and Ctrl+C triggers
// form abort (mapped to hard exit). The field-level Prev and Next bindings
// are repurposed as display-only hints.
func wizardKeyMap() *huh.KeyMap {
	km := huh.NewDefaultKeyMap()

	// Both Esc and Ctrl+C trigger form abort; runForm distinguishes them via ctrlCAbort flag.
	km.Quit = key.NewBinding(key.WithKeys("ctrl+c", "esc"))

	escBack := key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back"))
	km.MultiSelect.Prev = escBack
	km.Select.Prev = escBack
	km.Confirm.Prev = escBack
	km.Input.Prev = escBack
	km.Note.Prev = escBack

	ctrlCExit := key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "exit"))
	km.MultiSelect.Next = ctrlCExit
	km.Select.Next = ctrlCExit
	km.Confirm.Next = ctrlCExit
	km.Input.Next = ctrlCExit
	km.Note.Next = ctrlCExit

	// Filter mode would swallow Esc before the form sees it.
	km.Select.Filter.SetEnabled(false)
	km.Select.SetFilter.SetEnabled(false)
	km.Select.ClearFilter.SetEnabled(false)

	return km
}

// formTheme maps a palette onto huh's base theme.
func formTheme(p theme.Palette) *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Base = t.Focused.Base.BorderForeground(p.Border)
	t.Focused.Card = t.Focused.Base
	t.Focused.Title = t.Focused.Title.Foreground(p.Accent)
	t.Focused.NoteTitle = t.Focused.NoteTitle.Foreground(p.Accent)
	t.Focused.Description = t.Focused.Description.Foreground(p.Muted)
	t.Focused.ErrorIndicator = t.Focused.ErrorIndicator.Foreground(p.Error)
	t.Focused.ErrorMessage = t.Focused.ErrorMessage.Foreground(p.Error)
	t.Focused.SelectSelector = t.Focused.SelectSelector.Foreground(p.Highlight)
	t.Focused.MultiSelectSelector = t.Focused.MultiSelectSelector.Foreground(p.Highlight)
	t.Focused.Option = t.Focused.Option.Foreground(p.Text)
	t.Focused.SelectedOption = t.Focused.SelectedOption.Foreground(p.Success)
	t.Focused.SelectedPrefix = t.Focused.SelectedPrefix.Foreground(p.Success)
	t.Focused.UnselectedPrefix = t.Focused.UnselectedPrefix.Foreground(p.Text)
	t.Focused.UnselectedOption = t.Focused.UnselectedOption.Foreground(p.Text)
	t.Focused.FocusedButton = t.Focused.FocusedButton.Foreground(p.Background).Background(p.Accent)
	t.Focused.BlurredButton = t.Focused.BlurredButton.Foreground(p.Text).Background(p.Background)
	t.Focused.TextInput.Prompt = t.Focused.TextInput.Prompt.Foreground(p.Highlight)
	t.Focused.TextInput.Placeholder = t.Focused.TextInput.Placeholder.Foreground(p.Subtle)

	t.Blurred = t.Focused
	t.Blurred.Base = t.Blurred.Base.BorderStyle(lipgloss.HiddenBorder())
	t.Blurred.Card = t.Blurred.Base

	t.Help.ShortKey = t.Help.ShortKey.Foreground(p.Muted)
	t.Help.ShortDesc = t.Help.ShortDesc.Foreground(p.Subtle)
	t.Help.ShortSeparator = t.Help.ShortSeparator.Foreground(p.Muted)

	t.Group.Title = t.Focused.Title
	t.Group.Description = t.Focused.Description
	return t
}

// hintField wraps a huh.Field so that the Prev ("esc"/"back") and Next
// ("ctrl+c"/"exit") hint bindings remain visible in the help bar.
//
// huh calls WithPosition on each field, which disables Prev for the first field
// and Next for the last field. Every wizard form has a single field, so both
// would always be hidden; the wrapper re-applies the wizard keymap.
type hintField struct {
	huh.Field
	km *huh.KeyMap
}

// Update delegates to the inner field and re-wraps so the wrapper stays in
// the group's field list.
func (f *hintField) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := f.Field.Update(msg)
	if field, ok := model.(huh.Field); ok {
		f.Field = field
	}
	return f, cmd
}

// WithPosition lets huh set positional state, then restores the hint bindings.
func (f *hintField) WithPosition(p huh.FieldPosition) huh.Field {
	f.Field.WithPosition(p)
	f.WithKeyMap(f.km)
	return f
}

// formFilter returns a tea.WithFilter callback that records Ctrl+C key presses
// and converts InterruptMsg to QuitMsg so the renderer clears the form.
//
// Keyboard Ctrl+C arrives as a KeyMsg before huh's InterruptMsg, so the flag is
// already set when the abort completes. Esc leaves it unset and maps to back.
func (ui *HuhUI) formFilter() func(tea.Model, tea.Msg) tea.Msg {
	return func(_ tea.Model, msg tea.Msg) tea.Msg {
		if keyMsg, ok := msg.(tea.KeyMsg); ok && keyMsg.Type == tea.KeyCtrlC {
			ui.ctrlCAbort = true
		}
		if _, ok := msg.(tea.InterruptMsg); ok {
			return tea.QuitMsg{}
		}
		return msg
	}
}

// runForm validates terminal availability and runs the provided form.
// Esc returns errWizardBack (back navigation); Ctrl+C returns errWizardCancelled (hard exit).
func (ui *HuhUI) runForm(form *huh.Form) error {
	if err := ui.ensureInteractive(); err != nil {
		return err
	}

	ui.ctrlCAbort = false
	form.WithKeyMap(wizardKeyMap())
	form.WithTheme(formTheme(ui.palette))
	form.WithProgramOptions(
		tea.WithOutput(os.Stderr),
		tea.WithReportFocus(),
		tea.WithFilter(ui.formFilter()),
	)

	err := runFormFunc(form)
	if errors.Is(err, huh.ErrUserAborted) {
		if ui.ctrlCAbort {
			return errWizardCancelled
		}
		return errWizardBack
	}
	return err
}

func newHintField(field huh.Field) huh.Field {
	return &hintField{Field: field, km: wizardKeyMap()}
}

// Select renders a single-choice prompt.
func (ui *HuhUI) Select(title string, options []string, current *string) error {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}

	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewSelect[string]().
				Title(title).
				Options(opts...).
				Value(current)),
		),
	))
}

// MultiSelect renders a multi-choice prompt.
func (ui *HuhUI) MultiSelect(title string, options []string, selected *[]string) error {
	opts := make([]huh.Option[string], len(options))
	for i, o := range options {
		opts[i] = huh.NewOption(o, o)
	}

	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewMultiSelect[string]().
				Title(title).
				Filterable(false).
				Options(opts...).
				Value(selected)),
		),
	))
}

// Confirm renders a yes/no prompt.
func (ui *HuhUI) Confirm(title string, value *bool) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewConfirm().
				Title(title).
				Value(value)),
		),
	))
}

// Input renders a plain text input prompt.
func (ui *HuhUI) Input(title string, value *string) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewInput().
				Title(title).
				Value(value)),
		),
	))
}

// SecretInput renders a masked input prompt for secrets.
func (ui *HuhUI) SecretInput(title string, value *string) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewInput().
				Title(title).
				Value(value).
				EchoMode(huh.EchoModePassword)),
		),
	))
}

// Note renders an informational note screen.
func (ui *HuhUI) Note(title string, body string) error {
	return ui.runForm(huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewNote().
				Title(title).
				Description(body)),
		),
	))
}

// Progress runs the installation progress screen.
func (ui *HuhUI) Progress(title string, events <-chan installer.Event, cancel func()) (installer.Event, error) {
	if err := ui.ensureInteractive(); err != nil {
		return installer.Event{}, err
	}
	model := newProgressModel(title, events, cancel, ui.palette)
	final, err := runProgramFunc(tea.NewProgram(model, tea.WithOutput(os.Stderr)))
	if err != nil {
		return installer.Event{}, err
	}
	m, ok := final.(progressModel)
	if !ok || !m.done {
		return installer.Event{}, errors.New(messages.WizardProgressUnexpected)
	}
	return m.final, nil
}
