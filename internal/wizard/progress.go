package wizard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/conn-castle/launch/internal/installer"
	"github.com/conn-castle/launch/internal/messages"
	"github.com/conn-castle/launch/internal/theme"
)

const (
	defaultBarWidth    = 60
	defaultLogWidth    = 76
	defaultLogHeight   = 10
	minLogHeight       = 3
	progressChromeRows = 9

	// maxLogLines bounds the scrollback kept for the log viewport.
	maxLogLines = 500
)

// eventMsg delivers one installer event, or ok=false once the channel closes.
type eventMsg struct {
	event installer.Event
	ok    bool
}

func waitForEvent(events <-chan installer.Event) tea.Cmd {
	return func() tea.Msg {
		ev, ok := <-events
		return eventMsg{event: ev, ok: ok}
	}
}

type progressKeyMap struct {
	Cancel key.Binding
	Scroll key.Binding
	Close  key.Binding
}

func newProgressKeyMap() progressKeyMap {
	km := progressKeyMap{
		Cancel: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "cancel")),
		Scroll: key.NewBinding(key.WithKeys("up", "down", "pgup", "pgdown"), key.WithHelp("↑/↓", "scroll")),
		Close:  key.NewBinding(key.WithKeys("enter", "q", "ctrl+c"), key.WithHelp("enter", "continue")),
	}
	km.Close.SetEnabled(false)
	return km
}

func (k progressKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Cancel, k.Scroll, k.Close}
}

func (k progressKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// progressModel renders installer events as a status line, a progress bar and
// a scrolling log of subprocess output.
type progressModel struct {
	title  string
	events <-chan installer.Event
	cancel func()
	styles theme.Styles

	bar     progress.Model
	spinner spinner.Model
	log     viewport.Model
	help    help.Model
	keys    progressKeyMap

	status     string
	percent    int
	lines      []string
	cancelling bool
	done       bool
	final      installer.Event
}

func newProgressModel(title string, events <-chan installer.Event, cancel func(), palette theme.Palette) progressModel {
	styles := palette.Styles()
	from, to := palette.ProgressGradient()

	h := help.New()
	h.Styles.ShortKey = styles.Muted
	h.Styles.ShortDesc = styles.Help
	h.Styles.ShortSeparator = styles.Help

	if cancel == nil {
		cancel = func() {}
	}
	return progressModel{
		title:   title,
		events:  events,
		cancel:  cancel,
		styles:  styles,
		bar:     progress.New(progress.WithGradient(from, to), progress.WithWidth(defaultBarWidth)),
		spinner: spinner.New(spinner.WithSpinner(spinner.Dot), spinner.WithStyle(styles.Selected)),
		log:     viewport.New(defaultLogWidth, defaultLogHeight),
		help:    h,
		keys:    newProgressKeyMap(),
	}
}

func (m progressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, waitForEvent(m.events))
}

func (m progressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case eventMsg:
		return m.handleEvent(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.bar.Width = min(defaultBarWidth, max(msg.Width-4, 10))
		m.log.Width = max(msg.Width-4, 10)
		m.log.Height = max(msg.Height-progressChromeRows, minLogHeight)
		m.log.GotoBottom()
		return m, nil
	case spinner.TickMsg:
		if m.done {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) handleEvent(msg eventMsg) (tea.Model, tea.Cmd) {
	if !msg.ok {
		if !m.done {
			m.finish(installer.Failed(errors.New(messages.WizardProgressUnexpected)))
		}
		return m, nil
	}

	ev := msg.event
	switch ev.Kind {
	case installer.EventStatus:
		m.status = ev.Text
	case installer.EventProgress:
		m.percent = ev.Percent
	case installer.EventDetail:
		m.lines = append(m.lines, ev.Text)
		if len(m.lines) > maxLogLines {
			m.lines = m.lines[len(m.lines)-maxLogLines:]
		}
		m.log.SetContent(strings.Join(m.lines, "\n"))
		m.log.GotoBottom()
	case installer.EventCompleted, installer.EventFailed:
		m.finish(ev)
		return m, nil
	}
	return m, waitForEvent(m.events)
}

func (m *progressModel) finish(ev installer.Event) {
	m.done = true
	m.final = ev
	if ev.Kind == installer.EventCompleted {
		m.percent = installer.DonePercent
	}
	m.keys.Cancel.SetEnabled(false)
	m.keys.Close.SetEnabled(true)
}

func (m progressModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.done && key.Matches(msg, m.keys.Close):
		return m, tea.Quit
	case !m.done && key.Matches(msg, m.keys.Cancel):
		if !m.cancelling {
			m.cancelling = true
			m.cancel()
		}
		return m, nil
	case key.Matches(msg, m.keys.Scroll):
		var cmd tea.Cmd
		m.log, cmd = m.log.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m progressModel) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.title))
	b.WriteString("\n\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n\n")
	b.WriteString(m.bar.ViewAs(float64(m.percent) / 100))
	b.WriteString("\n\n")

	body := m.styles.Muted.Render(messages.WizardProgressNoOutput)
	if len(m.lines) > 0 {
		body = m.log.View()
	}
	b.WriteString(m.styles.Panel.Render(body))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m progressModel) statusLine() string {
	switch {
	case m.done && m.final.Kind == installer.EventCompleted:
		return m.styles.Success.Render(messages.WizardProgressDone + " " + m.status)
	case m.done:
		return m.styles.Error.Render(fmt.Sprintf(messages.WizardProgressFailedFmt, m.final.Text))
	case m.cancelling:
		return m.spinner.View() + " " + m.styles.Muted.Render(messages.WizardProgressCancelling)
	default:
		return m.spinner.View() + " " + m.styles.Text.Render(m.status)
	}
}
