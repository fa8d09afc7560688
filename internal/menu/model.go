package menu

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/conn-castle/launch/internal/messages"
	"github.com/conn-castle/launch/internal/terminal"
	"github.com/conn-castle/launch/internal/theme"
)

var (
	runProgramFunc = func(p *tea.Program) (tea.Model, error) { return p.Run() }
	isInteractive  = terminal.IsInteractive
)

type screen int

const (
	screenMain screen = iota
	screenNotice
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Main   key.Binding
	Quit   key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		Up:     key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:   key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Select: key.NewBinding(key.WithKeys("enter", " "), key.WithHelp("enter", "select")),
		Main:   key.NewBinding(key.WithKeys("m", "M", "esc"), key.WithHelp("m", "main menu")),
		Quit:   key.NewBinding(key.WithKeys("q", "Q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Select, k.Main, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// Model is the main menu as a Bubble Tea model.
type Model struct {
	entries []Entry
	cursor  int
	screen  screen
	width   int

	palette theme.Palette
	styles  theme.Styles
	keys    keyMap
	help    help.Model

	chosen EntryID
	done   bool
}

// New returns a menu with the cursor on the first entry.
func New(palette theme.Palette) Model {
	styles := palette.Styles()
	h := help.New()
	h.Styles.ShortKey = styles.Muted
	h.Styles.ShortDesc = styles.Help
	h.Styles.ShortSeparator = styles.Help
	return Model{
		entries: Entries(),
		palette: palette,
		styles:  styles,
		keys:    newKeyMap(),
		help:    h,
		chosen:  EntryExit,
	}
}

// Chosen returns the entry that ended the menu. Quitting yields EntryExit.
func (m Model) Chosen() EntryID {
	return m.chosen
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m.finish(EntryExit)
	case key.Matches(msg, m.keys.Main):
		m.screen = screenMain
		return m, nil
	}

	if m.screen == screenNotice {
		if key.Matches(msg, m.keys.Select) {
			m.screen = screenMain
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case key.Matches(msg, m.keys.Select):
		entry := m.entries[m.cursor]
		if entry.Available {
			return m.finish(entry.ID)
		}
		m.screen = screenNotice
	}
	return m, nil
}

func (m Model) finish(id EntryID) (tea.Model, tea.Cmd) {
	m.chosen = id
	m.done = true
	return m, tea.Quit
}

func (m Model) View() string {
	if m.done {
		return ""
	}
	var b strings.Builder
	for _, line := range m.palette.Gradient(Logo) {
		b.WriteString(m.center(line))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if m.screen == screenNotice {
		b.WriteString(m.noticeView())
	} else {
		b.WriteString(m.listView())
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Muted.Render(messages.MenuFooter))
	b.WriteString("\n")
	b.WriteString(m.help.View(m.keys))
	b.WriteString("\n")
	return b.String()
}

func (m Model) listView() string {
	var b strings.Builder
	for i, entry := range m.entries {
		if i == m.cursor {
			b.WriteString(m.styles.Selected.Render("  > " + entry.Label))
		} else {
			b.WriteString(m.styles.Unselected.Render("    " + entry.Label))
		}
		b.WriteString("\n")
	}
	return b.String()
}

func (m Model) noticeView() string {
	entry := m.entries[m.cursor]
	text := fmt.Sprintf(messages.MenuNotAvailableFmt, entry.Label)
	return lipgloss.NewStyle().PaddingLeft(2).Render(
		m.styles.Text.Render(text)+"\n\n"+m.styles.Selected.Render("> "+messages.MenuBackToMain),
	) + "\n"
}

func (m Model) center(line string) string {
	if m.width <= 0 {
		return line
	}
	return lipgloss.PlaceHorizontal(m.width, lipgloss.Center, line)
}

// Run shows the menu on out until the user picks an entry that leaves it.
func Run(palette theme.Palette, out io.Writer) (EntryID, error) {
	if !isInteractive() {
		return EntryExit, errors.New(messages.MenuRequiresTerminal)
	}
	final, err := runProgramFunc(tea.NewProgram(New(palette), tea.WithAltScreen(), tea.WithOutput(out)))
	if err != nil {
		return EntryExit, err
	}
	m, ok := final.(Model)
	if !ok {
		return EntryExit, fmt.Errorf(messages.MenuUnexpectedModelFmt, final)
	}
	return m.Chosen(), nil
}
