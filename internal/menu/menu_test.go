package menu

import (
	"bytes"
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/launch/internal/messages"
	"github.com/conn-castle/launch/internal/theme"
)

func press(t *testing.T, m Model, keys ...tea.KeyMsg) (Model, tea.Cmd) {
	t.Helper()
	var cmd tea.Cmd
	for _, k := range keys {
		next, c := m.Update(k)
		m = next.(Model)
		cmd = c
	}
	return m, cmd
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	down  = tea.KeyMsg{Type: tea.KeyDown}
	up    = tea.KeyMsg{Type: tea.KeyUp}
	enter = tea.KeyMsg{Type: tea.KeyEnter}
)

func isQuit(cmd tea.Cmd) bool {
	if cmd == nil {
		return false
	}
	_, ok := cmd().(tea.QuitMsg)
	return ok
}

func TestEntriesOrderAndAvailability(t *testing.T) {
	entries := Entries()
	require.Len(t, entries, 8)
	assert.Equal(t, EntryInstallDependencies, entries[0].ID)
	assert.Equal(t, EntryExit, entries[len(entries)-1].ID)

	var available []EntryID
	for _, e := range entries {
		if e.Available {
			available = append(available, e.ID)
		}
	}
	assert.Equal(t, []EntryID{EntryInstallDependencies, EntryExit}, available)
}

func TestEntryIDString(t *testing.T) {
	assert.Equal(t, messages.MenuOptimizer, EntryOptimizer.String())
	assert.Equal(t, "unknown", EntryID(99).String())
}

func TestCursorStaysInBounds(t *testing.T) {
	m := New(theme.Latte)
	m, _ = press(t, m, up, up)
	assert.Equal(t, 0, m.cursor)

	for range Entries() {
		m, _ = press(t, m, down)
	}
	m, _ = press(t, m, down, down)
	assert.Equal(t, len(Entries())-1, m.cursor)

	m, _ = press(t, m, runes("k"))
	assert.Equal(t, len(Entries())-2, m.cursor)
	m, _ = press(t, m, runes("j"))
	assert.Equal(t, len(Entries())-1, m.cursor)
}

func TestSelectInstallDependenciesQuits(t *testing.T) {
	m, cmd := press(t, New(theme.Latte), enter)
	assert.True(t, isQuit(cmd))
	assert.Equal(t, EntryInstallDependencies, m.Chosen())
	assert.Empty(t, m.View())
}

func TestPlaceholderEntryShowsNotice(t *testing.T) {
	m, cmd := press(t, New(theme.Latte), down, enter)
	assert.False(t, isQuit(cmd))
	assert.Equal(t, screenNotice, m.screen)

	view := m.View()
	assert.Contains(t, view, "You selected: "+messages.MenuInstallSoftware)
	assert.Contains(t, view, messages.MenuBackToMain)

	// Navigation keys are inert on the notice screen.
	m, _ = press(t, m, down)
	assert.Equal(t, 1, m.cursor)

	m, _ = press(t, m, enter)
	assert.Equal(t, screenMain, m.screen)
	assert.Contains(t, m.View(), "> "+messages.MenuInstallSoftware)
}

func TestMainKeyReturnsFromNotice(t *testing.T) {
	for _, k := range []tea.KeyMsg{runes("m"), runes("M"), {Type: tea.KeyEsc}} {
		m, _ := press(t, New(theme.Latte), down, down, enter)
		require.Equal(t, screenNotice, m.screen)
		m, _ = press(t, m, k)
		assert.Equal(t, screenMain, m.screen, k.String())
		assert.Equal(t, 2, m.cursor)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyMsg{runes("q"), runes("Q"), {Type: tea.KeyCtrlC}} {
		m, cmd := press(t, New(theme.Latte), down, k)
		assert.True(t, isQuit(cmd), k.String())
		assert.Equal(t, EntryExit, m.Chosen())
	}
}

func TestQuitFromNotice(t *testing.T) {
	m, cmd := press(t, New(theme.Latte), down, enter, runes("q"))
	assert.True(t, isQuit(cmd))
	assert.Equal(t, EntryExit, m.Chosen())
}

func TestSelectExitEntry(t *testing.T) {
	m := New(theme.Latte)
	for range Entries() {
		m, _ = press(t, m, down)
	}
	m, cmd := press(t, m, enter)
	assert.True(t, isQuit(cmd))
	assert.Equal(t, EntryExit, m.Chosen())
}

func TestViewShowsLogoEntriesAndFooter(t *testing.T) {
	view := New(theme.TokyoNightMoon).View()
	assert.Contains(t, view, Logo[0])
	assert.Contains(t, view, "> "+messages.MenuInstallDependencies)
	for _, e := range Entries() {
		assert.Contains(t, view, e.Label)
	}
	assert.Contains(t, view, messages.MenuFooter)
}

func TestViewCentersLogoWhenWidthKnown(t *testing.T) {
	next, _ := New(theme.Latte).Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	view := next.(Model).View()
	assert.Contains(t, view, "    "+Logo[0])
}

func TestRunRequiresTerminal(t *testing.T) {
	orig := isInteractive
	isInteractive = func() bool { return false }
	t.Cleanup(func() { isInteractive = orig })

	id, err := Run(theme.Latte, io.Discard)
	require.Error(t, err)
	assert.Equal(t, messages.MenuRequiresTerminal, err.Error())
	assert.Equal(t, EntryExit, id)
}

func TestRunReturnsChoice(t *testing.T) {
	origInteractive, origRun := isInteractive, runProgramFunc
	t.Cleanup(func() {
		isInteractive = origInteractive
		runProgramFunc = origRun
	})
	isInteractive = func() bool { return true }

	runProgramFunc = func(*tea.Program) (tea.Model, error) {
		m, _ := press(t, New(theme.Latte), enter)
		return m, nil
	}
	id, err := Run(theme.Latte, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, EntryInstallDependencies, id)

	runProgramFunc = func(*tea.Program) (tea.Model, error) { return nil, errors.New("tty gone") }
	_, err = Run(theme.Latte, io.Discard)
	assert.EqualError(t, err, "tty gone")

	runProgramFunc = func(*tea.Program) (tea.Model, error) { return unexpectedModel{}, nil }
	_, err = Run(theme.Latte, io.Discard)
	assert.ErrorContains(t, err, "unexpected model")
}

type unexpectedModel struct{}

func (unexpectedModel) Init() tea.Cmd                       { return nil }
func (unexpectedModel) Update(tea.Msg) (tea.Model, tea.Cmd) { return unexpectedModel{}, nil }
func (unexpectedModel) View() string                        { return "" }

func TestMenuProgram(t *testing.T) {
	tm := teatest.NewTestModel(t, New(theme.Latte), teatest.WithInitialTermSize(100, 30))

	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte(messages.MenuFooter))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(tea.KeyMsg{Type: tea.KeyDown})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})
	teatest.WaitFor(t, tm.Output(), func(b []byte) bool {
		return bytes.Contains(b, []byte(messages.MenuBackToMain))
	}, teatest.WithDuration(3*time.Second))

	tm.Send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("m")})
	tm.Send(tea.KeyMsg{Type: tea.KeyUp})
	tm.Send(tea.KeyMsg{Type: tea.KeyUp})
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	assert.Equal(t, EntryInstallDependencies, final.Chosen())
}
