package wizard

import (
	"github.com/conn-castle/launch/internal/installer"
)

// MockUI is a scriptable UI. Nil funcs accept the current value.
type MockUI struct {
	SelectFunc      func(title string, options []string, current *string) error
	MultiSelectFunc func(title string, options []string, selected *[]string) error
	ConfirmFunc     func(title string, value *bool) error
	InputFunc       func(title string, value *string) error
	SecretInputFunc func(title string, value *string) error
	NoteFunc        func(title string, body string) error
	ProgressFunc    func(title string, events <-chan installer.Event, cancel func()) (installer.Event, error)

	Notes  []string
	Titles []string
}

func (m *MockUI) Select(title string, options []string, current *string) error {
	m.Titles = append(m.Titles, title)
	if m.SelectFunc != nil {
		return m.SelectFunc(title, options, current)
	}
	return nil
}

func (m *MockUI) MultiSelect(title string, options []string, selected *[]string) error {
	m.Titles = append(m.Titles, title)
	if m.MultiSelectFunc != nil {
		return m.MultiSelectFunc(title, options, selected)
	}
	return nil
}

func (m *MockUI) Confirm(title string, value *bool) error {
	m.Titles = append(m.Titles, title)
	if m.ConfirmFunc != nil {
		return m.ConfirmFunc(title, value)
	}
	return nil
}

func (m *MockUI) Input(title string, value *string) error {
	m.Titles = append(m.Titles, title)
	if m.InputFunc != nil {
		return m.InputFunc(title, value)
	}
	return nil
}

func (m *MockUI) SecretInput(title string, value *string) error {
	m.Titles = append(m.Titles, title)
	if m.SecretInputFunc != nil {
		return m.SecretInputFunc(title, value)
	}
	*value = "hunter2"
	return nil
}

func (m *MockUI) Note(title string, body string) error {
	m.Titles = append(m.Titles, title)
	m.Notes = append(m.Notes, body)
	if m.NoteFunc != nil {
		return m.NoteFunc(title, body)
	}
	return nil
}

// Progress drains events and returns the terminal one by default.
func (m *MockUI) Progress(title string, events <-chan installer.Event, cancel func()) (installer.Event, error) {
	m.Titles = append(m.Titles, title)
	if m.ProgressFunc != nil {
		return m.ProgressFunc(title, events, cancel)
	}
	var final installer.Event
	for ev := range events {
		if ev.Terminal() {
			final = ev
		}
	}
	return final, nil
}
