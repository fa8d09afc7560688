//go:build !windows

package wizard

import (
	"errors"
	"io"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/conn-castle/launch/internal/theme"
)

// runSecretFormWithKeys builds the masked password form the way
// HuhUI.runForm does (wizardKeyMap, formTheme, formFilter, hintField), feeds
// raw key bytes through Bubble Tea input parsing, and classifies the result.
func runSecretFormWithKeys(t *testing.T, keyBytes []byte) (string, error) {
	t.Helper()

	inputR, inputW := io.Pipe()
	t.Cleanup(func() { _ = inputR.Close() })
	t.Cleanup(func() { _ = inputW.Close() })

	ui := &HuhUI{isTerminal: func() bool { return true }, palette: theme.Latte}

	var val string
	form := huh.NewForm(
		huh.NewGroup(
			newHintField(huh.NewInput().
				Title("sudo password").
				Value(&val).
				EchoMode(huh.EchoModePassword)),
		),
	)
	form.WithAccessible(false)
	form.WithKeyMap(wizardKeyMap())
	form.WithTheme(formTheme(ui.palette))
	form.WithProgramOptions(
		tea.WithInput(inputR),
		tea.WithOutput(io.Discard),
		tea.WithFilter(ui.formFilter()),
	)

	go func() {
		// Let the program start so the first byte reaches the input parser.
		time.Sleep(50 * time.Millisecond)
		_, _ = inputW.Write(keyBytes)
		// A lone Esc is only recognized once no follow-up bytes arrive.
		time.Sleep(350 * time.Millisecond)
		_ = inputW.Close()
	}()

	type result struct{ err error }
	ch := make(chan result, 1)
	go func() {
		runErr := form.Run()
		if errors.Is(runErr, huh.ErrUserAborted) {
			if ui.ctrlCAbort {
				ch <- result{errWizardCancelled}
			} else {
				ch <- result{errWizardBack}
			}
			return
		}
		ch <- result{runErr}
	}()

	select {
	case r := <-ch:
		return val, r.err
	case <-time.After(5 * time.Second):
		t.Fatal("form did not exit within timeout")
		return "", nil
	}
}

func TestKeys_EscProducesWizardBack(t *testing.T) {
	_, err := runSecretFormWithKeys(t, []byte{0x1b})
	assert.ErrorIs(t, err, errWizardBack)
}

func TestKeys_CtrlCProducesWizardCancelled(t *testing.T) {
	_, err := runSecretFormWithKeys(t, []byte{0x03})
	assert.ErrorIs(t, err, errWizardCancelled)
}

func TestKeys_TypedPasswordIsSubmitted(t *testing.T) {
	val, err := runSecretFormWithKeys(t, []byte("s3cret\r"))
	require.NoError(t, err)
	assert.Equal(t, "s3cret", val)
}
