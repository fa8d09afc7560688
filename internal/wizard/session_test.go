package wizard

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransitionHappyPath(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StepWelcome, s.Step)

	s = Transition(s, Next)
	assert.Equal(t, StepInstall, s.Step)

	s = Transition(s, InstallSucceeded)
	assert.True(t, s.Installed)
	s = Transition(s, Next)
	assert.Equal(t, StepConfigure, s.Step)

	s = Transition(s, Configured)
	s = Transition(s, Next)
	assert.Equal(t, StepFinish, s.Step)
	assert.True(t, s.Configured)

	s = Transition(s, Next)
	assert.Equal(t, StepExit, s.Step)
}

func TestTransitionInstallGate(t *testing.T) {
	s := Transition(NewSession(), Next)
	assert.False(t, s.CanAdvance())

	blocked := Transition(s, Next)
	assert.Equal(t, StepInstall, blocked.Step, "next is disabled until the install succeeds")

	failed := Transition(s, InstallFailed("installing git failed with exit code 100"))
	assert.False(t, failed.Installed)
	assert.Equal(t, "installing git failed with exit code 100", failed.LastError)
	assert.Equal(t, StepInstall, Transition(failed, Next).Step)

	retried := Transition(failed, InstallSucceeded)
	assert.True(t, retried.Installed)
	assert.Empty(t, retried.LastError)
	assert.Equal(t, StepConfigure, Transition(retried, Next).Step)
}

func TestTransitionIsPure(t *testing.T) {
	s := Transition(NewSession(), Next)
	_ = Transition(s, InstallSucceeded)
	assert.False(t, s.Installed)
	assert.Equal(t, StepInstall, s.Step)
}

func TestTransitionBackAndQuit(t *testing.T) {
	s := NewSession()
	assert.Equal(t, StepWelcome, Transition(s, Back).Step)

	s = Session{Step: StepConfigure, Installed: true}
	s = Transition(s, Back)
	assert.Equal(t, StepInstall, s.Step)
	assert.True(t, s.Installed, "going back keeps the install result")
	assert.Equal(t, StepConfigure, Transition(s, Next).Step)

	for _, step := range []Step{StepWelcome, StepInstall, StepConfigure, StepFinish} {
		assert.Equal(t, StepExit, Transition(Session{Step: step}, Quit).Step, step.String())
	}
	exited := Session{Step: StepExit}
	assert.Equal(t, exited, Transition(exited, Back))
	assert.Equal(t, exited, Transition(exited, Next))
}

func TestTransitionIgnoresActionsForOtherSteps(t *testing.T) {
	s := NewSession()
	assert.Equal(t, s, Transition(s, InstallSucceeded))
	assert.Equal(t, s, Transition(s, InstallFailed("x")))
	assert.Equal(t, s, Transition(s, Configured))
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "configure", StepConfigure.String())
	assert.Equal(t, "unknown", Step(42).String())
}
