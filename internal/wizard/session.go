package wizard

// Step is a wizard page.
type Step int

const (
	StepWelcome Step = iota
	StepInstall
	StepConfigure
	StepFinish
	StepExit
)

func (s Step) String() string {
	switch s {
	case StepWelcome:
		return "welcome"
	case StepInstall:
		return "install"
	case StepConfigure:
		return "configure"
	case StepFinish:
		return "finish"
	case StepExit:
		return "exit"
	default:
		return "unknown"
	}
}

// ActionKind identifies a user or installer action.
type ActionKind int

const (
	ActionNext ActionKind = iota
	ActionBack
	ActionInstallSucceeded
	ActionInstallFailed
	ActionConfigured
	ActionQuit
)

// Action is an input to Transition. Err is set for ActionInstallFailed.
type Action struct {
	Kind ActionKind
	Err  string
}

var (
	Next             = Action{Kind: ActionNext}
	Back             = Action{Kind: ActionBack}
	InstallSucceeded = Action{Kind: ActionInstallSucceeded}
	Configured       = Action{Kind: ActionConfigured}
	Quit             = Action{Kind: ActionQuit}
)

// InstallFailed returns the action reporting a failed installation run.
func InstallFailed(message string) Action {
	return Action{Kind: ActionInstallFailed, Err: message}
}

// Session is the wizard's whole UI state.
type Session struct {
	Step Step
	// Installed is true once an installation run completed in this session.
	Installed bool
	// Configured is true once the config file was written.
	Configured bool
	// LastError is the message of the most recent failed installation run.
	LastError string
}

// NewSession returns a session on the welcome page.
func NewSession() Session {
	return Session{Step: StepWelcome}
}

// CanAdvance reports whether Next is allowed from the current step.
// Leaving the install page requires a successful run.
func (s Session) CanAdvance() bool {
	switch s.Step {
	case StepInstall:
		return s.Installed
	case StepExit:
		return false
	default:
		return true
	}
}

// Transition returns the session that follows s after a. It never mutates s.
// Actions that do not apply to the current step leave the session unchanged.
func Transition(s Session, a Action) Session {
	if s.Step == StepExit {
		return s
	}
	switch a.Kind {
	case ActionQuit:
		s.Step = StepExit
	case ActionNext:
		if !s.CanAdvance() {
			return s
		}
		s.Step++
	case ActionBack:
		if s.Step > StepWelcome {
			s.Step--
		}
	case ActionInstallSucceeded:
		if s.Step == StepInstall {
			s.Installed = true
			s.LastError = ""
		}
	case ActionInstallFailed:
		if s.Step == StepInstall {
			s.Installed = false
			s.LastError = a.Err
		}
	case ActionConfigured:
		if s.Step == StepConfigure {
			s.Configured = true
		}
	}
	return s
}
