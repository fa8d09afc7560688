package installer

import "fmt"

// State is the orchestrator's position in a run: Idle, Refreshing, Installing(i),
// then Done or Failed.
type State struct {
	Phase Phase
	// Index is the zero-based dependency being installed while Phase is PhaseInstalling.
	Index int
}

// Phase is the coarse run phase.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseRefreshing
	PhaseInstalling
	PhaseDone
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseRefreshing:
		return "refreshing"
	case PhaseInstalling:
		return "installing"
	case PhaseDone:
		return "done"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

func (s State) String() string {
	if s.Phase == PhaseInstalling {
		return fmt.Sprintf("%s(%d)", s.Phase, s.Index)
	}
	return s.Phase.String()
}

// Finished reports whether s is Done or Failed.
func (s State) Finished() bool {
	return s.Phase == PhaseDone || s.Phase == PhaseFailed
}
