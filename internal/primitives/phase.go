package primitives

// Phase describes a slot's position in the commit cycle.
// A slot is Idle when pending equals current and Dirty otherwise.
// Transitions: Idle -> Dirty on a diverging Set; Dirty -> Idle on Commit.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDirty
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseDirty:
		return "dirty"
	default:
		return "unknown"
	}
}
