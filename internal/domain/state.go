package domain

// ResolutionState tracks whether an entity has called its provider yet.
// Transitions are one-directional: Unresolved -> Resolved or
// Unresolved -> Failed. A failed entity stays failed; callers wanting a
// retry construct a fresh entity.
type ResolutionState int

const (
	StateUnresolved ResolutionState = iota
	StateResolved
	StateFailed
)

func (s ResolutionState) String() string {
	switch s {
	case StateUnresolved:
		return "unresolved"
	case StateResolved:
		return "resolved"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}
