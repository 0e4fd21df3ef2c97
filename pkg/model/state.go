package model

// GateState is the exam-window access state for a participant.
type GateState string

const (
	// GateLoading means timing has not been confirmed yet. Exam content is
	// never shown in this state.
	GateLoading GateState = "LOADING"
	// GateCountdown means the session start is still in the future.
	GateCountdown GateState = "COUNTDOWN"
	// GateActive means the session window is open.
	GateActive GateState = "ACTIVE"
	// GateEnded means the session window has closed.
	GateEnded GateState = "ENDED"
	// GateUnauthenticated is absorbing: reachable from any state on a
	// credential failure.
	GateUnauthenticated GateState = "UNAUTHENTICATED"
)

// String returns the string representation of the gate state.
func (s GateState) String() string {
	return string(s)
}

// IsTerminal reports whether the participant can no longer reach exam
// content without re-authenticating.
func (s GateState) IsTerminal() bool {
	switch s {
	case GateEnded, GateUnauthenticated:
		return true
	}
	return false
}

// AllowsExam reports whether exam content may be rendered in this state.
// Only a confirmed open window qualifies; Loading deliberately does not.
func (s GateState) AllowsExam() bool {
	return s == GateActive
}
