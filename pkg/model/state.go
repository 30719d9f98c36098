package model

// RunState represents the lifecycle state of a pipeline Run.
type RunState string

const (
	RunStatePending      RunState = "PENDING"
	RunStateProvisioning RunState = "PROVISIONING"
	RunStateLaunching    RunState = "LAUNCHING"
	RunStateSucceeded    RunState = "SUCCEEDED"
	RunStateFailed       RunState = "FAILED"
)

// String returns the string representation of the run state.
func (s RunState) String() string {
	return string(s)
}

// IsTerminal returns true if the run is in a final state.
func (s RunState) IsTerminal() bool {
	switch s {
	case RunStateSucceeded, RunStateFailed:
		return true
	}
	return false
}

// ValidRunTransitions defines the allowed state transitions for Runs.
// A launch-only invocation enters LAUNCHING directly from PENDING.
var ValidRunTransitions = map[RunState][]RunState{
	RunStatePending:      {RunStateProvisioning, RunStateLaunching, RunStateFailed},
	RunStateProvisioning: {RunStateLaunching, RunStateFailed},
	RunStateLaunching:    {RunStateSucceeded, RunStateFailed},
}

// CanTransitionTo returns true if moving from the current state to next is valid.
func (s RunState) CanTransitionTo(next RunState) bool {
	for _, allowed := range ValidRunTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
