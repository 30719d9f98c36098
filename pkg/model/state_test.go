package model

import (
	"errors"
	"testing"
)

func TestRunState_IsTerminal(t *testing.T) {
	tests := []struct {
		state    RunState
		terminal bool
	}{
		{RunStatePending, false},
		{RunStateProvisioning, false},
		{RunStateLaunching, false},
		{RunStateSucceeded, true},
		{RunStateFailed, true},
	}
	for _, tt := range tests {
		if got := tt.state.IsTerminal(); got != tt.terminal {
			t.Errorf("RunState(%q).IsTerminal() = %v, want %v", tt.state, got, tt.terminal)
		}
	}
}

func TestRunState_CanTransitionTo(t *testing.T) {
	tests := []struct {
		from  RunState
		to    RunState
		valid bool
	}{
		{RunStatePending, RunStateProvisioning, true},
		{RunStatePending, RunStateLaunching, true},
		{RunStatePending, RunStateFailed, true},
		{RunStateProvisioning, RunStateLaunching, true},
		{RunStateProvisioning, RunStateFailed, true},
		{RunStateLaunching, RunStateSucceeded, true},
		{RunStateLaunching, RunStateFailed, true},

		{RunStatePending, RunStateSucceeded, false},
		{RunStateProvisioning, RunStateSucceeded, false},
		{RunStateSucceeded, RunStateFailed, false},
		{RunStateFailed, RunStateLaunching, false},
		{RunStateLaunching, RunStateProvisioning, false},
	}
	for _, tt := range tests {
		if got := tt.from.CanTransitionTo(tt.to); got != tt.valid {
			t.Errorf("%s → %s: got %v, want %v", tt.from, tt.to, got, tt.valid)
		}
	}
}

func TestRun_Transition(t *testing.T) {
	r := &Run{ID: "run_1", State: RunStatePending}

	if err := r.Transition(RunStateProvisioning); err != nil {
		t.Fatalf("PENDING → PROVISIONING: %v", err)
	}
	if r.CompletedAt != nil {
		t.Error("CompletedAt set on non-terminal state")
	}
	if err := r.Transition(RunStateLaunching); err != nil {
		t.Fatalf("PROVISIONING → LAUNCHING: %v", err)
	}
	if err := r.Transition(RunStateSucceeded); err != nil {
		t.Fatalf("LAUNCHING → SUCCEEDED: %v", err)
	}
	if r.CompletedAt == nil {
		t.Error("CompletedAt not set on terminal state")
	}

	err := r.Transition(RunStateFailed)
	var ite *InvalidTransitionError
	if !errors.As(err, &ite) {
		t.Fatalf("expected InvalidTransitionError, got %v", err)
	}
	if ite.From != "SUCCEEDED" || ite.To != "FAILED" {
		t.Errorf("transition error = %+v", ite)
	}
	if r.State != RunStateSucceeded {
		t.Errorf("State = %s after rejected transition, want SUCCEEDED", r.State)
	}
}
