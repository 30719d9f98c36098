package model

import (
	"errors"
	"fmt"
)

// Sentinel errors.
var (
	ErrMissingToken  = errors.New("execution token not set")
	ErrRequiredParam = errors.New("required parameter missing")
	ErrNonZeroExit   = errors.New("pipeline exited with non-zero status")
	ErrEmptyHandle   = errors.New("provisioning response has no volume name")
)

// ConfigurationError reports a problem with the launcher's own inputs:
// missing environment, a malformed params file or an invalid override.
type ConfigurationError struct {
	Field string
	Err   error
}

func (e *ConfigurationError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("configuration: %v", e.Err)
	}
	return fmt.Sprintf("configuration: %s: %v", e.Field, e.Err)
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

// ProvisioningError is returned when the storage dispatcher cannot be reached
// or answers with something other than a volume name.
type ProvisioningError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ProvisioningError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provision storage: HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("provision storage: %v", e.Err)
}

func (e *ProvisioningError) Unwrap() error {
	return e.Err
}

// StagingError wraps a failure to mirror the project tree into the shared volume.
type StagingError struct {
	Path string
	Err  error
}

func (e *StagingError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Path, e.Err)
}

func (e *StagingError) Unwrap() error {
	return e.Err
}

// ExecutionError is returned when the pipeline process could not be started
// (ExitCode -1) or terminated with a non-zero status.
type ExecutionError struct {
	ExitCode int
	Err      error
}

func (e *ExecutionError) Error() string {
	if e.ExitCode != 0 {
		return fmt.Sprintf("pipeline: %v (exit code %d)", e.Err, e.ExitCode)
	}
	return fmt.Sprintf("pipeline: %v", e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}

// InvalidTransitionError is returned when a state transition is invalid.
type InvalidTransitionError struct {
	Entity string
	ID     string
	From   string
	To     string
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("invalid %s state transition: %s → %s (entity %s)", e.Entity, e.From, e.To, e.ID)
}
