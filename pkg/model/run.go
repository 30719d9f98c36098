package model

import "time"

// UploadStatus records what happened to the pipeline log after a run.
type UploadStatus string

const (
	UploadStatusUploaded  UploadStatus = "uploaded"
	UploadStatusNoLog     UploadStatus = "skipped_missing"
	UploadStatusNoRunName UploadStatus = "skipped_no_name"
	UploadStatusFailed    UploadStatus = "failed"
)

// Run is one invocation of the pipeline, from storage provisioning to log upload.
type Run struct {
	ID            string       `json:"id"`
	Name          string       `json:"name"`
	StorageHandle string       `json:"storage_handle"`
	State         RunState     `json:"state"`
	Command       []string     `json:"command"`
	ExitCode      *int         `json:"exit_code,omitempty"`
	LogStatus     UploadStatus `json:"log_status,omitempty"`
	LogLocation   string       `json:"log_location,omitempty"`
	Error         string       `json:"error,omitempty"`
	DurationMS    int64        `json:"duration_ms,omitempty"`
	CreatedAt     time.Time    `json:"created_at"`
	CompletedAt   *time.Time   `json:"completed_at,omitempty"`
}

// Transition moves the run to next, rejecting moves the state machine forbids.
func (r *Run) Transition(next RunState) error {
	if !r.State.CanTransitionTo(next) {
		return &InvalidTransitionError{
			Entity: "Run",
			ID:     r.ID,
			From:   r.State.String(),
			To:     next.String(),
		}
	}
	r.State = next
	if next.IsTerminal() {
		now := time.Now().UTC()
		r.CompletedAt = &now
	}
	return nil
}
