// Package runner drives a pipeline run end to end and records it.
package runner

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/me/funcscan/internal/launcher"
	"github.com/me/funcscan/internal/metrics"
	"github.com/me/funcscan/internal/params"
	"github.com/me/funcscan/internal/store"
	"github.com/me/funcscan/pkg/model"
)

// exportTimeout bounds the metrics export after a run.
const exportTimeout = 30 * time.Second

// Provisioner obtains a storage handle for a run.
type Provisioner interface {
	Provision(ctx context.Context) (string, error)
}

// Launcher executes the pipeline on a provisioned volume.
type Launcher interface {
	Run(ctx context.Context, storageHandle string, p *params.Config) (*launcher.Result, error)
}

// Runner provisions storage, launches the pipeline and records the run.
// The store and the metrics recorder are optional.
type Runner struct {
	provisioner Provisioner
	launcher    Launcher
	store       store.Store
	metrics     *metrics.Recorder
	runName     string
	logger      *slog.Logger
}

// Option configures a Runner.
type Option func(*Runner)

// WithStore records every run in st.
func WithStore(st store.Store) Option {
	return func(r *Runner) { r.store = st }
}

// WithMetrics records run metrics and exports them once the run is over.
func WithMetrics(rec *metrics.Recorder) Option {
	return func(r *Runner) { r.metrics = rec }
}

// WithRunName sets the name stored on run records.
func WithRunName(name string) Option {
	return func(r *Runner) { r.runName = name }
}

// New creates a Runner.
func New(prov Provisioner, l Launcher, logger *slog.Logger, opts ...Option) *Runner {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	r := &Runner{
		provisioner: prov,
		launcher:    l,
		logger:      logger.With("component", "runner"),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Execute provisions a volume and launches the pipeline on it. Invalid
// parameters are rejected before a run is recorded or a volume requested,
// and the returned run is then nil. Otherwise the returned run is never nil
// and a provisioning failure ends it before anything is staged; the error
// is the one raised by the failing stage.
func (r *Runner) Execute(ctx context.Context, p *params.Config) (*model.Run, error) {
	if err := params.Validate(p); err != nil {
		return nil, err
	}
	run := r.newRun()
	r.create(ctx, run)

	if err := r.transition(ctx, run, model.RunStateProvisioning); err != nil {
		return run, err
	}

	handle, err := r.provisioner.Provision(ctx)
	if err != nil {
		if r.metrics != nil {
			r.metrics.ProvisionFailed()
		}
		return run, r.fail(ctx, run, err)
	}
	run.StorageHandle = handle

	return r.launch(ctx, run, p)
}

// Launch runs the pipeline on an already provisioned volume. Parameters are
// validated as in Execute.
func (r *Runner) Launch(ctx context.Context, storageHandle string, p *params.Config) (*model.Run, error) {
	if err := params.Validate(p); err != nil {
		return nil, err
	}
	run := r.newRun()
	run.StorageHandle = storageHandle
	r.create(ctx, run)
	return r.launch(ctx, run, p)
}

func (r *Runner) launch(ctx context.Context, run *model.Run, p *params.Config) (*model.Run, error) {
	if err := r.transition(ctx, run, model.RunStateLaunching); err != nil {
		return run, err
	}

	res, err := r.launcher.Run(ctx, run.StorageHandle, p)
	if res != nil {
		code := res.ExitCode
		run.Command = res.Command
		run.ExitCode = &code
		run.LogStatus = res.Log.Status
		run.LogLocation = res.Log.Destination
		run.DurationMS = res.Duration.Milliseconds()
		if r.metrics != nil {
			r.metrics.Launch(res.Duration, res.ExitCode, res.Stats.Files, res.Stats.Bytes)
			r.metrics.LogUpload(res.Log.Status)
		}
	}
	if err != nil {
		return run, r.fail(ctx, run, err)
	}

	if err := r.transition(ctx, run, model.RunStateSucceeded); err != nil {
		return run, err
	}
	r.logger.Info("run succeeded", "run_id", run.ID, "volume", run.StorageHandle, "duration_ms", run.DurationMS)
	r.finish(ctx, run)
	return run, nil
}

func (r *Runner) newRun() *model.Run {
	return &model.Run{
		ID:        "run_" + uuid.New().String(),
		Name:      r.runName,
		State:     model.RunStatePending,
		CreatedAt: time.Now().UTC(),
	}
}

// fail moves run to FAILED, records cause and returns it unchanged.
func (r *Runner) fail(ctx context.Context, run *model.Run, cause error) error {
	run.Error = cause.Error()
	if err := r.transition(ctx, run, model.RunStateFailed); err != nil {
		return errors.Join(cause, err)
	}
	r.logger.Error("run failed", "run_id", run.ID, "state", run.State, "error", cause)
	r.finish(ctx, run)
	return cause
}

func (r *Runner) transition(ctx context.Context, run *model.Run, next model.RunState) error {
	prev := run.State
	if err := run.Transition(next); err != nil {
		return err
	}
	r.logger.Debug("state transition", "run_id", run.ID, "from", prev, "to", next)
	r.save(ctx, run)
	return nil
}

func (r *Runner) create(ctx context.Context, run *model.Run) {
	if r.store == nil {
		return
	}
	if err := r.store.CreateRun(context.WithoutCancel(ctx), run); err != nil {
		r.logger.Warn("recording run failed", "run_id", run.ID, "error", err)
	}
}

// save persists run. Ledger errors are logged, never returned.
func (r *Runner) save(ctx context.Context, run *model.Run) {
	if r.store == nil {
		return
	}
	if err := r.store.UpdateRun(context.WithoutCancel(ctx), run); err != nil {
		r.logger.Warn("updating run failed", "run_id", run.ID, "error", err)
	}
}

func (r *Runner) finish(ctx context.Context, run *model.Run) {
	if r.metrics == nil {
		return
	}
	r.metrics.RunFinished(run.State)
	exportCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), exportTimeout)
	defer cancel()
	if err := r.metrics.Export(exportCtx, run.Name); err != nil {
		r.logger.Warn("exporting metrics failed", "run_id", run.ID, "error", err)
	}
}
