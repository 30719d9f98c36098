// Package launcher runs the Nextflow pipeline on a provisioned volume.
package launcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/me/funcscan/internal/config"
	"github.com/me/funcscan/internal/logupload"
	"github.com/me/funcscan/internal/params"
	"github.com/me/funcscan/internal/workspace"
	"github.com/me/funcscan/pkg/model"
)

// stopGrace is how long the engine gets to shut down after SIGTERM.
const stopGrace = 30 * time.Second

// Stager materializes the working directory.
type Stager interface {
	Stage(ctx context.Context) (workspace.Stats, error)
}

// Publisher ships the engine log after a run.
type Publisher interface {
	Publish(ctx context.Context, workDir string) logupload.Outcome
}

// Plan is a fully resolved invocation that has not been executed.
type Plan struct {
	Command   []string
	Overrides []EnvVar
	Dir       string
}

// Result describes a launch. ExitCode is -1 when the engine never ran.
type Result struct {
	Command  []string
	ExitCode int
	Stats    workspace.Stats
	Log      logupload.Outcome
	Duration time.Duration
}

// Launcher stages the workspace, runs the engine and uploads its log.
type Launcher struct {
	pipeline      config.PipelineConfig
	sharedDir     string
	uploadTimeout time.Duration
	stager        Stager
	publisher     Publisher
	stdout        io.Writer
	stderr        io.Writer
	environ       func() []string
	logger        *slog.Logger
}

// New creates a Launcher from cfg.
func New(cfg config.Config, stager Stager, publisher Publisher, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Launcher{
		pipeline:      cfg.Pipeline,
		sharedDir:     filepath.Clean(cfg.Workspace.SharedDir),
		uploadTimeout: cfg.LogUpload.Timeout.Duration,
		stager:        stager,
		publisher:     publisher,
		stdout:        os.Stdout,
		stderr:        os.Stderr,
		environ:       os.Environ,
		logger:        logger.With("component", "launcher"),
	}
}

// WithOutput returns a copy of l that sends engine output to stdout and stderr.
func (l *Launcher) WithOutput(stdout, stderr io.Writer) *Launcher {
	c := *l
	c.stdout = stdout
	c.stderr = stderr
	return &c
}

// Plan validates p and resolves the command and environment for storageHandle.
func (l *Launcher) Plan(storageHandle string, p *params.Config) (*Plan, error) {
	if err := params.Validate(p); err != nil {
		return nil, err
	}
	return &Plan{
		Command:   Command(l.pipeline, l.sharedDir, params.Flags(p)),
		Overrides: Overrides(l.pipeline, storageHandle),
		Dir:       l.sharedDir,
	}, nil
}

// Run launches the pipeline on storageHandle.
//
// Once parameters validate, the engine log is published on every exit path,
// including staging failures and cancellation, using a context detached from
// ctx. A non-zero engine exit is returned as *model.ExecutionError; upload
// failures never change the returned error.
func (l *Launcher) Run(ctx context.Context, storageHandle string, p *params.Config) (*Result, error) {
	plan, err := l.Plan(storageHandle, p)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res := &Result{Command: plan.Command, ExitCode: -1}
	defer func() {
		res.Duration = time.Since(start)
		res.Log = l.publishLog(ctx)
	}()

	res.Stats, err = l.stager.Stage(ctx)
	if err != nil {
		return res, err
	}

	l.logger.Info("launching pipeline", "volume", storageHandle)
	fmt.Fprintln(l.stdout, strings.Join(plan.Command, " "))

	res.ExitCode, err = l.execute(ctx, plan)
	return res, err
}

func (l *Launcher) execute(ctx context.Context, plan *Plan) (int, error) {
	cmd := exec.CommandContext(ctx, plan.Command[0], plan.Command[1:]...)
	cmd.Dir = plan.Dir
	cmd.Env = Environment(l.environ(), plan.Overrides)
	cmd.Stdout = l.stdout
	cmd.Stderr = l.stderr
	cmd.Cancel = func() error {
		return cmd.Process.Signal(syscall.SIGTERM)
	}
	cmd.WaitDelay = stopGrace

	runErr := cmd.Run()

	var exitErr *exec.ExitError
	switch {
	case runErr == nil:
		l.logger.Info("pipeline finished", "exit_code", 0)
		return 0, nil
	case errors.As(runErr, &exitErr):
		code := exitErr.ExitCode()
		l.logger.Error("pipeline failed", "exit_code", code)
		cause := model.ErrNonZeroExit
		if ctxErr := ctx.Err(); ctxErr != nil {
			cause = ctxErr
		}
		return code, &model.ExecutionError{ExitCode: code, Err: cause}
	default:
		// Non-exit errors (e.g. binary not found) mean the engine never ran.
		l.logger.Error("pipeline did not start", "error", runErr)
		return -1, &model.ExecutionError{ExitCode: -1, Err: fmt.Errorf("start %s: %w", plan.Command[0], runErr)}
	}
}

func (l *Launcher) publishLog(ctx context.Context) logupload.Outcome {
	if l.publisher == nil {
		return logupload.Outcome{}
	}
	uploadCtx := context.WithoutCancel(ctx)
	if l.uploadTimeout > 0 {
		var cancel context.CancelFunc
		uploadCtx, cancel = context.WithTimeout(uploadCtx, l.uploadTimeout)
		defer cancel()
	}
	return l.publisher.Publish(uploadCtx, l.sharedDir)
}
