// Package logupload ships the pipeline engine's log to durable storage
// after a run, whatever the run's outcome.
package logupload

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/dustin/go-humanize"
	"github.com/me/funcscan/internal/config"
	"github.com/me/funcscan/internal/env"
	"github.com/me/funcscan/pkg/model"
)

// Outcome reports what Publish did. Err is set only for UploadStatusFailed.
type Outcome struct {
	Status      model.UploadStatus
	Destination string
	Err         error
}

// Publisher uploads <workDir>/<log file> to <remote base>/<run name>/<file name>.
type Publisher struct {
	cfg      config.LogUploadConfig
	uploader Uploader
	logger   *slog.Logger

	lookupEnv func(string) (string, bool)
}

// NewPublisher creates a Publisher.
func NewPublisher(cfg config.LogUploadConfig, uploader Uploader, logger *slog.Logger) *Publisher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Publisher{
		cfg:       cfg,
		uploader:  uploader,
		logger:    logger.With("component", "log-upload"),
		lookupEnv: env.Lookup,
	}
}

// RunName resolves the run's name from configuration, then from the
// configured environment variable.
func (p *Publisher) RunName() (string, bool) {
	if p.cfg.RunName != "" {
		return p.cfg.RunName, true
	}
	if p.cfg.RunNameEnv != "" {
		return p.lookupEnv(p.cfg.RunNameEnv)
	}
	return "", false
}

// CheckDestination warns when no uploader handles the configured remote
// base, so every upload would fail. It returns false in that case.
func (p *Publisher) CheckDestination(u *CompositeUploader) bool {
	if u.Supports(p.cfg.RemoteBase) {
		return true
	}
	scheme, _ := ParseLocation(p.cfg.RemoteBase)
	p.logger.Warn("engine log will not be uploaded, no uploader for destination scheme",
		"remote_base", p.cfg.RemoteBase, "scheme", scheme)
	return false
}

// Destination returns where the log of runName is stored.
func (p *Publisher) Destination(runName string) string {
	return JoinLocation(p.cfg.RemoteBase, runName, p.cfg.FileName)
}

// Publish uploads the engine log found in workDir. A missing log is a
// silent no-op; an unresolvable run name is skipped with a notice. Upload
// failures are logged and reported in the Outcome, never returned.
func (p *Publisher) Publish(ctx context.Context, workDir string) Outcome {
	logPath := filepath.Join(workDir, p.cfg.LogFile)

	info, err := os.Stat(logPath)
	if errors.Is(err, fs.ErrNotExist) {
		p.logger.Debug("no engine log to upload", "path", logPath)
		return Outcome{Status: model.UploadStatusNoLog}
	}
	if err != nil {
		p.logger.Error("log upload failed", "path", logPath, "error", err)
		return Outcome{Status: model.UploadStatusFailed, Err: err}
	}

	name, ok := p.RunName()
	if !ok {
		p.logger.Warn("skipping log upload, failed to get run name", "env", p.cfg.RunNameEnv)
		return Outcome{Status: model.UploadStatusNoRunName}
	}

	dest := p.Destination(name)
	p.logger.Info("uploading engine log", "destination", dest, "size", humanize.Bytes(uint64(info.Size())))

	if err := p.uploader.Upload(ctx, logPath, dest); err != nil {
		if errors.Is(err, ErrUnsupportedScheme) {
			// Reported once at startup by CheckDestination.
			p.logger.Debug("log upload skipped", "destination", dest, "error", err)
		} else {
			p.logger.Error("log upload failed", "destination", dest, "error", err)
		}
		return Outcome{Status: model.UploadStatusFailed, Destination: dest, Err: err}
	}
	p.logger.Info("engine log uploaded", "destination", dest)
	return Outcome{Status: model.UploadStatusUploaded, Destination: dest}
}
