// Package metrics records per-run Prometheus metrics and exports them once
// the run is over. The launcher is a batch job, so there is no scrape
// endpoint: metrics go to a Pushgateway and/or a node-exporter textfile.
package metrics

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/me/funcscan/internal/config"
	"github.com/me/funcscan/pkg/model"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/push"
)

// Recorder holds the metrics of a single run on its own registry.
type Recorder struct {
	cfg    config.MetricsConfig
	reg    *prometheus.Registry
	logger *slog.Logger

	runDuration       prometheus.Gauge
	exitCode          prometheus.Gauge
	stagedBytes       prometheus.Gauge
	stagedFiles       prometheus.Gauge
	lastRunTimestamp  prometheus.Gauge
	logUploads        *prometheus.CounterVec
	runs              *prometheus.CounterVec
	provisionFailures prometheus.Counter
}

// New creates a Recorder.
func New(cfg config.MetricsConfig, logger *slog.Logger) *Recorder {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Recorder{
		cfg:    cfg,
		reg:    reg,
		logger: logger.With("component", "metrics"),

		runDuration: f.NewGauge(prometheus.GaugeOpts{
			Name: "funcscan_run_duration_seconds",
			Help: "Wall time of the pipeline launch, staging included.",
		}),
		exitCode: f.NewGauge(prometheus.GaugeOpts{
			Name: "funcscan_run_exit_code",
			Help: "Exit code of the pipeline engine (-1 when it never ran).",
		}),
		stagedBytes: f.NewGauge(prometheus.GaugeOpts{
			Name: "funcscan_staged_bytes",
			Help: "Bytes copied into the shared volume.",
		}),
		stagedFiles: f.NewGauge(prometheus.GaugeOpts{
			Name: "funcscan_staged_files",
			Help: "Files copied into the shared volume.",
		}),
		lastRunTimestamp: f.NewGauge(prometheus.GaugeOpts{
			Name: "funcscan_last_run_timestamp_seconds",
			Help: "Unix time the run finished.",
		}),
		logUploads: f.NewCounterVec(prometheus.CounterOpts{
			Name: "funcscan_log_uploads_total",
			Help: "Engine log upload attempts by outcome.",
		}, []string{"outcome"}),
		runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "funcscan_runs_total",
			Help: "Finished runs by final state.",
		}, []string{"state"}),
		provisionFailures: f.NewCounter(prometheus.CounterOpts{
			Name: "funcscan_provision_failures_total",
			Help: "Failed storage provisioning requests.",
		}),
	}
}

// Registry exposes the underlying registry, mainly for tests.
func (r *Recorder) Registry() *prometheus.Registry {
	return r.reg
}

func (r *Recorder) ProvisionFailed() {
	r.provisionFailures.Inc()
}

// Launch records the outcome of the engine run.
func (r *Recorder) Launch(duration time.Duration, exitCode int, files int, bytes int64) {
	r.runDuration.Set(duration.Seconds())
	r.exitCode.Set(float64(exitCode))
	r.stagedFiles.Set(float64(files))
	r.stagedBytes.Set(float64(bytes))
}

func (r *Recorder) LogUpload(status model.UploadStatus) {
	if status == "" {
		return
	}
	r.logUploads.WithLabelValues(string(status)).Inc()
}

func (r *Recorder) RunFinished(state model.RunState) {
	r.runs.WithLabelValues(state.String()).Inc()
	r.lastRunTimestamp.SetToCurrentTime()
}

// Export writes the metrics to every configured target. runName, when set,
// becomes the Pushgateway grouping key so runs do not overwrite each other.
func (r *Recorder) Export(ctx context.Context, runName string) error {
	var errs []error

	if r.cfg.PushURL != "" {
		pusher := push.New(r.cfg.PushURL, r.cfg.Job).Gatherer(r.reg)
		if runName != "" {
			pusher = pusher.Grouping("run", runName)
		}
		if err := pusher.PushContext(ctx); err != nil {
			errs = append(errs, fmt.Errorf("push metrics: %w", err))
		} else {
			r.logger.Debug("metrics pushed", "url", r.cfg.PushURL, "job", r.cfg.Job)
		}
	}

	if r.cfg.TextfilePath != "" {
		if err := prometheus.WriteToTextfile(r.cfg.TextfilePath, r.reg); err != nil {
			errs = append(errs, fmt.Errorf("write metrics textfile: %w", err))
		} else {
			r.logger.Debug("metrics written", "path", r.cfg.TextfilePath)
		}
	}

	return errors.Join(errs...)
}
