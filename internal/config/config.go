package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/me/funcscan/internal/env"
	"github.com/me/funcscan/pkg/model"
	"github.com/pelletier/go-toml/v2"
)

// Config holds configuration for the funcscan launcher.
type Config struct {
	LogLevel  string `toml:"log_level"`  // debug, info, warn, error
	LogFormat string `toml:"log_format"` // text, json, console, auto

	Provision ProvisionConfig `toml:"provision"`
	Workspace WorkspaceConfig `toml:"workspace"`
	Pipeline  PipelineConfig  `toml:"pipeline"`
	LogUpload LogUploadConfig `toml:"log_upload"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Store     StoreConfig     `toml:"store"`
}

// ProvisionConfig describes the storage dispatcher call.
type ProvisionConfig struct {
	URL        string   `toml:"url"`
	StorageGiB int      `toml:"storage_gib"`
	TokenEnv   string   `toml:"token_env"`   // environment variable holding the execution token
	AuthScheme string   `toml:"auth_scheme"` // prefix of the Authorization header value
	Timeout    Duration `toml:"timeout"`
}

// WorkspaceConfig describes how the project tree is mirrored into the shared volume.
type WorkspaceConfig struct {
	SourceDir string   `toml:"source_dir"`
	SharedDir string   `toml:"shared_dir"`
	Exclude   []string `toml:"exclude"`
}

// PipelineConfig describes the Nextflow invocation.
type PipelineConfig struct {
	Binary             string `toml:"binary"`
	Entry              string `toml:"entry"`
	Profile            string `toml:"profile"`
	ConfigFile         string `toml:"config_file"`
	Home               string `toml:"home"`
	JavaOpts           string `toml:"java_opts"`
	DisableCheckLatest bool   `toml:"disable_check_latest"`
}

// LogUploadConfig describes where the engine log goes after a run.
type LogUploadConfig struct {
	LogFile    string   `toml:"log_file"`
	RemoteBase string   `toml:"remote_base"`
	FileName   string   `toml:"file_name"`
	RunName    string   `toml:"run_name"`
	RunNameEnv string   `toml:"run_name_env"`
	GatewayURL string   `toml:"gateway_url"` // HTTP endpoint serving latch:// paths; empty disables latch uploads
	Timeout    Duration `toml:"timeout"`
	S3         S3Config `toml:"s3"`
}

// S3Config holds credentials for s3:// log destinations.
type S3Config struct {
	Endpoint  string `toml:"endpoint"`
	AccessKey string `toml:"access_key"`
	SecretKey string `toml:"secret_key"`
	Region    string `toml:"region"`
	UseSSL    bool   `toml:"use_ssl"`
}

// MetricsConfig controls where run metrics are exported. Both targets are optional.
type MetricsConfig struct {
	PushURL      string `toml:"push_url"`
	Job          string `toml:"job"`
	TextfilePath string `toml:"textfile_path"`
}

// StoreConfig enables the local run ledger when Path is set.
type StoreConfig struct {
	Path string `toml:"path"` // SQLite database path (":memory:" for testing)
}

// DefaultExclude lists entry names never copied into the shared volume.
var DefaultExclude = []string{
	"latch",
	".latch",
	"nextflow",
	".nextflow",
	"work",
	"results",
	"miniconda",
	"anaconda3",
	"mambaforge",
}

// Default returns the settings of the managed platform deployment.
func Default() Config {
	return Config{
		LogLevel:  "info",
		LogFormat: "auto",
		Provision: ProvisionConfig{
			URL:        "http://nf-dispatcher-service.flyte.svc.cluster.local/provision-storage",
			StorageGiB: 100,
			TokenEnv:   "FLYTE_INTERNAL_EXECUTION_ID",
			AuthScheme: "Latch-Execution-Token",
			Timeout:    Duration{2 * time.Minute},
		},
		Workspace: WorkspaceConfig{
			SourceDir: "/root",
			SharedDir: "/nf-workdir",
			Exclude:   append([]string(nil), DefaultExclude...),
		},
		Pipeline: PipelineConfig{
			Binary:             "/root/nextflow",
			Entry:              "main.nf",
			Profile:            "docker",
			ConfigFile:         "latch.config",
			Home:               "/root/.nextflow",
			JavaOpts:           "-Xms2048M -Xmx8G -XX:ActiveProcessorCount=4",
			DisableCheckLatest: true,
		},
		LogUpload: LogUploadConfig{
			LogFile:    ".nextflow.log",
			RemoteBase: "latch:///your_log_dir/nf_nf_core_funcscan",
			FileName:   "nextflow.log",
			RunNameEnv: "FUNCSCAN_RUN_NAME",
			Timeout:    Duration{5 * time.Minute},
			S3:         S3Config{Region: "us-east-1", UseSSL: true},
		},
		Metrics: MetricsConfig{
			Job: "funcscan",
		},
	}
}

// Load returns Default() overlaid with the TOML file at path (if path is
// non-empty) and then with FUNCSCAN_* environment variables.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, &model.ConfigurationError{Field: "config", Err: err}
		}
		dec := toml.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&cfg); err != nil {
			return Config{}, &model.ConfigurationError{Field: "config", Err: fmt.Errorf("%s: %w", path, err)}
		}
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, &model.ConfigurationError{Field: "env", Err: err}
	}
	return cfg, nil
}

// ApplyEnv overrides fields from FUNCSCAN_* environment variables.
func (c *Config) ApplyEnv() error {
	var err error

	c.LogLevel = env.String("FUNCSCAN_LOG_LEVEL", c.LogLevel)
	c.LogFormat = env.String("FUNCSCAN_LOG_FORMAT", c.LogFormat)

	c.Provision.URL = env.String("FUNCSCAN_PROVISION_URL", c.Provision.URL)
	if c.Provision.StorageGiB, err = env.Int("FUNCSCAN_STORAGE_GIB", c.Provision.StorageGiB); err != nil {
		return err
	}
	if c.Provision.Timeout.Duration, err = env.Duration("FUNCSCAN_PROVISION_TIMEOUT", c.Provision.Timeout.Duration); err != nil {
		return err
	}

	c.Workspace.SourceDir = env.String("FUNCSCAN_SOURCE_DIR", c.Workspace.SourceDir)
	c.Workspace.SharedDir = env.String("FUNCSCAN_SHARED_DIR", c.Workspace.SharedDir)
	c.Workspace.Exclude = env.List("FUNCSCAN_EXCLUDE", c.Workspace.Exclude)

	c.Pipeline.Binary = env.String("FUNCSCAN_NEXTFLOW_BIN", c.Pipeline.Binary)
	c.Pipeline.Profile = env.String("FUNCSCAN_PROFILE", c.Pipeline.Profile)

	c.LogUpload.RemoteBase = env.String("FUNCSCAN_LOG_REMOTE_BASE", c.LogUpload.RemoteBase)
	c.LogUpload.RunName = env.String("FUNCSCAN_LOG_RUN_NAME", c.LogUpload.RunName)
	c.LogUpload.GatewayURL = env.String("FUNCSCAN_LATCH_GATEWAY", c.LogUpload.GatewayURL)
	c.LogUpload.S3.Endpoint = env.String("FUNCSCAN_S3_ENDPOINT", c.LogUpload.S3.Endpoint)
	c.LogUpload.S3.AccessKey = env.String("FUNCSCAN_S3_ACCESS_KEY", c.LogUpload.S3.AccessKey)
	c.LogUpload.S3.SecretKey = env.String("FUNCSCAN_S3_SECRET_KEY", c.LogUpload.S3.SecretKey)
	c.LogUpload.S3.Region = env.String("FUNCSCAN_S3_REGION", c.LogUpload.S3.Region)
	if c.LogUpload.S3.UseSSL, err = env.Bool("FUNCSCAN_S3_USE_SSL", c.LogUpload.S3.UseSSL); err != nil {
		return err
	}

	c.Metrics.PushURL = env.String("FUNCSCAN_METRICS_PUSH_URL", c.Metrics.PushURL)
	c.Metrics.TextfilePath = env.String("FUNCSCAN_METRICS_TEXTFILE", c.Metrics.TextfilePath)

	c.Store.Path = env.String("FUNCSCAN_DB", c.Store.Path)
	return nil
}

// Validate reports settings the launcher cannot run without.
func (c Config) Validate() error {
	var errs []error
	if c.Provision.URL == "" {
		errs = append(errs, errors.New("provision.url is empty"))
	}
	if c.Provision.StorageGiB <= 0 {
		errs = append(errs, fmt.Errorf("provision.storage_gib must be positive, got %d", c.Provision.StorageGiB))
	}
	if c.Provision.TokenEnv == "" {
		errs = append(errs, errors.New("provision.token_env is empty"))
	}
	if !filepath.IsAbs(c.Workspace.SharedDir) {
		errs = append(errs, fmt.Errorf("workspace.shared_dir must be absolute, got %q", c.Workspace.SharedDir))
	}
	if c.Workspace.SourceDir == "" {
		errs = append(errs, errors.New("workspace.source_dir is empty"))
	}
	if c.Pipeline.Binary == "" {
		errs = append(errs, errors.New("pipeline.binary is empty"))
	}
	if c.Pipeline.Entry == "" {
		errs = append(errs, errors.New("pipeline.entry is empty"))
	}
	if c.LogUpload.RemoteBase != "" && !strings.Contains(c.LogUpload.RemoteBase, "://") {
		errs = append(errs, fmt.Errorf("log_upload.remote_base must be a URL, got %q", c.LogUpload.RemoteBase))
	}
	if len(errs) > 0 {
		return &model.ConfigurationError{Field: "config", Err: errors.Join(errs...)}
	}
	return nil
}

// Duration is a time.Duration written as a Go duration string ("90s", "5m").
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}
