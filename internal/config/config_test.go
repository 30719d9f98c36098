package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/me/funcscan/pkg/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "http://nf-dispatcher-service.flyte.svc.cluster.local/provision-storage", cfg.Provision.URL)
	assert.Equal(t, 100, cfg.Provision.StorageGiB)
	assert.Equal(t, "FLYTE_INTERNAL_EXECUTION_ID", cfg.Provision.TokenEnv)
	assert.Equal(t, "/root", cfg.Workspace.SourceDir)
	assert.Equal(t, "/nf-workdir", cfg.Workspace.SharedDir)
	assert.Equal(t, DefaultExclude, cfg.Workspace.Exclude)
	assert.Equal(t, "/root/nextflow", cfg.Pipeline.Binary)
	assert.Equal(t, "latch:///your_log_dir/nf_nf_core_funcscan", cfg.LogUpload.RemoteBase)
	assert.NoError(t, cfg.Validate())

	// the exclude list is a copy
	cfg.Workspace.Exclude[0] = "changed"
	assert.Equal(t, "latch", DefaultExclude[0])
}

func TestLoad_TOMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funcscan.toml")
	doc := `
log_level = "debug"

[provision]
url = "http://localhost:9000/provision-storage"
storage_gib = 250
timeout = "30s"

[workspace]
exclude = ["work", ".git"]

[log_upload]
remote_base = "s3://logs/funcscan"

[log_upload.s3]
endpoint = "minio:9000"
use_ssl = false
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "http://localhost:9000/provision-storage", cfg.Provision.URL)
	assert.Equal(t, 250, cfg.Provision.StorageGiB)
	assert.Equal(t, 30*time.Second, cfg.Provision.Timeout.Duration)
	assert.Equal(t, []string{"work", ".git"}, cfg.Workspace.Exclude)
	assert.Equal(t, "s3://logs/funcscan", cfg.LogUpload.RemoteBase)
	assert.Equal(t, "minio:9000", cfg.LogUpload.S3.Endpoint)
	assert.False(t, cfg.LogUpload.S3.UseSSL)
	// untouched sections keep their defaults
	assert.Equal(t, "/root/nextflow", cfg.Pipeline.Binary)
}

func TestLoad_UnknownField(t *testing.T) {
	path := filepath.Join(t.TempDir(), "funcscan.toml")
	require.NoError(t, os.WriteFile(path, []byte("[provision]\nnope = 1\n"), 0o644))

	_, err := Load(path)
	var cfgErr *model.ConfigurationError
	require.True(t, errors.As(err, &cfgErr), "got %v", err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("FUNCSCAN_PROVISION_URL", "http://dispatcher.test/provision")
	t.Setenv("FUNCSCAN_STORAGE_GIB", "20")
	t.Setenv("FUNCSCAN_SHARED_DIR", "/tmp/shared")
	t.Setenv("FUNCSCAN_EXCLUDE", "work,results")
	t.Setenv("FUNCSCAN_S3_USE_SSL", "false")
	t.Setenv("FUNCSCAN_DB", "/var/lib/funcscan/runs.db")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://dispatcher.test/provision", cfg.Provision.URL)
	assert.Equal(t, 20, cfg.Provision.StorageGiB)
	assert.Equal(t, "/tmp/shared", cfg.Workspace.SharedDir)
	assert.Equal(t, []string{"work", "results"}, cfg.Workspace.Exclude)
	assert.False(t, cfg.LogUpload.S3.UseSSL)
	assert.Equal(t, "/var/lib/funcscan/runs.db", cfg.Store.Path)
}

func TestLoad_BadEnv(t *testing.T) {
	t.Setenv("FUNCSCAN_STORAGE_GIB", "lots")

	_, err := Load("")
	var cfgErr *model.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "env", cfgErr.Field)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Provision.StorageGiB = 0
	cfg.Workspace.SharedDir = "relative/dir"
	cfg.LogUpload.RemoteBase = "not-a-url"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage_gib")
	assert.Contains(t, err.Error(), "shared_dir")
	assert.Contains(t, err.Error(), "remote_base")
}

func TestDuration_Text(t *testing.T) {
	var d Duration
	require.NoError(t, d.UnmarshalText([]byte("1m30s")))
	assert.Equal(t, 90*time.Second, d.Duration)

	out, err := d.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "1m30s", string(out))

	assert.Error(t, d.UnmarshalText([]byte("soon")))
}
