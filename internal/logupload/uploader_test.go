package logupload

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/me/funcscan/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeLog(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, ".nextflow.log")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileUploader(t *testing.T) {
	src := writeLog(t, t.TempDir(), "log body")
	dest := filepath.Join(t.TempDir(), "logs", "run-1", "nextflow.log")

	require.NoError(t, FileUploader{}.Upload(context.Background(), src, "file://"+dest))

	got, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "log body", string(got))
}

func TestHTTPUploader(t *testing.T) {
	var gotMethod, gotAuth, gotBody string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotAuth = r.Header.Get("Authorization")
		b, _ := io.ReadAll(r.Body)
		gotBody = string(b)
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	src := writeLog(t, t.TempDir(), "engine log")
	u := NewHTTPUploader(5*time.Second, "Latch-Execution-Token abc")

	require.NoError(t, u.Upload(context.Background(), src, srv.URL+"/logs/nextflow.log"))
	assert.Equal(t, http.MethodPut, gotMethod)
	assert.Equal(t, "Latch-Execution-Token abc", gotAuth)
	assert.Equal(t, "engine log", gotBody)
}

func TestHTTPUploader_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "denied", http.StatusForbidden)
	}))
	defer srv.Close()

	src := writeLog(t, t.TempDir(), "x")
	err := NewHTTPUploader(time.Second, "").Upload(context.Background(), src, srv.URL)

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr), "got %v", err)
	assert.Equal(t, http.StatusForbidden, httpErr.StatusCode)
	assert.Equal(t, "denied", httpErr.Body)
}

func TestLatchUploader_ResolvesThroughGateway(t *testing.T) {
	var gotPath string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
	}))
	defer srv.Close()

	src := writeLog(t, t.TempDir(), "x")
	u := NewLatchUploader(srv.URL+"/ldata/", NewHTTPUploader(time.Second, ""))

	require.NoError(t, u.Upload(context.Background(), src, "latch:///your_log_dir/nf_nf_core_funcscan/run-1/nextflow.log"))
	assert.Equal(t, "/ldata/your_log_dir/nf_nf_core_funcscan/run-1/nextflow.log", gotPath)
}

func TestCompositeUploader_Routing(t *testing.T) {
	src := writeLog(t, t.TempDir(), "x")
	dest := filepath.Join(t.TempDir(), "out.log")

	u := NewCompositeUploader(map[string]Uploader{SchemeFile: FileUploader{}})

	require.NoError(t, u.Upload(context.Background(), src, dest), "bare path routes to file")
	assert.FileExists(t, dest)

	err := u.Upload(context.Background(), src, "gs://bucket/x")
	assert.ErrorIs(t, err, ErrUnsupportedScheme)
}

func TestCompositeUploader_Supports(t *testing.T) {
	u := NewCompositeUploader(map[string]Uploader{SchemeFile: FileUploader{}})

	assert.True(t, u.Supports("/tmp/out.log"))
	assert.True(t, u.Supports("file:///tmp/out.log"))
	assert.False(t, u.Supports("latch:///logs/run/nextflow.log"))
}

func TestNewUploader_Registration(t *testing.T) {
	cfg := config.Default().LogUpload

	u, err := NewUploader(cfg, "")
	require.NoError(t, err)
	assert.Contains(t, u.handlers, SchemeFile)
	assert.Contains(t, u.handlers, SchemeHTTPS)
	assert.NotContains(t, u.handlers, SchemeS3)
	assert.NotContains(t, u.handlers, SchemeLatch)

	cfg.GatewayURL = "http://gateway.test"
	cfg.S3 = config.S3Config{Endpoint: "localhost:9000", AccessKey: "k", SecretKey: "s", Region: "us-east-1"}
	u, err = NewUploader(cfg, "")
	require.NoError(t, err)
	assert.Contains(t, u.handlers, SchemeS3)
	assert.Contains(t, u.handlers, SchemeLatch)
}

func TestNewS3Uploader_RequiresEndpoint(t *testing.T) {
	_, err := NewS3Uploader(config.S3Config{})
	assert.Error(t, err)
}

func TestSplitBucketKey(t *testing.T) {
	bucket, key, err := splitBucketKey("s3://logs/funcscan/run-1/nextflow.log")
	require.NoError(t, err)
	assert.Equal(t, "logs", bucket)
	assert.Equal(t, "funcscan/run-1/nextflow.log", key)

	_, _, err = splitBucketKey("s3://only-bucket")
	assert.Error(t, err)
}
