package logupload

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/me/funcscan/internal/config"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// ErrUnsupportedScheme is returned when no uploader handles a destination.
var ErrUnsupportedScheme = errors.New("unsupported destination scheme")

// Uploader copies a local file to a destination URI.
type Uploader interface {
	Upload(ctx context.Context, srcPath, destination string) error
}

// CompositeUploader routes uploads to scheme-specific handlers.
type CompositeUploader struct {
	handlers map[string]Uploader
}

// NewCompositeUploader creates a CompositeUploader with scheme handlers.
func NewCompositeUploader(handlers map[string]Uploader) *CompositeUploader {
	if handlers == nil {
		handlers = make(map[string]Uploader)
	}
	return &CompositeUploader{handlers: handlers}
}

// Register adds or replaces the handler for scheme.
func (u *CompositeUploader) Register(scheme string, h Uploader) {
	u.handlers[scheme] = h
}

// Supports reports whether a handler is registered for destination's scheme.
func (u *CompositeUploader) Supports(destination string) bool {
	scheme, _ := ParseLocation(destination)
	if scheme == "" {
		scheme = SchemeFile
	}
	_, ok := u.handlers[scheme]
	return ok
}

// Upload routes to the handler registered for the destination's scheme.
// Bare paths are treated as file destinations.
func (u *CompositeUploader) Upload(ctx context.Context, srcPath, destination string) error {
	scheme, _ := ParseLocation(destination)
	if scheme == "" {
		scheme = SchemeFile
	}
	if h, ok := u.handlers[scheme]; ok {
		return h.Upload(ctx, srcPath, destination)
	}
	return fmt.Errorf("%w %q", ErrUnsupportedScheme, scheme)
}

// FileUploader copies to a local or mounted path.
type FileUploader struct{}

func (FileUploader) Upload(_ context.Context, srcPath, destination string) error {
	_, path := ParseLocation(destination)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("file upload: mkdir: %w", err)
	}

	in, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("file upload: %w", err)
	}
	defer in.Close()

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("file upload: %w", err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("file upload: copy: %w", err)
	}
	return out.Close()
}

// HTTPUploader PUTs the file body to an http(s) URL.
type HTTPUploader struct {
	client        *http.Client
	authorization string
}

// NewHTTPUploader creates an uploader that sends authorization (if non-empty)
// as the Authorization header.
func NewHTTPUploader(timeout time.Duration, authorization string) *HTTPUploader {
	return &HTTPUploader{
		client:        &http.Client{Timeout: timeout},
		authorization: authorization,
	}
}

func (u *HTTPUploader) Upload(ctx context.Context, srcPath, destination string) error {
	file, err := os.Open(srcPath)
	if err != nil {
		return fmt.Errorf("open file: %w", err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, destination, file)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.ContentLength = stat.Size()
	req.Header.Set("Content-Type", "text/plain")
	if u.authorization != "" {
		req.Header.Set("Authorization", u.authorization)
	}

	resp, err := u.client.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return &HTTPError{StatusCode: resp.StatusCode, Body: strings.TrimSpace(string(body))}
	}
	return nil
}

// HTTPError is a non-2xx response to an upload.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	if e.Body != "" {
		return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Body)
	}
	return fmt.Sprintf("HTTP %d", e.StatusCode)
}

// LatchUploader maps latch:///path destinations onto an HTTP gateway
// (gateway + path) and uploads there.
type LatchUploader struct {
	gateway string
	http    *HTTPUploader
}

// NewLatchUploader creates a LatchUploader for the given gateway base URL.
func NewLatchUploader(gateway string, h *HTTPUploader) *LatchUploader {
	return &LatchUploader{gateway: strings.TrimRight(gateway, "/"), http: h}
}

func (u *LatchUploader) Upload(ctx context.Context, srcPath, destination string) error {
	return u.http.Upload(ctx, srcPath, u.resolve(destination))
}

func (u *LatchUploader) resolve(destination string) string {
	_, path := ParseLocation(destination)
	return u.gateway + path
}

// S3Uploader puts objects into an S3-compatible store via minio-go.
type S3Uploader struct {
	client *minio.Client
}

// NewS3Uploader creates a MinIO client from cfg.
func NewS3Uploader(cfg config.S3Config) (*S3Uploader, error) {
	if cfg.Endpoint == "" {
		return nil, errors.New("s3 upload: endpoint is required")
	}
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:     credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure:    cfg.UseSSL,
		Region:    cfg.Region,
		Transport: newTransport(),
	})
	if err != nil {
		return nil, fmt.Errorf("s3 upload: %w", err)
	}
	return &S3Uploader{client: client}, nil
}

func (u *S3Uploader) Upload(ctx context.Context, srcPath, destination string) error {
	bucket, key, err := splitBucketKey(destination)
	if err != nil {
		return err
	}
	_, err = u.client.FPutObject(ctx, bucket, key, srcPath, minio.PutObjectOptions{
		ContentType: "text/plain",
	})
	if err != nil {
		return fmt.Errorf("s3 upload %s/%s: %w", bucket, key, err)
	}
	return nil
}

// splitBucketKey turns s3://bucket/a/b into ("bucket", "a/b").
func splitBucketKey(destination string) (bucket, key string, err error) {
	_, path := ParseLocation(destination)
	bucket, key, _ = strings.Cut(strings.TrimLeft(path, "/"), "/")
	if bucket == "" || key == "" {
		return "", "", fmt.Errorf("s3 upload: %q has no bucket or key", destination)
	}
	return bucket, key, nil
}

func newTransport() *http.Transport {
	dialer := &net.Dialer{
		Timeout:   5 * time.Second,
		KeepAlive: 30 * time.Second,
	}
	return &http.Transport{
		Proxy:                 http.ProxyFromEnvironment,
		DialContext:           dialer.DialContext,
		ForceAttemptHTTP2:     true,
		MaxIdleConns:          10,
		IdleConnTimeout:       90 * time.Second,
		TLSHandshakeTimeout:   5 * time.Second,
		ExpectContinueTimeout: 1 * time.Second,
	}
}

// NewUploader builds the composite uploader for cfg. file, http and https
// are always available; s3 needs an endpoint and latch needs a gateway.
// authorization is sent with http, https and latch uploads.
func NewUploader(cfg config.LogUploadConfig, authorization string) (*CompositeUploader, error) {
	h := NewHTTPUploader(cfg.Timeout.Duration, authorization)
	u := NewCompositeUploader(map[string]Uploader{
		SchemeFile:  FileUploader{},
		SchemeHTTP:  h,
		SchemeHTTPS: h,
	})
	if cfg.S3.Endpoint != "" {
		s3, err := NewS3Uploader(cfg.S3)
		if err != nil {
			return nil, err
		}
		u.Register(SchemeS3, s3)
	}
	if cfg.GatewayURL != "" {
		u.Register(SchemeLatch, NewLatchUploader(cfg.GatewayURL, h))
	}
	return u, nil
}
