package logupload

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseLocation(t *testing.T) {
	tests := []struct {
		in         string
		wantScheme string
		wantPath   string
	}{
		{"latch:///your_log_dir/run/nextflow.log", "latch", "/your_log_dir/run/nextflow.log"},
		{"file:///tmp/logs/x", "file", "/tmp/logs/x"},
		{"s3://bucket/key/x.log", "s3", "bucket/key/x.log"},
		{"HTTPS://example.org/put", "https", "example.org/put"},
		{"/plain/path", "", "/plain/path"},
	}
	for _, tt := range tests {
		scheme, path := ParseLocation(tt.in)
		assert.Equal(t, tt.wantScheme, scheme, tt.in)
		assert.Equal(t, tt.wantPath, path, tt.in)
	}
}

func TestJoinLocation(t *testing.T) {
	tests := []struct {
		base  string
		elems []string
		want  string
	}{
		{"latch:///your_log_dir/nf_nf_core_funcscan", []string{"run-7", "nextflow.log"}, "latch:///your_log_dir/nf_nf_core_funcscan/run-7/nextflow.log"},
		{"latch:///your_log_dir/nf_nf_core_funcscan/", []string{"/run-7/", "nextflow.log"}, "latch:///your_log_dir/nf_nf_core_funcscan/run-7/nextflow.log"},
		{"latch:///", []string{"a", "", "b"}, "latch:///a/b"},
		{"s3://bucket", []string{"logs", "x.log"}, "s3://bucket/logs/x.log"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, JoinLocation(tt.base, tt.elems...))
	}
}
