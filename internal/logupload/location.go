package logupload

import "strings"

// Supported destination schemes.
const (
	SchemeFile  = "file"
	SchemeS3    = "s3"
	SchemeHTTP  = "http"
	SchemeHTTPS = "https"
	SchemeLatch = "latch"
)

// ParseLocation extracts the scheme from a destination URI.
// Returns ("latch", "/logs/run/nextflow.log") for "latch:///logs/run/nextflow.log".
// Returns ("", raw) for bare strings with no scheme.
func ParseLocation(location string) (scheme, path string) {
	if i := strings.Index(location, "://"); i > 0 {
		scheme = strings.ToLower(location[:i])
		path = location[i+3:]
		// Normalize: latch:///path and file:///path → /path
		if scheme == SchemeLatch || scheme == SchemeFile {
			path = "/" + strings.TrimLeft(path, "/")
		}
		return scheme, path
	}
	return "", location
}

// JoinLocation appends path elements to a base URI with exactly one slash
// between them. Empty elements are dropped.
func JoinLocation(base string, elems ...string) string {
	out := base
	for _, e := range elems {
		e = strings.Trim(e, "/")
		if e == "" {
			continue
		}
		if !strings.HasSuffix(out, "/") {
			out += "/"
		}
		out += e
	}
	return out
}
