package launcher

import (
	"path/filepath"
	"strconv"
	"strings"

	"github.com/me/funcscan/internal/config"
)

// Command builds the engine invocation: the fixed run prefix followed by
// the parameter flags.
func Command(p config.PipelineConfig, sharedDir string, flags []string) []string {
	cmd := []string{
		p.Binary,
		"run",
		filepath.Join(sharedDir, p.Entry),
		"-work-dir",
		sharedDir,
	}
	if p.Profile != "" {
		cmd = append(cmd, "-profile", p.Profile)
	}
	if p.ConfigFile != "" {
		cmd = append(cmd, "-c", p.ConfigFile)
	}
	return append(cmd, flags...)
}

// EnvVar is a single environment override.
type EnvVar struct {
	Key   string
	Value string
}

func (e EnvVar) String() string {
	return e.Key + "=" + e.Value
}

// Overrides returns the engine settings layered over the ambient environment.
func Overrides(p config.PipelineConfig, storageHandle string) []EnvVar {
	return []EnvVar{
		{"NXF_HOME", p.Home},
		{"NXF_OPTS", p.JavaOpts},
		{"K8S_STORAGE_CLAIM_NAME", storageHandle},
		{"NXF_DISABLE_CHECK_LATEST", strconv.FormatBool(p.DisableCheckLatest)},
	}
}

// Environment layers overrides over ambient KEY=VALUE entries. Ambient
// order is kept, colliding keys take the override value in place, and new
// keys are appended in override order. Nothing is removed. When overrides
// repeat a key the last one wins.
func Environment(ambient []string, overrides []EnvVar) []string {
	last := make(map[string]int, len(overrides))
	for i, o := range overrides {
		last[o.Key] = i
	}

	out := make([]string, 0, len(ambient)+len(overrides))
	applied := make(map[string]bool, len(overrides))
	for _, kv := range ambient {
		key, _, _ := strings.Cut(kv, "=")
		if i, ok := last[key]; ok {
			out = append(out, overrides[i].String())
			applied[key] = true
			continue
		}
		out = append(out, kv)
	}
	for i, o := range overrides {
		if applied[o.Key] || last[o.Key] != i {
			continue
		}
		out = append(out, o.String())
	}
	return out
}
