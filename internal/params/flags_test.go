package params

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlags_RequiredOnly(t *testing.T) {
	cfg := &Config{Input: "latch:///samplesheet.csv", Outdir: "latch:///results"}

	assert.Equal(t, []string{
		"--input", "latch:///samplesheet.csv",
		"--outdir", "latch:///results",
	}, Flags(cfg))
}

func TestFlags_Booleans(t *testing.T) {
	tests := []struct {
		name  string
		value *bool
		want  []string
	}{
		{"absent", nil, nil},
		{"false", ptr(false), nil},
		{"true", ptr(true), []string{"--save_annotations"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{SaveAnnotations: tt.value}
			assert.Equal(t, tt.want, Flags(cfg))
		})
	}
}

func TestFlags_ValuedParameters(t *testing.T) {
	cfg := &Config{
		Email:                       ptr(""),
		AnnotationBaktaMincontiglen: ptr(0),
		AmpAmpcombiCutoff:           ptr(0.4),
		BgcAntismashTaxon:           ptr("fungi"),
	}

	assert.Equal(t, []string{
		"--email", "",
		"--annotation_bakta_mincontiglen", "0",
		"--amp_ampcombi_cutoff", "0.4",
		"--bgc_antismash_taxon", "fungi",
	}, Flags(cfg))
}

func TestFlags_Deterministic(t *testing.T) {
	cfg := Defaults()
	cfg.Input = "in.csv"
	cfg.Outdir = "out"
	cfg.RunBgcScreening = ptr(true)

	first := Flags(cfg)
	for i := 0; i < 10; i++ {
		require.Equal(t, first, Flags(cfg))
	}
}

func TestFlags_DefaultsFollowTableOrder(t *testing.T) {
	cfg := Defaults()
	cfg.Input = "in.csv"
	cfg.Outdir = "out"
	tokens := Flags(cfg)

	position := make(map[string]int)
	for i, p := range Table() {
		position["--"+p.Name] = i
	}

	last := -1
	for _, tok := range tokens {
		pos, isFlag := position[tok]
		if !isFlag {
			continue
		}
		assert.Greater(t, pos, last, "flag %s out of order", tok)
		last = pos
	}

	assert.Contains(t, tokens, "--arg_rgi_includeloose")
	assert.Contains(t, tokens, "--arg_rgi_excludenudge")
	assert.NotContains(t, tokens, "--save_annotations")
	assert.NotContains(t, tokens, "--arg_fargene_score")
}

func TestFlags_DefaultFloatRendering(t *testing.T) {
	cfg := Defaults()
	tokens := Flags(cfg)

	valueOf := func(name string) string {
		for i, tok := range tokens {
			if tok == "--"+name && i+1 < len(tokens) {
				return tokens[i+1]
			}
		}
		t.Fatalf("flag --%s not found", name)
		return ""
	}

	assert.Equal(t, "1e-06", valueOf("annotation_prokka_evalue"))
	assert.Equal(t, "1e-10", valueOf("arg_deeparg_alignmentevalue"))
	assert.Equal(t, "1e-09", valueOf("bgc_gecco_pfilter"))
	assert.Equal(t, "-1", valueOf("arg_amrfinderplus_identmin"))
	assert.Equal(t, "0.8", valueOf("arg_deeparg_minprob"))
	assert.Equal(t, "11", valueOf("annotation_prokka_gcode"))
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{1e-06, "1e-06"},
		{1e-10, "1e-10"},
		{0.4, "0.4"},
		{0.5, "0.5"},
		{-1, "-1"},
		{0, "0"},
		{1000, "1000"},
		{0.0001, "0.0001"},
		{0.00001, "1e-05"},
		{2.5e-7, "2.5e-07"},
		{1e16, "1e+16"},
		{123456789, "123456789"},
		{math.Inf(1), "+Inf"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloat(tt.in), "formatFloat(%v)", tt.in)
	}
}

func TestFlags_FloatKeepsUserText(t *testing.T) {
	cfg := &Config{Input: "in.csv", Outdir: "out"}
	require.NoError(t, Set(cfg, "arg_fargene_score", "0.50"))
	require.NoError(t, Set(cfg, "amp_ampcombi_cutoff", "1.0"))

	assert.Equal(t, []string{
		"--input", "in.csv",
		"--outdir", "out",
		"--amp_ampcombi_cutoff", "1.0",
		"--arg_fargene_score", "0.50",
	}, Flags(cfg))
}

func TestFlags_FloatTextFromParamsFile(t *testing.T) {
	cfg, err := Parse([]byte("input: in.csv\noutdir: out\narg_fargene_score: 0.50\nbgc_gecco_pfilter: 1E-9\n"))
	require.NoError(t, err)

	v, ok := mustLookup(t, "arg_fargene_score").Value(cfg)
	require.True(t, ok)
	assert.Equal(t, "0.50", v)

	v, _ = mustLookup(t, "bgc_gecco_pfilter").Value(cfg)
	assert.Equal(t, "1E-9", v)
}

func TestFlags_FloatTextDroppedWhenValueChanges(t *testing.T) {
	cfg := &Config{}
	require.NoError(t, Set(cfg, "arg_fargene_score", "0.50"))
	cfg.ArgFargeneScore = ptr(0.75)

	v, _ := mustLookup(t, "arg_fargene_score").Value(cfg)
	assert.Equal(t, "0.75", v)

	require.NoError(t, Unset(cfg, "arg_fargene_score"))
	_, ok := mustLookup(t, "arg_fargene_score").Value(cfg)
	assert.False(t, ok)
}

func mustLookup(t *testing.T, name string) Param {
	t.Helper()
	p, ok := Lookup(name)
	require.True(t, ok, "unknown parameter %s", name)
	return p
}
