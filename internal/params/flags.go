package params

import (
	"math"
	"strconv"
	"strings"
)

// Flags translates cfg into the pipeline's command-line flag tokens.
//
// Absent parameters and false booleans contribute nothing. A true boolean
// contributes "--name". Every other present value contributes "--name" and
// its rendering. Tokens follow the field order of Config, so the result is
// fully determined by cfg.
func Flags(cfg *Config) []string {
	var tokens []string
	for _, p := range table {
		v, ok := p.Value(cfg)
		if !ok {
			continue
		}
		if p.Kind == KindBool {
			if v == "true" {
				tokens = append(tokens, "--"+p.Name)
			}
			continue
		}
		tokens = append(tokens, "--"+p.Name, v)
	}
	return tokens
}

// formatFloat renders v with the fewest digits that round-trip. Decimal
// exponents below -4 or from 16 up switch to scientific notation with at
// least two exponent digits (1e-06, 1e+16); everything else is fixed (0.4, -1).
func formatFloat(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'g', -1, 64)
	}
	sci := strconv.FormatFloat(v, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.LastIndexByte(sci, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
