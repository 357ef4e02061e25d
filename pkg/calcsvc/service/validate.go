package service

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

// Parameter names read from the query string or form body.
const (
	ParamA = "A"
	ParamB = "B"
)

// decimalPattern is the accepted number syntax: optional sign, digits with an
// optional fraction (or a bare fraction), optional decimal exponent.
var decimalPattern = regexp.MustCompile(`^[+-]?(\d+\.?\d*|\.\d+)([eE][+-]?\d+)?$`)

// Validate checks the raw A and B parameters and returns them as numbers.
// Presence is checked for both parameters before either is parsed, and both
// are parsed before either sign is checked, so the reported error is always
// the earliest failing stage.
func Validate(a, b string) (x float64, y float64, err error) {
	if a == "" || b == "" {
		return 0, 0, ErrMissingParameter
	}

	if x, err = parseDecimal(a); err != nil {
		return 0, 0, err
	}
	if y, err = parseDecimal(b); err != nil {
		return 0, 0, err
	}

	if x <= 0 || y <= 0 {
		return 0, 0, ErrNonPositiveParameter
	}
	return x, y, nil
}

func parseDecimal(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !decimalPattern.MatchString(s) {
		return 0, ErrNonNumericParameter
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrNonNumericParameter
	}
	return v, nil
}
