package aamodel

import (
	"math"
	"strconv"
	"strings"
)

// FormatFloat formats a value the way the model files are usually
// written: the shortest representation which reads back to the same
// float, integral values keep ".0", very small and very large values
// use exponent notation (e.g. 1e-05).
func FormatFloat(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	case v == 0:
		if math.Signbit(v) {
			return "-0.0"
		}
		return "0.0"
	}
	if a := math.Abs(v); a < 1e-4 || a >= 1e16 {
		return strconv.FormatFloat(v, 'e', -1, 64)
	}
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}

// FormatRounded rounds a value to a number of decimal digits and
// formats it with FormatFloat. Ties are resolved on the exact binary
// value, so 2.675 becomes 2.67.
func FormatRounded(v float64, digits int) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return FormatFloat(v)
	}
	r, err := strconv.ParseFloat(strconv.FormatFloat(v, 'f', digits, 64), 64)
	if err != nil {
		// cannot happen for finite values
		panic(err)
	}
	return FormatFloat(r)
}

// JoinFloats formats values with f and joins them with sep.
func JoinFloats(vals []float64, sep string, f func(float64) string) string {
	s := make([]string, len(vals))
	for i, v := range vals {
		s[i] = f(v)
	}
	return strings.Join(s, sep)
}

// Rounder returns a formatting function rounding to digits.
func Rounder(digits int) func(float64) string {
	return func(v float64) string {
		return FormatRounded(v, digits)
	}
}
