package utils

import (
	"math"
	"strconv"
	"strings"
)

// ParseAmount coerces a loosely-typed form value into a non-negative
// amount. Empty, unparsable or negative input becomes 0; a quote must stay
// producible from incomplete data, so this never errors.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

// ParseCount coerces a pax field the same way, to a non-negative int.
func ParseCount(s string) int {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0
	}
	return n
}
