package util

import (
	"math"
	"strconv"
	"strings"
)

// MustParseUint returns 0 when s is not an unsigned integer.
func MustParseUint(s string) uint {
	id, _ := strconv.ParseUint(s, 10, 32)
	return uint(id)
}

func Round2(f float64) float64 {
	return math.Round(f*100) / 100
}

// NormalizeCode upper-cases and trims a test code as typed by a student.
func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// StringPtr returns nil for blank strings.
func StringPtr(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
