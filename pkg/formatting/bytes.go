// Package formatting parses and formats human-readable byte sizes.
package formatting

import (
	"fmt"
	"math"
	"regexp"
	"slices"
	"strconv"
	"strings"
)

var units = []string{"B", "KB", "MB", "GB", "TB", "PB"}

var bytesPattern = regexp.MustCompile(`^(\d+\.?\d*)\s*([A-Za-z]*)$`)

// FormatBytes converts a byte count to a human-readable string using base-1024 units.
func FormatBytes(n int64, precision int) string {
	if n <= 0 {
		return "0 B"
	}

	f := float64(n)
	i := min(int(math.Floor(math.Log(f)/math.Log(1024))), len(units)-1)
	size := f / math.Pow(1024, float64(i))

	return strconv.FormatFloat(size, 'f', max(precision, 0), 64) + " " + units[i]
}

// ParseBytes parses a byte size such as "64KB" or "1.5 MB" (base-1024,
// case-insensitive). A bare number is a byte count.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size string")
	}

	matches := bytesPattern.FindStringSubmatch(s)
	if matches == nil {
		return 0, fmt.Errorf("invalid byte size: %q", s)
	}

	value, err := strconv.ParseFloat(matches[1], 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size number: %w", err)
	}

	unit := strings.ToUpper(matches[2])
	if unit == "" {
		return int64(value), nil
	}

	idx := slices.Index(units, unit)
	if idx == -1 {
		return 0, fmt.Errorf("unknown byte size unit: %q", unit)
	}

	return int64(value * math.Pow(1024, float64(idx))), nil
}
