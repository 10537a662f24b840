// Package formatting provides human-readable formatting and parsing for
// common value types such as byte sizes.
package formatting

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

var byteUnits = []string{"B", "KB", "MB", "GB", "TB", "PB"}

// FormatBytes renders a byte count using base-1024 units. Negative
// precision is clamped to zero.
func FormatBytes(n int64, precision int) string {
	if n <= 0 {
		return "0 B"
	}

	if precision < 0 {
		precision = 0
	}

	exp := int(math.Floor(math.Log(float64(n)) / math.Log(1024)))
	if exp >= len(byteUnits) {
		exp = len(byteUnits) - 1
	}

	size := float64(n) / math.Pow(1024, float64(exp))

	return strconv.FormatFloat(size, 'f', precision, 64) + " " + byteUnits[exp]
}

// ParseBytes parses a byte size string such as "50MB" or "1.5 GB" into a
// byte count. Units are base-1024 and case-insensitive; a bare number is
// treated as bytes.
func ParseBytes(s string) (int64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, fmt.Errorf("empty byte size")
	}

	upper := strings.ToUpper(s)
	exp := 0
	number := upper

	for i := len(byteUnits) - 1; i >= 0; i-- {
		if strings.HasSuffix(upper, byteUnits[i]) {
			exp = i
			number = strings.TrimSpace(strings.TrimSuffix(upper, byteUnits[i]))
			break
		}
	}

	value, err := strconv.ParseFloat(number, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid byte size %q: %w", s, err)
	}

	if value < 0 {
		return 0, fmt.Errorf("negative byte size %q", s)
	}

	return int64(value * math.Pow(1024, float64(exp))), nil
}
