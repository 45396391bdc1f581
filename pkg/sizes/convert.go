package sizes

import (
	"strconv"
	"strings"
)

// units are the binary magnitudes Convert steps through, 1024 apart.
var units = []string{"bytes", "kB", "MB", "GB", "TB", "PB", "EB", "ZB", "YB"}

// Convert formats a byte count for display.
//
// The value is divided by 1024 while at least one whole unit remains, up to
// YB. Undivided counts print as integers ("10 bytes", "1 byte"); divided
// values are rounded to two decimals and print with at least one fractional
// digit ("1.0 kB", "1.5 kB", "1.95 kB"). Negative counts are treated as 0.
func Convert(size int64) string {
	if size < 0 {
		size = 0
	}
	if size < 1024 {
		if size == 1 {
			return "1 byte"
		}
		return strconv.FormatInt(size, 10) + " bytes"
	}

	v := float64(size)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	return formatValue(v) + " " + units[i]
}

// formatValue rounds v to two decimals and prints the shortest form that
// keeps at least one digit after the point.
func formatValue(v float64) string {
	rounded, _ := strconv.ParseFloat(strconv.FormatFloat(v, 'f', 2, 64), 64)
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}
