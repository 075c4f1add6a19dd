// Package format renders game quantities for display.
package format

import (
	"math"
	"strconv"
)

// Number renders v as "1.5M", "2.5K" or a whole number below one thousand.
func Number(v float64) string {
	switch {
	case v >= 1_000_000:
		return strconv.FormatFloat(v/1_000_000, 'f', 1, 64) + "M"
	case v >= 1_000:
		return strconv.FormatFloat(v/1_000, 'f', 1, 64) + "K"
	default:
		return strconv.FormatFloat(math.Floor(v), 'f', 0, 64)
	}
}

// Rate renders a per-second accrual line, or "" when nothing accrues.
func Rate(v float64) string {
	if v <= 0 {
		return ""
	}
	return "+" + Number(v) + "/sec"
}

// Contribution renders an upgrade's contribution without trailing zeros.
func Contribution(v float64) string {
	return "+" + strconv.FormatFloat(v, 'f', -1, 64) + "/sec"
}
