// Package util provides shared formatting helpers used across splitter.
package util

import "strconv"

// IntToString converts an integer to its string representation without
// going through fmt. The TUI calls it for every panel on every frame.
func IntToString(n int) string {
	return strconv.Itoa(n)
}

// FormatNumber formats an integer with thousands separators (commas).
// For example, 1234567 becomes "1,234,567".
func FormatNumber(n int) string {
	s := IntToString(n)
	sign := ""
	if n < 0 {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}

	out := make([]byte, 0, len(s)+len(s)/3)
	for i := range len(s) {
		if i > 0 && (len(s)-i)%3 == 0 {
			out = append(out, ',')
		}
		out = append(out, s[i])
	}
	return sign + string(out)
}

// Cells formats a length in terminal cells, e.g. "1 cell" or "1,024 cells".
func Cells(n int) string {
	if n == 1 || n == -1 {
		return IntToString(n) + " cell"
	}
	return FormatNumber(n) + " cells"
}
