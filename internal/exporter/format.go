package exporter

import (
	"strconv"
)

// formatFloat formats a float64 value for CSV output using the shortest
// decimal form that parses back to the identical value, so read-back
// checks can compare exactly. Plain notation, never scientific.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}
