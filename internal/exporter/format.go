package exporter

import (
	"math"
	"strconv"
)

// formatFloat formats a value with 4 decimal places; NaN becomes an empty cell
func formatFloat(f float64) string {
	if math.IsNaN(f) {
		return ""
	}
	return strconv.FormatFloat(f, 'f', 4, 64)
}

// formatInt formats an int value for CSV output
func formatInt(i int) string {
	return strconv.Itoa(i)
}

// cellValue converts a float to a spreadsheet cell; NaN becomes a blank cell
func cellValue(f float64) interface{} {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil
	}
	return f
}
