package exporter

import (
	"strconv"

	"rocklog/internal/geomech"
)

// formatValue renders one derived value for a text cell. The undefined
// sentinel becomes an empty cell; real values keep full precision.
func formatValue(v float64) string {
	if !geomech.IsDefined(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
