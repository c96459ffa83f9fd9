package domain

import (
	"strconv"
	"strings"
)

// Legend holds the two boundary labels of the colour legend.
type Legend struct {
	MinLabel string `json:"min_label"`
	MaxLabel string `json:"max_label"`
}

// LegendLabels labels the legend with the observed temperature range of set,
// unclamped, not the 0–240 °C colour calibration.
func LegendLabels(set *ReadingSet) Legend {
	return Legend{
		MinLabel: celsius(set.MinTemp()),
		MaxLabel: celsius(set.MaxTemp()),
	}
}

// celsius prints v the way the fault labels always have: shortest form,
// but with at least one decimal, so 20 reads "20.0°C".
func celsius(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + "°C"
}
