package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLegendLabels(t *testing.T) {
	tests := []struct {
		name  string
		temps []float64
		want  Legend
	}{
		{"whole numbers", []float64{30, 75, 20}, Legend{MinLabel: "20.0°C", MaxLabel: "75.0°C"}},
		{"fractions kept", []float64{12.345, 201.5}, Legend{MinLabel: "12.345°C", MaxLabel: "201.5°C"}},
		{"outside calibration not clamped", []float64{-15, 310}, Legend{MinLabel: "-15.0°C", MaxLabel: "310.0°C"}},
		{"single reading", []float64{42}, Legend{MinLabel: "42.0°C", MaxLabel: "42.0°C"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			readings := make([]Reading, len(tc.temps))
			for i, tmp := range tc.temps {
				readings[i] = Reading{Temp: tmp}
			}
			assert.Equal(t, tc.want, LegendLabels(mustLoad(t, readings)))
		})
	}
}

func TestViewport(t *testing.T) {
	v := FitViewport(Bounds{MinLon: 1, MaxLon: 2, MinLat: 3, MaxLat: 4}, 0.5)
	assert.Equal(t, Viewport{Lon: Range{0.5, 2.5}, Lat: Range{2.5, 4.5}}, v)
	assert.True(t, v.Contains(Coord{Lon: 1.5, Lat: 3.5}))
	assert.False(t, v.Contains(Coord{Lon: 3, Lat: 3.5}))
	assert.Equal(t, Coord{Lon: 1.5, Lat: 3.5}, v.Center())
	assert.Equal(t, 2.0, v.Lon.Span())
}
