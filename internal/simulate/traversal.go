// Package simulate generates synthetic sensor traversals for demos and fixtures.
package simulate

import (
	"math/rand/v2"
	"time"

	"github.com/couchcryptid/thermal-trace/internal/domain"
)

// Path geometry of the simulated traversal.
const (
	BaseLon = 113.325
	BaseLat = 23.135
	StepLon = 0.0005
	StepLat = 0.0003
)

// Every FaultEvery-th reading (starting at 0) is drawn from the fault band.
const FaultEvery = 20

var (
	normalBand = [2]float64{0, 80}
	faultBand  = [2]float64{80, 240}
)

// Traversal returns n readings walking diagonally from (BaseLon, BaseLat).
// Temperatures are uniform in [0, 80) except every FaultEvery-th reading,
// which is uniform in [80, 240).
func Traversal(n int, rng *rand.Rand) []domain.Reading {
	if n <= 0 {
		return []domain.Reading{}
	}

	readings := make([]domain.Reading, n)
	for i := range readings {
		band := normalBand
		if i%FaultEvery == 0 {
			band = faultBand
		}
		readings[i] = domain.Reading{
			Index: i,
			Lon:   BaseLon + float64(i)*StepLon,
			Lat:   BaseLat + float64(i)*StepLat,
			Temp:  band[0] + (band[1]-band[0])*rng.Float64(),
		}
	}
	return readings
}

// NewRand returns a PCG source seeded with seed, or with the current time when seed is 0.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
