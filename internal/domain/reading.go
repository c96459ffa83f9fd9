package domain

import (
	"fmt"
	"iter"
	"math"
	"time"
)

// Reading is one geo-tagged temperature sample of a traversal.
type Reading struct {
	Index int     `json:"index"` // position in acquisition order
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Temp  float64 `json:"temp"` // °C
}

// Coord returns the reading's map position.
func (r Reading) Coord() Coord {
	return Coord{Lon: r.Lon, Lat: r.Lat}
}

// Bounds is the lon/lat bounding box of a reading set.
type Bounds struct {
	MinLon, MaxLon float64
	MinLat, MaxLat float64
}

// ReadingSet is the ordered, non-empty set of readings for one loaded trace.
// It is immutable once built; a new load builds a new set.
type ReadingSet struct {
	readings []Reading
	minTemp  float64
	maxTemp  float64
	bounds   Bounds
	loadedAt time.Time
}

// Load builds a ReadingSet from readings in acquisition order. Indices are
// re-stamped to match positions, since the index is positional by definition.
// Min/max temperature and the bounding box are computed in the same pass.
// A NaN or infinite field rejects the whole load.
func Load(readings []Reading) (*ReadingSet, error) {
	if len(readings) == 0 {
		return nil, ErrEmptyInput
	}
	for i, r := range readings {
		if !finite(r.Lon) || !finite(r.Lat) || !finite(r.Temp) {
			return nil, fmt.Errorf("reading %d (lon %v, lat %v, temp %v): %w", i, r.Lon, r.Lat, r.Temp, ErrNonFiniteReading)
		}
	}

	set := &ReadingSet{
		readings: make([]Reading, len(readings)),
		loadedAt: clock.Now(),
	}

	first := readings[0]
	set.minTemp, set.maxTemp = first.Temp, first.Temp
	set.bounds = Bounds{MinLon: first.Lon, MaxLon: first.Lon, MinLat: first.Lat, MaxLat: first.Lat}

	for i, r := range readings {
		r.Index = i
		set.readings[i] = r

		set.minTemp = min(set.minTemp, r.Temp)
		set.maxTemp = max(set.maxTemp, r.Temp)
		set.bounds.MinLon = min(set.bounds.MinLon, r.Lon)
		set.bounds.MaxLon = max(set.bounds.MaxLon, r.Lon)
		set.bounds.MinLat = min(set.bounds.MinLat, r.Lat)
		set.bounds.MaxLat = max(set.bounds.MaxLat, r.Lat)
	}
	return set, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// Get returns the reading at index i.
func (s *ReadingSet) Get(i int) (Reading, error) {
	if i < 0 || i >= len(s.readings) {
		return Reading{}, fmt.Errorf("reading %d of %d: %w", i, len(s.readings), ErrIndexOutOfRange)
	}
	return s.readings[i], nil
}

// Len returns the number of readings.
func (s *ReadingSet) Len() int {
	return len(s.readings)
}

// All iterates the readings in acquisition order. The sequence can be ranged
// over any number of times.
func (s *ReadingSet) All() iter.Seq[Reading] {
	return func(yield func(Reading) bool) {
		for _, r := range s.readings {
			if !yield(r) {
				return
			}
		}
	}
}

func (s *ReadingSet) MinTemp() float64 { return s.minTemp }

func (s *ReadingSet) MaxTemp() float64 { return s.maxTemp }

// Bounds returns the bounding box of all reading positions.
func (s *ReadingSet) Bounds() Bounds { return s.bounds }

// LoadedAt returns when the set was built.
func (s *ReadingSet) LoadedAt() time.Time { return s.loadedAt }
