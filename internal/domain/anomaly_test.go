package domain

import (
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAnomalyIndex_SingleFault(t *testing.T) {
	set := mustLoad(t, trace(
		[3]float64{0, 0, 30},
		[3]float64{1, 1, 75},
		[3]float64{2, 2, 20},
	))

	idx := BuildAnomalyIndex(set, FaultThreshold)

	assert.Equal(t, []AnomalyEntry{{LogRow: 0, ReadingIndex: 1}}, idx.Entries())

	r, err := set.Get(1)
	require.NoError(t, err)
	assert.Equal(t, "[2] Fault: 75.0°C", FaultText(r))
}

func TestBuildAnomalyIndex_LogRowsAreSequential(t *testing.T) {
	set := mustLoad(t, trace(
		[3]float64{0, 0, 80},
		[3]float64{0, 0, 10},
		[3]float64{0, 0, 10},
		[3]float64{0, 0, 70}, // threshold is inclusive
		[3]float64{0, 0, 69.9},
		[3]float64{0, 0, 240},
	))

	idx := BuildAnomalyIndex(set, FaultThreshold)

	want := []AnomalyEntry{
		{LogRow: 0, ReadingIndex: 0},
		{LogRow: 1, ReadingIndex: 3},
		{LogRow: 2, ReadingIndex: 5},
	}
	if diff := cmp.Diff(want, idx.Entries()); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, idx.Len())
	assert.Equal(t, FaultThreshold, idx.Threshold())
}

func TestBuildAnomalyIndex_NoFaults(t *testing.T) {
	set := mustLoad(t, trace([3]float64{0, 0, 10}, [3]float64{0, 0, 69.99}))

	idx := BuildAnomalyIndex(set, FaultThreshold)

	assert.Empty(t, idx.Entries())
	assert.Equal(t, 0, idx.Len())
	_, ok := idx.ReadingIndexFor(0)
	assert.False(t, ok)
}

func TestAnomalyIndex_Lookups(t *testing.T) {
	set := mustLoad(t, trace(
		[3]float64{0, 0, 10},
		[3]float64{0, 0, 90},
		[3]float64{0, 0, 10},
		[3]float64{0, 0, 95},
	))
	idx := BuildAnomalyIndex(set, FaultThreshold)

	got, ok := idx.ReadingIndexFor(1)
	require.True(t, ok)
	assert.Equal(t, 3, got)

	row, ok := idx.LogRowFor(3)
	require.True(t, ok)
	assert.Equal(t, 1, row)

	_, ok = idx.LogRowFor(2)
	assert.False(t, ok, "non-fault reading has no log row")

	for _, bad := range []int{-1, 2, 99} {
		_, ok := idx.ReadingIndexFor(bad)
		assert.False(t, ok, "row %d", bad)
	}
}

func TestBuildAnomalyIndex_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))

	for round := range 50 {
		n := 1 + rng.IntN(200)
		readings := make([]Reading, n)
		for i := range readings {
			readings[i] = Reading{Lon: float64(i), Lat: float64(i), Temp: rng.Float64() * 260}
		}
		set := mustLoad(t, readings)
		threshold := rng.Float64() * 240

		idx := BuildAnomalyIndex(set, threshold)
		again := BuildAnomalyIndex(set, threshold)
		require.Equal(t, idx.Entries(), again.Entries(), "round %d: build must be idempotent", round)

		prev := -1
		for _, e := range idx.Entries() {
			r, err := set.Get(e.ReadingIndex)
			require.NoError(t, err)
			assert.GreaterOrEqual(t, r.Temp, threshold)
			assert.Greater(t, e.ReadingIndex, prev, "discovery order must be preserved")
			prev = e.ReadingIndex

			// bijection: both directions agree
			back, ok := idx.LogRowFor(e.ReadingIndex)
			require.True(t, ok)
			assert.Equal(t, e.LogRow, back)
		}

		faults := 0
		for r := range set.All() {
			if r.Temp >= threshold {
				faults++
			}
		}
		assert.Equal(t, faults, idx.Len(), "round %d: every fault is listed", round)
	}
}

func TestFaultText(t *testing.T) {
	assert.Equal(t, "[1] Fault: 70.0°C", FaultText(Reading{Index: 0, Temp: 70}))
	assert.Equal(t, "[100] Fault: 239.9°C", FaultText(Reading{Index: 99, Temp: 239.94}))
}
