package spatial

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/thermal-trace/internal/domain"
)

func path(t *testing.T, n int) *domain.ReadingSet {
	t.Helper()
	readings := make([]domain.Reading, n)
	for i := range readings {
		readings[i] = domain.Reading{
			Lon:  113.325 + float64(i)*0.0005,
			Lat:  23.135 + float64(i)*0.0003,
			Temp: 20,
		}
	}
	set, err := domain.Load(readings)
	require.NoError(t, err)
	return set
}

func TestIndex_Nearest(t *testing.T) {
	idx := New(path(t, 100))
	require.Equal(t, 100, idx.Size())

	tests := []struct {
		name     string
		lon, lat float64
		radius   float64
		want     int
		wantOK   bool
	}{
		{"exact hit", 113.325 + 10*0.0005, 23.135 + 10*0.0003, 0.0001, 10, true},
		{"close to a reading", 113.325 + 42*0.0005 + 0.00005, 23.135 + 42*0.0003, 0.0001, 42, true},
		{"nearest of two", 113.325 + 0.0002, 23.135 + 0.0001, 0.001, 0, true},
		{"outside radius", 113.325 + 5*0.0005, 23.135 + 5*0.0003 + 0.01, 0.0005, 0, false},
		{"far away", 0, 0, 0.0005, 0, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := idx.Nearest(tc.lon, tc.lat, tc.radius)
			assert.Equal(t, tc.wantOK, ok)
			if tc.wantOK {
				assert.Equal(t, tc.want, got)
			}
		})
	}
}

func TestIndex_Within(t *testing.T) {
	idx := New(path(t, 20))

	// window around readings 4..6
	v := domain.Viewport{
		Lon: domain.Range{Min: 113.325 + 4*0.0005 - 0.0001, Max: 113.325 + 6*0.0005 + 0.0001},
		Lat: domain.Range{Min: 23.135 + 4*0.0003 - 0.0001, Max: 23.135 + 6*0.0003 + 0.0001},
	}

	got := idx.Within(v)
	slices.Sort(got)
	assert.Equal(t, []int{4, 5, 6}, got)
}

func TestIndex_SingleReading(t *testing.T) {
	set, err := domain.Load([]domain.Reading{{Lon: 1, Lat: 1, Temp: 1}})
	require.NoError(t, err)
	idx := New(set)

	got, ok := idx.Nearest(1, 1, 0.1)
	require.True(t, ok)
	assert.Equal(t, 0, got)
}
