package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHighlightCoordinator_Select(t *testing.T) {
	set := mustLoad(t, trace([3]float64{113.325, 23.135, 30}, [3]float64{113.3255, 23.1353, 75}))
	c := NewHighlightCoordinator(set, DefaultHalfSpan)
	require.True(t, c.State().IsIdle())

	tr, err := c.Select(1)
	require.NoError(t, err)

	assert.True(t, tr.Changed())
	assert.Equal(t, Idle(), tr.From)
	assert.Equal(t, Highlighted(1), tr.State)
	assert.Equal(t, Coord{Lon: 113.3255, Lat: 23.1353}, tr.Marker)
	assert.InDelta(t, 113.3245, tr.Viewport.Lon.Min, 1e-9)
	assert.InDelta(t, 113.3265, tr.Viewport.Lon.Max, 1e-9)
	assert.InDelta(t, 23.1343, tr.Viewport.Lat.Min, 1e-9)
	assert.InDelta(t, 23.1363, tr.Viewport.Lat.Max, 1e-9)

	idx, ok := c.State().Reading()
	assert.True(t, ok)
	assert.Equal(t, 1, idx)
}

func TestHighlightCoordinator_SelectReplaces(t *testing.T) {
	set := mustLoad(t, trace([3]float64{0, 0, 1}, [3]float64{1, 1, 1}))
	c := NewHighlightCoordinator(set, DefaultHalfSpan)

	_, err := c.Select(0)
	require.NoError(t, err)
	tr, err := c.Select(1)
	require.NoError(t, err)

	assert.Equal(t, Highlighted(0), tr.From)
	assert.Equal(t, Highlighted(1), c.State())
}

func TestHighlightCoordinator_ReselectRecentres(t *testing.T) {
	set := mustLoad(t, trace([3]float64{5, 6, 1}))
	c := NewHighlightCoordinator(set, 0.5)

	_, err := c.Select(0)
	require.NoError(t, err)
	tr, err := c.Select(0)
	require.NoError(t, err)

	assert.False(t, tr.Changed())
	assert.Equal(t, Viewport{Lon: Range{4.5, 5.5}, Lat: Range{5.5, 6.5}}, tr.Viewport)
}

func TestHighlightCoordinator_SelectOutOfRangeKeepsState(t *testing.T) {
	set := mustLoad(t, trace([3]float64{0, 0, 1}, [3]float64{1, 1, 1}, [3]float64{2, 2, 1}))
	c := NewHighlightCoordinator(set, DefaultHalfSpan)

	_, err := c.Select(set.Len())
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.True(t, c.State().IsIdle())

	_, err = c.Select(2)
	require.NoError(t, err)
	_, err = c.Select(-1)
	require.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.Equal(t, Highlighted(2), c.State())
}

func TestHighlightCoordinator_SelectThenClear(t *testing.T) {
	set := mustLoad(t, trace([3]float64{0, 0, 1}))
	c := NewHighlightCoordinator(set, DefaultHalfSpan)

	_, err := c.Select(0)
	require.NoError(t, err)
	tr := c.Clear()

	assert.True(t, tr.Changed())
	assert.True(t, tr.State.IsIdle())
	assert.True(t, c.State().IsIdle())
	assert.Equal(t, Viewport{}, tr.Viewport, "clearing never moves the viewport")

	assert.False(t, c.Clear().Changed(), "clearing twice is a no-op")
}

func TestHighlightCoordinator_ResetReturnsToIdle(t *testing.T) {
	first := mustLoad(t, trace([3]float64{0, 0, 1}, [3]float64{1, 1, 1}))
	c := NewHighlightCoordinator(first, DefaultHalfSpan)
	_, err := c.Select(1)
	require.NoError(t, err)

	second := mustLoad(t, trace([3]float64{9, 9, 1}))
	tr := c.Reset(second)

	assert.Equal(t, Highlighted(1), tr.From)
	assert.True(t, c.State().IsIdle())

	_, err = c.Select(1)
	assert.ErrorIs(t, err, ErrIndexOutOfRange, "indices are now checked against the new set")
}

func TestNewHighlightCoordinator_DefaultsHalfSpan(t *testing.T) {
	set := mustLoad(t, trace([3]float64{0, 0, 1}))
	c := NewHighlightCoordinator(set, 0)

	tr, err := c.Select(0)
	require.NoError(t, err)
	assert.InDelta(t, 2*DefaultHalfSpan, tr.Viewport.Lon.Span(), 1e-12)
}

func TestHighlightState_String(t *testing.T) {
	assert.Equal(t, "idle", Idle().String())
	assert.Equal(t, "highlighted(4)", Highlighted(4).String())
}
