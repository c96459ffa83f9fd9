package domain

// DefaultHalfSpan is the half-width, in degrees, of the window centred on a
// highlighted reading. It is also the padding around a freshly loaded trace.
const DefaultHalfSpan = 0.001

// Coord is a map position in degrees.
type Coord struct {
	Lon float64 `json:"lon"`
	Lat float64 `json:"lat"`
}

// Range is a closed interval [Min, Max].
type Range struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// Span returns Max - Min.
func (r Range) Span() float64 { return r.Max - r.Min }

// Contains reports whether v lies in the interval.
func (r Range) Contains(v float64) bool { return v >= r.Min && v <= r.Max }

// Viewport is the visible map window.
type Viewport struct {
	Lon Range `json:"lon"`
	Lat Range `json:"lat"`
}

// Contains reports whether c is inside the viewport.
func (v Viewport) Contains(c Coord) bool {
	return v.Lon.Contains(c.Lon) && v.Lat.Contains(c.Lat)
}

// Center returns the viewport's midpoint.
func (v Viewport) Center() Coord {
	return Coord{Lon: (v.Lon.Min + v.Lon.Max) / 2, Lat: (v.Lat.Min + v.Lat.Max) / 2}
}

// CenteredViewport returns the window [c-halfSpan, c+halfSpan] on both axes.
func CenteredViewport(c Coord, halfSpan float64) Viewport {
	return Viewport{
		Lon: Range{Min: c.Lon - halfSpan, Max: c.Lon + halfSpan},
		Lat: Range{Min: c.Lat - halfSpan, Max: c.Lat + halfSpan},
	}
}

// FitViewport returns b grown by pad on every side.
func FitViewport(b Bounds, pad float64) Viewport {
	return Viewport{
		Lon: Range{Min: b.MinLon - pad, Max: b.MaxLon + pad},
		Lat: Range{Min: b.MinLat - pad, Max: b.MaxLat + pad},
	}
}
