// Package spatial resolves map positions to readings using an R-tree, so a
// cursor hovering over the map can be turned into a reading index.
package spatial

import (
	"math"

	"github.com/dhconnelly/rtreego"

	"github.com/couchcryptid/thermal-trace/internal/domain"
)

const (
	tolerance   = 1e-9
	minChildren = 25
	maxChildren = 50
	dimensions  = 2
)

// spatialReading wraps a reading position for R-tree indexing.
type spatialReading struct {
	index int
	coord domain.Coord
	rect  *rtreego.Rect
}

func (s *spatialReading) Bounds() *rtreego.Rect {
	return s.rect
}

// Index is an immutable R-tree over the positions of one reading set.
type Index struct {
	tree *rtreego.Rtree
}

// New indexes every reading of set.
func New(set *domain.ReadingSet) *Index {
	tree := rtreego.NewTree(dimensions, minChildren, maxChildren)
	for r := range set.All() {
		p := rtreego.Point{r.Lon, r.Lat}
		tree.Insert(&spatialReading{
			index: r.Index,
			coord: r.Coord(),
			rect:  p.ToRect(tolerance),
		})
	}
	return &Index{tree: tree}
}

// Size returns the number of indexed readings.
func (x *Index) Size() int {
	return x.tree.Size()
}

// Nearest returns the index of the reading closest to (lon, lat), provided it
// lies within radius degrees.
func (x *Index) Nearest(lon, lat, radius float64) (int, bool) {
	if x.tree.Size() == 0 {
		return 0, false
	}
	found := x.tree.NearestNeighbor(rtreego.Point{lon, lat})
	item, ok := found.(*spatialReading)
	if !ok || item == nil {
		return 0, false
	}
	if math.Hypot(item.coord.Lon-lon, item.coord.Lat-lat) > radius {
		return 0, false
	}
	return item.index, true
}

// Within returns the indices of all readings inside the viewport, in no particular order.
func (x *Index) Within(v domain.Viewport) []int {
	bounds, err := rtreego.NewRect(
		rtreego.Point{v.Lon.Min, v.Lat.Min},
		[]float64{math.Max(v.Lon.Span(), tolerance), math.Max(v.Lat.Span(), tolerance)},
	)
	if err != nil {
		return nil
	}

	results := x.tree.SearchIntersect(bounds)
	out := make([]int, 0, len(results))
	for _, res := range results {
		item, ok := res.(*spatialReading)
		if !ok {
			continue
		}
		if v.Contains(item.coord) {
			out = append(out, item.index)
		}
	}
	return out
}
