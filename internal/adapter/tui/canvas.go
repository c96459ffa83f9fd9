// Package tui is the terminal View Adapter: a bubbletea program drawing the
// trace as a character map next to the fault log.
package tui

import (
	"math"

	"github.com/couchcryptid/thermal-trace/internal/domain"
	"github.com/couchcryptid/thermal-trace/internal/session"
)

// Canvas implements session.View by recording the latest frame. The Model
// rasterizes it on every redraw.
type Canvas struct {
	points   []session.PlotPoint
	path     []domain.Coord
	log      []session.LogLine
	legend   domain.Legend
	gradient domain.Gradient
	marker   *domain.Coord
	viewport domain.Viewport
	tooltip  string
	tipAt    domain.Coord
}

var _ session.View = (*Canvas)(nil)

// NewCanvas returns an empty canvas.
func NewCanvas() *Canvas { return &Canvas{} }

func (c *Canvas) RenderPoints(points []session.PlotPoint) { c.points = points }
func (c *Canvas) RenderPath(coords []domain.Coord) { c.path = coords }
func (c *Canvas) RenderLog(lines []session.LogLine) { c.log = lines }

func (c *Canvas) RenderLegend(legend domain.Legend, gradient domain.Gradient) {
	c.legend, c.gradient = legend, gradient
}

func (c *Canvas) SetHighlightMarker(at domain.Coord) { c.marker = &at }
func (c *Canvas) ClearHighlightMarker() { c.marker = nil }
func (c *Canvas) SetViewport(v domain.Viewport) { c.viewport = v }

func (c *Canvas) ShowTooltip(at domain.Coord, text string) { c.tooltip, c.tipAt = text, at }
func (c *Canvas) HideTooltip() { c.tooltip = "" }

// Log returns the fault-log lines of the current frame.
func (c *Canvas) Log() []session.LogLine { return c.log }

// Tooltip returns the visible tooltip text, or "" when hidden.
func (c *Canvas) Tooltip() string { return c.tooltip }

// Viewport returns the current map window.
func (c *Canvas) Viewport() domain.Viewport { return c.viewport }

// cellKind orders what a cell shows; higher kinds win.
type cellKind int

const (
	cellEmpty cellKind = iota
	cellPath
	cellPoint
	cellMarker
)

// cell is one character of the rasterized map.
type cell struct {
	kind  cellKind
	color string  // point colour, "#rrggbb"
	index int     // reading drawn here when kind >= cellPoint
	temp  float64 // hottest reading in the cell
}

// grid is a rasterized map frame, row 0 at the top (north).
type grid struct {
	w, h  int
	cells [][]cell
	vp    domain.Viewport
}

// rasterize projects the frame onto a w x h character grid. Points collide
// onto the hottest reading so faults stay visible when zoomed out.
func (c *Canvas) rasterize(w, h int) *grid {
	g := &grid{w: w, h: h, vp: c.viewport, cells: make([][]cell, h)}
	for r := range g.cells {
		g.cells[r] = make([]cell, w)
	}
	if w < 2 || h < 2 || c.viewport.Lon.Span() <= 0 || c.viewport.Lat.Span() <= 0 {
		return g
	}

	for i := 1; i < len(c.path); i++ {
		g.line(c.path[i-1], c.path[i])
	}

	for _, p := range c.points {
		col, row, ok := g.toCell(domain.Coord{Lon: p.Lon, Lat: p.Lat})
		if !ok {
			continue
		}
		cur := &g.cells[row][col]
		if cur.kind == cellPoint && cur.temp >= p.Temp {
			continue
		}
		*cur = cell{kind: cellPoint, color: p.Color, index: p.Index, temp: p.Temp}
	}

	if c.marker != nil {
		if col, row, ok := g.toCell(*c.marker); ok {
			g.cells[row][col].kind = cellMarker
		}
	}
	return g
}

// toCell maps a coordinate to its cell, or false when outside the viewport.
func (g *grid) toCell(p domain.Coord) (col, row int, ok bool) {
	if !g.vp.Contains(p) {
		return 0, 0, false
	}
	fx := (p.Lon - g.vp.Lon.Min) / g.vp.Lon.Span()
	fy := (p.Lat - g.vp.Lat.Min) / g.vp.Lat.Span()
	col = int(math.Round(fx * float64(g.w-1)))
	row = g.h - 1 - int(math.Round(fy*float64(g.h-1)))
	return col, row, true
}

// toCoord is the inverse of toCell for the centre of a cell.
func (g *grid) toCoord(col, row int) domain.Coord {
	fx := float64(col) / float64(g.w-1)
	fy := float64(g.h-1-row) / float64(g.h-1)
	return domain.Coord{
		Lon: g.vp.Lon.Min + fx*g.vp.Lon.Span(),
		Lat: g.vp.Lat.Min + fy*g.vp.Lat.Span(),
	}
}

// line marks the path cells between a and b that lie inside the viewport.
func (g *grid) line(a, b domain.Coord) {
	steps := 2 * (g.w + g.h)
	for s := 0; s <= steps; s++ {
		f := float64(s) / float64(steps)
		p := domain.Coord{Lon: a.Lon + f*(b.Lon-a.Lon), Lat: a.Lat + f*(b.Lat-a.Lat)}
		if col, row, ok := g.toCell(p); ok && g.cells[row][col].kind == cellEmpty {
			g.cells[row][col].kind = cellPath
		}
	}
}

// at returns the cell under (col, row), or false when off the grid.
func (g *grid) at(col, row int) (cell, bool) {
	if col < 0 || row < 0 || col >= g.w || row >= g.h {
		return cell{}, false
	}
	return g.cells[row][col], true
}
