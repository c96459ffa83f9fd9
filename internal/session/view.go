package session

import "github.com/couchcryptid/thermal-trace/internal/domain"

// PlotPoint is one reading as drawn on the map.
type PlotPoint struct {
	Index int     `json:"index"`
	Lon   float64 `json:"lon"`
	Lat   float64 `json:"lat"`
	Temp  float64 `json:"temp"`
	Hue   float64 `json:"hue"`
	Color string  `json:"color"` // "#rrggbb", full saturation and value
}

// LogLine is one row of the fault log.
type LogLine struct {
	LogRow       int    `json:"log_row"`
	ReadingIndex int    `json:"reading_index"`
	Text         string `json:"text"`
}

// View receives render instructions from a session. Implementations are
// driven from the session's goroutine and must not call back into it.
type View interface {
	RenderPoints(points []PlotPoint)
	// RenderPath draws a line through coords in acquisition order.
	RenderPath(coords []domain.Coord)
	RenderLog(lines []LogLine)
	RenderLegend(legend domain.Legend, gradient domain.Gradient)
	SetHighlightMarker(at domain.Coord)
	ClearHighlightMarker()
	SetViewport(v domain.Viewport)
	ShowTooltip(at domain.Coord, text string)
	HideTooltip()
}

// DiscardView is a View that drops every instruction, for headless sessions.
var DiscardView View = discardView{}

type discardView struct{}

func (discardView) RenderPoints([]PlotPoint) {}
func (discardView) RenderPath([]domain.Coord) {}
func (discardView) RenderLog([]LogLine) {}
func (discardView) RenderLegend(domain.Legend, domain.Gradient) {}
func (discardView) SetHighlightMarker(domain.Coord) {}
func (discardView) ClearHighlightMarker() {}
func (discardView) SetViewport(domain.Viewport) {}
func (discardView) ShowTooltip(domain.Coord, string) {}
func (discardView) HideTooltip() {}
