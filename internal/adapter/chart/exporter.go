// Package chart renders a session frame to SVG or PNG with go-chart.
package chart

import (
	"errors"
	"fmt"
	"io"
	"strings"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/couchcryptid/thermal-trace/internal/config"
	"github.com/couchcryptid/thermal-trace/internal/domain"
	"github.com/couchcryptid/thermal-trace/internal/session"
)

// ErrNothingToRender is returned by Render when no point lies inside the
// viewport, including before any trace has been drawn.
var ErrNothingToRender = errors.New("no points inside the viewport")

// Format is an output image format.
type Format string

const (
	SVG Format = "svg"
	PNG Format = "png"
)

// ParseFormat accepts "svg" or "png", case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case SVG, PNG:
		return f, nil
	default:
		return "", fmt.Errorf("unknown image format %q (want svg or png)", s)
	}
}

type tooltip struct {
	at   domain.Coord
	text string
}

// Exporter implements session.View by keeping the latest frame in memory
// and rasterizing it on demand.
type Exporter struct {
	theme  config.Theme
	width  int
	height int

	points   []session.PlotPoint
	path     []domain.Coord
	faults   int
	legend   domain.Legend
	marker   *domain.Coord
	viewport domain.Viewport
	tooltip  *tooltip
}

var _ session.View = (*Exporter)(nil)

// NewExporter creates an exporter drawing width x height pixel images.
func NewExporter(theme config.Theme, width, height int) *Exporter {
	return &Exporter{theme: theme, width: width, height: height}
}

func (e *Exporter) RenderPoints(points []session.PlotPoint) { e.points = points }
func (e *Exporter) RenderPath(coords []domain.Coord) { e.path = coords }
func (e *Exporter) RenderLog(lines []session.LogLine) { e.faults = len(lines) }

func (e *Exporter) RenderLegend(legend domain.Legend, _ domain.Gradient) { e.legend = legend }

func (e *Exporter) SetHighlightMarker(at domain.Coord) { e.marker = &at }
func (e *Exporter) ClearHighlightMarker() { e.marker = nil }
func (e *Exporter) SetViewport(v domain.Viewport) { e.viewport = v }

func (e *Exporter) ShowTooltip(at domain.Coord, text string) {
	e.tooltip = &tooltip{at: at, text: text}
}

func (e *Exporter) HideTooltip() { e.tooltip = nil }

// Render writes the current frame. Only geometry inside the viewport is drawn.
func (e *Exporter) Render(w io.Writer, format Format) error {
	ch, err := e.build()
	if err != nil {
		return err
	}

	rp := gochart.SVG
	if format == PNG {
		rp = gochart.PNG
	}
	if err := ch.Render(rp, w); err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	return nil
}

func (e *Exporter) build() (gochart.Chart, error) {
	var xs, ys []float64
	var colors []drawing.Color
	for _, p := range e.points {
		if !e.viewport.Contains(domain.Coord{Lon: p.Lon, Lat: p.Lat}) {
			continue
		}
		xs = append(xs, p.Lon)
		ys = append(ys, p.Lat)
		colors = append(colors, drawing.ColorFromHex(p.Color))
	}
	if len(xs) == 0 {
		return gochart.Chart{}, ErrNothingToRender
	}

	var series []gochart.Series
	if px, py := e.visiblePath(); len(px) > 1 {
		series = append(series, gochart.ContinuousSeries{
			Name:    "path",
			XValues: px,
			YValues: py,
			Style: gochart.Style{
				StrokeWidth: float64(e.theme.PathWidth),
				StrokeColor: drawing.ColorFromHex(e.theme.Path).WithAlpha(128),
			},
		})
	}

	series = append(series, gochart.ContinuousSeries{
		Name:    "readings",
		XValues: xs,
		YValues: ys,
		Style: gochart.Style{
			StrokeWidth: gochart.Disabled,
			DotWidth:    float64(e.theme.PointSize) / 2,
			DotColorProvider: func(_, _ gochart.Range, index int, _, _ float64) drawing.Color {
				return colors[index]
			},
		},
	})

	if e.marker != nil && e.viewport.Contains(*e.marker) {
		series = append(series, gochart.ContinuousSeries{
			Name:    "highlight",
			XValues: []float64{e.marker.Lon},
			YValues: []float64{e.marker.Lat},
			Style: gochart.Style{
				StrokeWidth: gochart.Disabled,
				DotWidth:    float64(e.theme.HighlightSize) / 2,
				DotColor:    drawing.ColorFromHex(e.theme.Highlight),
			},
		})
	}

	if e.tooltip != nil && e.viewport.Contains(e.tooltip.at) {
		series = append(series, gochart.AnnotationSeries{
			Name: "tooltip",
			Annotations: []gochart.Value2{
				{XValue: e.tooltip.at.Lon, YValue: e.tooltip.at.Lat, Label: e.tooltip.text},
			},
		})
	}

	fg := drawing.ColorFromHex(e.theme.Foreground)
	axisStyle := gochart.Style{FontColor: fg, StrokeColor: fg}

	return gochart.Chart{
		Title:      e.title(),
		TitleStyle: gochart.Style{FontColor: fg},
		Width:      e.width,
		Height:     e.height,
		Background: gochart.Style{
			FillColor: drawing.ColorFromHex(e.theme.Background),
			Padding:   gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		Canvas: gochart.Style{FillColor: drawing.ColorFromHex(e.theme.Background)},
		XAxis: gochart.XAxis{
			Name:  "Longitude",
			Style: axisStyle,
			Range: &gochart.ContinuousRange{Min: e.viewport.Lon.Min, Max: e.viewport.Lon.Max},
		},
		YAxis: gochart.YAxis{
			Name:  "Latitude",
			Style: axisStyle,
			Range: &gochart.ContinuousRange{Min: e.viewport.Lat.Min, Max: e.viewport.Lat.Max},
		},
		Series: series,
	}, nil
}

func (e *Exporter) visiblePath() (xs, ys []float64) {
	for _, c := range e.path {
		if e.viewport.Contains(c) {
			xs = append(xs, c.Lon)
			ys = append(ys, c.Lat)
		}
	}
	return xs, ys
}

func (e *Exporter) title() string {
	return fmt.Sprintf("Temperature %s to %s, %d faults", e.legend.MinLabel, e.legend.MaxLabel, e.faults)
}
