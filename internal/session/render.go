package session

import (
	"fmt"

	"github.com/couchcryptid/thermal-trace/internal/domain"
)

// TooltipText is shown next to a hovered map point.
func TooltipText(r domain.Reading) string {
	return fmt.Sprintf("Temperature: %.1f °C", r.Temp)
}

// renderTrace pushes everything derived from the active set to the view.
func (s *Session) renderTrace() {
	minTemp, maxTemp := s.set.MinTemp(), s.set.MaxTemp()

	points := make([]PlotPoint, 0, s.set.Len())
	path := make([]domain.Coord, 0, s.set.Len())
	for r := range s.set.All() {
		hue := domain.HueFor(r.Temp, minTemp, maxTemp)
		points = append(points, PlotPoint{
			Index: r.Index,
			Lon:   r.Lon,
			Lat:   r.Lat,
			Temp:  r.Temp,
			Hue:   hue,
			Color: domain.HueColor(hue),
		})
		path = append(path, r.Coord())
	}

	entries := s.anomalies.Entries()
	lines := make([]LogLine, 0, len(entries))
	for _, e := range entries {
		r, _ := s.set.Get(e.ReadingIndex)
		lines = append(lines, LogLine{LogRow: e.LogRow, ReadingIndex: e.ReadingIndex, Text: domain.FaultText(r)})
	}

	s.view.RenderPoints(points)
	s.view.RenderPath(path)
	s.view.RenderLog(lines)
	s.view.RenderLegend(domain.LegendLabels(s.set), domain.LegendGradient())
	s.view.SetViewport(domain.FitViewport(s.set.Bounds(), s.opts.HalfSpan))
}
