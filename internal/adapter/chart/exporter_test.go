package chart

import (
	"bytes"
	"image/png"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/couchcryptid/thermal-trace/internal/config"
	"github.com/couchcryptid/thermal-trace/internal/domain"
	"github.com/couchcryptid/thermal-trace/internal/observability"
	"github.com/couchcryptid/thermal-trace/internal/session"
	"github.com/couchcryptid/thermal-trace/internal/simulate"
)

func loadedExporter(t *testing.T, n int) (*Exporter, *session.Session) {
	t.Helper()
	e := NewExporter(config.DefaultTheme(), 640, 480)
	s := session.New(e, session.DefaultOptions(), slog.New(slog.NewTextHandler(io.Discard, nil)), observability.NewMetricsForTesting())
	require.NoError(t, s.OnLoad(simulate.Traversal(n, simulate.NewRand(7))))
	return e, s
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{in: "svg", want: SVG},
		{in: "PNG", want: PNG},
		{in: " png ", want: PNG},
		{in: "jpeg", wantErr: true},
		{in: "", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRender_BeforeLoad(t *testing.T) {
	e := NewExporter(config.DefaultTheme(), 640, 480)
	err := e.Render(io.Discard, SVG)
	require.ErrorIs(t, err, ErrNothingToRender)
}

func TestRender_ViewportMissesTrace(t *testing.T) {
	e, _ := loadedExporter(t, 40)
	e.SetViewport(domain.CenteredViewport(domain.Coord{Lon: 0, Lat: 0}, 0.001))

	err := e.Render(io.Discard, SVG)
	require.ErrorIs(t, err, ErrNothingToRender)
}

func TestRender_SVG(t *testing.T) {
	e, _ := loadedExporter(t, 40)

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, SVG))

	out := buf.String()
	assert.Contains(t, out, "<svg")
	assert.Contains(t, out, "faults")
}

func TestRender_PNG(t *testing.T) {
	e, _ := loadedExporter(t, 40)

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, PNG))

	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 640, img.Bounds().Dx())
	assert.Equal(t, 480, img.Bounds().Dy())
}

func TestRender_HighlightZoomsIn(t *testing.T) {
	e, s := loadedExporter(t, 40)
	require.NoError(t, s.OnHoverMapPoint(20))

	ch, err := e.build()
	require.NoError(t, err)

	names := make([]string, 0, len(ch.Series))
	for _, series := range ch.Series {
		names = append(names, series.GetName())
	}
	assert.Contains(t, names, "highlight")
	assert.Contains(t, names, "tooltip")

	// 0.001 half span with 0.0005/0.0003 steps keeps only the nearest neighbours in view.
	readings := ch.Series[len(ch.Series)-3]
	require.Equal(t, "readings", readings.GetName())
	vp, ok := readings.(interface{ Len() int })
	require.True(t, ok)
	assert.Less(t, vp.Len(), 40)
	assert.GreaterOrEqual(t, vp.Len(), 1)

	var buf bytes.Buffer
	require.NoError(t, e.Render(&buf, SVG))
	assert.Contains(t, buf.String(), "Temperature:")
}

func TestRender_ClearDropsMarkerKeepsViewport(t *testing.T) {
	e, s := loadedExporter(t, 40)
	require.NoError(t, s.OnHoverMapPoint(20))
	before := e.viewport

	s.OnClearHover()

	assert.Nil(t, e.marker)
	assert.Nil(t, e.tooltip)
	assert.Equal(t, before, e.viewport)
}

func TestExporter_TracksLegendAndLog(t *testing.T) {
	e := NewExporter(config.DefaultTheme(), 100, 100)
	e.RenderLegend(domain.Legend{MinLabel: "1°C", MaxLabel: "2°C"}, domain.LegendGradient())
	e.RenderLog([]session.LogLine{{}, {}})

	assert.Equal(t, "Temperature 1°C to 2°C, 2 faults", e.title())
}
