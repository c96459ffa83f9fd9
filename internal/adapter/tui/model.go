package tui

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/couchcryptid/thermal-trace/internal/config"
	"github.com/couchcryptid/thermal-trace/internal/domain"
	"github.com/couchcryptid/thermal-trace/internal/session"
)

const (
	logWidth      = 24
	dividerWidth  = 3 // " │ "
	minMapWidth   = 10
	minMapHeight  = 4
	placeTimeout  = 5 * time.Second
	chromeHeight  = 3 // title, legend, info line
	defaultWidth  = 100
	defaultHeight = 30
)

// Options configures a Model.
type Options struct {
	Theme config.Theme
	// Geocoder annotates the highlighted reading with a place name. Nil disables it.
	Geocoder domain.Geocoder
	// Reload returns a fresh trace for the reload key. Nil disables the key.
	Reload func() []domain.Reading
	Logger *slog.Logger
}

// placeMsg carries a finished reverse-geocode lookup.
type placeMsg struct {
	index int
	place domain.Place
	err   error
}

// Model is the bubbletea model driving a session from keyboard and mouse.
type Model struct {
	sess   *session.Session
	canvas *Canvas
	opts   Options
	keys   keyMap
	help   help.Model
	styles styles

	width, height int
	cursor        int // fault-log row under the cursor, -1 for none
	logOffset     int

	place    domain.Place
	placeFor int // reading index place belongs to, -1 for none
	err      error
}

var _ tea.Model = (*Model)(nil)

// NewModel creates a model over sess. canvas must be the View sess renders to.
func NewModel(sess *session.Session, canvas *Canvas, opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Model{
		sess:     sess,
		canvas:   canvas,
		opts:     opts,
		keys:     defaultKeyMap(),
		help:     help.New(),
		styles:   newStyles(opts.Theme),
		width:    defaultWidth,
		height:   defaultHeight,
		cursor:   -1,
		placeFor: -1,
	}
}

func (m *Model) Init() tea.Cmd { return nil }

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.scrollToCursor()
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Action != tea.MouseActionMotion && msg.Action != tea.MouseActionPress {
			return m, nil
		}
		m.handleMouse(msg.X, msg.Y)
		return m, m.afterHighlight()

	case placeMsg:
		if msg.index != m.placeFor {
			return m, nil
		}
		if msg.err != nil {
			m.opts.Logger.Debug("place lookup failed", "reading_index", msg.index, "error", msg.err)
			return m, nil
		}
		m.place = msg.place
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	m.err = nil
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		m.scrollToCursor()
		return m, nil
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Clear):
		m.sess.OnClearHover()
	case key.Matches(msg, m.keys.Fit):
		m.sess.FitViewport()
	case key.Matches(msg, m.keys.Reload):
		if m.opts.Reload == nil {
			return m, nil
		}
		if err := m.sess.OnLoad(m.opts.Reload()); err != nil {
			m.err = err
		}
		m.logOffset = 0
	default:
		return m, nil
	}
	return m, m.afterHighlight()
}

func (m *Model) moveCursor(delta int) {
	n := len(m.canvas.Log())
	if n == 0 {
		return
	}
	row := m.cursor + delta
	if m.cursor < 0 {
		row = 0
	}
	row = max(0, min(row, n-1))
	if err := m.sess.OnHoverLogRow(row); err != nil {
		m.err = err
	}
}

// handleMouse routes a pointer position to the map or the fault log.
func (m *Model) handleMouse(x, y int) {
	mapW, mapH := m.mapSize()
	row := y - 1
	if row < 0 || row >= mapH {
		return
	}

	switch {
	case x < mapW:
		g := m.canvas.rasterize(mapW, mapH)
		if c, ok := g.at(x, row); ok && c.kind >= cellPoint {
			m.err = m.sess.OnHoverMapPoint(c.index)
			return
		}
		at := g.toCoord(x, row)
		m.err = m.sess.OnHoverMapPosition(at.Lon, at.Lat)
	case x >= mapW+dividerWidth:
		logRow := m.logOffset + row
		if logRow < len(m.canvas.Log()) {
			m.err = m.sess.OnHoverLogRow(logRow)
		}
	}
}

// afterHighlight syncs the log cursor with the session's highlight and starts
// a place lookup when a new reading is highlighted.
func (m *Model) afterHighlight() tea.Cmd {
	idx, ok := m.sess.Snapshot().Highlight.Reading()
	if !ok {
		m.cursor = -1
		m.place, m.placeFor = domain.Place{}, -1
		return nil
	}

	m.cursor = -1
	if row, isFault := m.sess.LogRowFor(idx); isFault {
		m.cursor = row
	}
	m.scrollToCursor()

	if m.opts.Geocoder == nil || idx == m.placeFor {
		return nil
	}
	r, err := m.sess.Reading(idx)
	if err != nil {
		return nil
	}
	m.place, m.placeFor = domain.Place{}, idx
	return lookupPlace(m.opts.Geocoder, idx, r.Coord())
}

func lookupPlace(g domain.Geocoder, index int, at domain.Coord) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), placeTimeout)
		defer cancel()
		p, err := g.ReverseGeocode(ctx, at.Lat, at.Lon)
		return placeMsg{index: index, place: p, err: err}
	}
}

func (m *Model) scrollToCursor() {
	_, mapH := m.mapSize()
	if m.cursor < 0 {
		return
	}
	if m.cursor < m.logOffset {
		m.logOffset = m.cursor
	}
	if m.cursor >= m.logOffset+mapH {
		m.logOffset = m.cursor - mapH + 1
	}
}

func (m *Model) helpHeight() int {
	if m.help.ShowAll {
		return len(m.keys.FullHelp()[0])
	}
	return 1
}

func (m *Model) mapSize() (w, h int) {
	w = max(minMapWidth, m.width-logWidth-dividerWidth)
	h = max(minMapHeight, m.height-chromeHeight-m.helpHeight())
	return w, h
}

func (m *Model) View() string {
	mapW, mapH := m.mapSize()
	g := m.canvas.rasterize(mapW, mapH)

	var b strings.Builder
	b.WriteString(m.titleLine())
	b.WriteByte('\n')

	log := m.canvas.Log()
	for row := 0; row < mapH; row++ {
		b.WriteString(m.mapRow(g, row))
		b.WriteString(m.styles.divider.Render(" │ "))
		b.WriteString(m.logRow(log, m.logOffset+row))
		b.WriteByte('\n')
	}

	b.WriteString(m.legendLine(mapW))
	b.WriteByte('\n')
	b.WriteString(m.infoLine())
	b.WriteByte('\n')
	b.WriteString(m.help.View(m.keys))
	return b.String()
}

func (m *Model) titleLine() string {
	snap := m.sess.Snapshot()
	inView := len(m.sess.ReadingsIn(m.canvas.Viewport()))
	status := fmt.Sprintf(" %d readings  %d faults  %d in view  %s", snap.Readings, snap.Anomalies, inView, snap.Highlight)
	return m.styles.title.Render("thermal-trace") + m.styles.status.Render(status)
}

func (m *Model) mapRow(g *grid, row int) string {
	var b strings.Builder
	for col := 0; col < g.w; col++ {
		c, _ := g.at(col, row)
		switch c.kind {
		case cellMarker:
			b.WriteString(m.styles.marker.Render(glyphMarker))
		case cellPoint:
			b.WriteString(pointStyle(c.color).Render(glyphPoint))
		case cellPath:
			b.WriteString(m.styles.path.Render(glyphPath))
		default:
			b.WriteByte(' ')
		}
	}
	return b.String()
}

func (m *Model) logRow(log []session.LogLine, i int) string {
	if i >= len(log) {
		return ""
	}
	text := fitWidth(log[i].Text, logWidth)
	if i == m.cursor {
		return m.styles.logHover.Render(text)
	}
	return m.styles.logRow.Render(text)
}

// legendLine draws the calibration gradient between the observed min and max labels.
func (m *Model) legendLine(width int) string {
	grad := m.canvas.gradient
	if len(grad) < 2 {
		return ""
	}
	minLabel, maxLabel := m.canvas.legend.MinLabel, m.canvas.legend.MaxLabel
	barW := max(10, width-len([]rune(minLabel))-len([]rune(maxLabel))-2)

	var bar strings.Builder
	for _, hex := range gradientColors(grad, barW) {
		bar.WriteString(pointStyle(hex).Render(glyphLegend))
	}
	return minLabel + " " + bar.String() + " " + maxLabel
}

// gradientColors samples n evenly spaced colours along grad, interpolating
// hue linearly between neighbouring stops. grad must have at least two stops.
func gradientColors(grad domain.Gradient, n int) []string {
	lo, hi := grad[0].Temp, grad[len(grad)-1].Temp
	out := make([]string, n)
	seg := 0
	for i := range out {
		t := lo
		if n > 1 {
			t = lo + float64(i)/float64(n-1)*(hi-lo)
		}
		for seg < len(grad)-2 && t > grad[seg+1].Temp {
			seg++
		}
		a, b := grad[seg], grad[seg+1]
		f := 0.0
		if b.Temp != a.Temp {
			f = (t - a.Temp) / (b.Temp - a.Temp)
		}
		out[i] = domain.HueColor(a.Hue + f*(b.Hue-a.Hue))
	}
	return out
}

func (m *Model) infoLine() string {
	if m.err != nil {
		return m.styles.errText.Render(m.err.Error())
	}
	var parts []string
	if tip := m.canvas.Tooltip(); tip != "" {
		parts = append(parts, m.styles.tooltip.Render(tip))
	}
	if m.place.Found() {
		parts = append(parts, m.styles.dim.Render(m.place.Address))
	}
	return strings.Join(parts, "  ")
}

// fitWidth pads or truncates s to exactly w runes.
func fitWidth(s string, w int) string {
	r := []rune(s)
	if len(r) > w {
		return string(r[:w-1]) + "…"
	}
	return s + strings.Repeat(" ", w-len(r))
}
