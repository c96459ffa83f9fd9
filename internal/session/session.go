// Package session wires the domain components into one interactive
// visualization session: it owns the loaded reading set and its derived
// indices, turns inbound hover/load events into highlight transitions, and
// pushes render instructions to a View.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"

	"github.com/couchcryptid/thermal-trace/internal/domain"
	"github.com/couchcryptid/thermal-trace/internal/observability"
	"github.com/couchcryptid/thermal-trace/internal/spatial"
)

// Options tunes a session. Zero HalfSpan and PickRadius fall back to the
// defaults; Threshold is used as given, so start from DefaultOptions.
type Options struct {
	Threshold  float64 // fault threshold, °C
	HalfSpan   float64 // half-width of the highlight viewport, degrees
	PickRadius float64 // max cursor distance for a map hover to hit a reading, degrees
}

// DefaultOptions returns the canonical threshold and spans.
func DefaultOptions() Options {
	return Options{
		Threshold:  domain.FaultThreshold,
		HalfSpan:   domain.DefaultHalfSpan,
		PickRadius: domain.DefaultHalfSpan / 2,
	}
}

// FaultRecord is a fault-log row with the reading it refers to.
type FaultRecord struct {
	LogRow  int            `json:"log_row"`
	Reading domain.Reading `json:"reading"`
	Text    string         `json:"text"`
}

// Snapshot summarizes the session state for shells and status lines.
type Snapshot struct {
	TraceID   string
	Readings  int
	Anomalies int
	MinTemp   float64
	MaxTemp   float64
	Highlight domain.HighlightState
	LoadedAt  time.Time
}

// TraceSummary describes the active trace. It is immutable once published and
// safe to hand to other goroutines.
type TraceSummary struct {
	TraceID   string        `json:"trace_id"`
	Readings  int           `json:"readings"`
	Anomalies int           `json:"anomalies"`
	MinTemp   float64       `json:"min_temp"`
	MaxTemp   float64       `json:"max_temp"`
	Threshold float64       `json:"threshold"`
	LoadedAt  time.Time     `json:"loaded_at"`
	Faults    []FaultRecord `json:"faults"`
}

// Session is one visualization session. It is not safe for concurrent use
// except for CheckReadiness and Summary; drive it from a single goroutine.
type Session struct {
	view    View
	opts    Options
	logger  *slog.Logger
	metrics *observability.Metrics

	traceID   string
	set       *domain.ReadingSet
	anomalies *domain.AnomalyIndex
	highlight *domain.HighlightCoordinator
	points    *spatial.Index

	summary atomic.Pointer[TraceSummary]
}

// New creates an empty session rendering to view.
func New(view View, opts Options, logger *slog.Logger, metrics *observability.Metrics) *Session {
	def := DefaultOptions()
	if opts.HalfSpan <= 0 {
		opts.HalfSpan = def.HalfSpan
	}
	if opts.PickRadius <= 0 {
		opts.PickRadius = def.PickRadius
	}
	return &Session{
		view:    view,
		opts:    opts,
		logger:  logger,
		metrics: metrics,
	}
}

// CheckReadiness returns nil once a trace has been loaded.
func (s *Session) CheckReadiness(_ context.Context) error {
	if s.summary.Load() == nil {
		return errors.New("no trace loaded yet")
	}
	return nil
}

// OnLoad replaces the active trace. The new set and all derived state are
// built first; on failure nothing changes and the previous trace stays active.
// On success the view receives points, path, log, legend and a viewport that
// fits the whole trace, and any highlight is dropped.
func (s *Session) OnLoad(readings []domain.Reading) error {
	start := time.Now()

	set, err := domain.Load(readings)
	if err != nil {
		s.metrics.Loads.WithLabelValues("rejected").Inc()
		return s.reject("load", fmt.Errorf("load trace: %w", err))
	}
	anomalies := domain.BuildAnomalyIndex(set, s.opts.Threshold)
	points := spatial.New(set)

	var from domain.HighlightState
	if s.highlight == nil {
		s.highlight = domain.NewHighlightCoordinator(set, s.opts.HalfSpan)
	} else {
		from = s.highlight.Reset(set).From
	}
	s.traceID = uuid.NewString()
	s.set, s.anomalies, s.points = set, anomalies, points

	s.renderTrace()
	s.view.ClearHighlightMarker()
	s.view.HideTooltip()

	if !from.IsIdle() {
		s.metrics.HighlightTransitions.WithLabelValues("reset").Inc()
	}
	s.metrics.Loads.WithLabelValues("loaded").Inc()
	s.metrics.LoadDuration.Observe(time.Since(start).Seconds())
	s.metrics.ReadingsLoaded.Set(float64(set.Len()))
	s.metrics.Anomalies.Set(float64(anomalies.Len()))
	s.summary.Store(&TraceSummary{
		TraceID:   s.traceID,
		Readings:  set.Len(),
		Anomalies: anomalies.Len(),
		MinTemp:   set.MinTemp(),
		MaxTemp:   set.MaxTemp(),
		Threshold: anomalies.Threshold(),
		LoadedAt:  set.LoadedAt(),
		Faults:    s.Faults(),
	})

	s.logger.Info("trace loaded",
		"trace_id", s.traceID,
		"readings", set.Len(),
		"anomalies", anomalies.Len(),
		"min_temp", set.MinTemp(),
		"max_temp", set.MaxTemp(),
	)
	return nil
}

// OnHoverLogRow highlights the reading behind a fault-log row.
func (s *Session) OnHoverLogRow(logRow int) error {
	if s.set == nil {
		return s.reject("hover_log_row", fmt.Errorf("log row %d: no trace loaded: %w", logRow, domain.ErrIndexOutOfRange))
	}
	idx, ok := s.anomalies.ReadingIndexFor(logRow)
	if !ok {
		return s.reject("hover_log_row", fmt.Errorf("log row %d of %d: %w", logRow, s.anomalies.Len(), domain.ErrIndexOutOfRange))
	}
	if err := s.selectReading(idx, "hover_log_row"); err != nil {
		return err
	}
	s.view.HideTooltip()
	return nil
}

// OnHoverMapPoint highlights reading index and shows its temperature tooltip.
func (s *Session) OnHoverMapPoint(index int) error {
	if s.set == nil {
		return s.reject("hover_map_point", fmt.Errorf("reading %d: no trace loaded: %w", index, domain.ErrIndexOutOfRange))
	}
	if err := s.selectReading(index, "hover_map_point"); err != nil {
		return err
	}
	r, _ := s.set.Get(index)
	s.view.ShowTooltip(r.Coord(), TooltipText(r))
	return nil
}

// OnHoverMapPosition resolves a cursor position to the nearest reading within
// the pick radius and hovers it. A miss clears the hover.
func (s *Session) OnHoverMapPosition(lon, lat float64) error {
	if s.set == nil {
		return nil
	}
	idx, ok := s.points.Nearest(lon, lat, s.opts.PickRadius)
	if !ok {
		s.OnClearHover()
		return nil
	}
	return s.OnHoverMapPoint(idx)
}

// OnClearHover drops the highlight. The viewport stays where it is.
func (s *Session) OnClearHover() {
	if s.highlight == nil {
		return
	}
	t := s.highlight.Clear()
	if t.Changed() {
		s.view.ClearHighlightMarker()
		s.metrics.HighlightTransitions.WithLabelValues("clear").Inc()
		s.logger.Debug("highlight cleared", "trace_id", s.traceID)
	}
	s.view.HideTooltip()
}

// FitViewport re-emits the viewport covering the whole trace.
func (s *Session) FitViewport() {
	if s.set == nil {
		return
	}
	s.view.SetViewport(domain.FitViewport(s.set.Bounds(), s.opts.HalfSpan))
}

// Snapshot returns a summary of the active trace. Readings is 0 before the first load.
func (s *Session) Snapshot() Snapshot {
	if s.set == nil {
		return Snapshot{}
	}
	return Snapshot{
		TraceID:   s.traceID,
		Readings:  s.set.Len(),
		Anomalies: s.anomalies.Len(),
		MinTemp:   s.set.MinTemp(),
		MaxTemp:   s.set.MaxTemp(),
		Highlight: s.highlight.State(),
		LoadedAt:  s.set.LoadedAt(),
	}
}

// Summary returns the last successfully loaded trace, or false before the first load.
func (s *Session) Summary() (TraceSummary, bool) {
	p := s.summary.Load()
	if p == nil {
		return TraceSummary{}, false
	}
	return *p, true
}

// Reading returns reading i of the active trace.
func (s *Session) Reading(i int) (domain.Reading, error) {
	if s.set == nil {
		return domain.Reading{}, fmt.Errorf("reading %d: no trace loaded: %w", i, domain.ErrIndexOutOfRange)
	}
	return s.set.Get(i)
}

// ReadingsIn returns the indices of readings inside v, in no particular order.
func (s *Session) ReadingsIn(v domain.Viewport) []int {
	if s.points == nil {
		return nil
	}
	return s.points.Within(v)
}

// LogRowFor returns the fault-log row of reading i, if it is a fault.
func (s *Session) LogRowFor(i int) (int, bool) {
	if s.anomalies == nil {
		return 0, false
	}
	return s.anomalies.LogRowFor(i)
}

// Faults returns the fault log of the active trace in log-row order.
func (s *Session) Faults() []FaultRecord {
	if s.set == nil {
		return nil
	}
	entries := s.anomalies.Entries()
	out := make([]FaultRecord, 0, len(entries))
	for _, e := range entries {
		r, _ := s.set.Get(e.ReadingIndex)
		out = append(out, FaultRecord{LogRow: e.LogRow, Reading: r, Text: domain.FaultText(r)})
	}
	return out
}

func (s *Session) selectReading(index int, op string) error {
	t, err := s.highlight.Select(index)
	if err != nil {
		return s.reject(op, err)
	}
	s.view.SetHighlightMarker(t.Marker)
	s.view.SetViewport(t.Viewport)

	if t.Changed() {
		s.metrics.HighlightTransitions.WithLabelValues("select").Inc()
		s.logger.Debug("reading highlighted", "trace_id", s.traceID, "reading_index", index, "op", op)
	}
	return nil
}

func (s *Session) reject(op string, err error) error {
	s.metrics.RejectedOperations.WithLabelValues(op).Inc()
	s.logger.Warn("operation rejected", "op", op, "trace_id", s.traceID, "error", err)
	return err
}
