// Package domain models a simulated sensor traversal: an ordered sequence of
// geo-tagged temperature readings and everything derived from it for display.
//
// # Readings
//
// A [Reading] is one sample in acquisition order. Its Index is its position in
// that order and is the only cross-reference key used by the rest of the
// system: the fault log, the map, and the highlight all talk about readings
// by index. A [ReadingSet] owns the readings for one loaded trace and is
// replaced wholesale on every load, never mutated in place.
//
// # Colour calibration
//
// Point colour encodes temperature on a fixed absolute scale, not the range
// observed in the current trace, so two traces are comparable side by side:
//
//	0 °C   → hue 240 (blue, cold)
//	240 °C → hue 0   (red, hot)
//
// Temperatures outside 0–240 °C are clamped. Hues strictly inside (60, 180)
// are green/yellow and hard to read against a basemap, so they snap to the
// nearer edge: above 120 → 180, otherwise → 60. Saturation and value are
// always full.
//
// The legend labels, in contrast, show the observed min/max of the loaded
// trace. The two ranges answer different questions ("what did we see" versus
// "how bad is this colour") and must not be unified.
//
// # Faults
//
// A reading at or above [FaultThreshold] (70 °C) is a fault. Faults are listed
// in discovery order; the n-th fault sits at log row n. [AnomalyIndex] keeps
// the row→reading and reading→row mappings side by side so the log list and
// the map can address each other.
//
// # Highlight
//
// At most one reading is highlighted at a time. [HighlightCoordinator] owns
// that state and reports, for each transition, where to put the marker and
// which viewport to centre on (±[DefaultHalfSpan] degrees around the reading).
package domain
