package domain

import "fmt"

// FaultThreshold is the temperature (°C) at or above which a reading is a fault.
const FaultThreshold = 70.0

// AnomalyEntry links a fault-log row to the reading it describes.
type AnomalyEntry struct {
	LogRow       int `json:"log_row"`
	ReadingIndex int `json:"reading_index"`
}

// AnomalyIndex is the ordered list of faults in a reading set together with
// the log-row ↔ reading-index mappings. Both mappings are built in the same
// scan and never change afterwards.
type AnomalyIndex struct {
	threshold    float64
	readingByRow []int       // log row → reading index, total over [0, Len)
	rowByReading map[int]int // reading index → log row, faults only
}

// BuildAnomalyIndex scans set in acquisition order and records every reading
// with Temp >= threshold. Log rows are assigned 0, 1, 2, … in discovery order.
// A set without faults yields an empty index.
func BuildAnomalyIndex(set *ReadingSet, threshold float64) *AnomalyIndex {
	idx := &AnomalyIndex{
		threshold:    threshold,
		readingByRow: []int{},
		rowByReading: make(map[int]int),
	}
	for r := range set.All() {
		if r.Temp >= threshold {
			idx.rowByReading[r.Index] = len(idx.readingByRow)
			idx.readingByRow = append(idx.readingByRow, r.Index)
		}
	}
	return idx
}

// Entries returns the faults in log-row order.
func (a *AnomalyIndex) Entries() []AnomalyEntry {
	entries := make([]AnomalyEntry, len(a.readingByRow))
	for row, readingIndex := range a.readingByRow {
		entries[row] = AnomalyEntry{LogRow: row, ReadingIndex: readingIndex}
	}
	return entries
}

// Len returns the number of faults.
func (a *AnomalyIndex) Len() int { return len(a.readingByRow) }

// Threshold returns the threshold the index was built with.
func (a *AnomalyIndex) Threshold() float64 { return a.threshold }

// ReadingIndexFor resolves a log row to its reading index.
func (a *AnomalyIndex) ReadingIndexFor(logRow int) (int, bool) {
	if logRow < 0 || logRow >= len(a.readingByRow) {
		return 0, false
	}
	return a.readingByRow[logRow], true
}

// LogRowFor resolves a reading index to its log row. Readings below the
// threshold have no row; that is reported as false, not as an error.
func (a *AnomalyIndex) LogRowFor(readingIndex int) (int, bool) {
	row, ok := a.rowByReading[readingIndex]
	return row, ok
}

// FaultText is the fault-log line for a reading, numbered from 1.
func FaultText(r Reading) string {
	return fmt.Sprintf("[%d] Fault: %.1f°C", r.Index+1, r.Temp)
}
