// Command genmock writes a simulated traversal as a trace fixture for
// `thermaltrace --trace`. A fixed seed makes the output reproducible.
//
// Usage:
//
//	go run ./cmd/genmock -points 100 -seed 42 -out data/mock/traversal_100.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/couchcryptid/thermal-trace/internal/domain"
	"github.com/couchcryptid/thermal-trace/internal/session"
	"github.com/couchcryptid/thermal-trace/internal/simulate"
)

// sample is the trace-file shape; the index is implied by position.
type sample struct {
	Lon  float64 `json:"lon"`
	Lat  float64 `json:"lat"`
	Temp float64 `json:"temp"`
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	points := flag.Int("points", 100, "number of readings to generate")
	seed := flag.Uint64("seed", 1, "random seed (0 = time-based)")
	out := flag.String("out", "", "output path for the JSON trace fixture")
	flag.Parse()

	if *out == "" || *points <= 0 {
		flag.Usage()
		return fmt.Errorf("missing required flags: -out, -points > 0")
	}

	readings := simulate.Traversal(*points, simulate.NewRand(*seed))
	samples := make([]sample, len(readings))
	for i, r := range readings {
		samples[i] = sample{Lon: r.Lon, Lat: r.Lat, Temp: r.Temp}
	}

	if err := writeJSON(*out, samples); err != nil {
		return fmt.Errorf("writing trace fixture: %w", err)
	}
	log.Printf("wrote trace fixture: %s (%d readings)", *out, len(samples))

	return printStats(readings)
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

// printStats reports the numbers tests built on the fixture assert against.
func printStats(readings []domain.Reading) error {
	set, err := domain.Load(readings)
	if err != nil {
		return err
	}
	faults := domain.BuildAnomalyIndex(set, session.DefaultOptions().Threshold)
	legend := domain.LegendLabels(set)

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Readings: %d\n", set.Len())
	fmt.Printf("Faults (>= %g°C): %d\n", faults.Threshold(), faults.Len())
	fmt.Printf("Legend: %s .. %s\n", legend.MinLabel, legend.MaxLabel)
	b := set.Bounds()
	fmt.Printf("Bounds: lon [%g, %g], lat [%g, %g]\n", b.MinLon, b.MaxLon, b.MinLat, b.MaxLat)
	for _, e := range faults.Entries() {
		r, _ := set.Get(e.ReadingIndex)
		fmt.Printf("  %s\n", domain.FaultText(r))
	}
	return nil
}
