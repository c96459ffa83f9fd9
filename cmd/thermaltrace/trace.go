package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/couchcryptid/thermal-trace/internal/domain"
)

// traceSample is one element of a trace file.
type traceSample struct {
	Lon  *float64 `json:"lon"`
	Lat  *float64 `json:"lat"`
	Temp *float64 `json:"temp"`
}

// readTrace parses a JSON array of {lon, lat, temp} samples in acquisition order.
func readTrace(path string) ([]domain.Reading, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read trace: %w", err)
	}
	return parseTrace(data)
}

func parseTrace(data []byte) ([]domain.Reading, error) {
	var samples []traceSample
	if err := json.Unmarshal(data, &samples); err != nil {
		return nil, fmt.Errorf("parse trace: %w", err)
	}

	readings := make([]domain.Reading, len(samples))
	for i, s := range samples {
		if s.Lon == nil || s.Lat == nil || s.Temp == nil {
			return nil, fmt.Errorf("parse trace: sample %d: lon, lat and temp are required", i)
		}
		readings[i] = domain.Reading{Index: i, Lon: *s.Lon, Lat: *s.Lat, Temp: *s.Temp}
	}
	return readings, nil
}
