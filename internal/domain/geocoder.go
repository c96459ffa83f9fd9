package domain

import "context"

// Place is the reverse-geocoded location of a reading.
type Place struct {
	Name      string  `json:"name"`    // short name, e.g. "Tianhe"
	Address   string  `json:"address"` // full formatted address
	Lon       float64 `json:"lon"`
	Lat       float64 `json:"lat"`
	Relevance float64 `json:"relevance"` // 0.0–1.0
}

// Found reports whether the lookup matched anything.
func (p Place) Found() bool { return p.Address != "" }

// Geocoder annotates map positions with place names.
type Geocoder interface {
	// ReverseGeocode returns the place at lat/lon. A zero Place with a nil
	// error means nothing was found.
	ReverseGeocode(ctx context.Context, lat, lon float64) (Place, error)
}
