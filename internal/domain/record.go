package domain

import (
	"encoding/json"
	"math"
	"time"
)

// RawRecord is one element of the upstream kilns.json array, untyped because
// the export mixes key spellings and value types. A nil RawRecord stands for
// an array element that was not a JSON object.
type RawRecord map[string]any

// KilnRecord is the canonical record shape every downstream consumer sees.
// Coordinates are NaN when absent or malformed in the source; string fields
// degrade to empty, never nil. Records are immutable after normalization.
type KilnRecord struct {
	Name     string  `json:"name"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	DateCTO  string  `json:"dateCTO"`
	Validity string  `json:"validity"`
}

// HasCoordinates reports whether both coordinates carry numeric values.
func (r KilnRecord) HasCoordinates() bool {
	return !math.IsNaN(r.Lat) && !math.IsNaN(r.Lng)
}

// MarshalJSON encodes invalid coordinates as null, since NaN has no JSON
// representation.
func (r KilnRecord) MarshalJSON() ([]byte, error) {
	type wire struct {
		Name     string   `json:"name"`
		Lat      *float64 `json:"lat"`
		Lng      *float64 `json:"lng"`
		DateCTO  string   `json:"dateCTO"`
		Validity string   `json:"validity"`
	}
	w := wire{Name: r.Name, DateCTO: r.DateCTO, Validity: r.Validity}
	if !math.IsNaN(r.Lat) {
		w.Lat = &r.Lat
	}
	if !math.IsNaN(r.Lng) {
		w.Lng = &r.Lng
	}
	return json.Marshal(w)
}

// Status is the derived regulatory state of a kiln. It is recomputed from the
// validity field on demand, never stored on the record.
type Status string

const (
	StatusValid      Status = "valid"
	StatusExpired    Status = "expired"
	StatusProcessing Status = "processing"

	// StatusAll is only meaningful inside FilterCriteria and disables the
	// status filter.
	StatusAll Status = "all"
)

// Label returns the human-readable form used in popups and exports.
func (s Status) Label() string {
	switch s {
	case StatusValid:
		return "Valid"
	case StatusExpired:
		return "Expired"
	case StatusProcessing:
		return "Processing"
	default:
		return ""
	}
}

// StatusCounts aggregates per-status totals over coordinate-valid records.
type StatusCounts struct {
	Valid      int `json:"valid"`
	Expired    int `json:"expired"`
	Processing int `json:"processing"`
}

// FilterCriteria is an immutable snapshot of the active view. A fresh
// criteria replaces the old one wholesale on every change; the filter engine
// never sees a partial mutation.
type FilterCriteria struct {
	Status   Status `json:"status"`
	Search   string `json:"search"`
	DateFrom string `json:"dateFrom"`
	DateTo   string `json:"dateTo"`
}

// DefaultCriteria is the unfiltered view.
func DefaultCriteria() FilterCriteria {
	return FilterCriteria{Status: StatusAll}
}

// Summary is the headline state shown next to the map.
type Summary struct {
	Total       int          `json:"total"`
	Displayed   int          `json:"displayed"`
	Excluded    int          `json:"excluded"`
	Counts      StatusCounts `json:"counts"`
	LastUpdated time.Time    `json:"last_updated"`
}
