package domain

import "math"

// Legal WGS-84 coordinate ranges in degrees.
const (
	MinLatitude  = -90.0
	MaxLatitude  = 90.0
	MinLongitude = -180.0
	MaxLongitude = 180.0
)

// RejectReason says why a record's coordinates were rejected, for logging.
type RejectReason string

const (
	ReasonNone RejectReason = ""

	// The not-a-number reasons cover both an absent coordinate and one that
	// failed numeric coercion; the normalizer collapses the two into NaN.
	ReasonLatNotANumber RejectReason = "lat_not_a_number"
	ReasonLngNotANumber RejectReason = "lng_not_a_number"
	ReasonLatOutOfRange RejectReason = "lat_out_of_range"
	ReasonLngOutOfRange RejectReason = "lng_out_of_range"
)

// ValidateCoordinates reports whether a record can be placed on the map.
// Rejected records are excluded from display and per-status counters but stay
// in the base set used for search and export.
func ValidateCoordinates(rec KilnRecord) (bool, RejectReason) {
	switch {
	case math.IsNaN(rec.Lat):
		return false, ReasonLatNotANumber
	case math.IsNaN(rec.Lng):
		return false, ReasonLngNotANumber
	case rec.Lat < MinLatitude || rec.Lat > MaxLatitude:
		return false, ReasonLatOutOfRange
	case rec.Lng < MinLongitude || rec.Lng > MaxLongitude:
		return false, ReasonLngOutOfRange
	}
	return true, ReasonNone
}
