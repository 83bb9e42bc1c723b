package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Candidate key spellings per canonical field, in priority order. The export
// mixes the registry's title-case column names with the dashboard's own
// camelCase re-export; first match wins.
var (
	nameKeys     = []string{"Name", "name"}
	latKeys      = []string{"Latitude", "lat"}
	lngKeys      = []string{"Longitude", "lng"}
	dateCTOKeys  = []string{"Date_of_CTO", "dateCTO"}
	validityKeys = []string{"Validity", "validity"}
)

// Default axis-swap thresholds, from the deployment's coordinate bands
// (latitude ≈ low 30s, longitude ≈ mid 70s). See the package doc.
const (
	DefaultLatSwapThreshold = 70.0
	DefaultLngSwapThreshold = 50.0
)

// Normalizer maps heterogeneous raw records into the canonical KilnRecord
// shape, correcting the upstream latitude/longitude axis swap. Normalization
// never fails: absent or malformed fields degrade to empty string or NaN.
type Normalizer struct {
	LatSwapThreshold float64
	LngSwapThreshold float64
}

// NewNormalizer creates a Normalizer with the given axis-swap thresholds.
func NewNormalizer(latSwap, lngSwap float64) Normalizer {
	return Normalizer{LatSwapThreshold: latSwap, LngSwapThreshold: lngSwap}
}

// DefaultNormalizer uses the deployment's observed thresholds.
func DefaultNormalizer() Normalizer {
	return NewNormalizer(DefaultLatSwapThreshold, DefaultLngSwapThreshold)
}

// Normalize resolves one raw record into the canonical shape. After the
// initial assignment, a latitude with magnitude above LatSwapThreshold paired
// with a longitude below LngSwapThreshold means the source recorded the pair
// under each other's key, and the two values are swapped. This is the single
// axis correction in the system; downstream code trusts the result.
func (n Normalizer) Normalize(raw RawRecord) KilnRecord {
	rec := KilnRecord{
		Name:     stringField(raw, nameKeys),
		Lat:      floatField(raw, latKeys),
		Lng:      floatField(raw, lngKeys),
		DateCTO:  stringField(raw, dateCTOKeys),
		Validity: stringField(raw, validityKeys),
	}

	if math.Abs(rec.Lat) > n.LatSwapThreshold && math.Abs(rec.Lng) < n.LngSwapThreshold {
		rec.Lat, rec.Lng = rec.Lng, rec.Lat
	}

	return rec
}

// stringField resolves the first present candidate key to a string,
// defaulting to empty.
func stringField(raw RawRecord, keys []string) string {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch s := v.(type) {
		case string:
			return s
		case float64:
			return strconv.FormatFloat(s, 'f', -1, 64)
		default:
			return fmt.Sprintf("%v", s)
		}
	}
	return ""
}

// floatField resolves the first present candidate key to a float64. A value
// that fails numeric coercion yields NaN rather than a default, so the
// validator can reject the record explicitly instead of plotting it at 0,0.
func floatField(raw RawRecord, keys []string) float64 {
	for _, k := range keys {
		v, ok := raw[k]
		if !ok || v == nil {
			continue
		}
		switch x := v.(type) {
		case float64:
			return x
		case string:
			f, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
			if err != nil {
				return math.NaN()
			}
			return f
		default:
			return math.NaN()
		}
	}
	return math.NaN()
}
