package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateCoordinates(t *testing.T) {
	tests := []struct {
		name   string
		rec    KilnRecord
		ok     bool
		reason RejectReason
	}{
		{"in range", KilnRecord{Lat: 33.8, Lng: 74.8}, true, ReasonNone},
		{"boundary values", KilnRecord{Lat: -90, Lng: 180}, true, ReasonNone},
		{"lat too large", KilnRecord{Lat: 91, Lng: 0}, false, ReasonLatOutOfRange},
		{"lat too small", KilnRecord{Lat: -90.5, Lng: 0}, false, ReasonLatOutOfRange},
		{"lng too large", KilnRecord{Lat: 0, Lng: 180.1}, false, ReasonLngOutOfRange},
		{"lat NaN", KilnRecord{Lat: math.NaN(), Lng: 10}, false, ReasonLatNotANumber},
		{"lng NaN", KilnRecord{Lat: 10, Lng: math.NaN()}, false, ReasonLngNotANumber},
		{"both NaN reports lat first", KilnRecord{Lat: math.NaN(), Lng: math.NaN()}, false, ReasonLatNotANumber},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, reason := ValidateCoordinates(tt.rec)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.reason, reason)
		})
	}
}

func TestValidateCoordinates_FromRawShapes(t *testing.T) {
	n := DefaultNormalizer()

	ok, _ := ValidateCoordinates(n.Normalize(RawRecord{"lat": "abc", "lng": 10.0}))
	assert.False(t, ok)

	ok, _ = ValidateCoordinates(n.Normalize(RawRecord{"lng": 10.0}))
	assert.False(t, ok)

	ok, reason := ValidateCoordinates(n.Normalize(RawRecord{"lat": 33.8, "lng": 74.8}))
	assert.True(t, ok)
	assert.Equal(t, ReasonNone, reason)
}
