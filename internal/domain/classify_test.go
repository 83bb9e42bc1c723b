package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

var testReference = time.Date(2025, time.November, 9, 0, 0, 0, 0, time.UTC)

func TestClassify(t *testing.T) {
	tests := []struct {
		name     string
		validity string
		want     Status
	}{
		{"empty", "", StatusProcessing},
		{"blank", "   ", StatusProcessing},
		{"valid lowercase", "valid", StatusValid},
		{"valid mixed case", "Valid", StatusValid},
		{"valid padded", "  VALID  ", StatusValid},
		{"not valid", "not valid", StatusExpired},
		{"NOT VALID", "NOT VALID", StatusExpired},
		{"notvalid", "notvalid", StatusExpired},
		{"not_valid", "not_valid", StatusExpired},
		{"under process", "under process", StatusProcessing},
		{"underprocess", "underprocess", StatusProcessing},
		{"under_process", "under_process", StatusProcessing},
		{"future date", "2030-01-01", StatusValid},
		{"past date", "2020-01-01", StatusExpired},
		{"reference date itself", "2025-11-09", StatusValid},
		{"day before reference", "2025-11-08", StatusExpired},
		{"garbage text", "garbage text", StatusProcessing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.validity, testReference))
		})
	}
}

func TestClassify_ReferenceIsParameter(t *testing.T) {
	// The same validity string flips status when the reference moves.
	assert.Equal(t, StatusValid, Classify("2026-06-01", testReference))
	later := time.Date(2027, time.January, 1, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, StatusExpired, Classify("2026-06-01", later))
}
