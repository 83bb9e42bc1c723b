package domain

import (
	"strings"
	"time"
)

// DefaultReferenceDate is the comparison date the dashboard shipped with.
// Deployments override it through configuration; the classifier itself takes
// it as a parameter so its output is never silently time-dependent.
var DefaultReferenceDate = time.Date(2025, time.November, 9, 0, 0, 0, 0, time.UTC)

// Classify derives the regulatory status from a kiln's validity field.
// Pure: same inputs, same output. Recomputed on every pass, never memoized,
// because the reference date is a parameter.
func Classify(validity string, reference time.Time) Status {
	v := strings.ToLower(strings.TrimSpace(validity))
	if v == "" {
		return StatusProcessing
	}

	switch v {
	case "valid":
		return StatusValid
	case "not valid", "notvalid", "not_valid":
		return StatusExpired
	case "under process", "underprocess", "under_process":
		return StatusProcessing
	}

	// Not a recognized phrase: treat as an expiry date.
	if d, ok := parseGenericDate(validity); ok {
		if d.Before(reference) {
			return StatusExpired
		}
		return StatusValid
	}

	return StatusProcessing
}
