package domain

import (
	"strings"
	"time"
)

// FilterRecords applies the criteria over the normalized set and returns the
// displayable subset in original order. The three filters compose as a
// logical AND and each is independently optional; empty criteria return the
// full set (filters never compound irreversibly).
func FilterRecords(records []KilnRecord, c FilterCriteria, reference time.Time) []KilnRecord {
	byStatus := c.Status != "" && c.Status != StatusAll
	query := strings.ToLower(strings.TrimSpace(c.Search))

	// Bounds come from the dashboard's date inputs in ISO form, so they use
	// the generic parse only. The "to" day extends to its last instant so a
	// same-day CTO matches inclusively.
	byDate := c.DateFrom != "" || c.DateTo != ""
	from, hasFrom := parseGenericDate(c.DateFrom)
	to, hasTo := parseGenericDate(c.DateTo)
	if hasTo {
		to = to.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}

	out := make([]KilnRecord, 0, len(records))
	for _, rec := range records {
		if byStatus && Classify(rec.Validity, reference) != c.Status {
			continue
		}
		if query != "" && !strings.Contains(strings.ToLower(rec.Name), query) {
			continue
		}
		if byDate {
			d, ok := ParseDate(rec.DateCTO)
			if !ok {
				// Any active date bound excludes records without a usable
				// CTO date, whatever their status.
				continue
			}
			if hasFrom && d.Before(from) {
				continue
			}
			if hasTo && d.After(to) {
				continue
			}
		}
		out = append(out, rec)
	}
	return out
}
