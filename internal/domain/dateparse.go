package domain

import (
	"strconv"
	"strings"
	"time"
)

// genericLayouts are tried in order by the fallback parser: ISO dates and
// timestamps first, then the slash and written-month forms seen in older
// exports.
var genericLayouts = []string{
	time.DateOnly,
	time.RFC3339,
	"2006/01/02",
	"01/02/2006",
	"January 2, 2006",
	"Jan 2, 2006",
	"2 January 2006",
}

// ParseDate parses a kiln date field. The dominant upstream format is
// dash-separated day-month-year ("09-11-2025" is 9 November 2025), so that
// interpretation is tried first; the generic layouts are a fallback only.
// Ambiguous strings therefore resolve as day-month-year, not ISO.
func ParseDate(value string) (time.Time, bool) {
	if t, ok := parseDMY(value); ok {
		return t, true
	}
	return parseGenericDate(value)
}

// parseDMY parses three dash-separated integers as day-month-year. All three
// components must parse for this branch to succeed; out-of-range components
// normalize the way calendar arithmetic does.
func parseDMY(value string) (time.Time, bool) {
	parts := strings.Split(strings.TrimSpace(value), "-")
	if len(parts) != 3 {
		return time.Time{}, false
	}

	day, errD := strconv.Atoi(strings.TrimSpace(parts[0]))
	month, errM := strconv.Atoi(strings.TrimSpace(parts[1]))
	year, errY := strconv.Atoi(strings.TrimSpace(parts[2]))
	if errD != nil || errM != nil || errY != nil {
		return time.Time{}, false
	}

	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC), true
}

// parseGenericDate tries the generic layouts in order. Filter bounds and
// validity dates use this directly, skipping the day-month-year branch.
func parseGenericDate(value string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}
	for _, layout := range genericLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), true
		}
	}
	return time.Time{}, false
}
