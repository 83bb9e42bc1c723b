// Package domain models the J&K Pollution Control Board brick kiln registry.
//
// # Data Source
//
// Kiln records come from a GitHub-hosted kilns.json file maintained by the
// board's GIS office. The file is a JSON array of loosely structured objects:
// successive exports have used different key spellings for the same field, so
// every field is resolved through an ordered candidate-key list (first match
// wins):
//
//	name      →  "Name", "name"
//	latitude  →  "Latitude", "lat"
//	longitude →  "Longitude", "lng"
//	CTO date  →  "Date_of_CTO", "dateCTO"
//	validity  →  "Validity", "validity"
//
// # Axis Swap
//
// A known defect in the upstream export records latitude and longitude under
// each other's key. The deployment geography makes the defect detectable:
// kilns in the region sit near latitude 33 and longitude 74, so a "latitude"
// above 70 paired with a "longitude" below 50 can only be a swapped pair.
// [Normalizer] corrects it once at ingestion; nothing downstream re-checks
// axis order. The 70/50 thresholds encode this deployment's plausible
// coordinate bands, not a geographic rule, and are therefore configurable.
//
// # Validity Field
//
// Free text or a date. Recognized spellings (case-insensitive, trimmed):
//
//	"valid"                                          →  Valid
//	"not valid", "notvalid", "not_valid"             →  Expired
//	"under process", "underprocess", "under_process" →  Processing
//
// Anything else is tried as a date and compared against a reference date
// injected by configuration: on or after the reference is Valid, before it is
// Expired, unparseable is Processing. Blank is Processing.
//
// # Date Formats
//
// CTO dates are dash-separated day-month-year ("09-11-2025" is 9 November).
// [ParseDate] tries that interpretation first and only then falls back to the
// generic layouts, so ambiguous strings resolve as day-month-year; callers
// must not assume ISO ordering. Filter bounds from the dashboard's date
// inputs arrive in ISO form and use the generic parse only.
//
// # Invalid Coordinates
//
// A coordinate that is absent or fails numeric coercion becomes NaN rather
// than a default, so [ValidateCoordinates] can reject it with a reason code.
// Rejected records are excluded from the map feed and the per-status counters
// but deliberately remain in the base set used for search and export; the
// upstream dashboard behaves this way and the asymmetry is preserved pending
// product clarification.
package domain
