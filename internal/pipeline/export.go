package pipeline

import (
	"math"
	"strconv"

	"github.com/geoin-git/kiln-monitor/internal/domain"
)

// exportColumns matches the spreadsheet layout the board's office expects.
var exportColumns = []string{"Name", "Latitude", "Longitude", "Date of CTO", "Valid Till", "Status"}

// ExportTable projects the filtered view into export-ready rows, header row
// first. Coordinates use the dashboard's 5-decimal display precision;
// invalid ones render empty.
func (s *Service) ExportTable() [][]string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows := make([][]string, 0, len(s.filtered)+1)
	rows = append(rows, exportColumns)
	for _, rec := range s.filtered {
		rows = append(rows, []string{
			rec.Name,
			formatCoordinate(rec.Lat),
			formatCoordinate(rec.Lng),
			rec.DateCTO,
			rec.Validity,
			domain.Classify(rec.Validity, s.reference).Label(),
		})
	}
	return rows
}

func formatCoordinate(v float64) string {
	if math.IsNaN(v) {
		return ""
	}
	return strconv.FormatFloat(v, 'f', 5, 64)
}
