// Command genmock generates a mock kilns.json fixture for local development
// and test suites. It uses the actual domain package to classify what it
// emits, so the printed stats match real pipeline behavior.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/kilns.json -count 200
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/geoin-git/kiln-monitor/internal/domain"
)

// Punjab-ish bounding box for plausible kiln coordinates.
const (
	latMin = 29.5
	latMax = 32.5
	lngMin = 71.0
	lngMax = 75.5
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the kilns.json fixture")
	count := flag.Int("count", 200, "number of kiln records to generate")
	seed := flag.Int64("seed", 42, "random seed for reproducible fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	rng := rand.New(rand.NewSource(*seed))
	records := make([]domain.RawRecord, 0, *count)
	for i := 0; i < *count; i++ {
		records = append(records, makeRecord(rng, i))
	}

	if err := writeJSON(*out, records); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}
	log.Printf("wrote %d records: %s", len(records), *out)

	printStats(records)
	return nil
}

// makeRecord produces one raw record, cycling through the field-name and
// value shapes seen in the live feed so the normalizer gets exercised.
func makeRecord(rng *rand.Rand, i int) domain.RawRecord {
	lat := latMin + rng.Float64()*(latMax-latMin)
	lng := lngMin + rng.Float64()*(lngMax-lngMin)

	rec := domain.RawRecord{}

	// Alternate between canonical and camelCase key spellings.
	if i%2 == 0 {
		rec["Name"] = fmt.Sprintf("Kiln BK-%04d", i+1)
		rec["Latitude"] = lat
		rec["Longitude"] = lng
		rec["Date_of_CTO"] = randomDate(rng).Format("02-01-2006")
	} else {
		rec["name"] = fmt.Sprintf("Kiln BK-%04d", i+1)
		rec["lat"] = strconv.FormatFloat(lat, 'f', 6, 64)
		rec["lng"] = strconv.FormatFloat(lng, 'f', 6, 64)
		rec["dateCTO"] = randomDate(rng).Format("2006-01-02")
	}

	switch i % 10 {
	case 0, 1, 2, 3:
		rec["Validity"] = "Valid"
	case 4, 5:
		rec["Validity"] = "Not Valid"
	case 6:
		rec["Validity"] = "Under Process"
	case 7:
		// Expiry date relative to the default reference date.
		d := domain.DefaultReferenceDate.AddDate(0, 0, rng.Intn(730)-365)
		rec["validity"] = d.Format("2006-01-02")
	case 8:
		rec["Validity"] = ""
	case 9:
		// Swapped axes, fixed up by the normalizer at ingest.
		delete(rec, "Latitude")
		delete(rec, "Longitude")
		delete(rec, "lat")
		delete(rec, "lng")
		rec["Latitude"] = lng
		rec["Longitude"] = lat
		rec["Validity"] = "Valid"
	}

	// A few records with unusable coordinates, kept so totals and
	// excluded counts in tests have something to count.
	if i%37 == 0 {
		rec["Latitude"] = "n/a"
	}

	return rec
}

func randomDate(rng *rand.Rand) time.Time {
	start := time.Date(2018, time.January, 1, 0, 0, 0, 0, time.UTC)
	return start.AddDate(0, 0, rng.Intn(2500))
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}

func printStats(records []domain.RawRecord) {
	normalizer := domain.DefaultNormalizer()
	reference := domain.DefaultReferenceDate

	counts := domain.StatusCounts{}
	var excluded int
	for _, raw := range records {
		rec := normalizer.Normalize(raw)
		if ok, _ := domain.ValidateCoordinates(rec); !ok {
			excluded++
			continue
		}
		switch domain.Classify(rec.Validity, reference) {
		case domain.StatusValid:
			counts.Valid++
		case domain.StatusExpired:
			counts.Expired++
		case domain.StatusProcessing:
			counts.Processing++
		}
	}

	fmt.Println("\n=== Stats for updating test assertions ===")
	fmt.Printf("Total: %d\n", len(records))
	fmt.Printf("Excluded (bad coordinates): %d\n", excluded)
	fmt.Printf("By status: valid=%d, expired=%d, processing=%d\n",
		counts.Valid, counts.Expired, counts.Processing)
}
