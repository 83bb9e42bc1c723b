// Command validate performs integrity checks on a kilns.json dataset. It
// verifies the array shape, coordinate sanity, date parseability, and status
// distribution using the same domain code the service runs in production.
//
// Usage:
//
//	go run ./cmd/validate -json data/mock/kilns.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/geoin-git/kiln-monitor/internal/domain"
)

// phase tracks pass/fail for a validation phase.
type phase struct {
	name   string
	errors []string
}

func (p *phase) errorf(format string, args ...any) {
	p.errors = append(p.errors, fmt.Sprintf(format, args...))
}

func (p *phase) passed() bool { return len(p.errors) == 0 }

func main() {
	jsonPath := flag.String("json", "", "path to the kilns.json dataset")
	refStr := flag.String("reference", "", "reference date for status classification (YYYY-MM-DD, defaults to the built-in reference)")
	flag.Parse()

	if *jsonPath == "" {
		flag.Usage()
		os.Exit(1)
	}

	reference := domain.DefaultReferenceDate
	if *refStr != "" {
		d, err := time.Parse(time.DateOnly, *refStr)
		if err != nil {
			fmt.Fprintf(os.Stderr, "FATAL: invalid -reference: %v\n", err)
			os.Exit(1)
		}
		reference = d
	}

	if code := run(*jsonPath, reference); code != 0 {
		os.Exit(code)
	}
}

func run(jsonPath string, reference time.Time) int {
	fmt.Println("=== Kiln Dataset Integrity Validation ===")
	fmt.Println()

	records, shapePhase, ok := loadDataset(jsonPath)
	if !ok {
		return 1
	}

	normalizer := domain.DefaultNormalizer()
	kilns := make([]domain.KilnRecord, len(records))
	for i, r := range records {
		kilns[i] = normalizer.Normalize(r)
	}

	phases := []*phase{
		shapePhase,
		validateCoordinates(kilns),
		validateDates(kilns),
		validateStatuses(kilns, reference),
	}

	fmt.Println()
	allPassed := true
	for _, p := range phases {
		status := "\033[32mPASS\033[0m"
		if !p.passed() {
			status = fmt.Sprintf("\033[31mFAIL (%d errors)\033[0m", len(p.errors))
			allPassed = false
		}
		fmt.Printf("  %-42s %s\n", p.name, status)
	}

	fmt.Println()
	fmt.Printf("Records: %d\n", len(records))

	for _, p := range phases {
		if p.passed() {
			continue
		}
		fmt.Printf("\n--- %s ---\n", p.name)
		for i, e := range p.errors {
			fmt.Printf("  [%d] %s\n", i+1, e)
		}
	}

	if allPassed {
		fmt.Println("\nAll validations passed.")
		return 0
	}
	fmt.Println("\nValidation FAILED.")
	return 1
}

// loadDataset reads the file and checks the top-level shape: a JSON array
// whose elements are objects. Non-object elements are reported but the rest
// of the dataset is still validated, matching how the service ingests them.
func loadDataset(path string) ([]domain.RawRecord, *phase, bool) {
	p := &phase{name: "dataset shape"}

	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: read dataset: %v\n", err)
		return nil, p, false
	}

	var elements []any
	if err := json.Unmarshal(data, &elements); err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: dataset is not a JSON array: %v\n", err)
		return nil, p, false
	}

	records := make([]domain.RawRecord, len(elements))
	for i, el := range elements {
		obj, ok := el.(map[string]any)
		if !ok {
			p.errorf("element %d is not a JSON object (%T)", i, el)
			continue
		}
		records[i] = domain.RawRecord(obj)
	}

	if len(records) == 0 {
		p.errorf("dataset is empty")
	}

	return records, p, true
}

func validateCoordinates(kilns []domain.KilnRecord) *phase {
	p := &phase{name: "coordinates"}

	var invalid int
	for i, k := range kilns {
		ok, reason := domain.ValidateCoordinates(k)
		if !ok {
			invalid++
			if invalid <= 10 {
				p.errorf("record %d (%q): %s (lat=%g lng=%g)", i, k.Name, reason, k.Lat, k.Lng)
			}
			continue
		}
		// A latitude above the swap threshold paired with a small
		// longitude means the normalizer failed to fix a swap.
		if k.Lat > domain.DefaultLatSwapThreshold {
			p.errorf("record %d (%q): latitude %g still above swap threshold", i, k.Name, k.Lat)
		}
	}
	if invalid > 10 {
		p.errorf("... and %d more records with invalid coordinates", invalid-10)
	}
	return p
}

func validateDates(kilns []domain.KilnRecord) *phase {
	p := &phase{name: "CTO dates"}

	for i, k := range kilns {
		if strings.TrimSpace(k.DateCTO) == "" {
			continue
		}
		if _, ok := domain.ParseDate(k.DateCTO); !ok {
			p.errorf("record %d (%q): unparseable CTO date %q", i, k.Name, k.DateCTO)
		}
	}
	return p
}

func validateStatuses(kilns []domain.KilnRecord, reference time.Time) *phase {
	p := &phase{name: "status distribution"}

	counts := domain.StatusCounts{}
	for _, k := range kilns {
		if ok, _ := domain.ValidateCoordinates(k); !ok {
			continue
		}
		switch domain.Classify(k.Validity, reference) {
		case domain.StatusValid:
			counts.Valid++
		case domain.StatusExpired:
			counts.Expired++
		case domain.StatusProcessing:
			counts.Processing++
		}
	}

	fmt.Printf("Status counts (reference %s): valid=%d, expired=%d, processing=%d\n",
		reference.Format(time.DateOnly), counts.Valid, counts.Expired, counts.Processing)

	if counts.Valid+counts.Expired+counts.Processing == 0 && len(kilns) > 0 {
		p.errorf("no displayable records after coordinate validation")
	}
	return p
}
