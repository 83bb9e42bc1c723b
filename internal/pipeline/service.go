package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/geoin-git/kiln-monitor/internal/domain"
	"github.com/geoin-git/kiln-monitor/internal/observability"
)

// Fetcher retrieves the raw dataset from the upstream source.
type Fetcher interface {
	FetchDataset(ctx context.Context) ([]domain.RawRecord, error)
}

// Publisher receives the full normalized record set after each successful
// refresh.
type Publisher interface {
	PublishSnapshot(ctx context.Context, records []domain.KilnRecord) error
}

// Service owns the process-wide dashboard state: the normalized record set,
// the active filter criteria, and the filtered view. All derived state is
// replaced wholesale on each refresh, never merged incrementally, and
// presentation collaborators read it through accessor calls.
type Service struct {
	fetcher    Fetcher
	publisher  Publisher // nil disables snapshot publishing
	normalizer domain.Normalizer
	reference  time.Time
	logger     *slog.Logger
	metrics    *observability.Metrics
	clock      clockwork.Clock
	ready      atomic.Bool

	mu       sync.RWMutex
	records  []domain.KilnRecord
	filtered []domain.KilnRecord
	criteria domain.FilterCriteria
	summary  domain.Summary
}

// New creates a Service. Pass a nil publisher to disable snapshot publishing.
func New(f Fetcher, p Publisher, n domain.Normalizer, reference time.Time, logger *slog.Logger, metrics *observability.Metrics) *Service {
	return &Service{
		fetcher:    f,
		publisher:  p,
		normalizer: n,
		reference:  reference,
		logger:     logger,
		metrics:    metrics,
		clock:      clockwork.NewRealClock(),
		criteria:   domain.DefaultCriteria(),
	}
}

// SetClock swaps the time source used for the last-updated timestamp. Pass
// nil to reset to real time.
func (s *Service) SetClock(c clockwork.Clock) {
	if c == nil {
		s.clock = clockwork.NewRealClock()
		return
	}
	s.clock = c
}

// CheckReadiness returns nil once at least one refresh has succeeded.
func (s *Service) CheckReadiness(_ context.Context) error {
	if !s.ready.Load() {
		return errors.New("no dataset loaded yet")
	}
	return nil
}

// Refresh fetches the dataset and rebuilds all derived state from scratch.
// A transport or format error aborts only this cycle: the previously
// displayed state is left untouched and the periodic scheduler retries.
func (s *Service) Refresh(ctx context.Context) error {
	start := time.Now()
	raw, err := s.fetcher.FetchDataset(ctx)
	s.metrics.FetchDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		s.metrics.FetchErrors.Inc()
		return fmt.Errorf("refresh dataset: %w", err)
	}

	// Every element yields a normalized record and all of them are retained;
	// coordinate-invalid ones are only excluded from counters and display.
	records := make([]domain.KilnRecord, 0, len(raw))
	var counts domain.StatusCounts
	excluded := 0
	for i, r := range raw {
		rec := s.normalizer.Normalize(r)
		records = append(records, rec)

		ok, reason := domain.ValidateCoordinates(rec)
		if !ok {
			excluded++
			s.metrics.RecordErrors.Inc()
			s.logger.Debug("record excluded from display",
				"index", i, "name", rec.Name, "reason", string(reason))
			continue
		}

		switch domain.Classify(rec.Validity, s.reference) {
		case domain.StatusValid:
			counts.Valid++
		case domain.StatusExpired:
			counts.Expired++
		default:
			counts.Processing++
		}
	}

	s.mu.Lock()
	s.records = records
	s.summary = domain.Summary{
		Total:       len(records),
		Excluded:    excluded,
		Counts:      counts,
		LastUpdated: s.clock.Now(),
	}
	s.applyCriteriaLocked()
	displayed := s.summary.Displayed
	s.mu.Unlock()

	s.metrics.RefreshesTotal.Inc()
	s.metrics.RecordsLoaded.Set(float64(len(records)))
	s.metrics.RecordsExcluded.Set(float64(excluded))
	s.metrics.RecordsDisplayed.Set(float64(displayed))
	s.metrics.StatusRecords.WithLabelValues(string(domain.StatusValid)).Set(float64(counts.Valid))
	s.metrics.StatusRecords.WithLabelValues(string(domain.StatusExpired)).Set(float64(counts.Expired))
	s.metrics.StatusRecords.WithLabelValues(string(domain.StatusProcessing)).Set(float64(counts.Processing))
	s.ready.Store(true)

	s.logger.Info("dataset refreshed",
		"total", len(records),
		"excluded", excluded,
		"valid", counts.Valid,
		"expired", counts.Expired,
		"processing", counts.Processing,
	)

	if s.publisher != nil {
		// Publishing is a side output; a broker outage must not fail the refresh.
		if err := s.publisher.PublishSnapshot(ctx, records); err != nil {
			s.metrics.PublishErrors.Inc()
			s.logger.Warn("snapshot publish failed", "error", err)
		}
	}

	return nil
}

// SetCriteria replaces the active criteria wholesale and recomputes the
// filtered view. Empty status means "all".
func (s *Service) SetCriteria(c domain.FilterCriteria) {
	if c.Status == "" {
		c.Status = domain.StatusAll
	}

	s.mu.Lock()
	s.criteria = c
	s.applyCriteriaLocked()
	displayed := s.summary.Displayed
	s.mu.Unlock()

	s.metrics.FilterPasses.Inc()
	s.metrics.RecordsDisplayed.Set(float64(displayed))
}

// applyCriteriaLocked recomputes the filtered view. Callers hold s.mu.
func (s *Service) applyCriteriaLocked() {
	s.filtered = domain.FilterRecords(s.records, s.criteria, s.reference)
	s.summary.Displayed = len(s.filtered)
}

// Criteria returns the active filter criteria snapshot.
func (s *Service) Criteria() domain.FilterCriteria {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.criteria
}

// Records returns the full normalized set, including coordinate-invalid
// records.
func (s *Service) Records() []domain.KilnRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.KilnRecord, len(s.records))
	copy(out, s.records)
	return out
}

// Filtered returns the current filtered view in original record order.
func (s *Service) Filtered() []domain.KilnRecord {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.KilnRecord, len(s.filtered))
	copy(out, s.filtered)
	return out
}

// Summary returns the headline counters.
func (s *Service) Summary() domain.Summary {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.summary
}
