package weather

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
)

// FetchFailedText is the user-facing message for any failed provider call.
const FetchFailedText = "Error: Unable to fetch weather data. Please check the location and API key."

// Report outcomes used for metrics.
const (
	OutcomeOK          = "ok"
	OutcomeFetchFailed = "fetch_failed"
	OutcomeNoData      = "no_data"
)

// Service composes Fetcher -> Normalize -> Present and keeps a log of the
// reports it produced.
type Service struct {
	fetcher  Fetcher
	store    Store
	recorder Recorder
	now      func() time.Time
}

// ServiceOption configures optional collaborators of a Service.
type ServiceOption func(*Service)

// WithStore attaches a report log.
func WithStore(store Store) ServiceOption {
	return func(s *Service) {
		s.store = store
	}
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(rec Recorder) ServiceOption {
	return func(s *Service) {
		s.recorder = rec
	}
}

// NewService creates a new Service.
func NewService(fetcher Fetcher, opts ...ServiceOption) *Service {
	s := &Service{
		fetcher: fetcher,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Report runs the pipeline once for loc. Failures are folded into the report
// text; the returned report is never empty.
func (s *Service) Report(ctx context.Context, loc Location) Report {
	report := Report{
		ID:        uuid.NewString(),
		Location:  loc,
		CreatedAt: s.now().UTC(),
	}

	started := time.Now()
	raw, err := s.fetcher.Fetch(ctx, loc)
	if err == nil && len(raw) == 0 {
		// A 200 with a null or empty body is no answer at all.
		err = fmt.Errorf("%w: empty body", ErrFetchFailed)
	}
	s.observeFetch(err == nil, time.Since(started))
	if err != nil {
		log.Printf("provider %s fetch failed for %q: %v", s.fetcher.Name(), loc, err)
		report.Text = FetchFailedText
		return s.finish(report, OutcomeFetchFailed)
	}

	reading, err := Normalize(raw)
	if err != nil {
		report.Text = err.Error()
		return s.finish(report, OutcomeNoData)
	}

	log.Printf("DEBUG: normalized %q: %s", loc, reading)
	report.Reading = &reading
	report.Text = Present(&reading)
	report.OK = true
	return s.finish(report, OutcomeOK)
}

// ReportText runs the pipeline and returns only the display text.
func (s *Service) ReportText(ctx context.Context, loc Location) string {
	return s.Report(ctx, loc).Text
}

// Latest returns the most recent logged report for loc.
func (s *Service) Latest(loc Location) (Report, error) {
	if s.store == nil {
		return Report{}, ErrNoStore
	}
	return s.store.GetLatest(loc)
}

// Recent returns up to limit logged reports for loc, newest first.
func (s *Service) Recent(loc Location, limit int) ([]Report, error) {
	if s.store == nil {
		return nil, ErrNoStore
	}
	return s.store.GetRecent(loc, limit)
}

// ErrNoStore is returned by the log accessors when no store is attached.
var ErrNoStore = errors.New("report log not configured")

func (s *Service) finish(report Report, outcome string) Report {
	if s.store != nil {
		s.store.SaveReport(report)
	}
	if s.recorder != nil {
		s.recorder.ObserveReport(outcome)
	}
	return report
}

func (s *Service) observeFetch(ok bool, elapsed time.Duration) {
	if s.recorder != nil {
		s.recorder.ObserveFetch(s.fetcher.Name(), ok, elapsed)
	}
}
