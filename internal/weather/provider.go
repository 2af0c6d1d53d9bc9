package weather

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrFetchFailed is returned by a Fetcher for any unsuccessful call: transport
	// failure, non-200 status or an undecodable body.
	ErrFetchFailed = errors.New("weather fetch failed")

	// ErrNoData is returned by Normalize when there is nothing to analyze.
	ErrNoData = errors.New("No data to analyze")
)

// Fetcher abstracts a weather data source (e.g. OpenWeatherMap).
type Fetcher interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (RawRecord, error)
}

// Store is the contract the report log must satisfy.
type Store interface {
	SaveReport(report Report)
	GetLatest(loc Location) (Report, error)
	GetRecent(loc Location, limit int) ([]Report, error)
}

// Recorder observes pipeline outcomes. Implementations must not block.
type Recorder interface {
	ObserveFetch(provider string, ok bool, elapsed time.Duration)
	ObserveReport(outcome string)
}
