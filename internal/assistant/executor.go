// Package assistant holds the user-facing callers of the weather pipeline: a
// free-text task executor and a plain location report.
package assistant

import (
	"context"
	"log"

	"github.com/i474232898/weather-assistant/internal/common"
	"github.com/i474232898/weather-assistant/internal/weather"
)

const (
	// UnsupportedTaskText answers any request that is not about the weather.
	UnsupportedTaskText = "Sorry, I can only assist with weather-related tasks at the moment."

	// MissingLocationText answers a location report request with no location.
	MissingLocationText = "Please enter a location."
)

// Reporter produces weather report text for a location.
type Reporter interface {
	ReportText(ctx context.Context, loc weather.Location) string
}

// Executor routes user requests to the weather pipeline.
type Executor struct {
	reporter Reporter
}

// NewExecutor creates a new Executor.
func NewExecutor(reporter Reporter) *Executor {
	return &Executor{reporter: reporter}
}

// HandleInput answers a free-text task. Weather tasks use the whole input as
// the location, so "London weather" is sent to the provider verbatim.
func (e *Executor) HandleInput(ctx context.Context, input string) string {
	if !common.HasAnyFold(input, "weather") {
		log.Printf("DEBUG: declined task %q", input)
		return UnsupportedTaskText
	}
	return e.reporter.ReportText(ctx, weather.Location(input))
}

// LocationReport answers a request for a specific location.
func (e *Executor) LocationReport(ctx context.Context, location string) string {
	loc := weather.Location(location)
	if loc.IsEmpty() {
		return MissingLocationText
	}
	return e.reporter.ReportText(ctx, loc)
}
