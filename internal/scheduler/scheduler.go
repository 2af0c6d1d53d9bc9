package scheduler

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/go-co-op/gocron"
	"github.com/i474232898/weather-assistant/internal/weather"
)

// Reporter produces a weather report for a location.
type Reporter interface {
	Report(ctx context.Context, loc weather.Location) weather.Report
}

// Scheduler periodically produces reports for watched locations.
type Scheduler struct {
	scheduler *gocron.Scheduler
	reporter  Reporter
	locations []weather.Location
	interval  time.Duration
}

// New creates a new Scheduler.
func New(locations []weather.Location, interval time.Duration, reporter Reporter) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	return &Scheduler{
		scheduler: s,
		reporter:  reporter,
		locations: locations,
		interval:  interval,
	}
}

// Start schedules the periodic job and starts the underlying scheduler.
func (s *Scheduler) Start() error {
	if len(s.locations) == 0 {
		log.Println("scheduler: no locations configured; nothing to schedule")
		return nil
	}

	minutes := int(s.interval.Minutes())
	if minutes <= 0 {
		minutes = 15
	}

	_, err := s.scheduler.Every(minutes).Minutes().Do(s.RunOnce)
	if err != nil {
		return err
	}

	s.scheduler.StartAsync()
	return nil
}

// RunOnce produces one report per watched location and waits for all of them.
func (s *Scheduler) RunOnce() {
	log.Println("scheduler: running weather report job")

	var wg sync.WaitGroup
	for _, loc := range s.locations {
		wg.Add(1)
		go func() {
			defer wg.Done()

			ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			report := s.reporter.Report(ctx, loc)
			if !report.OK {
				log.Printf("scheduler: report for %q failed: %s", loc, report.Text)
			}
		}()
	}
	wg.Wait()
	log.Println("scheduler: completed weather report job")
}

// Stop stops the scheduler and cancels any future jobs.
func (s *Scheduler) Stop() {
	if s.scheduler != nil {
		s.scheduler.Stop()
	}
}
