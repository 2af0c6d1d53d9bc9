package scheduler

import (
	"context"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/i474232898/weather-assistant/internal/weather"
)

type recordingReporter struct {
	mu   sync.Mutex
	seen []string
}

func (r *recordingReporter) Report(ctx context.Context, loc weather.Location) weather.Report {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seen = append(r.seen, string(loc))

	_, hasDeadline := ctx.Deadline()
	return weather.Report{Location: loc, OK: hasDeadline}
}

func TestRunOnce_ReportsEveryLocation(t *testing.T) {
	rep := &recordingReporter{}
	s := New([]weather.Location{"Paris,FR", "Tokyo", "Lagos"}, time.Minute, rep)

	s.RunOnce()

	sort.Strings(rep.seen)
	assert.Equal(t, []string{"Lagos", "Paris,FR", "Tokyo"}, rep.seen)
}

func TestStart_NoLocations(t *testing.T) {
	rep := &recordingReporter{}
	s := New(nil, time.Minute, rep)

	assert.NoError(t, s.Start())
	s.Stop()
	assert.Empty(t, rep.seen)
}
