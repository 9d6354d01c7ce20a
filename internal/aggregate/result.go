package aggregate

import (
	"time"

	"github.com/pfrederiksen/seminar-events/internal/event"
)

// SourceStats records what happened to one source during a run
type SourceStats struct {
	Source      string
	URL         string
	Fetched     bool
	Bytes       int
	Extracted   int
	Unparseable int
	Past        int
	Duplicates  int
	Kept        int
	Duration    time.Duration
	Err         error
}

// OK reports whether the source was fetched and extracted
func (s SourceStats) OK() bool {
	return s.Err == nil
}

// Result is the outcome of a run
type Result struct {
	// Events are upcoming, de-duplicated and sorted
	Events   []*event.Event
	Sources  []SourceStats
	Today    event.Date
	Duration time.Duration
}

// Succeeded returns the number of sources that were fetched and extracted
func (r *Result) Succeeded() int {
	n := 0
	for _, s := range r.Sources {
		if s.OK() {
			n++
		}
	}
	return n
}

// Failed returns the number of sources that could not be fetched or extracted
func (r *Result) Failed() int {
	return len(r.Sources) - r.Succeeded()
}
