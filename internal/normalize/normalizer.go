package normalize

import (
	"strings"
	"time"

	"github.com/pfrederiksen/seminar-events/internal/event"
)

// Defaults are the per-source values used when a page leaves a field out
type Defaults struct {
	Source   string
	Series   string
	Location string
	Time     *event.Clock
}

// Normalizer converts raw entries into events and filters them to upcoming ones.
// All calendar arithmetic happens in a single canonical location.
type Normalizer struct {
	loc *time.Location
	now func() time.Time
}

// New creates a Normalizer for loc. A nil now uses time.Now.
func New(loc *time.Location, now func() time.Time) *Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	if now == nil {
		now = time.Now
	}
	return &Normalizer{loc: loc, now: now}
}

// Today returns the run's current date in the canonical time zone
func (n *Normalizer) Today() event.Date {
	return event.Today(n.now(), n.loc)
}

// Normalize builds an Event from raw field strings. The returned error is a
// *DateParseError when the date text is unusable, or ErrEmptyTitle.
func (n *Normalizer) Normalize(raw event.Raw, defaults Defaults) (*event.Event, error) {
	date, err := ParseDate(raw.DateText)
	if err != nil {
		return nil, err
	}

	evt := &event.Event{
		Source:   defaults.Source,
		Series:   firstNonEmpty(cleanField(raw.Series), defaults.Series),
		Title:    cleanField(raw.Title),
		Date:     date,
		Location: firstNonEmpty(cleanField(raw.Location), defaults.Location),
		Speaker:  cleanField(raw.Speaker),
		URL:      strings.TrimSpace(raw.URL),
	}

	if evt.Title == "" {
		evt.Title = evt.Series
	}
	if evt.Title == "" {
		return nil, ErrEmptyTitle
	}

	if c, ok := ParseTime(raw.TimeText); ok {
		evt.Time = &c
	} else if c, ok := ParseTime(raw.DateText); ok {
		evt.Time = &c
	} else if defaults.Time != nil {
		c := *defaults.Time
		evt.Time = &c
	}

	return evt, nil
}

func cleanField(s string) string {
	return strings.TrimSpace(strings.Trim(Text(s), `"“”„`))
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
