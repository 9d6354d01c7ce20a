package event

import "sort"

// Sort orders events by date, then by time of day. Events without a time sort after
// all timed events of the same day. The sort is stable, so events that tie keep the
// order in which they were discovered.
func Sort(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return Less(events[i], events[j])
	})
}

// Less reports whether a should come before b in the output document
func Less(a, b *Event) bool {
	if c := a.Date.Compare(b.Date); c != 0 {
		return c < 0
	}

	// Same day: timed events first, untimed last
	switch {
	case a.Time != nil && b.Time != nil:
		return a.Time.Compare(*b.Time) < 0
	case a.Time != nil:
		return true
	default:
		return false
	}
}
