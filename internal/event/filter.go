package event

// Dedupe drops events whose Key was already seen, keeping the first occurrence.
// The relative order of the remaining events is unchanged.
func Dedupe(events []*Event) []*Event {
	seen := make(map[Key]bool, len(events))
	unique := make([]*Event, 0, len(events))
	for _, evt := range events {
		k := evt.Key()
		if seen[k] {
			continue
		}
		seen[k] = true
		unique = append(unique, evt)
	}
	return unique
}

// IsUpcoming reports whether the event takes place on or after today
func (e *Event) IsUpcoming(today Date) bool {
	return !e.Date.Before(today)
}

// Upcoming returns the events that take place on or after today
func Upcoming(events []*Event, today Date) []*Event {
	filtered := make([]*Event, 0, len(events))
	for _, evt := range events {
		if evt.IsUpcoming(today) {
			filtered = append(filtered, evt)
		}
	}
	return filtered
}
