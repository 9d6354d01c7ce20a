// Package event provides the seminar event type and the helpers that operate on a
// run's worth of events.
//
// An Event is rebuilt from the source pages on every run; there is no identity across
// runs. Events carry a calendar Date and an optional Clock time, both of which marshal
// to ISO 8601 strings so the output document can be consumed without further parsing.
// Within a run, events are de-duplicated by (source, title, date) and ordered by date
// and time, with events lacking a time sorted last within their day.
package event
