// Package normalize turns the human-written date and time strings found on seminar
// pages into canonical calendar dates and times of day.
//
// Pages mix German and English month names, day-first and month-first orders,
// weekday prefixes ("Dienstag,", "Tue."), "Uhr" suffixes and time ranges. ParseDate
// and ParseTime accept all of these; a Normalizer combines them with per-source
// defaults into an event.Event and decides which events are still upcoming in the
// configured time zone.
package normalize
