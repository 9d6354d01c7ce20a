package calendar

import (
	"fmt"
	"strings"
	"time"

	"github.com/pfrederiksen/seminar-events/internal/event"
	"github.com/pfrederiksen/seminar-events/internal/storage"
)

// DefaultDuration is the length assumed for events with a start time
const DefaultDuration = 90 * time.Minute

const (
	prodID    = "-//seminar-events//seminar-events//EN"
	uidDomain = "seminar-events"
	// maxLineOctets is the folding limit from RFC 5545 section 3.1
	maxLineOctets = 75
)

// GenerateICS generates an iCalendar document containing a single event
func GenerateICS(evt *event.Event, loc *time.Location) string {
	return GenerateBulkICS([]*event.Event{evt}, "", loc)
}

// GenerateBulkICS generates one iCalendar document containing all events. Timed
// events are interpreted in loc and written in UTC; events without a time become
// all-day entries. The output depends only on the events, so the same feed always
// renders to the same bytes.
func GenerateBulkICS(events []*event.Event, calendarName string, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}

	var ics strings.Builder
	writeLine(&ics, "BEGIN:VCALENDAR")
	writeLine(&ics, "VERSION:2.0")
	writeLine(&ics, "PRODID:"+prodID)
	writeLine(&ics, "CALSCALE:GREGORIAN")
	writeLine(&ics, "METHOD:PUBLISH")
	if calendarName != "" {
		writeLine(&ics, "X-WR-CALNAME:"+escapeICS(calendarName))
	}
	writeLine(&ics, "X-WR-TIMEZONE:"+loc.String())

	for _, evt := range events {
		writeEvent(&ics, evt, loc)
	}

	writeLine(&ics, "END:VCALENDAR")
	return ics.String()
}

func writeEvent(ics *strings.Builder, evt *event.Event, loc *time.Location) {
	writeLine(ics, "BEGIN:VEVENT")
	writeLine(ics, fmt.Sprintf("UID:%s@%s", evt.ID(), uidDomain))

	if evt.Time != nil {
		start := evt.Time.On(evt.Date, loc)
		// DTSTAMP is pinned to the start so reruns are byte-identical
		writeLine(ics, "DTSTAMP:"+formatICSTime(start))
		writeLine(ics, "DTSTART:"+formatICSTime(start))
		writeLine(ics, "DTEND:"+formatICSTime(start.Add(DefaultDuration)))
	} else {
		day := evt.Date.In(loc)
		writeLine(ics, "DTSTAMP:"+formatICSTime(day))
		writeLine(ics, "DTSTART;VALUE=DATE:"+formatICSDate(day))
		writeLine(ics, "DTEND;VALUE=DATE:"+formatICSDate(day.AddDate(0, 0, 1)))
	}

	summary := evt.Title
	if evt.Series != "" {
		summary = fmt.Sprintf("%s: %s", evt.Series, evt.Title)
	}
	writeLine(ics, "SUMMARY:"+escapeICS(summary))

	if desc := description(evt); desc != "" {
		writeLine(ics, "DESCRIPTION:"+escapeICS(desc))
	}
	if evt.Location != "" {
		writeLine(ics, "LOCATION:"+escapeICS(evt.Location))
	}
	if evt.URL != "" {
		writeLine(ics, "URL:"+evt.URL)
	}
	writeLine(ics, "CATEGORIES:"+escapeICS(evt.Source))

	writeLine(ics, "STATUS:CONFIRMED")
	writeLine(ics, "SEQUENCE:0")
	writeLine(ics, "TRANSP:OPAQUE")
	writeLine(ics, "END:VEVENT")
}

func description(evt *event.Event) string {
	var parts []string
	if evt.Speaker != "" {
		parts = append(parts, "Speaker: "+evt.Speaker)
	}
	if evt.Series != "" {
		parts = append(parts, "Series: "+evt.Series)
	}
	if evt.URL != "" {
		parts = append(parts, "Details: "+evt.URL)
	}
	return strings.Join(parts, "\n")
}

// WriteFile atomically writes the events as an iCalendar file
func WriteFile(path string, events []*event.Event, calendarName string, loc *time.Location) error {
	if err := storage.WriteFile(path, []byte(GenerateBulkICS(events, calendarName, loc))); err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	return nil
}

// formatICSTime formats a time.Time as an iCalendar datetime string
func formatICSTime(t time.Time) string {
	return t.UTC().Format("20060102T150405Z")
}

// formatICSDate formats the calendar day of t as an iCalendar date value
func formatICSDate(t time.Time) string {
	return t.Format("20060102")
}

// writeLine writes a content line terminated by CRLF, folding it at 75 octets
// without splitting UTF-8 sequences.
func writeLine(ics *strings.Builder, line string) {
	limit := maxLineOctets
	for len(line) > limit {
		cut := limit
		for cut > 0 && !isRuneStart(line[cut]) {
			cut--
		}
		ics.WriteString(line[:cut])
		ics.WriteString("\r\n ")
		line = line[cut:]
		// continuation lines start with a space
		limit = maxLineOctets - 1
	}
	ics.WriteString(line)
	ics.WriteString("\r\n")
}

func isRuneStart(b byte) bool {
	return b&0xC0 != 0x80
}

// escapeICS escapes special characters for iCalendar format
func escapeICS(s string) string {
	// Replace special characters according to RFC 5545
	s = strings.ReplaceAll(s, "\\", "\\\\")
	s = strings.ReplaceAll(s, ",", "\\,")
	s = strings.ReplaceAll(s, ";", "\\;")
	s = strings.ReplaceAll(s, "\n", "\\n")
	return s
}
