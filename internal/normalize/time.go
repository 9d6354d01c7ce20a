package normalize

import (
	"regexp"
	"strconv"

	"github.com/pfrederiksen/seminar-events/internal/event"
)

var (
	// 12:00, 9:30, 2025-11-04T12:30, first half of 12:00-13:15
	colonTimePattern = regexp.MustCompile(`(?:^|\D)(\d{1,2}):(\d{2})(?:\D|$)`)

	// 12 Uhr, 12.15 Uhr, 12.15 - 13.30 Uhr
	uhrTimePattern = regexp.MustCompile(`(?i)(?:^|\D)(\d{1,2})(?:\.(\d{2}))?\s*(?:-\s*\d{1,2}(?:\.\d{2})?\s*)?Uhr\b`)
)

// ParseTime finds the first time of day in raw, for ranges the start time.
// It reports false when raw contains no valid time.
func ParseTime(raw string) (event.Clock, bool) {
	s := Text(raw)

	if m := colonTimePattern.FindStringSubmatch(s); m != nil {
		if c, err := buildClock(m[1], m[2]); err == nil {
			return c, true
		}
	}

	if m := uhrTimePattern.FindStringSubmatch(s); m != nil {
		minute := m[2]
		if minute == "" {
			minute = "0"
		}
		if c, err := buildClock(m[1], minute); err == nil {
			return c, true
		}
	}

	return event.Clock{}, false
}

func buildClock(hour, minute string) (event.Clock, error) {
	h, err := strconv.Atoi(hour)
	if err != nil {
		return event.Clock{}, err
	}
	m, err := strconv.Atoi(minute)
	if err != nil {
		return event.Clock{}, err
	}
	return event.NewClock(h, m)
}
