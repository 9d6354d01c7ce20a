package normalize

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/unicode/norm"

	"github.com/pfrederiksen/seminar-events/internal/event"
)

var monthNames = map[string]time.Month{
	"jan": time.January, "january": time.January, "januar": time.January, "jän": time.January, "jänner": time.January,
	"feb": time.February, "february": time.February, "februar": time.February,
	"mar": time.March, "march": time.March, "mär": time.March, "märz": time.March, "maer": time.March, "maerz": time.March,
	"apr": time.April, "april": time.April,
	"may": time.May, "mai": time.May,
	"jun": time.June, "june": time.June, "juni": time.June,
	"jul": time.July, "july": time.July, "juli": time.July,
	"aug": time.August, "august": time.August,
	"sep": time.September, "sept": time.September, "september": time.September,
	"oct": time.October, "october": time.October, "okt": time.October, "oktober": time.October,
	"nov": time.November, "november": time.November,
	"dec": time.December, "december": time.December, "dez": time.December, "dezember": time.December,
}

var (
	weekdayPrefixPattern = regexp.MustCompile(`(?i)^(?:montag|dienstag|mittwoch|donnerstag|freitag|samstag|sonntag|` +
		`monday|tuesday|wednesday|thursday|friday|saturday|sunday|` +
		`mon\.|tue\.|wed\.|thu\.|fri\.|sat\.|sun\.|mo\.|di\.|mi\.|do\.|fr\.|sa\.|so\.)\s*,?\s*`)

	uhrPattern = regexp.MustCompile(`(?i)\bUhr\b`)

	// Searched in order; the first pattern that matches anywhere wins.
	candidatePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\d{1,2}\.\s*\p{L}+\.?\s+\d{4}`),
		regexp.MustCompile(`\d{1,2}\s+\p{L}+\.?\s+\d{4}`),
		regexp.MustCompile(`\d{1,2}\.\d{1,2}\.\d{4}`),
		regexp.MustCompile(`\d{4}-\d{2}-\d{2}`),
		regexp.MustCompile(`\p{L}+\.?\s+\d{1,2},?\s+\d{4}`),
		regexp.MustCompile(`\b\d{1,2}\.\d{1,2}\.\d{2}\b`),
	}

	dayMonthNamePattern = regexp.MustCompile(`^(\d{1,2})\.?\s*(\p{L}+)\.?\s+(\d{4})$`)
	monthNameDayPattern = regexp.MustCompile(`^(\p{L}+)\.?\s+(\d{1,2})(?:,\s*|\s+)(\d{4})$`)
	numericDotPattern   = regexp.MustCompile(`^(\d{1,2})\.(\d{1,2})\.(\d{4}|\d{2})$`)
	isoPattern          = regexp.MustCompile(`^(\d{4})-(\d{2})-(\d{2})(?:T.*)?$`)
)

// Text normalizes free text scraped from a page: NFC composition, non-breaking
// spaces, dash variants and runs of whitespace.
func Text(s string) string {
	s = norm.NFC.String(s)
	s = strings.NewReplacer("\u00a0", " ", "\u2013", "-", "\u2014", "-").Replace(s)
	return strings.Join(strings.Fields(s), " ")
}

// DateCandidate returns the part of s that looks like a date, or "" when there is none.
func DateCandidate(s string) string {
	for _, p := range candidatePatterns {
		if m := p.FindString(s); m != "" {
			return m
		}
	}
	return ""
}

// ContainsDate reports whether s contains text that parses as a calendar date
func ContainsDate(s string) bool {
	_, err := ParseDate(s)
	return err == nil
}

// ParseDate extracts a calendar date from raw date text such as "Di., 04.11.2025,
// 12:00 Uhr", "27. November 2025", "Nov 18, 2025" or "2025-11-04T12:30".
func ParseDate(raw string) (event.Date, error) {
	s := Text(raw)
	s = strings.TrimSpace(uhrPattern.ReplaceAllString(s, ""))
	s = weekdayPrefixPattern.ReplaceAllString(s, "")

	if c := DateCandidate(s); c != "" {
		s = c
	}

	d, err := parseCandidate(s)
	if err != nil {
		return event.Date{}, &DateParseError{Raw: raw, Err: err}
	}
	return d, nil
}

func parseCandidate(s string) (event.Date, error) {
	if m := isoPattern.FindStringSubmatch(s); m != nil {
		return buildDate(m[1], m[2], m[3])
	}

	if m := dayMonthNamePattern.FindStringSubmatch(s); m != nil {
		month, err := lookupMonth(m[2])
		if err != nil {
			return event.Date{}, err
		}
		return buildDate(m[3], strconv.Itoa(int(month)), m[1])
	}

	if m := monthNameDayPattern.FindStringSubmatch(s); m != nil {
		month, err := lookupMonth(m[1])
		if err != nil {
			return event.Date{}, err
		}
		return buildDate(m[3], strconv.Itoa(int(month)), m[2])
	}

	if m := numericDotPattern.FindStringSubmatch(s); m != nil {
		year := m[3]
		if len(year) == 2 {
			year = "20" + year
		}
		return buildDate(year, m[2], m[1])
	}

	return event.Date{}, ErrUnrecognizedFormat
}

func lookupMonth(name string) (time.Month, error) {
	key := strings.ToLower(strings.Trim(norm.NFC.String(name), "."))
	if month, ok := monthNames[key]; ok {
		return month, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMonth, name)
}

func buildDate(year, month, day string) (event.Date, error) {
	y, err := strconv.Atoi(year)
	if err != nil {
		return event.Date{}, fmt.Errorf("year %q: %w", year, err)
	}
	m, err := strconv.Atoi(month)
	if err != nil {
		return event.Date{}, fmt.Errorf("month %q: %w", month, err)
	}
	d, err := strconv.Atoi(day)
	if err != nil {
		return event.Date{}, fmt.Errorf("day %q: %w", day, err)
	}
	return event.NewDate(y, time.Month(m), d)
}
