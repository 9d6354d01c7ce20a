package event

import (
	"crypto/sha1"
	"fmt"
	"strings"
)

// Event represents one upcoming seminar talk
type Event struct {
	Source   string `json:"source"`
	Series   string `json:"series,omitempty"`
	Title    string `json:"title"`
	Date     Date   `json:"date"`
	Time     *Clock `json:"time,omitempty"`
	Location string `json:"location,omitempty"`
	Speaker  string `json:"speaker,omitempty"`
	URL      string `json:"url,omitempty"`
}

// Key identifies an event within a single run. Two events with the same key are
// treated as the same talk listed twice on one page.
type Key struct {
	Source string
	Title  string
	Date   Date
}

// Key returns the de-duplication key for the event
func (e *Event) Key() Key {
	return Key{
		Source: e.Source,
		Title:  normalizeTitle(e.Title),
		Date:   e.Date,
	}
}

// ID creates a deterministic identifier from the de-duplication key.
// The same talk scraped on two runs gets the same ID.
func (e *Event) ID() string {
	k := e.Key()
	h := sha1.New()
	h.Write([]byte(k.Source + "|" + k.Title + "|" + k.Date.String()))
	return fmt.Sprintf("%x", h.Sum(nil))
}

// normalizeTitle lowercases and collapses whitespace so that cosmetic differences
// in markup do not defeat de-duplication
func normalizeTitle(title string) string {
	return strings.ToLower(strings.Join(strings.Fields(title), " "))
}
