package event

import (
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
)

func TestSort(t *testing.T) {
	nov4 := Date{2026, time.November, 4}
	nov5 := Date{2026, time.November, 5}

	events := []*Event{
		{Title: "untimed nov4 a", Date: nov4},
		{Title: "nov5 noon", Date: nov5, Time: clockPtr(12, 0)},
		{Title: "nov4 afternoon", Date: nov4, Time: clockPtr(14, 15)},
		{Title: "untimed nov4 b", Date: nov4},
		{Title: "nov4 noon", Date: nov4, Time: clockPtr(12, 0)},
		{Title: "nov4 noon later listed", Date: nov4, Time: clockPtr(12, 0)},
	}

	Sort(events)

	got := make([]string, 0, len(events))
	for _, evt := range events {
		got = append(got, evt.Title)
	}
	want := []string{
		"nov4 noon",
		"nov4 noon later listed",
		"nov4 afternoon",
		"untimed nov4 a",
		"untimed nov4 b",
		"nov5 noon",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Sort() order mismatch (-want +got):\n%s", diff)
	}

	for i := 1; i < len(events); i++ {
		if Less(events[i], events[i-1]) {
			t.Errorf("events[%d] sorts before events[%d]", i, i-1)
		}
	}
}

func TestLess_UntimedNeverBeforeTimed(t *testing.T) {
	d := Date{2026, time.December, 1}
	timed := &Event{Date: d, Time: clockPtr(23, 59)}
	untimed := &Event{Date: d}

	if Less(untimed, timed) {
		t.Error("untimed event should not sort before timed event on the same day")
	}
	if !Less(timed, untimed) {
		t.Error("timed event should sort before untimed event on the same day")
	}
	if Less(untimed, untimed) {
		t.Error("Less should be irreflexive")
	}
}
