package event

import (
	"encoding/json"
	"testing"
	"time"
	_ "time/tzdata"
)

func TestNewDate(t *testing.T) {
	tests := []struct {
		name    string
		year    int
		month   time.Month
		day     int
		wantErr bool
	}{
		{name: "regular date", year: 2026, month: time.November, day: 4},
		{name: "leap day", year: 2028, month: time.February, day: 29},
		{name: "non-leap February 29", year: 2026, month: time.February, day: 29, wantErr: true},
		{name: "31 February", year: 2026, month: time.February, day: 31, wantErr: true},
		{name: "month 13", year: 2026, month: 13, day: 1, wantErr: true},
		{name: "day zero", year: 2026, month: time.March, day: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := NewDate(tt.year, tt.month, tt.day)
			if tt.wantErr {
				if err == nil {
					t.Errorf("NewDate(%d, %d, %d) = %v, want error", tt.year, tt.month, tt.day, d)
				}
				return
			}
			if err != nil {
				t.Fatalf("NewDate() unexpected error: %v", err)
			}
			if d.Year != tt.year || d.Month != tt.month || d.Day != tt.day {
				t.Errorf("NewDate() = %v", d)
			}
		})
	}
}

func TestDate_Compare(t *testing.T) {
	a := Date{2026, time.November, 4}
	tests := []struct {
		name  string
		other Date
		want  int
	}{
		{"same", Date{2026, time.November, 4}, 0},
		{"later day", Date{2026, time.November, 5}, -1},
		{"earlier month", Date{2026, time.October, 30}, 1},
		{"later year", Date{2027, time.January, 1}, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Compare(tt.other); got != tt.want {
				t.Errorf("Compare(%v) = %d, want %d", tt.other, got, tt.want)
			}
		})
	}
}

func TestToday_UsesLocation(t *testing.T) {
	berlin, err := time.LoadLocation("Europe/Berlin")
	if err != nil {
		t.Skipf("tzdata unavailable: %v", err)
	}

	// 23:30 UTC on Nov 3 is already Nov 4 in Berlin
	now := time.Date(2026, time.November, 3, 23, 30, 0, 0, time.UTC)
	got := Today(now, berlin)
	want := Date{2026, time.November, 4}
	if got != want {
		t.Errorf("Today() = %v, want %v", got, want)
	}
}

func TestDateClock_JSON(t *testing.T) {
	clock := Clock{Hour: 9, Minute: 5}
	evt := Event{
		Source: "qep",
		Title:  "Fiscal Rules",
		Date:   Date{2026, time.March, 7},
		Time:   &clock,
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	want := `{"source":"qep","title":"Fiscal Rules","date":"2026-03-07","time":"09:05"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var decoded Event
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if decoded.Date != evt.Date || decoded.Time == nil || *decoded.Time != clock {
		t.Errorf("Unmarshal() = %+v, want %+v", decoded, evt)
	}
}

func TestDate_MarshalZero(t *testing.T) {
	if _, err := json.Marshal(Event{Title: "no date"}); err == nil {
		t.Error("Marshal() of event with zero date should fail")
	}
}

func TestNewClock(t *testing.T) {
	if _, err := NewClock(24, 0); err == nil {
		t.Error("NewClock(24, 0) should fail")
	}
	if _, err := NewClock(12, 60); err == nil {
		t.Error("NewClock(12, 60) should fail")
	}
	c, err := NewClock(14, 15)
	if err != nil {
		t.Fatalf("NewClock(14, 15) error = %v", err)
	}
	if c.String() != "14:15" {
		t.Errorf("String() = %q, want 14:15", c.String())
	}
}
