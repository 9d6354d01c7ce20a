package extract

import (
	"os"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/pfrederiksen/seminar-events/internal/event"
)

const financeSeminarURL = "https://www.old.wiwi.uni-frankfurt.de/abteilungen/finance/seminar/finance-seminar-series/seminar-calendar.html"

func loadFixture(t *testing.T, name string) []byte {
	t.Helper()
	data, err := os.ReadFile("../../testdata/fixtures/" + name)
	if err != nil {
		t.Fatalf("failed to load test fixture: %v", err)
	}
	return data
}

func TestExtractWiwiTable(t *testing.T) {
	raws, err := ExtractWiwiTable(loadFixture(t, "wiwi_finance_seminar.html"), financeSeminarURL)
	if err != nil {
		t.Fatalf("ExtractWiwiTable() error = %v", err)
	}

	want := []event.Raw{
		{
			Title:    "Liquidity Risk in Corporate Bond Markets",
			DateText: "Di. 04.11.2025 12:00 Uhr",
			Speaker:  "Jane Doe (Stanford University)",
			URL:      "https://www.old.wiwi.uni-frankfurt.de/abteilungen/finance/seminar/finance-seminar-series/seminar-calendar/event-1.html",
		},
		{
			Title:    "Dealer Balance Sheets",
			DateText: "18.11.2025",
			Speaker:  "John Roe (LSE)",
			URL:      "https://www.old.wiwi.uni-frankfurt.de/abteilungen/finance/event-2.html",
		},
		{
			Title:    "Climate Risk and Asset Prices",
			DateText: "tba",
			Speaker:  "Richard Miles",
			URL:      financeSeminarURL,
		},
		{
			Title:    "Household Portfolio Choice",
			DateText: "02.12.2025",
			Speaker:  "Anna Schmidt",
			URL:      financeSeminarURL,
		},
		{
			Title:    "An Earlier Talk",
			DateText: "23.09.2025",
			Speaker:  "Past Speaker",
			URL:      "https://www.old.wiwi.uni-frankfurt.de/abteilungen/finance/seminar/finance-seminar-series/event-0.html",
		},
	}

	if diff := cmp.Diff(want, raws); diff != "" {
		t.Errorf("ExtractWiwiTable() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractWiwiTable_Inactive(t *testing.T) {
	tests := []struct {
		name    string
		fixture string
	}{
		{"placeholder row", "wiwi_no_events.html"},
		{"no table", "wiwi_no_table.html"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raws, err := ExtractWiwiTable(loadFixture(t, tt.fixture), financeSeminarURL)
			if err != nil {
				t.Fatalf("ExtractWiwiTable() error = %v, want nil for inactive seminar", err)
			}
			if raws == nil {
				t.Error("ExtractWiwiTable() = nil, want empty slice")
			}
			if len(raws) != 0 {
				t.Errorf("ExtractWiwiTable() returned %d entries, want 0", len(raws))
			}
		})
	}
}

func TestExtractWiwiTable_EdgeCases(t *testing.T) {
	tests := []struct {
		name      string
		html      string
		wantCount int
		check     func(*testing.T, []event.Raw)
	}{
		{
			name: "cells without classes fall back to position",
			html: `<table class="data-table-event"><tbody>
				<tr><td>05.05.2026</td><td>Ann Lee</td><td><a href="https://example.org/talk">Trade Credit</a></td></tr>
			</tbody></table>`,
			wantCount: 1,
			check: func(t *testing.T, raws []event.Raw) {
				r := raws[0]
				if r.DateText != "05.05.2026" || r.Speaker != "Ann Lee" || r.Title != "Trade Credit" {
					t.Errorf("unexpected entry %+v", r)
				}
				if r.URL != "https://example.org/talk" {
					t.Errorf("URL = %q, want absolute link kept", r.URL)
				}
			},
		},
		{
			name: "row with empty date cell is skipped",
			html: `<table class="data-table-event"><tbody>
				<tr><td class="dtstart-container"> </td><td class="speaker">X</td><td class="summary">Y</td></tr>
			</tbody></table>`,
			wantCount: 0,
		},
		{
			name: "header row with th only is skipped",
			html: `<table class="data-table-event"><tbody>
				<tr><th>Datum</th><th>Referent</th><th>Thema</th></tr>
				<tr><td>12.05.2026</td><td>Bo Chen</td><td>Bank Capital</td></tr>
			</tbody></table>`,
			wantCount: 1,
		},
		{
			name: "only first event table is used",
			html: `<table class="data-table-event"><tbody>
				<tr><td>12.05.2026</td><td>Bo Chen</td><td>Bank Capital</td></tr>
			</tbody></table>
			<table class="data-table-event"><tbody>
				<tr><td>19.05.2026</td><td>Archive</td><td>Old Listing</td></tr>
			</tbody></table>`,
			wantCount: 1,
		},
		{
			name: "link with empty href keeps page url",
			html: `<table class="data-table-event"><tbody>
				<tr><td>12.05.2026</td><td>Bo Chen</td><td><a href="">Bank Capital</a></td></tr>
			</tbody></table>`,
			wantCount: 1,
			check: func(t *testing.T, raws []event.Raw) {
				if raws[0].URL != financeSeminarURL {
					t.Errorf("URL = %q, want page URL", raws[0].URL)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			raws, err := ExtractWiwiTable([]byte(tt.html), financeSeminarURL)
			if err != nil {
				t.Fatalf("ExtractWiwiTable() error = %v", err)
			}
			if len(raws) != tt.wantCount {
				t.Fatalf("ExtractWiwiTable() returned %d entries, want %d: %+v", len(raws), tt.wantCount, raws)
			}
			if tt.check != nil {
				tt.check(t, raws)
			}
		})
	}
}

func TestResolveURL(t *testing.T) {
	tests := []struct {
		base string
		href string
		want string
	}{
		{"https://example.com/a/b.html", "c.html", "https://example.com/a/c.html"},
		{"https://example.com/a/b.html", "/x.html", "https://example.com/x.html"},
		{"https://example.com/a/b.html", "https://other.org/", "https://other.org/"},
		{"https://example.com/a/b.html", "%zz", "https://example.com/a/b.html"},
	}

	for _, tt := range tests {
		t.Run(tt.href, func(t *testing.T) {
			if got := resolveURL(tt.base, tt.href); got != tt.want {
				t.Errorf("resolveURL(%q, %q) = %q, want %q", tt.base, tt.href, got, tt.want)
			}
		})
	}
}
