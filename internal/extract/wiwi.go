package extract

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/pfrederiksen/seminar-events/internal/event"
)

// ExtractWiwiTable handles the faculty seminar calendars, which list one talk per
// row of a table.data-table-event. Cells carry dtstart-container, speaker and
// summary classes; when a class is missing the cell position is used instead.
func ExtractWiwiTable(page []byte, pageURL string) ([]event.Raw, error) {
	doc, err := parseDocument(KindWiwiTable, page, pageURL)
	if err != nil {
		return nil, err
	}

	raws := make([]event.Raw, 0)

	table := doc.Find("table.data-table-event").First()
	if table.Length() == 0 {
		return raws, nil
	}

	table.Find("tbody tr").Each(func(_ int, tr *goquery.Selection) {
		tds := tr.ChildrenFiltered("td")
		if tds.Length() == 0 {
			return
		}

		dateText := nodeText(cell(tr, tds, "td.dtstart-container", 0))
		if dateText == "" {
			return
		}

		speaker := nodeText(cell(tr, tds, "td.speaker", 1))

		// Title and details link
		title := ""
		detailsURL := pageURL
		if summary := cell(tr, tds, "td.summary", 2); summary.Length() > 0 {
			if link := summary.Find("a").First(); link.Length() > 0 {
				title = nodeText(link)
				if href, ok := link.Attr("href"); ok && strings.TrimSpace(href) != "" {
					detailsURL = resolveURL(pageURL, href)
				}
			} else {
				title = nodeText(summary)
			}
		}

		// Typically "Keine Ereignisse gefunden."
		if title == "" {
			return
		}

		raws = append(raws, event.Raw{
			Title:    title,
			DateText: dateText,
			Speaker:  speaker,
			URL:      detailsURL,
		})
	})

	return raws, nil
}

// cell returns the row's cell matching selector, falling back to the cell at index
func cell(tr, tds *goquery.Selection, selector string, index int) *goquery.Selection {
	if sel := tr.ChildrenFiltered(selector); sel.Length() > 0 {
		return sel.First()
	}
	if index < tds.Length() {
		return tds.Eq(index)
	}
	return &goquery.Selection{}
}

// resolveURL resolves href against base, returning base when href is unusable
func resolveURL(base, href string) string {
	b, err := url.Parse(base)
	if err != nil {
		return base
	}
	ref, err := url.Parse(strings.TrimSpace(href))
	if err != nil {
		return base
	}
	return b.ResolveReference(ref).String()
}
