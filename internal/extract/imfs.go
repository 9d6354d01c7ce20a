package extract

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/pfrederiksen/seminar-events/internal/event"
	"github.com/pfrederiksen/seminar-events/internal/normalize"
)

// maxBlockLines bounds how far an event block reaches past its heading, so the
// last event on a page does not swallow the footer.
const maxBlockLines = 12

type labelPattern struct {
	re  *regexp.Regexp
	key string
}

var (
	speakerLabel = regexp.MustCompile(`(?i)^(?:Speaker|Referent(?:in)?|Sprecher(?:in)?)[\s:-]+`)

	labelPatterns = []labelPattern{
		{speakerLabel, "speaker"},
		{regexp.MustCompile(`(?i)^(?:Topic|Titel|Title|Subject)[\s:-]+`), "title"},
		{regexp.MustCompile(`(?i)^(?:Time|Uhrzeit|Zeit|Wann)[\s:-]+`), "time"},
		{regexp.MustCompile(`(?i)^(?:Location|Ort|Place|Wo)[\s:-]+`), "location"},
		{regexp.MustCompile(`(?i)^(?:Date|Datum)[\s:-]+`), "date"},
	}

	metaFieldPattern = regexp.MustCompile(`(?i)\b(?:speaker|referent(?:in)?|titel|topic|time|uhrzeit|location|ort|datum)\b`)
	metaSkipPattern  = regexp.MustCompile(`(?i)\b(?:speaker|referent(?:in)?|titel|topic|time|uhrzeit|location|ort|datum|mehr|more|kontakt|contact|register|registration)\b`)

	clockPattern = regexp.MustCompile(`\d{1,2}:\d{2}`)
	yearPattern  = regexp.MustCompile(`\d{4}`)
	uhrPattern   = regexp.MustCompile(`(?i)\bUhr\b`)
	withPattern  = regexp.MustCompile(`(?i)\s(?:with|mit)\s`)
)

// blockElements end the current line of text when they open or close
var blockElements = map[atom.Atom]bool{
	atom.Address: true, atom.Article: true, atom.Aside: true, atom.Blockquote: true,
	atom.Br: true, atom.Dd: true, atom.Div: true, atom.Dl: true, atom.Dt: true,
	atom.Figcaption: true, atom.Footer: true, atom.H1: true, atom.H2: true,
	atom.H3: true, atom.H4: true, atom.H5: true, atom.H6: true, atom.Header: true,
	atom.Hr: true, atom.Li: true, atom.Main: true, atom.Nav: true, atom.Ol: true,
	atom.P: true, atom.Section: true, atom.Table: true, atom.Td: true, atom.Th: true,
	atom.Tr: true, atom.Ul: true,
}

var skippedElements = map[atom.Atom]bool{
	atom.Script: true, atom.Style: true, atom.Noscript: true, atom.Template: true,
}

// ExtractIMFSText handles the IMFS upcoming-events page, which lists events as
// loosely formatted text. The page is flattened into lines, split into blocks at
// event headings such as "IMFS Working Lunch", and each block is mined for labelled
// or positional fields. Blocks without a recognizable date are skipped.
func ExtractIMFSText(page []byte, pageURL string) ([]event.Raw, error) {
	doc, err := parseDocument(KindIMFSText, page, pageURL)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, n := range doc.Find("body").Nodes {
		lines = append(lines, textLines(n)...)
	}

	raws := make([]event.Raw, 0)
	for _, block := range splitBlocks(lines) {
		raw, ok := parseBlock(block)
		if !ok {
			continue
		}
		raw.URL = pageURL
		raws = append(raws, raw)
	}

	return raws, nil
}

// textLines flattens the document below n into normalized, non-empty lines
func textLines(n *html.Node) []string {
	var (
		lines   []string
		current strings.Builder
	)

	flush := func() {
		if line := normalize.Text(current.String()); line != "" {
			lines = append(lines, line)
		}
		current.Reset()
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			parts := strings.Split(n.Data, "\n")
			for i, part := range parts {
				if i > 0 {
					flush()
				}
				current.WriteString(part)
			}
			return
		case html.ElementNode:
			if skippedElements[n.DataAtom] {
				return
			}
			if blockElements[n.DataAtom] {
				flush()
				defer flush()
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	walk(n)
	flush()
	return lines
}

func isEventHeading(line string) bool {
	lower := strings.ToLower(line)
	if strings.Contains(lower, "working lunch") || strings.Contains(lower, "policy lecture") {
		return true
	}
	if !strings.Contains(lower, "imfs") {
		return false
	}
	for _, keyword := range []string{"lecture", "lunch", "seminar", "talk", "veranstaltung"} {
		if strings.Contains(lower, keyword) {
			return true
		}
	}
	return false
}

// splitBlocks groups lines into blocks that each start with an event heading.
// Lines before the first heading are discarded.
func splitBlocks(lines []string) [][]string {
	var (
		blocks  [][]string
		current []string
	)

	for _, line := range lines {
		if isEventHeading(line) {
			if len(current) > 0 {
				blocks = append(blocks, current)
			}
			current = []string{line}
			continue
		}
		if len(current) > 0 && len(current) < maxBlockLines {
			current = append(current, line)
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}

	return blocks
}

func parseBlock(block []string) (event.Raw, bool) {
	labelled := make(map[string]string)
	labelledLine := make(map[string]string)
	for _, lp := range labelPatterns {
		for _, line := range block {
			if loc := lp.re.FindStringIndex(line); loc != nil {
				labelled[lp.key] = strings.TrimSpace(line[loc[1]:])
				labelledLine[lp.key] = line
				break
			}
		}
	}

	// An explicit "Date:" line wins over the first line that merely contains a date
	dateLine := ""
	if normalize.ContainsDate(labelled["date"]) {
		dateLine = labelledLine["date"]
	}
	if dateLine == "" {
		for _, line := range block {
			if c := normalize.DateCandidate(line); c != "" && normalize.ContainsDate(c) {
				dateLine = line
				break
			}
		}
	}
	if dateLine == "" {
		return event.Raw{}, false
	}

	timeText := labelled["time"]
	timeLine := ""
	if timeText == "" {
		for _, line := range block {
			if clockPattern.MatchString(line) {
				timeText = strings.TrimSpace(uhrPattern.ReplaceAllString(line, ""))
				timeLine = line
				break
			}
		}
	}

	heading := block[0]
	series := seriesName(heading)
	speaker := labelled["speaker"]
	title := labelled["title"]

	// "IMFS Working Lunch with Jane Doe"
	if speaker == "" {
		if loc := withPattern.FindStringIndex(heading); loc != nil {
			if before := strings.TrimSpace(heading[:loc[0]]); before != "" {
				series = before
			}
			speaker = strings.TrimSpace(heading[loc[1]:])
		}
	}

	// skip reports lines already consumed as date or time
	skip := func(line string) bool {
		return strings.EqualFold(line, dateLine) || line == timeLine
	}
	headingIsIMFS := strings.Contains(strings.ToLower(heading), "imfs")

	if speaker == "" {
		for _, line := range block[1:] {
			if skip(line) {
				continue
			}
			if loc := speakerLabel.FindStringIndex(line); loc != nil {
				speaker = strings.TrimSpace(line[loc[1]:])
				break
			}
			if loc := withPattern.FindStringIndex(line); loc != nil && headingIsIMFS {
				speaker = strings.TrimSpace(line[loc[1]:])
				break
			}
		}
	}

	if title == "" {
		for _, line := range block[1:] {
			if skip(line) || metaFieldPattern.MatchString(line) || clockPattern.MatchString(line) || yearPattern.MatchString(line) {
				continue
			}
			title = trimQuotes(line)
			break
		}
	}

	location := labelled["location"]
	if location == "" {
		var candidates []string
		for _, line := range block[1:] {
			if skip(line) || metaSkipPattern.MatchString(line) || clockPattern.MatchString(line) || yearPattern.MatchString(line) {
				continue
			}
			if title != "" && trimQuotes(line) == title {
				continue
			}
			if isEventHeading(line) {
				continue
			}
			candidates = append(candidates, line)
		}
		if len(candidates) > 2 {
			candidates = candidates[len(candidates)-2:]
		}
		location = strings.Join(candidates, ", ")
	}

	return event.Raw{
		Series:   series,
		Title:    trimQuotes(title),
		DateText: dateLine,
		TimeText: timeText,
		Location: location,
		Speaker:  trimQuotes(speaker),
	}, true
}

func seriesName(heading string) string {
	lower := strings.ToLower(heading)
	switch {
	case strings.Contains(lower, "working lunch"):
		return "IMFS Working Lunch"
	case strings.Contains(lower, "policy lecture"):
		return "IMFS Policy Lecture"
	default:
		return "IMFS Event"
	}
}

func trimQuotes(s string) string {
	return strings.TrimSpace(strings.Trim(s, `"“”„`))
}
