package extract

import (
	"bytes"
	"fmt"
	"sort"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/pfrederiksen/seminar-events/internal/event"
	"github.com/pfrederiksen/seminar-events/internal/normalize"
)

// Kind names a page layout
type Kind string

const (
	KindWiwiTable Kind = "wiwi_table"
	KindIMFSText  Kind = "imfs_text"
)

// Extractor pulls raw event entries out of one page layout
type Extractor interface {
	Extract(page []byte, pageURL string) ([]event.Raw, error)
}

// ExtractorFunc adapts a function to the Extractor interface
type ExtractorFunc func(page []byte, pageURL string) ([]event.Raw, error)

// Extract calls f
func (f ExtractorFunc) Extract(page []byte, pageURL string) ([]event.Raw, error) {
	return f(page, pageURL)
}

// ExtractError reports a page that could not be processed by its extractor
type ExtractError struct {
	Kind Kind
	URL  string
	Err  error
}

func (e *ExtractError) Error() string {
	return fmt.Sprintf("extracting %s page %s: %v", e.Kind, e.URL, e.Err)
}

func (e *ExtractError) Unwrap() error {
	return e.Err
}

// Registry maps each Kind to its Extractor
type Registry map[Kind]Extractor

// DefaultRegistry returns the extractors for all supported layouts
func DefaultRegistry() Registry {
	return Registry{
		KindWiwiTable: ExtractorFunc(ExtractWiwiTable),
		KindIMFSText:  ExtractorFunc(ExtractIMFSText),
	}
}

// Lookup returns the extractor registered for kind
func (r Registry) Lookup(kind Kind) (Extractor, error) {
	ex, ok := r[kind]
	if !ok {
		return nil, fmt.Errorf("no extractor for kind %q (valid: %s)", kind, strings.Join(r.Kinds(), ", "))
	}
	return ex, nil
}

// Kinds returns the registered kinds in sorted order
func (r Registry) Kinds() []string {
	kinds := make([]string, 0, len(r))
	for k := range r {
		kinds = append(kinds, string(k))
	}
	sort.Strings(kinds)
	return kinds
}

func parseDocument(kind Kind, page []byte, pageURL string) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(page))
	if err != nil {
		return nil, &ExtractError{Kind: kind, URL: pageURL, Err: fmt.Errorf("parsing HTML: %w", err)}
	}
	return doc, nil
}

// nodeText returns the text below sel with text nodes separated by spaces, so
// that "04.11.2025<br>12:00" does not run together
func nodeText(sel *goquery.Selection) string {
	var b strings.Builder
	for _, n := range sel.Nodes {
		collectText(n, &b)
	}
	return normalize.Text(b.String())
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
		b.WriteByte(' ')
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
}
