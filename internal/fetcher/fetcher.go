package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	UserAgent      = "seminar-events/1.0 (github.com/pfrederiksen/seminar-events)"
	DefaultTimeout = 30 * time.Second
	MaxBodySize    = 10 * 1024 * 1024 // 10MB
)

// ErrBodyTooLarge indicates a page larger than MaxBodySize
var ErrBodyTooLarge = errors.New("response body exceeds size limit")

// FetchError reports a page that could not be retrieved
type FetchError struct {
	URL        string
	StatusCode int // 0 when no response was received
	Err        error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("fetching %s: unexpected status code %d", e.URL, e.StatusCode)
	}
	return fmt.Sprintf("fetching %s: %v", e.URL, e.Err)
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// Timeout reports whether the failure was caused by the request deadline
func (e *FetchError) Timeout() bool {
	var netErr interface{ Timeout() bool }
	if errors.As(e.Err, &netErr) {
		return netErr.Timeout()
	}
	return errors.Is(e.Err, context.DeadlineExceeded)
}

// Fetcher handles fetching raw seminar pages
type Fetcher struct {
	client    *http.Client
	userAgent string
}

// NewClient creates the HTTP client shared by all fetches of a run
func NewClient(timeout time.Duration) *http.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// New creates a Fetcher using client. A nil client gets DefaultTimeout.
func New(client *http.Client) *Fetcher {
	if client == nil {
		client = NewClient(DefaultTimeout)
	}
	return &Fetcher{
		client:    client,
		userAgent: UserAgent,
	}
}

// Fetch retrieves the raw content of the page at url
func (f *Fetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("creating request: %w", err)}
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &FetchError{URL: url, Err: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &FetchError{
			URL:        url,
			StatusCode: resp.StatusCode,
			Err:        fmt.Errorf("unexpected status: %s", resp.Status),
		}
	}

	// Read one byte past the limit to detect oversized pages
	body, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, &FetchError{URL: url, Err: fmt.Errorf("reading body: %w", err)}
	}
	if len(body) > MaxBodySize {
		return nil, &FetchError{URL: url, Err: ErrBodyTooLarge}
	}

	return body, nil
}

// Close releases idle connections held by the client
func (f *Fetcher) Close() {
	f.client.CloseIdleConnections()
}
