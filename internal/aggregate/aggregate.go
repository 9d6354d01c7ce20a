package aggregate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/pfrederiksen/seminar-events/internal/config"
	"github.com/pfrederiksen/seminar-events/internal/event"
	"github.com/pfrederiksen/seminar-events/internal/extract"
	"github.com/pfrederiksen/seminar-events/internal/logger"
	"github.com/pfrederiksen/seminar-events/internal/normalize"
	"github.com/pfrederiksen/seminar-events/internal/storage"
)

// ErrAllSourcesFailed is returned when no source could be fetched and extracted.
// A run in which some source succeeded but yielded no upcoming events is not a
// failure; it writes an empty feed.
var ErrAllSourcesFailed = errors.New("all sources failed")

// Fetcher retrieves a page body
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// Source is a configured page bound to its extractor
type Source struct {
	ID        string
	URL       string
	Extractor extract.Extractor
	Defaults  normalize.Defaults
}

// SourcesFromConfig binds every enabled configured source to its extractor
func SourcesFromConfig(sources []config.Source, registry extract.Registry) ([]Source, error) {
	out := make([]Source, 0, len(sources))
	for _, s := range sources {
		if s.Disabled {
			continue
		}
		ex, err := registry.Lookup(extract.Kind(s.Kind))
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", s.ID, err)
		}
		out = append(out, Source{
			ID:        s.ID,
			URL:       s.URL,
			Extractor: ex,
			Defaults:  s.Defaults(),
		})
	}
	return out, nil
}

// Aggregator drives fetch, extract and normalize for each source
type Aggregator struct {
	fetcher    Fetcher
	normalizer *normalize.Normalizer
	sources    []Source
	output     string
	log        *logger.Logger
}

// Option configures an Aggregator
type Option func(*Aggregator)

// WithOutput makes Run write the feed to path
func WithOutput(path string) Option {
	return func(a *Aggregator) {
		a.output = path
	}
}

// WithLogger sets the logger used for per-source reporting
func WithLogger(l *logger.Logger) Option {
	return func(a *Aggregator) {
		a.log = l
	}
}

// New creates an Aggregator over sources in the given order
func New(f Fetcher, n *normalize.Normalizer, sources []Source, opts ...Option) *Aggregator {
	a := &Aggregator{
		fetcher:    f,
		normalizer: n,
		sources:    sources,
		log:        logger.Default(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run performs one scrape. On ErrAllSourcesFailed the returned Result still
// carries the per-source statistics.
func (a *Aggregator) Run(ctx context.Context) (*Result, error) {
	if c, ok := a.fetcher.(interface{ Close() }); ok {
		defer c.Close()
	}

	start := time.Now()
	result := &Result{
		Today:   a.normalizer.Today(),
		Sources: make([]SourceStats, 0, len(a.sources)),
		Events:  []*event.Event{},
	}

	a.log.Info("run started", logger.Fields{
		"sources": len(a.sources),
		"today":   result.Today.String(),
	})

	for _, src := range a.sources {
		if err := ctx.Err(); err != nil {
			result.Duration = time.Since(start)
			return result, fmt.Errorf("run interrupted: %w", err)
		}
		stats, events := a.runSource(ctx, src, result.Today)
		result.Sources = append(result.Sources, stats)
		result.Events = append(result.Events, events...)
	}

	event.Sort(result.Events)
	result.Duration = time.Since(start)

	if result.Succeeded() == 0 {
		a.log.Error("run failed", logger.Fields{"sources": len(a.sources)}, ErrAllSourcesFailed)
		return result, ErrAllSourcesFailed
	}

	if a.output != "" {
		if err := storage.WriteEvents(a.output, result.Events); err != nil {
			return result, fmt.Errorf("writing output: %w", err)
		}
	}

	a.log.Info("run finished", logger.Fields{
		"events":      len(result.Events),
		"failed":      result.Failed(),
		"duration_ms": result.Duration.Milliseconds(),
		"output":      a.output,
	})
	return result, nil
}

// runSource never fails the run; errors are recorded in the returned stats
func (a *Aggregator) runSource(ctx context.Context, src Source, today event.Date) (stats SourceStats, kept []*event.Event) {
	start := time.Now()
	stats = SourceStats{Source: src.ID, URL: src.URL}
	fields := logger.Fields{"source": src.ID, "url": src.URL}
	defer func() {
		stats.Duration = time.Since(start)
	}()

	page, err := a.fetcher.Fetch(ctx, src.URL)
	if err != nil {
		stats.Err = err
		a.log.Error("fetch failed", fields, err)
		return stats, nil
	}
	stats.Fetched = true
	stats.Bytes = len(page)

	raws, err := src.Extractor.Extract(page, src.URL)
	if err != nil {
		stats.Err = err
		a.log.Error("extract failed", fields, err)
		return stats, nil
	}
	stats.Extracted = len(raws)

	parsed := make([]*event.Event, 0, len(raws))
	for _, raw := range raws {
		evt, err := a.normalizer.Normalize(raw, src.Defaults)
		if err != nil {
			stats.Unparseable++
			a.log.Warn("dropping entry", logger.Fields{
				"source": src.ID,
				"title":  raw.Title,
				"date":   raw.DateText,
				"reason": err.Error(),
			})
			continue
		}
		parsed = append(parsed, evt)
	}

	events := event.Upcoming(parsed, today)
	stats.Past = len(parsed) - len(events)

	deduped := event.Dedupe(events)
	stats.Duplicates = len(events) - len(deduped)
	stats.Kept = len(deduped)

	a.log.Info("source done", logger.Fields{
		"source":      src.ID,
		"extracted":   stats.Extracted,
		"unparseable": stats.Unparseable,
		"past":        stats.Past,
		"duplicates":  stats.Duplicates,
		"kept":        stats.Kept,
	})
	return stats, deduped
}
