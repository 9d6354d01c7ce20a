// Package metrics exports run statistics in the Prometheus text format.
//
// The scraper runs as a one-shot job, so there is nothing to scrape over HTTP.
// Instead the statistics are written to a file for the node_exporter textfile
// collector.
package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/pfrederiksen/seminar-events/internal/aggregate"
	"github.com/pfrederiksen/seminar-events/internal/storage"
)

const namespace = "seminar_events"

// Recorder holds the gauges for one run
type Recorder struct {
	registry *prometheus.Registry

	sourceUp       *prometheus.GaugeVec
	sourceEvents   *prometheus.GaugeVec
	sourceDropped  *prometheus.GaugeVec
	sourceDuration *prometheus.GaugeVec
	feedEvents     prometheus.Gauge
	runDuration    prometheus.Gauge
	lastRun        prometheus.Gauge
}

// New creates a Recorder with its own registry
func New() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		sourceUp: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_up",
			Help:      "Whether the source was fetched and extracted (1) or failed (0)",
		}, []string{"source"}),
		sourceEvents: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_events",
			Help:      "Number of events kept from the source",
		}, []string{"source"}),
		sourceDropped: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_dropped_events",
			Help:      "Number of extracted entries dropped, by reason",
		}, []string{"source", "reason"}),
		sourceDuration: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "source_duration_seconds",
			Help:      "Time spent fetching and processing the source",
		}, []string{"source"}),
		feedEvents: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "feed_events",
			Help:      "Number of events written to the feed",
		}),
		runDuration: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Duration of the last run",
		}),
		lastRun: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "last_run_timestamp_seconds",
			Help:      "Unix time the last run finished",
		}),
	}

	r.registry.MustRegister(
		r.sourceUp,
		r.sourceEvents,
		r.sourceDropped,
		r.sourceDuration,
		r.feedEvents,
		r.runDuration,
		r.lastRun,
	)
	return r
}

// Registry exposes the underlying registry
func (r *Recorder) Registry() *prometheus.Registry {
	return r.registry
}

// Observe records the statistics of a run that finished at unix time finished
func (r *Recorder) Observe(result *aggregate.Result, finished int64) {
	for _, s := range result.Sources {
		up := 0.0
		if s.OK() {
			up = 1
		}
		r.sourceUp.WithLabelValues(s.Source).Set(up)
		r.sourceEvents.WithLabelValues(s.Source).Set(float64(s.Kept))
		r.sourceDropped.WithLabelValues(s.Source, "unparseable").Set(float64(s.Unparseable))
		r.sourceDropped.WithLabelValues(s.Source, "past").Set(float64(s.Past))
		r.sourceDropped.WithLabelValues(s.Source, "duplicate").Set(float64(s.Duplicates))
		r.sourceDuration.WithLabelValues(s.Source).Set(s.Duration.Seconds())
	}
	r.feedEvents.Set(float64(len(result.Events)))
	r.runDuration.Set(result.Duration.Seconds())
	r.lastRun.Set(float64(finished))
}

// WriteFile writes the registry in the text exposition format to path. The
// parent directory is created when missing.
func (r *Recorder) WriteFile(path string) error {
	path, err := storage.ExpandPath(path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating metrics directory: %w", err)
	}
	if err := prometheus.WriteToTextfile(path, r.registry); err != nil {
		return fmt.Errorf("writing metrics: %w", err)
	}
	return nil
}
