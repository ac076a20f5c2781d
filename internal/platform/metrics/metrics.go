// Package metrics exposes quote and sync counters to Prometheus.
package metrics

import (
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "quotebook"

// Sync run outcomes used as the outcome label.
const (
	OutcomeOK      = "ok"
	OutcomePartial = "partial"
	OutcomeFailed  = "failed"
)

// Collectors groups the service's Prometheus collectors.
type Collectors struct {
	syncRuns   *prometheus.CounterVec
	syncMerged prometheus.Counter
	imported   prometheus.Counter
}

// New registers the collectors on reg. quoteCount backs the quote gauge and is
// read on every scrape.
func New(reg prometheus.Registerer, quoteCount func() int) (*Collectors, error) {
	c := &Collectors{
		syncRuns: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "runs_total",
			Help:      "Sync runs by outcome.",
		}, []string{"outcome"}),
		syncMerged: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "sync",
			Name:      "merged_quotes_total",
			Help:      "Quotes appended by sync merges.",
		}),
		imported: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "imported_quotes_total",
			Help:      "Quotes appended by file imports.",
		}),
	}

	quotes := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "quotes",
		Help:      "Quotes currently held.",
	}, func() float64 { return float64(quoteCount()) })

	for _, collector := range []prometheus.Collector{c.syncRuns, c.syncMerged, c.imported, quotes} {
		if err := reg.Register(collector); err != nil {
			return nil, fmt.Errorf("registering collector: %w", err)
		}
	}

	return c, nil
}

// ObserveSync records one sync run.
func (c *Collectors) ObserveSync(merged, failedSources, sources int) {
	outcome := OutcomeOK

	switch {
	case sources > 0 && failedSources == sources:
		outcome = OutcomeFailed
	case failedSources > 0:
		outcome = OutcomePartial
	}

	c.syncRuns.WithLabelValues(outcome).Inc()
	c.syncMerged.Add(float64(merged))
}

// ObserveImport records a successful import.
func (c *Collectors) ObserveImport(n int) {
	c.imported.Add(float64(n))
}
