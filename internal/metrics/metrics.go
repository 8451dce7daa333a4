// Package metrics exposes Prometheus instrumentation for the poll pipeline.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics records poll-loop activity. A nil *Metrics is a no-op so tests
// can run without a registry.
type Metrics struct {
	pollCycles    prometheus.Counter
	cycleDuration prometheus.Histogram
	feedRetries   prometheus.Counter
	feedFallbacks prometheus.Counter
	headlines     prometheus.Counter
	verdicts      *prometheus.CounterVec
	alertsSent    prometheus.Counter
}

// New registers the sentinel's metrics with the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		pollCycles: factory.NewCounter(prometheus.CounterOpts{
			Name: "nepse_sentinel_poll_cycles_total",
			Help: "Completed poll cycles",
		}),
		cycleDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "nepse_sentinel_cycle_duration_seconds",
			Help:    "Duration of one poll cycle",
			Buckets: prometheus.DefBuckets,
		}),
		feedRetries: factory.NewCounter(prometheus.CounterOpts{
			Name: "nepse_sentinel_feed_retries_total",
			Help: "Failed feed fetch attempts",
		}),
		feedFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "nepse_sentinel_feed_fallbacks_total",
			Help: "Cycles served from the fallback source",
		}),
		headlines: factory.NewCounter(prometheus.CounterOpts{
			Name: "nepse_sentinel_news_headlines_total",
			Help: "Headlines fetched from the news source",
		}),
		verdicts: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "nepse_sentinel_verdicts_total",
			Help: "Verdicts produced per category",
		}, []string{"category"}),
		alertsSent: factory.NewCounter(prometheus.CounterOpts{
			Name: "nepse_sentinel_alerts_sent_total",
			Help: "Alert messages handed to the notifier",
		}),
	}
}

// CycleObserved records one completed poll cycle.
func (m *Metrics) CycleObserved(d time.Duration) {
	if m == nil {
		return
	}
	m.pollCycles.Inc()
	m.cycleDuration.Observe(d.Seconds())
}

// FeedRetryObserved counts one failed fetch attempt.
func (m *Metrics) FeedRetryObserved() {
	if m == nil {
		return
	}
	m.feedRetries.Inc()
}

// FeedFallbackObserved counts one cycle degraded to synthetic data.
func (m *Metrics) FeedFallbackObserved() {
	if m == nil {
		return
	}
	m.feedFallbacks.Inc()
}

// HeadlinesObserved adds the size of one fetched headline batch.
func (m *Metrics) HeadlinesObserved(n int) {
	if m == nil {
		return
	}
	m.headlines.Add(float64(n))
}

// VerdictObserved counts one classified verdict.
func (m *Metrics) VerdictObserved(category string) {
	if m == nil {
		return
	}
	m.verdicts.WithLabelValues(category).Inc()
}

// AlertSent counts one broadcast alert.
func (m *Metrics) AlertSent() {
	if m == nil {
		return
	}
	m.alertsSent.Inc()
}
