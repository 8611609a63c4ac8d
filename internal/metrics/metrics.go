// Package metrics exposes operational counters for the fee service on a
// dedicated prometheus endpoint, kept off the main request port.
package metrics

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Evaluation outcomes recorded per transaction.
const (
	OutcomeMatched = "matched"
	OutcomeNoMatch = "no_match"
	OutcomeInvalid = "invalid"
	OutcomeFault   = "fault"
)

type Collector struct {
	registry           *prometheus.Registry
	submissions        *prometheus.CounterVec
	rulesStored        prometheus.Gauge
	evaluations        *prometheus.CounterVec
	evaluationDuration prometheus.Histogram
	internalFaults     prometheus.Counter
	logger             *slog.Logger
}

func NewCollector(logger *slog.Logger) *Collector {
	if logger == nil {
		logger = slog.Default()
	}

	registry := prometheus.NewRegistry()

	return &Collector{
		registry: registry,
		submissions: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "fee_spec_submissions_total",
			Help: "Fee specification submissions by result",
		}, []string{"result"}),
		rulesStored: promauto.With(registry).NewGauge(prometheus.GaugeOpts{
			Name: "fee_rules_stored",
			Help: "Number of fee rules in the active rule set",
		}),
		evaluations: promauto.With(registry).NewCounterVec(prometheus.CounterOpts{
			Name: "fee_evaluations_total",
			Help: "Transaction fee evaluations by outcome",
		}, []string{"outcome"}),
		evaluationDuration: promauto.With(registry).NewHistogram(prometheus.HistogramOpts{
			Name:    "fee_evaluation_duration_seconds",
			Help:    "Time taken to evaluate a transaction against the rule set",
			Buckets: prometheus.DefBuckets,
		}),
		internalFaults: promauto.With(registry).NewCounter(prometheus.CounterOpts{
			Name: "fee_internal_faults_total",
			Help: "Invariant violations observed while serving requests",
		}),
		logger: logger,
	}
}

func (c *Collector) RecordSubmission(ruleCount int, accepted bool) {
	result := "accepted"
	if !accepted {
		result = "rejected"
	}
	c.submissions.WithLabelValues(result).Inc()
	if accepted {
		c.rulesStored.Set(float64(ruleCount))
	}
}

func (c *Collector) RecordEvaluation(outcome string, duration time.Duration) {
	c.evaluations.WithLabelValues(outcome).Inc()
	c.evaluationDuration.Observe(duration.Seconds())
	if outcome == OutcomeFault {
		c.internalFaults.Inc()
	}
}

func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{})
}

// StartMetricsServer serves /metrics on its own listener so scrapes never
// compete with transaction traffic.
func (c *Collector) StartMetricsServer(addr string) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", c.Handler())

	server := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	go func() {
		c.logger.Info("starting metrics server", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			c.logger.Error("metrics server failed", slog.String("error", err.Error()))
		}
	}()

	return server
}
