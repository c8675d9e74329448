// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

// Package metrics exposes Prometheus counters for ranking sessions and
// HTTP traffic. Each Collector owns its registry, so tests and multiple
// servers in one process never collide on registration.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Judgment outcomes
const (
	OutcomeAccepted = "accepted"
	OutcomeRejected = "rejected"
)

// Collector records session and request metrics. A nil *Collector is valid
// and records nothing.
type Collector struct {
	registry *prometheus.Registry

	sessionsStarted   *prometheus.CounterVec
	sessionsCompleted prometheus.Counter
	sessionsActive    prometheus.Gauge
	judgments         *prometheus.CounterVec
	importWarnings    prometheus.Counter
	requestDuration   *prometheus.HistogramVec
}

// New creates a Collector with its metrics registered in a fresh registry
// alongside the Go runtime and process collectors.
func New() *Collector {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Collector{
		registry: reg,
		sessionsStarted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quickly_rank_sessions_started_total",
				Help: "Ranking sessions started, by item source.",
			},
			[]string{"source"},
		),
		sessionsCompleted: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "quickly_rank_sessions_completed_total",
				Help: "Ranking sessions that reached a result.",
			},
		),
		sessionsActive: factory.NewGauge(
			prometheus.GaugeOpts{
				Name: "quickly_rank_sessions_active",
				Help: "Sessions currently held in memory.",
			},
		),
		judgments: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "quickly_rank_judgments_total",
				Help: "Pair judgments, by outcome.",
			},
			[]string{"outcome"},
		),
		importWarnings: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "quickly_rank_import_rows_skipped_total",
				Help: "CSV rows skipped because of a wrong field count.",
			},
		),
		requestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "quickly_rank_http_request_duration_seconds",
				Help:    "HTTP request latency.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "status"},
		),
	}
}

func (c *Collector) SessionStarted(source string) {
	if c == nil {
		return
	}
	c.sessionsStarted.WithLabelValues(source).Inc()
	c.sessionsActive.Inc()
}

func (c *Collector) SessionCompleted() {
	if c == nil {
		return
	}
	c.sessionsCompleted.Inc()
}

func (c *Collector) SessionRemoved() {
	if c == nil {
		return
	}
	c.sessionsActive.Dec()
}

func (c *Collector) Judgment(outcome string) {
	if c == nil {
		return
	}
	c.judgments.WithLabelValues(outcome).Inc()
}

func (c *Collector) RowsSkipped(n int) {
	if c == nil || n <= 0 {
		return
	}
	c.importWarnings.Add(float64(n))
}

// ObserveRequest records one HTTP request. route is the mux pattern, not
// the raw path, to keep label cardinality bounded.
func (c *Collector) ObserveRequest(method, route string, status int, d time.Duration) {
	if c == nil {
		return
	}
	c.requestDuration.WithLabelValues(method, route, strconv.Itoa(status)).Observe(d.Seconds())
}

// Handler serves the registry in the Prometheus text format.
func (c *Collector) Handler() http.Handler {
	return promhttp.HandlerFor(c.registry, promhttp.HandlerOpts{Registry: c.registry})
}

// Registry exposes the underlying registry for tests.
func (c *Collector) Registry() *prometheus.Registry {
	return c.registry
}
