// Package metrics collects and exposes Prometheus metrics for the planner API.
package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Email outcome labels.
const (
	ResultSent   = "sent"
	ResultFailed = "failed"
)

// Collector holds every collector the API records into.
type Collector struct {
	requests   *prometheus.CounterVec
	duration   *prometheus.HistogramVec
	emailsSent *prometheus.CounterVec
}

// NewCollector creates a Collector and registers its metrics with reg.
func NewCollector(reg prometheus.Registerer) *Collector {
	c := &Collector{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_http_requests_total",
			Help: "HTTP requests served, by method, route pattern and status code.",
		}, []string{"method", "route", "status"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "planner_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds, by method and route pattern.",
			Buckets: prometheus.DefBuckets,
		}, []string{"method", "route"}),
		emailsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "planner_emails_sent_total",
			Help: "Transactional emails handed to the mail transport, by template and result.",
		}, []string{"template", "result"}),
	}

	reg.MustRegister(c.requests, c.duration, c.emailsSent)
	return c
}

// RecordRequest records one served HTTP request.
// route is the chi route pattern, not the raw path, to keep cardinality bounded.
func (c *Collector) RecordRequest(method, route string, status int, elapsed time.Duration) {
	c.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	c.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// RecordEmail records one email send attempt.
func (c *Collector) RecordEmail(template string, err error) {
	result := ResultSent
	if err != nil {
		result = ResultFailed
	}
	c.emailsSent.WithLabelValues(template, result).Inc()
}

// Handler returns the HTTP handler serving the Prometheus scrape endpoint.
func Handler(gatherer prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}
