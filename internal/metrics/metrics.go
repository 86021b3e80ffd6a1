// Package metrics provides Prometheus metrics for the HTTP API.
// Scrape these at /metrics.
package metrics

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTP Metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "flip_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "flip_http_request_duration_seconds",
			Help:    "HTTP request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// Domain Metrics
	MaxOfferCalculationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flip_max_offer_calculations_total",
			Help: "Total number of max-offer solves",
		},
	)

	CompsAnalyzedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "flip_comps_analyzed_total",
			Help: "Total number of comparable sales passed to statistics",
		},
	)

	LastArvDollars = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "flip_last_arv_dollars",
			Help: "ARV of the most recent analysis",
		},
	)
)

// Middleware records request counts and latency by route template.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		HTTPRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		HTTPRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}
