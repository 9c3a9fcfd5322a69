package observability

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

var (
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatdash_api_requests_total",
			Help: "Total number of dashboard API requests issued by the client.",
		},
		[]string{"endpoint", "outcome"},
	)
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatdash_api_request_duration_seconds",
			Help:    "Dashboard API request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"endpoint"},
	)
	pollCyclesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatdash_poll_cycles_total",
			Help: "Total number of completed poll cycles per target.",
		},
		[]string{"target"},
	)
	pollStaleDropsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatdash_poll_stale_drops_total",
			Help: "Poll responses discarded because their target was no longer current.",
		},
		[]string{"target"},
	)
	httpRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "chatdash_stub_http_requests_total",
			Help: "Total number of HTTP requests processed by the stub server.",
		},
		[]string{"method", "route", "status"},
	)
	httpRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "chatdash_stub_http_request_duration_seconds",
			Help:    "Stub server request latencies in seconds.",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"route"},
	)
)

func init() {
	prometheus.MustRegister(
		apiRequestsTotal,
		apiRequestDuration,
		pollCyclesTotal,
		pollStaleDropsTotal,
		httpRequestsTotal,
		httpRequestDuration,
	)
}

// ObserveAPIRequest records one client request against the dashboard API.
func ObserveAPIRequest(endpoint string, start time.Time, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	apiRequestsTotal.WithLabelValues(endpoint, outcome).Inc()
	apiRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
}

// RecordPollCycle counts a completed poll cycle for a target panel.
func RecordPollCycle(target string) {
	pollCyclesTotal.WithLabelValues(target).Inc()
}

// RecordStaleDrop counts a poll response discarded by the staleness guard.
func RecordStaleDrop(target string) {
	pollStaleDropsTotal.WithLabelValues(target).Inc()
}

// HTTPMetricsMiddleware instruments stub server routes.
func HTTPMetricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = c.Request.URL.Path
		}
		status := c.Writer.Status()
		httpRequestsTotal.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		httpRequestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	}
}
