package middleware

import (
	"maps"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// RequestMetrics is a point-in-time copy of the request counters
type RequestMetrics struct {
	TotalRequests      uint64            `json:"total_requests"`
	RequestsByEndpoint map[string]uint64 `json:"requests_by_endpoint"`
}

// Metrics counts requests in memory and exports them to Prometheus
type Metrics struct {
	mu            sync.RWMutex
	totalRequests uint64
	byEndpoint    map[string]uint64

	gatherer prometheus.Gatherer
	requests *prometheus.CounterVec
	duration *prometheus.HistogramVec
}

// NewMetrics registers the request collectors on reg
func NewMetrics(reg *prometheus.Registry) *Metrics {
	m := &Metrics{
		byEndpoint: make(map[string]uint64),
		gatherer:   reg,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "farm",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by route, method and status code.",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "farm",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by route and method.",
			Buckets:   []float64{.05, .1, .25, .5, 1, 2.5, 5},
		}, []string{"method", "route"}),
	}
	reg.MustRegister(m.requests, m.duration)
	return m
}

// Middleware records every request once it has been handled
func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		method := c.Request.Method
		route := routeOf(c)

		m.mu.Lock()
		m.totalRequests++
		m.byEndpoint[method+" "+route]++
		m.mu.Unlock()

		m.requests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		m.duration.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Snapshot returns the current request counters
func (m *Metrics) Snapshot() RequestMetrics {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return RequestMetrics{
		TotalRequests:      m.totalRequests,
		RequestsByEndpoint: maps.Clone(m.byEndpoint),
	}
}

// Handler returns current request metrics as JSON
func (m *Metrics) Handler(c *gin.Context) {
	c.JSON(http.StatusOK, m.Snapshot())
}

// PrometheusHandler serves the registry in the Prometheus text format
func (m *Metrics) PrometheusHandler() gin.HandlerFunc {
	return gin.WrapH(promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{}))
}
