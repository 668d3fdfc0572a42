package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/prudhivi99/Distributed-Systems/ecommerce-go/internal/processor"
)

type Registry struct {
	reg *prometheus.Registry

	HTTPRequests  *prometheus.CounterVec
	HTTPLatency   *prometheus.HistogramVec
	Workflows     *prometheus.CounterVec
	Notifications *prometheus.CounterVec
	CacheLookups  *prometheus.CounterVec
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecommerce_http_requests_total",
		Help: "HTTP requests by route and status.",
	}, []string{"method", "route", "status"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "ecommerce_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	workflows := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecommerce_order_workflows_total",
		Help: "Order processing runs by outcome.",
	}, []string{"outcome"})
	notifications := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecommerce_notifications_composed_total",
	}, []string{"type"})
	cacheLookups := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ecommerce_cache_lookups_total",
	}, []string{"key", "result"})

	r.MustRegister(requests, latency, workflows, notifications, cacheLookups)
	return &Registry{
		reg:           r,
		HTTPRequests:  requests,
		HTTPLatency:   latency,
		Workflows:     workflows,
		Notifications: notifications,
		CacheLookups:  cacheLookups,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// Middleware records every request under its route pattern, so ids in
// paths do not explode label cardinality.
func (r *Registry) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := c.Request.Method
		r.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(c.Writer.Status())).Inc()
		r.HTTPLatency.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// ObserveWorkflow implements processor.Recorder.
func (r *Registry) ObserveWorkflow(outcome string, notifications []processor.Notification) {
	r.Workflows.WithLabelValues(outcome).Inc()
	for _, n := range notifications {
		r.Notifications.WithLabelValues(n.Type).Inc()
	}
}

// ObserveCache implements db.CacheObserver.
func (r *Registry) ObserveCache(key string, hit bool) {
	result := "miss"
	if hit {
		result = "hit"
	}
	r.CacheLookups.WithLabelValues(key, result).Inc()
}
