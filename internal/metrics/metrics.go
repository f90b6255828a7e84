package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creatordash",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "creatordash",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	creditAwards = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creatordash",
			Subsystem: "ledger",
			Name:      "actions_total",
			Help:      "Reward actions processed, by outcome.",
		},
		[]string{"action", "outcome"},
	)

	creditsGranted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creatordash",
			Subsystem: "ledger",
			Name:      "credits_granted_total",
			Help:      "Credits granted, by action.",
		},
		[]string{"action"},
	)

	upstreamRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "creatordash",
			Subsystem: "upstream",
			Name:      "requests_total",
			Help:      "Outbound platform requests, by status.",
		},
		[]string{"platform", "operation", "status"},
	)

	upstreamDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "creatordash",
			Subsystem: "upstream",
			Name:      "request_duration_seconds",
			Help:      "Duration of outbound platform requests.",
			Buckets:   prometheus.ExponentialBuckets(0.01, 2, 11), // 10ms to ~10s
		},
		[]string{"platform", "operation"},
	)

	limiterWait = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "creatordash",
			Subsystem: "upstream",
			Name:      "limiter_wait_seconds",
			Help:      "Time spent waiting for an outbound rate-limit token.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 8),
		},
		[]string{"platform"},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		creditAwards,
		creditsGranted,
		upstreamRequests,
		upstreamDuration,
		limiterWait,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

// Middleware records request counts and latency per matched route.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}

		route := c.Route().Path
		httpRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		httpDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}

// RecordAward counts one processed reward action.
func RecordAward(action, outcome string, credits int) {
	creditAwards.WithLabelValues(action, outcome).Inc()
	if credits > 0 {
		creditsGranted.WithLabelValues(action).Add(float64(credits))
	}
}

// RecordUpstream records one outbound platform call. status is the HTTP
// status, or 0 for transport failures.
func RecordUpstream(platform, operation string, status int, duration time.Duration) {
	upstreamRequests.WithLabelValues(platform, operation, strconv.Itoa(status)).Inc()
	upstreamDuration.WithLabelValues(platform, operation).Observe(duration.Seconds())
}

func RecordLimiterWait(platform string, waited time.Duration) {
	limiterWait.WithLabelValues(platform).Observe(waited.Seconds())
}
