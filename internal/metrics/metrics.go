package metrics

import (
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "veve"

var (
	once sync.Once

	bookingCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_created_total",
			Help:      "Count of booking create attempts by outcome.",
		},
		[]string{"outcome"},
	)

	bookingDeleted = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_deleted_total",
			Help:      "Count of bookings deleted, by who deleted them.",
		},
		[]string{"by"},
	)

	realtimeDropped = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "realtime_events_dropped_total",
			Help:      "Events not delivered to slow subscribers.",
		},
	)

	realtimeSubscribers = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "realtime_subscribers",
			Help:      "Open realtime subscriptions.",
		},
	)

	asyncDropped = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "async_queue_dropped_total",
			Help:      "Audit or notification events dropped because the queue was full.",
		},
		[]string{"queue"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route and status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route", "status"},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			bookingCreated,
			bookingDeleted,
			realtimeDropped,
			realtimeSubscribers,
			asyncDropped,
			httpDuration,
		)
	})
}

func IncBookingCreated(outcome string) {
	bookingCreated.WithLabelValues(outcome).Inc()
}

func IncBookingDeleted(by string) {
	bookingDeleted.WithLabelValues(by).Inc()
}

func IncRealtimeDropped() {
	realtimeDropped.Inc()
}

func AddRealtimeSubscribers(delta float64) {
	realtimeSubscribers.Add(delta)
}

func IncAsyncDropped(queue string) {
	asyncDropped.WithLabelValues(queue).Inc()
}

// Middleware records request latency labelled by the matched route.
func Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		httpDuration.
			WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}
