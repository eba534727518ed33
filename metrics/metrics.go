package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// Registry holds the application-specific Prometheus collectors.
	Registry = prometheus.NewRegistry()

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barberflow",
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "Total number of HTTP requests handled.",
		},
		[]string{"method", "route", "status"},
	)

	httpDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "barberflow",
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "Duration of HTTP requests.",
			Buckets:   prometheus.ExponentialBuckets(0.005, 2, 10), // 5ms to ~5s
		},
		[]string{"method", "route"},
	)

	appointmentsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barberflow",
			Subsystem: "appointments",
			Name:      "created_total",
			Help:      "Appointments created, by booking source.",
		},
		[]string{"source"},
	)

	remindersSent = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "barberflow",
			Subsystem: "reminders",
			Name:      "sent_total",
			Help:      "Appointment reminders dispatched.",
		},
		[]string{"channel", "status"},
	)

	goalsProvisioned = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "barberflow",
			Subsystem: "goals",
			Name:      "provisioned_total",
			Help:      "Monthly goal rows created automatically.",
		},
	)
)

func init() {
	Registry.MustRegister(
		httpRequests,
		httpDuration,
		appointmentsCreated,
		remindersSent,
		goalsProvisioned,
		prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}),
		prometheus.NewGoCollector(),
	)
}

// Handler returns an HTTP handler exposing the registered Prometheus metrics.
func Handler() http.Handler {
	return promhttp.HandlerFor(Registry, promhttp.HandlerOpts{})
}

func ObserveHTTP(method, route string, status int, duration time.Duration) {
	httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	httpDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

func AppointmentCreated(source string) {
	appointmentsCreated.WithLabelValues(source).Inc()
}

func ReminderSent(channel, status string) {
	remindersSent.WithLabelValues(channel, status).Inc()
}

func GoalsProvisioned(n int) {
	if n > 0 {
		goalsProvisioned.Add(float64(n))
	}
}
