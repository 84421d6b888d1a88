package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	paymentOps = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mountify",
			Name:      "payment_operations_total",
			Help:      "Payment operations by type and outcome.",
		},
		[]string{"op", "status"},
	)

	bookings = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mountify",
			Name:      "bookings_total",
			Help:      "Booking lifecycle events by status.",
		},
		[]string{"status"},
	)

	coverageLookups = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "mountify",
			Name:      "coverage_lookups_total",
			Help:      "ZIP coverage lookups by cache outcome.",
		},
		[]string{"outcome"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(paymentOps, bookings, coverageLookups)
	})
}

// IncPayment increments the payment-operation counter.
func IncPayment(op, status string) {
	paymentOps.WithLabelValues(op, status).Inc()
}

// IncBooking increments the booking lifecycle counter.
func IncBooking(status string) {
	bookings.WithLabelValues(status).Inc()
}

// IncCoverageLookup increments the coverage lookup counter.
func IncCoverageLookup(outcome string) {
	coverageLookups.WithLabelValues(outcome).Inc()
}
