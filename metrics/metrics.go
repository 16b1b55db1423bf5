package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// BookingTransitions counts workflow state changes by page and edge.
	BookingTransitions = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hussboss_booking_transitions_total",
		Help: "Booking workflow transitions",
	}, []string{"page", "from", "to"})

	// BackendRequests times calls to the marketplace backend.
	BackendRequests = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "hussboss_backend_request_duration_seconds",
		Help:    "Duration of backend API calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"endpoint", "status"})

	// SessionChanges counts logins and logouts.
	SessionChanges = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "hussboss_session_changes_total",
		Help: "Session store writes by kind",
	}, []string{"kind"})

	// ActiveTabs is the number of browser tabs held in memory.
	ActiveTabs = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "hussboss_active_tabs",
		Help: "Browser page states currently held in memory",
	})
)

// ObserveBackend records one backend call. status is the HTTP status or 0
// for transport failures.
func ObserveBackend(endpoint string, status int, started time.Time) {
	label := "error"
	if status > 0 {
		label = strconv.Itoa(status)
	}
	BackendRequests.WithLabelValues(endpoint, label).Observe(time.Since(started).Seconds())
}
