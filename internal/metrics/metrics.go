package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hibachi",
			Name:      "http_requests_total",
			Help:      "Count of API requests by handler.",
		},
		[]string{"handler"},
	)

	reservationCreated = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hibachi",
			Name:      "reservation_created_total",
			Help:      "Count of reservations accepted.",
		},
	)

	reservationDeleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hibachi",
			Name:      "reservation_deleted_total",
			Help:      "Count of reservations deleted.",
		},
	)

	seatConflicts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hibachi",
			Name:      "seat_conflict_total",
			Help:      "Count of submissions rejected by the seat conflict gate.",
		},
	)

	pinFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "hibachi",
			Name:      "pin_failure_total",
			Help:      "Count of failed PIN attempts.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(
			httpRequests,
			reservationCreated,
			reservationDeleted,
			seatConflicts,
			pinFailures,
		)
	})
}

func IncHTTP(handler string) {
	httpRequests.WithLabelValues(handler).Inc()
}

func IncReservationCreated() {
	reservationCreated.Inc()
}

func IncReservationDeleted() {
	reservationDeleted.Inc()
}

func IncSeatConflict() {
	seatConflicts.Inc()
}

func IncPinFailure() {
	pinFailures.Inc()
}
