package metrics

import (
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	once sync.Once

	bookingsCreated = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel",
			Name:      "bookings_created_total",
			Help:      "Bookings created by room category.",
		},
		[]string{"category"},
	)

	bookingsCanceled = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "hotel",
			Name:      "bookings_canceled_total",
			Help:      "Bookings canceled by room category.",
		},
		[]string{"category"},
	)

	roomsAvailable = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: "hotel",
			Name:      "rooms_available",
			Help:      "Currently bookable rooms by category.",
		},
		[]string{"category"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(bookingsCreated, bookingsCanceled, roomsAvailable)
	})
}

func IncBookingCreated(category string) {
	bookingsCreated.WithLabelValues(category).Inc()
}

func IncBookingCanceled(category string) {
	bookingsCanceled.WithLabelValues(category).Inc()
}

func SetRoomsAvailable(category string, n int) {
	roomsAvailable.WithLabelValues(category).Set(float64(n))
}

// NewServer exposes the default registry at /metrics.
func NewServer(port int) *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	return &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}
