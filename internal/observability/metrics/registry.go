// Package metrics provides centralized Prometheus metrics for the application.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Refresh metrics track the fetch-decode-present pipeline
var (
	// RefreshesTotal counts completed refresh operations by outcome
	RefreshesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_refreshes_total",
			Help: "Total number of completed board refresh operations",
		},
		[]string{"status"},
	)

	// RefreshDuration measures end-to-end refresh duration in seconds
	RefreshDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "board_refresh_duration_seconds",
			Help:    "Board refresh duration in seconds",
			Buckets: prometheus.ExponentialBuckets(0.05, 2, 10),
		},
		[]string{"status"},
	)

	// TransportErrorsTotal counts transport failures by kind
	TransportErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_transport_errors_total",
			Help: "Total number of transport failures during board refresh",
		},
		[]string{"kind"},
	)

	// PlacesDecodedTotal counts valid place records produced by the decoder
	PlacesDecodedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "board_places_decoded_total",
			Help: "Total number of valid place records decoded from responses",
		},
	)

	// BoardPlaces tracks the size of the currently presented collection
	BoardPlaces = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "board_places",
			Help: "Number of places in the currently presented collection",
		},
	)

	// NotificationsTotal counts display surface notifications by channel and outcome
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "board_notifications_total",
			Help: "Total number of display surface notifications",
		},
		[]string{"channel", "status"},
	)
)
