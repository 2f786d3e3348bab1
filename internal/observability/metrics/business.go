package metrics

import "time"

// RecordRefresh records the outcome of one board refresh operation.
// Status should be "success" or "transport_error".
func RecordRefresh(status string, duration time.Duration, places int) {
	RefreshesTotal.WithLabelValues(status).Inc()
	RefreshDuration.WithLabelValues(status).Observe(duration.Seconds())
	PlacesDecodedTotal.Add(float64(places))
	BoardPlaces.Set(float64(places))
}

// RecordTransportError records a transport failure by kind.
// Kind is a coarse classification such as "timeout", "status" or "network".
func RecordTransportError(kind string) {
	TransportErrorsTotal.WithLabelValues(kind).Inc()
}

// RecordNotification records the result of a display surface notification.
func RecordNotification(channel string, success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	NotificationsTotal.WithLabelValues(channel, status).Inc()
}
