// Package metrics provides centralized Prometheus metrics for the application.
//
// All metrics are registered via promauto on the default registry and exposed
// through the promhttp handler mounted by the viewer binary. Record helpers
// wrap the raw collectors so callers never deal with label plumbing directly.
package metrics
