// Package observability groups the logging, metrics and tracing packages
// that instrument the refresh pipeline.
package observability
