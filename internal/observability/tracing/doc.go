// Package tracing provides OpenTelemetry tracing for the refresh pipeline.
//
// Spans are created around each refresh operation and its fetch and decode
// phases. The tracer provider is installed once at startup via Setup.
package tracing
