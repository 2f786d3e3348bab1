package tracing

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

// tracer is the global tracer instance for the spot-board application.
var tracer = otel.Tracer("spot-board")

// GetTracer returns the global tracer for creating spans.
// This tracer can be used throughout the application to create new spans.
//
// Example usage:
//
//	ctx, span := tracing.GetTracer().Start(ctx, "operation-name")
//	defer span.End()
func GetTracer() trace.Tracer {
	return tracer
}

// Setup installs an SDK tracer provider as the global provider and returns a
// shutdown function for graceful termination. Without an exporter configured
// the provider only propagates span context, which is enough for log
// correlation; deployments can attach an exporter here.
func Setup() func(context.Context) error {
	res := resource.NewSchemaless(
		attribute.String("service.name", "spot-board"),
	)

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithResource(res),
	)
	// The package-level tracer delegates through the global provider, so
	// spans created before Setup remain no-ops and later ones are recorded.
	otel.SetTracerProvider(tp)

	return tp.Shutdown
}
