package otel

import (
	"go.opentelemetry.io/otel"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.opentelemetry.io/otel/trace"
)

const AppName = "cart"

var Tracer = otel.Tracer(
	AppName,
	trace.WithInstrumentationAttributes(semconv.ServiceName(AppName)),
)
