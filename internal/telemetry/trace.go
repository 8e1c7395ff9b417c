package telemetry

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Instrumentation scope names.
const (
	ScopeCommands = "gbms/commands"
	ScopeAPI      = "gbms/api"
)

// StartCommandSpan creates a span for a CLI command execution.
//
//	ctx, span := telemetry.StartCommandSpan(ctx, "gbms projects list")
//	defer telemetry.EndSpan(span, err)
func StartCommandSpan(ctx context.Context, command string) (context.Context, trace.Span) {
	tracer := GetTracerProvider().Tracer(ScopeCommands)
	ctx, span := tracer.Start(ctx, command)

	span.SetAttributes(
		attribute.String("command", command),
		attribute.String("component", "cli"),
	)
	return ctx, span
}

// StartRequestSpan creates a client span for one backend request. path is
// relative to the API base URL.
func StartRequestSpan(ctx context.Context, method, path string) (context.Context, trace.Span) {
	tracer := GetTracerProvider().Tracer(ScopeAPI)
	return tracer.Start(ctx, method+" "+path,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.request.method", method),
			attribute.String("url.path", path),
		),
	)
}

// RecordStatus sets the response status code on span.
func RecordStatus(span trace.Span, status int) {
	span.SetAttributes(attribute.Int("http.response.status_code", status))
}

// RecordError records an error in a span and sets error status.
func RecordError(span trace.Span, err error) {
	if err == nil {
		return
	}
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}

// EndSpan records err, or success when it is nil, and ends span.
func EndSpan(span trace.Span, err error) {
	if err != nil {
		RecordError(span, err)
	} else {
		span.SetStatus(codes.Ok, "")
	}
	span.End()
}
