package middleware

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/simflow/stage"
	"github.com/xraph/simflow/workflow"
)

// tracerName is the instrumentation scope name for simflow tracing.
const tracerName = "github.com/xraph/simflow"

// Tracing returns middleware that wraps step execution in an OpenTelemetry span.
// If no TracerProvider is configured globally, the default noop tracer is used
// and this middleware becomes a pass-through with zero overhead.
//
// Span attributes include: simflow.step.id, simflow.step.name, simflow.stage.
// On error, the span status is set to codes.Error with the error message.
func Tracing() Middleware {
	tracer := otel.Tracer(tracerName)
	return TracingWithTracer(tracer)
}

// TracingWithTracer returns tracing middleware using the provided tracer.
// This variant allows injecting a specific TracerProvider for testing or
// when multiple providers are in use.
func TracingWithTracer(tracer trace.Tracer) Middleware {
	return func(ctx context.Context, step *workflow.Step, next Handler) (*stage.Output, error) {
		ctx, span := tracer.Start(ctx, "simflow.step.execute",
			trace.WithAttributes(
				attribute.String("simflow.step.id", step.ID.String()),
				attribute.String("simflow.step.name", step.Name),
				attribute.String("simflow.stage", stageOf(step.Name)),
			),
			trace.WithSpanKind(trace.SpanKindInternal),
		)
		defer span.End()

		out, err := next(ctx)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}

		return out, err
	}
}
