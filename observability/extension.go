package observability

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"

	"github.com/xraph/simflow/ext"
	"github.com/xraph/simflow/workflow"
)

// meterName is the instrumentation scope name for simflow observability.
const meterName = "github.com/xraph/simflow/observability"

// Compile-time interface checks.
var (
	_ ext.Extension     = (*MetricsExtension)(nil)
	_ ext.RunStarted    = (*MetricsExtension)(nil)
	_ ext.RunCompleted  = (*MetricsExtension)(nil)
	_ ext.RunFailed     = (*MetricsExtension)(nil)
	_ ext.RunCancelled  = (*MetricsExtension)(nil)
	_ ext.StepCompleted = (*MetricsExtension)(nil)
	_ ext.StepFailed    = (*MetricsExtension)(nil)
)

// MetricsExtension records system-wide lifecycle metrics via OpenTelemetry.
// Register it as a Simflow extension to automatically track run starts,
// completions, failures, cancellations, and step outcomes. When no global
// MeterProvider is configured the instruments are noops with zero overhead.
type MetricsExtension struct {
	runStarted    metric.Int64Counter
	runCompleted  metric.Int64Counter
	runFailed     metric.Int64Counter
	runCancelled  metric.Int64Counter
	stepCompleted metric.Int64Counter
	stepFailed    metric.Int64Counter
}

// NewMetricsExtension creates a MetricsExtension using the global MeterProvider.
func NewMetricsExtension() *MetricsExtension {
	return NewMetricsExtensionWithMeter(otel.Meter(meterName))
}

// NewMetricsExtensionWithMeter creates a MetricsExtension with the provided
// meter. This variant allows injecting a specific MeterProvider for testing.
func NewMetricsExtensionWithMeter(meter metric.Meter) *MetricsExtension {
	m := &MetricsExtension{}

	// On error the OTel API returns noop instruments, so the extension
	// degrades gracefully.
	m.runStarted, _ = meter.Int64Counter("simflow.run.started",
		metric.WithDescription("Total number of workflow runs started"),
		metric.WithUnit("{run}"))
	m.runCompleted, _ = meter.Int64Counter("simflow.run.completed",
		metric.WithDescription("Total number of workflow runs completed"),
		metric.WithUnit("{run}"))
	m.runFailed, _ = meter.Int64Counter("simflow.run.failed",
		metric.WithDescription("Total number of workflow runs failed"),
		metric.WithUnit("{run}"))
	m.runCancelled, _ = meter.Int64Counter("simflow.run.cancelled",
		metric.WithDescription("Total number of workflow runs cancelled"),
		metric.WithUnit("{run}"))
	m.stepCompleted, _ = meter.Int64Counter("simflow.step.completed",
		metric.WithDescription("Total number of pipeline steps completed"),
		metric.WithUnit("{step}"))
	m.stepFailed, _ = meter.Int64Counter("simflow.step.failed",
		metric.WithDescription("Total number of pipeline steps failed"),
		metric.WithUnit("{step}"))

	return m
}

// Name implements ext.Extension.
func (m *MetricsExtension) Name() string { return "observability-metrics" }

func workflowAttrs(r *workflow.Run) metric.MeasurementOption {
	return metric.WithAttributes(attribute.String("workflow", r.Workflow))
}

// ── Run lifecycle hooks ─────────────────────────────

// OnRunStarted implements ext.RunStarted.
func (m *MetricsExtension) OnRunStarted(ctx context.Context, r *workflow.Run) error {
	m.runStarted.Add(ctx, 1, workflowAttrs(r))
	return nil
}

// OnRunCompleted implements ext.RunCompleted.
func (m *MetricsExtension) OnRunCompleted(ctx context.Context, r *workflow.Run, _ time.Duration) error {
	m.runCompleted.Add(ctx, 1, workflowAttrs(r))
	return nil
}

// OnRunFailed implements ext.RunFailed.
func (m *MetricsExtension) OnRunFailed(ctx context.Context, r *workflow.Run, _ error) error {
	m.runFailed.Add(ctx, 1, workflowAttrs(r))
	return nil
}

// OnRunCancelled implements ext.RunCancelled.
func (m *MetricsExtension) OnRunCancelled(ctx context.Context, r *workflow.Run) error {
	m.runCancelled.Add(ctx, 1, workflowAttrs(r))
	return nil
}

// ── Step lifecycle hooks ────────────────────────────

// OnStepCompleted implements ext.StepCompleted.
func (m *MetricsExtension) OnStepCompleted(ctx context.Context, r *workflow.Run, step *workflow.Step, _ time.Duration) error {
	m.stepCompleted.Add(ctx, 1, metric.WithAttributes(
		attribute.String("workflow", r.Workflow),
		attribute.String("step_name", step.Name),
	))
	return nil
}

// OnStepFailed implements ext.StepFailed.
func (m *MetricsExtension) OnStepFailed(ctx context.Context, r *workflow.Run, step *workflow.Step, _ error) error {
	m.stepFailed.Add(ctx, 1, metric.WithAttributes(
		attribute.String("workflow", r.Workflow),
		attribute.String("step_name", step.Name),
	))
	return nil
}
