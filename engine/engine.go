package engine

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"sync"
	"time"

	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/xraph/simflow"
	"github.com/xraph/simflow/adapter"
	"github.com/xraph/simflow/ext"
	mw "github.com/xraph/simflow/middleware"
	"github.com/xraph/simflow/observability"
	"github.com/xraph/simflow/stage"
	"github.com/xraph/simflow/workflow"
)

// ProgressFunc receives step progress updates: the step's description
// with 0.0 when it begins, 1.0 when it completes. It is invoked
// synchronously on the run goroutine and must not block.
type ProgressFunc func(message string, fraction float64)

// Engine orchestrates multi-stage simulation pipelines. It dispatches
// each (stage, operation) step through the middleware chain, maintains
// the run's artifact registry and accumulated results, and notifies
// registered extensions of lifecycle events.
//
// An Engine executes one run at a time.
type Engine struct {
	registry   *workflow.Registry
	stages     map[string]stage.Stage
	extensions *ext.Registry
	chain      mw.Middleware
	logger     *slog.Logger

	// Collected by options, consumed in New.
	userExts []ext.Extension
	userMws  []mw.Middleware

	// OpenTelemetry providers (optional; nil means use global).
	tracerProvider trace.TracerProvider
	meterProvider  metric.MeterProvider

	mu        sync.Mutex
	run       *workflow.Run
	current   *workflow.Step
	cancelled bool
	progress  ProgressFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithExtension registers an extension with the engine.
func WithExtension(x ext.Extension) Option {
	return func(e *Engine) {
		e.userExts = append(e.userExts, x)
	}
}

// WithMiddleware adds middleware to the engine's chain, inside the
// default stack.
func WithMiddleware(m mw.Middleware) Option {
	return func(e *Engine) {
		e.userMws = append(e.userMws, m)
	}
}

// WithStage adds or replaces a stage dispatcher. Use this to register
// custom stages for custom pipelines, or to swap a built-in stage.
func WithStage(s stage.Stage) Option {
	return func(e *Engine) {
		e.stages[s.Name()] = s
	}
}

// WithTracerProvider sets a custom OTel TracerProvider for the engine.
// When set, the tracing middleware uses this provider instead of the global one.
// If not set, the global otel.GetTracerProvider() is used.
func WithTracerProvider(tp trace.TracerProvider) Option {
	return func(e *Engine) {
		e.tracerProvider = tp
	}
}

// WithMeterProvider sets a custom OTel MeterProvider for the engine.
// When set, both the metrics middleware and the observability extension
// use this provider instead of the global one.
// If not set, the global otel.GetMeterProvider() is used.
func WithMeterProvider(mp metric.MeterProvider) Option {
	return func(e *Engine) {
		e.meterProvider = mp
	}
}

// New creates an Engine backed by the given adapters: a CAD kernel for
// the geometry stage, a mesh generator and a solver for the analysis
// stages. The postprocess stage shares the solver adapter for result
// parsing.
func New(geometry adapter.Geometry, mesher adapter.Analysis, solver adapter.Analysis, opts ...Option) *Engine {
	e := &Engine{
		registry: workflow.NewRegistry(),
		stages:   make(map[string]stage.Stage),
	}

	// Stage overrides via WithStage need the defaults in place first,
	// but the defaults need the logger, so apply options in two passes.
	for _, opt := range opts {
		opt(e)
	}
	if e.logger == nil {
		e.logger = slog.Default()
	}

	if _, ok := e.stages["geometry"]; !ok {
		e.stages["geometry"] = stage.NewGeometry(geometry, e.logger)
	}
	if _, ok := e.stages["mesher"]; !ok {
		e.stages["mesher"] = stage.NewMesher(mesher, e.logger)
	}
	if _, ok := e.stages["analysis"]; !ok {
		e.stages["analysis"] = stage.NewAnalysis(solver, e.logger)
	}
	if _, ok := e.stages["postprocess"]; !ok {
		e.stages["postprocess"] = stage.NewPostprocess(solver, e.logger)
	}

	// Build tracing middleware (custom provider or global).
	var tracingMw mw.Middleware
	if e.tracerProvider != nil {
		tracer := e.tracerProvider.Tracer("github.com/xraph/simflow")
		tracingMw = mw.TracingWithTracer(tracer)
	} else {
		tracingMw = mw.Tracing()
	}

	// Build metrics middleware (custom provider or global).
	var metricsMw mw.Middleware
	if e.meterProvider != nil {
		meter := e.meterProvider.Meter("github.com/xraph/simflow")
		metricsMw = mw.MetricsWithMeter(meter)
	} else {
		metricsMw = mw.Metrics()
	}

	// Register the observability metrics extension.
	e.extensions = ext.NewRegistry(e.logger)
	var obsExt *observability.MetricsExtension
	if e.meterProvider != nil {
		meter := e.meterProvider.Meter("github.com/xraph/simflow/observability")
		obsExt = observability.NewMetricsExtensionWithMeter(meter)
	} else {
		obsExt = observability.NewMetricsExtension()
	}
	e.extensions.Register(obsExt)
	for _, x := range e.userExts {
		e.extensions.Register(x)
	}

	// Build default middleware stack: recover → tracing → metrics → logging.
	allMws := []mw.Middleware{
		mw.Recover(e.logger),
		tracingMw,
		metricsMw,
		mw.Logging(e.logger),
	}
	allMws = append(allMws, e.userMws...)
	e.chain = mw.Chain(allMws...)

	return e
}

// RegisterWorkflow adds or replaces a named pipeline.
func (e *Engine) RegisterWorkflow(name string, steps []workflow.Pair) {
	e.registry.Register(name, steps)
}

// Workflows returns the names of all registered pipelines.
func (e *Engine) Workflows() []string {
	return e.registry.Names()
}

// Extensions returns the engine's extension registry.
func (e *Engine) Extensions() *ext.Registry {
	return e.extensions
}

// SetProgressCallback installs a callback invoked at the start (0.0)
// and completion (1.0) of every step. Pass nil to remove it.
func (e *Engine) SetProgressCallback(fn ProgressFunc) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.progress = fn
}

// StepSummary returns the summaries of the current run's steps in
// execution order, or nil when no run has been started.
func (e *Engine) StepSummary() []workflow.Summary {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.run == nil {
		return nil
	}
	return e.run.Summary()
}

// Cancel requests cooperative cancellation of the in-flight run. The
// currently executing step is marked cancelled and the run stops before
// dispatching the next step. Cancel is a no-op when no run is active.
func (e *Engine) Cancel() {
	e.mu.Lock()
	if e.run == nil || e.run.State != workflow.RunStateRunning {
		e.mu.Unlock()
		return
	}
	e.cancelled = true
	now := time.Now().UTC()
	if e.current != nil && !e.current.Status.Terminal() {
		e.current.Status = workflow.StatusCancelled
		e.current.CompletedAt = &now
	}
	run := e.run
	run.State = workflow.RunStateCancelled
	run.Error = simflow.ErrRunCancelled.Error()
	run.CompletedAt = &now
	e.mu.Unlock()

	e.logger.Info("run cancelled",
		slog.String("run_id", run.ID.String()),
		slog.String("workflow", run.Workflow),
	)
	e.extensions.EmitRunCancelled(context.Background(), run)
}

// Shutdown notifies all extensions that the engine is shutting down.
func (e *Engine) Shutdown(ctx context.Context) {
	e.extensions.EmitShutdown(ctx)
}

// RunWorkflow executes the named pipeline, or the given custom step
// sequence when steps is non-empty. Steps run strictly in order; the
// first failure aborts the run and the error identifies the workflow
// and the failing step.
func (e *Engine) RunWorkflow(ctx context.Context, name string, cfg simflow.Config, steps []workflow.Pair) (*workflow.Result, error) {
	pairs := steps
	if len(pairs) == 0 {
		var ok bool
		pairs, ok = e.registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("workflow %q: %w", name, simflow.ErrUnknownWorkflow)
		}
	}

	cfg = cfg.Normalized()
	if err := os.MkdirAll(cfg.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir %s: %w", cfg.OutputDir, err)
	}

	run, err := e.beginRun(name, cfg.OutputDir)
	if err != nil {
		return nil, err
	}

	e.logger.Info("run started",
		slog.String("run_id", run.ID.String()),
		slog.String("workflow", name),
		slog.Int("steps", len(pairs)),
	)
	e.extensions.EmitRunStarted(ctx, run)
	runStart := time.Now()

	for i, pair := range pairs {
		if e.isCancelled() {
			return nil, fmt.Errorf("workflow %q: %w", name, simflow.ErrRunCancelled)
		}

		desc := fmt.Sprintf("step %d/%d: %s -> %s", i+1, len(pairs), pair.Stage, pair.Operation)
		step := e.beginStep(ctx, run, pair.Name(), desc)

		stg, ok := e.stages[pair.Stage]
		if !ok {
			stepErr := fmt.Errorf("stage %q: %w", pair.Stage, simflow.ErrUnknownStage)
			e.failStep(ctx, run, step, stepErr)
			return nil, fmt.Errorf("workflow %q step %q: %w", name, step.Name, stepErr)
		}

		out, stepErr := e.chain(ctx, step, func(ctx context.Context) (*stage.Output, error) {
			return stg.Execute(ctx, pair.Operation, cfg, run.Artifacts)
		})

		// A cancel that landed while the step was executing wins over
		// the step's own outcome.
		if e.isCancelled() {
			return nil, fmt.Errorf("workflow %q: %w", name, simflow.ErrRunCancelled)
		}

		if stepErr != nil {
			e.failStep(ctx, run, step, stepErr)
			return nil, fmt.Errorf("workflow %q step %q: %w", name, step.Name, stepErr)
		}

		e.completeStep(ctx, run, step, out)
	}

	e.finishRun(run)
	e.extensions.EmitRunCompleted(ctx, run, time.Since(runStart))
	e.logger.Info("run completed",
		slog.String("run_id", run.ID.String()),
		slog.String("workflow", name),
		slog.Duration("elapsed", time.Since(runStart)),
	)

	return &workflow.Result{
		Status:    "completed",
		Workflow:  run.Workflow,
		Steps:     run.Steps,
		Results:   run.Results,
		Artifacts: run.Artifacts.Entries(),
		OutputDir: run.OutputDir,
	}, nil
}

// beginRun installs a fresh run, rejecting overlap with an in-flight one.
func (e *Engine) beginRun(name, outputDir string) (*workflow.Run, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.run != nil && e.run.State == workflow.RunStateRunning {
		return nil, fmt.Errorf("workflow %q: %w", name, simflow.ErrRunInProgress)
	}
	run := workflow.NewRun(name, outputDir)
	run.State = workflow.RunStateRunning
	run.StartedAt = time.Now().UTC()
	e.run = run
	e.current = nil
	e.cancelled = false
	return run, nil
}

func (e *Engine) isCancelled() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancelled
}

func (e *Engine) beginStep(ctx context.Context, run *workflow.Run, name, desc string) *workflow.Step {
	step := workflow.NewStep(name, desc)
	now := time.Now().UTC()

	e.mu.Lock()
	step.Status = workflow.StatusRunning
	step.StartedAt = &now
	run.Steps = append(run.Steps, step)
	e.current = step
	progress := e.progress
	e.mu.Unlock()

	if progress != nil {
		progress(desc, 0.0)
	}
	e.extensions.EmitStepStarted(ctx, run, step)
	return step
}

func (e *Engine) failStep(ctx context.Context, run *workflow.Run, step *workflow.Step, stepErr error) {
	now := time.Now().UTC()

	e.mu.Lock()
	step.Status = workflow.StatusFailed
	step.Error = stepErr.Error()
	step.CompletedAt = &now
	run.State = workflow.RunStateFailed
	run.Error = stepErr.Error()
	run.CompletedAt = &now
	progress := e.progress
	e.mu.Unlock()

	if progress != nil {
		progress(step.Description, 0.0)
	}
	e.extensions.EmitStepFailed(ctx, run, step, stepErr)
	e.extensions.EmitRunFailed(ctx, run, stepErr)
}

func (e *Engine) completeStep(ctx context.Context, run *workflow.Run, step *workflow.Step, out *stage.Output) {
	now := time.Now().UTC()

	e.mu.Lock()
	step.Status = workflow.StatusCompleted
	step.CompletedAt = &now
	if out != nil {
		step.Result = out.Values
		if out.File != "" {
			run.Artifacts.Put(step.Name, out.File, out.Kind)
		}
		for k, v := range out.Results {
			run.Results[k] = v
		}
	}
	progress := e.progress
	e.mu.Unlock()

	if progress != nil {
		progress(step.Description, 1.0)
	}
	e.extensions.EmitStepCompleted(ctx, run, step, step.Duration())
}

func (e *Engine) finishRun(run *workflow.Run) {
	now := time.Now().UTC()

	e.mu.Lock()
	run.State = workflow.RunStateCompleted
	run.CompletedAt = &now
	e.current = nil
	e.mu.Unlock()
}
