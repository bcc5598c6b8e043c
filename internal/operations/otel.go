package operations

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tommurray222/candid-hospitality/internal/infrastructure"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

const (
	TracerName = "candid.pipeline"
)

// StepTracer provides OpenTelemetry instrumentation for pipeline runs
type StepTracer struct {
	tracer  trace.Tracer
	metrics *infrastructure.PipelineMetrics
}

// NewStepTracer creates a tracer bound to the given providers. Nil providers
// fall back to the global tracer and skip metrics.
func NewStepTracer(providers *infrastructure.OTelProviders) *StepTracer {
	if providers == nil {
		return &StepTracer{tracer: otel.Tracer(TracerName)}
	}

	tracer := providers.Tracer
	if providers.TracerProvider != nil {
		tracer = providers.TracerProvider.Tracer(TracerName)
	}
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}

	return &StepTracer{
		tracer:  tracer,
		metrics: providers.Metrics,
	}
}

// TraceRun creates a span for the entire pipeline run
func (st *StepTracer) TraceRun(ctx context.Context, runID string, stepIDs []string) (context.Context, trace.Span) {
	return st.tracer.Start(ctx, "pipeline.run",
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("pipeline.run_id", runID),
			attribute.StringSlice("pipeline.steps", stepIDs),
		),
	)
}

// TraceStep creates a span for one step
func (st *StepTracer) TraceStep(ctx context.Context, runID string, step Step) (context.Context, trace.Span) {
	spanName := fmt.Sprintf("pipeline.step.%s", step.ID())
	return st.tracer.Start(ctx, spanName,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(
			attribute.String("pipeline.run_id", runID),
			attribute.String("step.id", step.ID()),
			attribute.String("step.name", step.Name()),
		),
	)
}

// RecordStepCompletion records step metrics and closes out the span status
func (st *StepTracer) RecordStepCompletion(ctx context.Context, span trace.Span, stepID string, duration time.Duration, err error) {
	st.metrics.RecordStep(ctx, stepID, duration, err)

	status := "success"
	if err != nil {
		status = "failure"
	}
	span.SetAttributes(
		attribute.String("step.status", status),
		attribute.Float64("step.duration_seconds", duration.Seconds()),
	)

	if err != nil {
		infrastructure.RecordError(ctx, err,
			trace.WithAttributes(
				attribute.String("step.id", stepID),
				attribute.String("error.type", string(GetErrorType(err))),
			),
		)
		return
	}

	infrastructure.AddSpanEvent(ctx, "step.completed", map[string]interface{}{
		"step_id":  stepID,
		"duration": duration.Seconds(),
	})
	span.SetStatus(codes.Ok, "step completed")
}

// RecordRunCompletion counts the run and sets the run span status
func (st *StepTracer) RecordRunCompletion(ctx context.Context, span trace.Span, state *OperationState) {
	success := state.GetStatus() == OperationStatusCompleted
	st.metrics.RecordRun(ctx, success)

	span.SetAttributes(
		attribute.String("pipeline.status", string(state.GetStatus())),
		attribute.Float64("pipeline.duration_seconds", state.Duration().Seconds()),
		attribute.Int("pipeline.outputs", len(state.GetOutputs())),
	)

	if success {
		span.SetStatus(codes.Ok, "pipeline completed")
		return
	}
	if state.Error != nil {
		span.RecordError(state.Error)
	}
	span.SetStatus(codes.Error, fmt.Sprintf("pipeline %s", state.GetStatus()))
}

// RecordReport records per-table row counts from a data-quality report
func (st *StepTracer) RecordReport(ctx context.Context, report *domain.Report) {
	if report == nil {
		return
	}
	for name, counts := range report.Counts {
		if counts == nil {
			continue
		}
		st.metrics.RecordTable(ctx, name, *counts)
	}
}
