package operations

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/tommurray222/candid-hospitality/internal/infrastructure"
)

// PipelineOptions configures a Pipeline
type PipelineOptions struct {
	Config    *Config
	Telemetry *infrastructure.OTelProviders
	Logger    *slog.Logger
}

// Pipeline runs registered steps in order. The first failing step stops the
// run and the remaining steps are skipped; there is no retry.
type Pipeline struct {
	steps  []Step
	index  map[string]Step
	config *Config
	tracer *StepTracer
	logger *slog.Logger
}

// NewPipeline creates a pipeline and registers steps in the given order
func NewPipeline(opts PipelineOptions, steps ...Step) (*Pipeline, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = NewConfig()
	}

	p := &Pipeline{
		index:  make(map[string]Step),
		config: cfg,
		tracer: NewStepTracer(opts.Telemetry),
		logger: infrastructure.WithComponent(opts.Logger, "pipeline"),
	}

	for _, s := range steps {
		if err := p.Register(s); err != nil {
			return nil, err
		}
	}
	return p, nil
}

// Register appends a step. Step ids must be unique.
func (p *Pipeline) Register(step Step) error {
	if step == nil {
		return fmt.Errorf("cannot register nil step")
	}
	id := step.ID()
	if id == "" {
		return fmt.Errorf("step ID cannot be empty")
	}
	if _, exists := p.index[id]; exists {
		return fmt.Errorf("step %s already registered", id)
	}

	p.steps = append(p.steps, step)
	p.index[id] = step
	return nil
}

// Get returns a registered step by id
func (p *Pipeline) Get(id string) (Step, bool) {
	s, ok := p.index[id]
	return s, ok
}

// StepIDs returns registered step ids in execution order
func (p *Pipeline) StepIDs() []string {
	ids := make([]string, len(p.steps))
	for i, s := range p.steps {
		ids[i] = s.ID()
	}
	return ids
}

// Run executes every step against state. The returned error is the
// OperationError of the failing step, if any.
func (p *Pipeline) Run(ctx context.Context, state *OperationState) error {
	if state == nil {
		return fmt.Errorf("operation state is required")
	}

	ctx = infrastructure.EnsureTraceID(ctx)
	ctx, span := p.tracer.TraceRun(ctx, state.ID, p.StepIDs())
	defer span.End()

	for _, s := range p.steps {
		if state.GetStage(s.ID()) == nil {
			state.SetStage(s.ID(), NewStepState(s.ID(), s.Name()))
		}
	}

	state.Start()
	p.logger.InfoContext(ctx, "Pipeline started",
		slog.String("run_id", state.ID),
		slog.Int("steps", len(p.steps)))

	err := p.runSteps(ctx, state)

	switch {
	case err == nil:
		state.Complete()
		if report, ok := state.CleanReport(); ok {
			p.tracer.RecordReport(ctx, report)
		}
		p.logger.InfoContext(ctx, "Pipeline completed",
			slog.String("run_id", state.ID),
			slog.Duration("duration", state.Duration()),
			slog.Int("outputs", len(state.GetOutputs())))
	case GetErrorType(err) == ErrorTypeCancellation:
		state.Cancel(err)
		p.logger.WarnContext(ctx, "Pipeline cancelled",
			slog.String("run_id", state.ID),
			slog.String("error", err.Error()))
	default:
		state.Fail(err)
		p.logger.ErrorContext(ctx, "Pipeline failed",
			slog.String("run_id", state.ID),
			slog.String("error", err.Error()))
	}

	p.tracer.RecordRunCompletion(ctx, span, state)
	return err
}

func (p *Pipeline) runSteps(ctx context.Context, state *OperationState) error {
	for i, s := range p.steps {
		if ctx.Err() != nil {
			err := NewCancellationError(s.ID())
			p.skipRemaining(state, i, fmt.Sprintf("run cancelled before step %s", s.ID()))
			return err
		}

		p.logger.InfoContext(ctx, "Executing step",
			slog.String("run_id", state.ID),
			slog.String("step", s.ID()),
			slog.Int("step_number", i+1),
			slog.Int("total_steps", len(p.steps)))

		if err := p.executeStep(ctx, state, s); err != nil {
			p.skipRemaining(state, i+1, fmt.Sprintf("previous step %s failed", s.ID()))
			return err
		}
	}
	return nil
}

// executeStep validates and runs a single step under its timeout
func (p *Pipeline) executeStep(ctx context.Context, state *OperationState, s Step) error {
	stepState := state.GetStage(s.ID())

	if err := s.Validate(state); err != nil {
		opErr := validationFailure(s.ID(), err)
		stepState.Fail(opErr)
		p.logger.WarnContext(ctx, "Step validation failed",
			slog.String("run_id", state.ID),
			slog.String("step", s.ID()),
			slog.String("error", opErr.Error()))
		return opErr
	}

	timeout := p.config.GetStepTimeout(s.ID())
	stepCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	stepCtx, span := p.tracer.TraceStep(stepCtx, state.ID, s)
	defer span.End()

	stepState.Start()
	start := time.Now()
	err := s.Execute(stepCtx, state)
	duration := time.Since(start)

	if err != nil {
		opErr := executionFailure(ctx, stepCtx, s.ID(), timeout, err)
		stepState.Fail(opErr)
		p.tracer.RecordStepCompletion(stepCtx, span, s.ID(), duration, opErr)
		p.logger.ErrorContext(ctx, "Step failed",
			slog.String("run_id", state.ID),
			slog.String("step", s.ID()),
			slog.String("error_type", string(opErr.Type)),
			slog.Duration("duration", duration),
			slog.String("error", opErr.Error()))
		return opErr
	}

	stepState.Complete()
	p.tracer.RecordStepCompletion(stepCtx, span, s.ID(), duration, nil)
	p.logger.InfoContext(ctx, "Step completed",
		slog.String("run_id", state.ID),
		slog.String("step", s.ID()),
		slog.Duration("duration", duration))
	return nil
}

func (p *Pipeline) skipRemaining(state *OperationState, from int, reason string) {
	for _, s := range p.steps[from:] {
		if st := state.GetStage(s.ID()); st != nil && st.GetStatus() == StepStatusPending {
			st.Skip(reason)
		}
	}
}

func validationFailure(stepID string, err error) *OperationError {
	var opErr *OperationError
	if errors.As(err, &opErr) {
		return WrapError(opErr, stepID)
	}
	return NewValidationError(stepID, err.Error())
}

// executionFailure classifies a step error. Parent cancellation wins over
// the step deadline so an interrupted run is reported as cancelled.
func executionFailure(parent, stepCtx context.Context, stepID string, timeout time.Duration, err error) *OperationError {
	switch {
	case parent.Err() != nil:
		return NewCancellationError(stepID)
	case errors.Is(stepCtx.Err(), context.DeadlineExceeded):
		e := NewTimeoutError(stepID, timeout.String())
		e.Cause = err
		return e
	}
	return WrapError(err, stepID)
}
