package operations

import (
	"sync"
	"time"

	"github.com/tommurray222/candid-hospitality/internal/analysis"
	"github.com/tommurray222/candid-hospitality/internal/dataprocessing"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// OperationStatusValue represents the overall pipeline status
type OperationStatusValue string

const (
	OperationStatusPending   OperationStatusValue = "pending"
	OperationStatusRunning   OperationStatusValue = "running"
	OperationStatusCompleted OperationStatusValue = "completed"
	OperationStatusFailed    OperationStatusValue = "failed"
	OperationStatusCancelled OperationStatusValue = "cancelled"
)

// OperationState is the state of one pipeline run. Steps exchange datasets
// through Context.
type OperationState struct {
	mu sync.RWMutex

	ID        string               `json:"id"`
	Status    OperationStatusValue `json:"status"`
	StartTime time.Time            `json:"start_time"`
	EndTime   *time.Time           `json:"end_time,omitempty"`

	// Step states
	Steps map[string]*StepState `json:"steps"`

	// Context passes data between steps
	Context map[string]interface{} `json:"-"`

	// Outputs lists files written by the run
	Outputs []string `json:"outputs"`

	Error error `json:"-"`
}

// NewOperationState creates a new operation state
func NewOperationState(id string) *OperationState {
	return &OperationState{
		ID:        id,
		Status:    OperationStatusPending,
		StartTime: time.Now(),
		Steps:     make(map[string]*StepState),
		Context:   make(map[string]interface{}),
	}
}

// Start marks the operation as running
func (p *OperationState) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Status = OperationStatusRunning
	p.StartTime = time.Now()
}

// Complete marks the operation as completed
func (p *OperationState) Complete() {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCompleted
}

// Fail marks the operation as failed
func (p *OperationState) Fail(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusFailed
	p.Error = err
}

// Cancel marks the operation as cancelled
func (p *OperationState) Cancel(err error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	now := time.Now()
	p.EndTime = &now
	p.Status = OperationStatusCancelled
	p.Error = err
}

// GetStatus returns the current status
func (p *OperationState) GetStatus() OperationStatusValue {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Status
}

// GetStage returns the state of a specific Step
func (p *OperationState) GetStage(stepID string) *StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.Steps[stepID]
}

// SetStage updates the state of a specific Step
func (p *OperationState) SetStage(stepID string, state *StepState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Steps[stepID] = state
}

// GetContext retrieves a value from the operation context
func (p *OperationState) GetContext(key string) (interface{}, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	val, ok := p.Context[key]
	return val, ok
}

// SetContext sets a value in the operation context
func (p *OperationState) SetContext(key string, value interface{}) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Context[key] = value
}

// AddOutput records files written by a step
func (p *OperationState) AddOutput(paths ...string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Outputs = append(p.Outputs, paths...)
}

// GetOutputs returns a copy of the recorded output files
func (p *OperationState) GetOutputs() []string {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]string, len(p.Outputs))
	copy(out, p.Outputs)
	return out
}

// Duration returns the duration of the operation execution
func (p *OperationState) Duration() time.Duration {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if p.EndTime != nil {
		return p.EndTime.Sub(p.StartTime)
	}
	return time.Since(p.StartTime)
}

// GetFailedStages returns all failed steps
func (p *OperationState) GetFailedStages() []*StepState {
	p.mu.RLock()
	defer p.mu.RUnlock()
	var failed []*StepState
	for _, step := range p.Steps {
		if step.GetStatus() == StepStatusFailed {
			failed = append(failed, step)
		}
	}
	return failed
}

// HasFailures returns true if any Step has failed
func (p *OperationState) HasFailures() bool {
	return len(p.GetFailedStages()) > 0
}

// RawDataset returns the loaded input tables, if any
func (p *OperationState) RawDataset() (*dataprocessing.RawDataset, bool) {
	v, ok := p.GetContext(ContextKeyRaw)
	raw, _ := v.(*dataprocessing.RawDataset)
	return raw, ok && raw != nil
}

// CleanDataset returns the output of the clean step, if any
func (p *OperationState) CleanDataset() (*domain.CleanDataset, bool) {
	v, ok := p.GetContext(ContextKeyClean)
	clean, _ := v.(*domain.CleanDataset)
	return clean, ok && clean != nil
}

// PreparedDataset returns the output of the prepare step, if any
func (p *OperationState) PreparedDataset() (*domain.PreparedDataset, bool) {
	v, ok := p.GetContext(ContextKeyPrepared)
	prepared, _ := v.(*domain.PreparedDataset)
	return prepared, ok && prepared != nil
}

// AnalysisResult returns the output of the analyze step, if any
func (p *OperationState) AnalysisResult() (*analysis.Result, bool) {
	v, ok := p.GetContext(ContextKeyAnalysis)
	res, _ := v.(*analysis.Result)
	return res, ok && res != nil
}

// ClusterFrame returns the output of the cluster step, if any
func (p *OperationState) ClusterFrame() (*analysis.Frame, bool) {
	v, ok := p.GetContext(ContextKeyClusterFrame)
	f, _ := v.(*analysis.Frame)
	return f, ok && f != nil
}

// CleanReport returns the data-quality report of the clean step, if any
func (p *OperationState) CleanReport() (*domain.Report, bool) {
	v, ok := p.GetContext(ContextKeyCleanReport)
	r, _ := v.(*domain.Report)
	return r, ok && r != nil
}

// Report combines the data-quality findings of the run. Counts are the
// cleaning counts; issues from the prepare step are appended after the
// cleaning issues. It returns nil before the clean step has run.
func (p *OperationState) Report() *domain.Report {
	clean, ok := p.CleanReport()
	if !ok {
		return nil
	}
	merged := domain.NewReport()
	merged.Merge(clean)

	if v, ok := p.GetContext(ContextKeyPrepareReport); ok {
		if prep, _ := v.(*domain.Report); prep != nil {
			merged.Issues = append(merged.Issues, prep.Issues...)
		}
	}
	return merged
}
