package operations

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/tommurray222/candid-hospitality/pkg/contracts"
	"github.com/tommurray222/candid-hospitality/pkg/contracts/domain"
)

// RunManifest is the JSON summary written at the end of a pipeline run
type RunManifest struct {
	RunID     string     `json:"run_id"`
	Version    string     `json:"version"`
	DataFormat string     `json:"data_format"`
	Status    string     `json:"status"`
	StartTime time.Time  `json:"start_time"`
	EndTime   *time.Time `json:"end_time,omitempty"`
	Duration  string     `json:"duration"`
	Error     string     `json:"error,omitempty"`

	Steps   []StepExecution `json:"steps"`
	Outputs []OutputInfo    `json:"outputs"`

	// Counts are the per-table cleaning counts
	Counts map[string]domain.TableCounts `json:"counts,omitempty"`
	Issues int                           `json:"issues"`
}

// StepExecution records the outcome of a single step
type StepExecution struct {
	StepID    string                 `json:"step_id"`
	StepName  string                 `json:"step_name"`
	Status    string                 `json:"status"`
	StartTime *time.Time             `json:"start_time,omitempty"`
	EndTime   *time.Time             `json:"end_time,omitempty"`
	Duration  string                 `json:"duration,omitempty"`
	Message   string                 `json:"message,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// OutputInfo describes a file written by the run
type OutputInfo struct {
	Name string `json:"name"`
	Path string `json:"path"`
	Size int64  `json:"size"`
}

// NewRunManifest builds a manifest from a finished run. stepOrder lists
// step ids in execution order; steps without state are left out.
func NewRunManifest(state *OperationState, stepOrder []string) *RunManifest {
	m := &RunManifest{
		RunID:     state.ID,
		Version:   contracts.Version,
		DataFormat: contracts.DataFormatVersion,
		Status:    string(state.GetStatus()),
		StartTime: state.StartTime,
		EndTime:   state.EndTime,
		Duration:  state.Duration().String(),
		Steps:     make([]StepExecution, 0, len(stepOrder)),
		Outputs:   []OutputInfo{},
	}
	if state.Error != nil {
		m.Error = state.Error.Error()
	}

	for _, id := range stepOrder {
		s := state.GetStage(id)
		if s == nil {
			continue
		}
		m.Steps = append(m.Steps, newStepExecution(s))
	}

	for _, path := range state.GetOutputs() {
		info := OutputInfo{Name: filepath.Base(path), Path: path}
		if fi, err := os.Stat(path); err == nil {
			info.Size = fi.Size()
		}
		m.Outputs = append(m.Outputs, info)
	}

	if report := state.Report(); report != nil {
		m.Counts = make(map[string]domain.TableCounts, len(report.Counts))
		for name, c := range report.Counts {
			m.Counts[name] = *c
		}
		m.Issues = len(report.Issues)
	}

	return m
}

func newStepExecution(s *StepState) StepExecution {
	s.mu.RLock()
	defer s.mu.RUnlock()

	exec := StepExecution{
		StepID:    s.ID,
		StepName:  s.Name,
		Status:    string(s.Status),
		StartTime: s.StartTime,
		EndTime:   s.EndTime,
		Message:   s.Message,
	}
	if s.StartTime != nil && s.EndTime != nil {
		exec.Duration = s.EndTime.Sub(*s.StartTime).String()
	}
	if len(s.Metadata) > 0 {
		exec.Metadata = make(map[string]interface{}, len(s.Metadata))
		for k, v := range s.Metadata {
			exec.Metadata[k] = v
		}
	}
	return exec
}

// Step returns the execution record for a step id
func (m *RunManifest) Step(id string) (StepExecution, bool) {
	for _, s := range m.Steps {
		if s.StepID == id {
			return s, true
		}
	}
	return StepExecution{}, false
}

// SaveToFile saves the manifest to a JSON file
func (m *RunManifest) SaveToFile(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create manifest directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest file: %w", err)
	}

	return nil
}

// LoadManifestFromFile loads a manifest from a JSON file
func LoadManifestFromFile(path string) (*RunManifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest file: %w", err)
	}

	var manifest RunManifest
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}

	return &manifest, nil
}
